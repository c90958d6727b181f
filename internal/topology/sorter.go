/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package topology

import (
	"fmt"
	"sort"
	"strings"
)

// CycleError reports that the dependency graph cannot be ordered. Path holds
// the offending cycle as consecutive table names; the last element repeats the
// first.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency detected in database schema. Cycle: %s", strings.Join(e.Path, " -> "))
}

// Sorter produces deterministic dependency orderings over a Graph. It holds no
// state of its own; construct one per operation from a fresh graph.
type Sorter struct {
	graph *Graph
}

func NewSorter(g *Graph) *Sorter {
	return &Sorter{graph: g}
}

// Sort returns every table in the graph ordered so that each table appears
// after all tables it depends on. Ties are broken by table name, so repeated
// sorts of the same graph always produce the same order. Returns a *CycleError
// when the graph cannot be ordered.
func (s *Sorter) Sort() ([]string, error) {
	remaining := make(map[string]int, s.graph.Len())
	var ready []string
	for _, table := range s.graph.Tables() {
		deps := s.graph.Dependencies(table)
		remaining[table] = len(deps)
		if len(deps) == 0 {
			ready = append(ready, table)
		}
	}

	order := make([]string, 0, s.graph.Len())
	for len(ready) > 0 {
		sort.Strings(ready)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for _, dependent := range s.graph.Dependents(next) {
			remaining[dependent]--
			if remaining[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(order) != s.graph.Len() {
		return nil, &CycleError{Path: s.findCycle()}
	}
	return order, nil
}

// findCycle locates one cycle in the graph via depth-first traversal. The
// traversal uses an explicit frame stack with an on-path marker set instead of
// recursion, so deeply chained schemas cannot exhaust the call stack.
func (s *Sorter) findCycle() []string {
	type frame struct {
		node string
		deps []string
		next int
	}

	visited := make(map[string]struct{})
	for _, start := range s.graph.Tables() {
		if _, done := visited[start]; done {
			continue
		}

		onPath := make(map[string]struct{})
		var stack []frame
		push := func(node string) {
			stack = append(stack, frame{node: node, deps: s.graph.Dependencies(node)})
			onPath[node] = struct{}{}
			visited[node] = struct{}{}
		}
		push(start)

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.deps) {
				dep := top.deps[top.next]
				top.next++
				if _, ok := onPath[dep]; ok {
					// Back-edge: the cycle runs from the first occurrence of
					// dep on the current path through the top of the stack.
					path := make([]string, 0, len(stack)+1)
					recording := false
					for _, f := range stack {
						if f.node == dep {
							recording = true
						}
						if recording {
							path = append(path, f.node)
						}
					}
					return append(path, dep)
				}
				if _, done := visited[dep]; !done {
					push(dep)
				}
				continue
			}
			delete(onPath, top.node)
			stack = stack[:len(stack)-1]
		}
	}
	return nil
}

// Levels groups tables by dependency depth: level 0 holds tables with no
// dependencies, and every other table sits one level above the deepest of its
// direct dependencies. Fails with *CycleError on unorderable graphs.
func (s *Sorter) Levels() (map[int][]string, error) {
	order, err := s.Sort()
	if err != nil {
		return nil, err
	}

	levelOf := make(map[string]int, len(order))
	for _, table := range order {
		level := 0
		// Direct dependencies precede table in sort order, so their levels are
		// already assigned.
		for _, dep := range s.graph.Dependencies(table) {
			if l := levelOf[dep] + 1; l > level {
				level = l
			}
		}
		levelOf[table] = level
	}

	levels := make(map[int][]string)
	for table, level := range levelOf {
		levels[level] = append(levels[level], table)
	}
	for _, tables := range levels {
		sort.Strings(tables)
	}
	return levels, nil
}

// SelfReferences returns the tables that list themselves as a dependency, in
// sorted order. A self-referencing foreign key (a manager column on an
// employees table, say) is a degenerate one-node cycle that callers often want
// to detect without triggering full sort failure semantics.
func (s *Sorter) SelfReferences() []string {
	var selfRefs []string
	for _, table := range s.graph.Tables() {
		if s.graph.DependsOn(table, table) {
			selfRefs = append(selfRefs, table)
		}
	}
	return selfRefs
}

// Visualize renders the sorted order as text, one line per table with its
// direct dependencies.
func (s *Sorter) Visualize() (string, error) {
	order, err := s.Sort()
	if err != nil {
		return "", err
	}

	lines := []string{"Database Dependency Graph:", strings.Repeat("=", 60)}
	for _, table := range order {
		deps := s.graph.Dependencies(table)
		if len(deps) > 0 {
			lines = append(lines, fmt.Sprintf("%s <- %s", table, strings.Join(deps, ", ")))
		} else {
			lines = append(lines, fmt.Sprintf("%s (no dependencies)", table))
		}
	}
	return strings.Join(lines, "\n"), nil
}
