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

import "sort"

// Graph is a directed dependency graph over table names. An edge from T to P
// means rows of T reference rows of P through a foreign key, so P must be
// seeded before T.
type Graph struct {
	deps map[string]map[string]struct{}
}

// NewGraph builds a graph from the full set of table names and, per table, the
// list of tables its foreign keys reference. Every known table becomes a node
// with an initially empty dependency set. References to tables outside the
// known set are dropped: a dangling foreign key cannot be ordered against a
// node that does not exist.
func NewGraph(tables []string, refs map[string][]string) *Graph {
	g := &Graph{deps: make(map[string]map[string]struct{}, len(tables))}
	for _, table := range tables {
		g.deps[table] = make(map[string]struct{})
	}
	for table, referenced := range refs {
		node, ok := g.deps[table]
		if !ok {
			continue
		}
		for _, ref := range referenced {
			if _, known := g.deps[ref]; known {
				node[ref] = struct{}{}
			}
		}
	}
	return g
}

// Len returns the number of tables in the graph.
func (g *Graph) Len() int {
	return len(g.deps)
}

// HasTable reports whether the graph contains the given table.
func (g *Graph) HasTable(name string) bool {
	_, ok := g.deps[name]
	return ok
}

// Tables returns all table names in sorted order.
func (g *Graph) Tables() []string {
	tables := make([]string, 0, len(g.deps))
	for table := range g.deps {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}

// Dependencies returns the tables the given table directly depends on, in
// sorted order. Unknown tables have no dependencies.
func (g *Graph) Dependencies(table string) []string {
	deps := make([]string, 0, len(g.deps[table]))
	for dep := range g.deps[table] {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps
}

// DependsOn reports whether table directly depends on candidate.
func (g *Graph) DependsOn(table, candidate string) bool {
	_, ok := g.deps[table][candidate]
	return ok
}

// Dependents returns the tables that list the given table as a direct
// dependency, in sorted order.
func (g *Graph) Dependents(table string) []string {
	var dependents []string
	for other, deps := range g.deps {
		if _, ok := deps[table]; ok {
			dependents = append(dependents, other)
		}
	}
	sort.Strings(dependents)
	return dependents
}

// TransitiveDependencies returns every table reachable from the given table
// through dependency edges, in sorted order. The traversal is an explicit
// worklist rather than recursion so pathological schemas cannot exhaust the
// stack.
func (g *Graph) TransitiveDependencies(table string) []string {
	visited := map[string]struct{}{table: {}}
	var all []string
	work := []string{table}
	for len(work) > 0 {
		current := work[len(work)-1]
		work = work[:len(work)-1]
		for dep := range g.deps[current] {
			if _, seen := visited[dep]; seen {
				continue
			}
			visited[dep] = struct{}{}
			all = append(all, dep)
			work = append(work, dep)
		}
	}
	sort.Strings(all)
	return all
}
