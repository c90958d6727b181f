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
package seeder

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/dataforge-db/dataforge/internal/database"
)

// Overrides maps column names to caller-supplied candidate literals. Lookup
// tries the exact name first, then the lowercased name.
type Overrides map[string][]interface{}

// columnContext is the lowercased view of a column the rules match against.
type columnContext struct {
	table string
	name  string
	typ   string
}

// valueRule pairs a predicate with the generator it selects. Rules are
// evaluated in declaration order and the first match wins, so the ordering of
// the rule table below is load-bearing.
type valueRule struct {
	match    func(c columnContext) bool
	generate func(g *valueGenerator, c columnContext) interface{}
}

// valueGenerator resolves columns to values for one seeding call. It is not
// safe for concurrent use; the orchestrator builds one per call.
type valueGenerator struct {
	table     string
	src       ValueSource
	rng       randChooser
	overrides Overrides
}

// randChooser is the subset of *math/rand.Rand the generator draws from.
type randChooser interface {
	Intn(n int) int
	Float64() float64
}

func newValueGenerator(table string, src ValueSource, rng randChooser, overrides Overrides) *valueGenerator {
	return &valueGenerator{
		table:     strings.ToLower(table),
		src:       src,
		rng:       rng,
		overrides: overrides,
	}
}

// Omits reports whether the column should be left out of the insert so the
// store assigns it: autoincrement columns and primary keys named "id". An
// override always forces the column back in.
func (g *valueGenerator) Omits(col database.ColumnInfo) bool {
	if _, ok := g.overrideFor(col.Name); ok {
		return false
	}
	name := strings.ToLower(col.Name)
	return col.IsAutoIncrement || (name == "id" && col.IsPrimaryKey)
}

// ColumnValue resolves one column to a value. The second return is false when
// the column should be omitted from the insert. This never fails: every column
// resolves to a value or to omission.
func (g *valueGenerator) ColumnValue(col database.ColumnInfo) (interface{}, bool) {
	if values, ok := g.overrideFor(col.Name); ok {
		return values[g.rng.Intn(len(values))], true
	}
	if g.Omits(col) {
		return nil, false
	}

	c := columnContext{
		table: g.table,
		name:  strings.ToLower(col.Name),
		typ:   strings.ToLower(col.ColumnType),
	}
	if c.typ == "" {
		c.typ = strings.ToLower(col.DataType)
	}

	for _, rule := range valueRules {
		if rule.match(c) {
			return rule.generate(g, c), true
		}
	}
	return g.src.Word(), true
}

func (g *valueGenerator) overrideFor(columnName string) ([]interface{}, bool) {
	if len(g.overrides) == 0 {
		return nil, false
	}
	if values, ok := g.overrides[columnName]; ok && len(values) > 0 {
		return values, true
	}
	if values, ok := g.overrides[strings.ToLower(columnName)]; ok && len(values) > 0 {
		return values, true
	}
	return nil, false
}

var (
	orderStatuses   = []string{"pending", "completed", "cancelled", "processing", "shipped"}
	genericStatuses = []string{"active", "inactive", "pending"}

	enumPattern = regexp.MustCompile(`(?i)enum\s*\((.*?)\)`)
)

// valueRules is the generation policy: UUID columns, then table-scoped
// heuristics, then general name heuristics, then declared-type heuristics.
// Overrides and omission are handled before the table is consulted.
var valueRules = []valueRule{
	// Identifier columns.
	{
		match: func(c columnContext) bool {
			return strings.Contains(c.name, "uuid") || strings.Contains(c.name, "guid") || strings.Contains(c.typ, "uuid")
		},
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.src.UUID() },
	},

	// Table-scoped heuristics for user-like tables.
	{
		match: func(c columnContext) bool {
			return isUserTable(c.table) && (strings.Contains(c.name, "name") || strings.Contains(c.name, "user"))
		},
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.src.PersonName() },
	},
	{
		match: func(c columnContext) bool {
			return isUserTable(c.table) && strings.Contains(c.name, "email")
		},
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.src.Email() },
	},

	// Table-scoped heuristics for order-like tables.
	{
		match: func(c columnContext) bool {
			return isOrderTable(c.table) && containsAny(c.name, "amount", "total", "price")
		},
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.money(100, 5000) },
	},
	{
		match: func(c columnContext) bool {
			return isOrderTable(c.table) && strings.Contains(c.name, "date")
		},
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.dateThisYear() },
	},
	{
		match: func(c columnContext) bool {
			return isOrderTable(c.table) && strings.Contains(c.name, "status")
		},
		generate: func(g *valueGenerator, c columnContext) interface{} {
			return orderStatuses[g.rng.Intn(len(orderStatuses))]
		},
	},

	// General name heuristics, in fixed order.
	{
		match:    nameContains("email"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.src.Email() },
	},
	{
		match:    nameContains("phone", "tel"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.src.Phone() },
	},
	{
		match:    nameContains("name", "user", "author"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.src.PersonName() },
	},
	{
		match:    nameContains("address"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.src.Address() },
	},
	{
		match:    nameContains("city"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.src.City() },
	},
	{
		match:    nameContains("country"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.src.Country() },
	},
	{
		match:    nameContains("company"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.src.Company() },
	},
	{
		match:    nameContains("created_at", "updated_at"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.dateLastYear() },
	},
	{
		match:    nameContains("price", "amount", "total"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.money(100, 5000) },
	},
	{
		match: nameContains("status"),
		generate: func(g *valueGenerator, c columnContext) interface{} {
			return genericStatuses[g.rng.Intn(len(genericStatuses))]
		},
	},
	{
		match:    nameContains("description", "bio"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.src.Paragraph() },
	},

	// Declared-type heuristics.
	{
		match:    typeContains("json"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.jsonValue() },
	},
	{
		match:    typeContains("[]", "array"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.arrayValue(c.typ) },
	},
	{
		match: typeContains("enum"),
		generate: func(g *valueGenerator, c columnContext) interface{} {
			if labels := parseEnumLabels(c.typ); len(labels) > 0 {
				return labels[g.rng.Intn(len(labels))]
			}
			return g.src.Word()
		},
	},
	{
		match:    typeContains("point", "geometry"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.pointValue() },
	},
	{
		match:    typeContains("int"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.src.IntBetween(1, 1000) },
	},
	{
		match:    typeContains("varchar", "text", "char"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.src.Text(50) },
	},
	{
		match:    typeContains("bool"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.src.Bool() },
	},
	{
		match:    typeContains("decimal", "numeric", "float", "double", "real", "money"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.money(10, 1000) },
	},
	{
		match:    typeContains("date", "time"),
		generate: func(g *valueGenerator, c columnContext) interface{} { return g.dateThisYear() },
	},
}

func isUserTable(table string) bool {
	return table == "users" || table == "user"
}

func isOrderTable(table string) bool {
	return table == "orders" || table == "order"
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func nameContains(substrings ...string) func(columnContext) bool {
	return func(c columnContext) bool { return containsAny(c.name, substrings...) }
}

func typeContains(substrings ...string) func(columnContext) bool {
	return func(c columnContext) bool { return containsAny(c.typ, substrings...) }
}

func (g *valueGenerator) money(min, max float64) float64 {
	return math.Round(g.src.FloatBetween(min, max)*100) / 100
}

func (g *valueGenerator) dateThisYear() time.Time {
	now := time.Now()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return g.src.DateBetween(start, now)
}

func (g *valueGenerator) dateLastYear() time.Time {
	now := time.Now()
	return g.src.DateBetween(now.AddDate(-1, 0, 0), now)
}

// jsonValue produces one of three shapes: a structured object, an array of
// small objects, or a flat key/value pair.
func (g *valueGenerator) jsonValue() interface{} {
	switch g.rng.Intn(3) {
	case 0:
		tags := make([]string, 1+g.rng.Intn(5))
		for i := range tags {
			tags[i] = g.src.Word()
		}
		return map[string]interface{}{
			"id":         g.src.IntBetween(1, 1000),
			"name":       g.src.Word(),
			"value":      g.src.IntBetween(1, 100),
			"active":     g.src.Bool(),
			"created_at": g.dateLastYear().Format(time.RFC3339),
			"tags":       tags,
		}
	case 1:
		items := make([]map[string]interface{}, 1+g.rng.Intn(5))
		for i := range items {
			items[i] = map[string]interface{}{
				"id":    i,
				"name":  g.src.Word(),
				"value": g.src.IntBetween(1, 100),
			}
		}
		return items
	default:
		return map[string]interface{}{
			"data":  g.src.Word(),
			"value": g.src.IntBetween(1, 1000),
		}
	}
}

// arrayValue produces a short slice whose element type follows the declared
// element type; unknown element types default to text.
func (g *valueGenerator) arrayValue(typ string) interface{} {
	length := 1 + g.rng.Intn(5)
	switch {
	case strings.Contains(typ, "int"):
		values := make([]int, length)
		for i := range values {
			values[i] = g.src.IntBetween(1, 100)
		}
		return values
	case strings.Contains(typ, "bool"):
		values := make([]bool, length)
		for i := range values {
			values[i] = g.src.Bool()
		}
		return values
	default:
		values := make([]string, length)
		for i := range values {
			values[i] = g.src.Word()
		}
		return values
	}
}

// parseEnumLabels extracts candidate labels from a declared enum type such as
// "enum('active','inactive','pending')".
func parseEnumLabels(typ string) []string {
	match := enumPattern.FindStringSubmatch(typ)
	if match == nil {
		return nil
	}
	var labels []string
	for _, part := range strings.Split(match[1], ",") {
		label := strings.Trim(strings.TrimSpace(part), `'"`)
		if label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

// pointValue renders a spatial point in PostGIS text form, longitude first.
func (g *valueGenerator) pointValue() string {
	lat := g.rng.Float64()*180 - 90
	lon := g.rng.Float64()*360 - 180
	return fmt.Sprintf("POINT(%.6f %.6f)", lon, lat)
}
