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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataforge-db/dataforge/internal/database"
)

// stubSource returns fixed sentinels so tests assert on categories, not on
// faker output.
type stubSource struct{}

func (stubSource) Locale() string      { return "en_US" }
func (stubSource) PersonName() string  { return "stub-person" }
func (stubSource) Email() string       { return "stub@example.com" }
func (stubSource) Phone() string       { return "stub-phone" }
func (stubSource) Address() string     { return "stub-address" }
func (stubSource) City() string        { return "stub-city" }
func (stubSource) Country() string     { return "stub-country" }
func (stubSource) Company() string     { return "stub-company" }
func (stubSource) Word() string        { return "stub-word" }
func (stubSource) Text(int) string     { return "stub-text" }
func (stubSource) Paragraph() string   { return "stub-paragraph" }
func (stubSource) Bool() bool          { return true }
func (stubSource) UUID() string        { return "00000000-0000-4000-8000-000000000000" }
func (stubSource) IntBetween(min, max int) int             { return min }
func (stubSource) FloatBetween(min, max float64) float64   { return min }
func (stubSource) DateBetween(start, _ time.Time) time.Time { return start }

// fixedRand always picks the first candidate.
type fixedRand struct{}

func (fixedRand) Intn(n int) int   { return 0 }
func (fixedRand) Float64() float64 { return 0.5 }

func newTestGenerator(table string, overrides Overrides) *valueGenerator {
	return newValueGenerator(table, stubSource{}, fixedRand{}, overrides)
}

func column(name, dataType string) database.ColumnInfo {
	return database.ColumnInfo{Name: name, DataType: dataType, ColumnType: dataType}
}

func TestOverridesWinOverEverything(t *testing.T) {
	gen := newTestGenerator("users", Overrides{"id": {42}})

	// Even an autoincrement primary key is generated when overridden.
	v, include := gen.ColumnValue(database.ColumnInfo{
		Name:            "id",
		DataType:        "integer",
		IsPrimaryKey:    true,
		IsAutoIncrement: true,
	})
	assert.True(t, include)
	assert.Equal(t, 42, v)
}

func TestOverridesExactNameBeforeLowercase(t *testing.T) {
	gen := newTestGenerator("users", Overrides{
		"Role": {"exact"},
		"role": {"lower"},
	})

	v, include := gen.ColumnValue(column("Role", "text"))
	assert.True(t, include)
	assert.Equal(t, "exact", v)
}

func TestOverridesLowercaseFallback(t *testing.T) {
	gen := newTestGenerator("users", Overrides{"role": {"admin"}})

	v, include := gen.ColumnValue(column("Role", "text"))
	assert.True(t, include)
	assert.Equal(t, "admin", v)
}

func TestOmitsAutoincrementAndIDPrimaryKey(t *testing.T) {
	gen := newTestGenerator("users", nil)

	autoInc := database.ColumnInfo{Name: "seq", DataType: "integer", IsAutoIncrement: true}
	assert.True(t, gen.Omits(autoInc))
	_, include := gen.ColumnValue(autoInc)
	assert.False(t, include)

	idPK := database.ColumnInfo{Name: "ID", DataType: "integer", IsPrimaryKey: true}
	assert.True(t, gen.Omits(idPK))

	// A non-autoincrement primary key with another name is generated.
	codePK := database.ColumnInfo{Name: "code", DataType: "text", IsPrimaryKey: true}
	assert.False(t, gen.Omits(codePK))
}

func TestUUIDColumns(t *testing.T) {
	gen := newTestGenerator("documents", nil)

	for _, col := range []database.ColumnInfo{
		column("user_uuid", "text"),
		column("guid", "text"),
		column("token", "uuid"),
	} {
		v, include := gen.ColumnValue(col)
		assert.True(t, include)
		assert.Equal(t, "00000000-0000-4000-8000-000000000000", v, "column %s", col.Name)
	}
}

func TestUserTableHeuristics(t *testing.T) {
	gen := newTestGenerator("users", nil)

	v, _ := gen.ColumnValue(column("username", "integer"))
	assert.Equal(t, "stub-person", v, "name heuristic beats declared type")

	v, _ = gen.ColumnValue(column("email", "text"))
	assert.Equal(t, "stub@example.com", v)
}

func TestOrderTableHeuristics(t *testing.T) {
	gen := newTestGenerator("orders", nil)

	v, _ := gen.ColumnValue(column("total_amount", "numeric"))
	assert.Equal(t, 100.0, v)

	v, _ = gen.ColumnValue(column("order_date", "date"))
	date, ok := v.(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.Now().Year(), date.Year())

	v, _ = gen.ColumnValue(column("status", "text"))
	assert.Equal(t, "pending", v)
}

func TestGeneralNameHeuristics(t *testing.T) {
	gen := newTestGenerator("misc", nil)

	cases := map[string]interface{}{
		"contact_email": "stub@example.com",
		"phone_number":  "stub-phone",
		"author":        "stub-person",
		"home_address":  "stub-address",
		"city":          "stub-city",
		"country":       "stub-country",
		"company":       "stub-company",
		"description":   "stub-paragraph",
		"bio":           "stub-paragraph",
	}
	for name, want := range cases {
		v, include := gen.ColumnValue(column(name, "text"))
		assert.True(t, include)
		assert.Equal(t, want, v, "column %s", name)
	}

	v, _ := gen.ColumnValue(column("price", "numeric"))
	assert.Equal(t, 100.0, v)

	v, _ = gen.ColumnValue(column("status", "text"))
	assert.Equal(t, "active", v, "generic status set outside order tables")

	v, _ = gen.ColumnValue(column("created_at", "timestamp"))
	ts, ok := v.(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().AddDate(-1, 0, 0), ts, time.Hour)
}

func TestTypeHeuristics(t *testing.T) {
	gen := newTestGenerator("misc", nil)

	v, _ := gen.ColumnValue(column("quantity_field", "integer"))
	assert.Equal(t, 1, v)

	v, _ = gen.ColumnValue(column("label", "varchar"))
	assert.Equal(t, "stub-text", v)

	v, _ = gen.ColumnValue(column("enabled", "boolean"))
	assert.Equal(t, true, v)

	v, _ = gen.ColumnValue(column("weight", "decimal"))
	assert.Equal(t, 10.0, v)

	v, _ = gen.ColumnValue(column("shipped_on", "date"))
	_, ok := v.(time.Time)
	assert.True(t, ok)
}

func TestEnumColumns(t *testing.T) {
	gen := newTestGenerator("misc", nil)

	v, _ := gen.ColumnValue(column("kind", "enum('small','medium','large')"))
	assert.Equal(t, "small", v)

	// Unparseable enum definitions fall back to a word.
	v, _ = gen.ColumnValue(column("kind", "enum"))
	assert.Equal(t, "stub-word", v)
}

func TestParseEnumLabels(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, parseEnumLabels("enum('a','b','c')"))
	assert.Equal(t, []string{"x"}, parseEnumLabels(`ENUM("x")`))
	assert.Nil(t, parseEnumLabels("integer"))
	assert.Nil(t, parseEnumLabels("enum"))
}

func TestPointColumns(t *testing.T) {
	gen := newTestGenerator("misc", nil)

	v, _ := gen.ColumnValue(column("location", "point"))
	// Float64 is pinned at 0.5, the middle of both ranges.
	assert.Equal(t, "POINT(0.000000 0.000000)", v)
}

func TestJSONColumns(t *testing.T) {
	gen := newTestGenerator("misc", nil)

	// Intn pinned at 0 selects the structured-object shape.
	v, _ := gen.ColumnValue(column("metadata", "jsonb"))
	obj, ok := v.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, obj, "id")
	assert.Contains(t, obj, "tags")
}

func TestArrayColumns(t *testing.T) {
	gen := newTestGenerator("misc", nil)

	v, _ := gen.ColumnValue(column("scores", "integer[]"))
	assert.Equal(t, []int{1}, v)

	v, _ = gen.ColumnValue(column("labels", "text[]"))
	assert.Equal(t, []string{"stub-word"}, v)

	v, _ = gen.ColumnValue(column("flags", "boolean[]"))
	assert.Equal(t, []bool{true}, v)
}

func TestFallbackWord(t *testing.T) {
	gen := newTestGenerator("misc", nil)

	v, include := gen.ColumnValue(column("zzz", "mystery"))
	assert.True(t, include)
	assert.Equal(t, "stub-word", v)
}

func TestColumnTypeFallsBackToDataType(t *testing.T) {
	gen := newTestGenerator("misc", nil)

	v, _ := gen.ColumnValue(database.ColumnInfo{Name: "quantity_field", DataType: "integer"})
	assert.Equal(t, 1, v)
}
