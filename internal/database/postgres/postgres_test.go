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
package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataforge-db/dataforge/internal/database"
)

func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	pool, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return &database.DB{Pool: pool, Handler: postgresHandler{}}, mock
}

func TestQuoteIdentifier(t *testing.T) {
	h := postgresHandler{}
	assert.Equal(t, `"users"`, h.QuoteIdentifier("users"))
	assert.Equal(t, `"we""ird"`, h.QuoteIdentifier(`we"ird`))
}

func TestPlaceholderFormat(t *testing.T) {
	assert.Equal(t, sq.Dollar, postgresHandler{}.PlaceholderFormat())
}

func TestListTables(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT table_name").WillReturnRows(
		sqlmock.NewRows([]string{"table_name"}).AddRow("orders").AddRow("users"))

	tables, err := postgresHandler{}.ListTables(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"orders", "users"}, tables)
}

func TestListColumns(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{
		"column_name", "data_type", "udt_name", "is_nullable", "column_default", "is_identity", "is_primary_key",
	}).
		AddRow("id", "integer", "int4", "NO", "nextval('users_id_seq'::regclass)", "NO", true).
		AddRow("email", "text", "text", "NO", "", "NO", false).
		AddRow("tags", "ARRAY", "_text", "YES", "", "NO", false).
		AddRow("mood", "USER-DEFINED", "mood_enum", "YES", "", "NO", false)

	mock.ExpectQuery("SELECT").WithArgs("users").WillReturnRows(rows)

	columns, err := postgresHandler{}.ListColumns(db, "users")
	require.NoError(t, err)
	require.Len(t, columns, 4)

	id := columns[0]
	assert.True(t, id.IsPrimaryKey)
	assert.True(t, id.IsAutoIncrement, "serial default counts as autoincrement")
	assert.False(t, id.IsNullable)

	assert.Equal(t, "text", columns[1].ColumnType)
	assert.Equal(t, "text[]", columns[2].ColumnType)
	assert.Equal(t, "mood_enum", columns[3].ColumnType)
}

func TestResolveColumnType(t *testing.T) {
	assert.Equal(t, "integer[]", resolveColumnType("ARRAY", "_int4"))
	assert.Equal(t, "bigint[]", resolveColumnType("ARRAY", "_int8"))
	assert.Equal(t, "boolean[]", resolveColumnType("ARRAY", "_bool"))
	assert.Equal(t, "text[]", resolveColumnType("ARRAY", "_text"))
	assert.Equal(t, "status_enum", resolveColumnType("USER-DEFINED", "status_enum"))
	assert.Equal(t, "integer", resolveColumnType("integer", "int4"))
}

func TestListForeignKeys(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT").WithArgs("orders").WillReturnRows(
		sqlmock.NewRows([]string{"column_name", "ref_table", "ref_column"}).
			AddRow("user_id", "users", "id"))

	fks, err := postgresHandler{}.ListForeignKeys(db, "orders")
	require.NoError(t, err)
	require.Len(t, fks, 1)
	assert.Equal(t, database.ForeignKey{ColumnName: "user_id", ReferencedTable: "users", ReferencedColumn: "id"}, fks[0])
}

func TestSampleKeys(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT "id" FROM "users"`).WithArgs(100).WillReturnRows(
		sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))

	keys, err := postgresHandler{}.SampleKeys(context.Background(), db, "users", "id", 100)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(1), int64(2)}, keys)
}

func TestBindValue(t *testing.T) {
	h := postgresHandler{}

	v, err := h.BindValue([]string{"a", "b"})
	require.NoError(t, err)
	assert.NotNil(t, v, "typed slices bind as native arrays")

	v, err = h.BindValue(map[string]interface{}{"k": 1})
	require.NoError(t, err)
	assert.Equal(t, `{"k":1}`, v)

	v, err = h.BindValue("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", v)
}
