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
package mysql

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
	return &database.DB{Pool: pool, Handler: mysqlHandler{}}, mock
}

func TestQuoteIdentifier(t *testing.T) {
	h := mysqlHandler{}
	assert.Equal(t, "`users`", h.QuoteIdentifier("users"))
	assert.Equal(t, "`we``ird`", h.QuoteIdentifier("we`ird"))
}

func TestPlaceholderFormat(t *testing.T) {
	assert.Equal(t, sq.Question, mysqlHandler{}.PlaceholderFormat())
}

func TestListColumns(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{
		"COLUMN_NAME", "DATA_TYPE", "COLUMN_TYPE", "IS_NULLABLE", "COLUMN_KEY", "EXTRA",
	}).
		AddRow("id", "int", "int(11)", "NO", "PRI", "auto_increment").
		AddRow("status", "enum", "enum('active','inactive')", "YES", "", "").
		AddRow("email", "varchar", "varchar(255)", "NO", "UNI", "")

	mock.ExpectQuery("SELECT COLUMN_NAME").WithArgs("users").WillReturnRows(rows)

	columns, err := mysqlHandler{}.ListColumns(db, "users")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	assert.True(t, columns[0].IsPrimaryKey)
	assert.True(t, columns[0].IsAutoIncrement)
	// COLUMN_TYPE keeps the enum labels for the value generator to parse.
	assert.Equal(t, "enum('active','inactive')", columns[1].ColumnType)
	assert.False(t, columns[1].IsPrimaryKey)
	assert.True(t, columns[1].IsNullable)
	assert.False(t, columns[2].IsNullable)
}

func TestListForeignKeys(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT COLUMN_NAME").WithArgs("orders").WillReturnRows(
		sqlmock.NewRows([]string{"COLUMN_NAME", "REFERENCED_TABLE_NAME", "REFERENCED_COLUMN_NAME"}).
			AddRow("user_id", "users", "id").
			AddRow("product_id", "products", "id"))

	fks, err := mysqlHandler{}.ListForeignKeys(db, "orders")
	require.NoError(t, err)
	require.Len(t, fks, 2)
	assert.Equal(t, "users", fks[0].ReferencedTable)
	assert.Equal(t, "products", fks[1].ReferencedTable)
}

func TestSampleKeysNormalizesBytes(t *testing.T) {
	db, mock := newMockDB(t)

	// The MySQL driver returns text values as []byte.
	mock.ExpectQuery("SELECT `code` FROM `users`").WithArgs(50).WillReturnRows(
		sqlmock.NewRows([]string{"code"}).AddRow([]byte("abc")).AddRow([]byte("def")))

	keys, err := mysqlHandler{}.SampleKeys(context.Background(), db, "users", "code", 50)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"abc", "def"}, keys)
}

func TestBindValue(t *testing.T) {
	h := mysqlHandler{}

	v, err := h.BindValue([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v, "no native arrays; composite values become JSON")

	v, err = h.BindValue(42)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}
