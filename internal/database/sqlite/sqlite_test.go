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
package sqlite

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataforge-db/dataforge/internal/config"
	"github.com/dataforge-db/dataforge/internal/database"
)

func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	pool, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return &database.DB{Pool: pool, Handler: sqliteHandler{}}, mock
}

func TestCloudSQLNotSupported(t *testing.T) {
	_, err := sqliteHandler{}.CreateCloudSQLPool(config.DatabaseConfig{})
	assert.Error(t, err)
}

func TestStandardPoolRequiresPath(t *testing.T) {
	_, err := sqliteHandler{}.CreateStandardPool(config.DatabaseConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file path")
}

func TestListTablesSkipsInternal(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT name FROM sqlite_master").WillReturnRows(
		sqlmock.NewRows([]string{"name"}).AddRow("orders").AddRow("users"))

	tables, err := sqliteHandler{}.ListTables(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"orders", "users"}, tables)
}

func TestListColumns(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"cid", "name", "type", "notnull", "dflt_value", "pk"}).
		AddRow(0, "id", "INTEGER", 0, nil, 1).
		AddRow(1, "name", "TEXT", 1, nil, 0).
		AddRow(2, "code", "TEXT", 0, nil, 0)

	mock.ExpectQuery(`PRAGMA table_info`).WillReturnRows(rows)

	columns, err := sqliteHandler{}.ListColumns(db, "users")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	// INTEGER PRIMARY KEY is the rowid alias and behaves as autoincrement.
	assert.True(t, columns[0].IsPrimaryKey)
	assert.True(t, columns[0].IsAutoIncrement)
	assert.False(t, columns[1].IsNullable)
	assert.False(t, columns[1].IsAutoIncrement)
	assert.True(t, columns[2].IsNullable)
}

func TestListForeignKeys(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "seq", "table", "from", "to", "on_update", "on_delete", "match"}).
		AddRow(0, 0, "users", "user_id", "id", "NO ACTION", "NO ACTION", "NONE").
		AddRow(1, 0, "products", "product_id", nil, "NO ACTION", "NO ACTION", "NONE")

	mock.ExpectQuery(`PRAGMA foreign_key_list`).WillReturnRows(rows)

	fks, err := sqliteHandler{}.ListForeignKeys(db, "order_items")
	require.NoError(t, err)
	require.Len(t, fks, 2)
	assert.Equal(t, "id", fks[0].ReferencedColumn)
	// A NULL "to" column means the parent's primary key.
	assert.Equal(t, "id", fks[1].ReferencedColumn)
	assert.Equal(t, "products", fks[1].ReferencedTable)
}
