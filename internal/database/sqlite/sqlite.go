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
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/dataforge-db/dataforge/internal/config"
	"github.com/dataforge-db/dataforge/internal/database"
)

// sqliteHandler struct implements database.DialectHandler for SQLite.
type sqliteHandler struct{}

var _ database.DialectHandler = (*sqliteHandler)(nil)

// CreateCloudSQLPool is not applicable to SQLite.
func (h sqliteHandler) CreateCloudSQLPool(cfg config.DatabaseConfig) (*sql.DB, error) {
	return nil, fmt.Errorf("cloud sql is not supported for sqlite")
}

// CreateStandardPool opens the SQLite database file with foreign keys on.
func (h sqliteHandler) CreateStandardPool(cfg config.DatabaseConfig) (*sql.DB, error) {
	path := cfg.FilePath
	if path == "" {
		path = cfg.DBName
	}
	if path == "" {
		return nil, fmt.Errorf("sqlite requires a database file path")
	}

	dbPool, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("sql.Open (sqlite): %w", err)
	}
	return dbPool, nil
}

func (h sqliteHandler) QuoteIdentifier(name string) string {
	name = strings.Replace(name, `"`, `""`, -1)
	return fmt.Sprintf(`"%s"`, name)
}

// PlaceholderFormat for SQLite (?)
func (h sqliteHandler) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Question
}

func (h sqliteHandler) ListTables(db *database.DB) ([]string, error) {
	query := `
		SELECT name FROM sqlite_master
		WHERE type = 'table'
		AND name NOT LIKE 'sqlite_%'
		ORDER BY name;`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, fmt.Errorf("error scanning table name: %w", err)
		}
		tables = append(tables, tableName)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating table rows: %w", err)
	}

	return tables, nil
}

// ListColumns for SQLite via PRAGMA table_info. An INTEGER PRIMARY KEY column
// is the rowid alias and behaves as autoincrement.
func (h sqliteHandler) ListColumns(db *database.DB, tableName string) ([]database.ColumnInfo, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s)", h.QuoteIdentifier(tableName))
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}
	defer rows.Close()

	var columns []database.ColumnInfo
	for rows.Next() {
		var (
			cid          int
			name         string
			declaredType string
			notNull      int
			defaultValue sql.NullString
			pk           int
		)
		if err := rows.Scan(&cid, &name, &declaredType, &notNull, &defaultValue, &pk); err != nil {
			return nil, fmt.Errorf("error scanning column metadata: %w", err)
		}
		isInteger := strings.EqualFold(declaredType, "INTEGER")
		columns = append(columns, database.ColumnInfo{
			Name:            name,
			DataType:        strings.ToLower(declaredType),
			ColumnType:      strings.ToLower(declaredType),
			IsNullable:      notNull == 0 && pk == 0,
			IsPrimaryKey:    pk > 0,
			IsAutoIncrement: pk > 0 && isInteger,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column rows: %w", err)
	}

	return columns, nil
}

// ListForeignKeys for SQLite via PRAGMA foreign_key_list. A NULL "to" column
// means the key references the parent's primary key.
func (h sqliteHandler) ListForeignKeys(db *database.DB, tableName string) ([]database.ForeignKey, error) {
	query := fmt.Sprintf("PRAGMA foreign_key_list(%s)", h.QuoteIdentifier(tableName))
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute foreign key detection query: %w", err)
	}
	defer rows.Close()

	var fks []database.ForeignKey
	for rows.Next() {
		var (
			id, seq            int
			refTable, fromCol  string
			toCol              sql.NullString
			onUpdate, onDelete string
			match              string
		)
		if err := rows.Scan(&id, &seq, &refTable, &fromCol, &toCol, &onUpdate, &onDelete, &match); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key info: %w", err)
		}
		refColumn := toCol.String
		if refColumn == "" {
			refColumn = "id"
		}
		fks = append(fks, database.ForeignKey{
			ColumnName:       fromCol,
			ReferencedTable:  refTable,
			ReferencedColumn: refColumn,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foreign key rows: %w", err)
	}

	return fks, nil
}

// SampleKeys for SQLite
func (h sqliteHandler) SampleKeys(ctx context.Context, db *database.DB, tableName string, columnName string, limit int) ([]interface{}, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s IS NOT NULL LIMIT ?",
		h.QuoteIdentifier(columnName), h.QuoteIdentifier(tableName), h.QuoteIdentifier(columnName))

	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to sample keys from %s.%s: %w", tableName, columnName, err)
	}
	return database.ScanSampleRows(rows)
}

// BindValue for SQLite. Composite values become JSON text.
func (h sqliteHandler) BindValue(value interface{}) (interface{}, error) {
	return database.MarshalComplexValue(value)
}

func init() {
	database.RegisterDialectHandler("sqlite", sqliteHandler{})
	database.RegisterDialectHandler("sqlite3", sqliteHandler{})
}
