package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	sq "github.com/Masterminds/squirrel"

	"github.com/dataforge-db/dataforge/internal/config"
)

// DBAdapter defines the interface for database operations needed by the
// seeder: schema reflection on one side, row writing on the other.
type DBAdapter interface {
	ListTables() ([]string, error)
	ListColumns(tableName string) ([]ColumnInfo, error)
	ListForeignKeys(tableName string) ([]ForeignKey, error)
	SampleKeys(ctx context.Context, tableName string, columnName string, limit int) ([]interface{}, error)
	InsertRows(ctx context.Context, tableName string, columns []string, rows [][]interface{}) error
	Ping(ctx context.Context) error
	Close() error
	GetConfig() config.DatabaseConfig
}

var _ DBAdapter = (*DB)(nil)

// DB holds the database connection pool and dialect handler.
type DB struct {
	Pool    *sql.DB
	Handler DialectHandler
	Config  config.DatabaseConfig
}

// ColumnInfo holds the column metadata consulted by the value generation
// policy.
type ColumnInfo struct {
	Name            string
	DataType        string // coarse type family, e.g. "integer"
	ColumnType      string // full declared type, e.g. "enum('a','b')" or "text[]"
	IsNullable      bool
	IsPrimaryKey    bool
	IsAutoIncrement bool
}

// ForeignKey describes one foreign-key edge leaving a table.
type ForeignKey struct {
	ColumnName       string
	ReferencedTable  string
	ReferencedColumn string
}

var (
	dialectHandlers = make(map[string]DialectHandler)
	mu              sync.RWMutex
)

func RegisterDialectHandler(dialect string, handler DialectHandler) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := dialectHandlers[dialect]; exists {
		log.Printf("WARN: Dialect handler for '%s' is being overwritten.", dialect)
	}
	dialectHandlers[dialect] = handler
}

func GetDialectHandler(dialect string) (DialectHandler, error) {
	mu.RLock()
	defer mu.RUnlock()
	handler, ok := dialectHandlers[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported database dialect: %s", dialect)
	}
	return handler, nil
}

var currentConfig *config.DatabaseConfig

// SetConfig stores the connection configuration assembled from flags.
func SetConfig(cfg *config.DatabaseConfig) {
	currentConfig = cfg
}

// GetConfig returns the connection configuration set by SetConfig.
func GetConfig() *config.DatabaseConfig {
	return currentConfig
}

func New(cfg config.DatabaseConfig) (*DB, error) {
	handler, err := GetDialectHandler(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	var pool *sql.DB
	if strings.HasPrefix(cfg.Dialect, "cloudsql") {
		pool, err = handler.CreateCloudSQLPool(cfg)
	} else {
		pool, err = handler.CreateStandardPool(cfg)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create database pool for dialect %s: %w", cfg.Dialect, err)
	}

	ctx := context.Background()
	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database (ping failed) for dialect %s: %w", cfg.Dialect, err)
	}

	return &DB{
		Pool:    pool,
		Handler: handler,
		Config:  cfg,
	}, nil
}

func (db *DB) GetConfig() config.DatabaseConfig {
	return db.Config
}

func (db *DB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database connection pool is not initialized")
	}
	return db.Pool.PingContext(ctx)
}

func (db *DB) Close() error {
	if db.Pool != nil {
		return db.Pool.Close()
	}
	log.Println("WARN: Attempted to close a nil database connection pool.")
	return nil
}

// Query forwards to the underlying pool; dialect handlers use it for their
// reflection queries.
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.Pool.Query(query, args...)
}

func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.Pool.QueryRow(query, args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return db.Pool.QueryContext(ctx, query, args...)
}

func (db *DB) ListTables() ([]string, error) {
	if db.Handler == nil {
		return nil, fmt.Errorf("dialect handler not initialized")
	}
	return db.Handler.ListTables(db)
}

func (db *DB) ListColumns(tableName string) ([]ColumnInfo, error) {
	if db.Handler == nil {
		return nil, fmt.Errorf("dialect handler not initialized")
	}
	return db.Handler.ListColumns(db, tableName)
}

func (db *DB) ListForeignKeys(tableName string) ([]ForeignKey, error) {
	if db.Handler == nil {
		return nil, fmt.Errorf("dialect handler not initialized")
	}
	return db.Handler.ListForeignKeys(db, tableName)
}

func (db *DB) SampleKeys(ctx context.Context, tableName string, columnName string, limit int) ([]interface{}, error) {
	if db.Handler == nil {
		return nil, fmt.Errorf("dialect handler not initialized")
	}
	return db.Handler.SampleKeys(ctx, db, tableName, columnName, limit)
}

// InsertRows writes one batch of rows into tableName inside a single
// transaction. All rows share the same column set; values pass through the
// dialect handler's BindValue so driver-specific representations (arrays,
// JSON documents) bind correctly.
func (db *DB) InsertRows(ctx context.Context, tableName string, columns []string, rows [][]interface{}) error {
	if db.Pool == nil {
		return fmt.Errorf("database connection pool is not initialized")
	}
	if db.Handler == nil {
		return fmt.Errorf("dialect handler not initialized")
	}
	if len(rows) == 0 {
		log.Println("INFO: No rows provided to InsertRows.")
		return nil
	}

	quotedCols := make([]string, len(columns))
	for i, col := range columns {
		quotedCols[i] = db.Handler.QuoteIdentifier(col)
	}

	builder := sq.StatementBuilder.
		PlaceholderFormat(db.Handler.PlaceholderFormat()).
		Insert(db.Handler.QuoteIdentifier(tableName)).
		Columns(quotedCols...)

	for i, row := range rows {
		if len(row) != len(columns) {
			return fmt.Errorf("row #%d has %d values for %d columns", i+1, len(row), len(columns))
		}
		bound := make([]interface{}, len(row))
		for j, value := range row {
			bv, err := db.Handler.BindValue(value)
			if err != nil {
				return fmt.Errorf("failed to bind value for column %s: %w", columns[j], err)
			}
			bound[j] = bv
		}
		builder = builder.Values(bound...)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert statement for %s: %w", tableName, err)
	}

	tx, err := db.Pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert %d row(s) into %s: %w", len(rows), tableName, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DialectHandler is implemented once per supported database engine. Dialect
// packages register themselves through RegisterDialectHandler in init().
type DialectHandler interface {
	CreateCloudSQLPool(cfg config.DatabaseConfig) (*sql.DB, error)
	CreateStandardPool(cfg config.DatabaseConfig) (*sql.DB, error)
	QuoteIdentifier(name string) string
	PlaceholderFormat() sq.PlaceholderFormat
	ListTables(db *DB) ([]string, error)
	ListColumns(db *DB, tableName string) ([]ColumnInfo, error)
	ListForeignKeys(db *DB, tableName string) ([]ForeignKey, error)
	SampleKeys(ctx context.Context, db *DB, tableName string, columnName string, limit int) ([]interface{}, error)
	BindValue(value interface{}) (interface{}, error)
}
