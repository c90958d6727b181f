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

// Package seeder generates and inserts synthetic rows in dependency order.
// Foreign-key columns are filled with sampled keys from already-seeded parent
// tables; every other column goes through the value generation policy.
package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dataforge-db/dataforge/internal/config"
	"github.com/dataforge-db/dataforge/internal/database"
	"github.com/dataforge-db/dataforge/internal/topology"
)

// SchemaProvider reflects the current schema. Re-queried per call; never
// cached across calls, since schema may change between them.
type SchemaProvider interface {
	ListTables() ([]string, error)
	ListColumns(tableName string) ([]database.ColumnInfo, error)
	ListForeignKeys(tableName string) ([]database.ForeignKey, error)
}

// RowWriter samples live keys and writes row batches. InsertRows is expected
// to be atomic: on constraint violation the whole batch fails.
type RowWriter interface {
	SampleKeys(ctx context.Context, tableName string, columnName string, limit int) ([]interface{}, error)
	InsertRows(ctx context.Context, tableName string, columns []string, rows [][]interface{}) error
}

// Store is the backing database the seeder works against. *database.DB
// satisfies it.
type Store interface {
	SchemaProvider
	RowWriter
}

var _ Store = (*database.DB)(nil)

const (
	// DefaultMaxRows bounds the row count of a single seeding request.
	DefaultMaxRows = 1000
	// DefaultSampleLimit bounds how many parent keys are sampled per
	// foreign-key column. A tunable, not a correctness constant.
	DefaultSampleLimit = 100
)

// Service orchestrates seeding. Operations are synchronous and rebuild all
// derived state (graph, order, parent-key cache) per call.
type Service struct {
	store       Store
	logger      *zap.Logger
	maxRows     int
	sampleLimit int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMaxRows overrides the per-request row cap.
func WithMaxRows(n int) Option {
	return func(s *Service) { s.maxRows = n }
}

// WithSampleLimit overrides the parent-key sample bound.
func WithSampleLimit(n int) Option {
	return func(s *Service) { s.sampleLimit = n }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:       store,
		logger:      zap.NewNop(),
		maxRows:     DefaultMaxRows,
		sampleLimit: DefaultSampleLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request describes a single-table seeding call.
type Request struct {
	Table     string
	Count     int
	Locale    string
	Seed      uint64 // 0 means non-reproducible
	Overrides Overrides
}

// SchemaRequest describes a whole-schema seeding call. Overrides are keyed by
// table name.
type SchemaRequest struct {
	Count     int
	Locale    string
	Seed      uint64
	Overrides map[string]Overrides
}

// TableReport is the outcome of one table's seeding attempt.
type TableReport struct {
	Table    string
	Inserted int
	Locale   string
	Err      error
}

// Outcome renders the report as a single human-readable line.
func (r *TableReport) Outcome() string {
	if r.Err != nil {
		return fmt.Sprintf("Error seeding table '%s': %v", r.Table, r.Err)
	}
	return fmt.Sprintf("Inserted %d rows into '%s' with locale '%s'", r.Inserted, r.Table, r.Locale)
}

// SchemaReport accumulates per-table outcomes of a whole-schema run.
type SchemaReport struct {
	Order  []string
	Tables []*TableReport
}

// Failed reports how many tables did not seed.
func (r *SchemaReport) Failed() int {
	var n int
	for _, tr := range r.Tables {
		if tr.Err != nil {
			n++
		}
	}
	return n
}

// Summary renders the combined report.
func (r *SchemaReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Seeding %d table(s) in dependency order\n", len(r.Order))
	b.WriteString(strings.Repeat("=", 60))
	for _, tr := range r.Tables {
		b.WriteString("\n")
		b.WriteString(tr.Outcome())
	}
	if failed := r.Failed(); failed > 0 {
		fmt.Fprintf(&b, "\n%d of %d table(s) failed", failed, len(r.Tables))
	}
	return b.String()
}

// validate runs the pre-I/O input checks shared by both entry points.
func (s *Service) validate(count int, locale string) error {
	if count <= 0 {
		return fmt.Errorf("row count must be positive, got %d", count)
	}
	if count > s.maxRows {
		return &ErrRowCountExceeded{Count: count, Max: s.maxRows}
	}
	if !config.IsSupportedLocale(locale) {
		return &ErrUnsupportedLocale{Locale: locale}
	}
	return nil
}

// SeedTable seeds one table. The returned report always describes the
// outcome, including on error; the error return carries the same failure for
// callers that branch on it.
func (s *Service) SeedTable(ctx context.Context, req Request) (*TableReport, error) {
	report := &TableReport{Table: req.Table, Locale: req.Locale}
	fail := func(err error) (*TableReport, error) {
		report.Err = err
		s.logger.Warn("seeding failed",
			zap.String("table", req.Table),
			zap.Error(err))
		return report, err
	}

	if err := s.validate(req.Count, req.Locale); err != nil {
		return fail(err)
	}

	columns, err := s.store.ListColumns(req.Table)
	if err != nil {
		return fail(fmt.Errorf("failed to list columns for %s: %w", req.Table, err))
	}
	if len(columns) == 0 {
		return fail(fmt.Errorf("table '%s' has no columns; does it exist?", req.Table))
	}
	fks, err := s.store.ListForeignKeys(req.Table)
	if err != nil {
		return fail(fmt.Errorf("failed to list foreign keys for %s: %w", req.Table, err))
	}

	// Referential-integrity guard: every referenced table must already hold
	// rows to point at, sampled up to the configured bound.
	parentKeys := make(map[string][]interface{}, len(fks))
	for _, fk := range fks {
		keys, err := s.store.SampleKeys(ctx, fk.ReferencedTable, fk.ReferencedColumn, s.sampleLimit)
		if err != nil {
			return fail(fmt.Errorf("failed to sample keys from parent %s: %w", fk.ReferencedTable, err))
		}
		if len(keys) == 0 {
			return fail(&ErrEmptyParentTable{Table: req.Table, Parent: fk.ReferencedTable})
		}
		parentKeys[fk.ColumnName] = keys
	}

	rng := newRand(req.Seed)
	gen := newValueGenerator(req.Table, NewSource(req.Locale, req.Seed), rng, req.Overrides)

	// Column inclusion is row-independent, so the insert column set is
	// decided once up front.
	var insertCols []string
	var included []database.ColumnInfo
	for _, col := range columns {
		if _, isFK := parentKeys[col.Name]; !isFK && gen.Omits(col) {
			continue
		}
		insertCols = append(insertCols, col.Name)
		included = append(included, col)
	}
	if len(insertCols) == 0 {
		return fail(fmt.Errorf("table '%s' has no seedable columns", req.Table))
	}

	rows := make([][]interface{}, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		row := make([]interface{}, 0, len(insertCols))
		for _, col := range included {
			if keys, ok := parentKeys[col.Name]; ok {
				row = append(row, keys[rng.Intn(len(keys))])
				continue
			}
			value, _ := gen.ColumnValue(col)
			row = append(row, value)
		}
		rows = append(rows, row)
	}

	if err := s.store.InsertRows(ctx, req.Table, insertCols, rows); err != nil {
		return fail(err)
	}

	report.Inserted = len(rows)
	s.logger.Info("seeded table",
		zap.String("table", req.Table),
		zap.Int("rows", report.Inserted),
		zap.String("locale", req.Locale))
	return report, nil
}

// SeedAll seeds every table in topological order. A cycle aborts the whole
// run before any insert; a per-table failure is recorded and later tables are
// still attempted.
func (s *Service) SeedAll(ctx context.Context, req SchemaRequest) (*SchemaReport, error) {
	if err := s.validate(req.Count, req.Locale); err != nil {
		return nil, err
	}

	order, err := s.TableOrder()
	if err != nil {
		return nil, err
	}

	report := &SchemaReport{Order: order}
	for _, table := range order {
		tr, _ := s.SeedTable(ctx, Request{
			Table:     table,
			Count:     req.Count,
			Locale:    req.Locale,
			Seed:      req.Seed,
			Overrides: req.Overrides[table],
		})
		report.Tables = append(report.Tables, tr)
	}
	return report, nil
}

// buildGraph reflects the schema into a fresh dependency graph. Foreign keys
// referencing tables outside the reflected set are dropped, with a debug line
// so reflection gaps stay visible.
func (s *Service) buildGraph() (*topology.Graph, error) {
	tables, err := s.store.ListTables()
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	refs := make(map[string][]string, len(tables))
	for _, table := range tables {
		fks, err := s.store.ListForeignKeys(table)
		if err != nil {
			return nil, fmt.Errorf("failed to list foreign keys for %s: %w", table, err)
		}
		for _, fk := range fks {
			refs[table] = append(refs[table], fk.ReferencedTable)
		}
	}

	graph := topology.NewGraph(tables, refs)
	for table, referenced := range refs {
		for _, ref := range referenced {
			if !graph.HasTable(ref) {
				s.logger.Debug("dropping dangling foreign key",
					zap.String("table", table),
					zap.String("references", ref))
			}
		}
	}
	return graph, nil
}

// TableOrder returns the schema's dependency order. Fails with a
// *topology.CycleError when no order exists.
func (s *Service) TableOrder() ([]string, error) {
	graph, err := s.buildGraph()
	if err != nil {
		return nil, err
	}
	return topology.NewSorter(graph).Sort()
}

// DependencyTree renders the schema's dependency graph as text.
func (s *Service) DependencyTree() (string, error) {
	graph, err := s.buildGraph()
	if err != nil {
		return "", err
	}
	return topology.NewSorter(graph).Visualize()
}

// DependencyLevels groups tables by dependency level. Level 0 tables have no
// dependencies; each other table sits one above its deepest dependency.
func (s *Service) DependencyLevels() (map[int][]string, error) {
	graph, err := s.buildGraph()
	if err != nil {
		return nil, err
	}
	return topology.NewSorter(graph).Levels()
}

// SelfReferencingTables lists tables with a foreign key to themselves.
func (s *Service) SelfReferencingTables() ([]string, error) {
	graph, err := s.buildGraph()
	if err != nil {
		return nil, err
	}
	return topology.NewSorter(graph).SelfReferences(), nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(int64(seed)))
}
