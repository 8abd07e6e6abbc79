// Package sqlstore reads and updates table rows through database/sql
// for the scrubber. Postgres (through the pgx or lib/pq drivers),
// SQLite, MySQL and SQL Server are supported.
//
// Rows are read a page at a time in primary key order, so no cursor is
// held open while rows are updated and a single connection is enough.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/colindecarlo/carwash"
)

// DefaultPageSize is the number of rows read per query
const DefaultPageSize = 500

// ErrRowNotFound reports an update that matched no row
var ErrRowNotFound = errors.New("row not found")

// Config holds the database connection settings
type Config struct {
	Driver   string // database/sql driver name: pgx, postgres, sqlite, mysql or sqlserver
	DSN      string // driver specific data source name
	PageSize int    // rows read per query, DefaultPageSize if 0
}

// Store is a carwash.RecordStore backed by a SQL database
type Store struct {
	db       *sqlx.DB
	dialect  dialect
	pageSize int
	logger   *zap.Logger
}

// Open connects to the database described by cfg and checks the
// connection
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {

	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, errors.New("sqlstore: DSN must not be empty")
	}
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: %w", err)
	}

	dsn, err := driverDSN(d, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: %w", err)
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open: %w", err)
	}
	if d.name == "sqlite" {
		// an in memory database only exists on its own connection
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlstore: ping: %w", err)
	}

	s := New(db, cfg.PageSize, logger)
	s.logger.Debug("connected", zap.String("driver", cfg.Driver))
	return s, nil
}

// driverDSN adjusts a DSN for the store. mysql reports changed rather than
// matched rows unless asked otherwise, which would hide an update of a
// missing row
func driverDSN(d dialect, dsn string) (string, error) {
	if d.name != "mysql" {
		return dsn, nil
	}
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	mc.ClientFoundRows = true
	return mc.FormatDSN(), nil
}

// New wraps an open database. The dialect is taken from the driver
// name the database was opened with
func New(db *sqlx.DB, pageSize int, logger *zap.Logger) *Store {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	// Open has already rejected unknown drivers
	d, err := dialectFor(db.DriverName())
	if err != nil {
		d = postgresDialect
	}
	return &Store{
		db:       db,
		dialect:  d,
		pageSize: pageSize,
		logger:   logger.Named("sqlstore"),
	}
}

// DB returns the underlying database
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Exec runs a statement written with ? placeholders
func (s *Store) Exec(ctx context.Context, query string, args ...any) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("sqlstore: exec: %w", err)
	}
	return nil
}

// Stream returns the rows of table in primary key order
func (s *Store) Stream(ctx context.Context, table string) (carwash.RowIterator, error) {
	if table == "" {
		return nil, errors.New("sqlstore: table name must not be empty")
	}
	return &rowIterator{store: s, table: table}, nil
}

// Update sets the patched columns of the row with primary key id
func (s *Store) Update(ctx context.Context, table string, id any, patch carwash.Row) error {

	if len(patch) == 0 {
		return nil
	}

	columns := make([]string, 0, len(patch))
	for c := range patch {
		columns = append(columns, c)
	}
	sort.Strings(columns)

	args := make([]any, 0, len(columns)+1)
	for _, c := range columns {
		args = append(args, patch[c])
	}
	args = append(args, id)

	query := s.db.Rebind(s.dialect.updateQuery(table, carwash.KeyColumn, columns))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqlstore: update %s: %w", table, err)
	}
	if !s.dialect.countsAffected {
		return nil
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: update %s: %w", table, err)
	}
	if n == 0 {
		return fmt.Errorf("sqlstore: update %s %s %v: %w", table, carwash.KeyColumn, id, ErrRowNotFound)
	}
	return nil
}

// rowIterator reads a table a page at a time, remembering the last key
// seen so that the next page starts after it
type rowIterator struct {
	store *Store
	table string
	page  []carwash.Row
	pos   int
	last  any
	done  bool
	row   carwash.Row
	err   error
}

func (it *rowIterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	if it.pos >= len(it.page) {
		if it.done {
			return false
		}
		if err := it.fetch(ctx); err != nil {
			it.err = err
			return false
		}
		if len(it.page) == 0 {
			return false
		}
	}
	it.row = it.page[it.pos]
	it.pos++
	return true
}

func (it *rowIterator) Row() carwash.Row {
	return it.row
}

func (it *rowIterator) Err() error {
	return it.err
}

func (it *rowIterator) Close() error {
	it.page = nil
	it.done = true
	return nil
}

// fetch reads the next page of rows
func (it *rowIterator) fetch(ctx context.Context) error {

	s := it.store
	after := it.last != nil
	query := s.db.Rebind(s.dialect.pageQuery(it.table, carwash.KeyColumn, after, s.pageSize))
	var args []any
	if after {
		args = append(args, it.last)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqlstore: read %s: %w", it.table, err)
	}
	defer rows.Close()

	page := make([]carwash.Row, 0, s.pageSize)
	for rows.Next() {
		m := map[string]any{}
		if err := rows.MapScan(m); err != nil {
			return fmt.Errorf("sqlstore: scan %s: %w", it.table, err)
		}
		page = append(page, normalise(m))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("sqlstore: read %s: %w", it.table, err)
	}

	it.page = page
	it.pos = 0
	if len(page) < s.pageSize {
		it.done = true
	}
	if len(page) > 0 {
		last, ok := page[len(page)-1][carwash.KeyColumn]
		if !ok {
			return fmt.Errorf("sqlstore: table %s has no %s column", it.table, carwash.KeyColumn)
		}
		it.last = last
	}
	s.logger.Debug("read page",
		zap.String("table", it.table),
		zap.Int("rows", len(page)),
	)
	return nil
}

// normalise turns driver byte slices into strings so that rows compare
// and print the same whichever driver read them
func normalise(m map[string]any) carwash.Row {
	r := make(carwash.Row, len(m))
	for k, v := range m {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		r[k] = v
	}
	return r
}
