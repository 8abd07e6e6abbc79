package carwash

import (
	"context"

	"go.uber.org/zap"

	"github.com/colindecarlo/carwash/faker"
)

// Scrubber rewrites configured columns of a RecordStore's tables with
// values from a Faker. It is not safe for concurrent use as it shares a
// single Faker across every formatter
type Scrubber struct {
	store  RecordStore
	faker  *faker.Faker
	logger *zap.Logger
}

// Option configures a Scrubber
type Option func(*Scrubber)

// WithLogger sets the Scrubber's logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Scrubber) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewScrubber makes a Scrubber over store. A nil Faker is replaced by a
// randomly seeded one
func NewScrubber(store RecordStore, f *faker.Faker, opts ...Option) *Scrubber {
	if f == nil {
		f = faker.New(0)
	}
	s := &Scrubber{
		store:  store,
		faker:  f,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Targets returns the configured tables to scrub: every configured
// table if no tables are requested, otherwise the requested tables that
// are configured. Declared order is kept and unknown names are dropped
func Targets(cfg *Config, tables []string) []string {
	all := cfg.Tables()
	if len(tables) == 0 {
		return all
	}
	requested := make(map[string]bool, len(tables))
	for _, t := range tables {
		requested[t] = true
	}
	targets := []string{}
	for _, t := range all {
		if requested[t] {
			targets = append(targets, t)
		}
	}
	return targets
}

// Run scrubs the requested tables of cfg, or every configured table if
// none are requested. Run stops at the first error; tables scrubbed
// before the error stay scrubbed
func (s *Scrubber) Run(ctx context.Context, cfg *Config, tables ...string) error {

	targets := Targets(cfg, tables)
	if len(tables) > 0 {
		for _, t := range tables {
			if _, ok := cfg.Rule(t); !ok {
				s.logger.Debug("ignoring unconfigured table", zap.String("table", t))
			}
		}
	}

	for _, table := range targets {
		rule, _ := cfg.Rule(table)
		if err := s.ScrubTable(ctx, table, rule); err != nil {
			return err
		}
	}
	return nil
}

// ScrubTable scrubs every row of a table according to rule, writing one
// update per changed row. Formatters are resolved before the first row
// is read so that configuration errors leave the table untouched
func (s *Scrubber) ScrubTable(ctx context.Context, table string, rule Rule) error {

	if err := rule.validate(); err != nil {
		return &ScrubError{Table: table, Err: err}
	}
	var columns []boundColumn
	if rule.Record == nil {
		var err error
		columns, err = resolveColumns(table, rule.Columns)
		if err != nil {
			return err
		}
	}

	log := s.logger.With(zap.String("table", table))
	log.Info("scrubbing table")

	rows, err := s.store.Stream(ctx, table)
	if err != nil {
		return &ScrubError{Table: table, Err: storeError(err)}
	}
	defer rows.Close()

	var scanned, updated int
	for rows.Next(ctx) {
		row := rows.Row()
		scanned++

		id := row.ID()
		if id == nil {
			return &ScrubError{Table: table, Err: configError("row has no %s column", KeyColumn)}
		}

		var patch Row
		if rule.Record != nil {
			patch, err = s.scrubRecord(rule.Record, row)
		} else {
			patch, err = scrubColumns(columns, row, s.faker)
		}
		if err != nil {
			return rowError(table, id, err)
		}

		if len(patch) == 0 {
			log.Debug("nothing to update", zap.Any("id", id))
			continue
		}
		if err := s.store.Update(ctx, table, id, patch); err != nil {
			return &ScrubError{Table: table, ID: id, Err: storeError(err)}
		}
		updated++
		log.Debug("updated row", zap.Any("id", id), zap.Int("columns", len(patch)))
	}
	if err := rows.Err(); err != nil {
		return &ScrubError{Table: table, Err: storeError(err)}
	}

	log.Info("scrubbed table", zap.Int("rows", scanned), zap.Int("updated", updated))
	return nil
}

// scrubColumns runs each column's formatter and returns the new values
// of only those columns
func scrubColumns(columns []boundColumn, row Row, f *faker.Faker) (Row, error) {
	patch := make(Row, len(columns))
	for _, c := range columns {
		current, ok := row[c.name]
		if !ok {
			return nil, &ScrubError{Column: c.name, Err: configError("column %s not found", c.name)}
		}
		v, err := c.fn(f, c.name, current)
		if err != nil {
			return nil, &ScrubError{Column: c.name, Err: err}
		}
		patch[c.name] = v
	}
	return patch, nil
}

// scrubRecord runs a record formatter over a copy of the row and checks
// that the patch only names existing, non key columns
func (s *Scrubber) scrubRecord(rf RecordFormatter, row Row) (Row, error) {
	patch, err := rf.FormatRecord(s.faker, row.clone())
	if err != nil {
		return nil, err
	}
	for column := range patch {
		if column == KeyColumn {
			return nil, &ScrubError{Column: column, Err: configError("key column %s cannot be scrubbed", KeyColumn)}
		}
		if _, ok := row[column]; !ok {
			return nil, &ScrubError{Column: column, Err: configError("column %s not found", column)}
		}
	}
	return patch, nil
}

// rowError places an error at a table row, keeping any column already
// recorded
func rowError(table string, id any, err error) error {
	if se, ok := err.(*ScrubError); ok && se.Table == "" {
		se.Table = table
		se.ID = id
		return se
	}
	return &ScrubError{Table: table, ID: id, Err: err}
}
