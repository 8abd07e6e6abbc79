package carwash

import (
	"context"

	"github.com/colindecarlo/carwash/faker"
)

// KeyColumn is the primary key column used to address row updates. It
// can never be a scrubbing target
const KeyColumn = "id"

// Row is a single table row keyed by column name, including KeyColumn
type Row map[string]any

// ID returns the row's primary key value
func (r Row) ID() any {
	return r[KeyColumn]
}

// clone returns a shallow copy of the row so that record formatters
// cannot alter the row held by the scrubber
func (r Row) clone() Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// RowIterator is a lazy sequence of rows, used in the manner of
// sql.Rows
type RowIterator interface {
	// Next advances to the next row, returning false when the rows are
	// exhausted or an error occurred
	Next(ctx context.Context) bool
	// Row returns the current row
	Row() Row
	// Err returns the error, if any, that stopped iteration
	Err() error
	// Close releases the iterator
	Close() error
}

// RecordStore is the persistence layer the scrubber reads rows from and
// writes patches to
type RecordStore interface {
	// Stream returns every row of table
	Stream(ctx context.Context, table string) (RowIterator, error)
	// Update writes only the patched columns of the row with the
	// given primary key
	Update(ctx context.Context, table string, id any, patch Row) error
}

// Formatter produces the replacement value of a single column
type Formatter interface {
	Format(f *faker.Faker, column string) (any, error)
}

// Generator is a named generator of the fake data provider, optionally
// with arguments, such as "firstName" or "words:3,true"
type Generator string

// Format runs the generator. The scrubber resolves generators once per
// table; this method suits one-off use
func (g Generator) Format(f *faker.Faker, column string) (any, error) {
	fn, err := resolveGenerator(string(g))
	if err != nil {
		return nil, err
	}
	return fn(f, column, nil)
}

// GeneratorFunc is a custom formatter which only needs the fake data
// provider
type GeneratorFunc func(f *faker.Faker) (any, error)

// Format calls fn(f)
func (fn GeneratorFunc) Format(f *faker.Faker, column string) (any, error) {
	return fn(f)
}

// FormatterFunc is a custom formatter which is also given the name of
// the column being scrubbed
type FormatterFunc func(f *faker.Faker, column string) (any, error)

// Format calls fn(f, column)
func (fn FormatterFunc) Format(f *faker.Faker, column string) (any, error) {
	return fn(f, column)
}

// ValueFormatter is a formatter which is also given the column's current
// value, so the replacement can be derived from it
type ValueFormatter interface {
	Formatter
	FormatValue(f *faker.Faker, column string, value any) (any, error)
}

// ValueFunc adapts a function to a ValueFormatter
type ValueFunc func(f *faker.Faker, column string, value any) (any, error)

// Format calls fn with a nil value. The scrubber always calls
// FormatValue with the row's value
func (fn ValueFunc) Format(f *faker.Faker, column string) (any, error) {
	return fn(f, column, nil)
}

// FormatValue calls fn(f, column, value)
func (fn ValueFunc) FormatValue(f *faker.Faker, column string, value any) (any, error) {
	return fn(f, column, value)
}

// ColumnRules maps column names to their formatters
type ColumnRules map[string]Formatter

// RecordFormatter scrubs a whole row at once. It receives the original
// record and returns a partial patch of the columns to overwrite
type RecordFormatter interface {
	FormatRecord(f *faker.Faker, record Row) (Row, error)
}

// RecordFunc adapts a function to a RecordFormatter
type RecordFunc func(f *faker.Faker, record Row) (Row, error)

// FormatRecord calls fn(f, record)
func (fn RecordFunc) FormatRecord(f *faker.Faker, record Row) (Row, error) {
	return fn(f, record)
}

// Rule is the scrubbing rule of a table: either per column formatters
// or a single record formatter, never both
type Rule struct {
	Columns ColumnRules
	Record  RecordFormatter
}

// Columns makes a column Rule
func Columns(c ColumnRules) Rule {
	return Rule{Columns: c}
}

// Record makes a record Rule
func Record(r RecordFormatter) Rule {
	return Rule{Record: r}
}

// validate checks that the rule has exactly one shape and does not
// target the key column
func (r Rule) validate() error {
	switch {
	case r.Record != nil && r.Columns != nil:
		return configError("rule has both column formatters and a record formatter")
	case r.Record == nil && r.Columns == nil:
		return configError("rule has neither column formatters nor a record formatter")
	}
	if _, ok := r.Columns[KeyColumn]; ok {
		return configError("key column %s cannot be scrubbed", KeyColumn)
	}
	return nil
}

// Config maps table names to rules, remembering the order in which the
// tables were declared
type Config struct {
	tables []string
	rules  map[string]Rule
}

// NewConfig makes an empty Config
func NewConfig() *Config {
	return &Config{rules: map[string]Rule{}}
}

// Set sets the rule for a table. A table keeps the position at which it
// was first set
func (c *Config) Set(table string, rule Rule) *Config {
	if c.rules == nil {
		c.rules = map[string]Rule{}
	}
	if _, ok := c.rules[table]; !ok {
		c.tables = append(c.tables, table)
	}
	c.rules[table] = rule
	return c
}

// Rule returns the rule for a table
func (c *Config) Rule(table string) (Rule, bool) {
	r, ok := c.rules[table]
	return r, ok
}

// Tables returns the configured table names in declared order
func (c *Config) Tables() []string {
	t := make([]string, len(c.tables))
	copy(t, c.tables)
	return t
}

// Validate checks the shape of every rule and that every named
// generator resolves, without touching the database
func (c *Config) Validate() error {
	for _, table := range c.tables {
		rule := c.rules[table]
		if err := rule.validate(); err != nil {
			return &ScrubError{Table: table, Err: err}
		}
		if _, err := resolveColumns(table, rule.Columns); err != nil {
			return err
		}
	}
	return nil
}
