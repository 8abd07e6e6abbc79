package sqlstore

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// dialect holds the SQL differences between the supported databases.
// Queries are written with ? placeholders and rebound by sqlx
type dialect struct {
	name string
	// quoteIdent quotes a single identifier
	quoteIdent func(id string) string
	// top selects TOP (n) paging rather than LIMIT n
	top bool
	// countsAffected is false where RowsAffected reports changed rather
	// than matched rows, so an update to identical values reports 0. The
	// mysql DSN is rewritten to report matched rows, see driverDSN
	countsAffected bool
}

var (
	postgresDialect = dialect{
		name:           "postgres",
		quoteIdent:     pq.QuoteIdentifier,
		countsAffected: true,
	}
	sqliteDialect = dialect{
		name:           "sqlite",
		quoteIdent:     pq.QuoteIdentifier,
		countsAffected: true,
	}
	mysqlDialect = dialect{
		name: "mysql",
		quoteIdent: func(id string) string {
			return "`" + strings.ReplaceAll(id, "`", "``") + "`"
		},
		countsAffected: true,
	}
	sqlserverDialect = dialect{
		name: "sqlserver",
		quoteIdent: func(id string) string {
			return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
		},
		top:            true,
		countsAffected: true,
	}
)

// dialectFor returns the dialect of a database/sql driver name
func dialectFor(driver string) (dialect, error) {
	switch driver {
	case "pgx", "postgres":
		return postgresDialect, nil
	case "sqlite":
		return sqliteDialect, nil
	case "mysql":
		return mysqlDialect, nil
	case "sqlserver":
		return sqlserverDialect, nil
	}
	return dialect{}, fmt.Errorf("unsupported driver %q", driver)
}

// quoteTable quotes a possibly schema qualified table name such as
// "public.users" one part at a time
func (d dialect) quoteTable(name string) string {
	parts := strings.Split(name, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, d.quoteIdent(p))
	}
	return strings.Join(out, ".")
}

// pageQuery selects the next n rows of a table ordered by key, after the
// key value bound to the placeholder if after is set
func (d dialect) pageQuery(table, key string, after bool, n int) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	if d.top {
		fmt.Fprintf(&b, "TOP (%d) ", n)
	}
	fmt.Fprintf(&b, "* FROM %s", d.quoteTable(table))
	if after {
		fmt.Fprintf(&b, " WHERE %s > ?", d.quoteIdent(key))
	}
	fmt.Fprintf(&b, " ORDER BY %s", d.quoteIdent(key))
	if !d.top {
		fmt.Fprintf(&b, " LIMIT %d", n)
	}
	return b.String()
}

// updateQuery sets the given columns of the row matching key
func (d dialect) updateQuery(table, key string, columns []string) string {
	sets := make([]string, len(columns))
	for i, c := range columns {
		sets[i] = d.quoteIdent(c) + " = ?"
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
		d.quoteTable(table),
		strings.Join(sets, ", "),
		d.quoteIdent(key),
	)
}
