package sqlstore

import (
	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"  // "mysql"
	_ "github.com/jackc/pgx/v5/stdlib"  // "pgx"
	_ "github.com/microsoft/go-mssqldb" // "sqlserver"
	_ "modernc.org/sqlite"              // "sqlite"
)

func init() {
	// sqlx knows the mattn driver as sqlite3 but not the modernc driver
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}
