// Package db provides the database connection helper and schema migrations.
package db

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx postgres driver registered as 'pgx'
)

// Connect opens a Postgres connection pool for the given DSN. The pool is the
// only admission control for concurrent event handlers, so its size bounds
// handler concurrency.
func Connect(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}
