package db

import "fmt"

// Dialect abstracts the SQL differences between the embedded SQLite store
// and PostgreSQL.
type Dialect interface {
	// Name is the config-facing dialect name.
	Name() string

	// DriverName returns the driver name for sql.Open().
	DriverName() string

	// GooseDialect returns the dialect string goose expects.
	GooseDialect() string

	// Placeholder returns the parameter placeholder for a 1-indexed
	// position. SQLite: "?", PostgreSQL: "$1", "$2", ...
	Placeholder(position int) string
}

// NewDialect returns the dialect for a config name. Anything other than
// "postgres" gets the SQLite dialect.
func NewDialect(name string) Dialect {
	if name == "postgres" {
		return PostgresDialect{}
	}
	return SQLiteDialect{}
}

// SQLiteDialect targets modernc.org/sqlite.
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string             { return "sqlite" }
func (SQLiteDialect) DriverName() string       { return "sqlite" }
func (SQLiteDialect) GooseDialect() string     { return "sqlite3" }
func (SQLiteDialect) Placeholder(int) string   { return "?" }

// PostgresDialect targets the pgx stdlib driver.
type PostgresDialect struct{}

func (PostgresDialect) Name() string         { return "postgres" }
func (PostgresDialect) DriverName() string   { return "pgx" }
func (PostgresDialect) GooseDialect() string { return "postgres" }
func (PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}
