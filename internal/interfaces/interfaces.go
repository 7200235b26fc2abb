package interfaces

import "database/sql"

// DBQueryExecCloser is the subset of *sql.DB the stores depend on.
type DBQueryExecCloser interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
	Close() error
}
