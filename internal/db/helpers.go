package db

import "database/sql"

type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// HasTable checks the current schema for a table. Used by the db-check
// endpoint to report readiness without guessing at row counts.
func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}
