package postgres

import "database/sql"

// rowScanner is satisfied by *sql.Rows and tracedRow
type rowScanner interface {
	Scan(dest ...any) error
}

func stringValue(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
