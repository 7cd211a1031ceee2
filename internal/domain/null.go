package domain

import (
	"database/sql"
	"time"
)

// ToNullString converts a string to sql.NullString, treating "" as NULL.
func ToNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullStringValue returns the string value of a sql.NullString, or "" if NULL.
func NullStringValue(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// NullTimeValue returns the time value of a sql.NullTime, or the zero time.
func NullTimeValue(nt sql.NullTime) time.Time {
	if !nt.Valid {
		return time.Time{}
	}
	return nt.Time
}
