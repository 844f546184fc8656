package sqlite

import (
	"database/sql"
	"time"
)

// dbTimeLayout is fixed width so stored timestamps sort lexically.
const dbTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTimeForDB formats a time.Time value as a UTC RFC3339 string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(dbTimeLayout)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// NullableString maps a nil pointer to SQL NULL.
func NullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// StringPtrFromDB maps SQL NULL to a nil pointer.
func StringPtrFromDB(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
