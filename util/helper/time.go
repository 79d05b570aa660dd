package helper_util

import (
	"database/sql"
	"time"
)

// FromUnix converts a stored unix timestamp to UTC time.
func FromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// FromNullableUnix converts a nullable unix column.
func FromNullableUnix(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := FromUnix(v.Int64)
	return &t
}

// ToNullableUnix is the inverse of FromNullableUnix for query arguments.
func ToNullableUnix(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Unix()
}
