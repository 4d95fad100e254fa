package id

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

/**
 * @time: 2024/9/16 21:53
 * @file: ulid.go
 * @description: ulid
 */

// GetUlid returns a new ULID. IDs created later sort after earlier ones at
// millisecond resolution.
func GetUlid() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// Time extracts the creation time of a ULID string.
func Time(s string) (time.Time, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(id.Time()), nil
}
