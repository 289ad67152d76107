package services

import (
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrUserExists is returned when registering an email that is already
	// taken. Handlers surface it as its own error kind, distinct from
	// plain validation failures.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials covers a bad email/password pair and unknown
	// tokens alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned by ID lookups for missing users.
	ErrUserNotFound = errors.New("user not found")

	// ErrNoResults marks an empty search result, which this API treats as
	// an error rather than an empty success.
	ErrNoResults = errors.New("no matching links")
)

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
