package repositories

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a single-row lookup matches nothing.
var ErrNotFound = errors.New("not found")

// ErrAlreadyMember is returned when a team_members row already exists.
var ErrAlreadyMember = errors.New("already a member of this team")

type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
