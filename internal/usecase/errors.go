package usecase

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("duplicate idempotency key")
	ErrBadDateFormat = errors.New("invalid date format")
)

// MsgBadDateFormat is the top-level message for a malformed slash date. It is
// returned alone, before field validation runs.
const MsgBadDateFormat = "Invalid date format. Use DD/MM/YYYY or YYYY-MM-DD."

// FieldErrors maps a request field to a human-readable rejection message.
// It is the validation result type: business logic returns it as a value,
// the HTTP layer renders it as a 400 body. No partial persistence happens
// when one is returned.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
