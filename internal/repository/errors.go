// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios: a code
// supplied by the caller that does not resolve (ErrBadData), a fixed
// seed code that should always be present but is not (ErrSeedMissing),
// and absence of a row (sql.ErrNoRows, surfaced unchanged).
package repository

import (
	"errors"
	"strings"
)

// ErrBadData is returned when a caller-supplied code or id does not
// resolve to an active row. Handlers should translate this into an
// HTTP 400 response. Wrap it with the offending value:
// fmt.Errorf("%w: visit type %q", ErrBadData, code).
var ErrBadData = errors.New("unresolvable reference")

// ErrSeedMissing is returned when a fixed reference code the service
// depends on (scheduled/cancelled status, absent outcome) is missing
// from the reference data. This is a deployment fault, not caller
// error; handlers should translate it into an HTTP 500 response.
var ErrSeedMissing = errors.New("expected seed code missing")

// isDuplicateEntry reports whether err is a MySQL duplicate-key error
// (error 1062). Find-or-create paths use this to treat a lost creation
// race as "someone else created it first" and retry the lookup.
func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
