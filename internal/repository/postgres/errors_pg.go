// internal/repository/postgres/errors_pg.go
package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hethus/Bank-Control-API/internal/util"
)

// PostgreSQL error codes translated into application errors.
const (
	pgUniqueViolation   = "23505" // unique_violation
	pgInvalidTextFormat = "22P02" // invalid_text_representation, e.g. malformed uuid
)

// translateError maps storage-layer failures onto the application error
// taxonomy. Unique constraint violations become ErrDuplicateEntry carrying the
// violated constraint name; malformed identifiers become ErrMalformedID so the
// caller can answer NotAcceptable instead of NotFound.
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("unique constraint '%s' violated: %w", pqErr.Constraint, util.ErrDuplicateEntry)
	case pgInvalidTextFormat:
		return fmt.Errorf("%s: %w", pqErr.Message, util.ErrMalformedID)
	default:
		return err
	}
}
