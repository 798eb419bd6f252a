package compliance

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lifecycle operation targets a record that
// does not exist or has been soft-deleted.
var ErrNotFound = errors.New("compliance record not found")

// ValidationError reports an operator-authored finding that failed strict
// validation. Findings fail loudly; clinical charting input does not.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// IsValidation reports whether err is a finding-validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
