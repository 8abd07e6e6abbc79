package carwash

import (
	"errors"
	"fmt"
)

// ErrConfiguration reports a rule that cannot be run: an unknown named
// generator, a rule that is neither a column map nor a record formatter,
// a column missing from the table or an attempt to scrub the key column
var ErrConfiguration = errors.New("configuration error")

// ErrArityMismatch reports a named generator given arguments that do not
// fit the generator's parameters
var ErrArityMismatch = errors.New("generator argument mismatch")

// ErrStore reports a record store read or write failure
var ErrStore = errors.New("record store error")

// ScrubError describes where a scrub failed. Table is always set; Column
// and ID are set when the failure relates to a column or a row
type ScrubError struct {
	Table  string
	Column string
	ID     any
	Err    error
}

// Error returns the formatted error message
func (e *ScrubError) Error() string {
	msg := fmt.Sprintf("table %s", e.Table)
	if e.ID != nil {
		msg += fmt.Sprintf(" row %v", e.ID)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(" column %s", e.Column)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

// Unwrap returns the underlying error
func (e *ScrubError) Unwrap() error {
	return e.Err
}

func configError(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, a...))
}

func arityError(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrArityMismatch, fmt.Sprintf(format, a...))
}

func storeError(err error) error {
	if errors.Is(err, ErrStore) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStore, err)
}
