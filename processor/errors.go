package processor

import (
	"errors"
	"fmt"
)

var (
	ErrNotLoaded     = errors.New("dataset is not loaded")
	ErrNotRun        = errors.New("processor has not been run")
	ErrTooFewColumns = errors.New("dataset needs at least two columns")
)

// ColumnNotFoundError is returned when a sort or period column does not exist
// in the loaded dataset.
type ColumnNotFoundError struct {
	Source string
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in %s", e.Column, e.Source)
}

// Is allows errors.Is(err, &ColumnNotFoundError{}) checks.
func (e *ColumnNotFoundError) Is(target error) bool {
	_, ok := target.(*ColumnNotFoundError)
	return ok
}

// InvalidTimestampError reports a period column value that is not a timestamp.
type InvalidTimestampError struct {
	Column string
	Row    int
	Value  string
}

func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("column %q row %d: %q is not a timestamp", e.Column, e.Row, e.Value)
}

func (e *InvalidTimestampError) Is(target error) bool {
	_, ok := target.(*InvalidTimestampError)
	return ok
}
