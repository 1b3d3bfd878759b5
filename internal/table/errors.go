package table

import "fmt"

// ColumnNotFoundError is returned when a requested column is absent.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column not found: %q", e.Column)
}

// ColumnTypeError is returned when a cell cannot be used as a number.
type ColumnTypeError struct {
	Column string
	Row    int
	Value  string
}

func (e *ColumnTypeError) Error() string {
	return fmt.Sprintf("column %q row %d: %q is not numeric", e.Column, e.Row, e.Value)
}

// OutcomeValueError is returned when an outcome flag cell is neither 0 nor 1.
type OutcomeValueError struct {
	Column string
	Row    int
	Value  string
}

func (e *OutcomeValueError) Error() string {
	return fmt.Sprintf("outcome column %q row %d: expected 0 or 1, got %q", e.Column, e.Row, e.Value)
}
