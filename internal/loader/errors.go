package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported indicates no registered loader handles the file extension.
	ErrUnsupported = errors.New("unsupported spreadsheet format")
	// ErrNoHeader indicates the source has no header row.
	ErrNoHeader = errors.New("no header row")
	// ErrSheetNotFound indicates the requested worksheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
)

// LoadError wraps any failure to read a source as a table.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
