package roster

import (
	"errors"
	"fmt"
)

var (
	// Parse errors
	ErrEmptyWorkbook    = errors.New("schedule file has no usable sheet")
	ErrMalformedHeader  = errors.New("header cell is not a date")
	ErrMalformedName    = errors.New("employee name must be exactly first and last name")
	ErrRegistryMismatch = errors.New("schedule has more employee rows than the parser registry")

	// Upload errors
	ErrInvalidFileType = errors.New("wrong file type was uploaded, expected .xlsx")
	ErrFileTooLarge    = errors.New("schedule file is too large")
	ErrFileRequired    = errors.New("schedule_file is required")

	// Schedule errors
	ErrScheduleNotFound = errors.New("schedule for given parameters was not found")
	ErrInvalidPeriod    = errors.New("invalid schedule period")
)

// ParseError reports a fatal problem with one uploaded schedule file.
type ParseError struct {
	FileName string
	Err      error
}

func (e *ParseError) Error() string {
	if e.FileName == "" {
		return fmt.Sprintf("failed to parse schedule file: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse schedule file %s: %v", e.FileName, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
