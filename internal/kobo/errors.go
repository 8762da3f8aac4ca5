package kobo

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a catalog lookup by index missed.
var ErrNotFound = errors.New("book not found")

// DataSourceError wraps a failure to open or query the device database.
// These are always fatal: the user has to fix the path or the file.
type DataSourceError struct {
	Path string
	Err  error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf(
		"unable to read the KoboReader.sqlite file at %s (check that the path is correct and that you have permission to read it): %v",
		e.Path, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// UsageError indicates conflicting or invalid selection parameters.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// OutputWriteError wraps a failure to write the rendered output to a file.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf(
		"unable to write the output file %s (check that the path is correct and that you have write permission on it): %v",
		e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }
