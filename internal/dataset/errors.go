package dataset

import (
	"fmt"
	"strings"
)

// SchemaError reports columns missing from an input batch.
type SchemaError struct {
	Symbol  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset %s: missing fields: %s", e.Symbol, strings.Join(e.Missing, ", "))
}

// NotFoundError reports a load path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cannot find CSV file %q", e.Path)
}

// AlreadyExistsError reports a save target that exists and no overwrite
// flag was given.
type AlreadyExistsError struct {
	Path string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("CSV file already exists: %q", e.Path)
}

// IsADirectoryError reports a save target that names a directory.
type IsADirectoryError struct {
	Path string
}

func (e *IsADirectoryError) Error() string {
	return fmt.Sprintf("path is a directory: %q", e.Path)
}
