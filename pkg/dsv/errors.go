package dsv

import (
	"errors"
	"fmt"
)

// ResourceError reports that an input or output stream could not be opened or
// read. It is fatal to the pass; no partial results are retained.
type ResourceError struct {
	// Path is the file that failed, when known.
	Path string
	// Err is the underlying error.
	Err error
}

// Error returns a formatted message including the path when present.
func (e *ResourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("dsv: resource error: %v", e.Err)
	}
	return fmt.Sprintf("dsv: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports use of a dialect name that is not registered.
type ConfigurationError struct {
	// Dialect is the name that was looked up.
	Dialect string
}

// Error returns a formatted message naming the missing dialect.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("dsv: dialect %q not registered", e.Dialect)
}

// ErrNoColumnNames is returned by WriteRowMap when the active dialect has no
// column names to resolve the mapping against.
var ErrNoColumnNames = errors.New("dsv: dialect has no column names configured")
