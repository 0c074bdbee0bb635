package dsv

import (
	"io"
	"os"
	"strings"
)

// Writer emits rows as delimiter-joined lines under a named dialect.
//
// The writer performs no quoting or escaping: values containing the
// delimiter or quote character must be pre-escaped by the caller. When the
// active dialect carries column names, a header line is written once before
// the first data row. Each row is one write to the sink.
type Writer struct {
	registry      *Registry
	current       string
	w             io.Writer
	closer        io.Closer
	headerWritten bool
}

// NewWriter creates a Writer emitting to w, with the built-in dialects
// registered and "excel" selected.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		registry: NewRegistry(),
		current:  DialectExcel,
		w:        w,
	}
}

// Create creates or truncates the named file and returns a Writer emitting
// to it. The caller must Close the Writer to release the file.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}
	w := NewWriter(f)
	w.closer = f
	return w, nil
}

// Registry returns the Writer's dialect registry.
func (w *Writer) Registry() *Registry {
	return w.registry
}

// Configure returns the dialect registered under name for chained
// configuration, registering and selecting a fresh default dialect when the
// name is unknown.
func (w *Writer) Configure(name string) *Dialect {
	if d, ok := w.registry.Get(name); ok {
		return d
	}
	w.current = name
	return w.registry.Configure(name)
}

// Use selects the dialect for subsequent writes. An unregistered name is a
// ConfigurationError.
func (w *Writer) Use(name string) error {
	if _, ok := w.registry.Get(name); !ok {
		return &ConfigurationError{Dialect: name}
	}
	w.current = name
	return nil
}

// WriteRow writes one row from an ordered sequence of field values.
func (w *Writer) WriteRow(values ...string) error {
	d, ok := w.registry.Get(w.current)
	if !ok {
		return &ConfigurationError{Dialect: w.current}
	}
	if err := w.writeHeader(d); err != nil {
		return err
	}
	return w.writeJoined(d, values)
}

// WriteRowMap writes one row from a column-name to value mapping, ordered by
// the active dialect's column names. Missing columns are written as empty
// fields. Without configured column names the mapping cannot be ordered and
// ErrNoColumnNames is returned.
func (w *Writer) WriteRowMap(row map[string]string) error {
	d, ok := w.registry.Get(w.current)
	if !ok {
		return &ConfigurationError{Dialect: w.current}
	}
	if len(d.columnNames) == 0 {
		return ErrNoColumnNames
	}
	values := make([]string, len(d.columnNames))
	for i, name := range d.columnNames {
		values[i] = row[name]
	}
	if err := w.writeHeader(d); err != nil {
		return err
	}
	return w.writeJoined(d, values)
}

// writeHeader writes the column-name line once, before the first data row,
// when the dialect carries column names.
func (w *Writer) writeHeader(d *Dialect) error {
	if w.headerWritten {
		return nil
	}
	w.headerWritten = true
	if len(d.columnNames) == 0 {
		return nil
	}
	return w.writeJoined(d, d.columnNames)
}

func (w *Writer) writeJoined(d *Dialect, values []string) error {
	line := strings.Join(values, d.delimiter) + d.lineTerminator
	if _, err := io.WriteString(w.w, line); err != nil {
		return &ResourceError{Err: err}
	}
	return nil
}

// Close releases the underlying file when the Writer owns one. Writers over
// caller-supplied sinks close nothing.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}
