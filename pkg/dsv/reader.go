package dsv

import (
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/shapestone/shape-dsv/internal/assemble"
	"github.com/shapestone/shape-dsv/internal/tokenizer"
)

// Row is one parsed record, keyed by column name. Keys are exactly the
// derived header names minus any ignored columns.
type Row map[string]string

// Reader parses delimiter-separated input into Rows under a named dialect.
//
// A Reader owns its dialect Registry and a current dialect selection
// (initially "excel"). A parse pass runs to completion before any row is
// visible: the pass establishes the header and the row count first, then
// binds every line. Readers are not safe for concurrent use.
//
// Example:
//
//	r := dsv.NewReader()
//	r.Configure("logs").Delimiter("::").Header(true)
//	if err := r.Use("logs"); err != nil {
//	    // handle unknown dialect
//	}
//	if err := r.ReadFile("app.log"); err != nil {
//	    // handle error
//	}
//	for _, row := range r.Rows() {
//	    fmt.Println(row["Message"])
//	}
type Reader struct {
	registry *Registry
	current  string
	log      *zap.Logger

	headers      []string
	rows         []Row
	columns      int
	declaredRows int
}

// NewReader creates a Reader with the built-in dialects registered and
// "excel" selected.
func NewReader() *Reader {
	return &Reader{
		registry: NewRegistry(),
		current:  DialectExcel,
		log:      zap.NewNop(),
	}
}

// Registry returns the Reader's dialect registry.
func (r *Reader) Registry() *Registry {
	return r.registry
}

// SetLogger installs a logger for pass telemetry. The default is a no-op
// logger.
func (r *Reader) SetLogger(log *zap.Logger) {
	if log != nil {
		r.log = log
	}
}

// Configure returns the dialect registered under name for chained
// configuration. An unknown name registers a fresh default dialect and
// selects it.
func (r *Reader) Configure(name string) *Dialect {
	if d, ok := r.registry.Get(name); ok {
		return d
	}
	r.current = name
	return r.registry.Configure(name)
}

// Use selects the dialect for subsequent passes. Unlike Configure, an
// unregistered name is a ConfigurationError.
func (r *Reader) Use(name string) error {
	if _, ok := r.registry.Get(name); !ok {
		return &ConfigurationError{Dialect: name}
	}
	r.current = name
	return nil
}

// ReadFile parses the named file. The file is closed unconditionally at the
// end of the pass.
func (r *Reader) ReadFile(path string) error {
	return r.ReadFileN(path, 0)
}

// ReadFileN parses the named file. When rows is positive it is taken as the
// authoritative row count: the pre-scan is skipped and at most rows rows are
// emitted. When rows is zero the count is established by a pre-scan.
func (r *Reader) ReadFileN(path string, rows int) error {
	f, err := os.Open(path)
	if err != nil {
		return &ResourceError{Path: path, Err: err}
	}
	defer f.Close()

	if err := r.ReadSourceN(NewSeekSource(f), rows); err != nil {
		var rerr *ResourceError
		if errors.As(err, &rerr) && rerr.Path == "" {
			rerr.Path = path
		}
		return err
	}
	return nil
}

// ReadString parses an in-memory document.
func (r *Reader) ReadString(s string) error {
	return r.ReadSourceN(NewStringSource(s), 0)
}

// ReadSource parses all rows from src, pre-scanning it for the row count.
func (r *Reader) ReadSource(src LineSource) error {
	return r.ReadSourceN(src, 0)
}

// ReadSourceN parses src under the current dialect. expected, when positive,
// bounds the number of emitted rows and skips the pre-scan.
//
// Any error aborts the entire pass and discards partial results.
func (r *Reader) ReadSourceN(src LineSource, expected int) error {
	r.headers = nil
	r.rows = nil
	r.columns = 0
	r.declaredRows = 0

	if err := r.readPass(src, expected); err != nil {
		r.headers = nil
		r.rows = nil
		r.columns = 0
		r.declaredRows = 0
		return err
	}
	return nil
}

func (r *Reader) readPass(src LineSource, expected int) error {
	d, ok := r.registry.Get(r.current)
	if !ok {
		return &ConfigurationError{Dialect: r.current}
	}
	// Snapshot so reconfiguration cannot affect a pass in flight.
	d = d.clone()

	if expected <= 0 {
		n, err := countEligibleRows(src, d)
		if err != nil {
			return &ResourceError{Err: err}
		}
		if err := src.Rewind(); err != nil {
			return &ResourceError{Err: err}
		}
		expected = n
	}
	r.declaredRows = expected

	tok := tokenizer.New(tokenizer.Config{
		Delimiter:        d.delimiter,
		Quote:            d.quoteCharacter,
		DoubleQuote:      d.doubleQuote,
		SkipInitialSpace: d.skipInitialSpace,
		TrimCharacters:   d.trimCharacters,
	})

	if err := r.deriveHeaders(src, d, tok); err != nil {
		return err
	}
	r.columns = len(r.headers)
	tok.SetFieldCount(r.columns)

	binder := assemble.NewBinder(r.headers, d.ignoreColumns)
	r.rows = make([]Row, 0, expected)

	emitted := 0
	for emitted < expected {
		line, ok, err := src.Next()
		if err != nil {
			return &ResourceError{Err: err}
		}
		if !ok {
			break
		}
		if line == "" && d.skipEmptyRows {
			continue
		}
		r.rows = append(r.rows, binder.Bind(tok.Split(line)))
		emitted++
	}

	r.log.Debug("parse pass complete",
		zap.String("dialect", r.current),
		zap.Int("rows", emitted),
		zap.Int("columns", r.columns))
	return nil
}

// deriveHeaders fixes the column names for the pass. With a header row the
// first line is tokenized verbatim. Otherwise configured column names are
// used if present, else names are synthesized from the column index; in both
// of those cases the source is rewound so the first line is parsed as data.
func (r *Reader) deriveHeaders(src LineSource, d *Dialect, tok *tokenizer.Tokenizer) error {
	first, ok, err := src.Next()
	if err != nil {
		return &ResourceError{Err: err}
	}

	if d.header {
		if ok {
			r.headers = tok.Split(first)
		}
		return nil
	}

	if len(d.columnNames) > 0 {
		r.headers = append([]string(nil), d.columnNames...)
	} else if ok {
		r.headers = assemble.SyntheticHeaders(len(tok.Split(first)))
	}

	if err := src.Rewind(); err != nil {
		return &ResourceError{Err: err}
	}
	return nil
}

// countEligibleRows is the pre-scan: it counts the lines the main pass would
// consider, honoring skip-empty-rows, and discounts the header row.
func countEligibleRows(src LineSource, d *Dialect) (int, error) {
	n := 0
	for {
		line, ok, err := src.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		if line == "" && d.skipEmptyRows {
			continue
		}
		n++
	}
	if d.header && n > 0 {
		n--
	}
	return n, nil
}

// Rows returns the parsed rows of the last pass.
func (r *Reader) Rows() []Row {
	return r.rows
}

// Headers returns the ordered column names of the last pass, including
// ignored columns.
func (r *Reader) Headers() []string {
	return r.headers
}

// Shape returns the declared row count and the column count of the last
// pass. The row count is the pre-scan (or caller-supplied) count, which
// bounds emission; it can exceed len(Rows()) when the input ran short of a
// caller-supplied count.
func (r *Reader) Shape() (rows, columns int) {
	return r.declaredRows, r.columns
}
