package dsv

import "sort"

// Dialect bundles the parsing and formatting rules for one delimiter-separated
// format: delimiter, quoting, trimming, header handling and column filters.
//
// A Dialect is configured through chained setters and then treated as
// read-only for the duration of a parse pass. Setters store their inputs
// without validation; combinations such as an empty delimiter are a caller
// error, not a checked failure.
//
// Example:
//
//	r := dsv.NewReader()
//	r.Configure("pipes").
//	    Delimiter("|").
//	    TrimCharacters(' ', '\t').
//	    SkipEmptyRows(true)
type Dialect struct {
	delimiter        string
	quoteCharacter   byte
	doubleQuote      bool
	skipInitialSpace bool
	lineTerminator   string
	trimCharacters   string
	header           bool
	skipEmptyRows    bool
	ignoreColumns    map[string]bool
	columnNames      []string
}

// NewDialect returns a Dialect with the default rules: comma delimiter,
// double-quoted fields, a header row, LF line terminator, no trimming.
func NewDialect() *Dialect {
	return &Dialect{
		delimiter:      ",",
		quoteCharacter: '"',
		doubleQuote:    true,
		lineTerminator: "\n",
		header:         true,
		ignoreColumns:  make(map[string]bool),
	}
}

// Delimiter sets the field separator. Multi-character delimiters such as
// ", " or "::" are supported.
func (d *Dialect) Delimiter(delimiter string) *Dialect {
	d.delimiter = delimiter
	return d
}

// QuoteCharacter sets the quote character.
func (d *Dialect) QuoteCharacter(quote byte) *Dialect {
	d.quoteCharacter = quote
	return d
}

// DoubleQuote controls whether two consecutive quote characters inside a
// quoted field represent one literal quote character.
func (d *Dialect) DoubleQuote(on bool) *Dialect {
	d.doubleQuote = on
	return d
}

// SkipInitialSpace controls whether a single space immediately following a
// delimiter is skipped.
func (d *Dialect) SkipInitialSpace(on bool) *Dialect {
	d.skipInitialSpace = on
	return d
}

// LineTerminator sets the terminator appended to written rows.
func (d *Dialect) LineTerminator(terminator string) *Dialect {
	d.lineTerminator = terminator
	return d
}

// TrimCharacters sets the characters stripped from both ends of every parsed
// field. Calling it with no arguments disables trimming.
func (d *Dialect) TrimCharacters(chars ...byte) *Dialect {
	d.trimCharacters = string(chars)
	return d
}

// Header controls whether the first input line is treated as the header row.
func (d *Dialect) Header(on bool) *Dialect {
	d.header = on
	return d
}

// SkipEmptyRows controls whether empty input lines are skipped instead of
// producing rows of empty fields.
func (d *Dialect) SkipEmptyRows(on bool) *Dialect {
	d.skipEmptyRows = on
	return d
}

// IgnoreColumns sets the column names excluded from every parsed row.
func (d *Dialect) IgnoreColumns(names ...string) *Dialect {
	d.ignoreColumns = make(map[string]bool, len(names))
	for _, name := range names {
		d.ignoreColumns[name] = true
	}
	return d
}

// ColumnNames sets the ordered column names. On the read side they replace a
// header row when the header flag is off; on the write side they drive the
// header line and WriteRowMap ordering.
func (d *Dialect) ColumnNames(names ...string) *Dialect {
	d.columnNames = append([]string(nil), names...)
	return d
}

// clone returns a deep copy. A parse pass snapshots the selected dialect so
// later reconfiguration cannot affect a pass in flight.
func (d *Dialect) clone() *Dialect {
	c := *d
	c.ignoreColumns = make(map[string]bool, len(d.ignoreColumns))
	for name := range d.ignoreColumns {
		c.ignoreColumns[name] = true
	}
	c.columnNames = append([]string(nil), d.columnNames...)
	return &c
}

// Registry maps dialect names to Dialect values. Reader and Writer each own
// one; there is no process-global registry. A Registry is not safe for
// concurrent mutation.
type Registry struct {
	dialects map[string]*Dialect
}

// Built-in dialect names, pre-registered in every Registry.
const (
	DialectExcel    = "excel"
	DialectExcelTab = "excel_tab"
	DialectUnix     = "unix"
)

// NewRegistry returns a Registry with the built-in dialects registered:
// "excel" and "unix" (comma) and "excel_tab" (tab), all with '"' quoting,
// double-quote escaping and a header row.
func NewRegistry() *Registry {
	r := &Registry{dialects: make(map[string]*Dialect)}
	r.Register(DialectExcel, NewDialect())
	r.Register(DialectUnix, NewDialect())
	r.Register(DialectExcelTab, NewDialect().Delimiter("\t"))
	return r
}

// Register stores d under name, replacing any previous registration.
func (r *Registry) Register(name string, d *Dialect) {
	r.dialects[name] = d
}

// Get returns the dialect registered under name.
func (r *Registry) Get(name string) (*Dialect, bool) {
	d, ok := r.dialects[name]
	return d, ok
}

// Configure returns the dialect registered under name for further chained
// configuration, creating and registering a fresh default dialect when the
// name is unknown. This is the configuration path; unlike Use, an unknown
// name here is not an error.
func (r *Registry) Configure(name string) *Dialect {
	if d, ok := r.dialects[name]; ok {
		return d
	}
	d := NewDialect()
	r.dialects[name] = d
	return d
}

// Names returns the registered dialect names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.dialects))
	for name := range r.dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
