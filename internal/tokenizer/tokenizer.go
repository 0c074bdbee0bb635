// Package tokenizer splits single lines of delimiter-separated text into
// field values.
//
// The tokenizer is byte-oriented and dialect-driven: the delimiter may be any
// non-empty byte sequence, quoting is tracked with an open-quote counter, and
// doubled quote characters inside a quoted span collapse to one literal quote
// when double-quote mode is enabled. Lines are expected to arrive with the
// trailing newline (and any carriage return) already removed.
package tokenizer

import "strings"

// Config carries the per-dialect settings the tokenizer needs.
type Config struct {
	// Delimiter is the field separator. It may be longer than one byte
	// (", ", "::"). It must not be empty.
	Delimiter string

	// Quote is the quote character. Default: '"'
	Quote byte

	// DoubleQuote enables collapsing two consecutive quote characters inside
	// a quoted span into one literal quote character.
	DoubleQuote bool

	// SkipInitialSpace skips a single space character immediately following
	// an accepted delimiter.
	SkipInitialSpace bool

	// TrimCharacters is the set of bytes stripped from both ends of every
	// field. Empty disables trimming.
	TrimCharacters string
}

// DefaultConfig returns the comma/double-quote configuration shared by the
// built-in dialects.
func DefaultConfig() Config {
	return Config{
		Delimiter:   ",",
		Quote:       '"',
		DoubleQuote: true,
	}
}

// Tokenizer splits lines into fields under a fixed Config.
//
// A Tokenizer is not safe for concurrent use; each parse pass owns its own
// instance.
type Tokenizer struct {
	cfg        Config
	trimmer    Trimmer
	fieldCount int
}

// New creates a Tokenizer for the given configuration.
func New(cfg Config) *Tokenizer {
	return &Tokenizer{
		cfg:     cfg,
		trimmer: NewTrimmer(cfg.TrimCharacters),
	}
}

// SetFieldCount fixes the expected number of fields per line. Once nonzero,
// Split pads short results with empty strings and truncates long ones. Zero
// means the count is not yet established and no padding or truncation
// happens.
func (t *Tokenizer) SetFieldCount(n int) {
	t.fieldCount = n
}

// FieldCount returns the expected number of fields per line.
func (t *Tokenizer) FieldCount() int {
	return t.fieldCount
}

// Split tokenizes one line into an ordered slice of field values.
//
// The scan is a single left-to-right pass. At every position the full
// delimiter sequence is matched by lookahead; a match separates fields only
// when the open-quote counter is even. Inside an open quoted span (odd
// counter) delimiter bytes are literal content.
//
// An entirely empty line expands to fieldCount empty fields once the count is
// established. A field that is empty after the final delimiter is not flushed
// on its own; the padding step restores the line width when the count is
// known.
func (t *Tokenizer) Split(line string) []string {
	var fields []string
	if line == "" && t.fieldCount > 0 {
		return make([]string, t.fieldCount)
	}

	delim := t.cfg.Delimiter
	quotes := 0
	var field []byte

	for i := 0; i < len(line); {
		if quotes%2 == 0 && delim != "" && strings.HasPrefix(line[i:], delim) {
			fields = append(fields, t.flush(field))
			field = field[:0]
			quotes = 0
			i += len(delim)
			if t.cfg.SkipInitialSpace && i < len(line) && line[i] == ' ' {
				i++
			}
			continue
		}

		c := line[i]
		field = append(field, c)
		if c == t.cfg.Quote {
			// A quote directly preceded by another quote decrements instead
			// of incrementing: the pair encodes one literal quote character
			// and leaves the quoted span open.
			if t.cfg.DoubleQuote && len(field) >= 2 && field[len(field)-2] == c {
				quotes--
			} else {
				quotes++
			}
		}
		i++
	}

	if len(field) > 0 {
		fields = append(fields, t.flush(field))
	}

	if n := t.fieldCount; n > 0 {
		for len(fields) < n {
			fields = append(fields, "")
		}
		if len(fields) > n {
			fields = fields[:n]
		}
	}
	return fields
}

// flush finalizes an accumulated field: trim, then resolve quoting. Quote
// characters are stripped only here, at the point of escaping resolution.
func (t *Tokenizer) flush(field []byte) string {
	s := t.trimmer.Trim(string(field))
	return t.unquote(s)
}

// unquote removes the wrapping quote characters from a quoted field and, in
// double-quote mode, collapses doubled quotes inside it. Fields that are not
// wrapped in quotes pass through untouched.
func (t *Tokenizer) unquote(s string) string {
	q := t.cfg.Quote
	if len(s) < 2 || s[0] != q || s[len(s)-1] != q {
		return s
	}
	s = s[1 : len(s)-1]
	if t.cfg.DoubleQuote {
		s = strings.ReplaceAll(s, string([]byte{q, q}), string(q))
	}
	return s
}
