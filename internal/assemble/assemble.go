// Package assemble binds tokenized field slices onto named columns.
package assemble

import "strconv"

// Binder maps positional fields to header names and filters ignored columns.
//
// Binding is strictly positional: field i maps to header i. The Binder keeps
// a reusable row template whose keys are the header names minus the ignored
// ones; every Bind call copies the template so stored rows never alias each
// other.
type Binder struct {
	headers  []string
	included []bool
	template map[string]string
}

// NewBinder creates a Binder for the given header. Names present in ignore
// are pre-removed from the template and never appear as row keys.
func NewBinder(headers []string, ignore map[string]bool) *Binder {
	b := &Binder{
		headers:  headers,
		included: make([]bool, len(headers)),
		template: make(map[string]string, len(headers)),
	}
	for i, name := range headers {
		if ignore[name] {
			continue
		}
		b.included[i] = true
		b.template[name] = ""
	}
	return b
}

// Columns returns the number of header columns, including ignored ones. This
// is the expected field count per line.
func (b *Binder) Columns() int {
	return len(b.headers)
}

// Bind writes fields into the row template and returns a copy of it. Fields
// beyond the header length are dropped; the tokenizer's pad/truncate step
// normally guarantees the lengths already match.
func (b *Binder) Bind(fields []string) map[string]string {
	for i, value := range fields {
		if i >= len(b.headers) || !b.included[i] {
			continue
		}
		b.template[b.headers[i]] = value
	}
	row := make(map[string]string, len(b.template))
	for name, value := range b.template {
		row[name] = value
	}
	return row
}

// SyntheticHeaders returns n column names synthesized from the zero-based
// column index: "0", "1", ...
func SyntheticHeaders(n int) []string {
	headers := make([]string, n)
	for i := range headers {
		headers[i] = strconv.Itoa(i)
	}
	return headers
}
