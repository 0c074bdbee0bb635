package dsv

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// dialectFile is the on-disk shape of a dialect definition file:
//
//	dialects:
//	  pipes:
//	    delimiter: "|"
//	    trim_characters: " \t"
//	    skip_empty_rows: true
//	  fixed:
//	    header: false
//	    column_names: [id, name, city]
//	    ignore_columns: [city]
type dialectFile struct {
	Dialects map[string]dialectDef `yaml:"dialects"`
}

type dialectDef struct {
	Delimiter        string   `yaml:"delimiter"`
	Quote            string   `yaml:"quote"`
	DoubleQuote      *bool    `yaml:"double_quote"`
	SkipInitialSpace bool     `yaml:"skip_initial_space"`
	LineTerminator   string   `yaml:"line_terminator"`
	TrimCharacters   string   `yaml:"trim_characters"`
	Header           *bool    `yaml:"header"`
	SkipEmptyRows    bool     `yaml:"skip_empty_rows"`
	ColumnNames      []string `yaml:"column_names"`
	IgnoreColumns    []string `yaml:"ignore_columns"`
}

// LoadDialects parses YAML dialect definitions and registers them in r.
// Omitted fields keep the dialect defaults; an existing registration under
// the same name is reconfigured in place.
func LoadDialects(r *Registry, data []byte) error {
	var file dialectFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("dsv: parsing dialect definitions: %w", err)
	}

	for name, def := range file.Dialects {
		d := r.Configure(name)
		if def.Delimiter != "" {
			d.Delimiter(def.Delimiter)
		}
		if def.Quote != "" {
			if len(def.Quote) != 1 {
				return fmt.Errorf("dsv: dialect %q: quote must be a single character", name)
			}
			d.QuoteCharacter(def.Quote[0])
		}
		if def.DoubleQuote != nil {
			d.DoubleQuote(*def.DoubleQuote)
		}
		d.SkipInitialSpace(def.SkipInitialSpace)
		if def.LineTerminator != "" {
			d.LineTerminator(def.LineTerminator)
		}
		d.TrimCharacters([]byte(def.TrimCharacters)...)
		if def.Header != nil {
			d.Header(*def.Header)
		}
		d.SkipEmptyRows(def.SkipEmptyRows)
		if len(def.ColumnNames) > 0 {
			d.ColumnNames(def.ColumnNames...)
		}
		if len(def.IgnoreColumns) > 0 {
			d.IgnoreColumns(def.IgnoreColumns...)
		}
	}
	return nil
}

// LoadDialectFile reads a YAML dialect definition file and registers its
// dialects in r.
func LoadDialectFile(r *Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ResourceError{Path: path, Err: err}
	}
	return LoadDialects(r, data)
}
