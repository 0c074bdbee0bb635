// Package dsv parses and writes delimiter-separated tabular text under
// configurable dialects.
//
// A dialect bundles the rules of one format: the delimiter (which may be a
// multi-character sequence such as "::" or ", "), the quote character,
// doubled-quote escaping, a trim character set, header handling, empty-row
// skipping and column exclusion. Reader and Writer each own a Registry of
// named dialects with "excel", "excel_tab" and "unix" pre-registered.
//
// # Reading
//
//	r := dsv.NewReader()
//	r.Configure("pipes").Delimiter("|").TrimCharacters(' ')
//	if err := r.ReadFile("data.psv"); err != nil {
//	    // handle error
//	}
//	rows, cols := r.Shape()
//	for _, row := range r.Rows() {
//	    fmt.Println(row["name"])
//	}
//
// A parse pass is an atomic unit of work: the row count and header are
// established before any row is finalized, and any failure discards the
// whole pass. Rows with too few or too many fields are normalized to the
// header width (padded with empty strings or truncated), never rejected.
//
// # Writing
//
//	w, err := dsv.Create("out.tsv")
//	if err != nil {
//	    // handle error
//	}
//	defer w.Close()
//	w.Configure("excel_tab").ColumnNames("a", "b")
//	_ = w.Use("excel_tab")
//	_ = w.WriteRow("1", "2")
//	_ = w.WriteRowMap(dsv.Row{"a": "3", "b": "4"})
//
// The writer joins values verbatim; callers pre-escape values containing
// the delimiter or quote character.
//
// # Concurrency
//
// Readers, Writers and Registries are single-threaded by design. Two
// goroutines must not share one instance without external serialization.
package dsv
