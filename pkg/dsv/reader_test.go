package dsv_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shapestone/shape-dsv/pkg/dsv"
)

func TestReadString_Basic(t *testing.T) {
	r := dsv.NewReader()
	if err := r.ReadString("a,b,c\n1,2,3\n4,5,6"); err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}

	if diff := cmp.Diff([]string{"a", "b", "c"}, r.Headers()); diff != "" {
		t.Errorf("Headers() mismatch (-want +got):\n%s", diff)
	}

	want := []dsv.Row{
		{"a": "1", "b": "2", "c": "3"},
		{"a": "4", "b": "5", "c": "6"},
	}
	if diff := cmp.Diff(want, r.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}

	rows, cols := r.Shape()
	if rows != 2 || cols != 3 {
		t.Errorf("Shape() = (%d, %d), want (2, 3)", rows, cols)
	}
}

func TestReadString_MultiCharacterDelimiter(t *testing.T) {
	input := "Thread_ID::Log_Level::Message\n" +
		"1::DEBUG::Thread Started\n" +
		"2::DEBUG::Thread Started\n" +
		"3::ERROR::File not found"

	r := dsv.NewReader()
	r.Configure("logs").Delimiter("::")
	if err := r.Use("logs"); err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	if err := r.ReadString(input); err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}

	rows := r.Rows()
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[2]["Log_Level"] != "ERROR" || rows[2]["Message"] != "File not found" {
		t.Errorf("rows[2] = %v", rows[2])
	}
}

func TestReadString_CommaSpaceDelimiter(t *testing.T) {
	r := dsv.NewReader()
	r.Configure("spaced").Delimiter(", ")
	if err := r.Use("spaced"); err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	if err := r.ReadString("a, b, c\n1, 2, 3\n4, 5, 6"); err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}

	want := []dsv.Row{
		{"a": "1", "b": "2", "c": "3"},
		{"a": "4", "b": "5", "c": "6"},
	}
	if diff := cmp.Diff(want, r.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadString_QuotedFields(t *testing.T) {
	r := dsv.NewReader()
	if err := r.ReadString("a,b,c\n1,\"2,3\",4\n5,\"6\"\"7\",8"); err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}

	want := []dsv.Row{
		{"a": "1", "b": "2,3", "c": "4"},
		{"a": "5", "b": `6"7`, "c": "8"},
	}
	if diff := cmp.Diff(want, r.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadString_NoHeaderConfiguredColumns(t *testing.T) {
	r := dsv.NewReader()
	r.Configure("raw").Header(false).ColumnNames("x", "y", "z")
	if err := r.Use("raw"); err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	if err := r.ReadString("1,2,3\n4,5,6"); err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}

	want := []dsv.Row{
		{"x": "1", "y": "2", "z": "3"},
		{"x": "4", "y": "5", "z": "6"},
	}
	if diff := cmp.Diff(want, r.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadString_NoHeaderSynthesizedColumns(t *testing.T) {
	r := dsv.NewReader()
	r.Configure("raw").Header(false)
	if err := r.Use("raw"); err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	if err := r.ReadString("1,2,3\n4,5,6"); err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}

	if diff := cmp.Diff([]string{"0", "1", "2"}, r.Headers()); diff != "" {
		t.Errorf("Headers() mismatch (-want +got):\n%s", diff)
	}
	want := []dsv.Row{
		{"0": "1", "1": "2", "2": "3"},
		{"0": "4", "1": "5", "2": "6"},
	}
	if diff := cmp.Diff(want, r.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadString_IgnoreColumns(t *testing.T) {
	r := dsv.NewReader()
	r.Configure("filtered").IgnoreColumns("b")
	if err := r.Use("filtered"); err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	if err := r.ReadString("a,b,c\n1,2,3\n4,5,6"); err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}

	want := []dsv.Row{
		{"a": "1", "c": "3"},
		{"a": "4", "c": "6"},
	}
	if diff := cmp.Diff(want, r.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}

	// Headers still report the full width, ignored columns included.
	if diff := cmp.Diff([]string{"a", "b", "c"}, r.Headers()); diff != "" {
		t.Errorf("Headers() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadString_MalformedRowsNormalized(t *testing.T) {
	r := dsv.NewReader()
	if err := r.ReadString("a,b,c\n1,2\n1,2,3,4"); err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}

	want := []dsv.Row{
		{"a": "1", "b": "2", "c": ""},
		{"a": "1", "b": "2", "c": "3"},
	}
	if diff := cmp.Diff(want, r.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadString_EmptyLineBecomesEmptyRow(t *testing.T) {
	r := dsv.NewReader()
	if err := r.ReadString("a,b,c\n1,2,3\n\n4,5,6"); err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}

	want := []dsv.Row{
		{"a": "1", "b": "2", "c": "3"},
		{"a": "", "b": "", "c": ""},
		{"a": "4", "b": "5", "c": "6"},
	}
	if diff := cmp.Diff(want, r.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadString_SkipEmptyRows(t *testing.T) {
	r := dsv.NewReader()
	r.Configure("sparse").SkipEmptyRows(true)
	if err := r.Use("sparse"); err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	if err := r.ReadString("a,b\n1,2\n\n\n3,4\n"); err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}

	want := []dsv.Row{
		{"a": "1", "b": "2"},
		{"a": "3", "b": "4"},
	}
	if diff := cmp.Diff(want, r.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
	rows, cols := r.Shape()
	if rows != 2 || cols != 2 {
		t.Errorf("Shape() = (%d, %d), want (2, 2)", rows, cols)
	}
}

func TestReadString_Trimming(t *testing.T) {
	r := dsv.NewReader()
	r.Configure("padded").TrimCharacters(' ', '\t')
	if err := r.Use("padded"); err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	if err := r.ReadString("a,b\n 1 ,\t2\t"); err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}

	want := []dsv.Row{{"a": "1", "b": "2"}}
	if diff := cmp.Diff(want, r.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

// A caller-supplied row count is authoritative: emission stops there even
// when more lines remain.
func TestReadSourceN_BoundsEmission(t *testing.T) {
	r := dsv.NewReader()
	src := dsv.NewStringSource("a,b\n1,2\n3,4\n5,6")
	if err := r.ReadSourceN(src, 2); err != nil {
		t.Fatalf("ReadSourceN() error = %v", err)
	}

	want := []dsv.Row{
		{"a": "1", "b": "2"},
		{"a": "3", "b": "4"},
	}
	if diff := cmp.Diff(want, r.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
	rows, _ := r.Shape()
	if rows != 2 {
		t.Errorf("declared rows = %d, want 2", rows)
	}
}

func TestReadString_HeaderOnly(t *testing.T) {
	r := dsv.NewReader()
	if err := r.ReadString("a,b,c"); err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}
	if len(r.Rows()) != 0 {
		t.Errorf("got %d rows, want 0", len(r.Rows()))
	}
	rows, cols := r.Shape()
	if rows != 0 || cols != 3 {
		t.Errorf("Shape() = (%d, %d), want (0, 3)", rows, cols)
	}
}

func TestReadString_EmptyInput(t *testing.T) {
	r := dsv.NewReader()
	if err := r.ReadString(""); err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}
	if len(r.Rows()) != 0 || len(r.Headers()) != 0 {
		t.Errorf("empty input produced rows=%v headers=%v", r.Rows(), r.Headers())
	}
}

func TestUse_UnknownDialect(t *testing.T) {
	r := dsv.NewReader()
	err := r.Use("does-not-exist")
	if err == nil {
		t.Fatal("Use() of unknown dialect should fail")
	}
	var cerr *dsv.ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %T, want *ConfigurationError", err)
	}
	if cerr.Dialect != "does-not-exist" {
		t.Errorf("Dialect = %q", cerr.Dialect)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	// CRLF line endings: the carriage returns must be stripped.
	content := "a,b,c\r\n1,2,3\r\n4,5,6\r\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r := dsv.NewReader()
	if err := r.ReadFile(path); err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	want := []dsv.Row{
		{"a": "1", "b": "2", "c": "3"},
		{"a": "4", "b": "5", "c": "6"},
	}
	if diff := cmp.Diff(want, r.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFileN_SkipsPrescan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n3,4\n5,6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := dsv.NewReader()
	if err := r.ReadFileN(path, 1); err != nil {
		t.Fatalf("ReadFileN() error = %v", err)
	}
	if len(r.Rows()) != 1 {
		t.Errorf("got %d rows, want 1", len(r.Rows()))
	}
}

func TestReadFile_Missing(t *testing.T) {
	r := dsv.NewReader()
	err := r.ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("ReadFile() of a missing file should fail")
	}
	var rerr *dsv.ResourceError
	if !errors.As(err, &rerr) {
		t.Fatalf("error = %T, want *ResourceError", err)
	}
	if rerr.Path == "" {
		t.Error("ResourceError should carry the path")
	}
	// No partial results on a failed pass.
	if r.Rows() != nil || r.Headers() != nil {
		t.Error("failed pass must not retain results")
	}
}

func TestReader_PassSnapshotsDialect(t *testing.T) {
	r := dsv.NewReader()
	d := r.Configure("snap").Delimiter(";")
	if err := r.Use("snap"); err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	if err := r.ReadString("a;b\n1;2"); err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}

	// Reconfiguring after the pass must not affect already-parsed rows.
	d.Delimiter("|")
	want := []dsv.Row{{"a": "1", "b": "2"}}
	if diff := cmp.Diff(want, r.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}
