// Command dsv inspects and converts delimiter-separated files using named
// dialects.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shapestone/shape-dsv/pkg/dsv"
	"github.com/shapestone/shape-dsv/pkg/logger"
)

var version = "0.1.0"

func main() {
	var logLevel string
	var dialectsFile string

	root := &cobra.Command{
		Use:   "dsv",
		Short: "dsv - dialect-aware delimited text toolkit",
		Long: `dsv parses and writes CSV-like delimited text under named dialects.
Dialects control the delimiter (including multi-character sequences), quoting,
trimming and column filtering, and can be defined in a YAML file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(logger.Config{Level: logLevel, Development: true})
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "error", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&dialectsFile, "dialects-file", "", "Path to a YAML dialect definition file")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dsv v%s\n", version)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "dialects",
		Short: "List registered dialects",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := dsv.NewRegistry()
			if err := loadDialects(registry, dialectsFile); err != nil {
				return err
			}
			for _, name := range registry.Names() {
				fmt.Println(name)
			}
			return nil
		},
	})

	var sniffLines int
	sniffCmd := &cobra.Command{
		Use:   "sniff <file>",
		Short: "Detect the dialect of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSniff(args[0], sniffLines)
		},
	}
	sniffCmd.Flags().IntVar(&sniffLines, "lines", 10, "Number of sample lines to inspect")
	root.AddCommand(sniffCmd)

	var shapeDialect string
	shapeCmd := &cobra.Command{
		Use:   "shape <file>",
		Short: "Print the row and column counts of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShape(args[0], shapeDialect, dialectsFile)
		},
	}
	shapeCmd.Flags().StringVar(&shapeDialect, "dialect", dsv.DialectExcel, "Dialect to parse with")
	root.AddCommand(shapeCmd)

	var convertIn, convertOut, fromDialect, toDialect string
	var convertRows int
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a file from one dialect to another",
		Long: `Convert reads the input file under the source dialect and rewrites it
under the target dialect.

Example:
  dsv convert -i data.csv -o data.tsv --from excel --to excel_tab`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(convertIn, convertOut, fromDialect, toDialect, dialectsFile, convertRows)
		},
	}
	convertCmd.Flags().StringVarP(&convertIn, "input", "i", "", "Input file (required)")
	convertCmd.Flags().StringVarP(&convertOut, "output", "o", "", "Output file (required)")
	convertCmd.Flags().StringVar(&fromDialect, "from", dsv.DialectExcel, "Source dialect")
	convertCmd.Flags().StringVar(&toDialect, "to", dsv.DialectExcel, "Target dialect")
	convertCmd.Flags().IntVar(&convertRows, "rows", 0, "Expected row count; 0 pre-scans the input")
	_ = convertCmd.MarkFlagRequired("input")
	_ = convertCmd.MarkFlagRequired("output")
	root.AddCommand(convertCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadDialects merges a YAML dialect definition file into the registry when
// one was given.
func loadDialects(registry *dsv.Registry, path string) error {
	if path == "" {
		return nil
	}
	if err := dsv.LoadDialectFile(registry, path); err != nil {
		return fmt.Errorf("loading dialects: %w", err)
	}
	return nil
}

func runSniff(path string, lines int) error {
	sample, err := readSample(path, lines)
	if err != nil {
		return err
	}
	sniffer := dsv.NewSniffer(sample)
	fmt.Printf("delimiter: %s\n", strconv.Quote(sniffer.Delimiter()))
	fmt.Printf("header: %t\n", sniffer.HasHeader())
	return nil
}

func runShape(path, dialect, dialectsFile string) error {
	reader := dsv.NewReader()
	reader.SetLogger(logger.Get())
	if err := loadDialects(reader.Registry(), dialectsFile); err != nil {
		return err
	}
	if err := reader.Use(dialect); err != nil {
		return err
	}
	if err := reader.ReadFile(path); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	rows, cols := reader.Shape()
	fmt.Printf("%d rows x %d columns\n", rows, cols)
	for _, header := range reader.Headers() {
		fmt.Printf("  - %s\n", header)
	}
	return nil
}

func runConvert(in, out, from, to, dialectsFile string, rows int) error {
	log := logger.Get().With(
		zap.String("component", "dsv-cli"),
		zap.String("from", from),
		zap.String("to", to))

	reader := dsv.NewReader()
	reader.SetLogger(log)
	if err := loadDialects(reader.Registry(), dialectsFile); err != nil {
		return err
	}
	if err := reader.Use(from); err != nil {
		return fmt.Errorf("source dialect: %w", err)
	}
	if err := reader.ReadFileN(in, rows); err != nil {
		return fmt.Errorf("parsing %s: %w", in, err)
	}

	writer, err := dsv.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer writer.Close()

	if err := loadDialects(writer.Registry(), dialectsFile); err != nil {
		return err
	}
	// Carry the parsed header over so the output leads with a header line
	// and WriteRowMap has an ordering. Ignored columns are absent from the
	// parsed rows, so the order is taken from the surviving keys.
	columns := survivingColumns(reader)
	writer.Configure(to).ColumnNames(columns...)
	if err := writer.Use(to); err != nil {
		return fmt.Errorf("target dialect: %w", err)
	}

	for _, row := range reader.Rows() {
		if err := writer.WriteRowMap(row); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
	}

	emitted, cols := len(reader.Rows()), len(columns)
	log.Info("conversion complete",
		zap.String("input", in),
		zap.String("output", out),
		zap.Int("rows", emitted),
		zap.Int("columns", cols))
	return nil
}

// survivingColumns returns the reader's headers in order, minus the columns
// the source dialect filtered out of the rows.
func survivingColumns(reader *dsv.Reader) []string {
	headers := reader.Headers()
	rows := reader.Rows()
	if len(rows) == 0 {
		return headers
	}
	columns := make([]string, 0, len(headers))
	for _, name := range headers {
		if _, ok := rows[0][name]; ok {
			columns = append(columns, name)
		}
	}
	return columns
}

// readSample reads up to n lines from path for dialect sniffing.
func readSample(path string, n int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	src := dsv.NewSeekSource(f)
	sample := ""
	for i := 0; i < n; i++ {
		line, ok, err := src.Next()
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		if !ok {
			break
		}
		sample += line + "\n"
	}
	return sample, nil
}
