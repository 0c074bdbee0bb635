package dsv

import (
	"strconv"
	"strings"

	"github.com/shapestone/shape-dsv/internal/tokenizer"
)

// Sniffer guesses the dialect of a sample of delimited text: the delimiter
// among the common single-character candidates (comma, tab, semicolon, pipe)
// and whether the first row is a header. For best results give it two or
// three lines of data.
type Sniffer struct {
	sample    string
	delimiter string
	hasHeader bool
	analyzed  bool
}

// NewSniffer creates a Sniffer over sample.
func NewSniffer(sample string) *Sniffer {
	return &Sniffer{sample: sample}
}

// Delimiter returns the detected field delimiter. Comma wins when nothing
// scores.
func (s *Sniffer) Delimiter() string {
	s.analyze()
	return s.delimiter
}

// HasHeader reports whether the first row looks like a header.
func (s *Sniffer) HasHeader() bool {
	s.analyze()
	return s.hasHeader
}

// Dialect returns a Dialect configured with the detected delimiter and
// header flag, ready to register.
func (s *Sniffer) Dialect() *Dialect {
	s.analyze()
	return NewDialect().Delimiter(s.delimiter).Header(s.hasHeader)
}

func (s *Sniffer) analyze() {
	if s.analyzed {
		return
	}
	s.delimiter = s.detectDelimiter()
	s.hasHeader = s.detectHeader()
	s.analyzed = true
}

// sampleLines returns the non-empty lines of the sample, carriage returns
// stripped.
func (s *Sniffer) sampleLines() []string {
	var lines []string
	for _, line := range strings.Split(s.sample, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// fieldsPerLine tokenizes every sample line with the candidate delimiter,
// quote-aware, and returns the field counts.
func (s *Sniffer) fieldsPerLine(delim string) []int {
	tok := tokenizer.New(tokenizer.Config{
		Delimiter:   delim,
		Quote:       '"',
		DoubleQuote: true,
	})
	lines := s.sampleLines()
	counts := make([]int, len(lines))
	for i, line := range lines {
		counts[i] = len(tok.Split(line))
	}
	return counts
}

// detectDelimiter scores each candidate by how many fields it produces,
// with a bonus when the count is consistent across all sample lines.
func (s *Sniffer) detectDelimiter() string {
	candidates := []string{",", "\t", ";", "|"}
	best := ","
	bestScore := 0

	for _, delim := range candidates {
		counts := s.fieldsPerLine(delim)
		if len(counts) == 0 || counts[0] < 2 {
			continue
		}
		score := counts[0]
		consistent := true
		for _, n := range counts[1:] {
			if n != counts[0] {
				consistent = false
				break
			}
		}
		if consistent {
			score *= 10
		}
		if score > bestScore {
			best = delim
			bestScore = score
		}
	}
	return best
}

// detectHeader compares the first row against the second: columns that are
// textual in row one but numeric in row two vote for a header.
func (s *Sniffer) detectHeader() bool {
	lines := s.sampleLines()
	if len(lines) < 2 {
		return false
	}

	tok := tokenizer.New(tokenizer.Config{
		Delimiter:   s.detectDelimiter(),
		Quote:       '"',
		DoubleQuote: true,
	})
	first := tok.Split(lines[0])
	second := tok.Split(lines[1])
	if len(first) == 0 || len(first) != len(second) {
		return false
	}

	votes := 0
	for i := range first {
		headerish := !isNumeric(first[i]) && first[i] != ""
		dataish := isNumeric(second[i])
		if headerish && dataish {
			votes++
		}
		if isNumeric(first[i]) {
			votes--
		}
	}
	return votes > 0
}

func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
