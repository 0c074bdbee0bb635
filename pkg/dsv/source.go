package dsv

import (
	"bufio"
	"io"
	"strings"
)

// maxLineSize bounds the length of a single input line (1 MiB).
const maxLineSize = 1 << 20

// LineSource supplies input lines to a parse pass. Implementations must
// strip the trailing carriage return from every line and must support
// rewinding to the first line, which the Reader uses between the row-count
// pre-scan and the main pass.
type LineSource interface {
	// Next returns the next line. ok is false at end of input.
	Next() (line string, ok bool, err error)
	// Rewind repositions the source at the first line.
	Rewind() error
}

// stringSource serves lines from an in-memory document.
type stringSource struct {
	lines []string
	pos   int
}

// NewStringSource returns a LineSource over an in-memory document. Lines are
// separated by '\n'; a trailing newline does not produce a final empty line,
// matching line-at-a-time file reading.
func NewStringSource(s string) LineSource {
	src := &stringSource{}
	if s != "" {
		src.lines = strings.Split(s, "\n")
		if n := len(src.lines); n > 0 && src.lines[n-1] == "" && strings.HasSuffix(s, "\n") {
			src.lines = src.lines[:n-1]
		}
	}
	return src
}

func (s *stringSource) Next() (string, bool, error) {
	if s.pos >= len(s.lines) {
		return "", false, nil
	}
	line := strings.TrimSuffix(s.lines[s.pos], "\r")
	s.pos++
	return line, true, nil
}

func (s *stringSource) Rewind() error {
	s.pos = 0
	return nil
}

// seekSource serves lines from an io.ReadSeeker, typically an *os.File. The
// caller retains ownership of the underlying stream and is responsible for
// closing it.
type seekSource struct {
	rs      io.ReadSeeker
	scanner *bufio.Scanner
}

// NewSeekSource returns a LineSource over rs. Rewind seeks back to the start
// of the stream.
func NewSeekSource(rs io.ReadSeeker) LineSource {
	return &seekSource{rs: rs, scanner: newLineScanner(rs)}
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return sc
}

func (s *seekSource) Next() (string, bool, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", false, err
		}
		return "", false, nil
	}
	return strings.TrimSuffix(s.scanner.Text(), "\r"), true, nil
}

func (s *seekSource) Rewind() error {
	if _, err := s.rs.Seek(0, io.SeekStart); err != nil {
		return err
	}
	s.scanner = newLineScanner(s.rs)
	return nil
}
