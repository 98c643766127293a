// Package format implements the line scanner shared by the NNF, SDD and
// vtree file readers.
//
// All three formats are line oriented: a line is a whitespace separated list
// of tokens whose first token names the line kind, and lines whose first
// token is "c" are comments. The scanner skips comments and blank lines,
// tracks 1-based line numbers and builds located format errors.
package format

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/sddkit/pkg/errors"
)

// maxLineSize bounds a single line. Decision lines of large diagrams can
// easily exceed bufio's 64KiB default.
const maxLineSize = 64 << 20

// Scanner reads the significant lines of a circuit file.
type Scanner struct {
	sc     *bufio.Scanner
	name   string
	line   int
	fields []string
}

// NewScanner returns a scanner reading from r. name identifies the input in
// error messages, usually the file path.
func NewScanner(r io.Reader, name string) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Scanner{sc: sc, name: name}
}

// Next advances to the next line that is neither blank nor a comment.
// It returns false at end of input or on a read error; see Err.
func (s *Scanner) Next() bool {
	for s.sc.Scan() {
		s.line++
		fields := strings.Fields(s.sc.Text())
		if len(fields) == 0 || fields[0] == "c" {
			continue
		}
		s.fields = fields
		return true
	}
	s.fields = nil
	return false
}

// Err returns the first read error, unmodified. It is nil at a clean end of input.
func (s *Scanner) Err() error { return s.sc.Err() }

// Fields returns the tokens of the current line.
func (s *Scanner) Fields() []string { return s.fields }

// Kind returns the first token of the current line.
func (s *Scanner) Kind() string {
	if len(s.fields) == 0 {
		return ""
	}
	return s.fields[0]
}

// Line returns the 1-based number of the current line.
func (s *Scanner) Line() int { return s.line }

// Name returns the input name given to NewScanner.
func (s *Scanner) Name() string { return s.name }

// Errorf returns a format error located at the current line.
func (s *Scanner) Errorf(format string, args ...any) *errors.Error {
	return errors.Format(s.name, s.line, format, args...)
}

// Fail returns an error with the given code located at the current line.
func (s *Scanner) Fail(code errors.Code, format string, args ...any) *errors.Error {
	e := errors.New(code, format, args...)
	e.File, e.Line = s.name, s.line
	return e
}

// Expect checks that the current line has exactly n tokens.
func (s *Scanner) Expect(n int) error {
	if len(s.fields) != n {
		return s.Errorf("%q line expects %d tokens, got %d", s.Kind(), n, len(s.fields))
	}
	return nil
}

// AtLeast checks that the current line has at least n tokens.
func (s *Scanner) AtLeast(n int) error {
	if len(s.fields) < n {
		return s.Errorf("%q line expects at least %d tokens, got %d", s.Kind(), n, len(s.fields))
	}
	return nil
}

// Int parses token i of the current line. what names the token in errors.
func (s *Scanner) Int(i int, what string) (int, error) {
	if i >= len(s.fields) {
		return 0, s.Errorf("missing %s", what)
	}
	v, err := strconv.Atoi(s.fields[i])
	if err != nil {
		return 0, s.Errorf("%s %q is not an integer", what, s.fields[i])
	}
	return v, nil
}

// Count parses token i as a non-negative integer.
func (s *Scanner) Count(i int, what string) (int, error) {
	v, err := s.Int(i, what)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, s.Errorf("%s must not be negative, got %d", what, v)
	}
	return v, nil
}
