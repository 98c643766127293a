package wmc

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/sddkit/internal/format"
	"github.com/matzehuels/sddkit/pkg/errors"
	"github.com/matzehuels/sddkit/pkg/weights"
)

// Format names a circuit file format.
type Format string

// Supported circuit formats.
const (
	FormatNNF Format = "nnf"
	FormatSDD Format = "sdd"
)

// Weights of the Boolean constants.
const (
	TrueWeight  = 1.0
	FalseWeight = 0.0
)

// ParseFormat validates a format name such as "nnf" or "SDD".
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(s, "."))
	if err := errors.ValidateFormatName(name); err != nil {
		return "", err
	}
	switch f := Format(name); f {
	case FormatNNF, FormatSDD:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported circuit format %q (must be 'nnf' or 'sdd')", s)
}

// FormatOf derives the format of path from its extension.
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeUnsupported, "%s: cannot infer circuit format without a file extension", path)
	}
	return ParseFormat(ext)
}

// Evaluate computes the weighted model count of the file at path, choosing
// the evaluator from the file extension.
func Evaluate(path string, w weights.Lookup) (float64, error) {
	f, err := FormatOf(path)
	if err != nil {
		return 0, err
	}
	switch f {
	case FormatNNF:
		return EvaluateNNF(path, w)
	default:
		return EvaluateSDD(path, w)
	}
}

// EvaluateReader computes the weighted model count of a circuit read from r.
// name identifies the input in error messages.
func EvaluateReader(r io.Reader, name string, f Format, w weights.Lookup) (float64, error) {
	switch f {
	case FormatNNF:
		return ReadNNF(r, name, w)
	case FormatSDD:
		return ReadSDD(r, name, w)
	}
	return 0, errors.New(errors.ErrCodeUnsupported, "unsupported circuit format %q", string(f))
}

// evaluateFile opens path, runs read over it and closes the file on every
// exit path. Open errors are returned unmodified.
func evaluateFile(path string, w weights.Lookup, read func(io.Reader, string, weights.Lookup) (float64, error)) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return read(f, path, w)
}

// literalWeight resolves the weight of lit. A nil table is a precondition
// violation; a table without an entry for lit yields weights.DefaultWeight.
func literalWeight(s *format.Scanner, w weights.Lookup, lit int) (float64, error) {
	if lit == 0 {
		return 0, s.Errorf("literal 0 is not a valid literal")
	}
	if w == nil {
		return 0, s.Fail(errors.ErrCodeMissingWeights, "weight of literal %d requested but no weight table was supplied", lit)
	}
	return weights.WeightOf(w, lit), nil
}

// values is the write-once weight array of one evaluation.
// Every slot is assigned at most once and may only be read after assignment.
// Slots are stored by id as they are defined, so the declared capacity only
// bounds the ids and never sizes an allocation.
type values struct {
	capacity int
	w        map[int]float64
}

func newValues(capacity int) *values {
	return &values{capacity: capacity, w: make(map[int]float64)}
}

func (v *values) size() int { return v.capacity }

func (v *values) set(s *format.Scanner, i int, x float64) error {
	if i < 0 || i >= v.capacity {
		return s.Errorf("node %d is outside the declared range [0,%d)", i, v.capacity)
	}
	if _, ok := v.w[i]; ok {
		return s.Errorf("node %d is defined twice", i)
	}
	v.w[i] = x
	return nil
}

// get reads token tok of the current line as a node reference.
func (v *values) get(s *format.Scanner, tok int) (float64, error) {
	i, err := s.Int(tok, "node reference")
	if err != nil {
		return 0, err
	}
	x, ok := v.w[i]
	if !ok {
		return 0, s.Errorf("node %d is referenced before it is defined", i)
	}
	return x, nil
}

// lookup returns the weight of slot i and whether it was assigned.
func (v *values) lookup(i int) (float64, bool) {
	x, ok := v.w[i]
	return x, ok
}
