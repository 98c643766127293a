package wmc

import (
	"io"

	"github.com/matzehuels/sddkit/internal/format"
	"github.com/matzehuels/sddkit/pkg/errors"
	"github.com/matzehuels/sddkit/pkg/weights"
)

// RootID is the id of the root node in an SDD file.
const RootID = 0

// EvaluateSDD computes the (non-smoothed) weighted model count of the SDD
// file at path.
func EvaluateSDD(path string, w weights.Lookup) (float64, error) {
	return evaluateFile(path, w, ReadSDD)
}

// ReadSDD computes the weighted model count of an SDD read from r.
//
// The header "sdd <capacity>" sizes the node table; node ids must lie in
// [0, capacity). Body lines name their node explicitly:
//
//	L <id> <vtree> <lit>               weight of lit, DefaultWeight if absent
//	F <id>                             0
//	T <id>                             1
//	D <id> <vtree> <k> <p1> <s1> ...   sum of weight(pi) * weight(si)
//
// Every referenced id must have been defined on an earlier line. The result
// is the weight of node 0.
func ReadSDD(r io.Reader, name string, w weights.Lookup) (float64, error) {
	s := format.NewScanner(r, name)
	var vals *values

	for s.Next() {
		if vals == nil {
			if s.Kind() != "sdd" {
				return 0, s.Errorf("an SDD file should start with 'sdd', got %q", s.Kind())
			}
			if err := s.Expect(2); err != nil {
				return 0, err
			}
			n, err := s.Count(1, "capacity")
			if err != nil {
				return 0, err
			}
			vals = newValues(n)
			continue
		}

		id, x, err := evalSDDLine(s, vals, w)
		if err != nil {
			return 0, err
		}
		if err := vals.set(s, id, x); err != nil {
			return 0, err
		}
	}
	if err := s.Err(); err != nil {
		return 0, err
	}

	if vals == nil {
		return 0, errors.Format(name, s.Line(), "missing 'sdd' header")
	}
	root, ok := vals.lookup(RootID)
	if !ok {
		return 0, errors.Format(name, s.Line(), "root node %d is never defined", RootID)
	}
	return root, nil
}

func evalSDDLine(s *format.Scanner, vals *values, w weights.Lookup) (int, float64, error) {
	switch s.Kind() {
	case "L":
		if err := s.Expect(4); err != nil {
			return 0, 0, err
		}
		id, err := s.Int(1, "node id")
		if err != nil {
			return 0, 0, err
		}
		if _, err := s.Int(2, "vtree id"); err != nil {
			return 0, 0, err
		}
		lit, err := s.Int(3, "literal")
		if err != nil {
			return 0, 0, err
		}
		x, err := literalWeight(s, w, lit)
		return id, x, err

	case "F", "T":
		if err := s.Expect(2); err != nil {
			return 0, 0, err
		}
		id, err := s.Int(1, "node id")
		if err != nil {
			return 0, 0, err
		}
		if s.Kind() == "T" {
			return id, TrueWeight, nil
		}
		return id, FalseWeight, nil

	case "D":
		if err := s.AtLeast(4); err != nil {
			return 0, 0, err
		}
		id, err := s.Int(1, "node id")
		if err != nil {
			return 0, 0, err
		}
		if _, err := s.Int(2, "vtree id"); err != nil {
			return 0, 0, err
		}
		k, err := s.Count(3, "element count")
		if err != nil {
			return 0, 0, err
		}
		if err := s.Expect(4 + 2*k); err != nil {
			return 0, 0, err
		}
		x := 0.0
		for i := 0; i < k; i++ {
			p, err := vals.get(s, 4+2*i)
			if err != nil {
				return 0, 0, err
			}
			sub, err := vals.get(s, 5+2*i)
			if err != nil {
				return 0, 0, err
			}
			x += p * sub
		}
		return id, x, nil

	case "sdd":
		return 0, 0, s.Errorf("duplicate 'sdd' header")
	}
	return 0, 0, s.Errorf("unknown SDD node type %q", s.Kind())
}
