package wmc

import (
	"io"

	"github.com/matzehuels/sddkit/internal/format"
	"github.com/matzehuels/sddkit/pkg/errors"
	"github.com/matzehuels/sddkit/pkg/weights"
)

// EvaluateNNF computes the (non-smoothed) weighted model count of the NNF
// file at path.
func EvaluateNNF(path string, w weights.Lookup) (float64, error) {
	return evaluateFile(path, w, ReadNNF)
}

// ReadNNF computes the weighted model count of an NNF circuit read from r.
//
// The header "nnf <nodes> <edges> <vars>" must precede every body line. Each
// body line fills the next slot, starting at 0:
//
//	L <lit>                 weight of lit, DefaultWeight if absent
//	A <k> <c1> ... <ck>     product of the children (1 if k = 0)
//	O <j> <k> <c1> ... <ck> sum of the children (0 if k = 0)
//
// The node and edge counts of the header must match the body, where the
// edges are the children of all A and O lines. The result is the weight of
// the last slot. The j field of an OR line names the variable the node
// decides on (0 if none); it does not affect the count.
func ReadNNF(r io.Reader, name string, w weights.Lookup) (float64, error) {
	s := format.NewScanner(r, name)
	var vals *values
	slot, edges, declaredEdges := 0, 0, 0

	for s.Next() {
		if vals == nil {
			if s.Kind() != "nnf" {
				return 0, s.Errorf("an NNF file should start with 'nnf', got %q", s.Kind())
			}
			n, e, err := readNNFHeader(s)
			if err != nil {
				return 0, err
			}
			vals, declaredEdges = newValues(n), e
			continue
		}

		x, k, err := evalNNFLine(s, vals, w)
		if err != nil {
			return 0, err
		}
		edges += k
		if slot >= vals.size() {
			return 0, s.Errorf("header declares %d nodes but the body has more", vals.size())
		}
		if err := vals.set(s, slot, x); err != nil {
			return 0, err
		}
		slot++
	}
	if err := s.Err(); err != nil {
		return 0, err
	}

	if vals == nil {
		return 0, errors.Format(name, s.Line(), "missing 'nnf' header")
	}
	if slot == 0 {
		return 0, errors.Format(name, s.Line(), "circuit has no nodes")
	}
	if slot != vals.size() {
		return 0, errors.Format(name, s.Line(), "header declares %d nodes but the body has %d", vals.size(), slot)
	}
	if edges != declaredEdges {
		return 0, errors.Format(name, s.Line(), "header declares %d edges but the body has %d", declaredEdges, edges)
	}
	x, _ := vals.lookup(slot - 1)
	return x, nil
}

func readNNFHeader(s *format.Scanner) (nodes, edges int, err error) {
	if err = s.Expect(4); err != nil {
		return 0, 0, err
	}
	if nodes, err = s.Count(1, "node count"); err != nil {
		return 0, 0, err
	}
	if edges, err = s.Count(2, "edge count"); err != nil {
		return 0, 0, err
	}
	if _, err = s.Count(3, "variable count"); err != nil {
		return 0, 0, err
	}
	return nodes, edges, nil
}

// evalNNFLine returns the weight of the current line and its child count.
func evalNNFLine(s *format.Scanner, vals *values, w weights.Lookup) (float64, int, error) {
	switch s.Kind() {
	case "L":
		if err := s.Expect(2); err != nil {
			return 0, 0, err
		}
		lit, err := s.Int(1, "literal")
		if err != nil {
			return 0, 0, err
		}
		x, err := literalWeight(s, w, lit)
		return x, 0, err

	case "A":
		k, err := s.Count(1, "child count")
		if err != nil {
			return 0, 0, err
		}
		if err := s.Expect(2 + k); err != nil {
			return 0, 0, err
		}
		x := 1.0
		for i := 0; i < k; i++ {
			c, err := vals.get(s, 2+i)
			if err != nil {
				return 0, 0, err
			}
			x *= c
		}
		return x, k, nil

	case "O":
		if _, err := s.Count(1, "decision variable"); err != nil {
			return 0, 0, err
		}
		k, err := s.Count(2, "child count")
		if err != nil {
			return 0, 0, err
		}
		if err := s.Expect(3 + k); err != nil {
			return 0, 0, err
		}
		x := FalseWeight
		for i := 0; i < k; i++ {
			c, err := vals.get(s, 3+i)
			if err != nil {
				return 0, 0, err
			}
			x += c
		}
		return x, k, nil

	case "nnf":
		return 0, 0, s.Errorf("duplicate 'nnf' header")
	}
	return 0, 0, s.Errorf("unknown NNF node type %q", s.Kind())
}
