package sdd

import (
	"io"
	"os"

	"github.com/matzehuels/sddkit/internal/format"
	"github.com/matzehuels/sddkit/pkg/dag"
	"github.com/matzehuels/sddkit/pkg/errors"
)

// RootID is the id of the root node in an SDD file.
const RootID = 0

// ReadVtree decodes a vtree file from r.
//
// The input starts with "vtree <count>" followed by one line per node,
// children before parents:
//
//	L <id> <var>           leaf carrying variable var (> 0)
//	I <id> <left> <right>  internal node
//
// Ids lie in [0, count) and become the node positions. The last line is the
// root. Every other node must be the child of exactly one internal node.
// name identifies the input in error messages. ReadVtree does not close r.
func ReadVtree(r io.Reader, name string) (*Vtree, error) {
	s := format.NewScanner(r, name)
	// nodes and used are keyed by id; count bounds the ids without sizing
	// any allocation.
	var nodes map[int]*Vtree
	used := make(map[int]bool)
	var root *Vtree
	count := 0

	child := func(tok int) (*Vtree, error) {
		id, err := s.Int(tok, "child id")
		if err != nil {
			return nil, err
		}
		if nodes[id] == nil {
			return nil, s.Errorf("vtree node %d is referenced before it is defined", id)
		}
		if used[id] {
			return nil, s.Errorf("vtree node %d has more than one parent", id)
		}
		used[id] = true
		return nodes[id], nil
	}

	for s.Next() {
		if nodes == nil {
			if s.Kind() != "vtree" {
				return nil, s.Errorf("a vtree file should start with 'vtree', got %q", s.Kind())
			}
			if err := s.Expect(2); err != nil {
				return nil, err
			}
			n, err := s.Count(1, "node count")
			if err != nil {
				return nil, err
			}
			if n == 0 {
				return nil, s.Errorf("vtree must have at least one node")
			}
			nodes, count = make(map[int]*Vtree), n
			continue
		}

		var node *Vtree
		switch s.Kind() {
		case "L":
			if err := s.Expect(3); err != nil {
				return nil, err
			}
			id, err := s.Int(1, "node id")
			if err != nil {
				return nil, err
			}
			v, err := s.Int(2, "variable")
			if err != nil {
				return nil, err
			}
			if v <= 0 {
				return nil, s.Errorf("variable must be positive, got %d", v)
			}
			node = NewVtreeLeaf(id, v)
		case "I":
			if err := s.Expect(4); err != nil {
				return nil, err
			}
			id, err := s.Int(1, "node id")
			if err != nil {
				return nil, err
			}
			left, err := child(2)
			if err != nil {
				return nil, err
			}
			right, err := child(3)
			if err != nil {
				return nil, err
			}
			node = NewVtreeInternal(id, left, right)
		case "vtree":
			return nil, s.Errorf("duplicate 'vtree' header")
		default:
			return nil, s.Errorf("unknown vtree node type %q", s.Kind())
		}

		if node.pos < 0 || node.pos >= count {
			return nil, s.Errorf("vtree node %d is outside the declared range [0,%d)", node.pos, count)
		}
		if nodes[node.pos] != nil {
			return nil, s.Errorf("vtree node %d is defined twice", node.pos)
		}
		nodes[node.pos] = node
		root = node
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	if nodes == nil {
		return nil, errors.Format(name, s.Line(), "missing 'vtree' header")
	}
	if len(nodes) != count {
		return nil, errors.Format(name, s.Line(), "header declares %d vtree nodes but the body has %d", count, len(nodes))
	}
	for id := 0; id < count; id++ {
		if !used[id] && nodes[id] != root {
			return nil, errors.Format(name, s.Line(), "vtree node %d is not connected to the root", id)
		}
	}
	return root, nil
}

// ImportVtree reads the vtree file at path. Open errors are returned
// unmodified.
func ImportVtree(path string) (*Vtree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadVtree(f, path)
}

// Read decodes an SDD file from r into memory and returns its root, the
// node with id 0.
//
// The grammar is the one evaluated by wmc.ReadSDD. When vt is non-nil every
// vtree id in the file must name a position in vt and nodes are linked to
// those vtree nodes; when vt is nil the vtree ids are checked for syntax only
// and the nodes carry no vtree. Node ids in the file become the node IDs.
// Read does not close r.
func Read(r io.Reader, name string, vt *Vtree) (*Node, error) {
	s := format.NewScanner(r, name)
	positions := vt.Index()
	// nodes is keyed by id; capacity bounds the ids without sizing any
	// allocation.
	var nodes map[int]*Node
	capacity := 0

	ref := func(tok int) (*Node, error) {
		id, err := s.Int(tok, "node reference")
		if err != nil {
			return nil, err
		}
		if nodes[id] == nil {
			return nil, s.Errorf("node %d is referenced before it is defined", id)
		}
		return nodes[id], nil
	}
	vtreeAt := func(tok int) (*Vtree, error) {
		pos, err := s.Int(tok, "vtree id")
		if err != nil || vt == nil {
			return nil, err
		}
		v, ok := positions[pos]
		if !ok {
			return nil, s.Errorf("vtree id %d does not exist in the vtree", pos)
		}
		return v, nil
	}

	for s.Next() {
		if nodes == nil {
			if s.Kind() != "sdd" {
				return nil, s.Errorf("an SDD file should start with 'sdd', got %q", s.Kind())
			}
			if err := s.Expect(2); err != nil {
				return nil, err
			}
			n, err := s.Count(1, "capacity")
			if err != nil {
				return nil, err
			}
			nodes, capacity = make(map[int]*Node), n
			continue
		}

		var node *Node
		switch s.Kind() {
		case "T", "F":
			if err := s.Expect(2); err != nil {
				return nil, err
			}
			id, err := s.Int(1, "node id")
			if err != nil {
				return nil, err
			}
			if s.Kind() == "T" {
				node = NewTrue(int64(id))
			} else {
				node = NewFalse(int64(id))
			}
		case "L":
			if err := s.Expect(4); err != nil {
				return nil, err
			}
			id, err := s.Int(1, "node id")
			if err != nil {
				return nil, err
			}
			v, err := vtreeAt(2)
			if err != nil {
				return nil, err
			}
			lit, err := s.Int(3, "literal")
			if err != nil {
				return nil, err
			}
			if lit == 0 {
				return nil, s.Errorf("literal 0 is not a valid literal")
			}
			node = NewLiteral(int64(id), lit, v)
		case "D":
			if err := s.AtLeast(4); err != nil {
				return nil, err
			}
			id, err := s.Int(1, "node id")
			if err != nil {
				return nil, err
			}
			v, err := vtreeAt(2)
			if err != nil {
				return nil, err
			}
			k, err := s.Count(3, "element count")
			if err != nil {
				return nil, err
			}
			if err := s.Expect(4 + 2*k); err != nil {
				return nil, err
			}
			elems := make([]dag.Element, 0, k)
			for i := 0; i < k; i++ {
				p, err := ref(4 + 2*i)
				if err != nil {
					return nil, err
				}
				sub, err := ref(5 + 2*i)
				if err != nil {
					return nil, err
				}
				elems = append(elems, Elem(p, sub))
			}
			node = NewDecision(int64(id), v, elems...)
		case "sdd":
			return nil, s.Errorf("duplicate 'sdd' header")
		default:
			return nil, s.Errorf("unknown SDD node type %q", s.Kind())
		}

		id := int(node.id)
		if id < 0 || id >= capacity {
			return nil, s.Errorf("node %d is outside the declared range [0,%d)", id, capacity)
		}
		if nodes[id] != nil {
			return nil, s.Errorf("node %d is defined twice", id)
		}
		nodes[id] = node
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	if nodes == nil {
		return nil, errors.Format(name, s.Line(), "missing 'sdd' header")
	}
	if nodes[RootID] == nil {
		return nil, errors.Format(name, s.Line(), "root node %d is never defined", RootID)
	}
	return nodes[RootID], nil
}

// Import reads the SDD file at path. vt may be nil; see [Read]. Open errors
// are returned unmodified.
func Import(path string, vt *Vtree) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, path, vt)
}
