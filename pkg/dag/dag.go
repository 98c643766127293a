package dag

import (
	"errors"
	"fmt"
)

var (
	// ErrNilRoot is returned when a traversal is started from a nil node or tree.
	ErrNilRoot = errors.New("no root node given")

	// ErrUnknownKind is returned when a node reports a Kind outside the four
	// known variants. It indicates a broken Node implementation.
	ErrUnknownKind = errors.New("unknown node kind")
)

// Kind distinguishes the four variants of a decision diagram node.
type Kind int

const (
	// KindFalse is the constant false terminal.
	KindFalse Kind = iota
	// KindTrue is the constant true terminal.
	KindTrue
	// KindLiteral is a literal leaf; Literal returns a non-zero integer whose
	// sign gives the polarity.
	KindLiteral
	// KindDecision is a decision node; Elements returns its (prime, sub) pairs.
	KindDecision
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFalse:
		return "false"
	case KindTrue:
		return "true"
	case KindLiteral:
		return "literal"
	case KindDecision:
		return "decision"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsLeaf reports whether nodes of this kind have no children.
func (k Kind) IsLeaf() bool { return k == KindFalse || k == KindTrue || k == KindLiteral }

// Valid reports whether k is one of the four known variants.
func (k Kind) Valid() bool { return k >= KindFalse && k <= KindDecision }

// Node is the read-only view of a decision diagram node.
//
// Implementations must be acyclic: a node may be reachable from several
// parents, never from itself. ID must be stable and unique within the
// diagram; it is the node's identity for memoized traversals.
type Node interface {
	// ID returns the stable identity of the node.
	ID() int64
	// Kind returns the node variant.
	Kind() Kind
	// Literal returns the literal of a KindLiteral node and 0 otherwise.
	Literal() int
	// Vtree returns the vtree node the node is normalized for, or nil.
	Vtree() Vtree
	// Elements returns the ordered (prime, sub) pairs of a KindDecision node
	// and nil otherwise. Callers must not modify the returned slice.
	Elements() []Element
}

// Element is one (prime, sub) pair of a decision node. The node denotes the
// disjunction of Prime ∧ Sub over its elements; primes are mutually exclusive.
type Element struct {
	Prime Node
	Sub   Node
}

// Vtree is the read-only view of a vtree node: a full binary tree whose
// leaves carry variables.
type Vtree interface {
	// Left returns the left child, or nil at a leaf.
	Left() Vtree
	// Right returns the right child, or nil at a leaf.
	Right() Vtree
	// Var returns the variable of a leaf and 0 for internal nodes.
	Var() int
	// Position returns the in-order position of the node, unique within its tree.
	Position() int
}

// IsLeafTree reports whether v has no children.
func IsLeafTree(v Vtree) bool {
	return v.Left() == nil && v.Right() == nil
}

// Stats counts the distinct nodes reachable from root and the number of
// element pairs across all decision nodes. Shared subgraphs are counted once.
func Stats(root Node) (nodes, elements int, err error) {
	if root == nil {
		return 0, 0, ErrNilRoot
	}
	seen := make(map[int64]bool)
	var walk func(n Node) error
	walk = func(n Node) error {
		if seen[n.ID()] {
			return nil
		}
		seen[n.ID()] = true
		nodes++
		switch n.Kind() {
		case KindFalse, KindTrue, KindLiteral:
			return nil
		case KindDecision:
			for _, e := range n.Elements() {
				elements++
				if err := walk(e.Prime); err != nil {
					return err
				}
				if err := walk(e.Sub); err != nil {
					return err
				}
			}
			return nil
		}
		return fmt.Errorf("node %d: %w", n.ID(), ErrUnknownKind)
	}
	err = walk(root)
	return nodes, elements, err
}

// Variables returns the variables mentioned by literals reachable from root,
// in first-visit order.
func Variables(root Node) []int {
	if root == nil {
		return nil
	}
	seenNode := make(map[int64]bool)
	seenVar := make(map[int]bool)
	var vars []int
	var walk func(n Node)
	walk = func(n Node) {
		if seenNode[n.ID()] {
			return
		}
		seenNode[n.ID()] = true
		switch n.Kind() {
		case KindLiteral:
			v := n.Literal()
			if v < 0 {
				v = -v
			}
			if !seenVar[v] {
				seenVar[v] = true
				vars = append(vars, v)
			}
		case KindDecision:
			for _, e := range n.Elements() {
				walk(e.Prime)
				walk(e.Sub)
			}
		}
	}
	walk(root)
	return vars
}
