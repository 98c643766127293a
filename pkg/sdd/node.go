package sdd

import "github.com/matzehuels/sddkit/pkg/dag"

// Node is an immutable in-memory SDD node. It implements [dag.Node].
type Node struct {
	id    int64
	kind  dag.Kind
	lit   int
	vtree *Vtree
	elems []dag.Element
}

var _ dag.Node = (*Node)(nil)

// NewTrue returns the true terminal with the given id.
func NewTrue(id int64) *Node { return &Node{id: id, kind: dag.KindTrue} }

// NewFalse returns the false terminal with the given id.
func NewFalse(id int64) *Node { return &Node{id: id, kind: dag.KindFalse} }

// NewLiteral returns a literal leaf. vt may be nil.
func NewLiteral(id int64, lit int, vt *Vtree) *Node {
	return &Node{id: id, kind: dag.KindLiteral, lit: lit, vtree: vt}
}

// NewDecision returns a decision node over the given elements. vt may be nil.
func NewDecision(id int64, vt *Vtree, elems ...dag.Element) *Node {
	return &Node{id: id, kind: dag.KindDecision, vtree: vt, elems: elems}
}

// Elem builds a (prime, sub) element.
func Elem(prime, sub dag.Node) dag.Element {
	return dag.Element{Prime: prime, Sub: sub}
}

func (n *Node) ID() int64      { return n.id }
func (n *Node) Kind() dag.Kind { return n.kind }
func (n *Node) Literal() int   { return n.lit }

// Vtree returns the vtree node of n or nil. It never returns a non-nil
// interface holding a nil pointer.
func (n *Node) Vtree() dag.Vtree {
	if n.vtree == nil {
		return nil
	}
	return n.vtree
}

func (n *Node) Elements() []dag.Element { return n.elems }
