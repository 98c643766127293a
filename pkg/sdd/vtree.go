package sdd

import "github.com/matzehuels/sddkit/pkg/dag"

// Vtree is an immutable in-memory vtree node. It implements [dag.Vtree].
type Vtree struct {
	pos         int
	v           int
	left, right *Vtree
}

var _ dag.Vtree = (*Vtree)(nil)

// NewVtreeLeaf returns a leaf at position pos carrying variable v.
func NewVtreeLeaf(pos, v int) *Vtree { return &Vtree{pos: pos, v: v} }

// NewVtreeInternal returns an internal node at position pos.
func NewVtreeInternal(pos int, left, right *Vtree) *Vtree {
	return &Vtree{pos: pos, left: left, right: right}
}

func (t *Vtree) Left() dag.Vtree {
	if t.left == nil {
		return nil
	}
	return t.left
}

func (t *Vtree) Right() dag.Vtree {
	if t.right == nil {
		return nil
	}
	return t.right
}

func (t *Vtree) Var() int      { return t.v }
func (t *Vtree) Position() int { return t.pos }

// Walk visits t and its descendants in post-order.
func (t *Vtree) Walk(fn func(*Vtree)) {
	if t == nil {
		return
	}
	t.left.Walk(fn)
	t.right.Walk(fn)
	fn(t)
}

// Index maps every position in t to its node.
func (t *Vtree) Index() map[int]*Vtree {
	idx := make(map[int]*Vtree)
	t.Walk(func(n *Vtree) { idx[n.pos] = n })
	return idx
}

// Vars returns the variables at the leaves of t, left to right.
func (t *Vtree) Vars() []int {
	var vars []int
	t.Walk(func(n *Vtree) {
		if n.left == nil && n.right == nil {
			vars = append(vars, n.v)
		}
	})
	return vars
}

// RightLinear builds a right-linear vtree over vars: every internal node has
// a leaf as its left child. Positions are assigned in-order from 0, so the
// leaf for vars[i] sits at position 2i. It returns nil for an empty slice.
func RightLinear(vars []int) *Vtree {
	if len(vars) == 0 {
		return nil
	}
	var build func(i int) *Vtree
	build = func(i int) *Vtree {
		leaf := NewVtreeLeaf(2*i, vars[i])
		if i == len(vars)-1 {
			return leaf
		}
		return NewVtreeInternal(2*i+1, leaf, build(i+1))
	}
	return build(0)
}
