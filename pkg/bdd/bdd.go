// Package bdd exposes reduced ordered BDDs built with
// [github.com/dalzilio/rudd] as SDDs.
//
// A BDD is an SDD over a right-linear vtree: the node testing variable x
// with children low and high is the decision node with elements (x, high)
// and (¬x, low). [FromRudd] performs that translation once, so the result
// can be rendered by pkg/render/dot and written by pkg/sdd like any other
// diagram.
//
// BDD levels are 0-based while literals are 1-based: level l is variable l+1.
package bdd

import (
	"fmt"

	"github.com/dalzilio/rudd"

	"github.com/matzehuels/sddkit/pkg/dag"
	"github.com/matzehuels/sddkit/pkg/sdd"
)

// Ids rudd reserves for the constants.
const (
	falseID = 0
	trueID  = 1
)

// Engine is the part of a rudd BDD the adapter reads. *rudd.BDD satisfies it.
type Engine interface {
	Varnum() int
	Allnodes(f func(id, level, low, high int) error, n ...rudd.Node) error
}

// Diagram is a BDD viewed as an SDD.
type Diagram struct {
	root  dag.Node
	tree  *sdd.Vtree
	nodes int
}

// Root returns the root of the diagram.
func (d *Diagram) Root() dag.Node { return d.root }

// Tree returns the right-linear vtree over all engine variables, or nil when
// the engine has none.
func (d *Diagram) Tree() *sdd.Vtree { return d.tree }

// Size returns the number of BDD nodes reachable from the root, constants
// excluded.
func (d *Diagram) Size() int { return d.nodes }

type record struct {
	level, low, high int
}

// FromRudd translates the BDD rooted at root.
//
// Decision node IDs are the rudd node ids; literal leaves get fresh IDs above
// the largest rudd id and are shared per literal. A node whose children are
// the two constants is the variable itself and becomes a literal leaf.
func FromRudd(e Engine, root rudd.Node) (*Diagram, error) {
	if root == nil {
		return nil, dag.ErrNilRoot
	}

	recs := make(map[int]record)
	maxID := trueID
	err := e.Allnodes(func(id, level, low, high int) error {
		if id > maxID {
			maxID = id
		}
		if id != falseID && id != trueID {
			recs[id] = record{level: level, low: low, high: high}
		}
		return nil
	}, root)
	if err != nil {
		return nil, fmt.Errorf("walk bdd: %w", err)
	}

	vars := make([]int, e.Varnum())
	for i := range vars {
		vars[i] = i + 1
	}
	tree := sdd.RightLinear(vars)
	positions := tree.Index()

	t := &translator{
		recs:      recs,
		positions: positions,
		litBase:   int64(maxID) + 1,
		built:     make(map[int]*sdd.Node),
		lits:      make(map[int]*sdd.Node),
		falseNode: sdd.NewFalse(falseID),
		trueNode:  sdd.NewTrue(trueID),
	}
	r, err := t.node(*root)
	if err != nil {
		return nil, err
	}
	return &Diagram{root: r, tree: tree, nodes: len(recs)}, nil
}

type translator struct {
	recs      map[int]record
	positions map[int]*sdd.Vtree
	litBase   int64
	built     map[int]*sdd.Node
	lits      map[int]*sdd.Node
	falseNode *sdd.Node
	trueNode  *sdd.Node
}

// literal returns the shared leaf for the literal of level with the given
// polarity. Positive literals of variable v get ID litBase+2(v-1), negative
// ones the following ID.
func (t *translator) literal(level int, positive bool) *sdd.Node {
	lit := level + 1
	id := t.litBase + 2*int64(level)
	if !positive {
		lit, id = -lit, id+1
	}
	if n, ok := t.lits[lit]; ok {
		return n
	}
	n := sdd.NewLiteral(id, lit, t.positions[2*level])
	t.lits[lit] = n
	return n
}

func (t *translator) node(id int) (*sdd.Node, error) {
	switch id {
	case falseID:
		return t.falseNode, nil
	case trueID:
		return t.trueNode, nil
	}
	if n, ok := t.built[id]; ok {
		return n, nil
	}
	rec, ok := t.recs[id]
	if !ok {
		return nil, fmt.Errorf("bdd node %d was not reported by the engine", id)
	}

	var n *sdd.Node
	switch {
	case rec.low == falseID && rec.high == trueID:
		n = t.literal(rec.level, true)
	case rec.low == trueID && rec.high == falseID:
		n = t.literal(rec.level, false)
	default:
		high, err := t.node(rec.high)
		if err != nil {
			return nil, err
		}
		low, err := t.node(rec.low)
		if err != nil {
			return nil, err
		}
		n = sdd.NewDecision(int64(id), t.positions[2*rec.level+1],
			sdd.Elem(t.literal(rec.level, true), high),
			sdd.Elem(t.literal(rec.level, false), low),
		)
	}
	t.built[id] = n
	return n, nil
}
