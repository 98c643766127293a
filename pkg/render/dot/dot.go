package dot

import (
	"fmt"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/matzehuels/sddkit/pkg/dag"
)

// DAGOptions configures [RenderDAG].
type DAGOptions struct {
	// Labels overrides display text; nil uses the defaults.
	Labels Labels
	// ShowIDs adds an xlabel with the node id and vtree position.
	ShowIDs bool
	// MergeLeaves draws every terminal and literal once. When false each
	// occurrence gets its own graphical node, which avoids long crossing edges.
	MergeLeaves bool
}

// TreeOptions configures [RenderTree].
type TreeOptions struct {
	// Labels overrides variable names; nil prints the variable numbers.
	Labels Labels
	// ShowIDs adds an xlabel with the vtree position.
	ShowIDs bool
}

// renderContext holds the state of one RenderDAG call.
type renderContext struct {
	opts    DAGOptions
	visited mapset.Set[int64]
	leaves  int
	lines   []string
}

// RenderDAG returns the DOT source of the diagram rooted at root.
//
// Decision nodes are circles labeled with the addition symbol; each element
// is an intermediate circle labeled with the multiplication symbol that
// points at the prime and the sub. Shared decision nodes are emitted once.
// The output is a deterministic function of root and opts: lines are joined
// with "\n" and there is no trailing newline.
func RenderDAG(root dag.Node, opts DAGOptions) (string, error) {
	if root == nil {
		return "", dag.ErrNilRoot
	}
	rc := &renderContext{
		opts:    opts,
		visited: mapset.NewThreadUnsafeSet[int64](),
		lines:   []string{"digraph sdd {"},
	}
	_, stmts, err := rc.node(root)
	if err != nil {
		return "", err
	}
	rc.lines = append(rc.lines, stmts...)
	rc.lines = append(rc.lines, "}")
	return strings.Join(rc.lines, "\n"), nil
}

// node renders n and returns its DOT id and statements. A node that was
// already emitted yields its id and no statements.
func (rc *renderContext) node(n dag.Node) (string, []string, error) {
	id := strconv.FormatInt(n.ID(), 10)
	if rc.visited.Contains(n.ID()) {
		return id, nil, nil
	}

	switch n.Kind() {
	case dag.KindFalse, dag.KindTrue, dag.KindLiteral:
		nodeID := id
		if rc.opts.MergeLeaves {
			rc.visited.Add(n.ID())
		} else {
			nodeID = fmt.Sprintf("n%d_%s", rc.leaves, id)
			rc.leaves++
		}
		stmt := fmt.Sprintf(`%s [shape=rectangle,label="%s"%s];`, nodeID, rc.leafLabel(n), rc.xlabel(n))
		return nodeID, []string{stmt}, nil

	case dag.KindDecision:
		rc.visited.Add(n.ID())
		labels := rc.opts.Labels
		stmts := []string{fmt.Sprintf(`%s [shape=circle,label="%s"%s];`, id, labels.text(KeyAdd, DefaultAdd), rc.xlabel(n))}
		for idx, e := range n.Elements() {
			primeID, primeStmts, err := rc.node(e.Prime)
			if err != nil {
				return "", nil, err
			}
			subID, subStmts, err := rc.node(e.Sub)
			if err != nil {
				return "", nil, err
			}
			ps := fmt.Sprintf("ps_%s_%d", id, idx)
			stmts = append(stmts,
				fmt.Sprintf(`%s [shape=circle, label="%s"];`, ps, labels.text(KeyMult, DefaultMult)),
				fmt.Sprintf("%s -> %s [arrowhead=none];", id, ps),
				fmt.Sprintf("%s -> %s;", ps, primeID),
				fmt.Sprintf("%s -> %s;", ps, subID),
			)
			stmts = append(stmts, primeStmts...)
			stmts = append(stmts, subStmts...)
		}
		return id, stmts, nil
	}
	return "", nil, fmt.Errorf("node %d: %w", n.ID(), dag.ErrUnknownKind)
}

func (rc *renderContext) leafLabel(n dag.Node) string {
	labels := rc.opts.Labels
	switch n.Kind() {
	case dag.KindTrue:
		return labels.terminal(KeyTrue, DefaultTrue)
	case dag.KindFalse:
		return labels.terminal(KeyFalse, DefaultFalse)
	}
	return labels.literal(n.Literal())
}

// xlabel returns the id annotation, including its leading comma, or "".
func (rc *renderContext) xlabel(n dag.Node) string {
	if !rc.opts.ShowIDs {
		return ""
	}
	pos := "n"
	if v := n.Vtree(); v != nil {
		pos = strconv.Itoa(v.Position())
	}
	return fmt.Sprintf(`,xlabel="Id:%d\nVp:%s"`, n.ID(), pos)
}
