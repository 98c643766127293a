package dot

import (
	"fmt"
	"strings"

	"github.com/matzehuels/sddkit/pkg/dag"
)

// RenderTree returns the DOT source of the vtree rooted at root.
//
// Leaves are boxes labeled with their variable, internal nodes are points,
// and every node is identified by its position. Edges carry no arrowheads.
func RenderTree(root dag.Vtree, opts TreeOptions) (string, error) {
	if root == nil {
		return "", dag.ErrNilRoot
	}
	lines := []string{"digraph vtree {"}
	lines = appendTree(lines, root, opts)
	lines = append(lines, "}")
	return strings.Join(lines, "\n"), nil
}

func appendTree(lines []string, v dag.Vtree, opts TreeOptions) []string {
	pos := v.Position()
	extra := ""
	if opts.ShowIDs {
		extra = fmt.Sprintf(`,xlabel="%d"`, pos)
	}

	left, right := v.Left(), v.Right()
	if left == nil && right == nil {
		lines = append(lines, fmt.Sprintf(`%d [label="%s",shape="box"%s];`, pos, opts.Labels.literal(v.Var()), extra))
	} else {
		lines = append(lines, fmt.Sprintf(`%d [shape="point"%s];`, pos, extra))
	}
	if left != nil {
		lines = append(lines, fmt.Sprintf("%d -> %d [arrowhead=none];", pos, left.Position()))
		lines = appendTree(lines, left, opts)
	}
	if right != nil {
		lines = append(lines, fmt.Sprintf("%d -> %d [arrowhead=none];", pos, right.Position()))
		lines = appendTree(lines, right, opts)
	}
	return lines
}
