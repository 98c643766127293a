package sdd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/sddkit/pkg/dag"
)

const sddHeader = `c ids of sdd nodes start at 0
c sdd nodes appear bottom-up, children before parents
c
c file syntax:
c sdd count-of-sdd-nodes
c F id-of-false-sdd-node
c T id-of-true-sdd-node
c L id-of-literal-sdd-node id-of-vtree literal
c D id-of-decomposition-sdd-node id-of-vtree number-of-elements {id-of-prime id-of-sub}*
c
`

const vtreeHeader = `c ids of vtree nodes start at 0
c ids of variables start at 1
c vtree nodes appear bottom-up, children before parents
c
c file syntax:
c vtree number-of-nodes-in-vtree
c L id-of-leaf-vtree-node id-of-variable
c I id-of-internal-vtree-node id-of-left-child id-of-right-child
c
`

// postOrder lists the distinct nodes reachable from root, children before
// parents, in element order. root is always last.
func postOrder(root dag.Node) ([]dag.Node, error) {
	if root == nil {
		return nil, dag.ErrNilRoot
	}
	seen := make(map[int64]bool)
	var order []dag.Node
	var walk func(n dag.Node) error
	walk = func(n dag.Node) error {
		if seen[n.ID()] {
			return nil
		}
		seen[n.ID()] = true
		switch k := n.Kind(); {
		case k == dag.KindDecision:
			for _, e := range n.Elements() {
				if err := walk(e.Prime); err != nil {
					return err
				}
				if err := walk(e.Sub); err != nil {
					return err
				}
			}
		case !k.Valid():
			return fmt.Errorf("node %d: %w", n.ID(), dag.ErrUnknownKind)
		}
		order = append(order, n)
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return order, nil
}

func vtreePos(n dag.Node) int {
	if v := n.Vtree(); v != nil {
		return v.Position()
	}
	return 0
}

// Write encodes the diagram rooted at root in the SDD file format read by
// [Read] and wmc.ReadSDD.
//
// Nodes are renumbered: root gets id 0 and the others ids 1..n-1 in
// bottom-up order, so the output is valid regardless of the IDs root
// reports. Nodes without a vtree are written with vtree id 0.
func Write(w io.Writer, root dag.Node) error {
	order, err := postOrder(root)
	if err != nil {
		return err
	}
	ids := make(map[int64]int, len(order))
	for i, n := range order {
		ids[n.ID()] = i + 1
	}
	ids[root.ID()] = RootID

	bw := bufio.NewWriter(w)
	bw.WriteString(sddHeader)
	fmt.Fprintf(bw, "sdd %d\n", len(order))
	for _, n := range order {
		id := ids[n.ID()]
		switch n.Kind() {
		case dag.KindFalse:
			fmt.Fprintf(bw, "F %d\n", id)
		case dag.KindTrue:
			fmt.Fprintf(bw, "T %d\n", id)
		case dag.KindLiteral:
			fmt.Fprintf(bw, "L %d %d %d\n", id, vtreePos(n), n.Literal())
		case dag.KindDecision:
			elems := n.Elements()
			fmt.Fprintf(bw, "D %d %d %d", id, vtreePos(n), len(elems))
			for _, e := range elems {
				fmt.Fprintf(bw, " %d %d", ids[e.Prime.ID()], ids[e.Sub.ID()])
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// WriteNNF encodes the diagram rooted at root as an NNF circuit in the format
// read by wmc.ReadNNF.
//
// A decision node becomes an OR over one binary AND per element, true
// becomes an empty AND and false an empty OR. The root is the last line.
// The result has the same weighted model count as the SDD.
func WriteNNF(w io.Writer, root dag.Node) error {
	order, err := postOrder(root)
	if err != nil {
		return err
	}

	slots := make(map[int64]int, len(order))
	var lines []string
	edges, vars := 0, 0
	emit := func(line string) int {
		lines = append(lines, line)
		return len(lines) - 1
	}

	for _, n := range order {
		switch n.Kind() {
		case dag.KindFalse:
			slots[n.ID()] = emit("O 0 0")
		case dag.KindTrue:
			slots[n.ID()] = emit("A 0")
		case dag.KindLiteral:
			lit := n.Literal()
			if v := abs(lit); v > vars {
				vars = v
			}
			slots[n.ID()] = emit("L " + strconv.Itoa(lit))
		case dag.KindDecision:
			elems := n.Elements()
			ands := make([]string, len(elems))
			for i, e := range elems {
				ands[i] = strconv.Itoa(emit(fmt.Sprintf("A 2 %d %d", slots[e.Prime.ID()], slots[e.Sub.ID()])))
				edges += 2
			}
			edges += len(elems)
			or := fmt.Sprintf("O 0 %d", len(elems))
			if len(ands) > 0 {
				or += " " + strings.Join(ands, " ")
			}
			slots[n.ID()] = emit(or)
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "nnf %d %d %d\n", len(lines), edges, vars)
	for _, line := range lines {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteVtree encodes vt in the vtree file format read by [ReadVtree].
// Node ids are the vtree positions.
func WriteVtree(w io.Writer, vt dag.Vtree) error {
	if vt == nil {
		return dag.ErrNilRoot
	}
	var lines []string
	var walk func(v dag.Vtree)
	walk = func(v dag.Vtree) {
		if dag.IsLeafTree(v) {
			lines = append(lines, fmt.Sprintf("L %d %d", v.Position(), v.Var()))
			return
		}
		walk(v.Left())
		walk(v.Right())
		lines = append(lines, fmt.Sprintf("I %d %d %d", v.Position(), v.Left().Position(), v.Right().Position()))
	}
	walk(vt)

	bw := bufio.NewWriter(w)
	bw.WriteString(vtreeHeader)
	fmt.Fprintf(bw, "vtree %d\n", len(lines))
	for _, line := range lines {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Export writes the diagram rooted at root to an SDD file at path.
func Export(path string, root dag.Node) error {
	return exportFile(path, func(w io.Writer) error { return Write(w, root) })
}

// ExportNNF writes the diagram rooted at root to an NNF file at path.
func ExportNNF(path string, root dag.Node) error {
	return exportFile(path, func(w io.Writer) error { return WriteNNF(w, root) })
}

// ExportVtree writes vt to a vtree file at path.
func ExportVtree(path string, vt dag.Vtree) error {
	return exportFile(path, func(w io.Writer) error { return WriteVtree(w, vt) })
}

func exportFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
