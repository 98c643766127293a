// Package dot renders decision diagrams and vtrees as Graphviz DOT source.
//
// # Usage
//
//	src, err := dot.RenderDAG(root, dot.DAGOptions{MergeLeaves: true})
//	tree, err := dot.RenderTree(vt, dot.TreeOptions{ShowIDs: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// Any [dag.Node] can be rendered: diagrams loaded by pkg/sdd and BDDs
// adapted by pkg/bdd alike.
//
// # Labels
//
// [Labels] renames literals (key [LiteralKey](lit), e.g. "-3"), vtree
// variables and the reserved keys [KeyTrue], [KeyFalse], [KeyMult] and
// [KeyAdd]. Missing entries fall back to ⟙, ⟘, ×, + and the literal number.
//
// # Determinism
//
// Every call owns its visited set and leaf counter, so renders are
// independent: the same root and options always produce the same bytes, and
// concurrent renders do not interfere.
//
// [dag.Node]: github.com/matzehuels/sddkit/pkg/dag.Node
package dot
