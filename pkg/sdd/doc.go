// Package sdd holds an in-memory representation of sentential decision
// diagrams and their vtrees, with readers and writers for the SDD, NNF and
// vtree file formats.
//
// [Node] and [Vtree] implement the read-only interfaces of
// [github.com/matzehuels/sddkit/pkg/dag], so diagrams loaded from disk can be
// rendered and counted like diagrams produced by any other engine.
//
// # Reading
//
//	vt, err := sdd.ImportVtree("circuit.vtree")
//	root, err := sdd.Import("circuit.sdd", vt)
//
// Passing a nil vtree to [Import] loads the diagram without vtree
// associations. Format errors carry the file name and line.
//
// # Writing
//
// [Write] and [WriteNNF] accept any [dag.Node], so an engine adapter such as
// [github.com/matzehuels/sddkit/pkg/bdd] can export its diagrams for
// [github.com/matzehuels/sddkit/pkg/wmc]. [WriteVtree] writes a vtree.
package sdd
