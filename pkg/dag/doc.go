// Package dag defines the read-only traversal interface for decision diagrams.
//
// # Overview
//
// Sentential Decision Diagrams (SDDs) are DAGs of four node variants: the
// constants true and false, literal leaves, and decision nodes. A decision
// node holds an ordered sequence of (prime, sub) elements and denotes the
// disjunction of the conjunctions prime ∧ sub. Every decision and literal
// node may be associated with a node of a vtree, the binary tree that fixes
// the variable structure of the diagram.
//
// This package owns no diagram: engines (an in-memory loader such as
// [github.com/matzehuels/sddkit/pkg/sdd] or an adapter around a BDD library
// such as [github.com/matzehuels/sddkit/pkg/bdd]) implement [Node] and [Vtree],
// and consumers such as the DOT renderer only read through them.
//
// # Node Kinds
//
// [Kind] is a closed enumeration:
//
//   - [KindFalse], [KindTrue]: terminals
//   - [KindLiteral]: a leaf; [Node.Literal] is positive or negative
//   - [KindDecision]: [Node.Elements] lists the (prime, sub) pairs
//
// Consumers switch over all four variants and treat any other value as
// [ErrUnknownKind].
//
// # Identity
//
// [Node.ID] is the identity used to memoize traversals over shared
// subgraphs. Two calls returning nodes with the same ID must describe the
// same node. [Vtree.Position] plays the same role for vtrees.
//
// # Helpers
//
//   - [Stats]: count distinct nodes and elements reachable from a root
//   - [Variables]: list the variables that occur in a diagram
package dag
