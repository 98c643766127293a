// Package wmc computes weighted model counts directly from serialized
// circuits.
//
// # Overview
//
// Weighted model counting (WMC) sums, over the satisfying assignments of a
// Boolean function, the product of the weights of the literals made true.
// On a decomposable, deterministic circuit the count is computed in one
// bottom-up pass: AND nodes multiply, OR and decision nodes add. This package
// performs that pass over NNF and SDD files without building the diagram in
// memory and without any compiled engine.
//
// # Usage
//
//	w := weights.Table{1: 0.3, -1: 0.7}
//	count, err := wmc.EvaluateSDD("circuit.sdd", w)
//	count, err = wmc.EvaluateNNF("circuit.nnf", w)
//	count, err = wmc.Evaluate("circuit.nnf", w) // format from extension
//
// # Weights
//
// Literals without a weight use [weights.DefaultWeight]. Passing a nil
// [weights.Lookup] is a precondition violation, reported with code
// MISSING_WEIGHTS as soon as a literal weight is needed.
//
// # Smoothing
//
// Counts are not smoothed. If a variable does not occur below some branch of
// an OR or decision node, its weights are not accounted for on that branch.
// With all weights 1.0 the result is the model count only for smooth circuits.
//
// # Errors
//
// Malformed input is reported with code INVALID_FORMAT together with the
// file and line: a missing header, an unknown line type, a token count that
// disagrees with the declared arity, or a reference to a node that has not
// been defined yet. Errors from opening or reading the file are returned
// unmodified. No partial result is ever returned.
package wmc
