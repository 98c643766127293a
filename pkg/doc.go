// Package pkg provides the libraries behind sddkit: weighted model counting
// over NNF circuits and Sentential Decision Diagrams, and Graphviz rendering
// of SDDs and vtrees.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. Diagram model: [dag], [sdd], [bdd]
//  2. Counting: [wmc], [weights]
//  3. Rendering: [render/dot], [render]
//  4. Serving: [pipeline], [cache], [server], [observability]
//
// # Architecture
//
// Counting streams the circuit file once and never builds a graph:
//
//	model.sdd / model.nnf
//	         ↓
//	    [wmc] evaluator (slot per node, literal weights from [weights])
//	         ↓
//	    float64
//
// Rendering loads the diagram into memory first:
//
//	model.sdd (+ model.vtree)
//	         ↓
//	    [sdd] loader (implements [dag.Node] and [dag.Vtree])
//	         ↓
//	    [render/dot] (DOT source)
//	         ↓
//	    [render/dot.RenderSVG], [render] (SVG/PDF/PNG)
//
// # Quick Start
//
//	w := weights.Table{1: 0.3, -1: 0.7}
//	v, err := wmc.Evaluate("model.sdd", w)
//
//	vt, _ := sdd.ImportVtree("model.vtree")
//	root, _ := sdd.Import("model.sdd", vt)
//	src, _ := dot.RenderDAG(root, dot.DAGOptions{ShowIDs: true})
//
// # Main Packages
//
// [dag] - Read-only traversal interfaces for decision diagram nodes and vtrees.
//
// [sdd] - In-memory SDDs and vtrees loaded from libsdd text files, and writers
// for .sdd, .nnf and .vtree files.
//
// [bdd] - Adapter that exposes a BDD built with github.com/dalzilio/rudd as an
// SDD over a right-linear vtree.
//
// [wmc] - Streaming weighted model counters for .nnf and .sdd files.
//
// [weights] - Literal weight tables loaded from TOML, YAML, JSON or flags.
//
// [render/dot] - DOT source for SDD DAGs and vtrees, and Graphviz layout to SVG.
//
// [render] - SVG to PDF/PNG conversion.
//
// [pipeline] - Cached counting and rendering shared by the CLI and the server.
//
// [cache] - File, Redis and no-op result caches.
//
// [server] - HTTP API for counting and rendering.
//
// [observability] - Hooks for metrics and logging.
//
// [errors] - Error codes and validation helpers.
//
// [buildinfo] - Version information set at build time.
package pkg
