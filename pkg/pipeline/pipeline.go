// Package pipeline runs model counts and renders with caching.
//
// The CLI and the HTTP server share this package so that both entry points
// key, cache and log results the same way.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Count(ctx, pipeline.CountRequest{
//	    Path:    "model.sdd",
//	    Weights: weights.Table{1: 0.3, -1: 0.7},
//	})
//
//	src, err := pipeline.DOT(root, dot.DAGOptions{MergeLeaves: true})
//	svg, hit, err := runner.Render(ctx, src, pipeline.FormatSVG, 0)
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/sddkit/pkg/errors"
	"github.com/matzehuels/sddkit/pkg/weights"
	"github.com/matzehuels/sddkit/pkg/wmc"
)

// Output formats for rendered diagrams.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// DefaultScale is the PNG scale used when none is given.
const DefaultScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ValidateFormat checks that format is a supported output format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeUnsupported, "invalid output format %q (must be dot, svg, png or pdf)", format)
	}
	return nil
}

// ValidateFormats checks every entry of formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// CountRequest describes one weighted model count.
type CountRequest struct {
	// Path is the circuit file. It is read unless Data is set.
	Path string
	// Data holds the circuit text when it does not come from a file.
	Data []byte
	// Name identifies Data in error messages. Defaults to Path.
	Name string
	// Format selects the evaluator. Empty infers it from Path.
	Format wmc.Format
	// Weights are the literal weights; absent literals weigh 1.
	Weights weights.Table
	// Refresh skips the cache lookup but still stores the result.
	Refresh bool
}

// name returns the label used in error messages.
func (r CountRequest) name() string {
	if r.Name != "" {
		return r.Name
	}
	if r.Path != "" {
		return r.Path
	}
	return "<input>"
}

// format resolves the circuit format.
func (r CountRequest) format() (wmc.Format, error) {
	if r.Format != "" {
		return wmc.ParseFormat(string(r.Format))
	}
	if r.Path == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "circuit format is required when no path is given")
	}
	return wmc.FormatOf(r.Path)
}

// CountResult is the outcome of a count.
type CountResult struct {
	Value    float64
	Format   wmc.Format
	Cached   bool
	Duration time.Duration
}

// String formats the value the way the CLI prints it.
func (r *CountResult) String() string {
	return fmt.Sprintf("%g", r.Value)
}
