package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sddkit/pkg/pipeline"
	"github.com/matzehuels/sddkit/pkg/weights"
	"github.com/matzehuels/sddkit/pkg/wmc"
)

// countOpts holds the flags of the count command.
type countOpts struct {
	format      string   // nnf or sdd; empty infers from the extension
	weightsFile string   // TOML, YAML or JSON weight table
	pairs       []string // inline lit=weight pairs, applied after weightsFile
	noCache     bool
	refresh     bool
	quiet       bool // print only the value
}

func (c *CLI) countCommand() *cobra.Command {
	var opts countOpts

	cmd := &cobra.Command{
		Use:   "count FILE",
		Short: "Compute the weighted model count of an .nnf or .sdd file",
		Long: `Compute the weighted model count of a circuit.

Literals without a weight count as 1. Positive and negative literals are
weighted independently, so an unweighted count over smooth circuits is the
model count.`,
		Example: `  sddkit count model.sdd
  sddkit count model.nnf -w 1=0.3 -w -1=0.7
  sddkit count model.sdd --weights weights.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCount(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "circuit format: nnf or sdd (default: from extension)")
	cmd.Flags().StringVar(&opts.weightsFile, "weights", "", "weight table file (.toml, .yaml or .json)")
	cmd.Flags().StringArrayVarP(&opts.pairs, "weight", "w", nil, "literal weight as lit=weight (repeatable)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the value")

	return cmd
}

func (c *CLI) runCount(cmd *cobra.Command, path string, opts countOpts) error {
	ctx := cmd.Context()

	table, err := loadWeights(opts.weightsFile, opts.pairs)
	if err != nil {
		return err
	}

	var format wmc.Format
	if opts.format != "" {
		if format, err = wmc.ParseFormat(opts.format); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Count(ctx, pipeline.CountRequest{
		Path:    path,
		Format:  format,
		Weights: table,
		Refresh: opts.refresh,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.String())
	if !opts.quiet {
		printCountStatus(cmd.ErrOrStderr(), string(res.Format), res.Cached, res.Duration.Round(time.Microsecond).String())
	}
	return nil
}

// loadWeights reads the weight file, if any, and applies inline pairs on top.
func loadWeights(file string, pairs []string) (weights.Table, error) {
	var tables []weights.Table
	if file != "" {
		t, err := weights.Load(file)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if len(pairs) > 0 {
		t, err := weights.ParsePairs(pairs)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return weights.Merge(tables...), nil
}
