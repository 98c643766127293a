package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sddkit/pkg/dag"
	"github.com/matzehuels/sddkit/pkg/pipeline"
	"github.com/matzehuels/sddkit/pkg/render/dot"
	"github.com/matzehuels/sddkit/pkg/sdd"
)

// renderOpts holds the flags shared by the render and vtree commands.
type renderOpts struct {
	output  string            // output file; empty writes DOT to stdout or derives a name
	format  string            // dot, svg, pdf or png
	scale   float64           // PNG scale
	showIDs bool              // annotate nodes with ids and vtree positions
	merge   bool              // draw each terminal and literal once
	vtree   string            // vtree file for the render command
	labels  map[string]string // label overrides on top of the config file
	noCache bool
}

func (o *renderOpts) addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout for dot, input name with new extension otherwise)")
	cmd.Flags().StringVarP(&o.format, "format", "f", pipeline.FormatDOT, "output format: dot, svg, pdf, png")
	cmd.Flags().Float64Var(&o.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&o.showIDs, "show-ids", false, "show node ids and vtree positions")
	cmd.Flags().StringToStringVarP(&o.labels, "label", "l", nil, "display label as key=text, e.g. 1=rain or true=T (repeatable)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the artifact cache")
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render FILE.sdd",
		Short: "Draw an SDD as DOT, SVG, PDF or PNG",
		Example: `  sddkit render xor.sdd --vtree xor.vtree --show-ids -f svg
  sddkit render xor.sdd --merge-leaves | dot -Tpng > xor.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	opts.addOutputFlags(cmd)
	cmd.Flags().StringVar(&opts.vtree, "vtree", "", "vtree file; attaches vtree positions to nodes")
	cmd.Flags().BoolVar(&opts.merge, "merge-leaves", false, "draw each terminal and literal once")

	return cmd
}

func (c *CLI) vtreeCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "vtree FILE.vtree",
		Short: "Draw a vtree as DOT, SVG, PDF or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runVtree(cmd, args[0], &opts)
		},
	}

	opts.addOutputFlags(cmd)
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts *renderOpts) error {
	var vt *sdd.Vtree
	if opts.vtree != "" {
		var err error
		if vt, err = sdd.ImportVtree(opts.vtree); err != nil {
			return err
		}
	}
	root, err := sdd.Import(path, vt)
	if err != nil {
		return err
	}
	nodes, elements, err := dag.Stats(root)
	if err != nil {
		return err
	}
	commandLogger(cmd).Debug("loaded sdd",
		"file", path,
		"nodes", nodes,
		"elements", elements,
		"vars", len(dag.Variables(root)))

	src, err := pipeline.DOT(root, dot.DAGOptions{
		Labels:      c.config.labels(opts.labels),
		ShowIDs:     opts.showIDs,
		MergeLeaves: opts.merge,
	})
	if err != nil {
		return err
	}
	return c.writeArtifact(cmd, path, src, opts)
}

func (c *CLI) runVtree(cmd *cobra.Command, path string, opts *renderOpts) error {
	vt, err := sdd.ImportVtree(path)
	if err != nil {
		return err
	}
	src, err := pipeline.TreeDOT(vt, dot.TreeOptions{
		Labels:  c.config.labels(opts.labels),
		ShowIDs: opts.showIDs,
	})
	if err != nil {
		return err
	}
	return c.writeArtifact(cmd, path, src, opts)
}

// writeArtifact converts src to the requested format and writes it.
func (c *CLI) writeArtifact(cmd *cobra.Command, input, src string, opts *renderOpts) error {
	ctx := cmd.Context()
	if opts.format == pipeline.FormatDOT && opts.output == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), src)
		return err
	}

	data, err := c.render(ctx, cmd, src, opts)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = outputPath(input, opts.format)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	printSuccess(cmd.ErrOrStderr(), "Rendered %s", filepath.Base(input))
	printFile(cmd.ErrOrStderr(), out)
	return nil
}

func (c *CLI) render(ctx context.Context, cmd *cobra.Command, src string, opts *renderOpts) ([]byte, error) {
	if opts.format == pipeline.FormatDOT {
		return []byte(src + "\n"), nil
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	prog := newProgress(commandLogger(cmd))
	spin := newSpinnerWithContext(ctx, cmd.ErrOrStderr(), "Rendering "+opts.format+"...")
	spin.Start()
	data, cached, err := runner.Render(ctx, src, opts.format, opts.scale)
	spin.Stop()
	if err != nil {
		return nil, err
	}
	prog.done("rendered", "format", opts.format, "bytes", len(data), "cached", cached)
	return data, nil
}

// outputPath replaces the extension of input with format.
func outputPath(input, format string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}
