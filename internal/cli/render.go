package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relviz/pkg/config"
	"github.com/matzehuels/relviz/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input   inputOpts
	output  string // output file; stdout when empty
	format  string // dot, svg or json
	strict  bool   // relations may only name declared objects
	noCache bool   // bypass the cache entirely
	refresh bool   // rebuild even when cached
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [facts...]",
		Short: "Render fact files as DOT, SVG or JSON",
		Long: `Render resolves the facts against the loaded styles and writes the graph.

Facts are read from the named files in order, or from stdin when none is
given ("-" also names stdin). The built-in UML style is loaded first, then
the configured styles, then every --style file.`,
		Example: `  relviz render model.facts
  relviz render -f svg -o model.svg model.facts
  cat model.facts | relviz render -s team.style --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				opts.format = c.config.Format
			}
			if !cmd.Flags().Changed("strict") {
				opts.strict = c.config.Strict
			}
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			sources, err := c.inputs(cmd, opts.input, args, true)
			if err != nil {
				return err
			}
			return c.runRender(cmd, sources, opts)
		},
	}

	opts.input.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", config.FormatDOT, "output format: dot, svg, json")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject relations that name undeclared objects")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even when a cached result exists")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, sources []pipeline.Source, opts renderOpts) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Sources: sources,
		Strict:  opts.strict,
		Format:  opts.format,
		Refresh: opts.refresh,
	}

	// Status lines would corrupt an artifact written to stdout.
	if opts.output == "" {
		result, err := runner.Execute(ctx, popts)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(result.Output)
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.format))
	spinner.Start()
	result, err := runner.Execute(ctx, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.output, result.Output, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Rendered %s", opts.format)
	printFile(opts.output)
	printStats(result.Stats.Graph, result.CacheInfo.GraphHit)
	return nil
}
