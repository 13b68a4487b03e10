package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relviz/pkg/model"
	"github.com/matzehuels/relviz/pkg/pipeline"
)

// maxImplicitListed caps the implicit vertex names check prints.
const maxImplicitListed = 10

type checkOpts struct {
	input   inputOpts
	strict  bool
	noCache bool
}

// checkCommand creates the check command, which validates facts without
// rendering them.
func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check [facts...]",
		Short: "Validate fact files and print graph statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("strict") {
				opts.strict = c.config.Strict
			}
			sources, err := c.inputs(cmd, opts.input, args, true)
			if err != nil {
				return err
			}
			return c.runCheck(cmd, sources, args, opts)
		},
	}

	opts.input.register(cmd)
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject relations that name undeclared objects")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runCheck(cmd *cobra.Command, sources []pipeline.Source, args []string, opts checkOpts) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, err := runner.Build(ctx, pipeline.Options{Sources: sources, Strict: opts.strict})
	if err != nil {
		return err
	}

	s := g.Stats()
	printSuccess("%d sources are valid", len(sources))
	printKeyValue("vertices", fmt.Sprint(s.Vertices))
	printKeyValue("clusters", fmt.Sprint(s.Clusters))
	printKeyValue("edges", fmt.Sprint(s.Edges-s.Hidden))
	printKeyValue("containment", fmt.Sprint(s.Hidden))

	if names := implicitNames(g); len(names) > 0 {
		printWarning("%d vertices were never declared", len(names))
		shown := names[:min(len(names), maxImplicitListed)]
		printDetail("%s", strings.Join(shown, ", "))
		if len(names) > len(shown) {
			printDetail("and %d more", len(names)-len(shown))
		}
	}

	printNextStep("Render it", strings.TrimSpace("relviz render "+strings.Join(args, " ")))
	return nil
}

func implicitNames(g *model.Graph) []string {
	var names []string
	for _, v := range g.Vertices() {
		if v.Implicit {
			names = append(names, v.Name)
		}
	}
	return names
}
