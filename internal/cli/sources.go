package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relviz/pkg/errors"
	"github.com/matzehuels/relviz/pkg/pipeline"
	"github.com/matzehuels/relviz/pkg/style"
)

// stdinName names facts read from standard input.
const stdinName = "<stdin>"

// inputOpts holds the flags shared by every command that reads facts.
type inputOpts struct {
	styles         []string // extra style files, after the configured ones
	noDefaultStyle bool     // skip the embedded UML profile
}

func (o *inputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&o.styles, "style", "s", nil, "style file to load before the facts (repeatable)")
	cmd.Flags().BoolVar(&o.noDefaultStyle, "no-default-style", false, "do not load the built-in UML style")
}

// styleSources returns the style sources in load order: the default
// style, the configured styles, then the --style files.
func (c *CLI) styleSources(opts inputOpts) ([]pipeline.Source, error) {
	var sources []pipeline.Source
	if c.config.DefaultStyle && !opts.noDefaultStyle {
		sources = append(sources, pipeline.Source{Name: style.SourceName, Data: style.Default()})
	}
	paths := append(append([]string{}, c.config.Styles...), opts.styles...)
	for _, p := range paths {
		src, err := readSource(p, nil)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// factSources reads the fact files named in args. "-" names standard
// input, as does an empty args when readStdin is set.
func factSources(args []string, stdin io.Reader, readStdin bool) ([]pipeline.Source, error) {
	if len(args) == 0 {
		if !readStdin {
			return nil, nil
		}
		args = []string{"-"}
	}
	sources := make([]pipeline.Source, 0, len(args))
	for _, a := range args {
		src, err := readSource(a, stdin)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// inputs assembles styles and facts for one run.
func (c *CLI) inputs(cmd *cobra.Command, opts inputOpts, args []string, readStdin bool) ([]pipeline.Source, error) {
	sources, err := c.styleSources(opts)
	if err != nil {
		return nil, err
	}
	facts, err := factSources(args, cmd.InOrStdin(), readStdin)
	if err != nil {
		return nil, err
	}
	return append(sources, facts...), nil
}

func readSource(path string, stdin io.Reader) (pipeline.Source, error) {
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return pipeline.Source{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", stdinName)
		}
		return pipeline.Source{Name: stdinName, Data: data}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Source{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	return pipeline.Source{Name: path, Data: data}, nil
}
