// Package pipeline runs sources through the whole relviz front end.
//
// # Stages
//
//  1. Parse: every source is lexed and parsed on its own
//  2. Register: type declarations from all sources, in source order
//  3. Close: the registry is frozen and checked
//  4. Classify: raw facts become object and relation facts
//  5. Build: the resolved multigraph
//  6. Render: DOT, SVG or JSON
//
// Sources are concatenated in the order given, which callers arrange as
// default style, user styles, then fact files. Any error aborts the run;
// there is no partial graph.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Sources: []pipeline.Source{
//	        {Name: style.SourceName, Data: style.Default()},
//	        {Name: "model.facts", Data: data},
//	    },
//	    Format: "svg",
//	})
//
// The pure stages are also available without a runner: [Parse],
// [Registry] and [Build].
package pipeline

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/relviz/pkg/config"
	"github.com/matzehuels/relviz/pkg/model"
)

// Source is one named input.
type Source struct {
	Name string // file name, "<stdin>" or "<default style>"
	Data []byte
}

// Options configures a run.
type Options struct {
	Sources []Source
	Strict  bool   // relations may only name declared objects
	Format  string // config.FormatDOT, FormatSVG or FormatJSON
	Refresh bool   // ignore cached results, still store new ones
}

// Validate checks the options.
func (o Options) Validate() error {
	if len(o.Sources) == 0 {
		return fmt.Errorf("no sources")
	}
	return ValidateFormat(o.Format)
}

// ValidateFormat checks that format is a supported output format.
func ValidateFormat(format string) error {
	if !slices.Contains(config.Formats, format) {
		return fmt.Errorf("invalid format: %q (must be one of: %s)", format, strings.Join(config.Formats, ", "))
	}
	return nil
}

// Result is the outcome of a run.
type Result struct {
	RunID     string
	Graph     *model.Graph
	GraphHash string // hash of the graph's JSON form
	Output    []byte // rendered in Options.Format
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timings and the graph summary.
type Stats struct {
	Graph      model.Stats
	BuildTime  time.Duration // parse through build
	RenderTime time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	GraphHit  bool
	RenderHit bool
}
