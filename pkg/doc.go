// Package pkg provides the libraries behind relviz, a tool that turns
// plain-text facts about typed objects and relations into diagrams.
//
// # Overview
//
// A relviz input is a sequence of facts. Style files declare types with
// attributes and label templates; fact files declare objects and the
// relations between them:
//
//	node-type service, services is-a component
//	  color: blue
//
//	service api, worker
//	api (1) uses (*) worker
//
// The packages are organized along the data flow:
//
//	fact text
//	    ↓
//	[factparser] (lexing, parsing into type facts and raw facts)
//	    ↓
//	[types] (registry, hierarchy checks, attribute resolution)
//	    ↓
//	[model] (classification, vertices, edges, clusters)
//	    ↓
//	[render] / [io] (DOT, SVG, JSON)
//
// [pipeline] runs the whole flow with caching through [cache] and reports
// each stage to [observability].
//
// # Quick Start
//
//	files, _ := pipeline.Parse([]pipeline.Source{
//	    {Name: style.SourceName, Data: style.Default()},
//	    {Name: "model.facts", Data: data},
//	})
//	reg, _ := pipeline.Registry(files)
//	g, _ := pipeline.Build(files, reg, false)
//	fmt.Print(render.ToDOT(g, render.Options{}))
//
// # Main Packages
//
// ## Front End
//
// [attr] - Ordered attribute blocks with last-wins semantics.
//
// [factparser] - Line-oriented lexer and parser for the fact language.
// Produces type declarations and uninterpreted raw facts with positions.
//
// ## Resolution
//
// [types] - Type registry with synonyms, multiple inheritance and cycle
// detection. The resolver merges attributes along each type's
// linearisation.
//
// [dag] - The small directed graph used for hierarchy and containment
// checks, with [dag/transform] for transitive reduction.
//
// [model] - Turns raw facts into object and relation facts and builds the
// resolved multigraph with cluster nesting.
//
// ## Output
//
// [render] - DOT text and SVG through Graphviz.
//
// [io] - JSON export and import of resolved graphs.
//
// [style] - The built-in UML style.
//
// ## Infrastructure
//
// [pipeline] - Parse, register, build and render with caching.
//
// [cache] - File, Redis and null caches with content-derived keys.
//
// [config] - The optional TOML configuration file.
//
// [errors] - Coded errors carrying source positions.
//
// [observability] - Stage and cache hooks.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/types/...     # Specific package
//	go test -run Example ./...  # Examples only
//
// [attr]: https://pkg.go.dev/github.com/matzehuels/relviz/pkg/attr
// [factparser]: https://pkg.go.dev/github.com/matzehuels/relviz/pkg/factparser
// [types]: https://pkg.go.dev/github.com/matzehuels/relviz/pkg/types
// [dag]: https://pkg.go.dev/github.com/matzehuels/relviz/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/relviz/pkg/dag/transform
// [model]: https://pkg.go.dev/github.com/matzehuels/relviz/pkg/model
// [render]: https://pkg.go.dev/github.com/matzehuels/relviz/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/relviz/pkg/io
// [style]: https://pkg.go.dev/github.com/matzehuels/relviz/pkg/style
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/relviz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/relviz/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/relviz/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/relviz/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/relviz/pkg/observability
package pkg
