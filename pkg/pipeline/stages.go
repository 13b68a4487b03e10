package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/relviz/pkg/factparser"
	"github.com/matzehuels/relviz/pkg/model"
	"github.com/matzehuels/relviz/pkg/observability"
	"github.com/matzehuels/relviz/pkg/types"
)

// Parse parses every source, in order.
func Parse(sources []Source) ([]*factparser.File, error) {
	files := make([]*factparser.File, 0, len(sources))
	for _, s := range sources {
		f, err := factparser.Parse(s.Name, s.Data)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// Registry registers the type declarations of files and closes the
// registry.
func Registry(files []*factparser.File) (*types.Registry, error) {
	reg := types.NewRegistry()
	if err := register(reg, files); err != nil {
		return nil, err
	}
	if err := reg.Close(); err != nil {
		return nil, err
	}
	return reg, nil
}

func register(reg *types.Registry, files []*factparser.File) error {
	for _, f := range files {
		for _, tf := range f.Types {
			def, err := types.FromFact(tf)
			if err != nil {
				return err
			}
			if err := reg.Register(def); err != nil {
				return err
			}
		}
	}
	return nil
}

// Build resolves the facts of files against reg.
func Build(files []*factparser.File, reg *types.Registry, strict bool) (*model.Graph, error) {
	b := model.NewBuilder(types.NewResolver(reg), model.Options{Strict: strict})
	objects, relations, err := b.Classify(rawFacts(files))
	if err != nil {
		return nil, err
	}
	return b.Build(objects, relations)
}

func rawFacts(files []*factparser.File) []*factparser.RawFact {
	var raws []*factparser.RawFact
	for _, f := range files {
		raws = append(raws, f.Raw...)
	}
	return raws
}

// stage runs fn between the stage hooks. fn returns the number of items
// it produced.
func stage(ctx context.Context, s observability.Stage, fn func() (int, error)) error {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, s)
	start := time.Now()
	n, err := fn()
	hooks.OnStageComplete(ctx, s, n, time.Since(start), err)
	return err
}

// buildGraph runs parse through build, reporting each stage.
func buildGraph(ctx context.Context, sources []Source, strict bool) (*model.Graph, error) {
	var files []*factparser.File
	err := stage(ctx, observability.StageParse, func() (int, error) {
		var err error
		files, err = Parse(sources)
		n := 0
		for _, f := range files {
			n += len(f.Types) + len(f.Raw)
		}
		return n, err
	})
	if err != nil {
		return nil, err
	}

	reg := types.NewRegistry()
	err = stage(ctx, observability.StageRegister, func() (int, error) {
		err := register(reg, files)
		return len(reg.Defs()), err
	})
	if err != nil {
		return nil, err
	}
	err = stage(ctx, observability.StageClose, func() (int, error) {
		return len(reg.Defs()), reg.Close()
	})
	if err != nil {
		return nil, err
	}

	b := model.NewBuilder(types.NewResolver(reg), model.Options{Strict: strict})
	var objects []model.ObjectFact
	var relations []model.RelationFact
	err = stage(ctx, observability.StageClassify, func() (int, error) {
		var err error
		objects, relations, err = b.Classify(rawFacts(files))
		return len(objects) + len(relations), err
	})
	if err != nil {
		return nil, err
	}

	var g *model.Graph
	err = stage(ctx, observability.StageBuild, func() (int, error) {
		var err error
		g, err = b.Build(objects, relations)
		if err != nil {
			return 0, err
		}
		return len(g.Vertices()), nil
	})
	return g, err
}
