package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/relviz/pkg/cache"
	"github.com/matzehuels/relviz/pkg/config"
	"github.com/matzehuels/relviz/pkg/io"
	"github.com/matzehuels/relviz/pkg/model"
	"github.com/matzehuels/relviz/pkg/observability"
)

// Runner executes the pipeline with caching.
//
// The resolved graph is cached under a key derived from the source bytes
// and the strict flag, and the rendered output under a key derived from
// the graph and the format. A Runner holds no per-run state, so one
// Runner can serve several runs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration // zero means entries never expire
}

// NewRunner creates a runner. A nil keyer means cache.DefaultKeyer, a nil
// cache disables caching and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache("no cache given")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute builds the graph and renders it in opts.Format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{RunID: newRunID()}
	logger := r.Logger.With("run", result.RunID)

	buildStart := time.Now()
	g, hit, err := r.build(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.Graph = g.Stats()
	result.Stats.BuildTime = time.Since(buildStart)
	result.CacheInfo.GraphHit = hit

	logger.Info("built graph",
		"vertices", result.Stats.Graph.Vertices,
		"edges", result.Stats.Graph.Edges,
		"cached", hit,
		"duration", result.Stats.BuildTime)

	renderStart := time.Now()
	out, hash, hit, err := r.render(ctx, g, opts.Format, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Output = out
	result.GraphHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	logger.Info("rendered",
		"format", opts.Format,
		"bytes", len(out),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build runs parse through build, consulting the cache first.
func (r *Runner) Build(ctx context.Context, opts Options) (*model.Graph, error) {
	if len(opts.Sources) == 0 {
		return nil, fmt.Errorf("invalid options: no sources")
	}
	g, _, err := r.build(ctx, opts)
	return g, err
}

func (r *Runner) build(ctx context.Context, opts Options) (*model.Graph, bool, error) {
	key := r.Keyer.GraphKey(sourcesHash(opts.Sources), cache.GraphKeyOpts{Strict: opts.Strict})

	if !opts.Refresh {
		if data, ok := r.lookup(ctx, "graph", key); ok {
			if g, err := io.ReadJSON(bytes.NewReader(data)); err == nil {
				return g, true, nil
			}
			r.Logger.Warn("discarding unreadable cached graph", "key", key)
		}
	}

	g, err := buildGraph(ctx, opts.Sources, opts.Strict)
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := io.WriteJSON(g, &buf); err == nil {
		r.store(ctx, "graph", key, buf.Bytes())
	}
	return g, false, nil
}

func (r *Runner) render(ctx context.Context, g *model.Graph, format string, refresh bool) ([]byte, string, bool, error) {
	var buf bytes.Buffer
	if err := io.WriteJSON(g, &buf); err != nil {
		return nil, "", false, err
	}
	graphHash := cache.Hash(buf.Bytes())
	if format == config.FormatJSON {
		return buf.Bytes(), graphHash, false, nil
	}

	key := r.Keyer.ArtifactKey(graphHash, cache.ArtifactKeyOpts{Format: format})
	if !refresh {
		if data, ok := r.lookup(ctx, "artifact", key); ok {
			return data, graphHash, true, nil
		}
	}

	var out []byte
	err := stage(ctx, observability.StageRender, func() (int, error) {
		var err error
		out, err = Render(ctx, g, format)
		return len(out), err
	})
	if err != nil {
		return nil, "", false, err
	}
	r.store(ctx, "artifact", key, out)
	return out, graphHash, false, nil
}

// lookup reads key from the cache. Cache failures are logged and
// treated as misses.
func (r *Runner) lookup(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", keyType, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "key", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func sourcesHash(sources []Source) string {
	inputs := make([][]byte, 0, 2*len(sources))
	for _, s := range sources {
		inputs = append(inputs, []byte(s.Name), s.Data)
	}
	return cache.HashAll(inputs...)
}

// newRunID returns a short ID that tags one run's log lines.
func newRunID() string {
	return uuid.NewString()[:8]
}
