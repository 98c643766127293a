package pipeline

import (
	"bytes"
	"context"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sddkit/pkg/cache"
	"github.com/matzehuels/sddkit/pkg/dag"
	"github.com/matzehuels/sddkit/pkg/observability"
	"github.com/matzehuels/sddkit/pkg/render/dot"
	"github.com/matzehuels/sddkit/pkg/wmc"
)

// Runner executes counts and renders with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Count computes the weighted model count described by req.
//
// Results are cached by file content, format and weight table. File errors
// are returned unmodified; parse errors carry the file name and line.
func (r *Runner) Count(ctx context.Context, req CountRequest) (*CountResult, error) {
	start := time.Now()
	name := req.name()

	format, err := req.format()
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnCountStart(ctx, string(format), name)

	res, err := r.count(ctx, req, name, format)
	duration := time.Since(start)
	hooks.OnCountComplete(ctx, string(format), name, duration, err)
	if err != nil {
		return nil, err
	}
	res.Duration = duration

	r.Logger.Info("counted",
		"file", name,
		"format", format,
		"value", res.Value,
		"cached", res.Cached,
		"duration", duration)
	return res, nil
}

func (r *Runner) count(ctx context.Context, req CountRequest, name string, format wmc.Format) (*CountResult, error) {
	data := req.Data
	if data == nil {
		var err error
		if data, err = os.ReadFile(req.Path); err != nil {
			return nil, err
		}
	}

	key := r.Keyer.CountKey(cache.Hash(data), string(format), req.Weights.Hash())
	if !req.Refresh {
		if v, ok := r.cachedCount(ctx, key); ok {
			return &CountResult{Value: v, Format: format, Cached: true}, nil
		}
	}

	v, err := wmc.EvaluateReader(bytes.NewReader(data), name, format, req.Weights)
	if err != nil {
		return nil, err
	}

	encoded := []byte(strconv.FormatFloat(v, 'g', -1, 64))
	if err := r.Cache.Set(ctx, key, encoded, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "count", len(encoded))
	}
	return &CountResult{Value: v, Format: format}, nil
}

// cachedCount returns a cached count. Unreadable entries count as misses.
func (r *Runner) cachedCount(ctx context.Context, key string) (float64, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return 0, false
	}
	if hit {
		if v, err := strconv.ParseFloat(string(data), 64); err == nil {
			observability.Cache().OnCacheHit(ctx, "count")
			return v, true
		}
	}
	observability.Cache().OnCacheMiss(ctx, "count")
	return 0, false
}

// DOT renders the diagram rooted at root as DOT source.
func DOT(root dag.Node, opts dot.DAGOptions) (string, error) {
	return observeDOT("dag", func() (string, error) { return dot.RenderDAG(root, opts) })
}

// TreeDOT renders the vtree rooted at root as DOT source.
func TreeDOT(root dag.Vtree, opts dot.TreeOptions) (string, error) {
	return observeDOT("vtree", func() (string, error) { return dot.RenderTree(root, opts) })
}

func observeDOT(kind string, render func() (string, error)) (string, error) {
	ctx := context.Background()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, kind)
	start := time.Now()
	src, err := render()
	hooks.OnRenderComplete(ctx, kind, len(src), time.Since(start), err)
	return src, err
}

// Render converts DOT source to format. DOT output is returned as is;
// images are laid out by Graphviz and cached by source and format.
// scale only applies to PNG; values <= 0 use DefaultScale.
func (r *Runner) Render(ctx context.Context, src, format string, scale float64) ([]byte, bool, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, false, err
	}
	if format == FormatDOT {
		return []byte(src), false, nil
	}
	if scale <= 0 {
		scale = DefaultScale
	}

	keyFormat := format
	if format == FormatPNG {
		keyFormat = format + "@" + strconv.FormatFloat(scale, 'g', -1, 64)
	}
	key := r.Keyer.ArtifactKey(cache.Hash([]byte(src)), keyFormat)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, true, nil
	} else if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()
	data, err := renderImage(ctx, src, format, scale)
	duration := time.Since(start)
	hooks.OnRenderComplete(ctx, format, len(data), duration, err)
	if err != nil {
		return nil, false, err
	}

	r.Logger.Debug("rendered", "format", format, "bytes", len(data), "duration", duration)

	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

func renderImage(ctx context.Context, src, format string, scale float64) ([]byte, error) {
	switch format {
	case FormatPDF:
		return dot.RenderPDF(ctx, src)
	case FormatPNG:
		return dot.RenderPNG(ctx, src, scale)
	default:
		return dot.RenderSVG(ctx, src)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
