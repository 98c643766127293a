package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sddkit/pkg/cache"
	"github.com/matzehuels/sddkit/pkg/errors"
	"github.com/matzehuels/sddkit/pkg/observability"
	"github.com/matzehuels/sddkit/pkg/render/dot"
	"github.com/matzehuels/sddkit/pkg/sdd"
	"github.com/matzehuels/sddkit/pkg/weights"
	"github.com/matzehuels/sddkit/pkg/wmc"
)

const (
	literalSDD = "sdd 1\nL 0 0 1\n"
	choiceNNF  = "nnf 3 2 1\nL 1\nL -1\nO 1 2 0 1\n"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// countingCache records writes on top of a real cache.
type countingCache struct {
	cache.Cache
	mu   sync.Mutex
	sets int
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.Cache.Set(ctx, key, data, ttl)
}

func newFileRunner(t *testing.T) (*Runner, *countingCache) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cc := &countingCache{Cache: fc}
	return NewRunner(cc, nil, quietLogger()), cc
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "gif"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("NewRunner left nil fields: %+v", r)
	}
	if r.TTL != cache.DefaultTTL {
		t.Errorf("TTL = %v, want %v", r.TTL, cache.DefaultTTL)
	}
}

func TestCountCaches(t *testing.T) {
	ctx := context.Background()
	r, cc := newFileRunner(t)
	path := writeFile(t, "lit.sdd", literalSDD)
	req := CountRequest{Path: path, Weights: weights.Table{1: 0.3}}

	first, err := r.Count(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached || first.Value != 0.3 || first.Format != wmc.FormatSDD {
		t.Fatalf("first count = %+v, want uncached 0.3 sdd", first)
	}

	second, err := r.Count(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || second.Value != 0.3 {
		t.Errorf("second count = %+v, want cached 0.3", second)
	}
	if cc.sets != 1 {
		t.Errorf("cache writes = %d, want 1", cc.sets)
	}

	req.Refresh = true
	third, err := r.Count(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Error("refresh should bypass the cache")
	}
	if cc.sets != 2 {
		t.Errorf("cache writes after refresh = %d, want 2", cc.sets)
	}
}

func TestCountKeyIncludesWeights(t *testing.T) {
	ctx := context.Background()
	r, _ := newFileRunner(t)
	path := writeFile(t, "lit.sdd", literalSDD)

	if _, err := r.Count(ctx, CountRequest{Path: path, Weights: weights.Table{1: 0.3}}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Count(ctx, CountRequest{Path: path, Weights: weights.Table{1: 0.9}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached || res.Value != 0.9 {
		t.Errorf("count with new weights = %+v, want uncached 0.9", res)
	}
}

func TestCountData(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Count(context.Background(), CountRequest{
		Data:    []byte(choiceNNF),
		Name:    "body",
		Format:  wmc.FormatNNF,
		Weights: weights.Table{1: 0.3, -1: 0.7},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Value < 0.999999 || res.Value > 1.000001 {
		t.Errorf("Value = %v, want 1", res.Value)
	}
	if res.String() != "1" {
		t.Errorf("String() = %q, want %q", res.String(), "1")
	}
}

func TestCountErrors(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	_, err := r.Count(ctx, CountRequest{Data: []byte(choiceNNF)})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing format: err = %v, want INVALID_INPUT", err)
	}

	_, err = r.Count(ctx, CountRequest{Path: filepath.Join(t.TempDir(), "missing.sdd")})
	if !os.IsNotExist(err) {
		t.Errorf("missing file: err = %v, want not-exist", err)
	}

	_, err = r.Count(ctx, CountRequest{Data: []byte("sdd 1\nX 0\n"), Name: "bad.sdd", Format: wmc.FormatSDD})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad body: err = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderDOTPassthrough(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	data, hit, err := r.Render(context.Background(), "digraph sdd {\n}", FormatDOT, 0)
	if err != nil {
		t.Fatal(err)
	}
	if hit || string(data) != "digraph sdd {\n}" {
		t.Errorf("Render(dot) = %q, hit=%v", data, hit)
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	if _, _, err := r.Render(context.Background(), "digraph {}", "gif", 0); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want UNSUPPORTED", err)
	}
}

func TestRenderServesCachedArtifact(t *testing.T) {
	ctx := context.Background()
	r, _ := newFileRunner(t)
	src := "digraph sdd {\n0 [shape=rectangle,label=\"⟙\"];\n}"

	key := r.Keyer.ArtifactKey(cache.Hash([]byte(src)), FormatSVG)
	if err := r.Cache.Set(ctx, key, []byte("<svg/>"), time.Hour); err != nil {
		t.Fatal(err)
	}

	data, hit, err := r.Render(ctx, src, FormatSVG, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !hit || string(data) != "<svg/>" {
		t.Errorf("Render = %q, hit=%v; want cached artifact", data, hit)
	}
}

func TestDOTHelpers(t *testing.T) {
	root := sdd.NewTrue(0)
	src, err := DOT(root, dot.DAGOptions{MergeLeaves: true})
	if err != nil {
		t.Fatal(err)
	}
	want := "digraph sdd {\n0 [shape=rectangle,label=\"⟙\"];\n}"
	if src != want {
		t.Errorf("DOT = %q, want %q", src, want)
	}

	tree, err := TreeDOT(sdd.NewVtreeLeaf(0, 1), dot.TreeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	want = "digraph vtree {\n0 [label=\"1\",shape=\"box\"];\n}"
	if tree != want {
		t.Errorf("TreeDOT = %q, want %q", tree, want)
	}
}

// recordingHooks counts pipeline and cache events.
type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	mu                  sync.Mutex
	starts, completes   int
	hits, misses, saves int
}

func (h *recordingHooks) OnCountStart(context.Context, string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts++
}

func (h *recordingHooks) OnCountComplete(context.Context, string, string, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completes++
}

func (h *recordingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *recordingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *recordingHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.saves++
}

func TestCountEmitsHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	t.Cleanup(observability.Reset)

	r, _ := newFileRunner(t)
	path := writeFile(t, "lit.sdd", literalSDD)
	for range 2 {
		if _, err := r.Count(context.Background(), CountRequest{Path: path}); err != nil {
			t.Fatal(err)
		}
	}

	if h.starts != 2 || h.completes != 2 {
		t.Errorf("count hooks = %d/%d, want 2/2", h.starts, h.completes)
	}
	if h.misses != 1 || h.saves != 1 || h.hits != 1 {
		t.Errorf("cache hooks miss/set/hit = %d/%d/%d, want 1/1/1", h.misses, h.saves, h.hits)
	}
}
