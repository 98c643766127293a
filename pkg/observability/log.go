package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements all hook interfaces by writing debug-level log lines.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnCountStart(_ context.Context, format, source string) {
	h.logger.Debug("count started", "format", format, "source", source)
}

func (h *LogHooks) OnCountComplete(_ context.Context, format, source string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("count failed", "format", format, "source", source, "duration", d, "err", err)
		return
	}
	h.logger.Debug("count finished", "format", format, "source", source, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, kind string) {
	h.logger.Debug("render started", "kind", kind)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, kind string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "kind", kind, "duration", d, "err", err)
		return
	}
	h.logger.Debug("render finished", "kind", kind, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
