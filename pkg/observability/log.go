package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a charmbracelet logger at debug level,
// errors at warn level. It implements all three hook interfaces.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks logging to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnBuild(_ context.Context, mode string, nodes, edges int, err error) {
	if err != nil {
		h.Logger.Warn("build failed", "mode", mode, "err", err)
		return
	}
	h.Logger.Debug("graph built", "mode", mode, "nodes", nodes, "edges", edges)
}

func (h *LogHooks) OnDecompose(_ context.Context, found, kept int, d time.Duration) {
	h.Logger.Debug("decomposed", "found", found, "kept", kept, "took", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, algorithm string, n int) {
	h.Logger.Debug("layout start", "algorithm", algorithm, "nodes", n)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, algorithm string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("layout failed", "algorithm", algorithm, "err", err)
		return
	}
	h.Logger.Debug("layout done", "algorithm", algorithm, "took", d)
}

func (h *LogHooks) OnCommunities(_ context.Context, method string, retained int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("community detection failed", "method", method, "err", err)
		return
	}
	h.Logger.Debug("communities", "method", method, "retained", retained, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Info("request", "method", method, "route", route, "status", status, "took", d)
}

func (h *LogHooks) OnError(_ context.Context, method, route, code string) {
	h.Logger.Warn("request error", "method", method, "route", route, "code", code)
}

var (
	_ AnalysisHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
