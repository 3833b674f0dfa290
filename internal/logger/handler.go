package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// filteringHandler wraps a base slog.Handler and drops records by tag, package or file.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
	// attrs added through WithAttrs, kept so a logger built with
	// Get().With("tag", ...) is filtered like the tagged helpers.
	tag string
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{
		baseHandler: base,
		cfg:         cfg,
	}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

// allowed applies the enabled/disabled pair for one dimension.
func allowed(enabled, disabled map[string]struct{}, key string) bool {
	if key == "" {
		return enabled == nil
	}
	key = strings.ToLower(key)
	if disabled != nil {
		if _, found := disabled[key]; found {
			return false
		}
	}
	if enabled != nil {
		if _, found := enabled[key]; !found {
			return false
		}
	}
	return true
}

// recordSource resolves package dir and file name for a record.
func recordSource(r slog.Record) (pkg, file string) {
	if r.PC == 0 {
		return "", ""
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "", ""
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File)
}

func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}

	pkg, file := recordSource(r)
	if pkg != "" && !allowed(h.cfg.enabledPackagesSet, h.cfg.disabledPackagesSet, pkg) {
		h.trace("package %q filtered", pkg)
		return nil
	}
	if file != "" && !allowed(h.cfg.enabledFilesSet, h.cfg.disabledFilesSet, file) {
		h.trace("file %q filtered", file)
		return nil
	}

	tag := h.tag
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = a.Value.String()
			return false
		}
		return true
	})
	if !allowed(h.cfg.enabledTagsSet, h.cfg.disabledTagsSet, tag) {
		h.trace("tag %q filtered", tag)
		return nil
	}

	return h.baseHandler.Handle(ctx, r)
}

func (h *filteringHandler) trace(format string, args ...interface{}) {
	if h.cfg != nil && h.cfg.DebugFilter {
		fmt.Fprintf(os.Stderr, "[FILTER] "+format+"\n", args...)
	}
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
	next.tag = h.tag
	for _, a := range attrs {
		if a.Key == tagKey {
			next.tag = a.Value.String()
		}
	}
	return next
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	next := newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
	next.tag = h.tag
	return next
}
