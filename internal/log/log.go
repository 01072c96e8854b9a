package log

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
)

var (
	sectionsMu      sync.RWMutex
	enabledSections = []string{
		"lint",
	}
)

var level = new(slog.LevelVar)

var LoggerOpts = &slog.HandlerOptions{
	AddSource: true,
	Level:     level,
	ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == "time" {
			return slog.Attr{}
		}
		return a
	},
}

var DefaultLogger = slog.New(&filteringHandler{underlying: slog.NewTextHandler(os.Stderr, LoggerOpts)})

// SetLevel sets the minimum level of DefaultLogger and everything derived from it
func SetLevel(l slog.Level) {
	level.Set(l)
}

// EnableSections lets records below warn level through for loggers whose
// section attribute starts with one of sections
func EnableSections(sections ...string) {
	sectionsMu.Lock()
	defer sectionsMu.Unlock()
	for _, s := range sections {
		if s != "" && !slices.Contains(enabledSections, s) {
			enabledSections = append(enabledSections, s)
		}
	}
}

func sectionEnabled(section string) bool {
	sectionsMu.RLock()
	defer sectionsMu.RUnlock()
	return slices.ContainsFunc(enabledSections, func(enabled string) bool {
		return strings.HasPrefix(section, enabled)
	})
}

func init() {
	level.Set(slog.LevelWarn)
}

var _ slog.Handler = &filteringHandler{}

type filteringHandler struct {
	underlying slog.Handler
	sections   []string
}

func (f filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return f.underlying.Enabled(ctx, level)
}

func (f filteringHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelWarn {
		return f.underlying.Handle(ctx, record)
	}
	// first filter out records which do not match enabledSections
	wantSection := slices.ContainsFunc(f.sections, sectionEnabled)
	record.Attrs(func(attr slog.Attr) bool {
		wantSection = wantSection || attr.Key == "section" && sectionEnabled(attr.Value.String())
		// iterate as long as we have not found our section
		return !wantSection
	})
	if !wantSection {
		return nil
	}
	return f.underlying.Handle(ctx, record)
}

func (f filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, 0, len(attrs))
	sections := slices.Clone(f.sections)

	// remember the section attribute so that Handle can filter on it,
	// and still pass it on so that it shows up in the output
	for _, attr := range attrs {
		if attr.Key == "section" {
			sections = append(sections, attr.Value.String())
		}
		newAttrs = append(newAttrs, attr)
	}
	return &filteringHandler{
		underlying: f.underlying.WithAttrs(newAttrs),
		sections:   sections,
	}
}

func (f filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{
		underlying: f.underlying.WithGroup(name),
		sections:   f.sections,
	}
}
