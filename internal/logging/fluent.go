package logging

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Poster is the part of *fluent.Fluent the handler uses.
type Poster interface {
	Post(tag string, message interface{}) error
}

// FluentHandler is a slog.Handler that posts each record as a map tagged
// with its level.
type FluentHandler struct {
	client Poster
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewFluentHandler creates a handler posting records at or above level.
func NewFluentHandler(client Poster, level slog.Leveler) *FluentHandler {
	return &FluentHandler{client: client, level: level}
}

func (h *FluentHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *FluentHandler) Handle(_ context.Context, r slog.Record) error {
	data := make(map[string]interface{}, len(h.attrs)+r.NumAttrs()+3)
	for _, a := range h.attrs {
		addAttr(data, "", a)
	}
	prefix := strings.Join(h.groups, ".")
	r.Attrs(func(a slog.Attr) bool {
		addAttr(data, prefix, a)
		return true
	})

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	level := strings.ToLower(r.Level.String())
	data["level"] = level
	data["message"] = r.Message
	data["timestamp"] = ts.UTC().Format(time.RFC3339Nano)

	return h.client.Post(level, data)
}

func (h *FluentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := strings.Join(h.groups, ".")
	next := *h
	next.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (h *FluentHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string(nil), h.groups...), name)
	return &next
}

func addAttr(data map[string]interface{}, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			addAttr(data, key, ga)
		}
		return
	}

	switch v := a.Value.Any().(type) {
	case error:
		data[key] = v.Error()
	case time.Duration:
		data[key] = v.String()
	case time.Time:
		data[key] = v.UTC().Format(time.RFC3339Nano)
	default:
		data[key] = a.Value.Any()
	}
}
