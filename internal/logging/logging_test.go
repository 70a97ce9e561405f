package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetupText(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	closeFn, err := Setup(Options{Format: "text", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer func() {
		if err := closeFn(); err != nil {
			t.Errorf("close: %v", err)
		}
	}()

	slog.Debug("test debug")
	slog.Info("test info")

	output := buf.String()
	if !strings.Contains(output, "test debug") {
		t.Error("expected debug message at debug level")
	}
	if !strings.Contains(output, "test info") {
		t.Error("expected info message")
	}
}

func TestSetupJSON(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	if _, err := Setup(Options{Format: "json", Level: "info", Writer: &buf}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	slog.Debug("hidden")
	slog.Info("shown", "source", "Tonkro.ci")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(output, `"msg":"shown"`) || !strings.Contains(output, `"source":"Tonkro.ci"`) {
		t.Errorf("expected JSON record, got %q", output)
	}
}

func TestSetupInvalidLevel(t *testing.T) {
	if _, err := Setup(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

type recordingPoster struct {
	mu    sync.Mutex
	tags  []string
	posts []map[string]interface{}
	err   error
}

func (p *recordingPoster) Post(tag string, message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tags = append(p.tags, tag)
	p.posts = append(p.posts, message.(map[string]interface{}))
	return p.err
}

func TestFluentHandler(t *testing.T) {
	poster := &recordingPoster{}
	logger := slog.New(NewFluentHandler(poster, slog.LevelInfo))

	logger.Debug("dropped")
	logger.With("component", "refresh").WithGroup("cycle").Info("done",
		"saved", 3,
		"took", 2*time.Second,
		slog.Group("batch", "produced", 5),
	)
	logger.Error("failed", "error", errors.New("boom"))

	if len(poster.posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(poster.posts))
	}

	if poster.tags[0] != "info" || poster.tags[1] != "error" {
		t.Errorf("tags = %v", poster.tags)
	}

	first := poster.posts[0]
	checks := map[string]interface{}{
		"message":              "done",
		"level":                "info",
		"component":            "refresh",
		"cycle.saved":          int64(3),
		"cycle.took":           "2s",
		"cycle.batch.produced": int64(5),
	}
	for k, want := range checks {
		if got := first[k]; got != want {
			t.Errorf("%s = %v (%T), want %v (%T)", k, got, got, want, want)
		}
	}
	if _, ok := first["timestamp"]; !ok {
		t.Error("expected timestamp")
	}

	if got := poster.posts[1]["error"]; got != "boom" {
		t.Errorf("error = %v, want boom", got)
	}
}

func TestMultiHandlerFansOut(t *testing.T) {
	var buf bytes.Buffer
	poster := &recordingPoster{err: errors.New("fluent down")}
	text := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewMultiHandler(text, NewFluentHandler(poster, slog.LevelWarn)))

	logger.Info("local only")
	logger.Warn("both", "k", "v")

	if !strings.Contains(buf.String(), "local only") || !strings.Contains(buf.String(), "both") {
		t.Errorf("text output missing records: %q", buf.String())
	}
	if len(poster.posts) != 1 || poster.posts[0]["message"] != "both" {
		t.Errorf("fluent posts = %v", poster.posts)
	}

	h := NewMultiHandler(NewFluentHandler(poster, slog.LevelError))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info disabled when every handler is at error")
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	old := slog.Default()
	defer slog.SetDefault(old)
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := RequestLogger(inner)

	req := httptest.NewRequest("GET", "/api/listings", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	output := buf.String()
	if output == "" {
		t.Fatal("expected log output")
	}
	if !strings.Contains(output, "GET") {
		t.Error("expected method in log")
	}
	if !strings.Contains(output, "/api/listings") {
		t.Error("expected path in log")
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected generated request id header")
	}
	if !strings.Contains(output, rec.Header().Get(RequestIDHeader)) {
		t.Error("expected request id in log")
	}
}

func TestRequestLoggerKeepsIncomingID(t *testing.T) {
	var buf bytes.Buffer
	old := slog.Default()
	defer slog.SetDefault(old)
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/api/stats", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
	if !strings.Contains(buf.String(), "status=200") {
		t.Errorf("expected implicit 200 status, got %q", buf.String())
	}
}

func TestRequestLoggerSkipsHealth(t *testing.T) {
	var buf bytes.Buffer
	old := slog.Default()
	defer slog.SetDefault(old)
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := RequestLogger(inner)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if buf.Len() > 0 {
		t.Error("expected no log for /health path")
	}
}

func TestRequestLoggerStatusLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusNotFound, "level=WARN"},
		{http.StatusInternalServerError, "level=ERROR"},
		{http.StatusCreated, "level=INFO"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			old := slog.Default()
			defer slog.SetDefault(old)
			slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

			handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest("GET", "/missing", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if !strings.Contains(buf.String(), tt.level) {
				t.Errorf("expected %s in %q", tt.level, buf.String())
			}
		})
	}
}
