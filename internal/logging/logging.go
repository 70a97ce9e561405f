// Package logging provides structured logging setup for immo-abidjan.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/lmittmann/tint"
)

// Options controls Setup.
type Options struct {
	// Format is "text" (coloured, human readable) or "json".
	Format string
	Level  string
	Writer io.Writer
	Fluent *FluentOptions
}

// FluentOptions ships a copy of every record to a fluentd forwarder.
type FluentOptions struct {
	Host      string
	Port      int
	TagPrefix string
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Setup installs the default slog logger. The returned func flushes and
// closes the fluent connection, if any.
func Setup(opts Options) (func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	var handler slog.Handler
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(opts.Writer, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(opts.Writer, &tint.Options{
			Level:      level,
			TimeFormat: "2006-01-02 15:04:05",
		})
	}

	closeFn := func() error { return nil }
	if opts.Fluent != nil {
		client, err := fluent.New(fluent.Config{
			FluentHost: opts.Fluent.Host,
			FluentPort: opts.Fluent.Port,
			TagPrefix:  opts.Fluent.TagPrefix,
			Async:      true,
		})
		if err != nil {
			return nil, fmt.Errorf("creating fluent logger: %w", err)
		}
		handler = NewMultiHandler(handler, NewFluentHandler(client, level))
		closeFn = client.Close
	}

	slog.SetDefault(slog.New(handler))
	return closeFn, nil
}
