package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/immo-abidjan/internal/config"
	"github.com/evcraddock/immo-abidjan/internal/db"
	"github.com/evcraddock/immo-abidjan/internal/listing"
	"github.com/evcraddock/immo-abidjan/internal/logging"
	"github.com/evcraddock/immo-abidjan/internal/refresh"
	"github.com/evcraddock/immo-abidjan/internal/scrape"
	"github.com/evcraddock/immo-abidjan/internal/synth"
	"github.com/evcraddock/immo-abidjan/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		port    int
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the HTTP API server and the background refresh loop.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var envPaths []string
			if envFile != "" {
				envPaths = append(envPaths, envFile)
			}
			cfg, err := config.Load(envPaths...)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if flagDB != "" {
				cfg.Store.DatabaseURL = ""
				cfg.Store.Path = flagDB
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 5000, "port to listen on (overrides PORT)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "path to a .env file (default: ./.env)")

	return cmd
}

// app is the wired server process.
type app struct {
	db           *sql.DB
	server       *web.Server
	orchestrator *refresh.Orchestrator
}

// newApp opens the store and wires the service, refresh pipeline and
// HTTP server. The schema is created lazily through the gate.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	conn, dialect, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	repo := listing.NewRepository(conn, dialect)
	gate := refresh.NewGate(repo.Init)
	svc := listing.NewService(repo, listing.ServiceOptions{
		TodayFallback: cfg.TodayFallback,
		Neighborhoods: synth.Neighborhoods(),
	})

	orch := refresh.New(gate, newStrategy(cfg.Refresh), repo, schedule(cfg.Refresh))

	return &app{
		db:           conn,
		server:       web.NewServer(svc, gate, orch),
		orchestrator: orch,
	}, nil
}

// openStore opens PostgreSQL when a URL is configured and SQLite otherwise.
func openStore(ctx context.Context, cfg config.StoreConfig) (*sql.DB, db.Dialect, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, "", fmt.Errorf("opening postgres: %w", err)
		}
		slog.Info("using postgres store")
		return conn, db.Postgres, nil
	}

	conn, err := db.Open(cfg.Path)
	if err != nil {
		return nil, "", fmt.Errorf("opening sqlite: %w", err)
	}
	slog.Info("using sqlite store", "path", cfg.Path)
	return conn, db.SQLite, nil
}

// newStrategy builds the fallback chain: scraping (when enabled), then
// the synthesizer, then the fixed demo set.
func newStrategy(cfg config.RefreshConfig) synth.Strategy {
	var strategies []synth.Strategy
	if cfg.ScrapeEnabled {
		strategies = append(strategies, scrape.New(scrape.Config{StartURLs: cfg.ScrapeURLs}))
	}
	strategies = append(strategies, synth.New(), synth.NewDemo())
	return synth.NewChain(strategies...)
}

// schedule maps refresh config onto the loop timing, filling unset
// durations from refresh.DefaultSchedule. Without OnStart the first cycle
// waits a full interval.
func schedule(cfg config.RefreshConfig) refresh.Schedule {
	s := refresh.Schedule{
		InitialDelay: cfg.InitialDelay,
		Interval:     cfg.Interval,
		Backoff:      cfg.Backoff,
	}
	if s.Interval <= 0 {
		s.Interval = refresh.DefaultSchedule.Interval
	}
	if s.Backoff <= 0 {
		s.Backoff = refresh.DefaultSchedule.Backoff
	}
	if !cfg.OnStart && s.InitialDelay == 0 {
		s.InitialDelay = s.Interval
	}
	return s
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logOpts := logging.Options{Format: cfg.Log.Format, Level: cfg.Log.Level}
	if cfg.Fluent.Enabled {
		logOpts.Fluent = &logging.FluentOptions{
			Host:      cfg.Fluent.Host,
			Port:      cfg.Fluent.Port,
			TagPrefix: cfg.AppName,
		}
	}
	closeLogs, err := logging.Setup(logOpts)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer func() {
		if cerr := closeLogs(); cerr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing log sink: %v\n", cerr)
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.db.Close(); cerr != nil {
			slog.Warn("closing database", "error", cerr)
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.orchestrator.Run(ctx)
	}()

	fmt.Printf("Starting %s API on http://localhost:%d\n", cfg.AppName, cfg.Port)
	err = a.server.ListenAndServe(ctx, cfg.Addr())
	stop()
	<-done
	return err
}
