package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lecturenotes/internal/config"
	"lecturenotes/internal/database"
	"lecturenotes/internal/notes"
	"lecturenotes/internal/ratelimiter"
	"lecturenotes/internal/scheduler"
	"lecturenotes/internal/session"
	"lecturenotes/internal/summarizer"
	"lecturenotes/internal/web"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web service",
		Long: `Run the web service.

Configuration is read from the environment; GROQ_API_KEY is required.
SIGINT and SIGTERM shut the server down gracefully.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	store, closeStore, err := initSessionStore(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize session store",
			"error", err,
			"sessionStore", cfg.SessionStore)

		return err
	}
	defer closeStore()
	log.InfoContext(ctx, "Session store is initialized",
		"sessionStore", cfg.SessionStore,
		"sessionTTL", cfg.SessionTTL.String())

	openAI, err := initOpenAISummarizer(cfg)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create summarizer",
			"error", err,
			"baseURL", cfg.SummarizerBaseURL)

		return err
	}

	limiter := ratelimiter.New(openAI, cfg.SummarizerMinInterval, log)
	defer limiter.Stop()
	log.InfoContext(ctx, "Summarizer is initialized",
		"baseURL", cfg.SummarizerBaseURL,
		"model", cfg.SummarizerModel,
		"minInterval", cfg.SummarizerMinInterval.String())

	sched := scheduler.New(ctx, store, cfg.SessionTTL, log)
	if err = sched.Start(); err != nil {
		log.ErrorContext(ctx, "Failed to start scheduler",
			"error", err,
			"spec", scheduler.SessionSweepSpec)

		return err
	}
	defer sched.Stop()
	log.InfoContext(ctx, "Scheduler is started",
		"spec", scheduler.SessionSweepSpec)

	srv, err := web.New(web.Config{
		Addr:           cfg.ListenAddr,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Service:        notes.NewService(limiter, store, log),
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("create web server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(ctx)
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
		cancel()
		err = <-errCh
	case err = <-errCh:
	}

	log.InfoContext(ctx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())

	return err
}

func initSessionStore(ctx context.Context, cfg config.Config, log *slog.Logger) (session.Store, func(), error) {
	if cfg.SessionStore != config.SessionStoreSQLite {
		return session.NewMemoryStore(cfg.SessionMaxEntries, cfg.SessionTTL), func() {}, nil
	}

	db, err := database.New(ctx, cfg.DBPath, log)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	closeDB := func() {
		if closeErr := db.Close(); closeErr != nil {
			log.ErrorContext(ctx, "Failed to close db",
				"error", closeErr,
				"dbPath", cfg.DBPath)
		}
	}

	return db, closeDB, nil
}

func initOpenAISummarizer(cfg config.Config) (*summarizer.OpenAISummarizer, error) {
	return summarizer.NewOpenAISummarizer(summarizer.OpenAIConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.SummarizerBaseURL,
		Model:       cfg.SummarizerModel,
		Temperature: cfg.SummarizerTemperature,
		Timeout:     cfg.SummarizerTimeout,
	})
}
