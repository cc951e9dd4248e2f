// Package web serves the upload form, the summary view and the PDF download.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"lecturenotes/internal/notes"
)

const (
	DefaultAddr           = "127.0.0.1:8080"
	DefaultMaxUploadBytes = 32 << 20

	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

//go:embed templates/*.html
var templates embed.FS

// Config holds the HTTP server configuration.
type Config struct {
	Addr           string
	MaxUploadBytes int64
	Service        *notes.Service
	Logger         *slog.Logger
}

type Server struct {
	cfg  Config
	srv  *http.Server
	log  *slog.Logger
	page *template.Template
}

func New(cfg Config) (*Server, error) {
	if cfg.Service == nil {
		return nil, errors.New("notes service is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	page, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		cfg:  cfg,
		log:  cfg.Logger,
		page: page,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           gzhttp.GzipHandler(mux),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return s, nil
}

// ListenAndServe blocks until ctx is done or the server fails. Cancelling ctx
// shuts the server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.log.InfoContext(ctx, "HTTP server is starting",
		"address", s.srv.Addr)

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		<-ctx.Done()

		s.log.Info("HTTP server is shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("Failed to shut down HTTP server",
				"error", err)
		}
	}()

	if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}

	<-shutdownDone

	return nil
}

// Handler returns the root handler, including compression.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
