// Package devserver serves the counter during development: it hosts the
// build output, rebuilds when sources change and tells connected browsers to
// reload (or shows them the compiler error).
package devserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/vcrobe/counter/internal/web"
)

// ErrNoStaticDir is returned by Run when the build directory is missing.
var ErrNoStaticDir = errors.New("static dir does not exist")

// maxErrorBody caps POST /error payloads.
const maxErrorBody = 1 << 20

// BuildFunc rebuilds the served files.
type BuildFunc func(ctx context.Context) error

// Server is the live-reload dev server.
type Server struct {
	cfg      Config
	build    BuildFunc
	hub      *Hub
	metrics  *Metrics
	registry *prometheus.Registry
	logger   *slog.Logger
}

// New wires a server. build may be nil when nothing needs compiling.
func New(cfg Config, build BuildFunc, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	return &Server{
		cfg:      cfg,
		build:    build,
		hub:      NewHub(metrics),
		metrics:  metrics,
		registry: reg,
		logger:   logger,
	}
}

// Hub exposes the broadcast hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir))))
	r.Post("/reload", s.handleReload)
	r.Post("/error", s.handleError)
	r.Handle("/connect", websocket.Handler(s.handleConnect))
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// Rebuild runs the build and pushes the outcome to every browser.
func (s *Server) Rebuild(ctx context.Context) error {
	if s.build != nil {
		if err := s.build(ctx); err != nil {
			s.metrics.BuildErrors.Inc()
			s.logger.Error("rebuild failed", slog.Any("error", err))
			s.hub.Broadcast(Message{Type: MessageError, Message: err.Error()})
			return err
		}
	}
	s.metrics.Rebuilds.Inc()
	s.hub.Broadcast(Message{Type: MessageReload})
	return nil
}

// Run serves until ctx is cancelled. The hub, the watcher and the HTTP
// server share one lifetime; the first failure stops the rest.
func (s *Server) Run(ctx context.Context) error {
	if _, err := os.Stat(s.cfg.StaticDir); err != nil {
		return fmt.Errorf("%w: %s", ErrNoStaticDir, s.cfg.StaticDir)
	}

	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.hub.Run(ctx) })
	g.Go(func() error {
		return s.newWatcher().Run(ctx, func(ctx context.Context) { _ = s.Rebuild(ctx) })
	})
	g.Go(func() error {
		s.logger.Info("dev server started", slog.String("url", "http://localhost"+s.cfg.Addr()+"/"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newWatcher watches the source tree but never the static dir: rebuilds
// write there, and seeing those writes would rebuild forever.
func (s *Server) newWatcher() *Watcher {
	return &Watcher{
		Dir:      s.cfg.WatchDir,
		Debounce: s.cfg.Debounce,
		Ignore:   []string{s.cfg.StaticDir},
		Logger:   s.logger,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	body, err := web.Prerender()
	if err != nil {
		s.logger.Error("prerender failed", slog.Any("error", err))
		http.Error(w, "prerender failed", http.StatusInternalServerError)
		return
	}
	page := web.Page(web.PageData{Body: body, AssetPrefix: "/static/", LiveReload: true})
	templ.Handler(page).ServeHTTP(w, r)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Rebuild(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleError lets external tools (a CSS compiler, a linter) show their
// failure in the browser.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxErrorBody))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		http.Error(w, "empty error message", http.StatusBadRequest)
		return
	}
	s.hub.Broadcast(Message{Type: MessageError, Message: msg})
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleConnect(ws *websocket.Conn) {
	client := NewClient()
	s.hub.Register(client)
	defer s.hub.Unregister(client)

	logger := s.logger.With(slog.String("client", client.ID))
	logger.Debug("browser connected")

	// The browser never sends anything meaningful; a failed read means it left.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		var discard string
		for websocket.Message.Receive(ws, &discard) == nil {
		}
	}()

	for {
		select {
		case <-gone:
			logger.Debug("browser disconnected")
			return
		case msg, ok := <-client.Send():
			if !ok {
				return
			}
			if err := websocket.JSON.Send(ws, msg); err != nil {
				logger.Debug("send failed", slog.Any("error", err))
				return
			}
		}
	}
}
