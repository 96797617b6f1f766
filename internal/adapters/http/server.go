package httpadapter

import (
	"context"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"techstartups/internal/ports"
)

// cacheControl is the revalidation window for badges and pages. Ranks may
// be up to this stale in clients and shared caches.
const cacheControl = "public, max-age=3600, s-maxage=3600"

// Pinger reports store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	BaseURL        string
	DiscordURL     string
	Assets         fs.FS
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

type Server struct {
	directory ports.Directory
	badges    ports.Badges
	health    Pinger
	views     *views
	opts      Options
	log       *slog.Logger
}

func New(directory ports.Directory, badges ports.Badges, health Pinger, opts Options) (*Server, error) {
	v, err := parseViews()
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	return &Server{
		directory: directory,
		badges:    badges,
		health:    health,
		views:     v,
		opts:      opts,
		log:       opts.Logger,
	}, nil
}

// Routes returns a chi.Router with every page, the badge API and static assets.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/badge", s.handleBadge)
	r.Get("/sitemap.xml", s.handleSitemap)
	r.Get("/", s.handleHome)
	r.Get("/directory", s.handleDirectory)
	r.Get("/company/{slug}", s.handleCompany)
	r.Get("/company/{slug}/badge", s.handleBadgePage)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(s.opts.Assets))))
	r.NotFound(s.handleNotFound)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, body := http.StatusOK, "ok"
	if err := s.health.Ping(r.Context()); err != nil {
		s.log.Error("health check failed", "error", err)
		status, body = http.StatusServiceUnavailable, "unavailable"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": body})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
