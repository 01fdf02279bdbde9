// Package server hosts definition-backed forms over HTTP. A failed
// submission is flashed (old input plus the form's error bag) and the
// browser is redirected back to the form, which renders with both.
package server

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/components/timezones"
	"github.com/goliatone/go-formbuilder/internal/bootstrap"
	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

// FlashCookie carries the id of a pending flash.
const FlashCookie = "formgen_flash"

//go:embed templates/*.tpl
var templates embed.FS

// Option configures a Server.
type Option func(*Server)

// WithFlashTTL overrides the configured flash lifetime.
func WithFlashTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithCSRFCookie overrides the configured anti-forgery cookie name.
func WithCSRFCookie(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.csrfCookie = name
		}
	}
}

// Server serves the forms of a definition store.
type Server struct {
	env        *bootstrap.Env
	logger     *zap.Logger
	defs       atomic.Pointer[definition.Store]
	flash      session.Store
	ttl        time.Duration
	csrfCookie string
	pages      *gotemplate.Engine
	router     chi.Router
}

// New builds a server over store, keeping failed submissions in flash.
func New(env *bootstrap.Env, store *definition.Store, flash session.Store, opts ...Option) (*Server, error) {
	if env == nil || flash == nil {
		return nil, errors.New("server: env and flash store are required")
	}
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("server: embedded templates: %w", err)
	}
	pages, err := gotemplate.New(gotemplate.WithFS(sub))
	if err != nil {
		return nil, fmt.Errorf("server: template engine: %w", err)
	}

	s := &Server{
		env:        env,
		logger:     env.Logger,
		flash:      flash,
		ttl:        env.Config.Server.FlashTTL,
		csrfCookie: env.Config.Server.CSRFCookie,
		pages:      pages,
	}
	if s.ttl <= 0 {
		s.ttl = 5 * time.Minute
	}
	if s.csrfCookie == "" {
		s.csrfCookie = session.DefaultTokenField
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if store == nil {
		store = definition.NewStore()
	}
	s.defs.Store(store)
	s.router = s.routes()
	return s, nil
}

// SetDefinitions swaps the served definitions. Safe to call while serving;
// it is the reload callback for definition.Watcher.
func (s *Server) SetDefinitions(store *definition.Store) {
	if store == nil {
		return
	}
	s.defs.Store(store)
	s.logger.Info("definitions swapped", zap.Strings("handles", store.Handles()))
}

// Definitions returns the served store.
func (s *Server) Definitions() *definition.Store {
	return s.defs.Load()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/", s.handleIndex)
	r.Method(http.MethodGet, "/timezones", timezones.Handler())
	r.Get("/forms/{handle}", s.handleShow)
	r.Post("/forms/{handle}", s.handleSubmit)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
