// Package server serves the application form over HTTP with gin. Each browser
// gets its own draft, tracked by cookie.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-jobform/components/countries"
	"github.com/goliatone/go-jobform/pkg/application"
	"github.com/goliatone/go-jobform/pkg/contract"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla"
)

const (
	// DraftCookie carries the draft id.
	DraftCookie = "jobform_draft"

	htmlRenderer = "vanilla"
	jsonRenderer = "json"

	// maxMultipartMemory is the in-memory share of a parsed upload; the rest
	// spills to temporary files.
	maxMultipartMemory = 8 << 20
	// maxRequestBytes leaves room for the text fields around a resume at the
	// size limit.
	maxRequestBytes = application.MaxResumeSizeBytes + 1<<20
)

// Options configures a Server. Only Submitter may be nil, in which case valid
// applications are accepted locally.
type Options struct {
	Logger         *slog.Logger
	Submitter      application.Submitter
	Renderers      *render.Registry
	Drafts         *DraftStore
	Title          string
	Intro          string
	Theme          *render.ThemeConfig
	AllowedOrigins []string
	// Contract is served at /openapi.yaml; defaults to the embedded document.
	Contract []byte
	// SecureCookies marks the draft cookie Secure.
	SecureCookies bool
}

// Server holds the gin engine and its collaborators.
type Server struct {
	engine    *gin.Engine
	log       *slog.Logger
	submitter application.Submitter
	renderers *render.Registry
	drafts    *DraftStore
	options   Options
}

// New wires routes and middleware.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Drafts == nil {
		opts.Drafts = NewDraftStore(0, nil)
	}
	if opts.Contract == nil {
		opts.Contract = contract.Raw()
	}
	if opts.Renderers == nil {
		registry, err := DefaultRenderers()
		if err != nil {
			return nil, err
		}
		opts.Renderers = registry
	}
	for _, name := range []string{htmlRenderer, jsonRenderer} {
		if !opts.Renderers.Has(name) {
			return nil, fmt.Errorf("server: renderer %q is required", name)
		}
	}

	s := &Server{
		engine:    gin.New(),
		log:       opts.Logger,
		submitter: opts.Submitter,
		renderers: opts.Renderers,
		drafts:    opts.Drafts,
		options:   opts,
	}
	s.engine.MaxMultipartMemory = maxMultipartMemory
	s.routes()
	return s, nil
}

// DefaultRenderers registers the HTML and JSON renderers.
func DefaultRenderers() (*render.Registry, error) {
	html, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("server: html renderer: %w", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(render.JSONRenderer{})
	return registry, nil
}

func (s *Server) routes() {
	s.engine.Use(gin.Recovery(), s.requestLogger())
	if len(s.options.AllowedOrigins) > 0 {
		s.engine.Use(cors.New(cors.Config{
			AllowOrigins:     s.options.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", TokenHeader},
			ExposeHeaders:    []string{TokenHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	s.engine.GET("/healthz", s.health)
	s.engine.GET("/openapi.yaml", s.openAPI)
	s.engine.StaticFS("/runtime", http.FS(vanilla.AssetsFS()))

	countryOptions := countries.NewOptions()
	countryHandler := gin.WrapH(countries.HandlerWithOptions(countryOptions))
	s.engine.GET(countryOptions.RoutePath, countryHandler)
	s.engine.HEAD(countryOptions.RoutePath, countryHandler)

	form := s.engine.Group("/", s.withDraft)
	form.GET("", s.showForm)
	form.POST("", s.postForm)
	form.POST("resume", s.dropResume)
	form.DELETE("resume", s.deleteResume)
}

// Handler exposes the engine as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down,
// giving in-flight requests up to grace to finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string, grace time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("jobform listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	s.log.Info("jobform shutting down", "grace", grace)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
