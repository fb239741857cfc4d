package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	slogecho "github.com/samber/slog-echo"

	"marketagents/internal/notifier"
	"marketagents/internal/pricing"
	"marketagents/internal/storage"
)

type Options struct {
	APIKey string
	Pricer *pricing.Agent

	// Repo and Notifier are optional.
	Repo     storage.SuggestionRepository
	Notifier notifier.Notifier

	Logger *slog.Logger

	// Registry defaults to the global prometheus registry.
	Registry *prometheus.Registry
}

type Server struct {
	echo     *echo.Echo
	apiKey   string
	pricer   *pricing.Agent
	repo     storage.SuggestionRepository
	notifier notifier.Notifier
	logger   *slog.Logger

	alerts sync.WaitGroup
}

func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pricer := opts.Pricer
	if pricer == nil {
		pricer = pricing.NewAgent(nil, pricing.WithLogger(logger))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		apiKey:   opts.APIKey,
		pricer:   pricer,
		repo:     opts.Repo,
		notifier: opts.Notifier,
		logger:   logger,
	}

	promConfig := echoprometheus.MiddlewareConfig{Subsystem: "marketagents"}
	metricsHandler := echoprometheus.NewHandler()
	if opts.Registry != nil {
		promConfig.Registerer = opts.Registry
		metricsHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Registry})
	}

	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConfig))
	e.Use(middleware.BodyLimit("1M"))
	e.HTTPErrorHandler = s.errorHandler
	e.Validator = newValidator()

	e.GET("/metrics", metricsHandler)
	s.routes()

	return s
}

func (s *Server) routes() {
	s.echo.GET("/", s.index)

	s.echo.POST("/negotiate", s.negotiate, s.requireAPIKey)
	s.echo.POST("/moderate", s.moderate, s.requireAPIKey)
	s.echo.POST("/fraud-check", s.fraudCheck, s.requireAPIKey)
	s.echo.POST("/negotiate-deal", s.negotiateDeal, s.requireAPIKey)
	s.echo.GET("/suggestions", s.suggestions, s.requireAPIKey)
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight alerts.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.echo.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.alerts.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}

	return err
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	s.echo.ServeHTTP(rw, req)
}
