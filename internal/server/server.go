// Package server assembles the service: config in, wired gin router out.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/config"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/engine"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/generate"
	apphttp "github.com/SimonSaysGiveMeSmile/GenApp/internal/http"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/library"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/logging"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/middleware"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/monitoring"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/runtime"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/store"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/ws"
)

// Server wraps the HTTP server and its collaborators.
type Server struct {
	cfg     *config.Config
	log     *logging.Logger
	router  *gin.Engine
	http    *http.Server
	metrics *monitoring.Metrics
}

// New wires the whole service from config.
func New(cfg *config.Config, log *logging.Logger) (*Server, error) {
	metrics := monitoring.NewMetrics()

	// Blob store: file-backed when a directory is configured, in-memory
	// otherwise.
	var blobs store.Store
	if cfg.Storage.Dir != "" {
		fs, err := store.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		blobs = fs
	} else {
		blobs = store.NewMemoryStore()
	}

	creations, err := library.NewCreations(blobs)
	if err != nil {
		return nil, err
	}
	marketplace, err := library.NewMarketplace(blobs)
	if err != nil {
		return nil, err
	}

	if cfg.Storage.CatalogPath != "" {
		added, err := library.NewSeeder(marketplace).SeedFile(cfg.Storage.CatalogPath)
		if err != nil {
			log.Warn("catalog seeding failed", zap.Error(err))
		} else if added > 0 {
			log.Info("marketplace seeded", zap.Int("added", added))
		}
	}

	gen := generate.NewClient(generate.Config{
		BaseURL:    cfg.Generator.BaseURL,
		APIKey:     cfg.Generator.APIKey,
		Model:      cfg.Generator.Model,
		Timeout:    time.Duration(cfg.Generator.TimeoutSec) * time.Second,
		MaxRetries: cfg.Generator.MaxRetries,
	})

	eng := engine.New(gen, log).WithMetrics(metrics)
	runtimes := runtime.NewManager().WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apphttp.NewHandlers(eng, runtimes, creations, marketplace, log).WithMetrics(metrics)
	wsHandler := ws.NewHandler(eng, runtimes, log).WithMetrics(metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/build", handlers.Build)

	router.POST("/specs/validate", handlers.ValidateDesign)
	router.POST("/specs/repair", handlers.RepairDesign)
	router.POST("/designs/compile", handlers.CompileDesign)
	router.POST("/designs/markup", handlers.MarkupDesign)

	router.POST("/runtimes", handlers.OpenRuntime)
	router.GET("/runtimes", handlers.ListRuntimes)
	router.GET("/runtimes/:id", handlers.GetRuntime)
	router.POST("/runtimes/:id/dispatch", handlers.Dispatch)
	router.POST("/runtimes/:id/bindings", handlers.WriteBinding)
	router.POST("/runtimes/:id/toggle", handlers.Toggle)
	router.GET("/runtimes/:id/render", handlers.RenderRuntime)
	router.POST("/runtimes/:id/alert/dismiss", handlers.DismissAlert)
	router.DELETE("/runtimes/:id", handlers.CloseRuntime)

	router.GET("/creations", handlers.ListCreations)
	router.POST("/creations", handlers.SaveCreation)
	router.DELETE("/creations/:id", handlers.DeleteCreation)

	router.GET("/marketplace", handlers.ListMarketplace)
	router.POST("/marketplace/:id/install", handlers.InstallMarketplaceItem)

	router.GET("/stream", wsHandler.HandleConnection)

	return &Server{
		cfg:     cfg,
		log:     log.Named("server"),
		router:  router,
		metrics: metrics,
	}, nil
}

// Router exposes the wired router, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
	s.http = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Refresh the uptime gauge while the server lives.
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.metrics.UpdateUptime()
			case <-ctx.Done():
				return
			}
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	return s.http.Shutdown(shutdownCtx)
}
