package server

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"produtos-api/internal/config"
	"produtos-api/internal/database"
	custommiddleware "produtos-api/internal/middleware"
	"produtos-api/internal/repository"
	"produtos-api/internal/service"
	"produtos-api/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

// dependencies are the collaborators the router is built from
type dependencies struct {
	categoryService service.CategoryService
	productService  service.ProductService
	health          func() map[string]string
	redis           *redis.Client
	registry        *prometheus.Registry
}

func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service) *Server {
	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db.DB())
	productRepo := repository.NewProductRepository(db.DB())

	// Initialize services
	deps := dependencies{
		categoryService: service.NewCategoryService(categoryRepo),
		productService:  service.NewProductService(productRepo, categoryRepo),
		health:          db.Health,
	}

	if cfg.RateLimit.Enabled {
		deps.redis = newRedisClient(cfg.Redis)
	}

	if cfg.Metrics.Enabled {
		deps.registry = prometheus.NewRegistry()
		deps.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      newRouter(cfg, logger, deps),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  deps.redis,
	}
}

func newRouter(cfg *config.Config, logger *zap.Logger, deps dependencies) http.Handler {
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.IsDevelopment()))
	if deps.registry != nil {
		router.Use(custommiddleware.NewHTTPMetrics(deps.registry).Middleware)
	}
	router.Use(middleware.Compress(5))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		stats := deps.health()
		status := http.StatusOK
		if stats["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, stats)
	})

	if deps.registry != nil {
		router.Handle("/metrics", promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{}))
	}

	// Initialize handlers
	categoryHandler := transport.NewCategoryHandler(deps.categoryService, logger)
	productHandler := transport.NewProductHandler(deps.productService, logger)

	// Register routes
	router.Group(func(r chi.Router) {
		if deps.redis != nil {
			r.Use(custommiddleware.RateLimitMiddleware(deps.redis, custommiddleware.RateLimitConfig{
				RequestsPerWindow: cfg.RateLimit.Requests,
				Window:            cfg.RateLimit.Window,
				KeyPrefix:         "ratelimit:api",
			}, logger))
		}
		categoryHandler.RegisterRoutes(r)
		productHandler.RegisterRoutes(r)
	})

	return router
}

func newRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
