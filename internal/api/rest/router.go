package rest

import (
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/propertyops/maintenance-console/internal/api/rest/handlers"
	customMiddleware "github.com/propertyops/maintenance-console/internal/api/rest/middleware"
	"github.com/propertyops/maintenance-console/pkg/auth"
	"github.com/propertyops/maintenance-console/pkg/logger"
	"github.com/propertyops/maintenance-console/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router holds the HTTP router and dependencies
type Router struct {
	router     *chi.Mux
	logger     *logger.Logger
	handlers   *handlers.Handlers
	jwtManager *auth.JWTManager
	metrics    *metrics.Metrics
}

// NewRouter creates a new HTTP router
func NewRouter(log *logger.Logger, h *handlers.Handlers, jwtManager *auth.JWTManager, m *metrics.Metrics) *Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// Metrics middleware
	r.Use(customMiddleware.Metrics(m))

	// Security middleware
	r.Use(customMiddleware.SecurityHeaders())
	r.Use(customMiddleware.RequestSizeLimit(1 << 20))

	// CORS - Configure allowed origins from environment
	allowedOrigins := []string{"http://localhost:3000"}
	if originsEnv := os.Getenv("ALLOWED_ORIGINS"); originsEnv != "" {
		allowedOrigins = strings.Split(originsEnv, ",")
		for i := range allowedOrigins {
			allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
		}
	}

	// Never allow "*" with credentials enabled
	allowCredentials := true
	for _, origin := range allowedOrigins {
		if origin == "*" {
			log.Warn("CORS: Wildcard origin '*' detected with credentials enabled. Disabling credentials for security.")
			allowCredentials = false
			break
		}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	}))

	return &Router{
		router:     r,
		logger:     log,
		handlers:   h,
		jwtManager: jwtManager,
		metrics:    m,
	}
}

// SetupRoutes configures all API routes
func (r *Router) SetupRoutes() {
	// Prometheus metrics endpoint (no auth required)
	r.router.Handle("/metrics", promhttp.Handler())

	// Health endpoints (no auth required)
	r.router.Get("/health", r.handlers.Health.Health)
	r.router.Get("/ready", r.handlers.Health.Ready)

	// API v1 (everything below requires a manager token)
	r.router.Route("/api/v1", func(router chi.Router) {
		router.Use(customMiddleware.JWTAuth(r.jwtManager, r.logger))
		router.Use(customMiddleware.RateLimitWithConfig(100, 200, r.logger))

		// Reference data
		router.Get("/cycles", r.handlers.Reference.ListCycles)
		router.Get("/buildings", r.handlers.Reference.ListBuildings)

		// Generation sessions
		router.Route("/sessions", func(router chi.Router) {
			router.Post("/", r.handlers.Session.Create)
			router.Route("/{id}", func(router chi.Router) {
				router.Get("/", r.handlers.Session.Get)
				router.Delete("/", r.handlers.Session.Close)
				router.Post("/cycles/{cycleID}/toggle", r.handlers.Session.ToggleCycle)
				router.Patch("/cycles/{cycleID}", r.handlers.Session.UpdateCycle)
				router.Post("/buildings/{buildingID}/toggle", r.handlers.Session.ToggleBuilding)
				router.Post("/generate", r.handlers.Session.Generate)
			})
		})

		// Schedules and their jobs
		router.Route("/schedules", func(router chi.Router) {
			router.Post("/", r.handlers.Schedule.Create)
			router.Route("/{scheduleID}/jobs", func(router chi.Router) {
				router.Get("/", r.handlers.Job.List)
				router.Post("/{jobID}/start", r.handlers.Job.Start)
				router.Post("/{jobID}/cancel", r.handlers.Job.Cancel)
				router.Post("/{jobID}/notify", r.handlers.Job.Notify)
			})
		})
	})
}

// Handler returns the configured HTTP handler
func (r *Router) Handler() http.Handler {
	return r.router
}
