package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/rahulAtGit/ZentriqVision/application/commands/bus"
	querybus "github.com/rahulAtGit/ZentriqVision/application/queries/bus"
	"github.com/rahulAtGit/ZentriqVision/application/services"
	"github.com/rahulAtGit/ZentriqVision/interfaces/http/rest/handlers"
	"github.com/rahulAtGit/ZentriqVision/interfaces/http/rest/middleware"
	"github.com/rahulAtGit/ZentriqVision/pkg/auth"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"
	"github.com/rahulAtGit/ZentriqVision/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// ReadinessCheck reports whether the backing services can take traffic
type ReadinessCheck func(ctx context.Context) error

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	accounts   *services.AccountService
	validator  auth.TokenValidator
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger

	collector   *observability.Collector
	ready       ReadinessCheck
	authLimiter auth.RateLimiter
}

// Option configures optional router features
type Option func(*Router)

// WithCollector records request metrics and serves them on /metrics
func WithCollector(c *observability.Collector) Option {
	return func(rt *Router) { rt.collector = c }
}

// WithReadinessCheck backs /ready with a dependency check
func WithReadinessCheck(check ReadinessCheck) Option {
	return func(rt *Router) { rt.ready = check }
}

// WithAuthRateLimiter throttles the public account endpoints per client IP
func WithAuthRateLimiter(l auth.RateLimiter) Option {
	return func(rt *Router) { rt.authLimiter = l }
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	accounts *services.AccountService,
	validator auth.TokenValidator,
	errs *apperrors.ErrorHandler,
	logger *zap.Logger,
	opts ...Option,
) *Router {
	rt := &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		accounts:   accounts,
		validator:  validator,
		errors:     errs,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(rt.logger))
	if rt.collector != nil {
		router.Use(middleware.Metrics(rt.collector))
	}
	router.Use(rt.errors.Middleware)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errors.HandleStatus(w, r, http.StatusNotFound, "Endpoint not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rt.errors.HandleStatus(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.collector != nil {
		router.Handle("/metrics", rt.collector.Handler())
	}

	router.Route("/auth", func(r chi.Router) {
		if rt.authLimiter != nil {
			r.Use(middleware.RateLimit(rt.authLimiter, rt.errors, rt.logger))
		}
		authHandler := handlers.NewAuthHandler(rt.accounts, rt.errors, rt.logger)
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
		r.Post("/confirm", authHandler.ConfirmSignUp)
		r.Post("/forgot-password", authHandler.ForgotPassword)
		r.Post("/reset-password", authHandler.ResetPassword)
		r.Post("/validate", authHandler.ValidateToken)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.errors, rt.logger))

		videoHandler := handlers.NewVideoHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
		r.Post("/upload", videoHandler.RequestUpload)
		r.Get("/search", videoHandler.Search)
		r.Route("/videos", func(r chi.Router) {
			r.Get("/", videoHandler.ListVideos)
			r.Get("/{videoID}", videoHandler.GetVideo)
			r.Get("/{videoID}/playback", videoHandler.GetPlayback)
		})

		profileHandler := handlers.NewProfileHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
		r.Get("/user/profile", profileHandler.GetProfile)
		r.Put("/user/profile", profileHandler.UpdateProfile)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if rt.ready != nil {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := rt.ready(ctx); err != nil {
			rt.logger.Warn("Readiness check failed", zap.Error(err))
			rt.errors.HandleStatus(w, req, http.StatusServiceUnavailable, "not ready")
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
