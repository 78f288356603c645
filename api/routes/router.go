package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mrivera-dev/carvalue-backend/api/controllers"
	"github.com/mrivera-dev/carvalue-backend/api/middleware"
	"github.com/mrivera-dev/carvalue-backend/internal/auth"
	"github.com/mrivera-dev/carvalue-backend/internal/reports"
	"github.com/mrivera-dev/carvalue-backend/internal/users"
	"github.com/mrivera-dev/carvalue-backend/pkg/config"
	"github.com/mrivera-dev/carvalue-backend/pkg/db/models"
	"github.com/mrivera-dev/carvalue-backend/pkg/logger"
	"github.com/mrivera-dev/carvalue-backend/pkg/metrics"
	"github.com/mrivera-dev/carvalue-backend/pkg/redis"
	"github.com/mrivera-dev/carvalue-backend/pkg/session"
)

// Deps bundles everything the router needs.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             dbPinger
	RedisClient    *redis.Client
	SessionManager *session.Manager
	UserRepo       userLoader
	AuthService    auth.Service
	UsersService   users.Service
	ReportsService reports.Service
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
}

type dbPinger interface {
	Ping(ctx context.Context) error
}

type userLoader interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
		middleware.Session(deps.SessionManager, deps.UserRepo, logg),
	)

	// A typed nil *redis.Client must stay a nil interface so the rate
	// limiter falls back to pass-through.
	var rateStore middleware.RateLimiterStore
	if deps.RedisClient != nil {
		rateStore = deps.RedisClient
	}

	signinPolicy := middleware.NewAuthRateLimitPolicy(
		"signin",
		cfg.AuthRateLimit.SigninWindow,
		cfg.AuthRateLimit.SigninIPLimit,
		cfg.AuthRateLimit.SigninEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, logg))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(signupPolicy, rateStore, logg)).
			Post("/signup", controllers.AuthSignup(deps.AuthService, deps.SessionManager, logg))
		r.With(middleware.AuthRateLimit(signinPolicy, rateStore, logg)).
			Post("/signin", controllers.AuthSignin(deps.AuthService, deps.SessionManager, logg))
		r.Post("/signout", controllers.AuthSignout(deps.SessionManager, logg))
		r.With(middleware.RequireAuth(logg)).Get("/whoami", controllers.AuthWhoAmI(logg))

		r.Get("/", controllers.UserList(deps.UsersService, logg))
		r.Get("/{id}", controllers.UserGet(deps.UsersService, logg))
		r.Patch("/{id}", controllers.UserUpdate(deps.UsersService, logg))
		r.Delete("/{id}", controllers.UserDelete(deps.UsersService, logg))
	})

	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth(logg))
		r.Get("/", controllers.ReportEstimate(deps.ReportsService, logg))
		r.Post("/", controllers.ReportCreate(deps.ReportsService, logg))
		r.With(middleware.RequireAdmin(logg)).Patch("/{id}", controllers.ReportApprove(deps.ReportsService, logg))
	})

	return r
}
