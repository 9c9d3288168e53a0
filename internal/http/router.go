package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/jw6ventures/stravaview/internal/auth"
	"github.com/jw6ventures/stravaview/internal/config"
	"github.com/jw6ventures/stravaview/internal/http/ratelimit"
	"github.com/jw6ventures/stravaview/internal/metrics"
	"github.com/jw6ventures/stravaview/internal/ui"
)

// NewRouter wires the page, fragment and OAuth routes. ctx bounds the
// rate limiter's background cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, authService *auth.Service, uiHandler *ui.Handler) http.Handler {
	r := chi.NewRouter()

	// OAuth endpoints: 5 requests per second, burst of 10
	oauthRateLimiter := ratelimit.NewIPRateLimiter(ctx, rate.Limit(5), 10, 5*time.Minute, cfg.TrustedProxies, log)

	r.Use(middleware.RequestID)
	// No middleware.RealIP: it would trust X-Forwarded-For from any peer and
	// defeat the limiter's trusted-proxy check.
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log, NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(authService.LoadUser)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.PrometheusEnabled {
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			metrics.Handler().ServeHTTP(w, r)
		})
	}

	r.Get("/", uiHandler.Index)
	r.Get("/login", uiHandler.Login)
	r.Get("/activities", uiHandler.Activities)
	r.Get("/activities/{activity_id}", uiHandler.Activity)

	r.Group(func(r chi.Router) {
		r.Use(oauthRateLimiter.Middleware())
		r.Get("/strava_authorize", authService.BeginOAuth)
		r.Get(auth.CallbackPath, authService.HandleOAuthCallback)
	})

	return r
}
