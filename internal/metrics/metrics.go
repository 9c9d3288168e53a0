package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stravaview_http_requests_total",
		Help: "Total number of HTTP requests processed.",
	}, []string{"method", "route"})

	httpErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stravaview_http_errors_total",
		Help: "Total number of HTTP requests resulting in server errors.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stravaview_http_request_duration_seconds",
		Help:    "Histogram of latencies for HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stravaview_upstream_latency_seconds",
		Help:    "Histogram of Strava API call latencies.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "route"})

	upstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stravaview_upstream_errors_total",
		Help: "Total number of failed Strava API calls.",
	}, []string{"operation"})

	cachedAthletes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stravaview_cached_athletes",
		Help: "Number of athletes with a cached activity list.",
	})

	rateLimitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stravaview_rate_limited_total",
		Help: "Total number of requests rejected by the rate limiter.",
	}, []string{"route"})
)

// Middleware records request count, latency and server errors per chi route pattern.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			// chi only knows the full pattern once routing is done.
			route := routePattern(r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			statusCode := strconv.Itoa(status)

			httpRequestsTotal.WithLabelValues(r.Method, route).Inc()
			httpRequestDuration.WithLabelValues(r.Method, route, statusCode).Observe(time.Since(start).Seconds())
			if status >= http.StatusInternalServerError {
				httpErrorsTotal.WithLabelValues(r.Method, route, statusCode).Inc()
			}
		})
	}
}

// Handler exposes the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveUpstream records the latency of a Strava API call and counts it as failed when err is non-nil.
// The route label is read from ctx when the call runs, after chi has matched the route.
func ObserveUpstream(ctx context.Context, operation string, start time.Time, err error) {
	upstreamLatency.WithLabelValues(operation, routeFromContext(ctx)).Observe(time.Since(start).Seconds())
	if err != nil {
		upstreamErrorsTotal.WithLabelValues(operation).Inc()
	}
}

func SetCachedAthletes(n int) {
	cachedAthletes.Set(float64(n))
}

func IncRateLimited(r *http.Request) {
	rateLimitedTotal.WithLabelValues(routePattern(r)).Inc()
}

func routeFromContext(ctx context.Context) string {
	if rctx := chi.RouteContext(ctx); rctx != nil {
		if pattern := strings.TrimSpace(rctx.RoutePattern()); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := strings.TrimSpace(rctx.RoutePattern()); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
