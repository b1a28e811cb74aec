// Package metrics provides Prometheus instrumentation for the game.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TradesTotal counts trade attempts by side and outcome.
	TradesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "investly_trades_total",
		Help: "Trade attempts by side and result",
	}, []string{"side", "result"})

	// TurnsTotal counts completed turns by kind (scenario, hotshot).
	TurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "investly_turns_total",
		Help: "Completed turns by kind",
	}, []string{"kind"})

	// UnknownImpactSymbols counts impact keys that matched no instrument.
	UnknownImpactSymbols = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "investly_unknown_impact_symbols_total",
		Help: "Impact entries skipped because the symbol is not in the universe",
	}, []string{"event_id"})

	// ProfileSyncs counts profile persistence attempts by result.
	ProfileSyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "investly_profile_syncs_total",
		Help: "Profile sync attempts by result (ok, error, dropped)",
	}, []string{"result"})

	// NetWorth tracks the player's net worth after the latest change.
	NetWorth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "investly_net_worth",
		Help: "Cash plus holdings value",
	})

	// CurrentDay tracks the day counter.
	CurrentDay = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "investly_current_day",
		Help: "Current game day",
	})

	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "investly_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "investly_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request metrics, labelled by chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		duration := time.Since(start).Seconds()

		status := ww.Status()
		if status == 0 {
			// handler wrote nothing; net/http answers 200
			status = http.StatusOK
		}

		path := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if pattern := rc.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}
