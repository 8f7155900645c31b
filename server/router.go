package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/etnz/journey"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(m *journey.Market, metrics *Metrics, logger zerolog.Logger) http.Handler {
	h := &handler{market: m, metrics: metrics, logger: logger}
	r := mux.NewRouter()

	r.HandleFunc("/health", healthCheckHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tickers", h.tickers).Methods(http.MethodGet)
	api.HandleFunc("/journey/{ticker}", h.journey).Methods(http.MethodGet)
	api.HandleFunc("/compare", h.compare).Methods(http.MethodGet)
	api.HandleFunc("/dividends/{ticker}", h.dividends).Methods(http.MethodGet)

	r.Use(loggingMiddleware(logger, metrics))
	r.Use(recoveryMiddleware(logger))
	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "hyt"})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs and counts HTTP requests.
func loggingMiddleware(logger zerolog.Logger, metrics *Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			metrics.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Dur("duration", time.Since(start)).
				Msg("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics.
func recoveryMiddleware(logger zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error().Interface("error", err).Str("path", r.URL.Path).Msg("panic recovered")
					respondError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
