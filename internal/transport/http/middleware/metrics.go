package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "discussions",
		Name:      "http_requests_total",
		Help:      "Число HTTP-запросов по маршруту, методу и статусу.",
	}, []string{"route", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "discussions",
		Name:      "http_request_duration_seconds",
		Help:      "Длительность обработки HTTP-запроса.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
)

// Metrics собирает счётчик и гистограмму запросов.
// В качестве маршрута берётся шаблон chi (а не сырой путь) — иначе
// кардинальность меток растёт с каждым новым id в URL.
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)
			dur := time.Since(start)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}

			httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(sw.status)).Inc()
			httpRequestDuration.WithLabelValues(route, r.Method).Observe(dur.Seconds())
		})
	}
}
