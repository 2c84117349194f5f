package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gokatarajesh/trivia-api/internal/logging"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"method", "endpoint"},
	)

	// QuizDraws counts quiz selections by outcome ("question" or "exhausted").
	QuizDraws = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trivia_quiz_draws_total",
			Help: "Quiz draws by outcome",
		},
		[]string{"outcome"},
	)

	// Mutations counts successful question writes by operation.
	Mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trivia_question_mutations_total",
			Help: "Successful question creates and deletes",
		},
		[]string{"op"},
	)
)

var registerOnce sync.Once

// Register adds the collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter, RequestDuration, QuizDraws, Mutations)
	})
}

// Middleware records request count and latency labelled by the matched chi route.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec, ok := w.(*logging.StatusRecorder)
		if !ok {
			rec = &logging.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		}

		next.ServeHTTP(rec, r)

		endpoint := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			endpoint = rctx.RoutePattern()
		}
		RequestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rec.Status)).Inc()
		RequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}
