package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	updatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_updates_total",
			Help: "Total number of Telegram updates by classification",
		},
		[]string{"kind"},
	)

	gamesStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "games_started_total",
			Help: "Total number of games that opened a join window",
		},
	)

	gamesFinishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "games_finished_total",
			Help: "Total number of games ended with a final ranking",
		},
	)

	wordsServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "words_served_total",
			Help: "Total number of challenges served, by source",
		},
		[]string{"source"},
	)

	generatorCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generator_calls_total",
			Help: "Total number of word generator calls",
		},
		[]string{"status"},
	)

	generatorDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generator_call_duration_seconds",
			Help:    "Word generator call duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)

	violationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "forbidden_word_violations_total",
			Help: "Total number of forbidden-word violations by narrators",
		},
	)

	correctGuessesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "correct_guesses_total",
			Help: "Total number of correct guesses",
		},
	)
)

// MetricsMiddleware collects Prometheus metrics for each HTTP request.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(duration)
	}
}

func RecordUpdate(kind string) {
	updatesTotal.WithLabelValues(kind).Inc()
}

func RecordGameStarted() {
	gamesStartedTotal.Inc()
}

func RecordGameFinished() {
	gamesFinishedTotal.Inc()
}

// RecordWordServed counts a served challenge; source is "generator" or
// "fallback".
func RecordWordServed(source string) {
	wordsServedTotal.WithLabelValues(source).Inc()
}

func RecordGeneratorCall(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	generatorCallsTotal.WithLabelValues(status).Inc()
	generatorDuration.Observe(duration.Seconds())
}

func RecordViolation() {
	violationsTotal.Inc()
}

func RecordCorrectGuess() {
	correctGuessesTotal.Inc()
}
