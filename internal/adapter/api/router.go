package api

import (
	"log/slog"
	"net/http"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/V4T54L/contact-hub/internal/adapter/api/middleware"
	"github.com/V4T54L/contact-hub/internal/adapter/metrics"
)

// NewRouter creates and configures the main HTTP router for the contact API.
func NewRouter(
	schema *gql.Schema,
	logger *slog.Logger,
	m *metrics.APIMetrics,
	rps float64,
	burst int,
) http.Handler {
	mux := http.NewServeMux()

	graphqlHandler := countStatuses(&relay.Handler{Schema: schema}, m)
	rateLimit := middleware.RateLimit(rps, burst, logger, m)

	mux.Handle("POST /graphql", rateLimit(graphqlHandler))

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}

// countStatuses wraps the GraphQL handler with a per-status request counter.
func countStatuses(next http.Handler, m *metrics.APIMetrics) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		m.GraphQLRequestsTotal.WithLabelValues(strconv.Itoa(rw.statusCode)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
