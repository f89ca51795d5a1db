package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/agbru/beaconfix/internal/logging"
)

// metricsMiddleware tracks active and total requests and their latency.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.IncrementActiveRequests()
		defer func() {
			s.metrics.DecrementActiveRequests()
			s.metrics.ObserveDuration(time.Since(start))
		}()
		next(w, r)
	}
}

// statusRecorder captures the status written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// correlationMiddleware assigns each request a correlation id, taken from the
// X-Correlation-ID header when the client sends one, echoes it back and logs
// the request once it completes.
func (s *Server) correlationMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(correlationHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(correlationHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r.WithContext(withCorrelationID(r.Context(), id)))

		s.logger.Debug("request served",
			logging.String("correlation_id", id),
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.status),
			logging.Duration("elapsed", time.Since(start)),
		)
	}
}
