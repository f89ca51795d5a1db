package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/agbru/beaconfix/internal/beacon"
	apperrors "github.com/agbru/beaconfix/internal/errors"
	"github.com/agbru/beaconfix/internal/logging"
	"github.com/agbru/beaconfix/internal/resolver"
)

// Error codes carried by the error envelope.
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeNotResolvable    = "NOT_RESOLVABLE"
	CodeBusy             = "ROUND_BUSY"
	CodeUnavailable      = "UNAVAILABLE"
	CodeTimeout          = "TIMEOUT"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternal         = "INTERNAL"
)

// correlationHeader carries the request correlation id in both directions.
const correlationHeader = "X-Correlation-ID"

type correlationKey struct{}

// withCorrelationID stores id in the request context.
func withCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// correlationID returns the id stored by the correlation middleware, or a
// fresh one when the handler runs without it.
func correlationID(r *http.Request) string {
	if id, ok := r.Context().Value(correlationKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// resultResponse is the body of a successful resolution.
type resultResponse struct {
	Position beacon.Point `json:"position"`
	Message  string       `json:"message"`
}

// errorResponse is the error envelope.
type errorResponse struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeResult(w http.ResponseWriter, result resolver.Result) {
	writeJSON(w, http.StatusOK, resultResponse{Position: result.Location, Message: result.Text()})
}

// statusFor maps an error to its HTTP status and envelope code.
func statusFor(err error) (int, string) {
	var (
		validationErr apperrors.ValidationError
		capacityErr   apperrors.CapacityError
		timeoutErr    apperrors.TimeoutError
		maxBytesErr   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &maxBytesErr):
		return http.StatusBadRequest, CodeBadRequest
	case apperrors.IsClientError(err):
		return http.StatusNotFound, CodeNotResolvable
	case errors.As(err, &capacityErr):
		return http.StatusServiceUnavailable, CodeBusy
	case errors.Is(err, apperrors.ErrClosed):
		return http.StatusServiceUnavailable, CodeUnavailable
	case errors.As(err, &timeoutErr), apperrors.IsContextError(err):
		return http.StatusGatewayTimeout, CodeTimeout
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// writeError writes the error envelope for err. Server-side failures are
// logged with the correlation id; client errors are not.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	id := correlationID(r)
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", strconv.Itoa(s.retryAfterSeconds()))
	}
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", err, logging.String("correlation_id", id), logging.String("path", r.URL.Path))
		message = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: message, CorrelationID: id})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request, allow ...string) {
	for _, m := range allow {
		w.Header().Add("Allow", m)
	}
	s.logger.Debug("method not allowed", logging.String("method", r.Method), logging.String("path", r.URL.Path))
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
		Code:          CodeMethodNotAllowed,
		Message:       "method " + r.Method + " is not allowed",
		CorrelationID: correlationID(r),
	})
}
