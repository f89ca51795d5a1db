package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/beaconfix/internal/aggregator"
	"github.com/agbru/beaconfix/internal/beacon"
	apperrors "github.com/agbru/beaconfix/internal/errors"
	"github.com/agbru/beaconfix/internal/metrics"
	"github.com/agbru/beaconfix/internal/resolver"
)

// handleTopSecret resolves the three readings of one request.
func (s *Server) handleTopSecret(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req beacon.Request
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	readings, err := req.Readings()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := resolver.ResolveReadings(r.Context(), s.resolver, readings)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResult(w, result)
}

// handleSplit submits one reading to the live round and waits for the round's
// shared outcome. POST takes the reading as JSON; GET takes it from the query
// string (distance, and message repeated or comma-separated).
func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	var report beacon.Report
	switch r.Method {
	case http.MethodPost:
		if err := decodeBody(r, &report); err != nil {
			s.writeError(w, r, err)
			return
		}
	case http.MethodGet:
		var err error
		if report, err = splitFromQuery(r); err != nil {
			s.writeError(w, r, err)
			return
		}
	default:
		s.methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
		return
	}
	report.Name = r.PathValue("name")

	reading, err := report.Reading()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	outcome, err := s.aggregator.Submit(reading)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := outcome.Wait(r.Context())
	if err != nil {
		if apperrors.IsContextError(err) {
			err = apperrors.TimeoutError{Operation: "round " + outcome.RoundID(), Limit: s.aggregator.Timeout()}
		}
		s.writeError(w, r, err)
		return
	}
	writeResult(w, result)
}

// splitFromQuery reads a split reading from the query string.
func splitFromQuery(r *http.Request) (beacon.Report, error) {
	q := r.URL.Query()
	var report beacon.Report
	if raw := q.Get("distance"); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return report, apperrors.ValidationError{Field: "distance", Message: "must be a number"}
		}
		report.Distance = &d
	}
	for _, v := range q["message"] {
		report.Message = append(report.Message, strings.Split(v, ",")...)
	}
	return report, nil
}

// decodeBody decodes a JSON request body, rejecting unknown fields.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return apperrors.ValidationError{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status string               `json:"status"`
	Uptime string               `json:"uptime"`
	Round  roundStatus          `json:"round"`
	System metrics.SystemSample `json:"system"`
}

type roundStatus struct {
	ID       string    `json:"id,omitempty"`
	Readings int       `json:"readings"`
	Sealed   bool      `json:"sealed"`
	Opened   time.Time `json:"opened,omitzero"`
	Timeout  string    `json:"timeout"`
}

func newRoundStatus(snap aggregator.Snapshot, timeout time.Duration) roundStatus {
	return roundStatus{
		ID:       snap.RoundID,
		Readings: snap.Readings,
		Sealed:   snap.Sealed,
		Opened:   snap.Opened,
		Timeout:  timeout.String(),
	}
}

// handleHealth reports liveness, the live round and a system sample.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Uptime: time.Since(s.started).Round(time.Second).String(),
		Round:  newRoundStatus(s.aggregator.Snapshot(), s.aggregator.Timeout()),
		System: s.sampler.Sample(),
	})
}

// handleMetrics serves the Prometheus exposition.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	s.metrics.WritePrometheus(w, r)
}
