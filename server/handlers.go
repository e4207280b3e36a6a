package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prashantgupta17/mqlpromql/converter"
	"github.com/prashantgupta17/mqlpromql/web"
)

type conversionRequest struct {
	MQLQuery string `json:"mql_query"`
}

// conversionResponse has the same shape for every status; on failure
// promql_query is empty and errors says why.
type conversionResponse struct {
	PromQLQuery string            `json:"promql_query"`
	Debug       map[string]string `json:"debug"`
	Errors      []string          `json:"errors"`
	Warnings    []string          `json:"warnings"`
}

// handleConvert handles POST /convert: validate the MQL, translate it,
// answer 200/400/500 depending on where the pipeline stopped.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := s.logger.With(zap.String("request_id", requestID))
	debug := map[string]string{"request_id": requestID}

	var req conversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Undecodable convert request body", zap.Error(err))
		s.writeJSON(w, http.StatusBadRequest, conversionResponse{
			Debug:    debug,
			Errors:   []string{"Invalid request body: " + err.Error()},
			Warnings: []string{},
		})
		return
	}

	logger.Info("Validating MQL query", zap.String("mql_query", req.MQLQuery))
	start := time.Now()
	outcome := s.converter.Convert(r.Context(), req.MQLQuery)
	duration := time.Since(start)

	debug["duration_ms"] = strconv.FormatInt(duration.Milliseconds(), 10)
	s.metrics.RecordOutcome(string(outcome.Status))

	if outcome.Status == converter.StatusValidationFailed {
		logger.Warn("MQL validation failed", zap.Strings("errors", outcome.Errors))
		s.writeJSON(w, http.StatusBadRequest, conversionResponse{
			Debug:    debug,
			Errors:   orEmpty(outcome.Errors),
			Warnings: orEmpty(outcome.Warnings),
		})
		return
	}

	// The translator was reached; record its latency and prompt size.
	s.metrics.ObserveTranslationDuration(duration)
	debug["model"] = s.modelName
	if s.estimator != nil {
		if tokens := s.estimator.EstimatePromptTokens(req.MQLQuery); tokens > 0 {
			debug["prompt_tokens"] = strconv.Itoa(tokens)
		}
	}

	if outcome.Status == converter.StatusTranslationFailed {
		debug["error"] = outcome.FailureMessage
		logger.Error("Conversion failed", zap.String("error", outcome.FailureMessage))
		s.writeJSON(w, http.StatusInternalServerError, conversionResponse{
			Debug:    debug,
			Errors:   []string{outcome.FailureMessage},
			Warnings: []string{},
		})
		return
	}

	logger.Info("Successful conversion", zap.String("promql_query", outcome.PromQL))
	s.writeJSON(w, http.StatusOK, conversionResponse{
		PromQLQuery: outcome.PromQL,
		Debug:       debug,
		Errors:      []string{},
		Warnings:    orEmpty(outcome.Warnings),
	})
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(web.IndexHTML)
}

func (s *Server) handleAbout(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(web.AboutHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("OK"))
}

func (s *Server) handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(web.FaviconSVG)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body conversionResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Error encoding response", zap.Error(err))
	}
}

// orEmpty keeps empty lists as [] rather than null in JSON responses.
func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
