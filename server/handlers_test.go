package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prashantgupta17/mqlpromql/llm"
	"github.com/prashantgupta17/mqlpromql/metrics"
	"github.com/prashantgupta17/mqlpromql/server"
)

const testModelName = "googleai/gemini-2.0-pro-exp-02-05"

// stubTranslator is a QueryTranslator with an injectable function.
type stubTranslator struct {
	translateFunc func(ctx context.Context, mqlQuery string) (string, error)
}

func (s *stubTranslator) TranslateQuery(ctx context.Context, mqlQuery string) (string, error) {
	if s.translateFunc != nil {
		return s.translateFunc(ctx, mqlQuery)
	}
	return "", errors.New("translateFunc not implemented in stubTranslator")
}

var _ llm.QueryTranslator = (*stubTranslator)(nil)

// estimatingTranslator additionally implements llm.TokenEstimator.
type estimatingTranslator struct {
	stubTranslator
	tokens int
}

func (e *estimatingTranslator) EstimatePromptTokens(string) int {
	return e.tokens
}

var _ llm.TokenEstimator = (*estimatingTranslator)(nil)

// conversionResponse mirrors the convert endpoint's JSON body.
type conversionResponse struct {
	PromQLQuery string            `json:"promql_query"`
	Debug       map[string]string `json:"debug"`
	Errors      []string          `json:"errors"`
	Warnings    []string          `json:"warnings"`
}

func newTestRouter(translator llm.QueryTranslator) *mux.Router {
	reg := prometheus.NewRegistry()
	srv := server.New(translator, testModelName, metrics.New(reg), reg, zap.NewNop())
	router := mux.NewRouter()
	srv.RegisterRoutes(router)
	return router
}

func postConvert(router *mux.Router, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/convert", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) conversionResponse {
	t.Helper()
	var resp conversionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestConvertEndpointSuccess(t *testing.T) {
	translator := &stubTranslator{
		translateFunc: func(ctx context.Context, mqlQuery string) (string, error) {
			return "avg(instance_cpu_utilization)", nil
		},
	}
	router := newTestRouter(translator)

	w := postConvert(router, `{"mql_query": "fetch gce_instance | mean"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decodeResponse(t, w)
	assert.Equal(t, "avg(instance_cpu_utilization)", resp.PromQLQuery)
	assert.Empty(t, resp.Errors)
	assert.Empty(t, resp.Warnings)

	_, err := uuid.Parse(resp.Debug["request_id"])
	assert.NoError(t, err, "debug request_id must be a uuid")
	assert.Equal(t, testModelName, resp.Debug["model"])
	assert.Contains(t, resp.Debug, "duration_ms")
	assert.NotContains(t, resp.Debug, "prompt_tokens", "no estimator backend was configured")
}

func TestConvertEndpointEmptyListsAreArrays(t *testing.T) {
	translator := &stubTranslator{
		translateFunc: func(ctx context.Context, mqlQuery string) (string, error) {
			return "up", nil
		},
	}
	router := newTestRouter(translator)

	w := postConvert(router, `{"mql_query": "fetch gce_instance | mean"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"errors":[]`)
	assert.Contains(t, body, `"warnings":[]`)
}

func TestConvertEndpointPromptTokens(t *testing.T) {
	translator := &estimatingTranslator{
		stubTranslator: stubTranslator{
			translateFunc: func(ctx context.Context, mqlQuery string) (string, error) {
				return "up", nil
			},
		},
		tokens: 1234,
	}
	router := newTestRouter(translator)

	w := postConvert(router, `{"mql_query": "fetch gce_instance | mean"}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "1234", resp.Debug["prompt_tokens"])
}

func TestConvertEndpointValidationFailure(t *testing.T) {
	translator := &stubTranslator{
		translateFunc: func(ctx context.Context, mqlQuery string) (string, error) {
			t.Error("translator must not be invoked for an invalid query")
			return "", nil
		},
	}
	router := newTestRouter(translator)

	w := postConvert(router, `{"mql_query": "metric 'cpu' | mean"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Empty(t, resp.PromQLQuery)
	assert.Equal(t, []string{"Query must start with 'fetch'"}, resp.Errors)
	assert.Contains(t, resp.Debug, "request_id")
	assert.NotContains(t, resp.Debug, "model", "no model was involved in a rejected query")
}

func TestConvertEndpointEmptyQuery(t *testing.T) {
	translator := &stubTranslator{
		translateFunc: func(ctx context.Context, mqlQuery string) (string, error) {
			t.Error("translator must not be invoked for an empty query")
			return "", nil
		},
	}
	router := newTestRouter(translator)

	w := postConvert(router, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, []string{"Query cannot be empty"}, resp.Errors)
}

func TestConvertEndpointTranslationFailure(t *testing.T) {
	translator := &stubTranslator{
		translateFunc: func(ctx context.Context, mqlQuery string) (string, error) {
			return "", &llm.TranslationError{Reason: "LLM returned no choices"}
		},
	}
	router := newTestRouter(translator)

	w := postConvert(router, `{"mql_query": "fetch gce_instance | mean"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeResponse(t, w)
	assert.Empty(t, resp.PromQLQuery)
	assert.Equal(t, []string{"LLM returned no choices"}, resp.Errors)
	assert.NotNil(t, resp.Warnings)
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, "LLM returned no choices", resp.Debug["error"])
	assert.Equal(t, testModelName, resp.Debug["model"])
}

func TestConvertEndpointMalformedBody(t *testing.T) {
	translator := &stubTranslator{
		translateFunc: func(ctx context.Context, mqlQuery string) (string, error) {
			t.Error("translator must not be invoked for an undecodable body")
			return "", nil
		},
	}
	router := newTestRouter(translator)

	w := postConvert(router, `{"mql_query": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.Len(t, resp.Errors, 1)
	assert.True(t, strings.HasPrefix(resp.Errors[0], "Invalid request body:"),
		"unexpected error: %s", resp.Errors[0])
}

func TestConvertEndpointRejectsGet(t *testing.T) {
	router := newTestRouter(&stubTranslator{})

	req := httptest.NewRequest(http.MethodGet, "/convert", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHomePage(t *testing.T) {
	router := newTestRouter(&stubTranslator{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "MQL to PromQL Converter")
	assert.Contains(t, w.Body.String(), "fetch gce_instance")
}

func TestAboutPage(t *testing.T) {
	router := newTestRouter(&stubTranslator{})

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Monitoring Query Language (MQL)")
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&stubTranslator{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestFaviconEndpoint(t *testing.T) {
	router := newTestRouter(&stubTranslator{})

	req := httptest.NewRequest(http.MethodGet, "/favicon.ico", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<svg")
}

func TestMetricsEndpoint(t *testing.T) {
	translator := &stubTranslator{
		translateFunc: func(ctx context.Context, mqlQuery string) (string, error) {
			return "up", nil
		},
	}
	router := newTestRouter(translator)

	require.Equal(t, http.StatusOK, postConvert(router, `{"mql_query": "fetch gce_instance | mean"}`).Code)
	require.Equal(t, http.StatusBadRequest, postConvert(router, `{"mql_query": "no fetch"}`).Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `mqlpromql_conversions_total{outcome="success"} 1`)
	assert.Contains(t, body, `mqlpromql_conversions_total{outcome="validation_failed"} 1`)
	assert.Contains(t, body, "mqlpromql_translation_duration_seconds_count 1")
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(&stubTranslator{})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
