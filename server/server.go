// Package server exposes the converter over HTTP: the JSON convert
// endpoint, the embedded front-end pages, health and metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/prashantgupta17/mqlpromql/converter"
	"github.com/prashantgupta17/mqlpromql/llm"
	"github.com/prashantgupta17/mqlpromql/metrics"
)

// Server wires the converter into the HTTP surface.
type Server struct {
	converter *converter.Converter
	// estimator is non-nil when the translation backend can estimate
	// prompt token counts.
	estimator llm.TokenEstimator
	modelName string
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	logger    *zap.Logger

	httpServer *http.Server
	addr       string
}

// New creates a Server around the given translation backend. modelName is
// reported in the debug section of convert responses.
func New(translator llm.QueryTranslator, modelName string, m *metrics.Metrics, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	s := &Server{
		converter: converter.New(translator),
		modelName: modelName,
		metrics:   m,
		gatherer:  gatherer,
		logger:    logger,
	}
	if estimator, ok := translator.(llm.TokenEstimator); ok {
		s.estimator = estimator
	}
	return s
}

// RegisterRoutes registers all routes for this server on the given router.
func (s *Server) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/convert", s.handleConvert).Methods(http.MethodPost)
	router.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	router.HandleFunc("/about", s.handleAbout).Methods(http.MethodGet)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/favicon.ico", s.handleFavicon).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

// Start binds the listener and begins serving in the background. It
// returns once the port is bound, so a nil error means the server is
// accepting connections.
func (s *Server) Start(port string) error {
	router := mux.NewRouter()
	s.RegisterRoutes(router)
	handler := newRecoveryHandler(s.logger, true)(s.loggingMiddleware(router))

	hostPort := ":" + port
	listener, err := net.Listen("tcp", hostPort)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", hostPort, err)
	}
	s.addr = listener.Addr().String()

	s.httpServer = &http.Server{Addr: hostPort, Handler: handler}
	s.logger.Info("Starting HTTP server", zap.String("addr", s.addr))
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server failed", zap.Error(err))
		}
	}()
	return nil
}

// Addr returns the bound listen address once Start has succeeded.
func (s *Server) Addr() string {
	return s.addr
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
