package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"
)

// zapRecoveryWrapper wraps a zap logger into a gorilla RecoveryLogger.
type zapRecoveryWrapper struct {
	logger *zap.Logger
}

// Println logs a recovered panic with the given fields.
func (z zapRecoveryWrapper) Println(fields ...any) {
	z.logger.Error(fmt.Sprintln(fields...))
}

// newRecoveryHandler returns middleware that recovers on panics and
// answers 500 instead of dropping the connection.
func newRecoveryHandler(logger *zap.Logger, printStack bool) func(http.Handler) http.Handler {
	wrapper := zapRecoveryWrapper{logger: logger}
	return handlers.RecoveryHandler(handlers.RecoveryLogger(wrapper), handlers.PrintRecoveryStack(printStack))
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs one line per served request. Health and metrics
// probes are not logged.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		s.logger.Info("HTTP request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", recorder.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
