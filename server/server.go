// Package server exposes the HTTP API and the embedded browser UI.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Om-2611/tasks-generator/llm"
	"github.com/Om-2611/tasks-generator/store"
)

//go:embed web
var embeddedStatic embed.FS

// historyLimit caps the history view; the UI only ever shows the last five.
const historyLimit = 5

// probePrompt is the minimal completion used by the status check.
const probePrompt = "Reply with OK only."

type Server struct {
	specs    *store.SpecStore
	llm      llm.Client
	logger   *zap.Logger
	staticFS http.Handler
}

func New(specs *store.SpecStore, client llm.Client, logger *zap.Logger) (*Server, error) {
	if specs == nil {
		return nil, errors.New("spec store required")
	}
	if client == nil {
		return nil, errors.New("llm client required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sub, err := fs.Sub(embeddedStatic, "web")
	if err != nil {
		return nil, err
	}

	return &Server{
		specs:    specs,
		llm:      client,
		logger:   logger,
		staticFS: http.FileServer(http.FS(sub)),
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate", s.handleGenerate)
	mux.HandleFunc("/specs", s.handleSpecs)
	mux.HandleFunc("/specs/preview", s.handlePreview)
	mux.HandleFunc("/update-spec", s.handleUpdateSpec)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/test-db", s.handleTestDB)
	mux.Handle("/", s.staticFS)
	return s.logMiddleware(mux)
}

// --- Helpers ---

type errorResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResp{Error: msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
