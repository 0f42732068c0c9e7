// Package server exposes the screen controllers as a local JSON REST API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jonathan/jobpilot/internal/screens"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// shutdownTimeout bounds how long in-flight requests may run after a stop signal.
const shutdownTimeout = 30 * time.Second

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	app           *screens.App
	logger        *zap.Logger
	corsOrigins   []string
	photoMaxBytes int64
}

// Config holds server configuration
type Config struct {
	Port          int
	CORSOrigins   []string
	PhotoMaxBytes int64
	Logger        *zap.Logger
}

// New creates a new server instance over app.
func New(cfg Config, app *screens.App) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s := &Server{
		app:           app,
		logger:        logger,
		corsOrigins:   origins,
		photoMaxBytes: cfg.PhotoMaxBytes,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // generation calls can take minutes
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// CVs
	mux.HandleFunc("GET /cvs", s.handleListCVs)
	mux.HandleFunc("POST /cvs", s.handleCreateCV)
	mux.HandleFunc("POST /cvs/import", s.handleImportCV)
	mux.HandleFunc("GET /cvs/{id}", s.handleGetCV)
	mux.HandleFunc("DELETE /cvs/{id}", s.handleDeleteCV)
	mux.HandleFunc("POST /cvs/{id}/analyze", s.handleAnalyzeCV)
	mux.HandleFunc("GET /cvs/{id}/analysis", s.handleGetAnalysis)

	// AI tools
	mux.HandleFunc("POST /tools/job-description", s.handleJobDescription)
	mux.HandleFunc("POST /tools/{tool}", s.handleRunTool)
	mux.HandleFunc("POST /tools/{tool}/stream", s.handleRunToolStream)
	mux.HandleFunc("GET /tools/result", s.handleToolResult)

	// Applications
	mux.HandleFunc("GET /applications", s.handleListApplications)
	mux.HandleFunc("POST /applications", s.handleCreateApplication)
	mux.HandleFunc("GET /applications.csv", s.handleApplicationsCSV)
	mux.HandleFunc("PATCH /applications/{id}", s.handleUpdateApplication)
	mux.HandleFunc("DELETE /applications/{id}", s.handleDeleteApplication)
	mux.HandleFunc("DELETE /applications/{id}/reminder", s.handleDismissReminder)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)

	// Leads and templates
	mux.HandleFunc("POST /leads/search", s.handleSearchLeads)
	mux.HandleFunc("GET /leads", s.handleLeadResults)
	mux.HandleFunc("POST /leads/save", s.handleSaveLeads)
	mux.HandleFunc("GET /leads.csv", s.handleLeadsCSV)
	mux.HandleFunc("POST /leads/email-draft", s.handleEmailDraft)
	mux.HandleFunc("GET /templates", s.handleListTemplates)
	mux.HandleFunc("POST /templates", s.handleCreateTemplate)
	mux.HandleFunc("PUT /templates/{id}", s.handleUpdateTemplate)
	mux.HandleFunc("DELETE /templates/{id}", s.handleDeleteTemplate)

	// Advisor chat
	mux.HandleFunc("GET /chat", s.handleChatMessages)
	mux.HandleFunc("POST /chat", s.handleSendChat)
	mux.HandleFunc("DELETE /chat", s.handleResetChat)

	// History
	mux.HandleFunc("GET /history", s.handleListHistory)
	mux.HandleFunc("GET /history.txt", s.handleHistoryText)
	mux.HandleFunc("GET /history/{id}", s.handleGetHistoryItem)
	mux.HandleFunc("GET /history/{id}/text", s.handleHistoryItemText)

	// Layouts
	mux.HandleFunc("POST /layouts/suggest", s.handleSuggestLayouts)
	mux.HandleFunc("GET /layouts", s.handleListLayouts)
	mux.HandleFunc("POST /layouts/{id}/apply", s.handleApplyLayout)
	mux.HandleFunc("GET /layouts/current", s.handleCurrentLayout)
	mux.HandleFunc("GET /layouts/current.pdf", s.handleLayoutPDF)
	mux.HandleFunc("GET /layouts/current.txt", s.handleLayoutText)
	mux.HandleFunc("POST /layouts/current/save", s.handleSaveStyled)

	// Photo and settings
	mux.HandleFunc("POST /photo/enhance", s.handleEnhancePhoto)
	mux.HandleFunc("GET /settings", s.handleGetSettings)
	mux.HandleFunc("PUT /settings", s.handleUpdateSettings)
	mux.HandleFunc("GET /status", s.handleStatus)

	return s.withLogging(s.withCORS(mux))
}

// Start serves until ctx is cancelled or the process receives SIGINT/SIGTERM,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) allowedOrigin(origin string) string {
	for _, o := range s.corsOrigins {
		if o == "*" {
			return "*"
		}
		if origin != "" && strings.EqualFold(o, origin) {
			return origin
		}
	}
	return ""
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if allowed := s.allowedOrigin(r.Header.Get("Origin")); allowed != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			if allowed != "*" {
				w.Header().Add("Vary", "Origin")
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps streaming responses working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStatus reports the state of every screen action.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"cvs":     s.app.CVs.Status(),
		"tools":   s.app.Tools.Status(),
		"leads":   s.app.Leads.Status(),
		"chat":    s.app.Studio.Status(),
		"layouts": s.app.Layouts.Status(),
		"photo":   s.app.Photo.Status(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("error encoding JSON response", zap.Error(err))
	}
}

// attachment writes a downloadable body.
func (s *Server) attachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Warn("error writing attachment", zap.String("file", filename), zap.Error(err))
	}
}

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &screens.ValidationError{Field: "body", Message: "Corpo da requisição inválido."}
	}
	return nil
}
