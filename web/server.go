// Package web exposes the worksheet conversion over HTTP. File paths refer
// to the server's own filesystem; restrict them with allowed roots when the
// listener is reachable from other hosts.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"sheetgrid/convert"
	"sheetgrid/output"
	"sheetgrid/storage"
)

const (
	// FilePathHeader carries the document path in conversion requests.
	FilePathHeader = "FilePath"
	// RequestIDHeader is echoed back on conversion responses; one is
	// generated when the client sends none.
	RequestIDHeader = "X-Request-ID"

	defaultHistoryLimit = 50
	maxHistoryLimit     = 1000
)

type Server struct {
	converter *convert.Converter
	journal   *storage.SQLiteStore
	logger    *slog.Logger
	mux       *http.ServeMux
}

type convertRequest struct {
	Path string `json:"path"`
}

type conversionView struct {
	ID         int64  `json:"id"`
	StartedAt  string `json:"startedAt"`
	DurationMS int64  `json:"durationMs"`
	Path       string `json:"path"`
	Sheet      string `json:"sheet"`
	Matched    bool   `json:"matched"`
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	Outcome    string `json:"outcome"`
	Error      string `json:"error,omitempty"`
	Source     string `json:"source"`
}

type historyResponse struct {
	Conversions []conversionView `json:"conversions"`
}

var errMalformedBody = errors.New("malformed request body")

// NewServer builds the HTTP handler. journal may be nil, in which case no
// conversions are recorded and the history endpoint is not served.
func NewServer(converter *convert.Converter, journal *storage.SQLiteStore, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	server := &Server{
		converter: converter,
		journal:   journal,
		logger:    logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /file", server.handleConvert)
	mux.HandleFunc("GET /healthz", server.handleHealth)
	mux.HandleFunc("GET /api/conversions", server.handleHistory)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, requestID)
	logger := s.logger.With("request_id", requestID)

	path, err := requestPath(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.converter.Convert(path)
	s.record(path, started, result, err)

	if err != nil {
		status := statusForError(err)
		logger.Warn("conversion failed",
			"path", path,
			"status", status,
			"duration", time.Since(started),
			"error", err,
		)
		http.Error(w, errorMessage(status, err), status)
		return
	}

	logger.Info("conversion completed",
		"path", path,
		"sheet", result.Sheet,
		"matched", result.Matched,
		"rows", result.Rows,
		"cols", result.Cols,
		"duration", time.Since(started),
	)
	writeJSON(w, http.StatusOK, output.Envelope{Results: result.Document})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		http.NotFound(w, r)
		return
	}

	limit := defaultHistoryLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxHistoryLimit {
			http.Error(w, fmt.Sprintf("invalid limit (expected 1..%d)", maxHistoryLimit), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := s.journal.ListConversions(limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := historyResponse{Conversions: make([]conversionView, 0, len(entries))}
	for _, entry := range entries {
		resp.Conversions = append(resp.Conversions, conversionView{
			ID:         entry.ID,
			StartedAt:  entry.StartedAt.Format(time.RFC3339),
			DurationMS: entry.Duration.Milliseconds(),
			Path:       entry.Path,
			Sheet:      entry.Sheet,
			Matched:    entry.Matched,
			Rows:       entry.Rows,
			Cols:       entry.Cols,
			Outcome:    entry.Outcome,
			Error:      entry.Error,
			Source:     entry.Source,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) record(path string, started time.Time, result *convert.Result, err error) {
	if s.journal == nil {
		return
	}
	entry := storage.NewConversion("http", path, started, result, err)
	if _, insertErr := s.journal.InsertConversion(entry); insertErr != nil {
		s.logger.Error("journal conversion", "path", path, "error", insertErr)
	}
}

// requestPath reads the document path from the FilePath header, then the
// "path" query parameter, then a JSON body. A missing path is returned as
// the empty string and rejected by the converter.
func requestPath(w http.ResponseWriter, r *http.Request) (string, error) {
	if value := r.Header.Get(FilePathHeader); value != "" {
		return value, nil
	}
	if value := r.URL.Query().Get("path"); value != "" {
		return value, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" || r.Body == nil {
		return "", nil
	}

	var req convertRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	if err := decoder.Decode(&req); err != nil {
		return "", fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return req.Path, nil
}

func statusForError(err error) int {
	switch convert.Classify(err) {
	case convert.OutcomeInvalidInput:
		return http.StatusBadRequest
	case convert.OutcomeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(status int, err error) string {
	switch status {
	case http.StatusBadRequest:
		return convert.ErrInvalidInput.Error()
	case http.StatusNotFound:
		return convert.ErrNotFound.Error()
	default:
		return "internal server error: " + err.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
