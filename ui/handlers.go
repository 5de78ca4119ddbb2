package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"goeda/ai"
	loader "goeda/internal/dataset"
	"goeda/internal/errors"
	"goeda/internal/export"
)

type errorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[Server] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorPayload{Error: err.Error(), Code: errors.GetCode(err)})
}

// handleUpload loads an uploaded CSV into a fresh session. Load failures
// abort the upload and retain no partial dataset.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.InvalidInput("missing file field in upload"))
		return
	}
	defer file.Close()

	// Read one byte past the cap so the loader can reject oversized payloads
	maxBytes := s.config.Data.MaxUploadBytes
	raw, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "failed to read upload"))
		return
	}

	table, err := loader.LoadWithLimit(raw, maxBytes)
	if err != nil {
		log.Printf("[Server] upload rejected: %v", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	session := NewSession(header.Filename, table)
	s.setSession(session)
	log.Printf("[Server] Loaded %s: %d rows, %d columns", header.Filename, table.RowCount(), table.ColumnCount())

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": session.ID,
		"filename":   session.Filename,
		"rows":       table.RowCount(),
		"cols":       table.ColumnCount(),
	})
}

// handleProfile returns the full profile report of the loaded dataset
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	session := s.currentSession()
	if session == nil {
		writeError(w, http.StatusConflict, errors.InvalidInput("no dataset loaded, upload a CSV file first"))
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// handleInsightStream relays one insight generation as Server-Sent Events:
// a progress event per content fragment, then a final done event carrying
// the complete InsightResponse.
func (s *Server) handleInsightStream(w http.ResponseWriter, r *http.Request) {
	session := s.currentSession()
	if session == nil {
		writeError(w, http.StatusConflict, errors.InvalidInput("no dataset loaded, upload a CSV file first"))
		return
	}

	analysisType, err := ai.ParseAnalysisType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.InternalError("streaming not supported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sink := func(accumulated string) {
		writeSSE(w, "progress", map[string]string{"text": accumulated})
		flusher.Flush()
	}

	response := s.insights.GenerateInsight(r.Context(), session.Table, session.Report, analysisType, sink)
	writeSSE(w, "done", response)
	flusher.Flush()
}

func writeSSE(w io.Writer, event string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[Server] failed to marshal SSE payload: %v", err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, raw)
}

// handleExport streams a report document in the requested format
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	session := s.currentSession()
	if session == nil {
		writeError(w, http.StatusConflict, errors.InvalidInput("no dataset loaded, upload a CSV file first"))
		return
	}

	var (
		payload     []byte
		err         error
		filename    string
		contentType string
	)
	switch format := chi.URLParam(r, "format"); format {
	case "html":
		payload, err = export.HTMLReport(session.Table, session.Report, nil)
		filename = export.ReportFilename("EDA_Report", "html")
		contentType = "text/html"
	case "xlsx":
		payload, err = export.WorkbookReport(session.Table, session.Report)
		filename = export.ReportFilename("EDA_Report", "xlsx")
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "csv":
		payload, err = export.DatasetCSV(session.Table)
		filename = export.ReportFilename("EDA_Data", "csv")
		contentType = "text/csv"
	default:
		writeError(w, http.StatusBadRequest, errors.InvalidInput(fmt.Sprintf("unknown export format %q", format)))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		log.Printf("[Server] failed to write export: %v", err)
	}
}
