package server

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/farrelnajib/yaraku-assignment/pkg/domain"
)

type exportRequest struct {
	Type   string   `json:"type"`
	Fields []string `json:"fields"`
}

// exportJSON is the client-facing shape of an export job.
type exportJSON struct {
	ID          int64          `json:"id"`
	Status      string         `json:"status"`
	Type        string         `json:"type"`
	DownloadURL *string        `json:"downloadUrl"`
	Fields      []domain.Field `json:"fields"`
}

func exportFromJob(job domain.ExportJob) exportJSON {
	return exportJSON{
		ID:          job.ID,
		Status:      string(job.Status),
		Type:        string(job.Type),
		DownloadURL: job.DownloadURL,
		Fields:      job.Fields,
	}
}

func (s *Server) handleSubmitExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	job, err := s.app.SubmitExport(r.Context(), req.Type, req.Fields)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeData(w, http.StatusCreated, exportFromJob(job))
}

func (s *Server) handleGetExportJob(w http.ResponseWriter, r *http.Request, rawID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "Export job not found")
		return
	}
	job, err := s.app.GetExportJob(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeData(w, http.StatusOK, exportFromJob(job))
}

// handleDownloadExport serves a previously generated export file as an
// attachment.
func (s *Server) handleDownloadExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	filename := strings.TrimPrefix(r.URL.Path, "/exports/")
	path, ok := s.app.ExportFilePath(filename)
	if !ok {
		writeError(w, http.StatusNotFound, "Export file not found")
		return
	}
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	w.Header().Set("Content-Type", "text/"+ext+"; charset=UTF-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	http.ServeFile(w, r, path)
}
