package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/farrelnajib/yaraku-assignment/internal/app"
	"github.com/farrelnajib/yaraku-assignment/internal/util"
	"github.com/farrelnajib/yaraku-assignment/pkg/domain"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App *app.App
}

// Server exposes the book catalog and export API.
type Server struct {
	app *app.App
	mux *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) (*Server, error) {
	if cfg.App == nil {
		return nil, errors.New("app required")
	}
	s := &Server{app: cfg.App, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

// Router returns the configured handler wrapped in middleware.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog(util.WithCORS(s.mux)))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/api/v1/books", s.handleBooks)
	s.mux.HandleFunc("/api/v1/books/", s.handleBooksSubtree)
	s.mux.HandleFunc("/exports/", s.handleDownloadExport)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type messageResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type dataResponse struct {
	Data any `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, dataResponse{Data: payload})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeAppError maps application errors onto the HTTP taxonomy:
// validation detail as 422, invalid export input as 400, missing
// records as 404, everything else as 500.
func writeAppError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusUnprocessableEntity, messageResponse{
			Message: "validation failed",
			Errors:  validation.Errors,
		})
		return
	}
	var invalidType *domain.InvalidTypeError
	if errors.As(err, &invalidType) {
		writeError(w, http.StatusBadRequest, invalidType.Error())
		return
	}
	var invalidField *domain.InvalidFieldError
	if errors.As(err, &invalidField) {
		writeError(w, http.StatusBadRequest, invalidField.Error())
		return
	}
	if errors.Is(err, domain.ErrBookNotFound) {
		writeError(w, http.StatusNotFound, "Book not found")
		return
	}
	if errors.Is(err, domain.ErrExportJobNotFound) {
		writeError(w, http.StatusNotFound, "Export job not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
