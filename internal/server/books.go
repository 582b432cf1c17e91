package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/farrelnajib/yaraku-assignment/pkg/store"
)

type bookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListBooks(w, r)
	case http.MethodPost:
		s.handleCreateBook(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /api/v1/books/{id}, /api/v1/books/export, /api/v1/books/export/{id}
func (s *Server) handleBooksSubtree(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/books/")
	if path == "export" {
		s.handleSubmitExport(w, r)
		return
	}
	if rest, ok := strings.CutPrefix(path, "export/"); ok {
		s.handleGetExportJob(w, r, rest)
		return
	}
	s.handleBookByID(w, r, path)
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := store.ListBooksParams{
		SearchText:    q.Get("search_text"),
		SortField:     q.Get("sort_field"),
		SortDirection: q.Get("sort_direction"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		params.Page = page
	}
	if perPage, err := strconv.Atoi(q.Get("per_page")); err == nil {
		params.PerPage = perPage
	}

	page, err := s.app.ListBooks(params)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	book, err := s.app.CreateBook(req.Title, req.Author)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeData(w, http.StatusCreated, book)
}

func (s *Server) handleBookByID(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "Book not found")
		return
	}
	switch r.Method {
	case http.MethodPut:
		var req bookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		book, err := s.app.UpdateBook(id, req.Title, req.Author)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeData(w, http.StatusOK, book)
	case http.MethodDelete:
		if err := s.app.DeleteBook(id); err != nil {
			writeAppError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}
