package store

import (
	"strings"

	"github.com/farrelnajib/yaraku-assignment/pkg/domain"
)

// ListBooksParams carries pagination, search, and sort options for the
// book table view. Zero values fall back to the defaults applied by
// Normalize.
type ListBooksParams struct {
	Page          int
	PerPage       int
	SearchText    string
	SortField     string
	SortDirection string
}

// SortColumns enumerates the columns a client may sort by.
var SortColumns = map[string]bool{
	"id":         true,
	"title":      true,
	"author":     true,
	"created_at": true,
	"updated_at": true,
}

// Normalize applies defaults and clamps out-of-range values.
func (p ListBooksParams) Normalize() ListBooksParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 10
	}
	if !SortColumns[p.SortField] {
		p.SortField = "id"
	}
	if dir := strings.ToLower(p.SortDirection); dir == "desc" {
		p.SortDirection = "desc"
	} else {
		p.SortDirection = "asc"
	}
	return p
}

// Store defines persistence operations for books and export jobs.
type Store interface {
	// books
	SaveBook(book *domain.Book) error
	GetBook(id int64) (domain.Book, bool, error)
	UpdateBook(book domain.Book) (domain.Book, error)
	DeleteBook(id int64) error
	ListBooks(params ListBooksParams) ([]domain.Book, int64, error)
	AllBooks() ([]domain.Book, error)

	// export jobs
	CreateExportJob(job *domain.ExportJob) error
	GetExportJob(id int64) (domain.ExportJob, bool, error)
	SetExportJobStatus(id int64, status domain.ExportStatus) error
	FinishExportJob(id int64, downloadURL string) error
}
