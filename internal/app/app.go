package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/farrelnajib/yaraku-assignment/internal/storage"
	"github.com/farrelnajib/yaraku-assignment/pkg/domain"
	"github.com/farrelnajib/yaraku-assignment/pkg/pubsub"
	"github.com/farrelnajib/yaraku-assignment/pkg/store"
)

// Enqueuer dispatches an export job reference to the background worker.
type Enqueuer interface {
	Enqueue(ctx context.Context, jobID int64) error
}

// Config wires required dependencies for the application core.
type Config struct {
	Store     store.Store
	Queue     Enqueuer
	Publisher pubsub.Publisher
	Files     *storage.FileStore
}

// App is the application service: book CRUD plus the export pipeline.
type App struct {
	store     store.Store
	queue     Enqueuer
	publisher pubsub.Publisher
	files     *storage.FileStore
}

func New(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, errors.New("store required")
	}
	if cfg.Queue == nil {
		return nil, errors.New("queue required")
	}
	if cfg.Publisher == nil {
		return nil, errors.New("publisher required")
	}
	if cfg.Files == nil {
		return nil, errors.New("file store required")
	}
	return &App{
		store:     cfg.Store,
		queue:     cfg.Queue,
		publisher: cfg.Publisher,
		files:     cfg.Files,
	}, nil
}

// Pagination is the envelope returned by ListBooks.
type Pagination struct {
	CurrentPage int           `json:"currentPage"`
	PerPage     int           `json:"perPage"`
	Total       int64         `json:"total"`
	LastPage    int           `json:"lastPage"`
	Data        []domain.Book `json:"data"`
}

// CreateBook validates and persists a new book.
func (a *App) CreateBook(title, author string) (domain.Book, error) {
	if err := validateBook(title, author); err != nil {
		return domain.Book{}, err
	}
	book := domain.Book{Title: strings.TrimSpace(title), Author: strings.TrimSpace(author)}
	if err := a.store.SaveBook(&book); err != nil {
		return domain.Book{}, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

// UpdateBook validates and applies both title and author. The original
// behavior of ignoring the submitted title was a defect, not a contract.
func (a *App) UpdateBook(id int64, title, author string) (domain.Book, error) {
	if err := validateBook(title, author); err != nil {
		return domain.Book{}, err
	}
	book, err := a.store.UpdateBook(domain.Book{
		ID:     id,
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
	})
	if err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

// ListBooks returns one page of the filtered, sorted book table.
func (a *App) ListBooks(params store.ListBooksParams) (Pagination, error) {
	params = params.Normalize()
	books, total, err := a.store.ListBooks(params)
	if err != nil {
		return Pagination{}, fmt.Errorf("list books: %w", err)
	}
	lastPage := int((total + int64(params.PerPage) - 1) / int64(params.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return Pagination{
		CurrentPage: params.Page,
		PerPage:     params.PerPage,
		Total:       total,
		LastPage:    lastPage,
		Data:        books,
	}, nil
}

// DeleteBook removes a book by id.
func (a *App) DeleteBook(id int64) error {
	return a.store.DeleteBook(id)
}

// SubmitExport validates the request, persists a PENDING job, and hands
// it to the background queue. It returns before any processing happens.
// On an invalid type no job row is created.
func (a *App) SubmitExport(ctx context.Context, typeStr string, fields []string) (domain.ExportJob, error) {
	typ, err := domain.ParseExportType(typeStr)
	if err != nil {
		return domain.ExportJob{}, err
	}
	parsed, err := domain.ParseFields(fields)
	if err != nil {
		return domain.ExportJob{}, err
	}
	job := domain.ExportJob{
		Status: domain.StatusPending,
		Type:   typ,
		Fields: parsed,
	}
	if err := a.store.CreateExportJob(&job); err != nil {
		return domain.ExportJob{}, fmt.Errorf("create export job: %w", err)
	}
	if err := a.queue.Enqueue(ctx, job.ID); err != nil {
		return domain.ExportJob{}, fmt.Errorf("enqueue export job: %w", err)
	}
	return job, nil
}

// GetExportJob looks up a job for status polling.
func (a *App) GetExportJob(id int64) (domain.ExportJob, error) {
	job, ok, err := a.store.GetExportJob(id)
	if err != nil {
		return domain.ExportJob{}, fmt.Errorf("get export job: %w", err)
	}
	if !ok {
		return domain.ExportJob{}, domain.ErrExportJobNotFound
	}
	return job, nil
}

// ExportFilePath resolves a generated export filename to its location
// on disk.
func (a *App) ExportFilePath(filename string) (string, bool) {
	return a.files.Path(filename)
}

func validateBook(title, author string) error {
	fieldErrors := map[string][]string{}
	if strings.TrimSpace(title) == "" {
		fieldErrors["title"] = append(fieldErrors["title"], "title is required")
	}
	if strings.TrimSpace(author) == "" {
		fieldErrors["author"] = append(fieldErrors["author"], "author is required")
	}
	if len(fieldErrors) > 0 {
		return &domain.ValidationError{Errors: fieldErrors}
	}
	return nil
}
