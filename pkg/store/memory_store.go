package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/farrelnajib/yaraku-assignment/pkg/domain"
)

// MemoryStore is an in-memory Store used by tests. It mirrors the
// observable semantics of GormStore: sequential id assignment,
// ordering, and not-found behavior.
type MemoryStore struct {
	mu         sync.Mutex
	books      map[int64]domain.Book
	jobs       map[int64]domain.ExportJob
	nextBookID int64
	nextJobID  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		books:      make(map[int64]domain.Book),
		jobs:       make(map[int64]domain.ExportJob),
		nextBookID: 1,
		nextJobID:  1,
	}
}

func (s *MemoryStore) SaveBook(book *domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	book.ID = s.nextBookID
	s.nextBookID++
	book.CreatedAt = now
	book.UpdatedAt = now
	s.books[book.ID] = *book
	return nil
}

func (s *MemoryStore) GetBook(id int64) (domain.Book, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[id]
	return book, ok, nil
}

func (s *MemoryStore) UpdateBook(book domain.Book) (domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.books[book.ID]
	if !ok {
		return domain.Book{}, domain.ErrBookNotFound
	}
	existing.Title = book.Title
	existing.Author = book.Author
	existing.UpdatedAt = time.Now().UTC()
	s.books[book.ID] = existing
	return existing, nil
}

func (s *MemoryStore) DeleteBook(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[id]; !ok {
		return domain.ErrBookNotFound
	}
	delete(s.books, id)
	return nil
}

func (s *MemoryStore) ListBooks(params ListBooksParams) ([]domain.Book, int64, error) {
	params = params.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]domain.Book, 0, len(s.books))
	search := strings.ToLower(strings.TrimSpace(params.SearchText))
	for _, book := range s.books {
		if search != "" &&
			!strings.Contains(strings.ToLower(book.Title), search) &&
			!strings.Contains(strings.ToLower(book.Author), search) {
			continue
		}
		matched = append(matched, book)
	}
	sortBooks(matched, params.SortField, params.SortDirection)

	total := int64(len(matched))
	start := (params.Page - 1) * params.PerPage
	if start >= len(matched) {
		return []domain.Book{}, total, nil
	}
	end := start + params.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *MemoryStore) AllBooks() ([]domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	books := make([]domain.Book, 0, len(s.books))
	for _, book := range s.books {
		books = append(books, book)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

func (s *MemoryStore) CreateExportJob(job *domain.ExportJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	job.ID = s.nextJobID
	s.nextJobID++
	job.CreatedAt = now
	job.UpdatedAt = now
	s.jobs[job.ID] = cloneJob(*job)
	return nil
}

func (s *MemoryStore) GetExportJob(id int64) (domain.ExportJob, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return domain.ExportJob{}, false, nil
	}
	return cloneJob(job), true, nil
}

func (s *MemoryStore) SetExportJobStatus(id int64, status domain.ExportStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return domain.ErrExportJobNotFound
	}
	job.Status = status
	job.UpdatedAt = time.Now().UTC()
	s.jobs[id] = job
	return nil
}

func (s *MemoryStore) FinishExportJob(id int64, downloadURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return domain.ErrExportJobNotFound
	}
	job.Status = domain.StatusFinished
	job.DownloadURL = &downloadURL
	job.UpdatedAt = time.Now().UTC()
	s.jobs[id] = job
	return nil
}

func cloneJob(job domain.ExportJob) domain.ExportJob {
	fields := make([]domain.Field, len(job.Fields))
	copy(fields, job.Fields)
	job.Fields = fields
	if job.DownloadURL != nil {
		url := *job.DownloadURL
		job.DownloadURL = &url
	}
	return job
}

func sortBooks(books []domain.Book, field, direction string) {
	less := func(a, b domain.Book) bool { return a.ID < b.ID }
	switch field {
	case "title":
		less = func(a, b domain.Book) bool { return a.Title < b.Title }
	case "author":
		less = func(a, b domain.Book) bool { return a.Author < b.Author }
	case "created_at":
		less = func(a, b domain.Book) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "updated_at":
		less = func(a, b domain.Book) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	}
	sort.SliceStable(books, func(i, j int) bool {
		if direction == "desc" {
			return less(books[j], books[i])
		}
		return less(books[i], books[j])
	})
}
