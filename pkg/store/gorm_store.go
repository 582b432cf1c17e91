package store

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/farrelnajib/yaraku-assignment/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&BookModel{}, &ExportJobModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) SaveBook(book *domain.Book) error {
	model := BookModel{Title: book.Title, Author: book.Author}
	if err := s.db.Create(&model).Error; err != nil {
		return fmt.Errorf("save book: %w", err)
	}
	*book = model.toDomain()
	return nil
}

func (s *GormStore) GetBook(id int64) (domain.Book, bool, error) {
	var model BookModel
	err := s.db.First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Book{}, false, nil
	}
	if err != nil {
		return domain.Book{}, false, fmt.Errorf("get book: %w", err)
	}
	return model.toDomain(), true, nil
}

func (s *GormStore) UpdateBook(book domain.Book) (domain.Book, error) {
	var model BookModel
	err := s.db.First(&model, book.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Book{}, domain.ErrBookNotFound
	}
	if err != nil {
		return domain.Book{}, fmt.Errorf("load book: %w", err)
	}
	model.Title = book.Title
	model.Author = book.Author
	if err := s.db.Save(&model).Error; err != nil {
		return domain.Book{}, fmt.Errorf("update book: %w", err)
	}
	return model.toDomain(), nil
}

func (s *GormStore) DeleteBook(id int64) error {
	res := s.db.Delete(&BookModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func (s *GormStore) ListBooks(params ListBooksParams) ([]domain.Book, int64, error) {
	params = params.Normalize()

	query := s.db.Model(&BookModel{})
	if search := strings.TrimSpace(params.SearchText); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	var models []BookModel
	err := query.
		Order(fmt.Sprintf("%s %s", params.SortField, params.SortDirection)).
		Offset((params.Page - 1) * params.PerPage).
		Limit(params.PerPage).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	books := make([]domain.Book, 0, len(models))
	for _, m := range models {
		books = append(books, m.toDomain())
	}
	return books, total, nil
}

func (s *GormStore) AllBooks() ([]domain.Book, error) {
	var models []BookModel
	if err := s.db.Order("id asc").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	books := make([]domain.Book, 0, len(models))
	for _, m := range models {
		books = append(books, m.toDomain())
	}
	return books, nil
}

func (s *GormStore) CreateExportJob(job *domain.ExportJob) error {
	fields, err := encodeFields(job.Fields)
	if err != nil {
		return err
	}
	model := ExportJobModel{
		Status: string(job.Status),
		Type:   string(job.Type),
		Fields: fields,
	}
	if err := s.db.Create(&model).Error; err != nil {
		return fmt.Errorf("create export job: %w", err)
	}
	created, err := model.toDomain()
	if err != nil {
		return err
	}
	*job = created
	return nil
}

func (s *GormStore) GetExportJob(id int64) (domain.ExportJob, bool, error) {
	var model ExportJobModel
	err := s.db.First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ExportJob{}, false, nil
	}
	if err != nil {
		return domain.ExportJob{}, false, fmt.Errorf("get export job: %w", err)
	}
	job, err := model.toDomain()
	if err != nil {
		return domain.ExportJob{}, false, err
	}
	return job, true, nil
}

func (s *GormStore) SetExportJobStatus(id int64, status domain.ExportStatus) error {
	res := s.db.Model(&ExportJobModel{}).Where("id = ?", id).Update("status", string(status))
	if res.Error != nil {
		return fmt.Errorf("set export status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrExportJobNotFound
	}
	return nil
}

func (s *GormStore) FinishExportJob(id int64, downloadURL string) error {
	res := s.db.Model(&ExportJobModel{}).Where("id = ?", id).Updates(map[string]any{
		"status":       string(domain.StatusFinished),
		"download_url": downloadURL,
	})
	if res.Error != nil {
		return fmt.Errorf("finish export job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrExportJobNotFound
	}
	return nil
}
