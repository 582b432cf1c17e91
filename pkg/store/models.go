package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/farrelnajib/yaraku-assignment/pkg/domain"
)

// GORM models used for persistence.
type BookModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"not null"`
	Author    string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (BookModel) TableName() string { return "books" }

type ExportJobModel struct {
	ID          int64          `gorm:"primaryKey;autoIncrement"`
	Status      string         `gorm:"not null;default:PENDING"`
	Type        string         `gorm:"not null;default:csv"`
	DownloadURL *string        `gorm:"column:download_url"`
	Fields      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
}

func (ExportJobModel) TableName() string { return "export_jobs" }

func (m BookModel) toDomain() domain.Book {
	return domain.Book{
		ID:        m.ID,
		Title:     m.Title,
		Author:    m.Author,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (m ExportJobModel) toDomain() (domain.ExportJob, error) {
	var fields []domain.Field
	if len(m.Fields) > 0 {
		if err := json.Unmarshal(m.Fields, &fields); err != nil {
			return domain.ExportJob{}, fmt.Errorf("decode export fields: %w", err)
		}
	}
	return domain.ExportJob{
		ID:          m.ID,
		Status:      domain.ExportStatus(m.Status),
		Type:        domain.ExportType(m.Type),
		Fields:      fields,
		DownloadURL: m.DownloadURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func encodeFields(fields []domain.Field) (datatypes.JSON, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode export fields: %w", err)
	}
	return datatypes.JSON(data), nil
}
