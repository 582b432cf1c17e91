package domain

import "time"

type ExportStatus string

const (
	StatusPending    ExportStatus = "PENDING"
	StatusProcessing ExportStatus = "PROCESSING"
	StatusFinished   ExportStatus = "FINISHED"
)

type ExportType string

const (
	TypeCSV ExportType = "csv"
	TypeXML ExportType = "xml"
)

// ParseExportType validates the export type submitted by a client.
func ParseExportType(raw string) (ExportType, error) {
	switch ExportType(raw) {
	case TypeCSV:
		return TypeCSV, nil
	case TypeXML:
		return TypeXML, nil
	default:
		return "", &InvalidTypeError{Type: raw}
	}
}

type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ExportJob struct {
	ID          int64        `json:"id"`
	Status      ExportStatus `json:"status"`
	Type        ExportType   `json:"type"`
	Fields      []Field      `json:"fields"`
	DownloadURL *string      `json:"downloadUrl"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
