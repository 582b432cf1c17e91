package domain

import (
	"strconv"
	"time"
)

// Field names a book attribute that can be included in an export.
type Field string

const (
	FieldID        Field = "id"
	FieldTitle     Field = "title"
	FieldAuthor    Field = "author"
	FieldCreatedAt Field = "createdAt"
	FieldUpdatedAt Field = "updatedAt"
)

// DefaultExportFields is used when a client submits no field list.
func DefaultExportFields() []Field {
	return []Field{FieldTitle, FieldAuthor}
}

var fieldAccessors = map[Field]func(Book) string{
	FieldID:        func(b Book) string { return strconv.FormatInt(b.ID, 10) },
	FieldTitle:     func(b Book) string { return b.Title },
	FieldAuthor:    func(b Book) string { return b.Author },
	FieldCreatedAt: func(b Book) string { return b.CreatedAt.UTC().Format(time.RFC3339) },
	FieldUpdatedAt: func(b Book) string { return b.UpdatedAt.UTC().Format(time.RFC3339) },
}

// FieldValue returns the textual value of one book attribute.
// Unknown names are rejected so the builder never falls back to
// dynamic lookup.
func FieldValue(b Book, f Field) (string, error) {
	accessor, ok := fieldAccessors[f]
	if !ok {
		return "", &InvalidFieldError{Field: string(f)}
	}
	return accessor(b), nil
}

// ParseFields validates a client-submitted field list. An empty list
// defaults to [title, author].
func ParseFields(raw []string) ([]Field, error) {
	if len(raw) == 0 {
		return DefaultExportFields(), nil
	}
	fields := make([]Field, 0, len(raw))
	for _, name := range raw {
		f := Field(name)
		if _, ok := fieldAccessors[f]; !ok {
			return nil, &InvalidFieldError{Field: name}
		}
		fields = append(fields, f)
	}
	return fields, nil
}
