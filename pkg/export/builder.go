// Package export serializes book records to CSV or XML. Building is a
// pure function of its inputs; callers persist the result.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"fmt"

	"github.com/farrelnajib/yaraku-assignment/pkg/domain"
)

// Build renders books into the requested format with one column/element
// per requested field, in field order. Field names are validated again
// here even though the API layer checks them first.
func Build(books []domain.Book, fields []domain.Field, typ domain.ExportType) ([]byte, error) {
	if len(fields) == 0 {
		fields = domain.DefaultExportFields()
	}
	switch typ {
	case domain.TypeCSV:
		return buildCSV(books, fields)
	case domain.TypeXML:
		return buildXML(books, fields)
	default:
		return nil, &domain.InvalidTypeError{Type: string(typ)}
	}
}

func buildCSV(books []domain.Book, fields []domain.Field) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = string(f)
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, len(fields))
	for _, book := range books {
		for i, f := range fields {
			value, err := domain.FieldValue(book, f)
			if err != nil {
				return nil, err
			}
			row[i] = value
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func buildXML(books []domain.Book, fields []domain.Field) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	root := xml.StartElement{Name: xml.Name{Local: "books"}}
	if err := enc.EncodeToken(root); err != nil {
		return nil, fmt.Errorf("write xml root: %w", err)
	}
	for _, book := range books {
		bookEl := xml.StartElement{Name: xml.Name{Local: "book"}}
		if err := enc.EncodeToken(bookEl); err != nil {
			return nil, fmt.Errorf("write xml book: %w", err)
		}
		for _, f := range fields {
			value, err := domain.FieldValue(book, f)
			if err != nil {
				return nil, err
			}
			fieldEl := xml.StartElement{Name: xml.Name{Local: string(f)}}
			if err := enc.EncodeToken(fieldEl); err != nil {
				return nil, fmt.Errorf("write xml field: %w", err)
			}
			if err := enc.EncodeToken(xml.CharData(value)); err != nil {
				return nil, fmt.Errorf("write xml value: %w", err)
			}
			if err := enc.EncodeToken(fieldEl.End()); err != nil {
				return nil, fmt.Errorf("close xml field: %w", err)
			}
		}
		if err := enc.EncodeToken(bookEl.End()); err != nil {
			return nil, fmt.Errorf("close xml book: %w", err)
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, fmt.Errorf("close xml root: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("flush xml: %w", err)
	}
	return buf.Bytes(), nil
}
