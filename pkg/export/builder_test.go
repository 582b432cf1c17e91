package export

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/farrelnajib/yaraku-assignment/pkg/domain"
)

func sampleBooks(n int) []domain.Book {
	books := make([]domain.Book, 0, n)
	for i := 0; i < n; i++ {
		books = append(books, domain.Book{
			ID:     int64(i + 1),
			Title:  fmt.Sprintf("Book %d", i+1),
			Author: fmt.Sprintf("Author %d", i+1),
		})
	}
	return books
}

func TestBuildCSVRoundTrip(t *testing.T) {
	books := sampleBooks(10)
	data, err := Build(books, []domain.Field{domain.FieldTitle, domain.FieldAuthor}, domain.TypeCSV)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 11 {
		t.Fatalf("rows = %d, want 11 (header + 10)", len(rows))
	}
	if rows[0][0] != "title" || rows[0][1] != "author" {
		t.Fatalf("header = %v, want [title author]", rows[0])
	}
	for i, book := range books {
		row := rows[i+1]
		if row[0] != book.Title || row[1] != book.Author {
			t.Fatalf("row %d = %v, want [%s %s]", i+1, row, book.Title, book.Author)
		}
	}
}

func TestBuildCSVQuotesSpecialCharacters(t *testing.T) {
	books := []domain.Book{{ID: 1, Title: "One, \"Two\"\nThree", Author: "A"}}
	data, err := Build(books, []domain.Field{domain.FieldTitle, domain.FieldAuthor}, domain.TypeCSV)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if rows[1][0] != books[0].Title {
		t.Fatalf("title = %q, want %q round-tripped", rows[1][0], books[0].Title)
	}
}

func TestBuildCSVEmptyRecordsEmitsHeaderOnly(t *testing.T) {
	data, err := Build(nil, []domain.Field{domain.FieldTitle, domain.FieldAuthor}, domain.TypeCSV)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 1 || lines[0] != "title,author" {
		t.Fatalf("output = %q, want single header line", string(data))
	}
}

func TestBuildXMLStructure(t *testing.T) {
	books := sampleBooks(3)
	data, err := Build(books, nil, domain.TypeXML)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var parsed struct {
		XMLName xml.Name `xml:"books"`
		Books   []struct {
			Title  []string `xml:"title"`
			Author []string `xml:"author"`
		} `xml:"book"`
	}
	if err := xml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("parse xml: %v", err)
	}
	if len(parsed.Books) != 3 {
		t.Fatalf("books = %d, want 3", len(parsed.Books))
	}
	for i, b := range parsed.Books {
		if len(b.Title) != 1 || len(b.Author) != 1 {
			t.Fatalf("book %d: title/author counts = %d/%d, want exactly one each", i, len(b.Title), len(b.Author))
		}
		if b.Title[0] != books[i].Title || b.Author[0] != books[i].Author {
			t.Fatalf("book %d = %+v, want %s/%s", i, b, books[i].Title, books[i].Author)
		}
	}
}

func TestBuildXMLEmptyRecordsEmitsEmptyRoot(t *testing.T) {
	data, err := Build(nil, []domain.Field{domain.FieldTitle}, domain.TypeXML)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var parsed struct {
		XMLName xml.Name `xml:"books"`
		Books   []struct{} `xml:"book"`
	}
	if err := xml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("parse xml: %v", err)
	}
	if len(parsed.Books) != 0 {
		t.Fatalf("books = %d, want 0", len(parsed.Books))
	}
}

func TestBuildRejectsUnknownField(t *testing.T) {
	_, err := Build(sampleBooks(1), []domain.Field{domain.Field("isbn")}, domain.TypeCSV)
	var invalid *domain.InvalidFieldError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidFieldError", err)
	}
}

func TestBuildDeterministicOutput(t *testing.T) {
	books := sampleBooks(5)
	fields := []domain.Field{domain.FieldID, domain.FieldTitle, domain.FieldAuthor}
	first, err := Build(books, fields, domain.TypeCSV)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	second, err := Build(books, fields, domain.TypeCSV)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("outputs differ for identical input")
	}
}
