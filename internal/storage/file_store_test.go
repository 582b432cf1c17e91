package storage

import (
	"os"
	"testing"
)

func TestFileStoreSaveAndPath(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	name, err := fs.Save("books-123.csv", []byte("title,author\n"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if name != "books-123.csv" {
		t.Fatalf("name = %q, want books-123.csv", name)
	}

	path, ok := fs.Path("books-123.csv")
	if !ok {
		t.Fatalf("expected path for stored file")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "title,author\n" {
		t.Fatalf("content = %q", data)
	}
}

func TestFileStorePathMissingFile(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if _, ok := fs.Path("books-999.csv"); ok {
		t.Fatalf("expected no path for missing file")
	}
}

func TestFileStorePathRejectsTraversal(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	for _, name := range []string{"../secret", "a/b.csv", ".hidden", ""} {
		if _, ok := fs.Path(name); ok {
			t.Fatalf("path accepted unsafe name %q", name)
		}
	}
}
