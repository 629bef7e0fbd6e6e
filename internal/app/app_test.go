package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLayoutMissingFile(t *testing.T) {
	doc, err := loadLayout(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil || doc != nil {
		t.Fatalf("expected no layout and no error, got %v %v", doc, err)
	}
	doc, err = loadLayout("")
	if err != nil || doc != nil {
		t.Fatalf("expected nothing for an empty path, got %v %v", doc, err)
	}
}

func TestLoadLayoutReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desk.yaml")
	data := []byte("windows:\n  - id: a\n    title: Alpha\n    width: 20\n    height: 6\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := loadLayout(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Windows) != 1 || doc.Windows[0].Title != "Alpha" {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestLoadLayoutRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desk.yaml")
	if err := os.WriteFile(path, []byte("windows:\n  - title: A\n    bogus: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := loadLayout(path); err == nil {
		t.Fatalf("expected an unknown key to fail")
	}
}
