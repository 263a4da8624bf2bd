package notebook

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/zkbridge/internal/apperr"
)

func notebookDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, MarkerDir), 0o755); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestRoot_FromNestedFile(t *testing.T) {
	root := notebookDir(t)
	nested := filepath.Join(root, "journal", "daily")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	doc := filepath.Join(nested, "today.md")
	if err := os.WriteFile(doc, []byte("# today\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Root(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != root {
		t.Errorf("root = %q, want %q", got, root)
	}
}

func TestRoot_FromRootItself(t *testing.T) {
	root := notebookDir(t)
	got, err := Root(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != root {
		t.Errorf("root = %q, want %q", got, root)
	}
}

func TestRoot_NoMarker(t *testing.T) {
	dir := t.TempDir()
	_, err := Root(filepath.Join(dir, "stray.md"))
	if !errors.Is(err, apperr.ErrNotebookNotFound) {
		t.Errorf("err = %v, want ErrNotebookNotFound", err)
	}
}

func TestRoot_MarkerMustBeDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, MarkerDir), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Root(filepath.Join(dir, "note.md"))
	if !errors.Is(err, apperr.ErrNotebookNotFound) {
		t.Errorf("err = %v, want ErrNotebookNotFound", err)
	}
}

func TestRoot_EmptyPathNotBound(t *testing.T) {
	_, err := Root("")
	if !errors.Is(err, apperr.ErrNotBound) {
		t.Errorf("err = %v, want ErrNotBound", err)
	}
}
