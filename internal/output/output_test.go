package output

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSink_Deliver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	sink := NewFileSink(dir)

	path, err := sink.Deliver("resume.md", "# Resume")
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if path != filepath.Join(dir, "resume.md") {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# Resume" {
		t.Errorf("content = %q", data)
	}
}

func TestFileSink_Overwrite(t *testing.T) {
	sink := NewFileSink(t.TempDir())
	if _, err := sink.Deliver("a.md", "old"); err != nil {
		t.Fatal(err)
	}
	path, err := sink.Deliver("a.md", "new")
	if err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("content = %q, want overwrite", data)
	}
}
