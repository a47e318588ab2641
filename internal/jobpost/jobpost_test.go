package jobpost

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hrakoto/tailor/internal/model"
)

func TestExtract_CompanyAndPosition(t *testing.T) {
	text := "Company: Acme Corp\nPosition: Staff Engineer\n\nWe build anvils."
	p := Extract(text)
	if p.Company != "Acme Corp" {
		t.Errorf("company = %q", p.Company)
	}
	if p.Position != "Staff Engineer" {
		t.Errorf("position = %q", p.Position)
	}
}

func TestExtract_TitleLabel(t *testing.T) {
	p := Extract("title: Backend Developer")
	if p.Position != "Backend Developer" {
		t.Errorf("position = %q, want title: line honored", p.Position)
	}
}

func TestExtract_CaseInsensitive(t *testing.T) {
	p := Extract("COMPANY: Globex\nTITLE: Engineer")
	if p.Company != "Globex" || p.Position != "Engineer" {
		t.Errorf("got %+v", p)
	}
}

func TestExtract_Sentinels(t *testing.T) {
	p := Extract("A job ad that never names anyone.")
	if p.Company != CompanyFallback {
		t.Errorf("company = %q, want sentinel", p.Company)
	}
	if p.Position != PositionFallback {
		t.Errorf("position = %q, want sentinel", p.Position)
	}
}

func TestExtract_EmptyValueKeepsSentinel(t *testing.T) {
	p := Extract("Company:   \nsome text")
	if p.Company != CompanyFallback {
		t.Errorf("company = %q, want sentinel for blank value", p.Company)
	}
}

func TestExtract_KeepsRawText(t *testing.T) {
	text := "Company: X\nrest of ad"
	if p := Extract(text); p.RawText != text {
		t.Errorf("raw text mutated: %q", p.RawText)
	}
}

func TestReadDocument_TxtAndMd(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"cv.txt", "cv.md", "CV.MD"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := ReadDocument(path)
		if err != nil {
			t.Errorf("ReadDocument(%s): %v", name, err)
		}
		if got != "content" {
			t.Errorf("ReadDocument(%s) = %q", name, got)
		}
	}
}

func TestReadDocument_RejectsOtherTypes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.pdf")
	if err := os.WriteFile(path, []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadDocument(path)
	if !errors.Is(err, model.ErrUnsupportedFile) {
		t.Errorf("got %v, want ErrUnsupportedFile", err)
	}
}

func TestReadDocument_MissingFile(t *testing.T) {
	_, err := ReadDocument(filepath.Join(t.TempDir(), "nope.md"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
