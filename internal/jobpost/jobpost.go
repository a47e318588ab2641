// Package jobpost handles job-description intake: best-effort field
// extraction and reading the source document from disk.
package jobpost

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hrakoto/tailor/internal/model"
)

// Sentinels used when extraction finds nothing. Prompts read naturally with
// them ("at the company"), so a miss never blocks the pipeline.
const (
	CompanyFallback  = "the company"
	PositionFallback = "the position"
)

var (
	companyPattern  = regexp.MustCompile(`(?i)company:\s*(.+)`)
	positionPattern = regexp.MustCompile(`(?i)(?:position|title):\s*(.+)`)
)

// Extract derives company and position from lines like "Company: Acme Corp"
// and "Position: Staff Engineer". Extraction is advisory: misses yield
// sentinels and never an error.
func Extract(rawText string) model.JobPosting {
	posting := model.JobPosting{
		RawText:  rawText,
		Company:  CompanyFallback,
		Position: PositionFallback,
	}
	if m := companyPattern.FindStringSubmatch(rawText); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			posting.Company = v
		}
	}
	if m := positionPattern.FindStringSubmatch(rawText); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			posting.Position = v
		}
	}
	return posting
}

// ReadDocument reads a plain-text or markdown file. Any other extension is
// rejected with model.ErrUnsupportedFile before the content is touched.
func ReadDocument(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown":
	default:
		return "", model.ErrUnsupportedFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
