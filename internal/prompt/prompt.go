// Package prompt builds the role-tagged instruction strings for every
// pipeline stage. Builders are pure: same inputs, same strings, no I/O and no
// clock, so prompt construction is testable on its own.
package prompt

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/hrakoto/tailor/internal/model"
)

//go:embed templates/resume.md
var resumeRaw string

//go:embed templates/cover_letter.md
var coverLetterRaw string

//go:embed templates/insights.md
var insightsRaw string

//go:embed templates/observations.md
var observationsRaw string

//go:embed templates/format_cv.md
var formatCVRaw string

//go:embed templates/enhance_cv.md
var enhanceCVRaw string

//go:embed templates/suggestions.md
var suggestionsRaw string

// Parsed once at package init; reused on every build.
var (
	resumeTmpl      = template.Must(template.New("resume").Parse(resumeRaw))
	coverLetterTmpl = template.Must(template.New("cover_letter").Parse(coverLetterRaw))
	formatCVTmpl    = template.Must(template.New("format_cv").Parse(formatCVRaw))
	enhanceCVTmpl   = template.Must(template.New("enhance_cv").Parse(enhanceCVRaw))
)

// StagePrompt is one stage's system instruction plus user content.
type StagePrompt struct {
	System string
	User   string
}

type stageData struct {
	Name          string
	Gender        string
	Language      string
	Discourse     string
	Company       string
	Embellishment int
}

func render(tmpl *template.Template, data stageData) string {
	var b strings.Builder
	// Templates reference only stageData fields; execution cannot fail.
	_ = tmpl.Execute(&b, data)
	return strings.TrimSpace(b.String())
}

func profileData(p model.Profile, params model.TailoringParameters) stageData {
	return stageData{
		Name:          p.Name,
		Gender:        p.Gender,
		Language:      p.Language,
		Discourse:     p.DiscourseType,
		Embellishment: params.EmbellishmentLevel,
	}
}

// cvAndJob is the shared user content for stages that see both documents.
func cvAndJob(masterCV, job string) string {
	return "Master CV:\n\n" + masterCV + "\n\nJob Description:\n\n" + job
}

// Resume builds the tailored-résumé stage prompt.
func Resume(p model.Profile, params model.TailoringParameters, masterCV, job string) StagePrompt {
	return StagePrompt{
		System: render(resumeTmpl, profileData(p, params)),
		User:   cvAndJob(masterCV, job),
	}
}

// CoverLetter builds the cover-letter stage prompt, addressed to the hiring
// manager at the (possibly sentinel) company name.
func CoverLetter(p model.Profile, params model.TailoringParameters, masterCV, job, company string) StagePrompt {
	data := profileData(p, params)
	data.Company = company
	return StagePrompt{
		System: render(coverLetterTmpl, data),
		User:   cvAndJob(masterCV, job),
	}
}

// Insights builds the company-insights stage prompt. Only the job description
// is sent; the CV is irrelevant to this stage.
func Insights(job string) StagePrompt {
	return StagePrompt{
		System: strings.TrimSpace(insightsRaw),
		User:   "Job Description:\n\n" + job,
	}
}

// Observations builds the structured-observations stage prompt. The JSON
// array shape is a request to the model, not a guarantee; parse leniently.
func Observations(masterCV, job string) StagePrompt {
	return StagePrompt{
		System: strings.TrimSpace(observationsRaw),
		User:   cvAndJob(masterCV, job),
	}
}

// FormatCV builds the import-time formatting prompt.
func FormatCV(p model.Profile, cv string) StagePrompt {
	return StagePrompt{
		System: render(formatCVTmpl, stageData{Name: p.Name}),
		User:   "Format this CV:\n\n" + cv,
	}
}

// EnhanceCV builds the master-CV enhancement prompt.
func EnhanceCV(p model.Profile, cv string) StagePrompt {
	return StagePrompt{
		System: render(enhanceCVTmpl, stageData{Language: p.Language}),
		User:   cv,
	}
}

// JobSuggestions builds the job-suggestion prompt.
func JobSuggestions(cv string) StagePrompt {
	return StagePrompt{
		System: strings.TrimSpace(suggestionsRaw),
		User:   "CV Content:\n\n" + cv,
	}
}
