package model

import "context"

// Message is a single role-tagged chat message sent to the completion endpoint.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Message roles understood by the provider.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Completer sends one completion request and returns the raw model text.
// Implemented by llm.Client; mocked in pipeline tests.
type Completer interface {
	// Configured reports whether a credential is attached. The orchestrator
	// checks this before building any prompt or touching the network.
	Configured() bool
	Complete(ctx context.Context, messages []Message, systemPrompt string) (string, error)
}

// Profile describes the user whose CV is being tailored. It is read at the
// start of a run and never mutated by the pipeline.
type Profile struct {
	Name          string `json:"name"`
	Gender        string `json:"gender"`
	Language      string `json:"language"`
	DiscourseType string `json:"discourseType"`
}

// Profile enum values.
const (
	GenderMale      = "male"
	GenderFemale    = "female"
	GenderNonBinary = "non-binary"
	GenderUnset     = ""
)

var languages = map[string]bool{"en": true, "fr": true, "zh": true, "mg": true}

var discourseTypes = map[string]bool{
	"professional": true,
	"creative":     true,
	"academic":     true,
	"technical":    true,
}

// ValidLanguage reports whether code is a supported language code.
func ValidLanguage(code string) bool { return languages[code] }

// ValidDiscourseType reports whether t is a supported document style.
func ValidDiscourseType(t string) bool { return discourseTypes[t] }

// ValidGender reports whether g is a supported gender value (empty allowed).
func ValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderNonBinary, GenderUnset:
		return true
	}
	return false
}

// DefaultProfile is used until the user runs setup.
func DefaultProfile() Profile {
	return Profile{Language: "en", DiscourseType: "professional"}
}

// TailoringParameters are the user-tunable knobs for one run.
// EmbellishmentLevel is passed verbatim into prompt text; the model, not this
// program, decides what it means for factual accuracy.
type TailoringParameters struct {
	EmbellishmentLevel int
}

// Embellishment bounds.
const (
	MinEmbellishment     = 1
	MaxEmbellishment     = 10
	DefaultEmbellishment = 5
)

// JobPosting is the raw job description plus best-effort derived fields.
type JobPosting struct {
	RawText  string
	Company  string // sentinel "the company" when not found
	Position string // sentinel "the position" when not found
}

// ResultBundle holds the four artifacts of a tailoring run. Fields fill in
// stage order; a failed run leaves the fields of completed stages intact.
type ResultBundle struct {
	Resume          string
	CoverLetter     string
	CompanyInsights string
	Observations    []Observation
}

// Observation is one model-generated remark about the CV/job match.
type Observation struct {
	Kind    string `json:"type"`
	Message string `json:"message"`
}

// Observation kinds. The model is asked for these three but is not trusted to
// comply; NormalizeKind maps anything unrecognized to info.
const (
	ObservationSuccess = "success"
	ObservationInfo    = "info"
	ObservationWarning = "warning"
)

// NormalizeKind collapses arbitrary model-supplied kind strings to a known kind.
func NormalizeKind(kind string) string {
	switch kind {
	case ObservationSuccess, ObservationWarning:
		return kind
	}
	return ObservationInfo
}

// JobSuggestion is one role the model thinks fits the master CV.
type JobSuggestion struct {
	Title   string `json:"title"`
	Company string `json:"company"`
}

// HistoryEntry records one fully successful tailoring run. Entries are never
// mutated; the ledger only grows or is cleared whole.
type HistoryEntry struct {
	ID       string // timestamp-derived, unique per run
	Company  string
	Position string
	Date     string // display-formatted
	Status   string
}

// StatusGenerated is the status written for a completed run.
const StatusGenerated = "generated"

// HistoryStore is the append-only ledger of prior runs, most recent first.
type HistoryStore interface {
	Append(entry HistoryEntry) error
	List() ([]HistoryEntry, error)
	Clear() error
}

// SettingsStore persists the profile record, the provider credential, and the
// master CV between sessions.
type SettingsStore interface {
	SaveProfile(p Profile) error
	LoadProfile() (Profile, bool, error)
	SaveAPIKey(key string) error
	LoadAPIKey() (string, error)
	SaveMasterCV(text string) error
	LoadMasterCV() (string, error)
}
