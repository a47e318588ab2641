package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hrakoto/tailor/internal/model"
)

// mockCompleter scripts one response per call and records every prompt.
type mockCompleter struct {
	configured bool
	responses  []string
	failAt     int // call index to fail at, -1 for never
	failErr    error
	calls      int
	systems    []string
	cancel     context.CancelFunc // if set, invoked after the second call
}

func (m *mockCompleter) Configured() bool { return m.configured }

func (m *mockCompleter) Complete(_ context.Context, _ []model.Message, systemPrompt string) (string, error) {
	idx := m.calls
	m.calls++
	m.systems = append(m.systems, systemPrompt)
	if m.cancel != nil && m.calls == 2 {
		m.cancel()
	}
	if m.failAt >= 0 && idx == m.failAt {
		return "", m.failErr
	}
	if idx < len(m.responses) {
		return m.responses[idx], nil
	}
	return "text", nil
}

type mockHistory struct {
	entries   []model.HistoryEntry
	appendErr error
}

func (h *mockHistory) Append(e model.HistoryEntry) error {
	if h.appendErr != nil {
		return h.appendErr
	}
	h.entries = append([]model.HistoryEntry{e}, h.entries...)
	return nil
}

func (h *mockHistory) List() ([]model.HistoryEntry, error) { return h.entries, nil }
func (h *mockHistory) Clear() error                        { h.entries = nil; return nil }

const jobText = "Company: Acme Corp\nPosition: Staff Engineer\n\nBuild anvils with Go."

func newTestOrchestrator(c model.Completer, h model.HistoryStore, opts ...Option) *Orchestrator {
	profile := model.Profile{Name: "Hery", Gender: model.GenderMale, Language: "en", DiscourseType: "professional"}
	params := model.TailoringParameters{EmbellishmentLevel: 5}
	return New(c, h, profile, params, nil, opts...)
}

func TestRun_Success(t *testing.T) {
	completer := &mockCompleter{
		configured: true,
		failAt:     -1,
		responses: []string{
			"# Tailored Resume",
			"Dear Hiring Manager,",
			"## Acme Corp Insights",
			`[{"type":"success","message":"Good match"}]`,
		},
	}
	history := &mockHistory{}
	o := newTestOrchestrator(completer, history)

	bundle, err := o.Run(context.Background(), "my master cv", jobText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if o.State() != StateSucceeded {
		t.Errorf("state = %v, want succeeded", o.State())
	}
	if completer.calls != 4 {
		t.Errorf("calls = %d, want one per stage", completer.calls)
	}
	if bundle.Resume != "# Tailored Resume" ||
		bundle.CoverLetter != "Dear Hiring Manager," ||
		bundle.CompanyInsights != "## Acme Corp Insights" {
		t.Errorf("bundle = %+v", bundle)
	}
	if len(bundle.Observations) != 1 || bundle.Observations[0].Kind != model.ObservationSuccess {
		t.Errorf("observations = %v", bundle.Observations)
	}
}

func TestRun_StageOrder(t *testing.T) {
	completer := &mockCompleter{configured: true, failAt: -1}
	o := newTestOrchestrator(completer, &mockHistory{})

	if _, err := o.Run(context.Background(), "cv", jobText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantMarkers := []string{"resume writer", "career coach", "business analyst", "JSON array"}
	if len(completer.systems) != 4 {
		t.Fatalf("got %d system prompts", len(completer.systems))
	}
	for i, marker := range wantMarkers {
		if !strings.Contains(completer.systems[i], marker) {
			t.Errorf("system[%d] missing %q:\n%s", i, marker, completer.systems[i])
		}
	}
}

func TestRun_ProgressEvents(t *testing.T) {
	completer := &mockCompleter{configured: true, failAt: -1}
	var stages []Stage
	o := newTestOrchestrator(completer, &mockHistory{},
		WithProgress(func(p Progress) { stages = append(stages, p.Stage) }))

	if _, err := o.Run(context.Background(), "cv", jobText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Stage{StageResume, StageCoverLetter, StageInsights, StageObservations}
	if len(stages) != len(want) {
		t.Fatalf("got %d progress events, want %d", len(stages), len(want))
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("event[%d] = %v, want %v", i, stages[i], want[i])
		}
	}
}

func TestRun_MissingCredential(t *testing.T) {
	completer := &mockCompleter{configured: false, failAt: -1}
	history := &mockHistory{}
	o := newTestOrchestrator(completer, history)

	_, err := o.Run(context.Background(), "cv", jobText)
	if !errors.Is(err, model.ErrMissingCredential) {
		t.Fatalf("got %v, want ErrMissingCredential", err)
	}
	if completer.calls != 0 {
		t.Errorf("completer called %d times, want 0", completer.calls)
	}
	if o.State() != StateFailed {
		t.Errorf("state = %v, want failed", o.State())
	}
	if o.Stage() != StageNone {
		t.Errorf("stage = %v, want none for a run rejected before any stage", o.Stage())
	}
	if len(history.entries) != 0 {
		t.Error("history written for a failed run")
	}
}

func TestRun_MissingInput(t *testing.T) {
	completer := &mockCompleter{configured: true, failAt: -1}
	o := newTestOrchestrator(completer, &mockHistory{})

	for _, tc := range []struct{ cv, job string }{
		{"", jobText},
		{"cv", ""},
		{"   ", "  \n "},
	} {
		_, err := o.Run(context.Background(), tc.cv, tc.job)
		if !errors.Is(err, model.ErrMissingInput) {
			t.Errorf("Run(%q, %q) = %v, want ErrMissingInput", tc.cv, tc.job, err)
		}
		if o.Stage() != StageNone {
			t.Errorf("Run(%q, %q) stage = %v, want none", tc.cv, tc.job, o.Stage())
		}
	}
	if completer.calls != 0 {
		t.Errorf("completer called %d times, want 0", completer.calls)
	}
}

func TestRun_FailureAtCoverLetterKeepsResume(t *testing.T) {
	provErr := &model.ProviderError{StatusCode: 500, Message: "overloaded"}
	completer := &mockCompleter{
		configured: true,
		responses:  []string{"# Resume"},
		failAt:     1,
		failErr:    provErr,
	}
	history := &mockHistory{}
	o := newTestOrchestrator(completer, history)

	bundle, err := o.Run(context.Background(), "cv", jobText)

	var pe *model.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("got %v, want wrapped ProviderError", err)
	}
	if o.State() != StateFailed {
		t.Errorf("state = %v, want failed", o.State())
	}
	if o.Stage() != StageCoverLetter {
		t.Errorf("failing stage = %v, want cover_letter", o.Stage())
	}
	if completer.calls != 2 {
		t.Errorf("calls = %d, want abort after failing stage", completer.calls)
	}
	if bundle.Resume != "# Resume" {
		t.Errorf("resume = %q, want stage 1 output preserved", bundle.Resume)
	}
	if bundle.CoverLetter != "" || bundle.CompanyInsights != "" || bundle.Observations != nil {
		t.Errorf("later fields populated on failure: %+v", bundle)
	}
	if len(history.entries) != 0 {
		t.Error("history written for a failed run")
	}
}

func TestRun_MalformedObservationsStillSucceeds(t *testing.T) {
	completer := &mockCompleter{
		configured: true,
		failAt:     -1,
		responses:  []string{"r", "c", "i", "not json at all"},
	}
	history := &mockHistory{}
	o := newTestOrchestrator(completer, history)

	bundle, err := o.Run(context.Background(), "cv", jobText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.State() != StateSucceeded {
		t.Errorf("state = %v, want succeeded despite malformed observations", o.State())
	}
	if len(bundle.Observations) != 0 {
		t.Errorf("observations = %v, want empty", bundle.Observations)
	}
	if len(history.entries) != 1 {
		t.Errorf("history entries = %d, want 1", len(history.entries))
	}
}

func TestRun_HistoryEntryFields(t *testing.T) {
	completer := &mockCompleter{configured: true, failAt: -1}
	history := &mockHistory{}
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	o := newTestOrchestrator(completer, history, WithClock(func() time.Time { return fixed }))

	if _, err := o.Run(context.Background(), "cv", jobText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(history.entries) != 1 {
		t.Fatalf("history entries = %d, want 1", len(history.entries))
	}
	e := history.entries[0]
	if e.Company != "Acme Corp" || e.Position != "Staff Engineer" {
		t.Errorf("entry = %+v, want extracted company/position", e)
	}
	if e.Status != model.StatusGenerated {
		t.Errorf("status = %q", e.Status)
	}
	if e.ID != fixed.Format(time.RFC3339Nano) {
		t.Errorf("id = %q, want timestamp-derived", e.ID)
	}
	if e.Date != "Mar 14, 2026" {
		t.Errorf("date = %q", e.Date)
	}
}

func TestRun_SentinelCompanyInHistory(t *testing.T) {
	completer := &mockCompleter{configured: true, failAt: -1}
	history := &mockHistory{}
	o := newTestOrchestrator(completer, history)

	if _, err := o.Run(context.Background(), "cv", "an ad naming nobody"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if history.entries[0].Company != "the company" || history.entries[0].Position != "the position" {
		t.Errorf("entry = %+v, want sentinels", history.entries[0])
	}
}

func TestRun_CancellationAbortsWithoutHistory(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	completer := &mockCompleter{configured: true, failAt: -1, cancel: cancel}
	history := &mockHistory{}
	o := newTestOrchestrator(completer, history)

	bundle, err := o.Run(ctx, "cv", jobText)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if o.State() != StateFailed {
		t.Errorf("state = %v, want failed", o.State())
	}
	// Two stages completed before the cancellation was observed.
	if completer.calls != 2 {
		t.Errorf("calls = %d, want 2", completer.calls)
	}
	if bundle.Resume == "" || bundle.CoverLetter == "" {
		t.Errorf("completed stage output missing: %+v", bundle)
	}
	if len(history.entries) != 0 {
		t.Error("history written for an aborted run")
	}
}

func TestRun_FreshStatePerRun(t *testing.T) {
	completer := &mockCompleter{configured: true, failAt: 1, failErr: &model.NetworkError{Err: errors.New("down")}}
	o := newTestOrchestrator(completer, &mockHistory{})

	if _, err := o.Run(context.Background(), "cv", jobText); err == nil {
		t.Fatal("expected first run to fail")
	}

	completer.failAt = -1
	bundle, err := o.Run(context.Background(), "cv", jobText)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if o.State() != StateSucceeded {
		t.Errorf("state = %v, want succeeded on fresh run", o.State())
	}
	if bundle.Resume == "" || bundle.CoverLetter == "" || bundle.CompanyInsights == "" {
		t.Errorf("bundle not fully repopulated: %+v", bundle)
	}
}
