package parse

import (
	"testing"

	"github.com/hrakoto/tailor/internal/model"
)

func TestObservations_NotJSON(t *testing.T) {
	if got := Observations("not json"); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestObservations_ValidArray(t *testing.T) {
	got := Observations(`[{"type":"success","message":"Good match"}]`)
	if len(got) != 1 {
		t.Fatalf("got %d observations, want 1", len(got))
	}
	if got[0].Kind != model.ObservationSuccess || got[0].Message != "Good match" {
		t.Errorf("got %+v", got[0])
	}
}

func TestObservations_TopLevelObject(t *testing.T) {
	if got := Observations(`{"type":"success","message":"m"}`); len(got) != 0 {
		t.Errorf("got %v, want empty for non-array top level", got)
	}
}

func TestObservations_NormalizesUnknownKind(t *testing.T) {
	got := Observations(`[
		{"type":"warning","message":"a"},
		{"type":"banana","message":"b"},
		{"message":"c"}
	]`)
	if len(got) != 3 {
		t.Fatalf("got %d observations, want 3", len(got))
	}
	wantKinds := []string{model.ObservationWarning, model.ObservationInfo, model.ObservationInfo}
	for i, w := range wantKinds {
		if got[i].Kind != w {
			t.Errorf("kind[%d] = %q, want %q", i, got[i].Kind, w)
		}
	}
}

func TestObservations_SkipsEmptyMessages(t *testing.T) {
	got := Observations(`[{"type":"info","message":""},{"type":"info","message":"keep"},"bare string"]`)
	if len(got) != 1 || got[0].Message != "keep" {
		t.Errorf("got %v, want just the non-empty object", got)
	}
}

func TestObservations_FencedJSON(t *testing.T) {
	raw := "```json\n[{\"type\":\"info\",\"message\":\"fenced\"}]\n```"
	got := Observations(raw)
	if len(got) != 1 || got[0].Message != "fenced" {
		t.Errorf("got %v, want fenced content parsed", got)
	}
}

func TestObservations_FencedNoLanguageTag(t *testing.T) {
	raw := "```\n[{\"type\":\"info\",\"message\":\"plain fence\"}]\n```"
	if got := Observations(raw); len(got) != 1 {
		t.Errorf("got %v, want 1", got)
	}
}

func TestObservations_PreservesOrder(t *testing.T) {
	got := Observations(`[{"message":"first"},{"message":"second"},{"message":"third"}]`)
	want := []string{"first", "second", "third"}
	if len(got) != 3 {
		t.Fatalf("got %d observations", len(got))
	}
	for i, w := range want {
		if got[i].Message != w {
			t.Errorf("message[%d] = %q, want %q", i, got[i].Message, w)
		}
	}
}

func TestJobSuggestions_Valid(t *testing.T) {
	got := JobSuggestions(`[{"title":"Backend Engineer","company":"fintech startups"}]`)
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	if got[0].Title != "Backend Engineer" || got[0].Company != "fintech startups" {
		t.Errorf("got %+v", got[0])
	}
}

func TestJobSuggestions_Garbage(t *testing.T) {
	for _, raw := range []string{"", "nope", "{}", `["just","strings"]`} {
		if got := JobSuggestions(raw); len(got) != 0 {
			t.Errorf("JobSuggestions(%q) = %v, want empty", raw, got)
		}
	}
}
