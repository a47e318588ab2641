// Package parse turns loosely-structured model output into typed values.
// The input comes from a non-deterministic generator, so every function here
// degrades to an empty result instead of returning an error; callers never
// see a parse failure.
package parse

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/hrakoto/tailor/internal/model"
)

// Observations decodes a model response that was asked to be a JSON array of
// {"type", "message"} objects. Malformed JSON, a non-array top level, or
// elements without a message all degrade silently.
func Observations(raw string) []model.Observation {
	root, ok := parseArray(raw)
	if !ok {
		return nil
	}

	var out []model.Observation
	for _, el := range root.Array() {
		msg := strings.TrimSpace(el.Get("message").String())
		if msg == "" {
			continue
		}
		out = append(out, model.Observation{
			Kind:    model.NormalizeKind(el.Get("type").String()),
			Message: msg,
		})
	}
	return out
}

// JobSuggestions decodes a model response that was asked to be a JSON array
// of {"title", "company"} objects.
func JobSuggestions(raw string) []model.JobSuggestion {
	root, ok := parseArray(raw)
	if !ok {
		return nil
	}

	var out []model.JobSuggestion
	for _, el := range root.Array() {
		title := strings.TrimSpace(el.Get("title").String())
		if title == "" {
			continue
		}
		out = append(out, model.JobSuggestion{
			Title:   title,
			Company: strings.TrimSpace(el.Get("company").String()),
		})
	}
	return out
}

func parseArray(raw string) (gjson.Result, bool) {
	cleaned := stripCodeFence(raw)
	if !gjson.Valid(cleaned) {
		return gjson.Result{}, false
	}
	root := gjson.Parse(cleaned)
	if !root.IsArray() {
		return gjson.Result{}, false
	}
	return root, true
}

// stripCodeFence removes a surrounding markdown code fence. Models often wrap
// JSON in ```json blocks even when told not to.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Drop a language tag on the fence line ("json", "JSON", ...).
	if idx := strings.Index(text, "\n"); idx >= 0 && !strings.ContainsAny(text[:idx], "[{") {
		text = text[idx+1:]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
