// Package pipeline sequences the LLM calls that turn a master CV and a job
// description into the tailored result bundle, and records a history entry
// when a run completes.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hrakoto/tailor/internal/jobpost"
	"github.com/hrakoto/tailor/internal/model"
	"github.com/hrakoto/tailor/internal/parse"
	"github.com/hrakoto/tailor/internal/prompt"
)

// Stage is one discrete LLM call within a run.
type Stage int

// Stages in execution order. StageNone means the run never entered a stage,
// either because it has not started or because an entry guard rejected it.
const (
	StageNone Stage = iota
	StageResume
	StageCoverLetter
	StageInsights
	StageObservations
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageResume:
		return "resume"
	case StageCoverLetter:
		return "cover_letter"
	case StageInsights:
		return "insights"
	case StageObservations:
		return "observations"
	}
	return "unknown"
}

// State is the orchestrator's position in its run lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Progress is emitted when a stage begins.
type Progress struct {
	RunID string
	Stage Stage
}

// ProgressFunc receives progress events during Run.
type ProgressFunc func(Progress)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Orchestrator) { o.onProgress = fn }
}

// WithClock overrides the time source used for history entries.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// Orchestrator runs the four tailoring stages strictly in sequence: at most
// one completion request is in flight, and a stage failure aborts the rest.
// One Orchestrator runs one pipeline at a time; there is no concurrent use.
type Orchestrator struct {
	completer  model.Completer
	history    model.HistoryStore
	profile    model.Profile
	params     model.TailoringParameters
	logger     *slog.Logger
	onProgress ProgressFunc
	now        func() time.Time

	state State
	stage Stage
}

// New creates an orchestrator wired with its collaborators.
func New(completer model.Completer, history model.HistoryStore, profile model.Profile,
	params model.TailoringParameters, logger *slog.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	o := &Orchestrator{
		completer: completer,
		history:   history,
		profile:   profile,
		params:    params,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State { return o.state }

// Stage returns the stage last entered. While Running it is the current
// stage; after a Failed run it is the stage that failed, or StageNone when an
// entry guard rejected the run before any stage began.
func (o *Orchestrator) Stage() Stage { return o.stage }

// Run executes the pipeline. The returned bundle is valid even on error:
// fields of stages completed before the failure stay populated. A history
// entry is appended if and only if the run succeeds.
func (o *Orchestrator) Run(ctx context.Context, masterCV, jobText string) (*model.ResultBundle, error) {
	o.state, o.stage = StateIdle, StageNone
	bundle := &model.ResultBundle{}

	// Entry guards, checked before any prompt is built or request sent.
	if !o.completer.Configured() {
		o.state = StateFailed
		return bundle, model.ErrMissingCredential
	}
	if strings.TrimSpace(masterCV) == "" || strings.TrimSpace(jobText) == "" {
		o.state = StateFailed
		return bundle, model.ErrMissingInput
	}

	runID := uuid.NewString()
	posting := jobpost.Extract(jobText)
	o.logger.Info("tailoring run started",
		"run_id", runID,
		"company", posting.Company,
		"position", posting.Position,
		"embellishment", o.params.EmbellishmentLevel,
	)

	resume, err := o.runStage(ctx, runID, StageResume,
		prompt.Resume(o.profile, o.params, masterCV, jobText))
	if err != nil {
		return bundle, err
	}
	bundle.Resume = resume

	cover, err := o.runStage(ctx, runID, StageCoverLetter,
		prompt.CoverLetter(o.profile, o.params, masterCV, jobText, posting.Company))
	if err != nil {
		return bundle, err
	}
	bundle.CoverLetter = cover

	insights, err := o.runStage(ctx, runID, StageInsights, prompt.Insights(jobText))
	if err != nil {
		return bundle, err
	}
	bundle.CompanyInsights = insights

	obsRaw, err := o.runStage(ctx, runID, StageObservations,
		prompt.Observations(masterCV, jobText))
	if err != nil {
		return bundle, err
	}
	// Malformed observation output is not a run failure; it degrades to none.
	bundle.Observations = parse.Observations(obsRaw)

	o.state = StateSucceeded
	o.logger.Info("tailoring run succeeded",
		"run_id", runID,
		"observations", len(bundle.Observations),
	)

	if err := o.history.Append(o.newEntry(posting)); err != nil {
		return bundle, fmt.Errorf("record history: %w", err)
	}
	return bundle, nil
}

// runStage executes one completion call, advancing the state machine.
// Any client error, including context cancellation at the stage boundary,
// moves the run to StateFailed.
func (o *Orchestrator) runStage(ctx context.Context, runID string, stage Stage, sp prompt.StagePrompt) (string, error) {
	if err := ctx.Err(); err != nil {
		o.state, o.stage = StateFailed, stage
		return "", fmt.Errorf("%s stage: %w", stage, err)
	}

	o.state, o.stage = StateRunning, stage
	if o.onProgress != nil {
		o.onProgress(Progress{RunID: runID, Stage: stage})
	}
	o.logger.Debug("stage started", "run_id", runID, "stage", stage.String())

	text, err := o.completer.Complete(ctx,
		[]model.Message{{Role: model.RoleUser, Content: sp.User}}, sp.System)
	if err != nil {
		o.state = StateFailed
		o.logger.Warn("stage failed", "run_id", runID, "stage", stage.String(), "error", err)
		return "", fmt.Errorf("%s stage: %w", stage, err)
	}
	return text, nil
}

func (o *Orchestrator) newEntry(posting model.JobPosting) model.HistoryEntry {
	now := o.now()
	return model.HistoryEntry{
		ID:       now.UTC().Format(time.RFC3339Nano),
		Company:  posting.Company,
		Position: posting.Position,
		Date:     now.Format("Jan 2, 2006"),
		Status:   model.StatusGenerated,
	}
}
