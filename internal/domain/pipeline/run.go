package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"echominds-server-go/internal/domain/text"
)

// Stage is a checkpoint in a run. Stages only move forward; a failed run
// keeps the last stage it reached alongside its failure reason.
type Stage string

const (
	StageCreated     Stage = "created"
	StageRecorded    Stage = "recorded"
	StageTranscribed Stage = "transcribed"
	StageTranslated  Stage = "translated"
	StageSynthesized Stage = "synthesized"
)

// stageOrder fixes the forward-only progression.
var stageOrder = map[Stage]int{
	StageCreated:     0,
	StageRecorded:    1,
	StageTranscribed: 2,
	StageTranslated:  3,
	StageSynthesized: 4,
}

// Progress checkpoints reported as each stage begins or completes.
const (
	ProgressTranscribing = 25
	ProgressTranslating  = 50
	ProgressSynthesizing = 75
	ProgressDone         = 100
)

// FailReason tells which gate stopped a run.
type FailReason string

const (
	FailNone               FailReason = ""
	FailValidation         FailReason = "validation_failed"
	FailTranscriptionEmpty FailReason = "transcription_empty"
	FailTranslationEmpty   FailReason = "translation_empty"
	FailSynthesis          FailReason = "synthesis_failed"
)

// Run carries the state of one clone-and-translate execution. There is no
// automatic retry; a failed run is restarted from scratch as a new Run.
type Run struct {
	ID          string
	VoiceID     string
	Source      text.Language
	Target      text.Language
	Stage       Stage
	Reason      FailReason
	Transcript  string
	Translation string
	InputPath   string
	OutputPath  string
	Progress    int
	CreatedAt   time.Time

	// InputSeconds and OutputSeconds are measured from the audio itself.
	InputSeconds  float64
	OutputSeconds float64
}

func NewRun(voiceID string, source, target text.Language) *Run {
	return &Run{
		ID:        uuid.NewString(),
		VoiceID:   voiceID,
		Source:    source,
		Target:    target,
		Stage:     StageCreated,
		CreatedAt: time.Now(),
	}
}

// Advance moves the run to the next stage. Moving backward or skipping a
// failed run is an error.
func (r *Run) Advance(stage Stage) error {
	if r.Reason != FailNone {
		return fmt.Errorf("run %s already failed with %s", r.ID, r.Reason)
	}
	next, ok := stageOrder[stage]
	if !ok {
		return fmt.Errorf("unknown stage %q", stage)
	}
	if next <= stageOrder[r.Stage] {
		return fmt.Errorf("cannot move from %s back to %s", r.Stage, stage)
	}
	r.Stage = stage
	return nil
}

// Fail marks the run as stopped at its current stage.
func (r *Run) Fail(reason FailReason) {
	if r.Reason == FailNone {
		r.Reason = reason
	}
}

// Failed reports whether a gate stopped the run.
func (r *Run) Failed() bool {
	return r.Reason != FailNone
}
