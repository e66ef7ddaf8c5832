package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/go-mp3"

	"echominds-server-go/internal/domain/audio"
	"echominds-server-go/internal/domain/eventbus"
	"echominds-server-go/internal/domain/providers"
	"echominds-server-go/internal/domain/text"
	"echominds-server-go/internal/domain/translate"
	"echominds-server-go/internal/platform/errors"
	"echominds-server-go/internal/platform/logging"
	"echominds-server-go/internal/platform/storage"
)

// Deps wires the orchestrator to its collaborators. Runs may be nil when
// persistence is not wanted (tests, one-shot tools).
type Deps struct {
	Transcriber providers.Transcriber
	Translator  *translate.Service
	Synthesizer providers.Synthesizer
	Runs        *storage.RunRepository
	Logger      *logging.Logger
	OutputDir   string
}

// Request describes one pipeline execution over an already-captured and
// validated recording.
type Request struct {
	Asset      *audio.Asset
	InputPath  string
	VoiceID    string
	Source     text.Language
	Target     text.Language
	Options    providers.SynthesisOptions
	OnProgress func(stage Stage, progress int)
}

// Orchestrator drives a run through its stages strictly in order. Each
// stage gates the next: an empty transcript, an empty translation or a
// synthesis error stops the run with a reason, and nothing is retried.
type Orchestrator struct {
	deps Deps
}

func NewOrchestrator(deps Deps) *Orchestrator {
	return &Orchestrator{deps: deps}
}

// Execute runs transcription, translation and synthesis sequentially.
// The returned Run always reflects how far execution got; the error
// restates the failure for callers that propagate it.
func (o *Orchestrator) Execute(ctx context.Context, req Request) (*Run, error) {
	run := NewRun(req.VoiceID, req.Source, req.Target)

	validation := audio.Validate(req.Asset, audio.TranscriptionProfile())
	if !validation.OK {
		run.Fail(FailValidation)
		o.finish(ctx, run)
		return run, errors.New(errors.KindPipeline, "execute",
			fmt.Sprintf("input rejected: %s", validation.Detail))
	}

	run.InputPath = req.InputPath
	run.InputSeconds = req.Asset.Seconds()
	if err := run.Advance(StageRecorded); err != nil {
		return run, errors.Wrap(errors.KindPipeline, "execute", "stage transition rejected", err)
	}
	run.Progress = ProgressTranscribing
	o.persist(ctx, run, true)

	// Stage 1: speech to text.
	o.report(req, run, StageRecorded, ProgressTranscribing)
	wav, err := audio.EncodeWAV(req.Asset)
	if err != nil {
		run.Fail(FailValidation)
		o.finish(ctx, run)
		return run, errors.Wrap(errors.KindPipeline, "execute", "failed to encode input", err)
	}
	transcript, err := o.deps.Transcriber.Transcribe(ctx, wav, req.Source)
	if err != nil || strings.TrimSpace(transcript) == "" {
		run.Fail(FailTranscriptionEmpty)
		o.finish(ctx, run)
		if err == nil {
			err = errors.New(errors.KindPipeline, "execute", "transcription produced no text")
		}
		return run, err
	}
	run.Transcript = transcript
	if err := run.Advance(StageTranscribed); err != nil {
		return run, errors.Wrap(errors.KindPipeline, "execute", "stage transition rejected", err)
	}
	run.Progress = ProgressTranslating
	o.persist(ctx, run, false)

	// Stage 2: translation.
	o.report(req, run, StageTranscribed, ProgressTranslating)
	translation, err := o.deps.Translator.Translate(ctx, transcript, req.Source, req.Target)
	if err != nil || strings.TrimSpace(translation) == "" {
		run.Fail(FailTranslationEmpty)
		o.finish(ctx, run)
		if err == nil {
			err = errors.New(errors.KindPipeline, "execute", "translation produced no text")
		}
		return run, err
	}
	run.Translation = translation
	if err := run.Advance(StageTranslated); err != nil {
		return run, errors.Wrap(errors.KindPipeline, "execute", "stage transition rejected", err)
	}
	run.Progress = ProgressSynthesizing
	o.persist(ctx, run, false)

	// Stage 3: speech synthesis in the cloned voice.
	o.report(req, run, StageTranslated, ProgressSynthesizing)
	speech, err := o.deps.Synthesizer.Synthesize(ctx, translation, req.VoiceID, req.Options)
	if err != nil || len(speech) == 0 {
		run.Fail(FailSynthesis)
		o.finish(ctx, run)
		if err == nil {
			err = errors.New(errors.KindPipeline, "execute", "synthesis produced no audio")
		}
		return run, err
	}

	outputPath, err := o.writeOutput(speech)
	if err != nil {
		run.Fail(FailSynthesis)
		o.finish(ctx, run)
		return run, err
	}
	run.OutputPath = outputPath
	run.OutputSeconds = mp3Seconds(speech)
	if err := run.Advance(StageSynthesized); err != nil {
		return run, errors.Wrap(errors.KindPipeline, "execute", "stage transition rejected", err)
	}
	run.Progress = ProgressDone
	o.persist(ctx, run, false)

	o.report(req, run, StageSynthesized, ProgressDone)
	eventbus.PublishAsync(eventbus.EventPipelineDone, eventbus.PipelineEventData{
		RunID:    run.ID,
		Stage:    string(run.Stage),
		Progress: ProgressDone,
	})
	if o.deps.Logger != nil {
		o.deps.Logger.InfoTag("Pipeline", "run %s finished: %.2fs in, %.2fs out, %s",
			run.ID, run.InputSeconds, run.OutputSeconds, outputPath)
	}
	return run, nil
}

func (o *Orchestrator) report(req Request, run *Run, stage Stage, progress int) {
	if req.OnProgress != nil {
		req.OnProgress(stage, progress)
	}
	eventbus.PublishAsync(eventbus.EventPipelineProgress, eventbus.PipelineEventData{
		RunID:    run.ID,
		Stage:    string(stage),
		Progress: progress,
	})
}

// finish records a failed run and publishes the failure event.
func (o *Orchestrator) finish(ctx context.Context, run *Run) {
	o.persist(ctx, run, run.Stage == StageCreated)
	eventbus.PublishAsync(eventbus.EventPipelineFailed, eventbus.PipelineEventData{
		RunID:    run.ID,
		Stage:    string(run.Stage),
		Progress: run.Progress,
		Reason:   string(run.Reason),
	})
	if o.deps.Logger != nil {
		o.deps.Logger.WarnTag("Pipeline", "run %s stopped at %s: %s", run.ID, run.Stage, run.Reason)
	}
}

func (o *Orchestrator) persist(ctx context.Context, run *Run, create bool) {
	if o.deps.Runs == nil {
		return
	}
	record := &storage.PipelineRecord{
		ID:             run.ID,
		VoiceID:        run.VoiceID,
		SourceLang:     string(run.Source),
		TargetLang:     string(run.Target),
		Stage:          string(run.Stage),
		FailReason:     string(run.Reason),
		Transcript:     run.Transcript,
		Translation:    run.Translation,
		InputPath:      run.InputPath,
		OutputPath:     run.OutputPath,
		InputDuration:  run.InputSeconds,
		OutputDuration: run.OutputSeconds,
		Progress:       run.Progress,
	}
	var err error
	if create {
		err = o.deps.Runs.Save(ctx, record)
	} else {
		err = o.deps.Runs.Update(ctx, record)
	}
	if err != nil && o.deps.Logger != nil {
		o.deps.Logger.WarnTag("Pipeline", "failed to persist run %s: %v", run.ID, err)
	}
}

func (o *Orchestrator) writeOutput(speech []byte) (string, error) {
	if err := os.MkdirAll(o.deps.OutputDir, 0o755); err != nil {
		return "", errors.Wrap(errors.KindPipeline, "execute", "failed to create output directory", err)
	}
	path := filepath.Join(o.deps.OutputDir, fmt.Sprintf("output_%d.mp3", time.Now().UnixNano()))
	if err := os.WriteFile(path, speech, 0o644); err != nil {
		return "", errors.Wrap(errors.KindPipeline, "execute", "failed to write output", err)
	}
	return path, nil
}

// mp3Seconds measures playback length by decoding the stream headers.
// Payloads that are not valid MP3 yield zero.
func mp3Seconds(data []byte) float64 {
	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return 0
	}
	if decoder.SampleRate() == 0 {
		return 0
	}
	// Length reports bytes of 16-bit stereo output.
	return float64(decoder.Length()) / 4 / float64(decoder.SampleRate())
}

// EstimateSpeechSeconds predicts how long synthesized speech will run,
// assuming a 150 words-per-minute speaking rate.
func EstimateSpeechSeconds(content string) float64 {
	words := len(strings.Fields(content))
	return float64(words) / 150 * 60
}
