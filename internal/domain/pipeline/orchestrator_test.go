package pipeline

import (
	"context"
	"errors"
	"os"
	"testing"

	"echominds-server-go/internal/domain/audio"
	"echominds-server-go/internal/domain/providers"
	"echominds-server-go/internal/domain/text"
	"echominds-server-go/internal/domain/translate"
)

type fakeTranscriber struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioData []byte, lang text.Language) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeTranslatorProvider struct {
	out   string
	err   error
	calls int
}

func (f *fakeTranslatorProvider) Translate(ctx context.Context, content string, source, target text.Language) (string, error) {
	f.calls++
	return f.out, f.err
}

func (f *fakeTranslatorProvider) Detect(ctx context.Context, content string) (text.Language, error) {
	return text.LangEnglish, nil
}

type fakeSynthesizer struct {
	audio []byte
	err   error
	calls int
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, content, voiceID string, opts providers.SynthesisOptions) ([]byte, error) {
	f.calls++
	return f.audio, f.err
}

func testAsset(seconds float64) *audio.Asset {
	frames := int(seconds * 44100)
	return audio.NewAsset(make([]int16, frames), 44100, 1)
}

func newDeps(t *testing.T, tr *fakeTranscriber, tl *fakeTranslatorProvider, sy *fakeSynthesizer) Deps {
	t.Helper()
	return Deps{
		Transcriber: tr,
		Translator:  translate.NewService(tl, translate.Options{}),
		Synthesizer: sy,
		OutputDir:   t.TempDir(),
	}
}

func TestOrchestrator_FullRun(t *testing.T) {
	tr := &fakeTranscriber{text: "hello world"}
	tl := &fakeTranslatorProvider{out: "merhaba dünya"}
	sy := &fakeSynthesizer{audio: []byte("mp3-bytes")}
	orch := NewOrchestrator(newDeps(t, tr, tl, sy))

	var checkpoints []int
	run, err := orch.Execute(context.Background(), Request{
		Asset:   testAsset(10),
		VoiceID: "v123",
		Source:  text.LangEnglish,
		Target:  text.LangTurkish,
		OnProgress: func(stage Stage, progress int) {
			checkpoints = append(checkpoints, progress)
		},
	})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if run.Stage != StageSynthesized {
		t.Errorf("stage = %q, expected synthesized", run.Stage)
	}
	if run.Transcript != "hello world" || run.Translation != "merhaba dünya" {
		t.Errorf("texts = %q / %q", run.Transcript, run.Translation)
	}
	if run.Progress != ProgressDone {
		t.Errorf("progress = %d, expected 100", run.Progress)
	}

	want := []int{25, 50, 75, 100}
	if len(checkpoints) != len(want) {
		t.Fatalf("checkpoints = %v, expected %v", checkpoints, want)
	}
	for i, p := range want {
		if checkpoints[i] != p {
			t.Errorf("checkpoint %d = %d, expected %d", i, checkpoints[i], p)
		}
	}

	data, err := os.ReadFile(run.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "mp3-bytes" {
		t.Errorf("output content mismatch")
	}
	if run.InputSeconds < 9.99 || run.InputSeconds > 10.01 {
		t.Errorf("input seconds = %.3f, expected ~10", run.InputSeconds)
	}
}

func TestOrchestrator_EmptyTranscriptGatesRun(t *testing.T) {
	tr := &fakeTranscriber{text: "   "}
	tl := &fakeTranslatorProvider{out: "unreachable"}
	sy := &fakeSynthesizer{audio: []byte("x")}
	orch := NewOrchestrator(newDeps(t, tr, tl, sy))

	run, err := orch.Execute(context.Background(), Request{
		Asset:   testAsset(5),
		VoiceID: "v123",
		Source:  text.LangEnglish,
		Target:  text.LangTurkish,
	})
	if err == nil {
		t.Fatal("expected error for empty transcript")
	}
	if run.Reason != FailTranscriptionEmpty {
		t.Errorf("reason = %q, expected transcription_empty", run.Reason)
	}
	if tl.calls != 0 {
		t.Errorf("translator called %d times after empty transcript", tl.calls)
	}
	if sy.calls != 0 {
		t.Errorf("synthesizer called %d times after empty transcript", sy.calls)
	}
}

func TestOrchestrator_TranslationFailureGatesSynthesis(t *testing.T) {
	tr := &fakeTranscriber{text: "hello"}
	tl := &fakeTranslatorProvider{err: errors.New("service down")}
	sy := &fakeSynthesizer{audio: []byte("x")}
	orch := NewOrchestrator(newDeps(t, tr, tl, sy))

	run, err := orch.Execute(context.Background(), Request{
		Asset:   testAsset(5),
		VoiceID: "v123",
		Source:  text.LangEnglish,
		Target:  text.LangTurkish,
	})
	if err == nil {
		t.Fatal("expected error for failed translation")
	}
	if run.Reason != FailTranslationEmpty {
		t.Errorf("reason = %q, expected translation_empty", run.Reason)
	}
	if run.Stage != StageTranscribed {
		t.Errorf("stage = %q, expected to stop at transcribed", run.Stage)
	}
	if run.Progress != ProgressTranslating {
		t.Errorf("progress = %d, expected the reported checkpoint %d", run.Progress, ProgressTranslating)
	}
	if sy.calls != 0 {
		t.Errorf("synthesizer called %d times after failed translation", sy.calls)
	}
}

func TestOrchestrator_SynthesisFailure(t *testing.T) {
	tr := &fakeTranscriber{text: "hello"}
	tl := &fakeTranslatorProvider{out: "merhaba"}
	sy := &fakeSynthesizer{err: errors.New("quota exceeded")}
	orch := NewOrchestrator(newDeps(t, tr, tl, sy))

	run, err := orch.Execute(context.Background(), Request{
		Asset:   testAsset(5),
		VoiceID: "v123",
		Source:  text.LangEnglish,
		Target:  text.LangTurkish,
	})
	if err == nil {
		t.Fatal("expected error for failed synthesis")
	}
	if run.Reason != FailSynthesis {
		t.Errorf("reason = %q, expected synthesis_failed", run.Reason)
	}
	if run.Stage != StageTranslated {
		t.Errorf("stage = %q, expected to stop at translated", run.Stage)
	}
	if run.Progress != ProgressSynthesizing {
		t.Errorf("progress = %d, expected the reported checkpoint %d", run.Progress, ProgressSynthesizing)
	}
}

func TestOrchestrator_RejectsInvalidInput(t *testing.T) {
	tr := &fakeTranscriber{text: "hello"}
	tl := &fakeTranslatorProvider{out: "merhaba"}
	sy := &fakeSynthesizer{audio: []byte("x")}
	orch := NewOrchestrator(newDeps(t, tr, tl, sy))

	// 0.1s is below the transcription minimum.
	run, err := orch.Execute(context.Background(), Request{
		Asset:   testAsset(0.1),
		VoiceID: "v123",
		Source:  text.LangEnglish,
		Target:  text.LangTurkish,
	})
	if err == nil {
		t.Fatal("expected error for invalid input")
	}
	if run.Reason != FailValidation {
		t.Errorf("reason = %q, expected validation_failed", run.Reason)
	}
	if tr.calls != 0 {
		t.Errorf("transcriber called %d times for invalid input", tr.calls)
	}
}

func TestRun_ForwardOnlyStages(t *testing.T) {
	run := NewRun("v1", text.LangEnglish, text.LangTurkish)

	if err := run.Advance(StageRecorded); err != nil {
		t.Fatalf("Advance(recorded) failed: %v", err)
	}
	if err := run.Advance(StageTranscribed); err != nil {
		t.Fatalf("Advance(transcribed) failed: %v", err)
	}
	if err := run.Advance(StageRecorded); err == nil {
		t.Error("moving backward should fail")
	}
	if err := run.Advance(StageTranscribed); err == nil {
		t.Error("re-entering the current stage should fail")
	}

	run.Fail(FailSynthesis)
	if err := run.Advance(StageTranslated); err == nil {
		t.Error("advancing a failed run should fail")
	}
}

func TestRun_FirstFailureWins(t *testing.T) {
	run := NewRun("v1", text.LangEnglish, text.LangTurkish)
	run.Fail(FailTranscriptionEmpty)
	run.Fail(FailSynthesis)
	if run.Reason != FailTranscriptionEmpty {
		t.Errorf("reason = %q, first failure should stick", run.Reason)
	}
}

func TestEstimateSpeechSeconds(t *testing.T) {
	// 150 words at 150 wpm is one minute.
	words := make([]byte, 0)
	for i := 0; i < 150; i++ {
		words = append(words, []byte("word ")...)
	}
	got := EstimateSpeechSeconds(string(words))
	if got < 59.9 || got > 60.1 {
		t.Errorf("EstimateSpeechSeconds() = %.2f, expected ~60", got)
	}
	if EstimateSpeechSeconds("") != 0 {
		t.Error("empty text should estimate zero")
	}
}
