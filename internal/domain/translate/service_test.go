package translate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"echominds-server-go/internal/domain/text"
)

// fakeTranslator reverses words and counts provider calls.
type fakeTranslator struct {
	calls      int
	detectLang text.Language
	failOn     string
}

func (f *fakeTranslator) Translate(ctx context.Context, content string, source, target text.Language) (string, error) {
	f.calls++
	if f.failOn != "" && strings.Contains(content, f.failOn) {
		return "", errors.New("provider unavailable")
	}
	return "[" + string(target) + "] " + content, nil
}

func (f *fakeTranslator) Detect(ctx context.Context, content string) (text.Language, error) {
	if f.detectLang == "" {
		return "", errors.New("detection failed")
	}
	return f.detectLang, nil
}

func TestService_SameLanguageShortCircuit(t *testing.T) {
	fake := &fakeTranslator{}
	svc := NewService(fake, Options{})

	got, err := svc.Translate(context.Background(), "hello world", text.LangEnglish, text.LangEnglish)
	if err != nil {
		t.Fatalf("Translate() failed: %v", err)
	}
	if got != "hello world" {
		t.Errorf("same-language translate changed the text: %q", got)
	}
	if fake.calls != 0 {
		t.Errorf("provider called %d times, expected 0", fake.calls)
	}
}

func TestService_AutoDetectSameLanguage(t *testing.T) {
	fake := &fakeTranslator{detectLang: text.LangTurkish}
	svc := NewService(fake, Options{})

	got, err := svc.Translate(context.Background(), "merhaba", text.LangAuto, text.LangTurkish)
	if err != nil {
		t.Fatalf("Translate() failed: %v", err)
	}
	if got != "merhaba" || fake.calls != 0 {
		t.Errorf("detected same language should short-circuit, got %q after %d calls", got, fake.calls)
	}
}

func TestService_DetectionFailureDefaultsToEnglish(t *testing.T) {
	fake := &fakeTranslator{}
	svc := NewService(fake, Options{})

	got, err := svc.Translate(context.Background(), "hello", text.LangAuto, text.LangEnglish)
	if err != nil {
		t.Fatalf("Translate() failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("fallback source en should short-circuit en target, got %q", got)
	}
}

func TestService_EmptyInput(t *testing.T) {
	svc := NewService(&fakeTranslator{}, Options{})
	if _, err := svc.Translate(context.Background(), "   ", text.LangEnglish, text.LangTurkish); err == nil {
		t.Error("expected error for blank input")
	}
}

func TestService_TranslatesShortText(t *testing.T) {
	fake := &fakeTranslator{}
	svc := NewService(fake, Options{})

	got, err := svc.Translate(context.Background(), "hello", text.LangEnglish, text.LangTurkish)
	if err != nil {
		t.Fatalf("Translate() failed: %v", err)
	}
	if got != "[tr] hello" {
		t.Errorf("Translate() = %q", got)
	}
	if fake.calls != 1 {
		t.Errorf("provider called %d times, expected 1", fake.calls)
	}
}

func TestService_LongTextChunked(t *testing.T) {
	fake := &fakeTranslator{}
	svc := NewService(fake, Options{MaxChunkSize: 40})

	content := "First sentence here. Second sentence here. Third sentence here."
	got, err := svc.Translate(context.Background(), content, text.LangEnglish, text.LangGerman)
	if err != nil {
		t.Fatalf("Translate() failed: %v", err)
	}
	if fake.calls < 2 {
		t.Errorf("expected chunked translation, provider called %d times", fake.calls)
	}
	if !strings.Contains(got, "[de]") {
		t.Errorf("unexpected result %q", got)
	}
}

func TestService_FailedChunksAreSkipped(t *testing.T) {
	fake := &fakeTranslator{failOn: "Second"}
	svc := NewService(fake, Options{MaxChunkSize: 25})

	content := "First sentence here. Second sentence here. Third sentence here."
	got, err := svc.Translate(context.Background(), content, text.LangEnglish, text.LangGerman)
	if err != nil {
		t.Fatalf("Translate() failed: %v", err)
	}
	if strings.Contains(got, "Second") {
		t.Errorf("failed chunk leaked into output: %q", got)
	}
	if !strings.Contains(got, "First") || !strings.Contains(got, "Third") {
		t.Errorf("surviving chunks missing from output: %q", got)
	}
}

func TestService_AllChunksFailed(t *testing.T) {
	fake := &fakeTranslator{failOn: "sentence"}
	svc := NewService(fake, Options{MaxChunkSize: 25})

	content := "First sentence here. Second sentence here. Third sentence here."
	if _, err := svc.Translate(context.Background(), content, text.LangEnglish, text.LangGerman); err == nil {
		t.Error("expected error when every chunk fails")
	}
}

func TestService_CacheHitSkipsProvider(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewCache(mr.Addr(), 0, time.Hour)
	defer cache.Close()

	fake := &fakeTranslator{}
	svc := NewService(fake, Options{Cache: cache})
	ctx := context.Background()

	first, err := svc.Translate(ctx, "hello", text.LangEnglish, text.LangTurkish)
	if err != nil {
		t.Fatalf("first Translate() failed: %v", err)
	}
	second, err := svc.Translate(ctx, "hello", text.LangEnglish, text.LangTurkish)
	if err != nil {
		t.Fatalf("second Translate() failed: %v", err)
	}

	if first != second {
		t.Errorf("cache returned different result: %q vs %q", first, second)
	}
	if fake.calls != 1 {
		t.Errorf("provider called %d times, expected 1 (second hit from cache)", fake.calls)
	}
}

func TestService_CacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewCache(mr.Addr(), 0, time.Second)
	defer cache.Close()

	fake := &fakeTranslator{}
	svc := NewService(fake, Options{Cache: cache})
	ctx := context.Background()

	if _, err := svc.Translate(ctx, "hello", text.LangEnglish, text.LangTurkish); err != nil {
		t.Fatalf("Translate() failed: %v", err)
	}
	mr.FastForward(2 * time.Second)
	if _, err := svc.Translate(ctx, "hello", text.LangEnglish, text.LangTurkish); err != nil {
		t.Fatalf("Translate() after expiry failed: %v", err)
	}
	if fake.calls != 2 {
		t.Errorf("provider called %d times, expected 2 after TTL expiry", fake.calls)
	}
}
