package storage

import (
	"context"
	"testing"

	"gorm.io/datatypes"
)

func openTestDB(t *testing.T) *RunRepository {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return NewRunRepository(db)
}

func TestRunRepository_SaveAndFind(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	record := &PipelineRecord{
		ID:         "run-1",
		VoiceID:    "v123",
		SourceLang: "en",
		TargetLang: "tr",
		Stage:      "synthesized",
		Progress:   100,
		Metadata:   datatypes.JSON([]byte(`{"preset":"balanced"}`)),
	}
	if err := repo.Save(ctx, record); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	found, err := repo.FindByID(ctx, "run-1")
	if err != nil {
		t.Fatalf("FindByID() failed: %v", err)
	}
	if found == nil {
		t.Fatal("expected record, got nil")
	}
	if found.VoiceID != "v123" || found.TargetLang != "tr" {
		t.Errorf("record round-trip mismatch: %+v", found)
	}
}

func TestRunRepository_FindMissing(t *testing.T) {
	repo := openTestDB(t)

	found, err := repo.FindByID(context.Background(), "absent")
	if err != nil {
		t.Fatalf("FindByID() failed: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for missing record, got %+v", found)
	}
}

func TestRunRepository_Update(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	record := &PipelineRecord{ID: "run-2", Stage: "recorded", Progress: 25}
	if err := repo.Save(ctx, record); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	record.Stage = "transcribed"
	record.Progress = 50
	record.Transcript = "hello world"
	if err := repo.Update(ctx, record); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	found, err := repo.FindByID(ctx, "run-2")
	if err != nil {
		t.Fatalf("FindByID() failed: %v", err)
	}
	if found.Stage != "transcribed" || found.Progress != 50 {
		t.Errorf("update not persisted: %+v", found)
	}
}

func TestVoiceRepository_CRUD(t *testing.T) {
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	repo := NewVoiceRepository(db)
	ctx := context.Background()

	profile := &VoiceProfile{
		VoiceID:  "voice-a",
		Name:     "narrator",
		Provider: "elevenlabs",
	}
	if err := repo.Save(ctx, profile); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	found, err := repo.FindByVoiceID(ctx, "voice-a")
	if err != nil {
		t.Fatalf("FindByVoiceID() failed: %v", err)
	}
	if found == nil || found.Name != "narrator" {
		t.Fatalf("unexpected profile: %+v", found)
	}

	profiles, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("List() returned %d profiles, expected 1", len(profiles))
	}

	if err := repo.Delete(ctx, "voice-a"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	found, err = repo.FindByVoiceID(ctx, "voice-a")
	if err != nil {
		t.Fatalf("FindByVoiceID() after delete failed: %v", err)
	}
	if found != nil {
		t.Errorf("profile still present after delete: %+v", found)
	}
}
