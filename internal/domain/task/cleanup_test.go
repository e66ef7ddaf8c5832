package task

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeAged(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	stamp := time.Now().Add(-age)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
	return path
}

func TestSweep_RemovesOnlyStaleAudio(t *testing.T) {
	dir := t.TempDir()

	stale := writeAged(t, dir, "recording_1.wav", 48*time.Hour)
	fresh := writeAged(t, dir, "recording_2.wav", time.Hour)
	staleMP3 := writeAged(t, dir, "output_1.mp3", 30*time.Hour)
	notAudio := writeAged(t, dir, "notes.txt", 72*time.Hour)

	task := NewCleanupTask([]string{dir}, 24*time.Hour, time.Hour, nil)
	removed := task.Sweep()
	if removed != 2 {
		t.Errorf("Sweep() removed %d files, expected 2", removed)
	}

	for _, path := range []string{fresh, notAudio} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s should have survived: %v", filepath.Base(path), err)
		}
	}
	for _, path := range []string{stale, staleMP3} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%s should have been removed", filepath.Base(path))
		}
	}
}

func TestSweep_MissingDirIsIgnored(t *testing.T) {
	task := NewCleanupTask([]string{"/nonexistent/path"}, time.Hour, time.Hour, nil)
	if removed := task.Sweep(); removed != 0 {
		t.Errorf("Sweep() on missing dir removed %d", removed)
	}
}

func TestStartStop(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, "old.wav", 48*time.Hour)

	task := NewCleanupTask([]string{dir}, 24*time.Hour, time.Hour, nil)
	task.Start()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(filepath.Join(dir, "old.wav")); os.IsNotExist(err) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	task.Stop()

	if _, err := os.Stat(filepath.Join(dir, "old.wav")); !os.IsNotExist(err) {
		t.Error("initial sweep did not run")
	}
}
