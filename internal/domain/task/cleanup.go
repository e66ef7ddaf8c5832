package task

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"echominds-server-go/internal/platform/logging"
)

// audioExtensions are the only files the cleaner will touch.
var audioExtensions = map[string]bool{
	".wav": true,
	".mp3": true,
	".ogg": true,
}

// CleanupTask periodically removes stale audio files from the temp
// directories. Anything younger than MaxAge, or not an audio file, is
// left alone.
type CleanupTask struct {
	dirs     []string
	maxAge   time.Duration
	interval time.Duration
	logger   *logging.Logger

	stopChan chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

func NewCleanupTask(dirs []string, maxAge, interval time.Duration, logger *logging.Logger) *CleanupTask {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &CleanupTask{
		dirs:     dirs,
		maxAge:   maxAge,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start launches the background loop. The first sweep runs immediately.
func (t *CleanupTask) Start() {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		t.Sweep()
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-t.stopChan:
				return
			case <-ticker.C:
				t.Sweep()
			}
		}
	}()
}

func (t *CleanupTask) Stop() {
	t.once.Do(func() {
		close(t.stopChan)
	})
	t.wg.Wait()
}

// Sweep removes stale audio files once and returns how many went away.
func (t *CleanupTask) Sweep() int {
	cutoff := time.Now().Add(-t.maxAge)
	removed := 0

	for _, dir := range t.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if !audioExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(cutoff) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				if t.logger != nil {
					t.logger.WarnTag("Cleanup", "failed to remove %s: %v", path, err)
				}
				continue
			}
			removed++
		}
	}

	if removed > 0 && t.logger != nil {
		t.logger.InfoTag("Cleanup", "removed %d stale audio files", removed)
	}
	return removed
}
