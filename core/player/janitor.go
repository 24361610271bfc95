package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tunevault/logger"

	"github.com/fsnotify/fsnotify"
)

// Janitor keeps the scratch directory from accumulating leftover playback
// files: it sweeps once on start, then re-sweeps whenever a new scratch
// file appears. Files newer than maxAge are left alone so an unrelated
// player instance sharing the directory is never undercut.
type Janitor struct {
	dir     string
	maxAge  time.Duration
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewJanitor creates a janitor for dir. maxAge is the retention window for
// scratch files.
func NewJanitor(dir string, maxAge time.Duration) *Janitor {
	return &Janitor{dir: dir, maxAge: maxAge, done: make(chan struct{})}
}

// Start sweeps the directory and begins watching it.
func (j *Janitor) Start() error {
	if err := os.MkdirAll(j.dir, 0755); err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	j.sweep()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create scratch watcher: %w", err)
	}
	if err := watcher.Add(j.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch scratch directory: %w", err)
	}
	j.watcher = watcher

	go j.run()
	return nil
}

// Stop shuts the watcher down. Safe to call when Start failed.
func (j *Janitor) Stop() {
	if j.watcher == nil {
		return
	}
	j.watcher.Close()
	<-j.done
}

func (j *Janitor) run() {
	defer close(j.done)
	for {
		select {
		case event, ok := <-j.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create == fsnotify.Create && isScratchFile(event.Name) {
				j.sweep()
			}
		case err, ok := <-j.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Scratch watcher error", logger.ErrorField(err))
		}
	}
}

// sweep removes scratch files older than the retention window.
func (j *Janitor) sweep() {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		logger.Warn("Failed to read scratch directory", logger.ErrorField(err))
		return
	}

	cutoff := time.Now().Add(-j.maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !isScratchFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(j.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			logger.Warn("Failed to remove stale scratch file",
				logger.String("path", path), logger.ErrorField(err))
			continue
		}
		removed++
	}
	if removed > 0 {
		logger.Info("Removed stale scratch files", logger.Int("count", removed))
	}
}

func isScratchFile(name string) bool {
	return strings.HasPrefix(filepath.Base(name), "song_")
}
