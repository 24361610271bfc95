package player

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"tunevault/logger"
)

// FFPlayBackend plays a file by spawning ffplay. Pause and resume use job
// control signals; Stop kills the process and waits for it to exit, so the
// stream is guaranteed dead before Stop returns.
type FFPlayBackend struct {
	mu sync.Mutex

	binPath string
	path    string
	cmd     *exec.Cmd
	done    chan struct{}
	paused  bool
}

// NewFFPlayBackend creates a backend using the given ffplay binary.
func NewFFPlayBackend(binPath string) *FFPlayBackend {
	if binPath == "" {
		binPath = "ffplay"
	}
	return &FFPlayBackend{binPath: binPath}
}

// Load remembers the file to play. Any running process is stopped first.
func (b *FFPlayBackend) Load(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.stopLocked(); err != nil {
		return err
	}
	b.path = path
	return nil
}

// Play starts ffplay on the loaded file.
func (b *FFPlayBackend) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.path == "" {
		return fmt.Errorf("no file loaded")
	}
	if b.cmd != nil {
		return fmt.Errorf("already playing")
	}

	cmd := exec.Command(b.binPath, "-nodisp", "-autoexit", "-loglevel", "error", b.path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", b.binPath, err)
	}

	done := make(chan struct{})
	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Debug("ffplay exited", logger.ErrorField(err))
		}
		close(done)
	}()

	b.cmd = cmd
	b.done = done
	b.paused = false
	return nil
}

// Pause suspends the ffplay process. A track that already ran to its
// natural -autoexit end is a no-op, not an error.
func (b *FFPlayBackend) Pause() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cmd == nil || b.paused || b.exitedLocked() {
		return nil
	}
	if err := b.cmd.Process.Signal(syscall.SIGSTOP); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return nil
		}
		return fmt.Errorf("failed to pause playback: %w", err)
	}
	b.paused = true
	return nil
}

// Resume continues a suspended ffplay process.
func (b *FFPlayBackend) Resume() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cmd == nil || !b.paused || b.exitedLocked() {
		return nil
	}
	if err := b.cmd.Process.Signal(syscall.SIGCONT); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return nil
		}
		return fmt.Errorf("failed to resume playback: %w", err)
	}
	b.paused = false
	return nil
}

// exitedLocked reports whether the current process has already finished.
func (b *FFPlayBackend) exitedLocked() bool {
	if b.done == nil {
		return true
	}
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// Stop kills the process and blocks until it has exited.
func (b *FFPlayBackend) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stopLocked()
}

func (b *FFPlayBackend) stopLocked() error {
	if b.cmd == nil {
		return nil
	}

	// A stopped process cannot handle the kill until it is continued.
	if b.paused {
		_ = b.cmd.Process.Signal(syscall.SIGCONT)
	}
	if err := b.cmd.Process.Kill(); err != nil && b.cmd.ProcessState == nil {
		logger.Warn("Failed to kill playback process", logger.ErrorField(err))
	}
	<-b.done

	b.cmd = nil
	b.done = nil
	b.paused = false
	return nil
}

// IsBusy reports whether an ffplay process is currently alive.
func (b *FFPlayBackend) IsBusy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cmd == nil {
		return false
	}
	select {
	case <-b.done:
		return false
	default:
		return true
	}
}
