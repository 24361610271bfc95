package player

import (
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Uses a binary that swallows its arguments and exits at once, standing in
// for a track reaching its -autoexit end.
func newExitedBackend(t *testing.T) *FFPlayBackend {
	t.Helper()
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("no 'true' binary available")
	}

	b := NewFFPlayBackend("true")
	require.NoError(t, b.Load("ignored.mp3"))
	require.NoError(t, b.Play())

	require.Eventually(t, func() bool { return !b.IsBusy() },
		5*time.Second, 10*time.Millisecond, "process never exited")
	return b
}

func TestFFPlayBackend_ControlsAfterNaturalExit(t *testing.T) {
	b := newExitedBackend(t)

	// Pause and resume on a finished track are quiet no-ops.
	assert.NoError(t, b.Pause())
	assert.NoError(t, b.Resume())
	assert.NoError(t, b.Stop())
	assert.False(t, b.IsBusy())
}

func TestFFPlayBackend_PlayWithoutLoad(t *testing.T) {
	b := NewFFPlayBackend("true")
	assert.Error(t, b.Play())
}
