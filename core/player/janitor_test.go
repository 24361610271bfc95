package player

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJanitor_SweepsStaleScratchFiles(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "song_1_abcd1234.mp3")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0600))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	fresh := filepath.Join(dir, "song_2_abcd1234.mp3")
	require.NoError(t, os.WriteFile(fresh, []byte("new"), 0600))

	unrelated := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(unrelated, []byte("keep"), 0600))
	require.NoError(t, os.Chtimes(unrelated, old, old))

	j := NewJanitor(dir, time.Hour)
	require.NoError(t, j.Start())
	defer j.Stop()

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.FileExists(t, unrelated)
}

func TestJanitor_StopWithoutStart(t *testing.T) {
	j := NewJanitor(t.TempDir(), time.Hour)
	j.Stop()
}

func TestIsScratchFile(t *testing.T) {
	assert.True(t, isScratchFile("song_12_abcd1234.mp3"))
	assert.True(t, isScratchFile("/tmp/scratch/song_12_abcd1234.flac"))
	assert.False(t, isScratchFile("notes.txt"))
	assert.False(t, isScratchFile("mysong_12.mp3"))
}
