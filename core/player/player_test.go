package player

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"tunevault/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeBackend records every call so tests can assert ordering.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string
	busy  bool

	failLoad bool
	failPlay bool
}

func (b *fakeBackend) record(call string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call)
}

func (b *fakeBackend) Load(path string) error {
	b.record("load " + filepath.Base(path))
	if b.failLoad {
		return fmt.Errorf("load refused")
	}
	return nil
}

func (b *fakeBackend) Play() error {
	b.record("play")
	if b.failPlay {
		return fmt.Errorf("play refused")
	}
	b.mu.Lock()
	b.busy = true
	b.mu.Unlock()
	return nil
}

func (b *fakeBackend) Pause() error  { b.record("pause"); return nil }
func (b *fakeBackend) Resume() error { b.record("resume"); return nil }

func (b *fakeBackend) Stop() error {
	b.record("stop")
	b.mu.Lock()
	b.busy = false
	b.mu.Unlock()
	return nil
}

func (b *fakeBackend) IsBusy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.busy
}

func (b *fakeBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.calls))
	copy(out, b.calls)
	return out
}

// fakeCatalog serves songs from a map and counts history appends.
type fakeCatalog struct {
	mu    sync.Mutex
	songs map[int64]*model.SongData
	plays []int64

	failRecord bool
}

func (c *fakeCatalog) FetchSong(_ context.Context, songID int64) (*model.SongData, error) {
	song, ok := c.songs[songID]
	if !ok {
		return nil, fmt.Errorf("song %d: %w", songID, model.ErrNotFound)
	}
	return song, nil
}

func (c *fakeCatalog) RecordPlay(_ context.Context, _, songID int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failRecord {
		return false, fmt.Errorf("history table gone: %w", model.ErrPersistence)
	}
	c.plays = append(c.plays, songID)
	return true, nil
}

func (c *fakeCatalog) Plays() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int64, len(c.plays))
	copy(out, c.plays)
	return out
}

func newTestPlayer(t *testing.T) (*Player, *fakeBackend, *fakeCatalog, string) {
	t.Helper()
	backend := &fakeBackend{}
	cat := &fakeCatalog{songs: map[int64]*model.SongData{
		1: {ID: 1, Title: "First", Artist: "Ann", FileType: "mp3", Data: []byte("payload-one")},
		2: {ID: 2, Title: "Second", Artist: "Bob", FileType: "flac", Data: []byte("payload-two-longer")},
	}}
	dir := t.TempDir()
	p := New(backend, cat, dir)
	t.Cleanup(func() { _ = p.Close() })
	return p, backend, cat, dir
}

func scratchFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestPlay_WritesScratchFileAndStartsBackend(t *testing.T) {
	p, backend, cat, dir := newTestPlayer(t)

	now, err := p.Play(context.Background(), 7, 1)
	require.NoError(t, err)

	assert.Equal(t, StatePlaying, p.State())
	assert.Equal(t, int64(1), now.SongID)
	assert.Equal(t, "First", now.Title)
	assert.Equal(t, "Ann", now.Artist)
	assert.True(t, now.Playing)
	assert.False(t, now.Paused)

	files := scratchFiles(t, dir)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "song_1_")
	assert.Contains(t, files[0], ".mp3")

	data, err := os.ReadFile(filepath.Join(dir, files[0]))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload-one"), data)

	assert.Equal(t, []int64{1}, cat.Plays())
	assert.Equal(t, []string{"load " + files[0], "play"}, backend.Calls())
}

func TestPlay_StopsCurrentTrackBeforeSwitching(t *testing.T) {
	p, backend, _, dir := newTestPlayer(t)

	_, err := p.Play(context.Background(), 7, 1)
	require.NoError(t, err)
	_, err = p.Play(context.Background(), 7, 2)
	require.NoError(t, err)

	calls := backend.Calls()
	require.Len(t, calls, 5)
	assert.Equal(t, "stop", calls[2])
	assert.Contains(t, calls[3], "load song_2_")

	// Only the new song's scratch file remains.
	files := scratchFiles(t, dir)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "song_2_")
	assert.Contains(t, files[0], ".flac")
}

func TestPlay_UnknownSongLeavesStateUntouched(t *testing.T) {
	p, backend, cat, dir := newTestPlayer(t)

	_, err := p.Play(context.Background(), 7, 1)
	require.NoError(t, err)

	now, err := p.Play(context.Background(), 7, 99)
	require.ErrorIs(t, err, model.ErrNotFound)

	assert.Equal(t, StatePlaying, p.State())
	assert.Equal(t, int64(1), now.SongID)
	assert.Equal(t, []int64{1}, cat.Plays())

	// The original scratch file is still there and the backend was never
	// touched by the failed call.
	require.Len(t, scratchFiles(t, dir), 1)
	assert.Equal(t, []string{"load " + scratchFiles(t, dir)[0], "play"}, backend.Calls())
}

func TestPlay_BackendFailureGoesIdle(t *testing.T) {
	p, backend, _, dir := newTestPlayer(t)
	backend.failPlay = true

	_, err := p.Play(context.Background(), 7, 1)
	require.ErrorIs(t, err, model.ErrPlayback)

	assert.Equal(t, StateIdle, p.State())
	assert.Empty(t, scratchFiles(t, dir))
	assert.Equal(t, model.NowPlaying{}, p.Now())
}

func TestPlay_HistoryFailureDoesNotInterruptPlayback(t *testing.T) {
	p, _, cat, _ := newTestPlayer(t)
	cat.failRecord = true

	now, err := p.Play(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.True(t, now.Playing)
	assert.Equal(t, StatePlaying, p.State())
	assert.Empty(t, cat.Plays())
}

func TestPauseResume(t *testing.T) {
	p, backend, _, _ := newTestPlayer(t)

	// Pause while idle is a no-op.
	require.NoError(t, p.Pause())
	assert.Empty(t, backend.Calls())
	assert.Equal(t, StateIdle, p.State())

	_, err := p.Play(context.Background(), 7, 1)
	require.NoError(t, err)

	// Resume while playing is a no-op.
	require.NoError(t, p.Resume())
	assert.NotContains(t, backend.Calls(), "resume")

	require.NoError(t, p.Pause())
	assert.Equal(t, StatePaused, p.State())
	now := p.Now()
	assert.False(t, now.Playing)
	assert.True(t, now.Paused)

	// Second pause changes nothing.
	require.NoError(t, p.Pause())

	require.NoError(t, p.Resume())
	assert.Equal(t, StatePlaying, p.State())
	now = p.Now()
	assert.True(t, now.Playing)
	assert.False(t, now.Paused)
}

func TestStop_RemovesScratchAndIdles(t *testing.T) {
	p, _, _, dir := newTestPlayer(t)

	_, err := p.Play(context.Background(), 7, 1)
	require.NoError(t, err)
	require.Len(t, scratchFiles(t, dir), 1)

	require.NoError(t, p.Stop())
	assert.Equal(t, StateIdle, p.State())
	assert.Equal(t, model.NowPlaying{}, p.Now())
	assert.Empty(t, scratchFiles(t, dir))

	// Stop while idle is a no-op.
	require.NoError(t, p.Stop())
}

func TestSubscribe_ReceivesStateChanges(t *testing.T) {
	p, _, _, _ := newTestPlayer(t)

	events := p.Subscribe()

	_, err := p.Play(context.Background(), 7, 1)
	require.NoError(t, err)
	require.NoError(t, p.Pause())
	require.NoError(t, p.Stop())

	got := []model.NowPlaying{<-events, <-events, <-events}
	assert.True(t, got[0].Playing)
	assert.True(t, got[1].Paused)
	assert.Equal(t, model.NowPlaying{}, got[2])
}

func TestUnsubscribe_ReleasesSubscriber(t *testing.T) {
	p, _, _, _ := newTestPlayer(t)

	keep := p.Subscribe()
	gone := p.Subscribe()

	p.Unsubscribe(gone)

	p.mu.Lock()
	remaining := len(p.subs)
	p.mu.Unlock()
	assert.Equal(t, 1, remaining)

	// The removed channel is closed, the kept one still receives.
	_, open := <-gone
	assert.False(t, open)

	_, err := p.Play(context.Background(), 7, 1)
	require.NoError(t, err)
	now := <-keep
	assert.Equal(t, int64(1), now.SongID)

	// Unsubscribing twice is harmless.
	p.Unsubscribe(gone)
}

func TestUnsubscribe_ChurnDoesNotAccumulate(t *testing.T) {
	p, _, _, _ := newTestPlayer(t)

	for i := 0; i < 1000; i++ {
		ch := p.Subscribe()
		p.Unsubscribe(ch)
	}

	p.mu.Lock()
	remaining := len(p.subs)
	p.mu.Unlock()
	assert.Zero(t, remaining)
}

func TestQueueNavigation(t *testing.T) {
	p, _, _, _ := newTestPlayer(t)
	assert.False(t, p.HasNext())
	assert.False(t, p.HasPrevious())
}
