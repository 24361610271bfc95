// Package player turns stored songs into something a local audio backend
// can play: fetch the payload, materialize a scratch file, hand the path to
// the backend and record that the play happened.
package player

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"tunevault/logger"
	"tunevault/model"

	"github.com/google/uuid"
)

// State is the player's lifecycle position.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// Catalog is the slice of the catalog store the player needs.
type Catalog interface {
	FetchSong(ctx context.Context, songID int64) (*model.SongData, error)
	RecordPlay(ctx context.Context, userID, songID int64) (bool, error)
}

// Player is a single playback state machine. One instance per process; all
// "now playing" state lives here rather than in package-level variables.
type Player struct {
	mu sync.Mutex

	backend    Backend
	catalog    Catalog
	scratchDir string
	// token disambiguates scratch files across concurrently running
	// player processes sharing one scratch directory.
	token string

	state       State
	current     model.NowPlaying
	scratchPath string

	subs []chan model.NowPlaying
}

// New creates an idle player writing scratch files under scratchDir.
func New(backend Backend, catalog Catalog, scratchDir string) *Player {
	return &Player{
		backend:    backend,
		catalog:    catalog,
		scratchDir: scratchDir,
		token:      uuid.NewString()[:8],
	}
}

// Play fetches the song, materializes it and starts the backend. A track
// already loaded is stopped first so two streams never overlap. The play
// event is recorded for userID; a history failure is logged but does not
// interrupt playback.
func (p *Player) Play(ctx context.Context, userID, songID int64) (model.NowPlaying, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	song, err := p.catalog.FetchSong(ctx, songID)
	if err != nil {
		// No state change on a missing song.
		return p.current, err
	}

	if p.state != StateIdle {
		if err := p.backend.Stop(); err != nil {
			logger.Warn("Failed to stop current track before switching",
				logger.Int64("songId", p.current.SongID), logger.ErrorField(err))
		}
	}
	p.removeScratchLocked()

	path := filepath.Join(p.scratchDir,
		fmt.Sprintf("song_%d_%s.%s", song.ID, p.token, song.FileType))
	if err := os.WriteFile(path, song.Data, 0600); err != nil {
		p.setIdleLocked()
		return p.current, fmt.Errorf("failed to write scratch file: %w", err)
	}
	p.scratchPath = path

	if err := p.backend.Load(path); err != nil {
		p.removeScratchLocked()
		p.setIdleLocked()
		return p.current, fmt.Errorf("backend load: %w: %w", model.ErrPlayback, err)
	}
	if err := p.backend.Play(); err != nil {
		p.removeScratchLocked()
		p.setIdleLocked()
		return p.current, fmt.Errorf("backend play: %w: %w", model.ErrPlayback, err)
	}

	p.state = StatePlaying
	p.current = model.NowPlaying{
		SongID:  song.ID,
		Title:   song.Title,
		Artist:  song.Artist,
		Playing: true,
		Paused:  false,
	}
	p.notifyLocked()

	// History is independent of playback; it must not undo a started stream.
	if _, err := p.catalog.RecordPlay(ctx, userID, songID); err != nil {
		logger.Warn("Play started but history append failed",
			logger.Int64("songId", songID), logger.ErrorField(err))
	}

	logger.Info("Playback started",
		logger.Int64("songId", song.ID), logger.String("title", song.Title))
	return p.current, nil
}

// Pause suspends playback. A pause while idle is a no-op.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StatePlaying {
		return nil
	}
	if err := p.backend.Pause(); err != nil {
		return fmt.Errorf("backend pause: %w: %w", model.ErrPlayback, err)
	}
	p.state = StatePaused
	p.current.Playing = false
	p.current.Paused = true
	p.notifyLocked()
	return nil
}

// Resume continues a paused track. A resume while playing is a no-op.
func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StatePaused {
		return nil
	}
	if err := p.backend.Resume(); err != nil {
		return fmt.Errorf("backend resume: %w: %w", model.ErrPlayback, err)
	}
	p.state = StatePlaying
	p.current.Playing = true
	p.current.Paused = false
	p.notifyLocked()
	return nil
}

// Stop halts the backend and returns to idle. It blocks until the backend
// confirms playback has ceased, so a subsequent Play never races a dying
// stream. The scratch file is removed.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateIdle {
		return nil
	}
	err := p.backend.Stop()
	p.removeScratchLocked()
	p.setIdleLocked()
	p.notifyLocked()
	if err != nil {
		return fmt.Errorf("backend stop: %w: %w", model.ErrPlayback, err)
	}
	return nil
}

// Now returns the current state snapshot.
func (p *Player) Now() model.NowPlaying {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// State returns the player's lifecycle state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// HasNext reports whether a next track is queued. Always false until a
// playlist-ordering feature is layered on top.
func (p *Player) HasNext() bool { return false }

// HasPrevious reports whether a previous track is available. Always false,
// matching HasNext.
func (p *Player) HasPrevious() bool { return false }

// Subscribe returns a channel receiving a snapshot on every state change.
// Slow subscribers miss intermediate snapshots rather than blocking the
// player. Callers must Unsubscribe when done or the channel is retained
// for the life of the player.
func (p *Player) Subscribe() <-chan model.NowPlaying {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch := make(chan model.NowPlaying, 8)
	p.subs = append(p.subs, ch)
	return ch
}

// Unsubscribe removes a channel returned by Subscribe and closes it.
// Unknown or already-removed channels are ignored.
func (p *Player) Unsubscribe(ch <-chan model.NowPlaying) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, sub := range p.subs {
		if sub == ch {
			p.subs = append(p.subs[:i], p.subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// Close stops playback and releases subscribers.
func (p *Player) Close() error {
	err := p.Stop()

	p.mu.Lock()
	for _, ch := range p.subs {
		close(ch)
	}
	p.subs = nil
	p.mu.Unlock()

	return err
}

func (p *Player) setIdleLocked() {
	p.state = StateIdle
	p.current = model.NowPlaying{}
}

func (p *Player) removeScratchLocked() {
	if p.scratchPath == "" {
		return
	}
	if err := os.Remove(p.scratchPath); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to remove scratch file",
			logger.String("path", p.scratchPath), logger.ErrorField(err))
	}
	p.scratchPath = ""
}

func (p *Player) notifyLocked() {
	for _, ch := range p.subs {
		select {
		case ch <- p.current:
		default:
		}
	}
}
