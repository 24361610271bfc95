package server

import (
	"net/http"

	"tunevault/cache"
)

// The player endpoints drive the single server-side playback state machine.
// One player per process; these handlers just sequence its transitions.

// PlayHandler starts playback of a song for the caller.
func (h *APIHandler) PlayHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	songID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	now, err := h.player.Play(r.Context(), claims.UserID, songID)
	if err != nil {
		respondCatalogError(w, err, "Play failed")
		return
	}

	cache.InvalidatePopularSongs(r.Context())
	respondJSON(w, http.StatusOK, now)
}

// PauseHandler suspends playback. No-op when idle.
func (h *APIHandler) PauseHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.player.Pause(); err != nil {
		respondCatalogError(w, err, "Pause failed")
		return
	}
	respondJSON(w, http.StatusOK, h.player.Now())
}

// ResumeHandler continues paused playback. No-op when already playing.
func (h *APIHandler) ResumeHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.player.Resume(); err != nil {
		respondCatalogError(w, err, "Resume failed")
		return
	}
	respondJSON(w, http.StatusOK, h.player.Now())
}

// StopHandler halts playback and returns to idle.
func (h *APIHandler) StopHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.player.Stop(); err != nil {
		respondCatalogError(w, err, "Stop failed")
		return
	}
	respondJSON(w, http.StatusOK, h.player.Now())
}

// NowPlayingHandler returns the current player snapshot.
func (h *APIHandler) NowPlayingHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.player.Now())
}
