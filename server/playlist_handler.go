package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"tunevault/model"
)

// CreatePlaylistRequest is the playlist creation body.
type CreatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreatePlaylistHandler creates a playlist owned by the caller.
func (h *APIHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "playlist name is required")
		return
	}

	playlist := &model.Playlist{
		UserID:      claims.UserID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.playlistRepo.Create(r.Context(), playlist); err != nil {
		respondCatalogError(w, err, "Playlist create failed")
		return
	}
	respondJSON(w, http.StatusCreated, playlist)
}

// ListPlaylistsHandler lists the caller's playlists.
func (h *APIHandler) ListPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	playlists, err := h.playlistRepo.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		respondCatalogError(w, err, "Playlist list failed")
		return
	}
	respondJSON(w, http.StatusOK, playlists)
}

// DeletePlaylistHandler removes one of the caller's playlists.
func (h *APIHandler) DeletePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	if err := h.playlistRepo.Delete(r.Context(), playlist.ID); err != nil {
		respondCatalogError(w, err, "Playlist delete failed")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// AddPlaylistSongHandler appends a song to a playlist.
func (h *APIHandler) AddPlaylistSongHandler(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}
	songID, err := pathID(r, "songId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	if err := h.playlistRepo.AddSong(r.Context(), playlist.ID, songID); err != nil {
		respondCatalogError(w, err, "Playlist add song failed")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// RemovePlaylistSongHandler removes a song from a playlist.
func (h *APIHandler) RemovePlaylistSongHandler(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}
	songID, err := pathID(r, "songId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	if err := h.playlistRepo.RemoveSong(r.Context(), playlist.ID, songID); err != nil {
		respondCatalogError(w, err, "Playlist remove song failed")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ListPlaylistSongsHandler returns a playlist's songs in position order.
func (h *APIHandler) ListPlaylistSongsHandler(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	songs, err := h.playlistRepo.ListSongs(r.Context(), playlist.ID)
	if err != nil {
		respondCatalogError(w, err, "Playlist songs failed")
		return
	}
	fillFormattedSizes(songs)
	respondJSON(w, http.StatusOK, songs)
}

// ownedPlaylist loads the playlist from the path and rejects callers who
// do not own it.
func (h *APIHandler) ownedPlaylist(w http.ResponseWriter, r *http.Request) (*model.Playlist, bool) {
	claims := claimsFrom(r.Context())
	playlistID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid playlist id")
		return nil, false
	}

	playlist, err := h.playlistRepo.GetByID(r.Context(), playlistID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respondError(w, http.StatusNotFound, "playlist not found")
			return nil, false
		}
		respondCatalogError(w, err, "Playlist lookup failed")
		return nil, false
	}
	if playlist.UserID != claims.UserID && !claims.IsAdmin {
		respondError(w, http.StatusForbidden, "not your playlist")
		return nil, false
	}
	return playlist, true
}
