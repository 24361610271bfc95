package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tunevault/cache"
	"tunevault/core/catalog"
	"tunevault/core/utils"
	"tunevault/logger"
	"tunevault/model"
)

const defaultListLimit = 8

// UploadSongHandler persists a multipart audio upload. An "artistName"
// field may replace "artistId" to register a new artist inline.
func (h *APIHandler) UploadSongHandler(w http.ResponseWriter, r *http.Request) {
	// Payloads are whole songs; cap the multipart memory slab, not the size.
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read upload", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	artistID, err := h.resolveArtist(r)
	if err != nil {
		respondCatalogError(w, err, "Artist resolution failed")
		return
	}

	req := catalog.UploadRequest{
		FileBytes: data,
		Filename:  header.Filename,
		Title:     r.FormValue("title"),
		ArtistID:  artistID,
		GenreID:   parseFormID(r, "genreId"),
		AlbumID:   parseFormID(r, "albumId"),
	}

	id, err := h.catalog.UploadSong(r.Context(), req)
	if err != nil {
		respondCatalogError(w, err, "Upload failed")
		return
	}

	cache.InvalidatePopularSongs(r.Context())
	respondJSON(w, http.StatusCreated, map[string]int64{"songId": id})
}

// resolveArtist returns the artist id from the form, creating the artist
// when only a name was supplied.
func (h *APIHandler) resolveArtist(r *http.Request) (int64, error) {
	if id := parseFormID(r, "artistId"); id != 0 {
		return id, nil
	}

	name := r.FormValue("artistName")
	if name == "" {
		return 0, fmt.Errorf("artistId or artistName is required: %w", model.ErrValidation)
	}

	existing, err := h.artistRepo.GetArtistByName(r.Context(), name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return 0, err
	}

	id, err := h.artistRepo.CreateArtist(r.Context(), &model.Artist{Name: name})
	if err != nil && errors.Is(err, model.ErrPersistence) {
		// A concurrent upload won the insert; the unique name index makes
		// the re-fetch authoritative.
		if winner, lookupErr := h.artistRepo.GetArtistByName(r.Context(), name); lookupErr == nil {
			return winner.ID, nil
		}
	}
	return id, err
}

// DownloadSongHandler streams a song's bytes back to the client.
func (h *APIHandler) DownloadSongHandler(w http.ResponseWriter, r *http.Request) {
	songID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	song, err := h.catalog.FetchSong(r.Context(), songID)
	if err != nil {
		respondCatalogError(w, err, "Song fetch failed")
		return
	}

	w.Header().Set("Content-Type", "audio/"+song.FileType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", song.Title+"."+song.FileType))
	w.Header().Set("Content-Length", strconv.Itoa(len(song.Data)))
	if _, err := w.Write(song.Data); err != nil {
		logger.Warn("Download interrupted",
			logger.Int64("songId", songID), logger.ErrorField(err))
	}
}

// PopularSongsHandler lists the catalog ranked by play count, cached for a
// minute per limit.
func (h *APIHandler) PopularSongsHandler(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, defaultListLimit)

	if songs, ok := cache.GetPopularSongs(r.Context(), limit); ok {
		respondJSON(w, http.StatusOK, songs)
		return
	}

	songs, err := h.catalog.ListPopularSongs(r.Context(), limit)
	if err != nil {
		// Listings degrade: log and return an empty list.
		logger.Error("Popular songs query failed", logger.ErrorField(err))
		respondJSON(w, http.StatusOK, []*model.SongSummary{})
		return
	}
	fillFormattedSizes(songs)

	cache.SetPopularSongs(r.Context(), limit, songs)
	respondJSON(w, http.StatusOK, songs)
}

// MostPlayedHandler lists the caller's personally most-played songs.
func (h *APIHandler) MostPlayedHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	limit := queryLimit(r, defaultListLimit)

	songs, err := h.catalog.ListUserFavorites(r.Context(), claims.UserID, limit)
	if err != nil {
		logger.Error("Most played query failed", logger.ErrorField(err))
		respondJSON(w, http.StatusOK, []*model.SongSummary{})
		return
	}
	fillFormattedSizes(songs)
	respondJSON(w, http.StatusOK, songs)
}

// SearchSongsHandler searches titles and artist names.
func (h *APIHandler) SearchSongsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	songs, err := h.songRepo.SearchSongs(r.Context(), query, queryLimit(r, 25))
	if err != nil {
		logger.Error("Search failed", logger.String("q", query), logger.ErrorField(err))
		respondJSON(w, http.StatusOK, []*model.SongSummary{})
		return
	}
	fillFormattedSizes(songs)
	respondJSON(w, http.StatusOK, songs)
}

// RecordPlayHandler appends a play event for the caller. Used by clients
// that play downloaded bytes themselves instead of going through the
// server-side player.
func (h *APIHandler) RecordPlayHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	songID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	ok, err := h.catalog.RecordPlay(r.Context(), claims.UserID, songID)
	if err != nil {
		respondCatalogError(w, err, "Record play failed")
		return
	}

	cache.InvalidatePopularSongs(r.Context())
	respondJSON(w, http.StatusOK, map[string]bool{"recorded": ok})
}

// DeleteSongHandler removes a song from the catalog. Admin only.
func (h *APIHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	songID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	if err := h.songRepo.DeleteSong(r.Context(), songID); err != nil {
		respondCatalogError(w, err, "Song delete failed")
		return
	}

	cache.InvalidatePopularSongs(r.Context())
	respondJSON(w, http.StatusNoContent, nil)
}

func fillFormattedSizes(songs []*model.SongSummary) {
	for _, s := range songs {
		s.FileSizeFormatted = utils.FormatFileSize(s.FileSize)
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func parseFormID(r *http.Request, field string) int64 {
	id, err := strconv.ParseInt(r.FormValue(field), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func queryLimit(r *http.Request, fallback int) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		return fallback
	}
	return limit
}
