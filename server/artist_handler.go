package server

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"

	"tunevault/logger"
	"tunevault/model"
	"tunevault/storage"
)

// CreateArtistRequest is the artist creation body.
type CreateArtistRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// CreateArtistHandler registers a new artist.
func (h *APIHandler) CreateArtistHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateArtistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "artist name is required")
		return
	}

	artist := &model.Artist{Name: req.Name}
	if req.Bio != "" {
		artist.Bio = sql.NullString{String: req.Bio, Valid: true}
	}

	id, err := h.artistRepo.CreateArtist(r.Context(), artist)
	if err != nil {
		respondCatalogError(w, err, "Artist create failed")
		return
	}
	artist.ID = id
	respondJSON(w, http.StatusCreated, artist)
}

// ListArtistsHandler lists all artists.
func (h *APIHandler) ListArtistsHandler(w http.ResponseWriter, r *http.Request) {
	artists, err := h.artistRepo.ListArtists(r.Context())
	if err != nil {
		respondCatalogError(w, err, "Artist list failed")
		return
	}
	respondJSON(w, http.StatusOK, artists)
}

// UploadArtistImageHandler stores an artist image in object storage and
// points the artist row at it.
func (h *APIHandler) UploadArtistImageHandler(w http.ResponseWriter, r *http.Request) {
	artistID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid artist id")
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	url, err := storage.UploadArtistImage(r.Context(), artistID, file, header.Size, contentType)
	if err != nil {
		logger.Error("Artist image upload failed", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "image upload failed")
		return
	}

	if err := h.artistRepo.UpdateImageURL(r.Context(), artistID, url); err != nil {
		respondCatalogError(w, err, "Artist image update failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"imageUrl": url})
}

// DeleteArtistHandler removes an artist; dependent songs and albums keep
// playing with a nulled artist reference. Admin only.
func (h *APIHandler) DeleteArtistHandler(w http.ResponseWriter, r *http.Request) {
	artistID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid artist id")
		return
	}

	if err := h.artistRepo.DeleteArtist(r.Context(), artistID); err != nil {
		respondCatalogError(w, err, "Artist delete failed")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ListGenresHandler lists the genre vocabulary.
func (h *APIHandler) ListGenresHandler(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genreRepo.ListGenres(r.Context())
	if err != nil {
		respondCatalogError(w, err, "Genre list failed")
		return
	}
	respondJSON(w, http.StatusOK, genres)
}

// CreateGenreHandler extends the genre vocabulary. Admin only.
func (h *APIHandler) CreateGenreHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.genreRepo.CreateGenre(r.Context(), req.Name)
	if err != nil {
		respondCatalogError(w, err, "Genre create failed")
		return
	}
	respondJSON(w, http.StatusCreated, &model.Genre{ID: id, Name: req.Name})
}

// CreateAlbumRequest is the album creation body.
type CreateAlbumRequest struct {
	Title       string `json:"title"`
	ArtistID    int64  `json:"artistId"`
	ReleaseYear int64  `json:"releaseYear"`
}

// CreateAlbumHandler registers a new album.
func (h *APIHandler) CreateAlbumHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "album title is required")
		return
	}

	album := &model.Album{Title: req.Title}
	if req.ArtistID != 0 {
		album.ArtistID = sql.NullInt64{Int64: req.ArtistID, Valid: true}
	}
	if req.ReleaseYear != 0 {
		album.ReleaseYear = sql.NullInt64{Int64: req.ReleaseYear, Valid: true}
	}

	id, err := h.albumRepo.CreateAlbum(r.Context(), album)
	if err != nil {
		respondCatalogError(w, err, "Album create failed")
		return
	}
	album.ID = id
	respondJSON(w, http.StatusCreated, album)
}

// UploadAlbumCoverHandler stores cover art inline on the album row.
func (h *APIHandler) UploadAlbumCoverHandler(w http.ResponseWriter, r *http.Request) {
	albumID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid album id")
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("cover")
	if err != nil {
		respondError(w, http.StatusBadRequest, "cover file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read cover")
		return
	}

	if err := h.albumRepo.UpdateCoverArt(r.Context(), albumID, data); err != nil {
		respondCatalogError(w, err, "Album cover update failed")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
