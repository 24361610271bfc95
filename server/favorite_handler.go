package server

import "net/http"

// AddFavoriteHandler bookmarks a song for the caller. Idempotent.
func (h *APIHandler) AddFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	songID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	if err := h.favoriteRepo.AddFavorite(r.Context(), claims.UserID, songID); err != nil {
		respondCatalogError(w, err, "Add favorite failed")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// RemoveFavoriteHandler removes a bookmark.
func (h *APIHandler) RemoveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	songID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	if err := h.favoriteRepo.RemoveFavorite(r.Context(), claims.UserID, songID); err != nil {
		respondCatalogError(w, err, "Remove favorite failed")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ListFavoritesHandler lists the caller's bookmarked songs.
func (h *APIHandler) ListFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	songs, err := h.favoriteRepo.ListFavorites(r.Context(), claims.UserID)
	if err != nil {
		respondCatalogError(w, err, "List favorites failed")
		return
	}
	fillFormattedSizes(songs)
	respondJSON(w, http.StatusOK, songs)
}
