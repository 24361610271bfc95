package server

import (
	"net/http"

	"tunevault/cache"
)

// StatsHandler returns the dashboard counters. Counts degrade to zero on
// database trouble rather than failing the dashboard.
func (h *APIHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if stats, ok := cache.GetStats(r.Context()); ok {
		respondJSON(w, http.StatusOK, stats)
		return
	}

	stats := h.statsRepo.Stats(r.Context())
	cache.SetStats(r.Context(), stats)
	respondJSON(w, http.StatusOK, stats)
}

// RecentActivityHandler returns the merged recent-activity feed.
func (h *APIHandler) RecentActivityHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.statsRepo.RecentActivity(r.Context(), queryLimit(r, 4)))
}

// DeleteUserHandler removes an account. The user's playlists, favorites
// and history cascade away; uploaded songs stay in the catalog. Admin only.
func (h *APIHandler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userRepo.DeleteUser(r.Context(), userID); err != nil {
		respondCatalogError(w, err, "User delete failed")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
