package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tunevault/config"
	"tunevault/core/auth"
	"tunevault/core/catalog"
	"tunevault/core/player"
	"tunevault/logger"
	"tunevault/model"
	"tunevault/repository"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// APIHandler bundles the repositories and core services behind the HTTP
// endpoints.
type APIHandler struct {
	cfg *config.Config

	catalog *catalog.Store
	player  *player.Player

	userRepo     repository.UserRepository
	artistRepo   repository.ArtistRepository
	albumRepo    repository.AlbumRepository
	genreRepo    repository.GenreRepository
	songRepo     repository.SongRepository
	playlistRepo repository.PlaylistRepository
	favoriteRepo repository.FavoriteRepository
	historyRepo  repository.HistoryRepository
	statsRepo    repository.StatsRepository
}

// NewAPIHandler creates the handler set.
func NewAPIHandler(
	cfg *config.Config,
	cat *catalog.Store,
	p *player.Player,
	userRepo repository.UserRepository,
	artistRepo repository.ArtistRepository,
	albumRepo repository.AlbumRepository,
	genreRepo repository.GenreRepository,
	songRepo repository.SongRepository,
	playlistRepo repository.PlaylistRepository,
	favoriteRepo repository.FavoriteRepository,
	historyRepo repository.HistoryRepository,
	statsRepo repository.StatsRepository,
) *APIHandler {
	return &APIHandler{
		cfg:          cfg,
		catalog:      cat,
		player:       p,
		userRepo:     userRepo,
		artistRepo:   artistRepo,
		albumRepo:    albumRepo,
		genreRepo:    genreRepo,
		songRepo:     songRepo,
		playlistRepo: playlistRepo,
		favoriteRepo: favoriteRepo,
		historyRepo:  historyRepo,
		statsRepo:    statsRepo,
	}
}

// AuthMiddleware validates the bearer token and stashes the claims in the
// request context.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := auth.ParseToken(h.cfg.JWTSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			logger.Warn("Token rejected", logger.ErrorField(err))
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// AdminMiddleware additionally requires the admin flag.
func (h *APIHandler) AdminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r.Context())
		if claims == nil || !claims.IsAdmin {
			respondError(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r)
	})
}

func claimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", logger.ErrorField(err))
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondCatalogError maps a catalog error onto an HTTP status, keeping the
// user-facing message short and the detail in the log.
func respondCatalogError(w http.ResponseWriter, err error, logMsg string) {
	logger.Error(logMsg, logger.ErrorField(err))
	switch {
	case errors.Is(err, model.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, model.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrPersistence):
		respondError(w, http.StatusConflict, "could not save changes")
	case errors.Is(err, model.ErrConnection):
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
	case errors.Is(err, model.ErrPlayback):
		respondError(w, http.StatusUnprocessableEntity, "playback failed")
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
