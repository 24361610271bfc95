package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tunevault/cache"
	"tunevault/config"
	"tunevault/core/catalog"
	"tunevault/core/player"
	"tunevault/db"
	"tunevault/logger"
	"tunevault/repository"
	"tunevault/storage"

	"github.com/gorilla/mux"
)

// Start initializes the application and runs the HTTP server until a
// termination signal arrives.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.CloseDB()

	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database (gorm)", logger.ErrorField(err))
	}

	if err := db.InitDB(); err != nil {
		logger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if err := db.SeedDefaults(); err != nil {
		logger.Fatal("Failed to seed defaults", logger.ErrorField(err))
	}

	// Redis and MinIO are optional: without Redis every cache lookup is a
	// miss, without MinIO artist image uploads are rejected.
	if err := cache.ConnectRedis(cfg); err != nil {
		logger.Warn("Redis unavailable, caching disabled", logger.ErrorField(err))
	}
	defer cache.CloseRedis()

	if err := storage.InitMinio(cfg); err != nil {
		logger.Warn("MinIO unavailable, artwork uploads disabled", logger.ErrorField(err))
	}

	if err := os.MkdirAll(cfg.ScratchDir, 0o755); err != nil {
		logger.Fatal("Failed to create scratch directory", logger.ErrorField(err))
	}
	janitor := player.NewJanitor(cfg.ScratchDir, cfg.ScratchMaxAge)
	if err := janitor.Start(); err != nil {
		logger.Warn("Scratch janitor disabled", logger.ErrorField(err))
	}
	defer janitor.Stop()

	userRepo := repository.NewMySQLUserRepository(db.DB)
	artistRepo := repository.NewMySQLArtistRepository(db.DB)
	albumRepo := repository.NewMySQLAlbumRepository(db.DB)
	genreRepo := repository.NewMySQLGenreRepository(db.DB)
	songRepo := repository.NewMySQLSongRepository(db.DB)
	favoriteRepo := repository.NewMySQLFavoriteRepository(db.DB)
	historyRepo := repository.NewMySQLHistoryRepository(db.DB)
	statsRepo := repository.NewMySQLStatsRepository(db.DB)
	playlistRepo := repository.NewGormPlaylistRepository(db.GormDB)

	cat := catalog.NewStore(songRepo, historyRepo)
	p := player.New(player.NewFFPlayBackend(cfg.FFplayPath), cat, cfg.ScratchDir)
	defer p.Close()

	apiHandler := NewAPIHandler(cfg, cat, p,
		userRepo, artistRepo, albumRepo, genreRepo, songRepo,
		playlistRepo, favoriteRepo, historyRepo, statsRepo)

	router := mux.NewRouter()

	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Range")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Auth
	router.HandleFunc("/api/auth/register", apiHandler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/me", apiHandler.AuthMiddleware(apiHandler.MeHandler)).Methods(http.MethodGet)

	// Songs
	router.HandleFunc("/api/songs", apiHandler.AuthMiddleware(apiHandler.UploadSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/songs/popular", apiHandler.AuthMiddleware(apiHandler.PopularSongsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/most-played", apiHandler.AuthMiddleware(apiHandler.MostPlayedHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/search", apiHandler.AuthMiddleware(apiHandler.SearchSongsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/{id}/file", apiHandler.AuthMiddleware(apiHandler.DownloadSongHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/{id}/plays", apiHandler.AuthMiddleware(apiHandler.RecordPlayHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/songs/{id}", apiHandler.AdminMiddleware(apiHandler.DeleteSongHandler)).Methods(http.MethodDelete)

	// Player
	router.HandleFunc("/api/player/play/{id}", apiHandler.AuthMiddleware(apiHandler.PlayHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/player/pause", apiHandler.AuthMiddleware(apiHandler.PauseHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/player/resume", apiHandler.AuthMiddleware(apiHandler.ResumeHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/player/stop", apiHandler.AuthMiddleware(apiHandler.StopHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/player/now", apiHandler.AuthMiddleware(apiHandler.NowPlayingHandler)).Methods(http.MethodGet)
	router.HandleFunc("/ws/player", apiHandler.NowPlayingFeedHandler)

	// Playlists
	router.HandleFunc("/api/playlists", apiHandler.AuthMiddleware(apiHandler.CreatePlaylistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists", apiHandler.AuthMiddleware(apiHandler.ListPlaylistsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}", apiHandler.AuthMiddleware(apiHandler.DeletePlaylistHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/playlists/{id}/songs", apiHandler.AuthMiddleware(apiHandler.ListPlaylistSongsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}/songs/{songId}", apiHandler.AuthMiddleware(apiHandler.AddPlaylistSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}/songs/{songId}", apiHandler.AuthMiddleware(apiHandler.RemovePlaylistSongHandler)).Methods(http.MethodDelete)

	// Favorites
	router.HandleFunc("/api/favorites", apiHandler.AuthMiddleware(apiHandler.ListFavoritesHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/favorites/{id}", apiHandler.AuthMiddleware(apiHandler.AddFavoriteHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/favorites/{id}", apiHandler.AuthMiddleware(apiHandler.RemoveFavoriteHandler)).Methods(http.MethodDelete)

	// Artists, genres, albums
	router.HandleFunc("/api/artists", apiHandler.AuthMiddleware(apiHandler.CreateArtistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/artists", apiHandler.AuthMiddleware(apiHandler.ListArtistsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/artists/{id}/image", apiHandler.AuthMiddleware(apiHandler.UploadArtistImageHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/artists/{id}", apiHandler.AdminMiddleware(apiHandler.DeleteArtistHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/genres", apiHandler.AuthMiddleware(apiHandler.ListGenresHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/genres", apiHandler.AdminMiddleware(apiHandler.CreateGenreHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/albums", apiHandler.AuthMiddleware(apiHandler.CreateAlbumHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/albums/{id}/cover", apiHandler.AuthMiddleware(apiHandler.UploadAlbumCoverHandler)).Methods(http.MethodPost)

	// Admin dashboard
	router.HandleFunc("/api/admin/stats", apiHandler.AdminMiddleware(apiHandler.StatsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/activity", apiHandler.AdminMiddleware(apiHandler.RecentActivityHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/users/{id}", apiHandler.AdminMiddleware(apiHandler.DeleteUserHandler)).Methods(http.MethodDelete)

	server.Handler = router

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting", logger.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("Server stopped")
}
