// Package catalog is the front door of the catalog store: it owns the
// upload pipeline (validation, type detection, duration probing) and the
// play-recording contract on top of the repositories.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"tunevault/core/audio"
	"tunevault/logger"
	"tunevault/model"
	"tunevault/repository"
)

// UploadRequest carries everything needed to persist a new song.
type UploadRequest struct {
	FileBytes []byte
	Filename  string
	Title     string
	ArtistID  int64
	GenreID   int64 // 0 means none
	AlbumID   int64 // 0 means none
}

// Store wires the repositories into the catalog operations.
type Store struct {
	songs   repository.SongRepository
	history repository.HistoryRepository
}

// NewStore creates a catalog store facade.
func NewStore(songs repository.SongRepository, history repository.HistoryRepository) *Store {
	return &Store{songs: songs, history: history}
}

// UploadSong validates and persists a song payload, deriving file type from
// the filename extension and duration from the container header. Returns
// the newly assigned song id.
func (s *Store) UploadSong(ctx context.Context, req UploadRequest) (int64, error) {
	if len(req.FileBytes) == 0 {
		return 0, fmt.Errorf("empty audio payload: %w", model.ErrValidation)
	}
	if req.Title == "" {
		return 0, fmt.Errorf("title is required: %w", model.ErrValidation)
	}
	if req.ArtistID == 0 {
		return 0, fmt.Errorf("artist is required: %w", model.ErrValidation)
	}

	fileType := audio.DetectFileType(req.Filename)
	if fileType == "" {
		return 0, fmt.Errorf("filename %q has no extension: %w", req.Filename, model.ErrValidation)
	}

	duration := audio.ProbeDuration(req.FileBytes, fileType)

	song := &model.Song{
		Title:    req.Title,
		ArtistID: sql.NullInt64{Int64: req.ArtistID, Valid: true},
		Duration: duration,
		FileData: req.FileBytes,
		FileType: fileType,
		FileSize: int64(len(req.FileBytes)),
	}
	if req.GenreID != 0 {
		song.GenreID = sql.NullInt64{Int64: req.GenreID, Valid: true}
	}
	if req.AlbumID != 0 {
		song.AlbumID = sql.NullInt64{Int64: req.AlbumID, Valid: true}
	}

	id, err := s.songs.CreateSong(ctx, song)
	if err != nil {
		return 0, err
	}

	logger.Info("Song uploaded",
		logger.Int64("songId", id),
		logger.String("title", req.Title),
		logger.String("fileType", fileType),
		logger.Int("duration", duration),
		logger.Int64("fileSize", song.FileSize))
	return id, nil
}

// FetchSong returns the playable view of a song.
func (s *Store) FetchSong(ctx context.Context, songID int64) (*model.SongData, error) {
	return s.songs.FetchSong(ctx, songID)
}

// RecordPlay appends one listening-history row. The boolean mirrors the
// long-standing caller contract; the error carries the cause and is never
// swallowed silently.
func (s *Store) RecordPlay(ctx context.Context, userID, songID int64) (bool, error) {
	if err := s.history.RecordPlay(ctx, userID, songID); err != nil {
		logger.Error("Failed to record play",
			logger.Int64("userId", userID),
			logger.Int64("songId", songID),
			logger.ErrorField(err))
		return false, err
	}
	return true, nil
}

// ListPopularSongs ranks the whole catalog by play count.
func (s *Store) ListPopularSongs(ctx context.Context, limit int) ([]*model.SongSummary, error) {
	return s.songs.ListPopular(ctx, limit)
}

// ListUserFavorites ranks songs by the given user's personal play count.
// The name is historical: this is derived from listening history.
func (s *Store) ListUserFavorites(ctx context.Context, userID int64, limit int) ([]*model.SongSummary, error) {
	return s.songs.ListMostPlayedByUser(ctx, userID, limit)
}
