package repository

import (
	"context"
	"errors"
	"fmt"

	"tunevault/model"

	"gorm.io/gorm"
)

// PlaylistRepository defines the playlist data operations.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *model.Playlist) error
	GetByID(ctx context.Context, id int64) (*model.Playlist, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Playlist, error)
	Delete(ctx context.Context, id int64) error
	AddSong(ctx context.Context, playlistID, songID int64) error
	RemoveSong(ctx context.Context, playlistID, songID int64) error
	ListSongs(ctx context.Context, playlistID int64) ([]*model.SongSummary, error)
}

// gormPlaylistRepository implements PlaylistRepository with GORM.
type gormPlaylistRepository struct {
	db *gorm.DB
}

// NewGormPlaylistRepository creates a GORM playlist repository.
func NewGormPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &gormPlaylistRepository{db: db}
}

func (r *gormPlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	if err := r.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return fmt.Errorf("create playlist: %w: %w", model.ErrPersistence, err)
	}
	return nil
}

func (r *gormPlaylistRepository) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.WithContext(ctx).First(&playlist, "playlist_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("playlist %d: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return &playlist, nil
}

func (r *gormPlaylistRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Playlist, error) {
	var playlists []*model.Playlist
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&playlists).Error
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	return playlists, nil
}

func (r *gormPlaylistRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Playlist{}, "playlist_id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete playlist: %w: %w", model.ErrPersistence, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("playlist %d: %w", id, model.ErrNotFound)
	}
	return nil
}

// AddSong appends a song at the next free position. The position is
// computed and the row inserted inside one transaction so concurrent adds
// cannot claim the same slot.
func (r *gormPlaylistRepository) AddSong(ctx context.Context, playlistID, songID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos int
		err := tx.Model(&model.PlaylistSong{}).
			Where("playlist_id = ?", playlistID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos).Error
		if err != nil {
			return err
		}

		return tx.Create(&model.PlaylistSong{
			PlaylistID: playlistID,
			SongID:     songID,
			Position:   maxPos + 1,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("add song to playlist: %w: %w", model.ErrPersistence, err)
	}
	return nil
}

func (r *gormPlaylistRepository) RemoveSong(ctx context.Context, playlistID, songID int64) error {
	res := r.db.WithContext(ctx).
		Delete(&model.PlaylistSong{}, "playlist_id = ? AND song_id = ?", playlistID, songID)
	if res.Error != nil {
		return fmt.Errorf("remove song from playlist: %w: %w", model.ErrPersistence, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("playlist %d song %d: %w", playlistID, songID, model.ErrNotFound)
	}
	return nil
}

// ListSongs returns a playlist's songs in position order.
func (r *gormPlaylistRepository) ListSongs(ctx context.Context, playlistID int64) ([]*model.SongSummary, error) {
	var songs []*model.SongSummary
	err := r.db.WithContext(ctx).Raw(`
	SELECT s.song_id AS id, s.title, IFNULL(a.name, '') AS artist, IFNULL(g.name, '') AS genre,
	       s.duration, s.file_type, s.file_size, s.upload_date
	FROM Playlist_Songs ps
	JOIN Songs s ON ps.song_id = s.song_id
	LEFT JOIN Artists a ON s.artist_id = a.artist_id
	LEFT JOIN Genres g ON s.genre_id = g.genre_id
	WHERE ps.playlist_id = ?
	ORDER BY ps.position ASC`, playlistID).Scan(&songs).Error
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	return songs, nil
}
