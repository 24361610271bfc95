package repository

import (
	"context"
	"database/sql"

	"tunevault/model"
)

// FavoriteRepository defines the explicit-favorites operations. Distinct
// from the derived most-played listing, this is the User_Favorites table.
type FavoriteRepository interface {
	AddFavorite(ctx context.Context, userID, songID int64) error
	RemoveFavorite(ctx context.Context, userID, songID int64) error
	IsFavorite(ctx context.Context, userID, songID int64) (bool, error)
	ListFavorites(ctx context.Context, userID int64) ([]*model.SongSummary, error)
}

type mysqlFavoriteRepository struct {
	db *sql.DB
}

// NewMySQLFavoriteRepository creates a new mysqlFavoriteRepository.
func NewMySQLFavoriteRepository(db *sql.DB) FavoriteRepository {
	return &mysqlFavoriteRepository{db: db}
}

func (r *mysqlFavoriteRepository) AddFavorite(ctx context.Context, userID, songID int64) error {
	// INSERT IGNORE keeps re-favoriting idempotent.
	_, err := r.db.ExecContext(ctx,
		"INSERT IGNORE INTO User_Favorites (user_id, song_id) VALUES (?, ?)", userID, songID)
	if err != nil {
		return translateError("add favorite", err)
	}
	return nil
}

func (r *mysqlFavoriteRepository) RemoveFavorite(ctx context.Context, userID, songID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM User_Favorites WHERE user_id = ? AND song_id = ?", userID, songID)
	if err != nil {
		return translateError("remove favorite", err)
	}
	return nil
}

func (r *mysqlFavoriteRepository) IsFavorite(ctx context.Context, userID, songID int64) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM User_Favorites WHERE user_id = ? AND song_id = ?",
		userID, songID).Scan(&exists)
	if err != nil {
		return false, translateError("check favorite", err)
	}
	return exists > 0, nil
}

func (r *mysqlFavoriteRepository) ListFavorites(ctx context.Context, userID int64) ([]*model.SongSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT s.song_id, s.title, IFNULL(a.name, ''), IFNULL(g.name, ''),
	       s.duration, s.file_type, s.file_size, s.upload_date
	FROM User_Favorites f
	JOIN Songs s ON f.song_id = s.song_id
	LEFT JOIN Artists a ON s.artist_id = a.artist_id
	LEFT JOIN Genres g ON s.genre_id = g.genre_id
	WHERE f.user_id = ?
	ORDER BY f.added_at DESC`, userID)
	if err != nil {
		return nil, translateError("list favorites", err)
	}
	defer rows.Close()

	songs := make([]*model.SongSummary, 0)
	for rows.Next() {
		s := &model.SongSummary{}
		err := rows.Scan(&s.ID, &s.Title, &s.Artist, &s.Genre,
			&s.Duration, &s.FileType, &s.FileSize, &s.UploadDate)
		if err != nil {
			return nil, translateError("scan favorite row", err)
		}
		songs = append(songs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError("iterate favorites", err)
	}
	return songs, nil
}
