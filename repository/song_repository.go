package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tunevault/model"
)

// SongRepository defines the song data operations.
type SongRepository interface {
	CreateSong(ctx context.Context, song *model.Song) (int64, error)
	FetchSong(ctx context.Context, id int64) (*model.SongData, error)
	GetSongByID(ctx context.Context, id int64) (*model.Song, error)
	ListPopular(ctx context.Context, limit int) ([]*model.SongSummary, error)
	ListMostPlayedByUser(ctx context.Context, userID int64, limit int) ([]*model.SongSummary, error)
	SearchSongs(ctx context.Context, query string, limit int) ([]*model.SongSummary, error)
	DeleteSong(ctx context.Context, id int64) error
}

type mysqlSongRepository struct {
	db *sql.DB
}

// NewMySQLSongRepository creates a new mysqlSongRepository.
func NewMySQLSongRepository(db *sql.DB) SongRepository {
	return &mysqlSongRepository{db: db}
}

// CreateSong inserts a song with its payload. References to missing
// artists, albums or genres surface as persistence errors.
func (r *mysqlSongRepository) CreateSong(ctx context.Context, song *model.Song) (int64, error) {
	query := `INSERT INTO Songs (title, artist_id, album_id, genre_id, duration, file_data, file_type, file_size)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		song.Title, song.ArtistID, song.AlbumID, song.GenreID,
		song.Duration, song.FileData, song.FileType, song.FileSize)
	if err != nil {
		return 0, translateError("create song", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for song: %w", err)
	}
	return id, nil
}

// FetchSong returns the playable view of a song: payload bytes plus title
// and artist name. Songs whose artist was deleted keep playing with an
// empty artist name.
func (r *mysqlSongRepository) FetchSong(ctx context.Context, id int64) (*model.SongData, error) {
	query := `SELECT s.song_id, s.title, IFNULL(a.name, ''), s.file_type, s.file_data
	          FROM Songs s
	          LEFT JOIN Artists a ON s.artist_id = a.artist_id
	          WHERE s.song_id = ?`

	data := &model.SongData{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&data.ID, &data.Title, &data.Artist, &data.FileType, &data.Data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("song %d: %w", id, model.ErrNotFound)
		}
		return nil, translateError("fetch song", err)
	}
	return data, nil
}

// GetSongByID returns song metadata without the payload.
func (r *mysqlSongRepository) GetSongByID(ctx context.Context, id int64) (*model.Song, error) {
	query := `SELECT song_id, title, artist_id, album_id, genre_id, duration, file_type, file_size, upload_date
	          FROM Songs WHERE song_id = ?`

	song := &model.Song{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&song.ID, &song.Title, &song.ArtistID, &song.AlbumID, &song.GenreID,
		&song.Duration, &song.FileType, &song.FileSize, &song.UploadDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("song %d: %w", id, model.ErrNotFound)
		}
		return nil, translateError("get song", err)
	}
	return song, nil
}

// ListPopular ranks songs by total play count, ties broken by song id for a
// stable order. When nothing has ever been played the catalog falls back to
// most-recently-uploaded ordering.
func (r *mysqlSongRepository) ListPopular(ctx context.Context, limit int) ([]*model.SongSummary, error) {
	var plays int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM Listening_History").Scan(&plays); err != nil {
		return nil, translateError("count plays", err)
	}

	if plays == 0 {
		return r.listSummaries(ctx, `
	SELECT s.song_id, s.title, IFNULL(a.name, ''), IFNULL(g.name, ''), 0,
	       s.duration, s.file_type, s.file_size, s.upload_date
	FROM Songs s
	LEFT JOIN Artists a ON s.artist_id = a.artist_id
	LEFT JOIN Genres g ON s.genre_id = g.genre_id
	ORDER BY s.upload_date DESC
	LIMIT ?`, limit)
	}

	return r.listSummaries(ctx, `
	SELECT s.song_id, s.title, IFNULL(a.name, ''), IFNULL(g.name, ''), COUNT(lh.history_id),
	       s.duration, s.file_type, s.file_size, s.upload_date
	FROM Songs s
	LEFT JOIN Artists a ON s.artist_id = a.artist_id
	LEFT JOIN Genres g ON s.genre_id = g.genre_id
	LEFT JOIN Listening_History lh ON s.song_id = lh.song_id
	GROUP BY s.song_id
	ORDER BY COUNT(lh.history_id) DESC, s.song_id ASC
	LIMIT ?`, limit)
}

// ListMostPlayedByUser ranks songs by the given user's personal play count.
// Despite the name this is derived from listening history, not the
// favorites table.
func (r *mysqlSongRepository) ListMostPlayedByUser(ctx context.Context, userID int64, limit int) ([]*model.SongSummary, error) {
	return r.listSummaries(ctx, `
	SELECT s.song_id, s.title, IFNULL(a.name, ''), IFNULL(g.name, ''), COUNT(lh.history_id),
	       s.duration, s.file_type, s.file_size, s.upload_date
	FROM Songs s
	LEFT JOIN Artists a ON s.artist_id = a.artist_id
	LEFT JOIN Genres g ON s.genre_id = g.genre_id
	JOIN Listening_History lh ON s.song_id = lh.song_id AND lh.user_id = ?
	GROUP BY s.song_id
	ORDER BY COUNT(lh.history_id) DESC, s.song_id ASC
	LIMIT ?`, userID, limit)
}

// SearchSongs matches titles and artist names case-insensitively.
func (r *mysqlSongRepository) SearchSongs(ctx context.Context, query string, limit int) ([]*model.SongSummary, error) {
	pattern := "%" + query + "%"
	return r.listSummaries(ctx, `
	SELECT s.song_id, s.title, IFNULL(a.name, ''), IFNULL(g.name, ''), COUNT(lh.history_id),
	       s.duration, s.file_type, s.file_size, s.upload_date
	FROM Songs s
	LEFT JOIN Artists a ON s.artist_id = a.artist_id
	LEFT JOIN Genres g ON s.genre_id = g.genre_id
	LEFT JOIN Listening_History lh ON s.song_id = lh.song_id
	WHERE s.title LIKE ? OR a.name LIKE ?
	GROUP BY s.song_id
	ORDER BY s.title ASC
	LIMIT ?`, pattern, pattern, limit)
}

func (r *mysqlSongRepository) listSummaries(ctx context.Context, query string, args ...interface{}) ([]*model.SongSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError("list songs", err)
	}
	defer rows.Close()

	summaries := make([]*model.SongSummary, 0)
	for rows.Next() {
		s := &model.SongSummary{}
		err := rows.Scan(&s.ID, &s.Title, &s.Artist, &s.Genre, &s.PlayCount,
			&s.Duration, &s.FileType, &s.FileSize, &s.UploadDate)
		if err != nil {
			return nil, translateError("scan song summary", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError("iterate songs", err)
	}
	return summaries, nil
}

// DeleteSong removes a song; playlist membership, favorites and history
// rows cascade away.
func (r *mysqlSongRepository) DeleteSong(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM Songs WHERE song_id = ?", id)
	if err != nil {
		return translateError("delete song", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("song %d: %w", id, model.ErrNotFound)
	}
	return nil
}
