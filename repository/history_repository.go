package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tunevault/model"
)

// HistoryRepository defines the listening-history operations. History is
// append-only.
type HistoryRepository interface {
	RecordPlay(ctx context.Context, userID, songID int64) error
	CountPlaysBySong(ctx context.Context, songID int64) (int64, error)
	ListRecentByUser(ctx context.Context, userID int64, limit int) ([]*model.ListeningHistory, error)
}

type mysqlHistoryRepository struct {
	db *sql.DB
}

// NewMySQLHistoryRepository creates a new mysqlHistoryRepository.
func NewMySQLHistoryRepository(db *sql.DB) HistoryRepository {
	return &mysqlHistoryRepository{db: db}
}

// RecordPlay appends one play event. Failures always surface; a write that
// silently vanishes would corrupt every popularity ranking built on this
// table.
func (r *mysqlHistoryRepository) RecordPlay(ctx context.Context, userID, songID int64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO Listening_History (user_id, song_id) VALUES (?, ?)", userID, songID)
	if err != nil {
		return translateError("record play", err)
	}
	return nil
}

func (r *mysqlHistoryRepository) CountPlaysBySong(ctx context.Context, songID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM Listening_History WHERE song_id = ?", songID).Scan(&count)
	if err != nil {
		return 0, translateError("count plays by song", err)
	}
	return count, nil
}

func (r *mysqlHistoryRepository) ListRecentByUser(ctx context.Context, userID int64, limit int) ([]*model.ListeningHistory, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT history_id, user_id, song_id, played_at
	FROM Listening_History
	WHERE user_id = ?
	ORDER BY played_at DESC
	LIMIT ?`, userID, limit)
	if err != nil {
		return nil, translateError("list recent history", err)
	}
	defer rows.Close()

	entries := make([]*model.ListeningHistory, 0)
	for rows.Next() {
		h := &model.ListeningHistory{}
		if err := rows.Scan(&h.HistoryID, &h.UserID, &h.SongID, &h.PlayedAt); err != nil {
			return nil, translateError("scan history row", err)
		}
		entries = append(entries, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}
