package repository

import (
	"context"
	"database/sql"

	"tunevault/logger"
	"tunevault/model"
)

// StatsRepository serves the dashboard. These are read-only aggregates:
// failures never propagate past this boundary, the dashboard degrades to
// zeros or an empty feed and the error goes to the log.
type StatsRepository interface {
	Stats(ctx context.Context) *model.Stats
	RecentActivity(ctx context.Context, limit int) []*model.ActivityItem
}

type mysqlStatsRepository struct {
	db *sql.DB
}

// NewMySQLStatsRepository creates a new mysqlStatsRepository.
func NewMySQLStatsRepository(db *sql.DB) StatsRepository {
	return &mysqlStatsRepository{db: db}
}

// Stats returns the total counts shown on the admin dashboard.
func (r *mysqlStatsRepository) Stats(ctx context.Context) *model.Stats {
	stats := &model.Stats{}
	counts := []struct {
		query string
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM Users", &stats.Users},
		{"SELECT COUNT(*) FROM Songs", &stats.Songs},
		{"SELECT COUNT(*) FROM Playlists", &stats.Playlists},
		{"SELECT COUNT(*) FROM Listening_History", &stats.Plays},
	}

	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			logger.Error("Dashboard count query failed",
				logger.String("query", c.query), logger.ErrorField(err))
			*c.dest = 0
		}
	}
	return stats
}

// RecentActivity merges the most recent registrations, uploads, playlist
// creations and plays into one time-ordered feed.
func (r *mysqlStatsRepository) RecentActivity(ctx context.Context, limit int) []*model.ActivityItem {
	query := `
	SELECT activity_type, detail, at FROM (
		SELECT ? AS activity_type, CONCAT(first_name, ' ', last_name) AS detail, created_at AS at
		FROM Users
		UNION ALL
		SELECT ?, title, upload_date FROM Songs
		UNION ALL
		SELECT ?, name, created_at FROM Playlists
		UNION ALL
		SELECT ?, CAST(song_id AS CHAR), played_at FROM Listening_History
	) activities
	ORDER BY at DESC
	LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query,
		model.ActivityUserRegistered, model.ActivitySongUploaded,
		model.ActivityPlaylistCreated, model.ActivitySongPlayed, limit)
	if err != nil {
		logger.Error("Recent activity query failed", logger.ErrorField(err))
		return []*model.ActivityItem{}
	}
	defer rows.Close()

	items := make([]*model.ActivityItem, 0, limit)
	for rows.Next() {
		item := &model.ActivityItem{}
		if err := rows.Scan(&item.Type, &item.Detail, &item.At); err != nil {
			logger.Error("Recent activity scan failed", logger.ErrorField(err))
			return items
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Recent activity iteration failed", logger.ErrorField(err))
	}
	return items
}
