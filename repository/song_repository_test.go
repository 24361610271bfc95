package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSongRepoWithMock(t *testing.T) (SongRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewMySQLSongRepository(db), mock, db
}

func summaryColumns() []string {
	return []string{"song_id", "title", "artist", "genre", "play_count",
		"duration", "file_type", "file_size", "upload_date"}
}

func TestListPopular_RanksByPlayCount(t *testing.T) {
	repo, mock, db := newSongRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM Listening_History`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	now := time.Now()
	rows := sqlmock.NewRows(summaryColumns()).
		AddRow(3, "Hit", "Ann", "Rock", 5, 180, "mp3", 4096, now).
		AddRow(1, "Deep Cut", "Bob", "", 2, 200, "flac", 8192, now)
	mock.ExpectQuery(`ORDER BY COUNT\(lh\.history_id\) DESC, s\.song_id ASC`).
		WithArgs(8).
		WillReturnRows(rows)

	songs, err := repo.ListPopular(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, int64(3), songs[0].ID)
	assert.Equal(t, int64(5), songs[0].PlayCount)
	assert.Equal(t, int64(1), songs[1].ID)
	assert.Equal(t, int64(2), songs[1].PlayCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// With no plays recorded anywhere the listing must fall back to newest
// uploads instead of an arbitrary zero-count order.
func TestListPopular_EmptyHistoryFallsBackToUploadDate(t *testing.T) {
	repo, mock, db := newSongRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM Listening_History`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	now := time.Now()
	rows := sqlmock.NewRows(summaryColumns()).
		AddRow(9, "Newest", "Ann", "", 0, 120, "wav", 1024, now).
		AddRow(8, "Older", "Bob", "Jazz", 0, 130, "mp3", 2048, now.Add(-time.Hour))
	mock.ExpectQuery(`ORDER BY s\.upload_date DESC`).
		WithArgs(8).
		WillReturnRows(rows)

	songs, err := repo.ListPopular(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, int64(9), songs[0].ID)
	assert.Equal(t, int64(8), songs[1].ID)

	// The ranked query must not have been issued.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMostPlayedByUser_FiltersByUser(t *testing.T) {
	repo, mock, db := newSongRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(summaryColumns()).
		AddRow(2, "Favourite", "Ann", "", 4, 150, "mp3", 512, time.Now())
	mock.ExpectQuery(`JOIN Listening_History lh ON s\.song_id = lh\.song_id AND lh\.user_id = \?`).
		WithArgs(int64(42), 5).
		WillReturnRows(rows)

	songs, err := repo.ListMostPlayedByUser(context.Background(), 42, 5)
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, int64(4), songs[0].PlayCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}
