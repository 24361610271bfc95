package catalog

import (
	"context"
	"fmt"
	"testing"

	"tunevault/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSongRepo struct {
	created []*model.Song
	nextID  int64
	failing bool
}

func (r *fakeSongRepo) CreateSong(_ context.Context, song *model.Song) (int64, error) {
	if r.failing {
		return 0, fmt.Errorf("insert failed: %w", model.ErrPersistence)
	}
	r.nextID++
	r.created = append(r.created, song)
	return r.nextID, nil
}

func (r *fakeSongRepo) FetchSong(_ context.Context, id int64) (*model.SongData, error) {
	return nil, fmt.Errorf("song %d: %w", id, model.ErrNotFound)
}

func (r *fakeSongRepo) GetSongByID(_ context.Context, id int64) (*model.Song, error) {
	return nil, fmt.Errorf("song %d: %w", id, model.ErrNotFound)
}

func (r *fakeSongRepo) ListPopular(_ context.Context, _ int) ([]*model.SongSummary, error) {
	return nil, nil
}

func (r *fakeSongRepo) ListMostPlayedByUser(_ context.Context, _ int64, _ int) ([]*model.SongSummary, error) {
	return nil, nil
}

func (r *fakeSongRepo) SearchSongs(_ context.Context, _ string, _ int) ([]*model.SongSummary, error) {
	return nil, nil
}

func (r *fakeSongRepo) DeleteSong(_ context.Context, _ int64) error { return nil }

type fakeHistoryRepo struct {
	plays   int
	failing bool
}

func (r *fakeHistoryRepo) RecordPlay(_ context.Context, _, _ int64) error {
	if r.failing {
		return fmt.Errorf("insert failed: %w", model.ErrPersistence)
	}
	r.plays++
	return nil
}

func (r *fakeHistoryRepo) CountPlaysBySong(_ context.Context, _ int64) (int64, error) {
	return 0, nil
}

func (r *fakeHistoryRepo) ListRecentByUser(_ context.Context, _ int64, _ int) ([]*model.ListeningHistory, error) {
	return nil, nil
}

func validUpload() UploadRequest {
	return UploadRequest{
		FileBytes: []byte("fake audio payload"),
		Filename:  "take-one.mp3",
		Title:     "Take One",
		ArtistID:  3,
	}
}

func TestUploadSong_PersistsDerivedFields(t *testing.T) {
	songs := &fakeSongRepo{}
	store := NewStore(songs, &fakeHistoryRepo{})

	req := validUpload()
	req.GenreID = 2
	id, err := store.UploadSong(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.Len(t, songs.created, 1)
	song := songs.created[0]
	assert.Equal(t, "Take One", song.Title)
	assert.Equal(t, "mp3", song.FileType)
	assert.Equal(t, int64(len(req.FileBytes)), song.FileSize)
	assert.Equal(t, int64(3), song.ArtistID.Int64)
	assert.True(t, song.GenreID.Valid)
	assert.False(t, song.AlbumID.Valid)
	// Garbage bytes carry no parseable header.
	assert.Equal(t, 0, song.Duration)
}

func TestUploadSong_Validation(t *testing.T) {
	store := NewStore(&fakeSongRepo{}, &fakeHistoryRepo{})

	req := validUpload()
	req.FileBytes = nil
	_, err := store.UploadSong(context.Background(), req)
	assert.ErrorIs(t, err, model.ErrValidation)

	req = validUpload()
	req.Title = ""
	_, err = store.UploadSong(context.Background(), req)
	assert.ErrorIs(t, err, model.ErrValidation)

	req = validUpload()
	req.ArtistID = 0
	_, err = store.UploadSong(context.Background(), req)
	assert.ErrorIs(t, err, model.ErrValidation)

	req = validUpload()
	req.Filename = "noextension"
	_, err = store.UploadSong(context.Background(), req)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestUploadSong_RepositoryFailurePropagates(t *testing.T) {
	store := NewStore(&fakeSongRepo{failing: true}, &fakeHistoryRepo{})

	_, err := store.UploadSong(context.Background(), validUpload())
	assert.ErrorIs(t, err, model.ErrPersistence)
}

func TestRecordPlay_Contract(t *testing.T) {
	history := &fakeHistoryRepo{}
	store := NewStore(&fakeSongRepo{}, history)

	ok, err := store.RecordPlay(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, history.plays)

	history.failing = true
	ok, err = store.RecordPlay(context.Background(), 7, 1)
	assert.ErrorIs(t, err, model.ErrPersistence)
	assert.False(t, ok)
	assert.Equal(t, 1, history.plays)
}
