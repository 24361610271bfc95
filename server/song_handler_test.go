package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"tunevault/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// artistRepoStub can simulate losing a create-if-missing race: the first
// lookup misses, the insert trips the unique name index, and the retry
// finds the winner's row.
type artistRepoStub struct {
	byName     map[string]*model.Artist
	loseCreate bool
	creates    int
}

func (r *artistRepoStub) CreateArtist(_ context.Context, artist *model.Artist) (int64, error) {
	r.creates++
	if r.loseCreate {
		// Another writer inserted the same name first.
		r.byName[artist.Name] = &model.Artist{ID: 77, Name: artist.Name}
		return 0, fmt.Errorf("create artist: duplicate entry: %w", model.ErrPersistence)
	}
	artist.ID = 11
	r.byName[artist.Name] = artist
	return artist.ID, nil
}

func (r *artistRepoStub) GetArtistByName(_ context.Context, name string) (*model.Artist, error) {
	if a, ok := r.byName[name]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("artist %q: %w", name, model.ErrNotFound)
}

func (r *artistRepoStub) GetArtistByID(_ context.Context, id int64) (*model.Artist, error) {
	return nil, fmt.Errorf("artist %d: %w", id, model.ErrNotFound)
}

func (r *artistRepoStub) ListArtists(_ context.Context) ([]*model.Artist, error) {
	return nil, nil
}

func (r *artistRepoStub) UpdateImageURL(_ context.Context, _ int64, _ string) error { return nil }

func (r *artistRepoStub) DeleteArtist(_ context.Context, _ int64) error { return nil }

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/songs", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestResolveArtist(t *testing.T) {
	repo := &artistRepoStub{byName: map[string]*model.Artist{
		"Ann": {ID: 3, Name: "Ann"},
	}}
	h := &APIHandler{artistRepo: repo}

	// Explicit id wins.
	id, err := h.resolveArtist(formRequest(url.Values{"artistId": {"5"}}))
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	// Existing name resolves without an insert.
	id, err = h.resolveArtist(formRequest(url.Values{"artistName": {"Ann"}}))
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.Zero(t, repo.creates)

	// New name creates.
	id, err = h.resolveArtist(formRequest(url.Values{"artistName": {"Bob"}}))
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.Equal(t, 1, repo.creates)

	// Neither field is a validation error.
	_, err = h.resolveArtist(formRequest(url.Values{}))
	assert.ErrorIs(t, err, model.ErrValidation)
}

// Two uploads naming the same new artist: the loser's insert hits the
// unique name index and must settle on the winner's row instead of
// erroring out.
func TestResolveArtist_LostInsertRaceRefetches(t *testing.T) {
	repo := &artistRepoStub{
		byName:     map[string]*model.Artist{},
		loseCreate: true,
	}
	h := &APIHandler{artistRepo: repo}

	id, err := h.resolveArtist(formRequest(url.Values{"artistName": {"Carol"}}))
	require.NoError(t, err)
	assert.Equal(t, int64(77), id)
	assert.Equal(t, 1, repo.creates)
}
