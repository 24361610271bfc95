package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tunevault/model"
)

// ArtistRepository defines the artist data operations.
type ArtistRepository interface {
	CreateArtist(ctx context.Context, artist *model.Artist) (int64, error)
	GetArtistByID(ctx context.Context, id int64) (*model.Artist, error)
	GetArtistByName(ctx context.Context, name string) (*model.Artist, error)
	ListArtists(ctx context.Context) ([]*model.Artist, error)
	UpdateImageURL(ctx context.Context, id int64, imageURL string) error
	DeleteArtist(ctx context.Context, id int64) error
}

type mysqlArtistRepository struct {
	db *sql.DB
}

// NewMySQLArtistRepository creates a new mysqlArtistRepository.
func NewMySQLArtistRepository(db *sql.DB) ArtistRepository {
	return &mysqlArtistRepository{db: db}
}

func (r *mysqlArtistRepository) CreateArtist(ctx context.Context, artist *model.Artist) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO Artists (name, bio, image_url) VALUES (?, ?, ?)",
		artist.Name, artist.Bio, artist.ImageURL)
	if err != nil {
		return 0, translateError("create artist", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for artist: %w", err)
	}
	return id, nil
}

func (r *mysqlArtistRepository) GetArtistByID(ctx context.Context, id int64) (*model.Artist, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT artist_id, name, bio, image_url FROM Artists WHERE artist_id = ?", id)
	return r.scanArtist(row)
}

func (r *mysqlArtistRepository) GetArtistByName(ctx context.Context, name string) (*model.Artist, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT artist_id, name, bio, image_url FROM Artists WHERE name = ? LIMIT 1", name)
	return r.scanArtist(row)
}

func (r *mysqlArtistRepository) scanArtist(row *sql.Row) (*model.Artist, error) {
	artist := &model.Artist{}
	err := row.Scan(&artist.ID, &artist.Name, &artist.Bio, &artist.ImageURL)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("artist: %w", model.ErrNotFound)
		}
		return nil, translateError("scan artist", err)
	}
	return artist, nil
}

func (r *mysqlArtistRepository) ListArtists(ctx context.Context) ([]*model.Artist, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT artist_id, name, bio, image_url FROM Artists ORDER BY name")
	if err != nil {
		return nil, translateError("list artists", err)
	}
	defer rows.Close()

	artists := make([]*model.Artist, 0)
	for rows.Next() {
		artist := &model.Artist{}
		if err := rows.Scan(&artist.ID, &artist.Name, &artist.Bio, &artist.ImageURL); err != nil {
			return nil, translateError("scan artist row", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError("iterate artists", err)
	}
	return artists, nil
}

// UpdateImageURL points an artist at an uploaded image object.
func (r *mysqlArtistRepository) UpdateImageURL(ctx context.Context, id int64, imageURL string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE Artists SET image_url = ? WHERE artist_id = ?", imageURL, id)
	if err != nil {
		return translateError("update artist image", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("artist %d: %w", id, model.ErrNotFound)
	}
	return nil
}

// DeleteArtist removes an artist. Dependent songs and albums keep their
// rows with the artist reference nulled out.
func (r *mysqlArtistRepository) DeleteArtist(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM Artists WHERE artist_id = ?", id)
	if err != nil {
		return translateError("delete artist", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("artist %d: %w", id, model.ErrNotFound)
	}
	return nil
}
