package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tunevault/model"
)

// AlbumRepository defines the album data operations.
type AlbumRepository interface {
	CreateAlbum(ctx context.Context, album *model.Album) (int64, error)
	GetAlbumByID(ctx context.Context, id int64) (*model.Album, error)
	ListAlbumsByArtist(ctx context.Context, artistID int64) ([]*model.Album, error)
	UpdateCoverArt(ctx context.Context, id int64, coverArt []byte) error
	GetCoverArt(ctx context.Context, id int64) ([]byte, error)
}

type mysqlAlbumRepository struct {
	db *sql.DB
}

// NewMySQLAlbumRepository creates a new mysqlAlbumRepository.
func NewMySQLAlbumRepository(db *sql.DB) AlbumRepository {
	return &mysqlAlbumRepository{db: db}
}

func (r *mysqlAlbumRepository) CreateAlbum(ctx context.Context, album *model.Album) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO Albums (title, artist_id, release_year) VALUES (?, ?, ?)",
		album.Title, album.ArtistID, album.ReleaseYear)
	if err != nil {
		return 0, translateError("create album", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for album: %w", err)
	}
	return id, nil
}

// GetAlbumByID returns album metadata. Cover art is excluded; use
// GetCoverArt to fetch the blob.
func (r *mysqlAlbumRepository) GetAlbumByID(ctx context.Context, id int64) (*model.Album, error) {
	album := &model.Album{}
	err := r.db.QueryRowContext(ctx,
		"SELECT album_id, title, artist_id, release_year FROM Albums WHERE album_id = ?", id).
		Scan(&album.ID, &album.Title, &album.ArtistID, &album.ReleaseYear)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("album: %w", model.ErrNotFound)
		}
		return nil, translateError("scan album", err)
	}
	return album, nil
}

func (r *mysqlAlbumRepository) ListAlbumsByArtist(ctx context.Context, artistID int64) ([]*model.Album, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT album_id, title, artist_id, release_year FROM Albums WHERE artist_id = ? ORDER BY release_year DESC",
		artistID)
	if err != nil {
		return nil, translateError("list albums", err)
	}
	defer rows.Close()

	albums := make([]*model.Album, 0)
	for rows.Next() {
		album := &model.Album{}
		if err := rows.Scan(&album.ID, &album.Title, &album.ArtistID, &album.ReleaseYear); err != nil {
			return nil, translateError("scan album row", err)
		}
		albums = append(albums, album)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError("iterate albums", err)
	}
	return albums, nil
}

func (r *mysqlAlbumRepository) UpdateCoverArt(ctx context.Context, id int64, coverArt []byte) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE Albums SET cover_art = ? WHERE album_id = ?", coverArt, id)
	if err != nil {
		return translateError("update cover art", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("album %d: %w", id, model.ErrNotFound)
	}
	return nil
}

func (r *mysqlAlbumRepository) GetCoverArt(ctx context.Context, id int64) ([]byte, error) {
	var coverArt []byte
	err := r.db.QueryRowContext(ctx,
		"SELECT cover_art FROM Albums WHERE album_id = ?", id).Scan(&coverArt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("album: %w", model.ErrNotFound)
		}
		return nil, translateError("get cover art", err)
	}
	return coverArt, nil
}
