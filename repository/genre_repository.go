package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tunevault/model"
)

// GenreRepository defines the genre data operations.
type GenreRepository interface {
	CreateGenre(ctx context.Context, name string) (int64, error)
	GetGenreByID(ctx context.Context, id int64) (*model.Genre, error)
	ListGenres(ctx context.Context) ([]*model.Genre, error)
}

type mysqlGenreRepository struct {
	db *sql.DB
}

// NewMySQLGenreRepository creates a new mysqlGenreRepository.
func NewMySQLGenreRepository(db *sql.DB) GenreRepository {
	return &mysqlGenreRepository{db: db}
}

// CreateGenre adds a genre. Names are unique; a duplicate surfaces as a
// persistence error.
func (r *mysqlGenreRepository) CreateGenre(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("genre name is required: %w", model.ErrValidation)
	}
	res, err := r.db.ExecContext(ctx, "INSERT INTO Genres (name) VALUES (?)", name)
	if err != nil {
		return 0, translateError("create genre", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for genre: %w", err)
	}
	return id, nil
}

func (r *mysqlGenreRepository) GetGenreByID(ctx context.Context, id int64) (*model.Genre, error) {
	genre := &model.Genre{}
	err := r.db.QueryRowContext(ctx,
		"SELECT genre_id, name FROM Genres WHERE genre_id = ?", id).
		Scan(&genre.ID, &genre.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("genre: %w", model.ErrNotFound)
		}
		return nil, translateError("scan genre", err)
	}
	return genre, nil
}

func (r *mysqlGenreRepository) ListGenres(ctx context.Context) ([]*model.Genre, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT genre_id, name FROM Genres ORDER BY name")
	if err != nil {
		return nil, translateError("list genres", err)
	}
	defer rows.Close()

	genres := make([]*model.Genre, 0)
	for rows.Next() {
		genre := &model.Genre{}
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, translateError("scan genre row", err)
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError("iterate genres", err)
	}
	return genres, nil
}
