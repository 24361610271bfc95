package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tunevault/model"
)

// UserRepository defines the user data operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	DeleteUser(ctx context.Context, id int64) error
}

// mysqlUserRepository implements UserRepository for MySQL.
type mysqlUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new mysqlUserRepository.
func NewMySQLUserRepository(db *sql.DB) UserRepository {
	return &mysqlUserRepository{db: db}
}

// CreateUser adds a new user. A duplicate email surfaces as a persistence
// error with the cause attached.
func (r *mysqlUserRepository) CreateUser(ctx context.Context, user *model.User) (int64, error) {
	query := "INSERT INTO Users (first_name, last_name, email, password, is_admin) VALUES (?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.PasswordHash, user.IsAdmin)
	if err != nil {
		return 0, translateError("create user", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for user: %w", err)
	}
	return id, nil
}

// GetUserByID retrieves a user by their ID.
func (r *mysqlUserRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	query := "SELECT user_id, first_name, last_name, email, password, is_admin, created_at FROM Users WHERE user_id = ?"
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetUserByEmail retrieves a user by their email address.
func (r *mysqlUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := "SELECT user_id, first_name, last_name, email, password, is_admin, created_at FROM Users WHERE email = ?"
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *mysqlUserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user: %w", model.ErrNotFound)
		}
		return nil, translateError("scan user", err)
	}
	return user, nil
}

// UpdatePasswordHash replaces a user's stored password hash. Used to
// upgrade legacy digests after a successful login.
func (r *mysqlUserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE Users SET password = ? WHERE user_id = ?", hash, id)
	if err != nil {
		return translateError("update password hash", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("user %d: %w", id, model.ErrNotFound)
	}
	return nil
}

// DeleteUser removes a user. Playlists, favorites and history rows cascade
// away with it; songs and artists are untouched.
func (r *mysqlUserRepository) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM Users WHERE user_id = ?", id)
	if err != nil {
		return translateError("delete user", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("user %d: %w", id, model.ErrNotFound)
	}
	return nil
}
