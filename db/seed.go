package db

import (
	"fmt"

	"tunevault/core/auth"
	"tunevault/logger"
	"tunevault/model"
)

// SeedDefaults populates an empty catalog with a starting admin account,
// a demo listener, the genre vocabulary and a few artists. Each group is
// skipped when its table already has rows, so reruns are harmless.
func SeedDefaults() error {
	if err := seedUsers(); err != nil {
		return err
	}
	if err := seedGenres(); err != nil {
		return err
	}
	if err := seedArtists(); err != nil {
		return err
	}
	logger.Info("Default data seeded")
	return nil
}

func seedUsers() error {
	var count int
	if err := DB.QueryRow("SELECT COUNT(*) FROM Users").Scan(&count); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		firstName, lastName, email, password string
		isAdmin                              bool
	}{
		{"Admin", "User", "admin@tunevault.local", "admin123", true},
		{"Demo", "Listener", "demo@tunevault.local", "demo123", false},
	}

	for _, u := range defaults {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.email, err)
		}
		_, err = DB.Exec(
			"INSERT INTO Users (first_name, last_name, email, password, is_admin) VALUES (?, ?, ?, ?, ?)",
			u.firstName, u.lastName, u.email, hash, u.isAdmin)
		if err != nil {
			return fmt.Errorf("failed to insert default user %s: %w", u.email, err)
		}
	}
	logger.Info("Seeded default users", logger.Int("count", len(defaults)))
	return nil
}

func seedGenres() error {
	var count int
	if err := DB.QueryRow("SELECT COUNT(*) FROM Genres").Scan(&count); err != nil {
		return fmt.Errorf("failed to count genres: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, name := range model.DefaultGenres {
		if _, err := DB.Exec("INSERT INTO Genres (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("failed to insert genre %s: %w", name, err)
		}
	}
	logger.Info("Seeded genres", logger.Int("count", len(model.DefaultGenres)))
	return nil
}

func seedArtists() error {
	var count int
	if err := DB.QueryRow("SELECT COUNT(*) FROM Artists").Scan(&count); err != nil {
		return fmt.Errorf("failed to count artists: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []struct{ name, bio string }{
		{"Unknown Artist", "Catch-all artist for uploads without attribution."},
		{"Various Artists", "Compilation releases."},
	}

	for _, a := range defaults {
		if _, err := DB.Exec("INSERT INTO Artists (name, bio) VALUES (?, ?)", a.name, a.bio); err != nil {
			return fmt.Errorf("failed to insert artist %s: %w", a.name, err)
		}
	}
	logger.Info("Seeded artists", logger.Int("count", len(defaults)))
	return nil
}
