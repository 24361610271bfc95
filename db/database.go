package db

import (
	"database/sql"
	"fmt"

	"tunevault/config"
	"tunevault/logger"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

var DB *sql.DB

// ConnectDB establishes the shared database connection.
func ConnectDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = DB.Ping(); err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to the database",
		logger.String("host", cfg.DBHost), logger.String("db", cfg.DBName))
	return nil
}

// CloseDB closes the shared connection.
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// schemaStatements is the full schema in dependency order. The referential
// policies are part of the contract: artist deletion nulls out dependent
// songs and albums, user deletion cascades to playlists, favorites and
// history.
var schemaStatements = []struct {
	name  string
	query string
}{
	{"Users", `
	CREATE TABLE IF NOT EXISTS Users (
		user_id INT AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(50) NOT NULL,
		last_name VARCHAR(50) NOT NULL,
		email VARCHAR(100) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		is_admin BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`},
	{"Artists", `
	CREATE TABLE IF NOT EXISTS Artists (
		artist_id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		bio TEXT,
		image_url VARCHAR(255)
	)`},
	{"Albums", `
	CREATE TABLE IF NOT EXISTS Albums (
		album_id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(100) NOT NULL,
		artist_id INT,
		release_year INT,
		cover_art MEDIUMBLOB,
		FOREIGN KEY (artist_id) REFERENCES Artists(artist_id) ON DELETE SET NULL
	)`},
	{"Genres", `
	CREATE TABLE IF NOT EXISTS Genres (
		genre_id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL UNIQUE
	)`},
	{"Songs", `
	CREATE TABLE IF NOT EXISTS Songs (
		song_id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(100) NOT NULL,
		artist_id INT,
		album_id INT,
		genre_id INT,
		duration INT,
		file_data LONGBLOB NOT NULL,
		file_type VARCHAR(10) NOT NULL,
		file_size INT NOT NULL,
		upload_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (artist_id) REFERENCES Artists(artist_id) ON DELETE SET NULL,
		FOREIGN KEY (album_id) REFERENCES Albums(album_id) ON DELETE SET NULL,
		FOREIGN KEY (genre_id) REFERENCES Genres(genre_id) ON DELETE SET NULL
	)`},
	{"Playlists", `
	CREATE TABLE IF NOT EXISTS Playlists (
		playlist_id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		name VARCHAR(100) NOT NULL,
		description TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES Users(user_id) ON DELETE CASCADE
	)`},
	{"Playlist_Songs", `
	CREATE TABLE IF NOT EXISTS Playlist_Songs (
		playlist_id INT NOT NULL,
		song_id INT NOT NULL,
		position INT NOT NULL,
		added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (playlist_id, song_id),
		FOREIGN KEY (playlist_id) REFERENCES Playlists(playlist_id) ON DELETE CASCADE,
		FOREIGN KEY (song_id) REFERENCES Songs(song_id) ON DELETE CASCADE
	)`},
	{"User_Favorites", `
	CREATE TABLE IF NOT EXISTS User_Favorites (
		user_id INT NOT NULL,
		song_id INT NOT NULL,
		added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, song_id),
		FOREIGN KEY (user_id) REFERENCES Users(user_id) ON DELETE CASCADE,
		FOREIGN KEY (song_id) REFERENCES Songs(song_id) ON DELETE CASCADE
	)`},
	{"Listening_History", `
	CREATE TABLE IF NOT EXISTS Listening_History (
		history_id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		song_id INT NOT NULL,
		played_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES Users(user_id) ON DELETE CASCADE,
		FOREIGN KEY (song_id) REFERENCES Songs(song_id) ON DELETE CASCADE
	)`},
}

// InitDB creates the schema if it does not exist.
func InitDB() error {
	for _, stmt := range schemaStatements {
		if _, err := DB.Exec(stmt.query); err != nil {
			return fmt.Errorf("failed to create %s table: %w", stmt.name, err)
		}
	}

	logger.Info("Database schema initialized")
	return nil
}
