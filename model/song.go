package model

import (
	"database/sql"
	"time"
)

// Song represents an audio track with its payload stored inline.
// FileSize always equals len(FileData); FileType is the extension the
// duration was derived from.
type Song struct {
	ID         int64         `json:"id"`
	Title      string        `json:"title"`
	ArtistID   sql.NullInt64 `json:"artistId"`
	AlbumID    sql.NullInt64 `json:"albumId"`
	GenreID    sql.NullInt64 `json:"genreId"`
	Duration   int           `json:"duration"` // seconds
	FileData   []byte        `json:"-"`
	FileType   string        `json:"fileType"`
	FileSize   int64         `json:"fileSize"`
	UploadDate time.Time     `json:"uploadDate"`
}

// SongData is the playable view of a song: the payload plus the metadata a
// player needs to label it.
type SongData struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	FileType string `json:"fileType"`
	Data     []byte `json:"-"`
}

// SongSummary is a listing row: song metadata joined with artist and genre
// names plus the play count used for ranking.
type SongSummary struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Artist            string    `json:"artist"`
	Genre             string    `json:"genre,omitempty"`
	PlayCount         int64     `json:"playCount"`
	Duration          int       `json:"duration"`
	FileType          string    `json:"fileType"`
	FileSize          int64     `json:"fileSize"`
	FileSizeFormatted string    `json:"fileSizeFormatted"`
	UploadDate        time.Time `json:"uploadDate"`
}
