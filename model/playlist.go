package model

import "time"

// Playlist is a user-owned ordered collection of songs. Rows cascade away
// when the owning user is deleted.
type Playlist struct {
	ID          int64     `json:"id" gorm:"column:playlist_id;primaryKey;autoIncrement"`
	UserID      int64     `json:"userId" gorm:"column:user_id;not null"`
	Name        string    `json:"name" gorm:"column:name;size:100;not null"`
	Description string    `json:"description" gorm:"column:description;type:text"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
}

// TableName maps Playlist onto the shared schema.
func (Playlist) TableName() string {
	return "Playlists"
}

// PlaylistSong is the playlist membership row. Position is the 1-based
// ordinal within the playlist.
type PlaylistSong struct {
	PlaylistID int64     `json:"playlistId" gorm:"column:playlist_id;primaryKey"`
	SongID     int64     `json:"songId" gorm:"column:song_id;primaryKey"`
	Position   int       `json:"position" gorm:"column:position;not null"`
	AddedAt    time.Time `json:"addedAt" gorm:"column:added_at;autoCreateTime"`
}

// TableName maps PlaylistSong onto the shared schema.
func (PlaylistSong) TableName() string {
	return "Playlist_Songs"
}
