package model

import "time"

// ListeningHistory is one append-only play event. It doubles as the ranking
// signal for popular and per-user most-played queries.
type ListeningHistory struct {
	HistoryID int64     `json:"historyId"`
	UserID    int64     `json:"userId"`
	SongID    int64     `json:"songId"`
	PlayedAt  time.Time `json:"playedAt"`
}

// Favorite is a user's explicit song bookmark.
type Favorite struct {
	UserID  int64     `json:"userId"`
	SongID  int64     `json:"songId"`
	AddedAt time.Time `json:"addedAt"`
}

// Stats are the dashboard aggregate counters.
type Stats struct {
	Users     int64 `json:"users"`
	Songs     int64 `json:"songs"`
	Playlists int64 `json:"playlists"`
	Plays     int64 `json:"plays"`
}

// Activity types for the dashboard feed.
const (
	ActivityUserRegistered  = "user_registered"
	ActivitySongUploaded    = "song_uploaded"
	ActivityPlaylistCreated = "playlist_created"
	ActivitySongPlayed      = "song_played"
)

// ActivityItem is one row of the dashboard's recent-activity feed.
type ActivityItem struct {
	Type   string    `json:"type"`
	Detail string    `json:"detail"`
	At     time.Time `json:"at"`
}
