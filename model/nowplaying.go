package model

// NowPlaying is the player's externally visible state snapshot.
// Both flags false means no track is loaded.
type NowPlaying struct {
	SongID  int64  `json:"songId"`
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Playing bool   `json:"playing"`
	Paused  bool   `json:"paused"`
}
