package model

import "database/sql"

// Album represents a release. CoverArt is stored inline in the database;
// it is omitted from listing queries and fetched on demand.
type Album struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	ArtistID    sql.NullInt64 `json:"artistId"`
	ReleaseYear sql.NullInt64 `json:"releaseYear"`
	CoverArt    []byte        `json:"-"`
}
