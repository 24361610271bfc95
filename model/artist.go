package model

import "database/sql"

// Artist represents a performing artist.
type Artist struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Bio      sql.NullString `json:"bio,omitempty"`
	ImageURL sql.NullString `json:"imageUrl,omitempty"`
}
