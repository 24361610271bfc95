package model

// Genre is a named song category. Names are unique.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DefaultGenres is the vocabulary seeded into an empty catalog.
var DefaultGenres = []string{
	"Pop", "Rock", "Hip Hop", "R&B", "Country",
	"Electronic", "Jazz", "Classical", "Folk", "Metal",
}
