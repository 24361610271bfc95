package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schemaFor(t *testing.T, table string) string {
	t.Helper()
	for _, stmt := range schemaStatements {
		if stmt.name == table {
			return stmt.query
		}
	}
	t.Fatalf("no schema statement for table %s", table)
	return ""
}

// Deleting an artist must not delete their songs or albums; deleting a
// user must take their playlists, favorites and history with them. These
// policies live in the DDL, so pin them there.
func TestSchema_ReferentialPolicies(t *testing.T) {
	setNull := []struct{ table, ref string }{
		{"Albums", "REFERENCES Artists(artist_id) ON DELETE SET NULL"},
		{"Songs", "REFERENCES Artists(artist_id) ON DELETE SET NULL"},
		{"Songs", "REFERENCES Albums(album_id) ON DELETE SET NULL"},
		{"Songs", "REFERENCES Genres(genre_id) ON DELETE SET NULL"},
	}
	for _, tc := range setNull {
		assert.Contains(t, schemaFor(t, tc.table), tc.ref, "table %s", tc.table)
	}

	cascade := []struct{ table, ref string }{
		{"Playlists", "REFERENCES Users(user_id) ON DELETE CASCADE"},
		{"Playlist_Songs", "REFERENCES Playlists(playlist_id) ON DELETE CASCADE"},
		{"Playlist_Songs", "REFERENCES Songs(song_id) ON DELETE CASCADE"},
		{"User_Favorites", "REFERENCES Users(user_id) ON DELETE CASCADE"},
		{"User_Favorites", "REFERENCES Songs(song_id) ON DELETE CASCADE"},
		{"Listening_History", "REFERENCES Users(user_id) ON DELETE CASCADE"},
		{"Listening_History", "REFERENCES Songs(song_id) ON DELETE CASCADE"},
	}
	for _, tc := range cascade {
		assert.Contains(t, schemaFor(t, tc.table), tc.ref, "table %s", tc.table)
	}
}

func TestSchema_UniqueConstraints(t *testing.T) {
	assert.Contains(t, schemaFor(t, "Users"), "email VARCHAR(100) NOT NULL UNIQUE")
	// Artist and genre names are identity: concurrent create-if-missing
	// relies on the database rejecting the second insert.
	assert.Contains(t, schemaFor(t, "Artists"), "name VARCHAR(100) NOT NULL UNIQUE")
	assert.Contains(t, schemaFor(t, "Genres"), "name VARCHAR(50) NOT NULL UNIQUE")
}

func TestSchema_CreatesAllTables(t *testing.T) {
	require.Len(t, schemaStatements, 9)
	for _, stmt := range schemaStatements {
		assert.Contains(t, stmt.query, "CREATE TABLE IF NOT EXISTS "+stmt.name)
	}
}
