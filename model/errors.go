package model

import "errors"

// Error taxonomy for the catalog store and player. Callers match with
// errors.Is; wrapped causes stay available for logging.
var (
	// ErrNotFound means the referenced song, user, artist, genre or album
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the input was malformed (empty payload,
	// unrecognized extension, missing required field).
	ErrValidation = errors.New("validation failed")

	// ErrPersistence means a constraint violation (duplicate unique value,
	// foreign key violation) or another write failure.
	ErrPersistence = errors.New("persistence failure")

	// ErrConnection means the database is unreachable.
	ErrConnection = errors.New("database unreachable")

	// ErrPlayback means the audio backend failed to load or play the
	// materialized file.
	ErrPlayback = errors.New("playback failure")
)
