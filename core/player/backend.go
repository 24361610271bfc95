package player

// Backend is the audio output the player drives. Implementations take a
// local file path and own the actual decoding and output; the player only
// sequences calls. Stop must not return until playback has ceased.
type Backend interface {
	Load(path string) error
	Play() error
	Pause() error
	Resume() error
	Stop() error
	IsBusy() bool
}
