// Package audio derives playback metadata from raw audio payloads without
// an external prober. MP3, FLAC and WAV containers are parsed natively;
// anything else gets a best-effort format sniff before giving up with 0.
package audio

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
	"github.com/tcolgate/mp3"
)

// DetectFileType returns the lowercased extension of a filename without the
// leading dot, or "" when the name has no extension.
func DetectFileType(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ProbeDuration returns the duration of the payload in whole seconds.
// Unknown or unparseable formats yield 0 rather than an error; a song with
// no known duration is still playable.
func ProbeDuration(data []byte, fileType string) int {
	switch strings.ToLower(fileType) {
	case "mp3":
		return mp3Duration(data)
	case "flac":
		return flacDuration(data)
	case "wav", "wave":
		return wavDuration(data)
	default:
		return sniffDuration(data)
	}
}

// ProbeMetadata extracts embedded title and artist tags. Empty strings mean
// the payload carries no usable tags.
func ProbeMetadata(data []byte) (title, artist string) {
	m, err := tag.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return "", ""
	}
	return m.Title(), m.Artist()
}

func mp3Duration(data []byte) int {
	d := mp3.NewDecoder(bytes.NewReader(data))
	var (
		frame   mp3.Frame
		skipped int
		total   time.Duration
	)
	for {
		if err := d.Decode(&frame, &skipped); err != nil {
			if err != io.EOF && total == 0 {
				return 0
			}
			break
		}
		total += frame.Duration()
	}
	return int(total.Round(time.Second) / time.Second)
}

func flacDuration(data []byte) int {
	stream, err := flac.Parse(bytes.NewReader(data))
	if err != nil {
		return 0
	}
	defer stream.Close()

	info := stream.Info
	if info == nil || info.SampleRate == 0 {
		return 0
	}
	return int(info.NSamples / uint64(info.SampleRate))
}

func wavDuration(data []byte) int {
	d := wav.NewDecoder(bytes.NewReader(data))
	dur, err := d.Duration()
	if err != nil {
		return 0
	}
	return int(dur.Round(time.Second) / time.Second)
}

// sniffDuration identifies an untagged payload by magic bytes and retries
// the matching parser.
func sniffDuration(data []byte) int {
	_, fileType, err := tag.Identify(bytes.NewReader(data))
	if err != nil {
		return 0
	}
	switch fileType {
	case tag.MP3:
		return mp3Duration(data)
	case tag.FLAC:
		return flacDuration(data)
	default:
		return 0
	}
}
