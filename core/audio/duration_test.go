package audio

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFileType(t *testing.T) {
	assert.Equal(t, "mp3", DetectFileType("track.mp3"))
	assert.Equal(t, "flac", DetectFileType("My Song.FLAC"))
	assert.Equal(t, "wav", DetectFileType("/tmp/uploads/take.2.wav"))
	assert.Equal(t, "", DetectFileType("noextension"))
	assert.Equal(t, "", DetectFileType(""))
}

// pcmWAV builds a canonical PCM WAV payload of the given length.
func pcmWAV(sampleRate, channels, bitsPerSample, seconds int) []byte {
	blockAlign := channels * bitsPerSample / 8
	dataLen := sampleRate * blockAlign * seconds

	var buf bytes.Buffer
	le := binary.LittleEndian

	buf.WriteString("RIFF")
	binary.Write(&buf, le, uint32(36+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, le, uint32(16))
	binary.Write(&buf, le, uint16(1)) // PCM
	binary.Write(&buf, le, uint16(channels))
	binary.Write(&buf, le, uint32(sampleRate))
	binary.Write(&buf, le, uint32(sampleRate*blockAlign))
	binary.Write(&buf, le, uint16(blockAlign))
	binary.Write(&buf, le, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, le, uint32(dataLen))
	buf.Write(make([]byte, dataLen))

	return buf.Bytes()
}

func TestProbeDuration_WAV(t *testing.T) {
	data := pcmWAV(8000, 1, 16, 3)
	assert.Equal(t, 3, ProbeDuration(data, "wav"))
	assert.Equal(t, 3, ProbeDuration(data, "wave"))
}

func TestProbeDuration_Unparseable(t *testing.T) {
	garbage := []byte("definitely not audio data")

	assert.Equal(t, 0, ProbeDuration(garbage, "mp3"))
	assert.Equal(t, 0, ProbeDuration(garbage, "flac"))
	assert.Equal(t, 0, ProbeDuration(garbage, "wav"))
	assert.Equal(t, 0, ProbeDuration(garbage, "ogg"))
	assert.Equal(t, 0, ProbeDuration(nil, "mp3"))
}

func TestProbeMetadata_NoTags(t *testing.T) {
	title, artist := ProbeMetadata([]byte("no tags in here"))
	assert.Empty(t, title)
	assert.Empty(t, artist)
}
