package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatFileSize(0))
	assert.Equal(t, "0 B", FormatFileSize(-5))
	assert.Equal(t, "512.00 B", FormatFileSize(512))
	assert.Equal(t, "1.00 KB", FormatFileSize(1024))
	assert.Equal(t, "1.50 KB", FormatFileSize(1536))
	assert.Equal(t, "4.00 MB", FormatFileSize(4*1024*1024))
	assert.Equal(t, "2.00 GB", FormatFileSize(2*1024*1024*1024))
	// Sizes past GB stay in GB.
	assert.Equal(t, "2048.00 GB", FormatFileSize(2*1024*1024*1024*1024))
}
