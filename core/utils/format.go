package utils

import "fmt"

// FormatFileSize renders a byte count as a human-readable size, e.g.
// "4.00 KB". Used by listing responses so clients do not re-implement it.
func FormatFileSize(sizeBytes int64) string {
	if sizeBytes <= 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB"}
	size := float64(sizeBytes)
	unitIndex := 0

	for size >= 1024 && unitIndex < len(units)-1 {
		size /= 1024.0
		unitIndex++
	}

	return fmt.Sprintf("%.2f %s", size, units[unitIndex])
}
