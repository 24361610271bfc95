package auth

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// FileSession answers "who is calling" for local, single-user invocations.
// The user id lives in a plaintext marker file; there is no cryptographic
// session validation at this layer, matching the trust level expected by
// callers.
type FileSession struct {
	path string
}

// NewFileSession returns a session backed by the given marker file.
func NewFileSession(path string) *FileSession {
	return &FileSession{path: path}
}

// CurrentUserID reads the logged-in user id from the marker file.
func (s *FileSession) CurrentUserID() (int64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, fmt.Errorf("not logged in: %w", err)
	}
	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return 0, fmt.Errorf("not logged in: marker file is empty")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id in marker file: %w", err)
	}
	return id, nil
}

// SetCurrentUser records the logged-in user id.
func (s *FileSession) SetCurrentUser(userID int64) error {
	if err := os.WriteFile(s.path, []byte(strconv.FormatInt(userID, 10)), 0600); err != nil {
		return fmt.Errorf("failed to write session marker: %w", err)
	}
	return nil
}

// Clear logs the current user out.
func (s *FileSession) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session marker: %w", err)
	}
	return nil
}
