package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteSessionFixture writes a raw session JSON file under dir using the
// given storage key
func WriteSessionFixture(t *testing.T, dir, key, data string) string {
	t.Helper()
	path := filepath.Join(dir, key+".json")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write session fixture %s: %v", key, err)
	}
	return path
}

// SessionJSON builds a minimal session document with a single user/assistant
// exchange
func SessionJSON(id, name, updatedAt string) string {
	return fmt.Sprintf(`{
  "id": %q,
  "name": %q,
  "created_at": "2026-01-02T10:00:00Z",
  "updated_at": %q,
  "messages": [
    {"role": "user", "content": "hello"},
    {"role": "assistant", "content": "hi there"}
  ]
}`, id, name, updatedAt)
}

// SeedSessionDir creates a directory holding two session fixtures and returns
// it along with the storage keys, newest first
func SeedSessionDir(t *testing.T) (dir string, keys []string) {
	t.Helper()
	dir = CreateTempDir(t)
	keys = []string{"planning-trip_aaaa1111", "debug-notes_bbbb2222"}
	WriteSessionFixture(t, dir, keys[0], SessionJSON("aaaa1111", "planning trip", "2026-01-02T12:00:00Z"))
	WriteSessionFixture(t, dir, keys[1], SessionJSON("bbbb2222", "debug notes", "2026-01-01T12:00:00Z"))
	return dir, keys
}

// WriteTextFixture writes a plain text file for staging tests
func WriteTextFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write text fixture %s: %v", name, err)
	}
	return path
}
