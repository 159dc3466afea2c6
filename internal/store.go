package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Store persists sessions as one JSON document per session under dir.
// File identity is the storage key: <slug(name)>_<id>.json. Writes are
// whole-file replace (temp file + rename), so a failed save leaves the
// previous version intact.
type Store struct {
	dir string
}

// IndexEntry is one row of the session listing
type IndexEntry struct {
	Name         string
	StorageKey   string
	MessageCount int
	UpdatedAt    time.Time
}

// DefaultSessionDir returns the default session directory (~/.aichat/sessions)
func DefaultSessionDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".aichat", "sessions"), nil
}

// NewStore creates a store rooted at dir, creating it if needed
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &StoreError{Op: "create", Key: dir, Err: err}
	}
	return &Store{dir: dir}, nil
}

func (st *Store) path(key string) string {
	return filepath.Join(st.dir, key+".json")
}

// Create makes a new session and persists its initial (empty) record
func (st *Store) Create(displayName string) (*Session, error) {
	s := NewSession(displayName)
	if err := st.Save(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads the session stored under key. A missing artifact is a
// NotFoundError, not a StoreError.
func (st *Store) Load(key string) (*Session, error) {
	data, err := os.ReadFile(st.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Key: key}
		}
		return nil, &StoreError{Op: "load", Key: key, Err: err}
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &StoreError{Op: "load", Key: key, Err: err}
	}
	// A hand-edited record can lose its identity fields; the file name
	// still carries them, so recover rather than returning a session
	// whose storage key no longer matches its artifact.
	if s.Name == "" || s.ID == "" {
		name, id := SplitStorageKey(key)
		if s.Name == "" {
			s.Name = name
		}
		if s.ID == "" {
			s.ID = id
		}
	}
	return &s, nil
}

// Save persists the session under its current storage key, refreshing
// UpdatedAt. The write is temp-file + rename so the artifact is always
// either the prior or the new version, never partial.
func (st *Store) Save(s *Session) error {
	s.Touch()
	return st.write(s.StorageKey(), s)
}

func (st *Store) write(key string, s *Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return &StoreError{Op: "save", Key: key, Err: err}
	}
	tmp, err := os.CreateTemp(st.dir, "."+key+"-*")
	if err != nil {
		return &StoreError{Op: "save", Key: key, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StoreError{Op: "save", Key: key, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StoreError{Op: "save", Key: key, Err: err}
	}
	if err := os.Rename(tmpName, st.path(key)); err != nil {
		os.Remove(tmpName)
		return &StoreError{Op: "save", Key: key, Err: err}
	}
	return nil
}

// List returns all stored sessions sorted by UpdatedAt descending
func (st *Store) List() ([]IndexEntry, error) {
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		return nil, &StoreError{Op: "list", Key: st.dir, Err: err}
	}
	var out []IndexEntry
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		key := strings.TrimSuffix(e.Name(), ".json")
		s, err := st.Load(key)
		if err != nil {
			LogWarn("Skipping unreadable session file %s: %v", e.Name(), err)
			continue
		}
		out = append(out, IndexEntry{
			Name:         s.Name,
			StorageKey:   key,
			MessageCount: len(s.Messages),
			UpdatedAt:    s.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Rename changes the session's display name and moves its artifact to the
// new storage key. Either the old artifact is fully replaced by the new one,
// or the operation fails and the old artifact is left untouched.
func (st *Store) Rename(s *Session, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return &StoreError{Op: "rename", Key: s.StorageKey(), Err: fmt.Errorf("new name cannot be empty")}
	}
	oldKey := s.StorageKey()
	oldName := s.Name
	s.Name = newName
	newKey := s.StorageKey()
	if newKey == oldKey {
		return st.Save(s)
	}
	s.Touch()
	if err := st.write(newKey, s); err != nil {
		s.Name = oldName
		return err
	}
	if err := os.Remove(st.path(oldKey)); err != nil && !os.IsNotExist(err) {
		// Roll back so exactly one artifact remains.
		os.Remove(st.path(newKey))
		s.Name = oldName
		return &StoreError{Op: "rename", Key: oldKey, Err: err}
	}
	return nil
}

// Delete removes the artifact stored under key. Deleting a missing key
// fails with NotFoundError rather than silently succeeding.
func (st *Store) Delete(key string) error {
	p := st.path(key)
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return &NotFoundError{Key: key}
	}
	if err := os.Remove(p); err != nil {
		return &StoreError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// ClearHistory discards the session's messages and persists the empty record
func (st *Store) ClearHistory(s *Session) error {
	s.Messages = nil
	return st.Save(s)
}
