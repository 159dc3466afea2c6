package internal

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message roles as sent to the provider
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// PlaceholderName is the display name of a session that has not been
// auto-named yet
const PlaceholderName = "chat"

// Session represents one durable conversation with its full message history
type Session struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
	Messages  []Message `json:"messages" yaml:"messages"`
}

// Message represents one role-tagged turn within a session's history
type Message struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

var (
	spaceRe     = regexp.MustCompile(`\s+`)
	nonSlugRe   = regexp.MustCompile(`[^\w\-]+`)
	keySuffixRe = regexp.MustCompile(`_([a-f0-9]{8})$`)
)

// NewSession creates a session with a fresh ID. An empty display name gets
// the placeholder; the real name is assigned by the auto-naming flow.
func NewSession(displayName string) *Session {
	if strings.TrimSpace(displayName) == "" {
		displayName = PlaceholderName
	}
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString()[:8],
		Name:      displayName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// StorageKey returns the on-disk identity of the session. Two sessions may
// share a display name; the ID suffix keeps their artifacts distinct.
func (s *Session) StorageKey() string {
	return Slug(s.Name) + "_" + s.ID
}

// Append adds a turn to the history. Turns are never reordered or rewritten;
// edits happen only by discarding history as a whole.
func (s *Session) Append(role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// Touch refreshes the updated timestamp. Called by the store on every
// persisted mutation.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// SplitStorageKey splits "name_id" into its display slug and ID parts.
// Keys without the 8-hex suffix are treated as all name.
func SplitStorageKey(key string) (name, id string) {
	m := keySuffixRe.FindStringIndex(key)
	if m == nil {
		return key, ""
	}
	return key[:m[0]], key[m[0]+1:]
}

// Slug sanitizes a display name for filesystem use: lowercase, spaces to
// hyphens, word characters and hyphens only.
func Slug(name string) string {
	s := spaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	s = nonSlugRe.ReplaceAllString(s, "")
	if s == "" {
		return "session"
	}
	return s
}

// SanitizeSuggestedName turns a provider naming reply into a display name:
// at most four hyphen-joined slug words. Returns "" if nothing usable
// survives sanitization.
func SanitizeSuggestedName(reply string) string {
	s := strings.Trim(strings.TrimSpace(reply), `'"`)
	s = Slug(s)
	if s == "session" {
		return ""
	}
	parts := strings.Split(s, "-")
	if len(parts) > 4 {
		parts = parts[:4]
	}
	return strings.Trim(strings.Join(parts, "-"), "-")
}

// FallbackName derives a deterministic display name from the first user
// message, used when the naming capability fails.
func FallbackName(firstUserText string) string {
	text := strings.TrimSpace(firstUserText)
	if len(text) > 20 {
		text = text[:20]
	}
	s := Slug(text)
	if s == "session" {
		return PlaceholderName
	}
	return strings.Trim(s, "-")
}
