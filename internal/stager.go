package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// StagedFile is a local file marked for inclusion in the next outgoing turn.
// Content is snapshotted at staging time; later changes to the file on disk
// are deliberately not observed.
type StagedFile struct {
	Path      string // resolved absolute path
	Name      string
	SizeBytes int64
	Extension string
	Content   string
}

// Stager validates and holds the pending set of files for the next prompt.
// Files are unique by resolved path and kept in staging order.
type Stager struct {
	maxBytes int64
	allowed  map[string]bool
	files    []*StagedFile
	paths    map[string]bool
}

// NewStager creates a stager with the config's size and extension limits
func NewStager(cfg *Config) *Stager {
	allowed := make(map[string]bool, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.ToLower(ext)] = true
	}
	return &Stager{
		maxBytes: cfg.MaxFileSizeBytes(),
		allowed:  allowed,
		paths:    make(map[string]bool),
	}
}

// Stage validates path and adds its content snapshot to the pending set.
// Checks run in a fixed order: existence, size, extension, duplicate.
// A duplicate is reported via StageAlreadyStaged; the set keeps the file once.
func (sg *Stager) Stage(path string) (*StagedFile, error) {
	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return nil, &StageError{Path: path, Reason: StageNotFound, Detail: err.Error()}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &StageError{Path: path, Reason: StageNotFound}
	}
	if !info.Mode().IsRegular() {
		return nil, &StageError{Path: path, Reason: StageNotRegular}
	}
	if info.Size() > sg.maxBytes {
		return nil, &StageError{Path: path, Reason: StageTooLarge,
			Detail: formatKB(info.Size()) + " > " + formatKB(sg.maxBytes)}
	}
	ext := strings.ToLower(filepath.Ext(abs))
	if !sg.allowed[ext] {
		return nil, &StageError{Path: path, Reason: StageBadExtension, Detail: ext}
	}
	if sg.paths[abs] {
		return nil, &StageError{Path: path, Reason: StageAlreadyStaged}
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, &StageError{Path: path, Reason: StageNotFound, Detail: err.Error()}
	}
	if !utf8.Valid(data) {
		return nil, &StageError{Path: path, Reason: StageNotText}
	}
	f := &StagedFile{
		Path:      abs,
		Name:      filepath.Base(abs),
		SizeBytes: info.Size(),
		Extension: ext,
		Content:   string(data),
	}
	sg.files = append(sg.files, f)
	sg.paths[abs] = true
	return f, nil
}

// List returns the staged files in staging order
func (sg *Stager) List() []*StagedFile {
	out := make([]*StagedFile, len(sg.files))
	copy(out, sg.files)
	return out
}

// Clear discards all staged files
func (sg *Stager) Clear() int {
	n := len(sg.files)
	sg.files = nil
	sg.paths = make(map[string]bool)
	return n
}

// Drain returns the staged files and empties the set atomically. It is the
// only consumption path; the engine calls it exactly once per send.
func (sg *Stager) Drain() []*StagedFile {
	out := sg.files
	sg.files = nil
	sg.paths = make(map[string]bool)
	return out
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func formatKB(n int64) string {
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
