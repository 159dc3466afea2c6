package internal

import "fmt"

// ConfigError represents a missing or invalid configuration field.
// It is the only error kind that aborts before any session work begins.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Reason)
}

// NotFoundError represents a missing session storage key
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session %q not found", e.Key)
}

// StageReason classifies why a file was rejected for staging
type StageReason string

const (
	StageNotFound      StageReason = "not found"
	StageNotRegular    StageReason = "not a regular file"
	StageTooLarge      StageReason = "too large"
	StageBadExtension  StageReason = "extension not allowed"
	StageAlreadyStaged StageReason = "already staged"
	StageNotText       StageReason = "not valid UTF-8 text"
)

// StageError represents a file validation failure during staging.
// The staging set is unchanged when it is returned.
type StageError struct {
	Path   string
	Reason StageReason
	Detail string
}

func (e *StageError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("cannot stage %s: %s (%s)", e.Path, e.Reason, e.Detail)
	}
	return fmt.Sprintf("cannot stage %s: %s", e.Path, e.Reason)
}

// StoreError represents errors accessing session storage files
type StoreError struct {
	Op  string // "create", "load", "save", "rename", "delete", "list"
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
