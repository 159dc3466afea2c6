package internal

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{Field: "model", Reason: "not set"}
	want := "config error: model: not set"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestNotFoundError_Error(t *testing.T) {
	err := &NotFoundError{Key: "chat_deadbeef"}
	if !strings.Contains(err.Error(), "chat_deadbeef") {
		t.Errorf("Error() = %q, should contain the key", err.Error())
	}
}

func TestStageError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StageError
		want string
	}{
		{
			name: "without detail",
			err:  &StageError{Path: "a.txt", Reason: StageNotFound},
			want: "cannot stage a.txt: not found",
		},
		{
			name: "with detail",
			err:  &StageError{Path: "b.bin", Reason: StageBadExtension, Detail: ".bin"},
			want: "cannot stage b.bin: extension not allowed (.bin)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStoreError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := &StoreError{Op: "save", Key: "chat_deadbeef", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("StoreError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "save") || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() = %q", err.Error())
	}
}
