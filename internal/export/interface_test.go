package export

import (
	"testing"
)

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{"json", "json", false},
		{"jsonl", "jsonl", false},
		{"yaml", "yaml", false},
		{"md", "md", false},
		{"markdown", "md", false},
		{"csv", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			e, err := NewExporter(tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewExporter(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if e.Extension() != tt.wantExt {
				t.Errorf("NewExporter(%q).Extension() = %q, want %q", tt.format, e.Extension(), tt.wantExt)
			}
		})
	}
}
