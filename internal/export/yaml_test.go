package export

import (
	"bytes"
	"testing"

	"github.com/iksnae/aichat/internal"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	exporter := &YAMLExporter{}

	session := internal.CreateTestSession("abc12345")
	if err := exporter.Export(session, &buf); err != nil {
		t.Fatalf("YAMLExporter.Export() error = %v", err)
	}

	var decoded internal.Session
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Export() produced invalid YAML: %v", err)
	}
	if decoded.ID != "abc12345" {
		t.Errorf("decoded ID = %q, want %q", decoded.ID, "abc12345")
	}
	if len(decoded.Messages) != 2 {
		t.Errorf("decoded %d messages, want 2", len(decoded.Messages))
	}
	if decoded.Messages[0].Role != internal.RoleUser {
		t.Errorf("decoded first role = %q, want user", decoded.Messages[0].Role)
	}
}

func TestYAMLExporter_Extension(t *testing.T) {
	exporter := &YAMLExporter{}
	if got := exporter.Extension(); got != "yaml" {
		t.Errorf("YAMLExporter.Extension() = %v, want yaml", got)
	}
}
