package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/iksnae/aichat/internal"
)

func TestJSONExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	exporter := &JSONExporter{}

	session := internal.CreateTestSession("abc12345")
	if err := exporter.Export(session, &buf); err != nil {
		t.Fatalf("JSONExporter.Export() error = %v", err)
	}

	// Output round-trips to the same session.
	var decoded internal.Session
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Export() produced invalid JSON: %v", err)
	}
	if decoded.ID != "abc12345" {
		t.Errorf("decoded ID = %q, want %q", decoded.ID, "abc12345")
	}
	if decoded.Name != session.Name {
		t.Errorf("decoded Name = %q, want %q", decoded.Name, session.Name)
	}
	if len(decoded.Messages) != len(session.Messages) {
		t.Errorf("decoded %d messages, want %d", len(decoded.Messages), len(session.Messages))
	}
}

func TestJSONExporter_Export_EmptySession(t *testing.T) {
	var buf bytes.Buffer
	exporter := &JSONExporter{}

	session := internal.CreateTestSessionWithMessages("empty123", nil)
	if err := exporter.Export(session, &buf); err != nil {
		t.Fatalf("JSONExporter.Export() error = %v", err)
	}
	var decoded internal.Session
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Export() produced invalid JSON: %v", err)
	}
	if len(decoded.Messages) != 0 {
		t.Errorf("decoded %d messages, want 0", len(decoded.Messages))
	}
}

func TestJSONExporter_Extension(t *testing.T) {
	exporter := &JSONExporter{}
	if got := exporter.Extension(); got != "json" {
		t.Errorf("JSONExporter.Extension() = %v, want json", got)
	}
}
