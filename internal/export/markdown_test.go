package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/aichat/internal"
)

func TestMarkdownExporter_Export(t *testing.T) {
	tests := []struct {
		name    string
		session *internal.Session
		want    []string
	}{
		{
			name:    "basic session",
			session: internal.CreateTestSession("abc12345"),
			want: []string{
				"# Test Conversation",
				"**Session:** test-conversation_abc12345",
				"**Messages:** 2",
				"## Messages",
				"**User:**",
				"Hello, how are you?",
				"**Assistant:**",
			},
		},
		{
			name: "messages separated by rules",
			session: internal.CreateTestSessionWithMessages("abc12345", []internal.Message{
				{Role: internal.RoleUser, Content: "one"},
				{Role: internal.RoleAssistant, Content: "two"},
			}),
			want: []string{"one", "---", "two"},
		},
		{
			name:    "empty session",
			session: internal.CreateTestSessionWithMessages("abc12345", nil),
			want: []string{
				"**Messages:** 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &MarkdownExporter{}

			if err := exporter.Export(tt.session, &buf); err != nil {
				t.Fatalf("MarkdownExporter.Export() error = %v", err)
			}
			output := buf.String()
			for _, wantStr := range tt.want {
				if !strings.Contains(output, wantStr) {
					t.Errorf("Output should contain %q, got:\n%s", wantStr, output)
				}
			}
		})
	}
}

func TestMarkdownExporter_Extension(t *testing.T) {
	exporter := &MarkdownExporter{}
	if got := exporter.Extension(); got != "md" {
		t.Errorf("MarkdownExporter.Extension() = %v, want md", got)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		notWant []string
	}{
		{
			name:  "basic text",
			input: "Hello world",
			want:  []string{"Hello world"},
		},
		{
			name:    "markdown bold",
			input:   "This is **bold** text",
			want:    []string{"\\*\\*bold\\*\\*"},
			notWant: []string{"**bold**"},
		},
		{
			name:    "markdown underline",
			input:   "This is __underlined__ text",
			want:    []string{"\\_\\_underlined\\_\\_"},
			notWant: []string{"__underlined__"},
		},
		{
			name:  "code block preserved",
			input: "```go\nvar x = 1 ** 2\n```",
			want:  []string{"```go", "var x = 1 ** 2", "```"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := escapeMarkdown(tt.input)
			for _, wantStr := range tt.want {
				if !strings.Contains(got, wantStr) {
					t.Errorf("escapeMarkdown() should contain %q, got: %s", wantStr, got)
				}
			}
			for _, notWantStr := range tt.notWant {
				if strings.Contains(got, notWantStr) {
					t.Errorf("escapeMarkdown() should not contain %q, got: %s", notWantStr, got)
				}
			}
		})
	}
}
