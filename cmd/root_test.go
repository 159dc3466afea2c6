package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name:    "version flag",
			args:    []string{"--version"},
			wantErr: false,
		},
		{
			name:    "help flag",
			args:    []string{"--help"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd.SetArgs(tt.args)
			var stdout, stderr bytes.Buffer
			rootCmd.SetOut(&stdout)
			rootCmd.SetErr(&stderr)

			err := rootCmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Errorf("rootCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRootCommand_UnknownSubcommand(t *testing.T) {
	rootCmd.SetArgs([]string{"nonexistent-command"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err == nil {
		t.Error("Execute() should return error for nonexistent command")
	}
}

func TestRootCommand_Help_ListsSubcommands(t *testing.T) {
	rootCmd.SetArgs([]string{"--help"})
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"chat", "resume", "sessions", "prompt", "setup"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("help output missing subcommand %q", want)
		}
	}
}

func TestResolveConfigPath(t *testing.T) {
	original := configPath
	defer func() { configPath = original }()

	configPath = "/tmp/custom.yaml"
	got, err := resolveConfigPath()
	if err != nil {
		t.Fatalf("resolveConfigPath() error = %v", err)
	}
	if got != "/tmp/custom.yaml" {
		t.Errorf("resolveConfigPath() = %q, want custom path", got)
	}

	configPath = ""
	got, err = resolveConfigPath()
	if err != nil {
		t.Fatalf("resolveConfigPath() error = %v", err)
	}
	if !strings.HasSuffix(got, "config.yaml") {
		t.Errorf("resolveConfigPath() = %q, want default config.yaml location", got)
	}
}
