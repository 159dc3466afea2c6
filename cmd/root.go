package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/aichat/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aichat",
	Short: "Durable, resumable chat sessions with an LLM provider",
	Long: `A command-line tool for holding durable, resumable conversations with
a remote LLM provider and for issuing one-shot prompts.

Features:
  • Named chat sessions persisted on disk, resumable at any time
  • Auto-naming of new sessions from your first message
  • In-chat commands (/upload, /edit, /history, /rename, ...)
  • File staging with size and extension validation
  • One-shot prompts with stdin/file context
  • Session export (JSON, JSONL, YAML, Markdown)
  • OpenAI and Ollama providers

Quick Start:
  aichat setup configure         # Store API key and model
  aichat chat                    # Start a new session
  aichat resume                  # Pick a session to resume
  aichat sessions list           # List stored sessions`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Custom config file location")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig reads and validates the configuration. A validation failure is
// fatal before any session work begins.
func loadConfig() (*internal.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = internal.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := internal.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath returns the active config file location without validating
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return internal.DefaultConfigPath()
}

// openStore opens the default session store
func openStore() (*internal.Store, error) {
	dir, err := internal.DefaultSessionDir()
	if err != nil {
		return nil, err
	}
	return internal.NewStore(dir)
}
