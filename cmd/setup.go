package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/iksnae/aichat/internal"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	setupAPIKey   string
	setupProvider string
	setupModel    string
	setupBaseURL  string
)

// setupCmd groups configuration subcommands
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure application settings",
}

var setupConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure provider credentials and settings",
	Long: `Configure the provider, model, and API key, interactively or via
options. The API key can also come from the OPENAI_API_KEY environment
variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		cfg, err := internal.LoadConfig(path)
		if err != nil {
			return err
		}
		in := bufio.NewReader(os.Stdin)

		prov := strings.ToLower(strings.TrimSpace(setupProvider))
		if prov == "" {
			prov = promptLine(in, fmt.Sprintf("Provider (openai, ollama) [%s]: ", orDefault(cfg.Provider, "openai")))
			if prov == "" {
				prov = orDefault(cfg.Provider, "openai")
			}
		}
		if prov != "openai" && prov != "ollama" {
			return fmt.Errorf("invalid provider %q (choose from: openai, ollama)", prov)
		}
		cfg.Provider = prov

		model := strings.TrimSpace(setupModel)
		if model == "" {
			model = promptLine(in, fmt.Sprintf("Model [%s]: ", orDefault(cfg.Model, "none")))
			if model == "" {
				model = cfg.Model
			}
		}
		if model == "" {
			return fmt.Errorf("model cannot be empty")
		}
		cfg.Model = model

		if setupBaseURL != "" {
			cfg.BaseURL = strings.TrimSpace(setupBaseURL)
		}

		if prov == "openai" {
			key := setupAPIKey
			if key == "" {
				key = os.Getenv("OPENAI_API_KEY")
				if key != "" {
					fmt.Println(internal.HintStyle.Render("Using API key from OPENAI_API_KEY environment variable."))
				}
			}
			if key == "" {
				key, err = promptSecret(fmt.Sprintf("OpenAI API key [%s]: ", internal.MaskKey(cfg.APIKey)))
				if err != nil {
					return err
				}
				if key == "" {
					key = cfg.APIKey
				}
			}
			if key == "" {
				return fmt.Errorf("API key cannot be empty")
			}
			cfg.APIKey = key
		}

		if err := internal.SaveConfig(path, cfg); err != nil {
			return err
		}
		fmt.Println(internal.SuccessStyle.Render("Configuration saved to " + path))
		printConfig(cfg, path)
		return nil
	},
}

var setupViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Println(internal.WarnStyle.Render("No configuration file found. Run `aichat setup configure` first."))
			return nil
		}
		cfg, err := internal.LoadConfig(path)
		if err != nil {
			return err
		}
		printConfig(cfg, path)
		return nil
	},
}

func printConfig(cfg *internal.Config, path string) {
	fmt.Println(internal.TitleStyle.Render("Current configuration:"))
	fmt.Printf("  Provider:    %s\n", orDefault(cfg.Provider, "openai"))
	fmt.Printf("  Model:       %s\n", orDefault(cfg.Model, "<not set>"))
	fmt.Printf("  API key:     %s\n", internal.MaskKey(cfg.APIKey))
	if cfg.BaseURL != "" {
		fmt.Printf("  Base URL:    %s\n", cfg.BaseURL)
	}
	fmt.Printf("  Config file: %s\n", path)
}

func promptLine(in *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

// promptSecret reads a line without echoing it, so the key never shows in
// the terminal or scrollback
func promptSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read key: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.AddCommand(setupConfigureCmd)
	setupCmd.AddCommand(setupViewCmd)

	setupConfigureCmd.Flags().StringVarP(&setupAPIKey, "api-key", "k", "", "API key (prompted when omitted)")
	setupConfigureCmd.Flags().StringVarP(&setupProvider, "provider", "p", "", "Provider (openai, ollama)")
	setupConfigureCmd.Flags().StringVarP(&setupModel, "model", "m", "", "Model name")
	setupConfigureCmd.Flags().StringVar(&setupBaseURL, "base-url", "", "Custom API base URL")
}
