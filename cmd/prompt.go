package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/iksnae/aichat/internal"
	"github.com/iksnae/aichat/internal/provider"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	promptFile         string
	promptOutputFormat string
	promptOutputFile   string
)

var outputFormats = []string{"markdown", "raw", "json"}

const (
	jsonInstruction = "\n\nRESPONSE FORMATTING INSTRUCTIONS: Your entire response MUST be " +
		"ONLY a single, valid JSON object or array, with no surrounding text or code fences."
	rawInstruction = "\n\nRESPONSE FORMATTING INSTRUCTIONS: Your entire response MUST be " +
		"ONLY the requested raw text, with no surrounding explanation or code fences."
)

// promptCmd represents the one-shot prompt command
var promptCmd = &cobra.Command{
	Use:   "prompt <text>",
	Short: "Send a single prompt to the AI",
	Long: `Send a single prompt (optionally with context) to the AI and print
the response or save it to a file.

Piped data (stdin) takes precedence over the --file option.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(promptOutputFormat)
		if !validFormat(format) {
			return fmt.Errorf("invalid output format %q (choose from: %s)",
				promptOutputFormat, strings.Join(outputFormats, ", "))
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		prov, err := provider.New(provider.Options{
			Provider: cfg.Provider,
			Model:    cfg.Model,
			APIKey:   cfg.APIKey,
			BaseURL:  cfg.BaseURL,
		})
		if err != nil {
			return err
		}

		contextPrefix, err := buildContextPrefix(cfg)
		if err != nil {
			return err
		}

		text := contextPrefix + args[0]
		switch format {
		case "json":
			text += jsonInstruction
		case "raw":
			text += rawInstruction
		}

		var reply string
		err = internal.Spin("Thinking...", func() error {
			var err error
			reply, err = prov.Complete(context.Background(), []provider.Message{
				{Role: internal.RoleUser, Content: text},
			}, 0.7)
			return err
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(reply) == "" {
			fmt.Println(internal.WarnStyle.Render("(Empty response received)"))
			return nil
		}

		return writeReply(reply, format)
	},
}

func validFormat(format string) bool {
	for _, f := range outputFormats {
		if f == format {
			return true
		}
	}
	return false
}

// buildContextPrefix reads piped stdin or the --file option. Stdin wins;
// file context goes through the same validation as interactive staging.
func buildContextPrefix(cfg *internal.Config) (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		if len(data) > 0 {
			if int64(len(data)) > cfg.MaxFileSizeBytes() {
				return "", fmt.Errorf("stdin data too large (max %d KB)", cfg.MaxFileSizeKB)
			}
			if promptFile != "" {
				internal.LogWarn("Ignoring --file (%s): stdin data takes precedence", promptFile)
			}
			return "[Data from standard input]\n\n--- Input Data Start ---\n" +
				string(data) + "\n--- Input Data End ---\n\n", nil
		}
	}

	if promptFile == "" {
		return "", nil
	}
	f, err := internal.NewStager(cfg).Stage(promptFile)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("[User uploaded file: '%s']\n\n--- File Content Start (%s) ---\n%s\n--- File Content End (%s) ---\n\n",
		f.Name, f.Name, f.Content, f.Name), nil
}

func writeReply(reply, format string) error {
	content := reply
	if format == "raw" || format == "json" {
		content = stripCodeFence(strings.TrimSpace(reply))
	}

	if promptOutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(promptOutputFile), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(promptOutputFile, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to save output: %w", err)
		}
		fmt.Println(internal.SuccessStyle.Render("Output saved to: " + promptOutputFile))
		return nil
	}

	switch format {
	case "markdown":
		fmt.Println(internal.RenderMarkdown(reply))
	case "json":
		var parsed interface{}
		if err := json.Unmarshal([]byte(content), &parsed); err != nil {
			fmt.Println(internal.WarnStyle.Render("Response is not valid JSON. Raw output:"))
			fmt.Println(content)
			return nil
		}
		pretty, err := json.MarshalIndent(parsed, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(pretty))
	default:
		fmt.Println(content)
	}
	return nil
}

var codeFenceRe = regexp.MustCompile(`(?is)^\s*` + "```" + `(?:\w*\s*)?\n?(.*?)\n?` + "```" + `\s*$`)

// stripCodeFence unwraps a reply that is a single fenced code block
func stripCodeFence(reply string) string {
	if m := codeFenceRe.FindStringSubmatch(reply); m != nil {
		return strings.TrimSpace(m[1])
	}
	return reply
}

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().StringVarP(&promptFile, "file", "f", "", "File to include as context (ignored when piping stdin)")
	promptCmd.Flags().StringVarP(&promptOutputFormat, "output-format", "F", "markdown", "Output format (markdown, raw, json)")
	promptCmd.Flags().StringVarP(&promptOutputFile, "output-file", "o", "", "Save the output to a file instead of printing")
}
