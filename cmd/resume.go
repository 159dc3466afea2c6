package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iksnae/aichat/internal"
	"github.com/iksnae/aichat/internal/provider"
	"github.com/spf13/cobra"
)

// resumeCmd represents the resume command
var resumeCmd = &cobra.Command{
	Use:   "resume [storage-key]",
	Short: "Resume a previous chat session",
	Long: `Resume a previous chat session by storage key, or pick one
interactively (requires fzf) when the key is omitted.

Use 'aichat sessions list' to see stored sessions and their keys.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}

		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			key, err = pickSession(store, "Resume session > ")
			if err != nil {
				return err
			}
			if key == "" {
				fmt.Println(internal.HintStyle.Render("Operation cancelled."))
				return nil
			}
		}

		sess, err := store.Load(key)
		if err != nil {
			var nf *internal.NotFoundError
			if errors.As(err, &nf) {
				return fmt.Errorf("session %q not found; run `aichat sessions list`", key)
			}
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

		fmt.Println(internal.SuccessStyle.Render(
			fmt.Sprintf("Resuming session: %s (key: %s)", sess.Name, key)))
		internal.PrintHistory(cmd.OutOrStdout(), sess)

		return runLoop(cfg, store, sess, prov, false, false)
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}

// pickSession runs the interactive picker over stored sessions and returns
// the chosen storage key ("" when cancelled)
func pickSession(store *internal.Store, prompt string) (string, error) {
	entries, err := store.List()
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", errors.New("no saved sessions found")
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s\t%s", e.Name, e.StorageKey))
	}
	picked, err := internal.PickOne(prompt, lines)
	if err != nil {
		if errors.Is(err, internal.ErrPickerUnavailable) {
			return "", fmt.Errorf("%w; pass the storage key directly", err)
		}
		return "", err
	}
	if picked == "" {
		return "", nil
	}
	parts := strings.Split(picked, "\t")
	return parts[len(parts)-1], nil
}
