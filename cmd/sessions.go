package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/aichat/internal"
	"github.com/iksnae/aichat/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
	deleteYes    bool
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	colStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// sessionsCmd groups session management subcommands
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage stored chat sessions",
	Long:  `List, delete, and export stored chat sessions.`,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	Long:  `List all stored chat sessions, most recently updated first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		entries, err := store.List()
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		displaySessions(entries)
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <storage-key>...",
	Short: "Delete stored sessions",
	Long:  `Delete one or more stored sessions by storage key.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		if !deleteYes {
			fmt.Printf("%s ", internal.WarnStyle.Render(
				fmt.Sprintf("Delete %d session(s)? This cannot be undone. (y/N):", len(args))))
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println(internal.HintStyle.Render("Deletion cancelled."))
				return nil
			}
		}

		deleted := 0
		for _, key := range args {
			if err := store.Delete(key); err != nil {
				var nf *internal.NotFoundError
				if errors.As(err, &nf) {
					fmt.Println(internal.WarnStyle.Render(fmt.Sprintf("Session %q not found.", key)))
				} else {
					fmt.Println(internal.ErrorStyle.Render(fmt.Sprintf("Failed to delete %q: %v", key, err)))
				}
				continue
			}
			deleted++
		}
		if deleted > 0 {
			fmt.Println(internal.SuccessStyle.Render(
				fmt.Sprintf("Deleted %d session(s).", deleted)))
		}
		return nil
	},
}

var sessionsExportCmd = &cobra.Command{
	Use:   "export <storage-key>",
	Short: "Export a session to file",
	Long: `Export a stored session to a file in the chosen format
(json, jsonl, yaml, md).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		sess, err := store.Load(args[0])
		if err != nil {
			return err
		}

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(exportOutput, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		outPath := filepath.Join(exportOutput, args[0]+"."+exporter.Extension())
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		if err := exporter.Export(sess, f); err != nil {
			return fmt.Errorf("failed to export session: %w", err)
		}
		fmt.Println(internal.SuccessStyle.Render(fmt.Sprintf("Exported to %s", outPath)))
		return nil
	},
}

func displaySessions(entries []internal.IndexEntry) {
	if len(entries) == 0 {
		fmt.Println(headerStyle.Render("No sessions found"))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d session(s)", len(entries))))
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, colStyle.Render("Name")+"\t"+colStyle.Render("Key")+"\t"+colStyle.Render("Messages")+"\t"+colStyle.Render("Updated")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 90))

	for _, e := range entries {
		name := e.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			name,
			keyStyle.Render(e.StorageKey),
			countStyle.Render(strconv.Itoa(e.MessageCount)),
			dateStyle.Render(humanizeTime(e.UpdatedAt)))
	}
	_ = w.Flush()
	fmt.Println()
	fmt.Println(keyStyle.Render("Tip: resume with `aichat resume <key>`"))
}

// humanizeTime shortens a timestamp relative to now
func humanizeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Local().Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Local().Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Local().Format("Jan 02 15:04")
	default:
		return t.Local().Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsExportCmd)

	sessionsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
	sessionsExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Export format (json, jsonl, yaml, md)")
	sessionsExportCmd.Flags().StringVarP(&exportOutput, "output", "o", ".", "Output directory")
}
