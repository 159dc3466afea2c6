package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iksnae/aichat/internal"
	"github.com/iksnae/aichat/internal/provider"
	"github.com/spf13/cobra"
)

var chatName string

// maxFileNamesInPrompt caps the staged file names shown in the prompt line
const maxFileNamesInPrompt = 3

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a new chat session",
	Long: `Start a new interactive chat session.

Without --name the session is named automatically from your first message.
Type /help inside the session for the available commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore()
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

		needsNaming := strings.TrimSpace(chatName) == ""
		sess, err := store.Create(chatName)
		if err != nil {
			return err
		}
		if needsNaming {
			fmt.Println(internal.SuccessStyle.Render(
				"Starting new chat. Session will be named after your first message."))
		} else {
			fmt.Println(internal.SuccessStyle.Render(
				fmt.Sprintf("Started new session: %s (key: %s)", sess.Name, sess.StorageKey())))
		}

		return runLoop(cfg, store, sess, prov, true, needsNaming)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatName, "name", "n", "", "Name for the new session (generated if omitted)")
}

// runLoop is the session interaction loop: read a line, dispatch, render.
// Strictly single-threaded; each line is fully processed (including any
// provider call) before the next is read.
func runLoop(cfg *internal.Config, store *internal.Store, sess *internal.Session, prov provider.Provider, fresh, needsNaming bool) error {
	stager := internal.NewStager(cfg)
	engine := internal.NewEngine(store, stager, prov, sess, needsNaming)
	engine.SetProgress(internal.Spin)

	reader := bufio.NewReader(os.Stdin)
	dispatcher := internal.NewDispatcher(store, stager, sess, reader, os.Stdout)
	ctx := context.Background()

	fmt.Println(internal.HintStyle.Render("Type /help for commands, /exit or /quit to end."))

	exchanged := len(sess.Messages) > 0
	for {
		printPrompt(sess, stager)
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				fmt.Println(internal.HintStyle.Render("Exiting session."))
				break
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		action := dispatcher.Dispatch(line)
		switch action.Kind {
		case internal.ActionContinue:
			continue
		case internal.ActionExit:
			fmt.Println(internal.HintStyle.Render("Exiting session."))
		case internal.ActionSend:
			if err := handleSend(ctx, engine, action.Text); err != nil {
				return err
			}
			exchanged = true
			continue
		}
		break
	}

	// A brand-new session that never exchanged a message leaves no artifact.
	if fresh && !exchanged && len(sess.Messages) == 0 {
		if err := store.Delete(sess.StorageKey()); err == nil {
			fmt.Println(internal.HintStyle.Render("No messages exchanged, session discarded."))
		}
	}
	return nil
}

// handleSend performs one exchange. Provider failures are reported and the
// loop continues; storage failures terminate.
func handleSend(ctx context.Context, engine *internal.Engine, text string) error {
	first := engine.NeedsNaming()
	sess := engine.Session()

	reply, err := engine.Send(ctx, text)
	if err != nil {
		var provErr *provider.Error
		if errors.As(err, &provErr) {
			fmt.Println(internal.ErrorStyle.Render(fmt.Sprintf("AI error: %v", provErr)))
			return nil
		}
		return err
	}

	if reply == "" {
		fmt.Println(internal.WarnStyle.Render("(Empty response received)"))
	} else {
		fmt.Printf("\n%s:\n%s\n", internal.AssistantStyle.Render(sess.Name+" > AI"),
			internal.RenderMarkdown(reply))
	}

	if first {
		name, err := engine.AutoName(ctx, text)
		if err != nil {
			internal.LogWarn("Auto-naming failed: %v", err)
			return nil
		}
		fmt.Println(internal.SuccessStyle.Render(
			fmt.Sprintf("Session automatically named: %s (key: %s)", name, sess.StorageKey())))
	}
	return nil
}

// printPrompt shows the session name plus up to three staged file names
func printPrompt(sess *internal.Session, stager *internal.Stager) {
	fmt.Printf("\n%s", internal.PromptStyle.Render(sess.Name))
	if files := stager.List(); len(files) > 0 {
		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, f.Name)
		}
		shown := names
		if len(shown) > maxFileNamesInPrompt {
			shown = shown[:maxFileNamesInPrompt]
		}
		label := strings.Join(shown, ", ")
		if len(names) > maxFileNamesInPrompt {
			label += fmt.Sprintf(", ... (%d total)", len(names))
		}
		fmt.Printf(" %s", internal.FileStyle.Render("(Files: "+label+")"))
	}
	fmt.Printf(" %s: ", internal.PromptStyle.Render("> You"))
}
