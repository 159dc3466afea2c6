package internal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// CommandPrefix marks a control directive in the interaction loop
const CommandPrefix = "/"

// ActionKind tags what the loop should do after dispatching a line
type ActionKind int

const (
	// ActionContinue means the command was fully handled; read the next line
	ActionContinue ActionKind = iota
	// ActionSend means Text is ordinary content for the conversation engine
	ActionSend
	// ActionExit means persist state and terminate the loop
	ActionExit
)

// Action is the dispatch result consumed by the session loop
type Action struct {
	Kind ActionKind
	Text string
}

type commandFunc func(d *Dispatcher, arg string) Action

type command struct {
	usage string
	help  string
	run   commandFunc
}

// commands is the finite mapping from command name to handler. Lines that
// match no entry fall through to ordinary content only when they lack the
// prefix; prefixed unknowns are reported without touching any state.
// Populated in init because the help handler iterates the map itself.
var commands map[string]command

func init() {
	commands = map[string]command{
		"help": {
			usage: "/help",
			help:  "Show this help message",
			run:   (*Dispatcher).cmdHelp,
		},
		"rename": {
			usage: "/rename <new_name>",
			help:  "Rename the current session",
			run:   (*Dispatcher).cmdRename,
		},
		"history": {
			usage: "/history",
			help:  "Show current session message history",
			run:   (*Dispatcher).cmdHistory,
		},
		"clear": {
			usage: "/clear",
			help:  "Clear current session message history (cannot be undone)",
			run:   (*Dispatcher).cmdClear,
		},
		"upload": {
			usage: "/upload [file_path]",
			help:  "Stage a file for the next prompt (interactive if path omitted and fzf installed)",
			run:   (*Dispatcher).cmdUpload,
		},
		"edit": {
			usage: "/edit",
			help:  "Open external editor ($EDITOR) for multi-line input",
			run:   (*Dispatcher).cmdEdit,
		},
		"status": {
			usage: "/status",
			help:  "Show files staged for the next prompt",
			run:   (*Dispatcher).cmdStatus,
		},
		"clearfiles": {
			usage: "/clearfiles",
			help:  "Clear all staged files without sending",
			run:   (*Dispatcher).cmdClearFiles,
		},
		"exit": {
			usage: "/exit | /quit",
			help:  "End the chat session",
			run:   (*Dispatcher).cmdExit,
		},
		"quit": {
			usage: "/quit",
			help:  "End the chat session",
			run:   (*Dispatcher).cmdExit,
		},
	}
}

// Dispatcher routes one input line at a time to a command handler or to the
// conversation engine as plain content. Confirmation prompts are resolved
// inline, so no command ever overlaps with another.
type Dispatcher struct {
	store   *Store
	stager  *Stager
	session *Session
	in      *bufio.Reader
	out     io.Writer
}

// NewDispatcher builds a dispatcher over the active session handle. The
// reader must be the same one the loop reads lines from, so confirmation
// round-trips consume input in order.
func NewDispatcher(store *Store, stager *Stager, session *Session, in *bufio.Reader, out io.Writer) *Dispatcher {
	return &Dispatcher{
		store:   store,
		stager:  stager,
		session: session,
		in:      in,
		out:     out,
	}
}

// Dispatch processes a single input line. A line starting with the command
// prefix is parsed as command plus argument; anything else is ordinary
// content forwarded verbatim.
func (d *Dispatcher) Dispatch(line string) Action {
	line = strings.TrimSpace(line)
	if line == "" {
		return Action{Kind: ActionContinue}
	}
	if !strings.HasPrefix(line, CommandPrefix) {
		return Action{Kind: ActionSend, Text: line}
	}

	name, arg := splitCommand(line)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintln(d.out, WarnStyle.Render(fmt.Sprintf("Unknown command: /%s", name)))
		d.printCommandList()
		return Action{Kind: ActionContinue}
	}
	return cmd.run(d, arg)
}

func splitCommand(line string) (name, arg string) {
	rest := strings.TrimPrefix(line, CommandPrefix)
	parts := strings.SplitN(rest, " ", 2)
	name = strings.ToLower(parts[0])
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	return name, arg
}

func (d *Dispatcher) printCommandList() {
	fmt.Fprintln(d.out, TitleStyle.Render("Available commands:"))
	names := make([]string, 0, len(commands))
	for name := range commands {
		if name == "quit" { // listed with exit
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := commands[name]
		fmt.Fprintf(d.out, "  %-22s %s\n", PromptStyle.Render(c.usage), c.help)
	}
}

func (d *Dispatcher) cmdHelp(string) Action {
	d.printCommandList()
	return Action{Kind: ActionContinue}
}

func (d *Dispatcher) cmdRename(arg string) Action {
	if arg == "" {
		fmt.Fprintln(d.out, WarnStyle.Render("Please provide a new name: /rename <new_name>"))
		return Action{Kind: ActionContinue}
	}
	oldName := d.session.Name
	if err := d.store.Rename(d.session, arg); err != nil {
		fmt.Fprintln(d.out, ErrorStyle.Render(fmt.Sprintf("Rename failed: %v", err)))
		return Action{Kind: ActionContinue}
	}
	fmt.Fprintln(d.out, SuccessStyle.Render(
		fmt.Sprintf("Session renamed from %q to %q", oldName, d.session.Name)))
	return Action{Kind: ActionContinue}
}

func (d *Dispatcher) cmdHistory(string) Action {
	PrintHistory(d.out, d.session)
	return Action{Kind: ActionContinue}
}

func (d *Dispatcher) cmdClear(string) Action {
	fmt.Fprintf(d.out, "%s ",
		WarnStyle.Render(fmt.Sprintf(
			"Clear all history for session %q? This cannot be undone. (y/N):", d.session.Name)))
	answer, err := d.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintln(d.out, ErrorStyle.Render(fmt.Sprintf("Failed to read confirmation: %v", err)))
		return Action{Kind: ActionContinue}
	}
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Fprintln(d.out, HintStyle.Render("Clear operation cancelled."))
		return Action{Kind: ActionContinue}
	}
	if err := d.store.ClearHistory(d.session); err != nil {
		fmt.Fprintln(d.out, ErrorStyle.Render(fmt.Sprintf("Error clearing history: %v", err)))
		return Action{Kind: ActionContinue}
	}
	fmt.Fprintln(d.out, SuccessStyle.Render(
		fmt.Sprintf("History for session %q cleared.", d.session.Name)))
	return Action{Kind: ActionContinue}
}

func (d *Dispatcher) cmdUpload(arg string) Action {
	path := arg
	if path == "" {
		picked, err := PickFile()
		if err != nil {
			if errors.Is(err, ErrPickerUnavailable) {
				fmt.Fprintln(d.out, WarnStyle.Render(err.Error()))
				fmt.Fprintln(d.out, HintStyle.Render("Usage: /upload <file_path>"))
			} else {
				fmt.Fprintln(d.out, ErrorStyle.Render(err.Error()))
			}
			return Action{Kind: ActionContinue}
		}
		if picked == "" {
			fmt.Fprintln(d.out, HintStyle.Render("File selection cancelled."))
			return Action{Kind: ActionContinue}
		}
		path = picked
	}

	f, err := d.stager.Stage(path)
	if err != nil {
		var stageErr *StageError
		if errors.As(err, &stageErr) && stageErr.Reason == StageAlreadyStaged {
			fmt.Fprintln(d.out, WarnStyle.Render(
				fmt.Sprintf("File %q is already staged for the next prompt.", path)))
		} else {
			fmt.Fprintln(d.out, ErrorStyle.Render(err.Error()))
		}
		return Action{Kind: ActionContinue}
	}
	if f.SizeBytes == 0 {
		fmt.Fprintln(d.out, WarnStyle.Render(fmt.Sprintf("File is empty: %s", f.Name)))
	}
	fmt.Fprintln(d.out, SuccessStyle.Render(
		fmt.Sprintf("File %q staged (%s).", f.Name, formatKB(f.SizeBytes))))
	fmt.Fprintln(d.out, HintStyle.Render("Use /status to view staged files, /clearfiles to remove."))
	return Action{Kind: ActionContinue}
}

func (d *Dispatcher) cmdEdit(string) Action {
	content, err := ComposeInEditor()
	if err != nil {
		fmt.Fprintln(d.out, ErrorStyle.Render(err.Error()))
		return Action{Kind: ActionContinue}
	}
	if content == "" {
		fmt.Fprintln(d.out, HintStyle.Render("Editor buffer empty, nothing sent."))
		return Action{Kind: ActionContinue}
	}
	return Action{Kind: ActionSend, Text: content}
}

func (d *Dispatcher) cmdStatus(string) Action {
	files := d.stager.List()
	if len(files) == 0 {
		fmt.Fprintln(d.out, WarnStyle.Render("No files staged for the next prompt."))
		return Action{Kind: ActionContinue}
	}
	fmt.Fprintln(d.out, TitleStyle.Render(fmt.Sprintf("Staged files (%d):", len(files))))
	var total int64
	for i, f := range files {
		total += f.SizeBytes
		fmt.Fprintf(d.out, "  %d. %s (%s)\n", i+1, f.Name, formatKB(f.SizeBytes))
	}
	fmt.Fprintln(d.out, HintStyle.Render(fmt.Sprintf("Total size: %s", formatKB(total))))
	return Action{Kind: ActionContinue}
}

func (d *Dispatcher) cmdClearFiles(string) Action {
	n := d.stager.Clear()
	if n == 0 {
		fmt.Fprintln(d.out, WarnStyle.Render("No staged files to clear."))
		return Action{Kind: ActionContinue}
	}
	fmt.Fprintln(d.out, SuccessStyle.Render(fmt.Sprintf("Cleared %d staged file(s).", n)))
	return Action{Kind: ActionContinue}
}

func (d *Dispatcher) cmdExit(string) Action {
	return Action{Kind: ActionExit}
}
