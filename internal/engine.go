package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/iksnae/aichat/internal/provider"
)

const namingPrompt = "Based on the following user message, generate a concise, " +
	"2-4 word title suitable for a filename (use lowercase words, separated by " +
	"hyphens). Example: 'analyze-stock-data'. Do not include any explanation, " +
	"just the title.\n\nUser Message: %q"

const (
	defaultTemperature float32 = 0.7
	namingTemperature  float32 = 0.3
)

// Progress wraps a blocking call in a user-visible indicator. The session
// loop installs a spinner; tests leave the plain pass-through.
type Progress func(title string, fn func() error) error

// Engine owns the live message history of the active session. It drains the
// stager into the outgoing turn, invokes the provider exactly once per send,
// and persists after every appended turn.
type Engine struct {
	store    *Store
	stager   *Stager
	prov     provider.Provider
	session  *Session
	progress Progress

	needsNaming bool
}

// NewEngine wires the engine to an active session. needsNaming marks a
// session created without an explicit name; its first completed exchange
// triggers AutoName.
func NewEngine(store *Store, stager *Stager, prov provider.Provider, session *Session, needsNaming bool) *Engine {
	return &Engine{
		store:       store,
		stager:      stager,
		prov:        prov,
		session:     session,
		progress:    func(_ string, fn func() error) error { return fn() },
		needsNaming: needsNaming,
	}
}

// SetProgress installs the progress indicator used around provider calls
func (e *Engine) SetProgress(p Progress) {
	if p != nil {
		e.progress = p
	}
}

// Session returns the active session handle
func (e *Engine) Session() *Session {
	return e.session
}

// NeedsNaming reports whether the session still carries its placeholder name
func (e *Engine) NeedsNaming() bool {
	return e.needsNaming
}

// Send folds the staged files into userText, appends and persists the user
// turn, performs one provider call, and on success appends and persists the
// assistant turn. On provider failure the user turn stays in history so the
// retry context is preserved; nothing is rolled back.
func (e *Engine) Send(ctx context.Context, userText string) (string, error) {
	content := userText
	if staged := e.stager.Drain(); len(staged) > 0 {
		content = foldFiles(staged, userText)
	}

	e.session.Append(RoleUser, content)
	if err := e.store.Save(e.session); err != nil {
		return "", err
	}

	var reply string
	err := e.progress("Thinking...", func() error {
		var err error
		reply, err = e.prov.Complete(ctx, e.history(), defaultTemperature)
		return err
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", nil
	}

	e.session.Append(RoleAssistant, reply)
	if err := e.store.Save(e.session); err != nil {
		return reply, err
	}
	return reply, nil
}

// AutoName asks the provider for a short title based on the first user turn
// and renames the session. Failure of the naming call falls back to a
// deterministic slug of the text; the session never keeps the placeholder.
func (e *Engine) AutoName(ctx context.Context, firstUserText string) (string, error) {
	e.needsNaming = false

	var reply string
	err := e.progress("Naming session...", func() error {
		var err error
		reply, err = e.prov.Complete(ctx, []provider.Message{
			{Role: RoleUser, Content: fmt.Sprintf(namingPrompt, firstUserText)},
		}, namingTemperature)
		return err
	})

	name := ""
	if err != nil {
		LogDebug("Naming call failed, using fallback: %v", err)
	} else {
		name = SanitizeSuggestedName(reply)
	}
	if name == "" {
		name = FallbackName(firstUserText)
	}

	if err := e.store.Rename(e.session, name); err != nil {
		return "", err
	}
	return name, nil
}

// history converts the full ordered turn history into a provider request
func (e *Engine) history() []provider.Message {
	msgs := make([]provider.Message, 0, len(e.session.Messages))
	for _, m := range e.session.Messages {
		msgs = append(msgs, provider.Message{Role: m.Role, Content: m.Content})
	}
	return msgs
}

// foldFiles embeds staged file contents ahead of the user text so the
// persisted turn is self-contained and replayable without the files.
func foldFiles(files []*StagedFile, userText string) string {
	var sb strings.Builder
	for i, f := range files {
		fmt.Fprintf(&sb, "[User uploaded file %d: '%s']\n", i+1, f.Name)
		fmt.Fprintf(&sb, "--- File Content Start (%s) ---\n", f.Name)
		sb.WriteString(f.Content)
		if !strings.HasSuffix(f.Content, "\n") {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "--- File Content End (%s) ---\n\n", f.Name)
	}
	sb.WriteString(userText)
	return sb.String()
}
