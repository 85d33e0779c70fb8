// Package tui is the interactive terminal workspace for one conversation.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/janhq/jan-translator/internal/domain/apperr"
	"github.com/janhq/jan-translator/internal/domain/conversation"
	"github.com/janhq/jan-translator/internal/domain/language"
	"github.com/janhq/jan-translator/internal/domain/workspace"
)

const helpLine = "enter send • ctrl+r record • ctrl+t target • ctrl+l source • ctrl+s swap • ctrl+e export • ctrl+p speak • esc quit"

// Player plays synthesized speech.
type Player interface {
	Play(ctx context.Context, audio []byte) error
}

// Options tunes the workspace model.
type Options struct {
	// Player plays speech; without one clips are saved to OutputDir.
	Player    Player
	OutputDir string
	// Timeout bounds each backend call. Zero means no bound.
	Timeout time.Duration
}

type (
	loadedMsg   struct{ err error }
	sentMsg     struct{ err error }
	voiceMsg    struct {
		transcribed bool
		err         error
	}
	exportedMsg struct {
		path string
		err  error
	}
	spokenMsg struct {
		path string
		err  error
	}
)

// Model is the bubbletea model driving a workspace.Workspace.
type Model struct {
	ws     *workspace.Workspace
	opts   Options
	ctx    context.Context
	cancel context.CancelFunc

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   styles

	ready    bool
	loading  bool
	inFlight int
	notice   string
	quitting bool
}

// New builds the model. The workspace is loaded by Init.
func New(ws *workspace.Workspace, opts Options) Model {
	input := textinput.New()
	input.Placeholder = "Type a message to translate..."
	input.Prompt = "› "
	input.CharLimit = 4000
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		ws:       ws,
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		input:    input,
		viewport: viewport.New(80, 20),
		spinner:  spin,
		styles:   defaultStyles(),
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick, textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.busy() {
			m.refresh()
		}
		return m, cmd

	case loadedMsg:
		m.loading = false
		m.refresh()
		return m, nil

	case sentMsg:
		m.inFlight--
		m.refresh()
		return m, nil

	case voiceMsg:
		if msg.err == nil && msg.transcribed {
			m.input.SetValue(m.ws.Composer().Text())
			m.input.CursorEnd()
		}
		return m, nil

	case exportedMsg:
		if msg.err == nil {
			m.notice = "Exported to " + msg.path
		}
		return m, nil

	case spokenMsg:
		if msg.err == nil && msg.path != "" {
			m.notice = "Saved speech to " + msg.path
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if k.Type == tea.KeyCtrlC || k.Type == tea.KeyEsc {
		m.quitting = true
		m.cancel()
		_ = m.ws.Close()
		return m, tea.Quit
	}
	// The transcript replaces the input when it lands, so edits made in the
	// meantime would be lost.
	if m.ws.Voice().State() == workspace.VoiceTranscribing {
		m.notice = "Wait for the transcription to finish."
		return m, nil
	}

	switch k.Type {
	case tea.KeyEnter:
		return m.send()

	case tea.KeyCtrlR:
		m.notice = ""
		m.ws.Composer().SetText(m.input.Value())
		return m, m.toggleRecording()

	case tea.KeyCtrlT:
		_, target := m.ws.Languages()
		m.setLanguage(m.ws.SetTargetLanguage(next(language.Targets(), target)))
		return m, nil

	case tea.KeyCtrlL:
		source, _ := m.ws.Languages()
		m.setLanguage(m.ws.SetSourceLanguage(next(language.Sources(), source)))
		return m, nil

	case tea.KeyCtrlS:
		m.setLanguage(m.ws.SwapLanguages())
		return m, nil

	case tea.KeyCtrlE:
		m.notice = ""
		return m, m.export()

	case tea.KeyCtrlP:
		m.notice = ""
		cmd := m.speakLatest()
		if cmd == nil {
			m.notice = "Nothing to read aloud yet."
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(k)
	return m, cmd
}

// send starts an optimistic send. The pending row shows at once and the
// backend call runs as a command.
func (m Model) send() (tea.Model, tea.Cmd) {
	m.notice = ""
	m.ws.Composer().SetText(m.input.Value())
	ticket, err := m.ws.BeginSend()
	if err != nil {
		m.notice = apperr.Message(err, "Failed to send the message.")
		return m, nil
	}
	if ticket == nil {
		return m, nil
	}
	m.input.Reset()
	m.inFlight++
	m.refresh()

	ws, ctx := m.ws, m.ctx
	timeout := m.opts.Timeout
	return m, func() tea.Msg {
		callCtx, cancel := withTimeout(ctx, timeout)
		defer cancel()
		_, err := ws.Dispatch(callCtx, ticket)
		return sentMsg{err: err}
	}
}

func (m Model) load() tea.Cmd {
	ws, ctx, timeout := m.ws, m.ctx, m.opts.Timeout
	return func() tea.Msg {
		callCtx, cancel := withTimeout(ctx, timeout)
		defer cancel()
		return loadedMsg{err: ws.Load(callCtx)}
	}
}

// toggleRecording uses the model context so a started capture outlives the
// command that started it. Only a stop produces a transcript for the input.
func (m Model) toggleRecording() tea.Cmd {
	ws, ctx := m.ws, m.ctx
	stopping := ws.Voice().State() == workspace.VoiceRecording
	return func() tea.Msg {
		return voiceMsg{transcribed: stopping, err: ws.ToggleRecording(ctx)}
	}
}

func (m Model) export() tea.Cmd {
	ws, ctx, timeout, dir := m.ws, m.ctx, m.opts.Timeout, m.opts.OutputDir
	return func() tea.Msg {
		callCtx, cancel := withTimeout(ctx, timeout)
		defer cancel()
		out, err := ws.Export(callCtx)
		if err != nil {
			return exportedMsg{err: err}
		}
		path := filepath.Join(dir, out.Filename)
		if err := os.WriteFile(path, []byte(out.Content), 0o644); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path}
	}
}

// speakLatest reads the newest settled translation aloud. It returns nil
// when there is none.
func (m Model) speakLatest() tea.Cmd {
	var latest *conversation.Message
	for _, e := range m.ws.Timeline().Entries() {
		if e.Status == conversation.MessageStatusComplete {
			msg := e.Message
			latest = &msg
		}
	}
	if latest == nil {
		return nil
	}

	ws, ctx, timeout, opts := m.ws, m.ctx, m.opts.Timeout, m.opts
	text, id := latest.TranslatedText, latest.ID
	return func() tea.Msg {
		callCtx, cancel := withTimeout(ctx, timeout)
		defer cancel()
		audio, err := ws.Speak(callCtx, text)
		if err != nil {
			return spokenMsg{err: err}
		}
		if opts.Player != nil {
			return spokenMsg{err: opts.Player.Play(ctx, audio)}
		}
		path := filepath.Join(opts.OutputDir, fmt.Sprintf("speech-%d.mp3", id))
		return spokenMsg{path: path, err: os.WriteFile(path, audio, 0o644)}
	}
}

func (m *Model) setLanguage(err error) {
	m.notice = ""
	if err != nil {
		m.notice = apperr.Message(err, "Could not change the language.")
	}
}

func (m *Model) resize(width, height int) {
	headerHeight, inputHeight, footerHeight := 2, 3, 2
	bodyHeight := height - headerHeight - inputHeight - footerHeight
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = bodyHeight
	m.input.Width = width - 8
	m.ready = true
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTimeline())
	m.viewport.GotoBottom()
}

func (m Model) busy() bool {
	return m.loading || m.inFlight > 0 || m.ws.Voice().State() == workspace.VoiceTranscribing
}

func (m Model) renderTimeline() string {
	if m.loading {
		return m.spinner.View() + " Loading conversation..."
	}
	entries := m.ws.Timeline().Entries()
	if len(entries) == 0 {
		return m.styles.languages.Render("No messages yet. Type below to start translating.")
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(m.styles.original.Render("You: " + e.OriginalText))
		b.WriteString("\n")
		switch e.Status {
		case conversation.MessageStatusPending:
			b.WriteString(m.styles.pending.Render(m.spinner.View() + " " + e.TranslatedText))
		case conversation.MessageStatusError:
			b.WriteString(m.styles.failed.Render("✗ " + e.TranslatedText))
		default:
			b.WriteString(m.styles.translated.Render("→ " + e.TranslatedText))
		}
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	source, target := m.ws.Languages()
	title := m.ws.Conversation().Title
	if title == "" {
		title = fmt.Sprintf("Conversation %d", m.ws.ConversationID())
	}

	header := m.styles.header.Render(title) + "  " +
		m.styles.languages.Render(fmt.Sprintf("%s → %s", source, target))
	switch m.ws.Voice().State() {
	case workspace.VoiceRecording:
		header += "  " + m.styles.recording.Render("● recording")
	case workspace.VoiceTranscribing:
		header += "  " + m.styles.languages.Render(m.spinner.View()+" transcribing")
	}

	status := m.ws.Status()
	if m.notice != "" {
		status = m.notice
	}

	var b strings.Builder
	b.WriteString(header + "\n\n")
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(m.styles.input.Render(m.input.View()) + "\n")
	if status != "" {
		b.WriteString(m.styles.status.Render(status) + "\n")
	}
	b.WriteString(m.styles.help.Render(helpLine))
	return b.String()
}

// Run starts the program in the alternate screen and blocks until it exits.
func Run(ws *workspace.Workspace, opts Options) error {
	_, err := tea.NewProgram(New(ws, opts), tea.WithAltScreen()).Run()
	return err
}

func next(langs []language.Language, current string) string {
	for i, l := range langs {
		if l.Code == current {
			return langs[(i+1)%len(langs)].Code
		}
	}
	return langs[0].Code
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
