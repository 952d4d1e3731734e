// Package tui is the interactive terminal front end: an expressive face
// panel, the running transcript, and a single input line.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bowerhall/novia/internal/agent"
	"github.com/bowerhall/novia/internal/faces"
	"github.com/bowerhall/novia/internal/session"
	"github.com/bowerhall/novia/internal/storage"
)

// Config wires the chat model to the rest of the application.
type Config struct {
	Agent     *agent.Agent
	Session   *session.Session
	Backup    *storage.Client
	Companion string
	Timeout   time.Duration
	// BackupPaths are uploaded on session close when Backup is set.
	BackupPaths []string
}

type turnMsg struct{ turn *agent.Turn }

type errMsg struct{ err error }

// closedMsg signals that summarization and backup finished and the
// program can exit.
type closedMsg struct{}

type Model struct {
	ag          *agent.Agent
	sess        *session.Session
	backup      *storage.Client
	backupPaths []string
	companion   string
	timeout     time.Duration

	input    textinput.Model
	spin     spinner.Model
	viewport viewport.Model
	styles   styles

	lines   []string
	emotion string
	waiting bool
	closing bool
	width   int
	height  int
}

func New(cfg Config) Model {
	st := defaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Escribe algo... (/salir para despedirte)"
	ti.Prompt = "> "
	ti.PromptStyle = st.Prompt
	ti.CharLimit = 2048
	ti.Width = 76
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Prompt

	vp := viewport.New(80, 14)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return Model{
		ag:          cfg.Agent,
		sess:        cfg.Session,
		backup:      cfg.Backup,
		backupPaths: cfg.BackupPaths,
		companion:   cfg.Companion,
		timeout:     timeout,
		input:       ti,
		spin:        sp,
		viewport:    vp,
		styles:      st,
		emotion:     agent.EmotionBase,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.closing {
				return m, tea.Quit
			}
			return m.beginClose()
		case "enter":
			return m.submit()
		}

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case turnMsg:
		if m.closing {
			// a reply landing after teardown began is stale
			return m, nil
		}
		m.waiting = false
		return m.showTurn(msg.turn)

	case errMsg:
		if m.closing {
			return m, nil
		}
		m.waiting = false
		m.emotion = agent.EmotionSad
		var gw *agent.GatewayError
		if errors.As(msg.err, &gw) {
			m.appendLine(m.styles.Error.Render("(no pude alcanzar al modelo: " + gw.Err.Error() + ")"))
		} else {
			m.appendLine(m.styles.Error.Render("(error: " + msg.err.Error() + ")"))
		}
		return m, nil

	case closedMsg:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.waiting || m.closing {
		return m, nil
	}

	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.Reset()

	if text == "/salir" || text == "/exit" {
		return m.beginClose()
	}

	if !m.sess.TryAcquire() {
		return m, nil
	}

	m.appendLine(m.styles.User.Render(m.ag.UserName()+":") + " " + text)
	m.emotion = agent.EmotionThoughtful
	m.waiting = true

	return m, tea.Batch(m.respond(text), m.spin.Tick)
}

func (m Model) showTurn(t *agent.Turn) (tea.Model, tea.Cmd) {
	for _, n := range t.Notices {
		m.appendLine(m.styles.Notice.Render("* " + n))
	}
	if t.Emotion != "" {
		m.emotion = t.Emotion
	}
	m.appendLine(m.styles.Companion.Render(m.companion+":") + " " + t.Text)

	if t.EndSession {
		m.closing = true
		m.waiting = true
		return m, tea.Batch(m.closeSession(), m.spin.Tick)
	}
	return m, nil
}

func (m Model) beginClose() (tea.Model, tea.Cmd) {
	m.closing = true
	m.waiting = true
	m.emotion = agent.EmotionSad
	m.appendLine(m.styles.Status.Render("(despidiéndose...)"))
	return m, tea.Batch(m.closeSession(), m.spin.Tick)
}

// respond runs a full turn off the UI goroutine and reports back as a
// message.
func (m Model) respond(text string) tea.Cmd {
	return func() tea.Msg {
		defer m.sess.Release()

		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		turn, err := m.ag.Respond(ctx, text)
		if err != nil {
			return errMsg{err}
		}
		return turnMsg{turn}
	}
}

// closeSession summarizes the window, retires the partner slot, and
// backs up both files when a backup target is configured. It waits for
// any in-flight turn first so the worker's memory writes land before
// the demotion pass, never concurrently with it.
func (m Model) closeSession() tea.Cmd {
	return func() tea.Msg {
		m.sess.Acquire()
		defer m.sess.Release()

		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()

		m.ag.EndSession(ctx)

		if m.backup != nil && len(m.backupPaths) > 0 {
			m.backup.BackupFiles(ctx, m.backupPaths...)
		}
		return closedMsg{}
	}
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.refreshTranscript()
}

func (m *Model) refreshTranscript() {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	wrap := lipgloss.NewStyle().Width(width)

	wrapped := make([]string, len(m.lines))
	for i, line := range m.lines {
		wrapped[i] = wrap.Render(line)
	}
	m.viewport.SetContent(strings.Join(wrapped, "\n"))
	m.viewport.GotoBottom()
}

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	faceHeight := lipgloss.Height(m.facePanel())
	transcript := m.height - faceHeight - 2
	if transcript < 3 {
		transcript = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = transcript
	m.input.Width = m.width - 4
	m.refreshTranscript()
}

func (m Model) facePanel() string {
	label := m.styles.FaceLabel.Render(m.companion) +
		m.styles.Status.Render(" ("+m.emotion+")")
	return m.styles.Face.Render(label + "\n" + faces.Get(m.emotion))
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.facePanel())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.waiting {
		status := "pensando..."
		if m.closing {
			status = "cerrando la sesión..."
		}
		b.WriteString(m.spin.View() + m.styles.Status.Render(status))
	} else {
		b.WriteString(m.input.View())
	}

	return b.String()
}
