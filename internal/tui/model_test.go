package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bowerhall/novia/internal/agent"
	"github.com/bowerhall/novia/internal/config"
	"github.com/bowerhall/novia/internal/llm"
	"github.com/bowerhall/novia/internal/memory"
	"github.com/bowerhall/novia/internal/session"
)

type scriptedLLM struct {
	responses []string
	calls     int
	err       error
}

func (s *scriptedLLM) Chat(ctx context.Context, systemPrompt string, messages []llm.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	i := s.calls
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	s.calls++
	return s.responses[i], nil
}

func newTestModel(t *testing.T, model llm.LLM) Model {
	t.Helper()
	dir := t.TempDir()
	store := memory.NewStore(filepath.Join(dir, "memoria.json"), filepath.Join(dir, "historial.json"))
	sess := session.New(session.DefaultWindowSize)
	ag := agent.New(model, store, config.DefaultPersona(), sess, "usuario")
	return New(Config{
		Agent:     ag,
		Session:   sess,
		Companion: "Miku",
	})
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func pressEnter(m Model) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestSubmitRunsTurnAndShowsReply(t *testing.T) {
	fake := &scriptedLLM{responses: []string{`{"emocion": "feliz", "texto": "¡Hola!"}`}}
	m := newTestModel(t, fake)

	m = typeText(m, "hola")
	m, cmd := pressEnter(m)
	if cmd == nil {
		t.Fatal("expected a command after submit")
	}
	if !m.waiting {
		t.Error("model should be waiting after submit")
	}
	if m.emotion != agent.EmotionThoughtful {
		t.Errorf("emotion while waiting = %q, want %q", m.emotion, agent.EmotionThoughtful)
	}

	msg := runBatch(t, cmd)
	turn, ok := msg.(turnMsg)
	if !ok {
		t.Fatalf("got %T, want turnMsg", msg)
	}

	next, _ := m.Update(turn)
	m = next.(Model)
	if m.waiting {
		t.Error("model should stop waiting after the turn")
	}
	if m.emotion != "feliz" {
		t.Errorf("emotion = %q, want feliz", m.emotion)
	}
	view := m.View()
	if !strings.Contains(view, "¡Hola!") {
		t.Error("reply text missing from view")
	}
	if !strings.Contains(view, "usuario:") {
		t.Error("user line missing from view")
	}
}

func TestGatewayFailureShowsErrorLine(t *testing.T) {
	fake := &scriptedLLM{err: errors.New("connection refused")}
	m := newTestModel(t, fake)

	m = typeText(m, "hola")
	m, cmd := pressEnter(m)

	msg := runBatch(t, cmd)
	em, ok := msg.(errMsg)
	if !ok {
		t.Fatalf("got %T, want errMsg", msg)
	}
	var gw *agent.GatewayError
	if !errors.As(em.err, &gw) {
		t.Fatalf("error = %v, want GatewayError", em.err)
	}

	next, _ := m.Update(em)
	m = next.(Model)
	if m.emotion != agent.EmotionSad {
		t.Errorf("emotion after failure = %q, want %q", m.emotion, agent.EmotionSad)
	}
	if !strings.Contains(m.View(), "connection refused") {
		t.Error("failure cause missing from view")
	}
}

func TestEmptyInputDoesNothing(t *testing.T) {
	m := newTestModel(t, &scriptedLLM{responses: []string{`{}`}})
	m, cmd := pressEnter(m)
	if cmd != nil {
		t.Error("empty submit should not issue a command")
	}
	if m.waiting {
		t.Error("empty submit should not enter waiting state")
	}
}

func TestSubmitWhileWaitingIsDropped(t *testing.T) {
	fake := &scriptedLLM{responses: []string{`{"emocion": "base", "texto": "ok"}`}}
	m := newTestModel(t, fake)

	m = typeText(m, "uno")
	m, _ = pressEnter(m)

	m = typeText(m, "dos")
	_, cmd := pressEnter(m)
	if cmd != nil {
		t.Error("submit while waiting should be dropped")
	}
}

func TestExitCommandBeginsClose(t *testing.T) {
	fake := &scriptedLLM{responses: []string{"resumen de la charla"}}
	m := newTestModel(t, fake)

	m = typeText(m, "/salir")
	m, cmd := pressEnter(m)
	if !m.closing {
		t.Fatal("model should be closing after /salir")
	}

	msg := runBatch(t, cmd)
	if _, ok := msg.(closedMsg); !ok {
		t.Fatalf("got %T, want closedMsg", msg)
	}

	next, quit := m.Update(closedMsg{})
	m = next.(Model)
	if quit == nil {
		t.Fatal("closedMsg should quit the program")
	}
	if _, ok := quit().(tea.QuitMsg); !ok {
		t.Error("closedMsg command should be tea.Quit")
	}
}

func TestEndSessionTurnBeginsClose(t *testing.T) {
	fake := &scriptedLLM{responses: []string{
		`{"tool_to_call": "panic_quit", "texto_despedida": "Me voy."}`,
		"resumen",
	}}
	m := newTestModel(t, fake)

	m = typeText(m, "vete")
	m, cmd := pressEnter(m)

	msg := runBatch(t, cmd)
	next, closeCmd := m.Update(msg)
	m = next.(Model)

	if !m.closing {
		t.Error("end-session turn should put the model into closing state")
	}
	if !strings.Contains(m.View(), "Me voy.") {
		t.Error("farewell missing from view")
	}
	if closeCmd == nil {
		t.Fatal("end-session turn should schedule session close")
	}
}

func TestCloseSessionWaitsForInFlightTurn(t *testing.T) {
	m := newTestModel(t, &scriptedLLM{responses: []string{"resumen"}})

	// simulate a turn still in flight
	if !m.sess.TryAcquire() {
		t.Fatal("processing lock should start free")
	}

	done := make(chan struct{})
	go func() {
		m.closeSession()()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("session close must wait for the in-flight turn")
	case <-time.After(50 * time.Millisecond):
	}

	m.sess.Release()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("session close never proceeded after the turn finished")
	}
}

func TestStaleTurnAfterCloseIsDropped(t *testing.T) {
	m := newTestModel(t, &scriptedLLM{responses: []string{"resumen"}})
	m.closing = true

	before := m.View()
	next, _ := m.Update(turnMsg{turn: &agent.Turn{Emotion: "feliz", Text: "tarde"}})
	m = next.(Model)
	if m.View() != before {
		t.Error("turn arriving after close began should be dropped")
	}
}

// runBatch executes a command, skipping spinner ticks inside a batch,
// and returns the first application message it produces.
func runBatch(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("no command to run")
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			probe := c()
			switch probe.(type) {
			case turnMsg, errMsg, closedMsg:
				return probe
			}
		}
		t.Fatal("batch contained no application message")
	case turnMsg, errMsg, closedMsg:
		return msg
	default:
		t.Fatalf("unexpected message %T", msg)
	}
	return nil
}
