package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/bowerhall/novia/internal/llm"
	"github.com/bowerhall/novia/internal/logger"
)

const summaryPrompt = `Resume la siguiente conversación en 1 o 2 frases cortas desde la perspectiva de %s (primera persona).
Céntrate en los temas principales hablados.

Conversación:
%s

Resumen:`

// GenerateSummary produces a short first-person recap of the current
// window. Empty string on failure: a missing summary must never block
// session teardown.
func (a *Agent) GenerateSummary(ctx context.Context) string {
	transcript := renderTranscript(a.sess.Messages())
	if transcript == "" {
		return ""
	}

	prompt := fmt.Sprintf(summaryPrompt, a.persona.Name, transcript)

	response, err := a.llm.Chat(ctx, "", []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		logger.Error("summary generation failed", "error", err)
		return ""
	}

	return strings.TrimSpace(response)
}

func renderTranscript(messages []llm.Message) string {
	var b strings.Builder
	for _, msg := range messages {
		if msg.Role == "system" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}
	return b.String()
}
