package agent

import (
	"context"

	"github.com/bowerhall/novia/internal/llm"
	"github.com/bowerhall/novia/internal/logger"
	"github.com/bowerhall/novia/internal/memory"
)

// maxAttempts bounds the format-validation retry loop: one initial
// call plus two corrective retries.
const maxAttempts = 3

const correctionMessage = "Error: Tu respuesta no fue un JSON válido. Responde SOLAMENTE con el formato JSON solicitado."

// Respond runs one full turn. A *GatewayError means the model could
// not be reached at all; every other outcome, including unparsable
// output after exhausted retries, still yields a displayable Turn.
func (a *Agent) Respond(ctx context.Context, userText string) (*Turn, error) {
	doc := a.store.Load()
	log := a.store.LoadLog()

	recalled := memory.RetrieveRelevant(userText, log, memory.DefaultRecallLimit)

	lastSummary := ""
	if doc.Partner != nil {
		lastSummary = doc.Partner.LastSummary
	}

	systemPrompt := BuildSystemPrompt(a.persona, doc, lastSummary, recalled)

	messages := append(a.sess.Messages(), llm.Message{Role: "user", Content: userText})

	raw, err := a.callWithRetries(ctx, systemPrompt, messages)
	if err != nil {
		return nil, &GatewayError{Err: err}
	}

	a.sess.Add("user", userText)
	a.sess.Add("assistant", raw)

	turn := a.interpret(parseReply(raw), userText)

	logger.Debug("turn complete", "session", a.sess.ID(), "emotion", turn.Emotion, "end", turn.EndSession)

	return turn, nil
}

// callWithRetries re-prompts after invalid JSON, appending the bad
// response plus a correction instruction. When every attempt comes
// back invalid the last raw response is returned anyway; the
// interpreter degrades it to a verbatim reply. Transport errors
// are retried the same number of times, then surfaced as-is.
func (a *Agent) callWithRetries(ctx context.Context, systemPrompt string, messages []llm.Message) (string, error) {
	var raw string
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, lastErr = a.llm.Chat(ctx, systemPrompt, messages)
		if lastErr != nil {
			logger.Error("completion call failed", "attempt", attempt, "error", lastErr)
			continue
		}

		if span := extractJSONSpan(raw); span != "" && validJSON(span) {
			return raw, nil
		}

		logger.Warn("invalid model response, re-prompting", "attempt", attempt)
		if attempt < maxAttempts {
			messages = append(messages,
				llm.Message{Role: "assistant", Content: raw},
				llm.Message{Role: "user", Content: correctionMessage},
			)
		}
	}

	if lastErr != nil {
		return "", lastErr
	}

	// retries exhausted: hand back the invalid response for the
	// interpreter's fallback path
	return raw, nil
}

// EndSession summarizes the window, retires the current partner with
// that summary attached, and clears the window. Safe to call with an
// empty window or no partner; every step is a no-op then.
func (a *Agent) EndSession(ctx context.Context) {
	summary := a.GenerateSummary(ctx)
	if summary != "" {
		logger.Info("session summary generated", "session", a.sess.ID(), "summary", summary)
	}

	doc := a.store.Load()
	doc.DemotePartner(a.userName, summary)
	a.store.Save(doc)

	a.sess.Clear()
}

// UserName reports who the agent believes it is talking to.
func (a *Agent) UserName() string {
	return a.userName
}
