package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bowerhall/novia/internal/logger"
)

const toolPanicQuit = "panic_quit"

// extractJSONSpan returns the first balanced brace-delimited span in
// text, or "" when there is none. Braces inside JSON strings are
// skipped so dialogue like "jaja {guiño}" inside texto can't truncate
// the span.
func extractJSONSpan(text string) string {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return ""
}

// validJSON reports whether span decodes as a JSON object.
func validJSON(span string) bool {
	var probe map[string]any
	return json.Unmarshal([]byte(span), &probe) == nil
}

// parseReply decodes raw model output into a tagged variant. It never
// fails: anything that does not decode is the Unparsable variant.
func parseReply(raw string) reply {
	span := extractJSONSpan(raw)
	if span == "" {
		return reply{kind: replyUnparsable, raw: raw}
	}

	var wire wireReply
	if err := json.Unmarshal([]byte(span), &wire); err != nil {
		logger.Warn("model reply is not valid JSON", "error", err)
		return reply{kind: replyUnparsable, raw: raw}
	}

	switch {
	case wire.ToolToCall == toolPanicQuit:
		return reply{kind: replyEndSession, raw: raw, farewell: wire.Farewell}

	case wire.RememberName != "" && wire.RememberDetail != "":
		return reply{
			kind:           replyLegacySave,
			raw:            raw,
			rememberName:   wire.RememberName,
			rememberDetail: wire.RememberDetail,
		}

	default:
		emotion := wire.Emotion
		if emotion == "" {
			emotion = EmotionBase
		}

		text := wire.Text
		if text == "" {
			// a reply without texto still gets shown rather than
			// dropped
			text = raw
		}

		return reply{
			kind:      replyChat,
			raw:       raw,
			emotion:   emotion,
			text:      text,
			mentioned: wire.Mentioned,
			newFacts:  wire.NewFacts,
		}
	}
}

// interpret turns a parsed reply into a displayable Turn, applying
// memory side effects. All mutation runs through a single
// load-mutate-save pass over the relationship document.
func (a *Agent) interpret(r reply, userText string) *Turn {
	switch r.kind {
	case replyUnparsable:
		// show the text, touch nothing
		logger.Warn("showing raw model output, reply unparsable", "chars", len(r.raw))
		return &Turn{Emotion: EmotionBase, Text: r.raw}

	case replyEndSession:
		farewell := r.farewell
		if farewell == "" {
			farewell = a.persona.Farewell
		}
		logger.Info("model requested session end")
		return &Turn{Emotion: EmotionBase, Text: farewell, EndSession: true}

	case replyLegacySave:
		doc := a.store.Load()
		saved := doc.AppendDetail(r.rememberName, r.rememberDetail)
		if saved {
			a.store.Save(doc)
		}
		text := fmt.Sprintf("Anotado: %s (%s)", r.rememberName, r.rememberDetail)
		if !saved {
			text = fmt.Sprintf("No sé quién es %s todavía...", r.rememberName)
		}
		return &Turn{Emotion: EmotionBase, Text: text}

	default: // replyChat
		turn := &Turn{Emotion: r.emotion, Text: r.text}

		doc := a.store.Load()
		dirty := false

		for _, name := range r.mentioned {
			if doc.RegisterPerson(name) {
				dirty = true
				turn.Notices = append(turn.Notices, fmt.Sprintf("Acabo de conocer a %s", name))
			}
		}

		if r.newFacts != nil && !r.newFacts.Empty() {
			// the facts are about the user; make sure they exist in
			// the document before merging
			if cat, _ := doc.FindPerson(a.userName); cat == "" {
				doc.RegisterPerson(a.userName)
			}
			doc.UpdateProfile(a.userName, *r.newFacts)
			dirty = true
		}

		if dirty {
			a.store.Save(doc)
		}

		a.rememberExchange(userText, r.text)

		return turn
	}
}

func (a *Agent) rememberExchange(userText, aiResponse string) {
	a.store.AppendInteraction(a.userName, userText, aiResponse)
}
