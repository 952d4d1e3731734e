package agent

import "testing"

func TestExtractJSONSpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"leading prose", `Claro! {"a": 1}`, `{"a": 1}`},
		{"trailing prose", `{"a": 1} espero que te guste`, `{"a": 1}`},
		{"nested objects", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`},
		{"brace inside string", `{"texto": "jaja {guiño}"}`, `{"texto": "jaja {guiño}"}`},
		{"escaped quote in string", `{"texto": "dijo \"hola\" {fin}"}`, `{"texto": "dijo \"hola\" {fin}"}`},
		{"no braces", "hola como estas", ""},
		{"unbalanced", `{"a": 1`, ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSONSpan(tt.in); got != tt.want {
				t.Errorf("extractJSONSpan(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseReplyChat(t *testing.T) {
	r := parseReply(`{"emocion": "celosa", "texto": "quien es ella", "personas_mencionadas": ["Ana"], "nueva_memoria": {"gustos": ["cafe"]}}`)

	if r.kind != replyChat {
		t.Fatalf("expected chat reply, got %v", r.kind)
	}
	if r.emotion != "celosa" || r.text != "quien es ella" {
		t.Errorf("payload mismatch: %+v", r)
	}
	if len(r.mentioned) != 1 || r.mentioned[0] != "Ana" {
		t.Errorf("mentioned mismatch: %v", r.mentioned)
	}
	if r.newFacts == nil || len(r.newFacts.Likes) != 1 {
		t.Errorf("new facts mismatch: %+v", r.newFacts)
	}
}

func TestParseReplyUnknownEmotionPassesThrough(t *testing.T) {
	r := parseReply(`{"emocion": "nostalgica", "texto": "recuerdo aquello"}`)

	if r.kind != replyChat {
		t.Fatalf("expected chat reply, got %v", r.kind)
	}
	if r.emotion != "nostalgica" {
		t.Errorf("unknown emotion tags are accepted, got %q", r.emotion)
	}
}

func TestParseReplyMissingEmotionDefaultsToBase(t *testing.T) {
	r := parseReply(`{"texto": "sin emocion"}`)

	if r.emotion != EmotionBase {
		t.Errorf("expected base, got %q", r.emotion)
	}
}

func TestParseReplyMissingTextEchoesRaw(t *testing.T) {
	raw := `{"emocion": "feliz"}`
	r := parseReply(raw)

	if r.text != raw {
		t.Errorf("missing texto should echo the raw response, got %q", r.text)
	}
}

func TestParseReplyEndSessionTool(t *testing.T) {
	r := parseReply(`{"tool_to_call": "panic_quit", "texto_despedida": "chao"}`)

	if r.kind != replyEndSession {
		t.Fatalf("expected end-session reply, got %v", r.kind)
	}
	if r.farewell != "chao" {
		t.Errorf("farewell mismatch: %q", r.farewell)
	}
}

func TestParseReplyLegacySaveTool(t *testing.T) {
	r := parseReply(`{"nombre_a_recordar": "Ana", "dato_a_recordar": "odia el frio"}`)

	if r.kind != replyLegacySave {
		t.Fatalf("expected legacy save reply, got %v", r.kind)
	}
	if r.rememberName != "Ana" || r.rememberDetail != "odia el frio" {
		t.Errorf("legacy payload mismatch: %+v", r)
	}
}

func TestParseReplyUnparsable(t *testing.T) {
	for _, raw := range []string{
		"hola como estas",
		`{"emocion": "feliz",}`, // trailing comma
		`{"texto": sin comillas}`,
	} {
		r := parseReply(raw)
		if r.kind != replyUnparsable {
			t.Errorf("parseReply(%q): expected unparsable, got %v", raw, r.kind)
		}
		if r.raw != raw {
			t.Errorf("raw text must be preserved for fallback display")
		}
	}
}

func TestParseReplyToolTakesPriorityOverChatKeys(t *testing.T) {
	// a confused model emitting both shapes still terminates
	r := parseReply(`{"tool_to_call": "panic_quit", "texto_despedida": "adios", "emocion": "triste", "texto": "me voy"}`)

	if r.kind != replyEndSession {
		t.Errorf("tool key must win over chat keys, got %v", r.kind)
	}
}
