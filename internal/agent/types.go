package agent

import (
	"fmt"

	"github.com/bowerhall/novia/internal/config"
	"github.com/bowerhall/novia/internal/llm"
	"github.com/bowerhall/novia/internal/memory"
	"github.com/bowerhall/novia/internal/session"
)

// Emotion tags the model may answer with. Unknown tags are passed
// through for display rather than rejected; the face table falls back
// to the base face on its own.
const (
	EmotionBase       = "base"
	EmotionHappy      = "feliz"
	EmotionSad        = "triste"
	EmotionAngry      = "enojada"
	EmotionJealous    = "celosa"
	EmotionSurprised  = "sorprendida"
	EmotionThoughtful = "pensativa"
)

// Agent drives one conversation turn at a time: assemble context, call
// the model, interpret the reply, apply memory side effects.
type Agent struct {
	llm      llm.LLM
	store    *memory.Store
	persona  config.Persona
	sess     *session.Session
	userName string
}

func New(model llm.LLM, store *memory.Store, persona config.Persona, sess *session.Session, userName string) *Agent {
	return &Agent{
		llm:      model,
		store:    store,
		persona:  persona,
		sess:     sess,
		userName: userName,
	}
}

// Turn is what one completed exchange hands back to the UI.
type Turn struct {
	Emotion string
	Text    string
	// Notices are side-effect announcements (newly met people),
	// rendered apart from the chat text.
	Notices []string
	// EndSession is set when the model called the termination tool;
	// Text then carries the farewell.
	EndSession bool
}

// GatewayError wraps a transport failure from the completion gateway.
// Format problems in an otherwise delivered response are not gateway
// errors; they degrade to a verbatim reply instead.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("completion gateway: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

type replyKind int

const (
	replyUnparsable replyKind = iota
	replyChat
	replyEndSession
	replyLegacySave
)

// reply is the tagged decode of a model response.
type reply struct {
	kind replyKind
	raw  string

	// chat payload
	emotion   string
	text      string
	mentioned []string
	newFacts  *memory.ProfileFacts

	// end-session tool
	farewell string

	// legacy save tool
	rememberName   string
	rememberDetail string
}

// wireReply mirrors every key any revision of the model contract has
// used; which keys are present decides the variant.
type wireReply struct {
	Emotion        string               `json:"emocion"`
	Text           string               `json:"texto"`
	Mentioned      []string             `json:"personas_mencionadas"`
	NewFacts       *memory.ProfileFacts `json:"nueva_memoria"`
	ToolToCall     string               `json:"tool_to_call"`
	Farewell       string               `json:"texto_despedida"`
	RememberName   string               `json:"nombre_a_recordar"`
	RememberDetail string               `json:"dato_a_recordar"`
}
