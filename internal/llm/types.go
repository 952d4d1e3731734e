package llm

import "context"

type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	// JSONMode asks providers that support it to constrain output to a
	// single JSON object. The prompt still spells out the format; this
	// only reduces retries.
	JSONMode bool
}

type Message struct {
	Role    string
	Content string
}

type LLM interface {
	Chat(ctx context.Context, systemPrompt string, messages []Message) (string, error)
}
