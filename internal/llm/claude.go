package llm

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const maxRetries = 3
const baseDelay = 2 * time.Second

type claude struct {
	client anthropic.Client
	model  string
}

func newClaude(apiKey, model string) LLM {
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &claude{client: client, model: model}
}

func (c *claude) Chat(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	anthropicMessages := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == "assistant" {
			anthropicMessages = append(anthropicMessages, anthropic.NewAssistantMessage(block))
		} else {
			anthropicMessages = append(anthropicMessages, anthropic.NewUserMessage(block))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 4096,
		Messages:  anthropicMessages,
	}

	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemPrompt},
		}
	}

	var resp *anthropic.Message
	var err error
	for attempt := range maxRetries {
		resp, err = c.client.Messages.New(ctx, params)
		if err == nil {
			break
		}
		if !isRetryableError(err) {
			return "", err
		}
		if attempt < maxRetries-1 {
			delay := baseDelay * time.Duration(1<<attempt)
			time.Sleep(delay)
		}
	}
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return text.String(), nil
}

func isRetryableError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "529") ||
		strings.Contains(errStr, "overloaded") ||
		strings.Contains(errStr, "Overloaded") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "502")
}
