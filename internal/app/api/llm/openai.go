package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a clinical assistant analyzing a patient interview transcript. " +
	"Answer ONLY from the provided context. " +
	"If the context does not contain the answer, say the information is not present in the transcript. " +
	"Never invent facts."

// OpenAIGenerator produces answers through the chat-completions API. Low
// temperature keeps answers factual; the same client works against a local
// llama.cpp server via OPENAI_BASE_URL.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIGenerator creates a generator. An empty model selects gpt-4o-mini.
func NewOpenAIGenerator(client *openai.Client, model string) *OpenAIGenerator {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIGenerator{client: client, model: model, temperature: 0.3}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		MaxTokens:   maxTokens,
		Temperature: g.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		if isContextOverflow(err) {
			return "", ErrContextOverflow
		}
		return "", &GenerationError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &GenerationError{Err: errors.New("no completion choices returned")}
	}
	return resp.Choices[0].Message.Content, nil
}

// isContextOverflow recognizes the provider's context-window rejection.
// OpenAI tags it with the context_length_exceeded code; llama.cpp style
// servers only put it in the message text.
func isContextOverflow(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if code, ok := apiErr.Code.(string); ok && code == "context_length_exceeded" {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "context length") ||
		strings.Contains(msg, "context window") ||
		strings.Contains(msg, "maximum context")
}
