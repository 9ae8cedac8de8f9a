package testutil

import (
	"context"
	"sync"
)

// GenerationCall records one Generate invocation for assertions.
type GenerationCall struct {
	Prompt    string
	MaxTokens int
}

// MockGenerator is a scriptable llm.Generator test double. Errors are
// consumed in order from ErrorQueue before DefaultResponse is returned, so
// a test can fail the first N attempts and then succeed.
type MockGenerator struct {
	mu sync.Mutex

	DefaultResponse string
	ErrorQueue      []error
	// PromptLimit fails any prompt longer than the limit with LimitError,
	// simulating a fixed context window. Zero disables the check.
	PromptLimit int
	LimitError  error

	CallCount   int
	CallHistory []GenerationCall
}

// NewMockGenerator creates a MockGenerator with a fixed answer.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		DefaultResponse: "The patient reported mild symptoms.",
	}
}

// Generate implements the llm.Generator interface.
func (m *MockGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount++
	m.CallHistory = append(m.CallHistory, GenerationCall{Prompt: prompt, MaxTokens: maxTokens})

	if m.PromptLimit > 0 && len(prompt) > m.PromptLimit && m.LimitError != nil {
		return "", m.LimitError
	}
	if len(m.ErrorQueue) > 0 {
		err := m.ErrorQueue[0]
		m.ErrorQueue = m.ErrorQueue[1:]
		if err != nil {
			return "", err
		}
	}
	return m.DefaultResponse, nil
}

// QueueError appends an error consumed by the next Generate call.
func (m *MockGenerator) QueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorQueue = append(m.ErrorQueue, err)
}

// Calls returns a copy of the call history.
func (m *MockGenerator) Calls() []GenerationCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	history := make([]GenerationCall, len(m.CallHistory))
	copy(history, m.CallHistory)
	return history
}
