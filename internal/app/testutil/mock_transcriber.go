package testutil

import (
	"context"
	"sync"
	"time"
)

// TranscriptionCall records a single call for assertions.
type TranscriptionCall struct {
	AudioPath string
	Timestamp time.Time
}

// MockTranscriber is a configurable stt.Transcriber test double. Specific
// paths can be scripted to fail or to return a fixed text; everything else
// gets DefaultResponse.
type MockTranscriber struct {
	mu sync.Mutex

	DefaultResponse string
	DefaultLatency  time.Duration
	ErrorMap        map[string]error
	ResponseMap     map[string]string

	CallCount   int
	CallHistory []TranscriptionCall
}

// NewMockTranscriber creates a MockTranscriber with sensible defaults.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		DefaultResponse: "This is a mock transcription result.",
		ErrorMap:        make(map[string]error),
		ResponseMap:     make(map[string]string),
	}
}

// Transcribe implements the stt.Transcriber interface.
func (m *MockTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	m.mu.Lock()
	m.CallCount++
	m.CallHistory = append(m.CallHistory, TranscriptionCall{
		AudioPath: audioPath,
		Timestamp: time.Now(),
	})
	err := m.ErrorMap[audioPath]
	resp, ok := m.ResponseMap[audioPath]
	latency := m.DefaultLatency
	m.mu.Unlock()

	if latency > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(latency):
		}
	}

	if err != nil {
		return "", err
	}
	if ok {
		return resp, nil
	}
	return m.DefaultResponse, nil
}

// FailOn scripts an error for one audio path.
func (m *MockTranscriber) FailOn(audioPath string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[audioPath] = err
}

// RespondTo scripts a fixed text for one audio path.
func (m *MockTranscriber) RespondTo(audioPath, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseMap[audioPath] = text
}

// Calls returns a copy of the call history.
func (m *MockTranscriber) Calls() []TranscriptionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	history := make([]TranscriptionCall, len(m.CallHistory))
	copy(history, m.CallHistory)
	return history
}
