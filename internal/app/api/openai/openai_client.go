package openai

import (
	"log"
	"os"
	"sync"

	"github.com/sashabaranov/go-openai"
)

var (
	client *openai.Client
	once   sync.Once
)

// GetClient returns the process-wide OpenAI client. OPENAI_API_KEY must be
// set; optionally OPENAI_BASE_URL points at a local OpenAI-compatible
// server (llama.cpp, vLLM) so the whole pipeline can run offline.
func GetClient() *openai.Client {
	once.Do(func() {
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY environment variable is not set")
		}
		config := openai.DefaultConfig(apiKey)
		if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
			config.BaseURL = baseURL
		}
		client = openai.NewClientWithConfig(config)
	})
	return client
}
