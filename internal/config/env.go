package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeys holds credentials loaded from the environment. Both keys are
// optional when the corresponding engine is not selected.
type APIKeys struct {
	OpenAI string
	Gemini string
}

// LoadEnv loads variables from a .env file when one exists; system-wide
// environment variables win when no file is found.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
	}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}
	return nil
}

// GetAPIKeys reads and sanity-checks the model provider keys.
func GetAPIKeys() (*APIKeys, error) {
	keys := &APIKeys{
		OpenAI: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Gemini: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
	}

	if keys.OpenAI != "" && len(keys.OpenAI) < 8 {
		return nil, fmt.Errorf("invalid OPENAI_API_KEY: too short")
	}
	if keys.Gemini != "" && len(keys.Gemini) < 8 {
		return nil, fmt.Errorf("invalid GEMINI_API_KEY: too short")
	}
	return keys, nil
}
