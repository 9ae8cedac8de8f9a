package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AudioStore keeps the raw audio behind a transcript. Save returns the
// storage path recorded on the transcript; Fetch materializes that path as
// a local file the speech-to-text binary can read.
type AudioStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	// Fetch returns a local file path for the stored audio plus a cleanup
	// function. For local storage the cleanup is a no-op.
	Fetch(ctx context.Context, storagePath string) (string, func(), error)
	Remove(ctx context.Context, storagePath string) error
}

// LocalStore writes audio files under a base directory on the local disk.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates the base directory if needed.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	name := SanitizeFilename(filename)
	path := filepath.Join(s.baseDir, name)

	// A colliding file on disk gets a timestamp prefix; record-level
	// duplicate rejection happens in the store, not here.
	if _, err := os.Stat(path); err == nil {
		path = filepath.Join(s.baseDir, time.Now().Format("150405")+"_"+name)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	return path, nil
}

func (s *LocalStore) Fetch(ctx context.Context, storagePath string) (string, func(), error) {
	if _, err := os.Stat(storagePath); err != nil {
		return "", nil, fmt.Errorf("audio file not accessible: %w", err)
	}
	return storagePath, func() {}, nil
}

func (s *LocalStore) Remove(ctx context.Context, storagePath string) error {
	err := os.Remove(storagePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove audio file: %w", err)
	}
	return nil
}

// SanitizeFilename strips path separators and anything outside a
// conservative character set so uploaded names are safe on disk.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == '.' || c == '_' || c == '-' || c == ' ':
			b.WriteRune(c)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" || out == "." {
		out = fmt.Sprintf("upload_%d", time.Now().UnixNano())
	}
	return out
}
