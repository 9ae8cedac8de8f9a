package converter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"healthvoice/internal/app/lifecycle"
	"healthvoice/internal/app/repository"
	"healthvoice/internal/app/storage"
)

// audioExtensions are the file types the batch importer will pick up.
var audioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".mp4":  true,
	".flac": true,
	".ogg":  true,
	".webm": true,
}

// Converter ingests a directory of audio files: every file is registered
// as a transcript, queued and transcribed synchronously, oldest file
// first. Files whose names are already registered are skipped, so reruns
// over the same directory only pick up new recordings.
type Converter struct {
	manager *lifecycle.Manager
	worker  *lifecycle.Worker
	audio   storage.AudioStore
	logger  *zap.Logger
}

func NewConverter(
	manager *lifecycle.Manager,
	worker *lifecycle.Worker,
	audio storage.AudioStore,
	logger *zap.Logger,
) *Converter {
	return &Converter{
		manager: manager,
		worker:  worker,
		audio:   audio,
		logger:  logger,
	}
}

type fileInfo struct {
	name    string
	path    string
	modTime int64
}

// Do registers and transcribes up to convertCount audio files from
// inputDir. Returns the number of files actually transcribed.
func (c *Converter) Do(ctx context.Context, inputDir string, convertCount int, progress ProgressConfig) (int, error) {
	files, err := listAudioFiles(inputDir)
	if err != nil {
		return 0, err
	}

	registered := 0
	skipped := 0
	for _, f := range files {
		if convertCount > 0 && registered >= convertCount {
			break
		}

		r, err := os.Open(f.path)
		if err != nil {
			return registered, fmt.Errorf("failed to open %s: %w", f.path, err)
		}
		storagePath, err := c.audio.Save(ctx, f.name, r)
		r.Close()
		if err != nil {
			return registered, err
		}

		t, err := c.manager.Create(ctx, f.name, storagePath)
		if errors.Is(err, repository.ErrDuplicateFilename) {
			_ = c.audio.Remove(ctx, storagePath)
			skipped++
			continue
		}
		if err != nil {
			return registered, err
		}
		if err := c.manager.Enqueue(ctx, t.ID); err != nil {
			return registered, err
		}
		registered++
	}

	c.logger.Info("batch import registered",
		zap.Int("files", registered),
		zap.Int("skipped", skipped),
		zap.String("dir", inputDir))

	pm := NewProgressManager(progress)
	bar := pm.CreateBar(registered, "transcribing")

	processed := 0
	for c.worker.ProcessNext(ctx) {
		processed++
		bar.Increment()
		if ctx.Err() != nil {
			break
		}
	}
	bar.Complete()
	pm.Wait()

	return processed, nil
}

// listAudioFiles returns the audio files directly under dir, oldest first.
func listAudioFiles(dir string) ([]fileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	files := make([]fileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !audioExtensions[ext] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{
			name:    entry.Name(),
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime().UnixNano(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime < files[j].modTime
	})
	return files, nil
}
