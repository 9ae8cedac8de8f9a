package lifecycle

import (
	"context"
	"time"

	"go.uber.org/zap"

	"healthvoice/internal/app/api/stt"
	"healthvoice/internal/app/gate"
	"healthvoice/internal/app/metrics"
	"healthvoice/internal/app/model"
	"healthvoice/internal/app/storage"
)

// Worker is the single background driver: a fixed-interval sweep that
// claims at most one queued transcript, runs the speech-to-text engine
// outside the state-transition critical section and records the outcome.
// Transcription failures mark the transcript failed; they never stop the
// sweep loop.
type Worker struct {
	manager     *Manager
	transcriber stt.Transcriber
	audio       storage.AudioStore
	modelGate   *gate.ModelGate
	metrics     *metrics.Metrics
	interval    time.Duration
	logger      *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewWorker creates the background driver.
func NewWorker(
	manager *Manager,
	transcriber stt.Transcriber,
	audio storage.AudioStore,
	modelGate *gate.ModelGate,
	m *metrics.Metrics,
	interval time.Duration,
	logger *zap.Logger,
) *Worker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Worker{
		manager:     manager,
		transcriber: transcriber,
		audio:       audio,
		modelGate:   modelGate,
		metrics:     m,
		interval:    interval,
		logger:      logger,
	}
}

// Start launches the sweep goroutine.
func (w *Worker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})

	go func() {
		defer close(w.done)
		w.logger.Info("transcription worker started",
			zap.Duration("interval", w.interval))
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("transcription worker stopped")
				return
			case <-ticker.C:
				// Drain the queue before going back to sleep.
				for w.sweepOnce(ctx) {
					if ctx.Err() != nil {
						return
					}
				}
			}
		}
	}()
}

// Stop halts the sweep loop and waits for an in-flight transcription to
// record its outcome.
func (w *Worker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
}

// ProcessNext claims and processes at most one queued transcript,
// reporting whether an item was claimed. Callers that ingest batches use
// it to drive the queue synchronously instead of waiting for the sweep.
func (w *Worker) ProcessNext(ctx context.Context) bool {
	return w.sweepOnce(ctx)
}

// sweepOnce claims and processes at most one transcript, reporting whether
// an item was claimed.
func (w *Worker) sweepOnce(ctx context.Context) bool {
	t, err := w.manager.ClaimNext(ctx)
	if err != nil {
		w.logger.Error("claim failed", zap.Error(err))
		return false
	}
	if t == nil {
		return false
	}
	w.process(ctx, t)
	return true
}

func (w *Worker) process(ctx context.Context, t *model.Transcript) {
	w.metrics.TranscriptionsStarted.Inc()
	w.logger.Info("processing transcript",
		zap.String("id", t.ID),
		zap.String("filename", t.OriginalFilename))

	text, err := w.transcribe(ctx, t)
	if err != nil {
		w.metrics.TranscriptionsFailed.Inc()
		if failErr := w.manager.Fail(ctx, t.ID, err.Error()); failErr != nil {
			w.logger.Error("failed to record transcription failure",
				zap.String("id", t.ID),
				zap.Error(failErr))
		}
		return
	}

	w.metrics.TranscriptionsCompleted.Inc()
	if err := w.manager.Complete(ctx, t.ID, text); err != nil {
		w.logger.Error("failed to record transcription result",
			zap.String("id", t.ID),
			zap.Error(err))
	}
}

// transcribe holds the model gate only around the heavy call, never around
// a state transition.
func (w *Worker) transcribe(ctx context.Context, t *model.Transcript) (string, error) {
	localPath, cleanup, err := w.audio.Fetch(ctx, t.StoragePath)
	if err != nil {
		return "", err
	}
	defer cleanup()

	w.modelGate.Acquire()
	defer w.modelGate.Release()

	start := time.Now()
	text, err := w.transcriber.Transcribe(ctx, localPath)
	w.metrics.TranscriptionDuration.Observe(time.Since(start).Seconds())
	return text, err
}
