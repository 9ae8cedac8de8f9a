package qa

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"healthvoice/internal/app/api/llm"
	"healthvoice/internal/app/gate"
	"healthvoice/internal/app/metrics"
	"healthvoice/internal/app/model"
	"healthvoice/internal/app/repository"
	"healthvoice/internal/app/testutil"
)

type engineFixture struct {
	engine      *Engine
	transcripts repository.TranscriptDAO
	entries     repository.QAEntryDAO
	embedder    *testutil.MockEmbedder
	generator   *testutil.MockGenerator
}

func newEngineFixture(t *testing.T, cfg Config) *engineFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	embedder := testutil.NewMockEmbedder()
	generator := testutil.NewMockGenerator()
	transcripts := db.Transcripts()
	entries := db.Entries()

	engine := NewEngine(transcripts, entries, embedder, generator,
		NewMemoryCache(), gate.New(), metrics.NewNop(), cfg, zap.NewNop())

	return &engineFixture{
		engine:      engine,
		transcripts: transcripts,
		entries:     entries,
		embedder:    embedder,
		generator:   generator,
	}
}

func TestEngine_AnswerBatch_PersistsEntries(t *testing.T) {
	f := newEngineFixture(t, Config{SentencesPerChunk: 2, TopK: 2})
	ctx := context.Background()

	tr := testutil.MustCompleted(t, f.transcripts, testutil.SampleTranscriptText)
	f.generator.DefaultResponse = "Lisinopril ten milligrams daily."

	answered, err := f.engine.AnswerBatch(ctx, tr.ID, []string{
		"What medication is the patient taking?",
		"When is the ECG scheduled?",
	})
	require.NoError(t, err)
	require.Len(t, answered, 2)

	for _, entry := range answered {
		require.NotNil(t, entry.Answer)
		assert.Equal(t, "Lisinopril ten milligrams daily.", *entry.Answer)
		require.NotNil(t, entry.ContextUsed)
		assert.NotEmpty(t, *entry.ContextUsed)
	}

	// The entries are durable, in question order.
	stored, err := f.entries.ListByTranscript(tr.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "What medication is the patient taking?", stored[0].Question)
}

func TestEngine_AnswerBatch_TranscriptNotReady(t *testing.T) {
	f := newEngineFixture(t, Config{})
	ctx := context.Background()

	tr := testutil.MustCreate(t, f.transcripts, testutil.NewTranscript(model.StatusPending))

	_, err := f.engine.AnswerBatch(ctx, tr.ID, []string{"any question"})
	assert.ErrorIs(t, err, ErrTranscriptNotReady)

	// The whole batch is refused before any entry exists.
	stored, err := f.entries.ListByTranscript(tr.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestEngine_AnswerBatch_MissingTranscript(t *testing.T) {
	f := newEngineFixture(t, Config{})

	_, err := f.engine.AnswerBatch(context.Background(), "no-such-id", []string{"q"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEngine_AnswerBatch_FailureIsolation(t *testing.T) {
	f := newEngineFixture(t, Config{SentencesPerChunk: 2, TopK: 2})
	ctx := context.Background()

	tr := testutil.MustCompleted(t, f.transcripts, testutil.SampleTranscriptText)

	// Second question fails, first and third succeed.
	f.generator.QueueError(nil)
	f.generator.QueueError(errors.New("model unavailable"))
	f.generator.QueueError(nil)

	answered, err := f.engine.AnswerBatch(ctx, tr.ID, []string{"q1", "q2", "q3"})
	require.NoError(t, err)
	require.Len(t, answered, 3)

	require.NotNil(t, answered[0].Answer)
	assert.False(t, strings.HasPrefix(*answered[0].Answer, FailureAnswerPrefix))

	require.NotNil(t, answered[1].Answer)
	assert.True(t, strings.HasPrefix(*answered[1].Answer, FailureAnswerPrefix))
	assert.Contains(t, *answered[1].Answer, "model unavailable")

	require.NotNil(t, answered[2].Answer)
	assert.False(t, strings.HasPrefix(*answered[2].Answer, FailureAnswerPrefix))
}

func TestEngine_AnswerBatch_QuestionEmbeddingFailureIsolated(t *testing.T) {
	f := newEngineFixture(t, Config{SentencesPerChunk: 2, TopK: 2})
	ctx := context.Background()

	tr := testutil.MustCompleted(t, f.transcripts, testutil.SampleTranscriptText)
	f.embedder.FailOn("broken question", errors.New("embedding service down"))

	answered, err := f.engine.AnswerBatch(ctx, tr.ID, []string{"broken question", "working question"})
	require.NoError(t, err)
	require.Len(t, answered, 2)

	require.NotNil(t, answered[0].Answer)
	assert.True(t, strings.HasPrefix(*answered[0].Answer, FailureAnswerPrefix))
	require.NotNil(t, answered[1].Answer)
	assert.False(t, strings.HasPrefix(*answered[1].Answer, FailureAnswerPrefix))
}

func TestEngine_ShrinkRetryOnOverflow(t *testing.T) {
	f := newEngineFixture(t, Config{SentencesPerChunk: 1, TopK: 4, MaxAttempts: 4})
	ctx := context.Background()

	tr := testutil.MustCompleted(t, f.transcripts, testutil.SampleTranscriptText)

	// Two overflows shrink k from 4 to 1 before the third attempt lands.
	f.generator.QueueError(llm.ErrContextOverflow)
	f.generator.QueueError(llm.ErrContextOverflow)

	answered, err := f.engine.AnswerBatch(ctx, tr.ID, []string{"q"})
	require.NoError(t, err)
	require.Len(t, answered, 1)
	require.NotNil(t, answered[0].Answer)
	assert.False(t, strings.HasPrefix(*answered[0].Answer, FailureAnswerPrefix))
	assert.Equal(t, 3, f.generator.CallCount)

	// Later attempts carry strictly smaller prompts.
	calls := f.generator.Calls()
	require.Len(t, calls, 3)
	assert.Greater(t, len(calls[0].Prompt), len(calls[1].Prompt))
	assert.Greater(t, len(calls[1].Prompt), len(calls[2].Prompt))
}

func TestEngine_OverflowAtMinimumContextFails(t *testing.T) {
	// One sentence means one chunk, so k starts at 1 and cannot shrink.
	f := newEngineFixture(t, Config{SentencesPerChunk: 4, TopK: 4})
	ctx := context.Background()

	tr := testutil.MustCompleted(t, f.transcripts, "Only one sentence here.")
	f.generator.QueueError(llm.ErrContextOverflow)

	answered, err := f.engine.AnswerBatch(ctx, tr.ID, []string{"q"})
	require.NoError(t, err)
	require.Len(t, answered, 1)
	require.NotNil(t, answered[0].Answer)
	assert.True(t, strings.HasPrefix(*answered[0].Answer, FailureAnswerPrefix))
	assert.Equal(t, 1, f.generator.CallCount)
}

func TestEngine_OverflowBoundedByMaxAttempts(t *testing.T) {
	f := newEngineFixture(t, Config{SentencesPerChunk: 1, TopK: 8, MaxAttempts: 2})
	ctx := context.Background()

	tr := testutil.MustCompleted(t, f.transcripts, testutil.SampleTranscriptText)

	for i := 0; i < 4; i++ {
		f.generator.QueueError(llm.ErrContextOverflow)
	}

	answered, err := f.engine.AnswerBatch(ctx, tr.ID, []string{"q"})
	require.NoError(t, err)
	require.Len(t, answered, 1)
	require.NotNil(t, answered[0].Answer)
	assert.True(t, strings.HasPrefix(*answered[0].Answer, FailureAnswerPrefix))
	assert.Equal(t, 2, f.generator.CallCount)
}

func TestConfig_WithDefaults_ClampsOverlapToWindow(t *testing.T) {
	// A one-sentence window leaves no room for the default overlap; it
	// must clamp to zero, never to a step of zero.
	cfg := Config{SentencesPerChunk: 1, ChunkOverlap: 1}.withDefaults()
	assert.Equal(t, 0, cfg.ChunkOverlap)

	cfg = Config{SentencesPerChunk: 1, ChunkOverlap: -1}.withDefaults()
	assert.Equal(t, 0, cfg.ChunkOverlap)

	cfg = Config{SentencesPerChunk: 3, ChunkOverlap: 3}.withDefaults()
	assert.Equal(t, defaultChunkOverlap, cfg.ChunkOverlap)
}

func TestEngine_AnswerBatch_SingleSentenceWindowInvalidOverlap(t *testing.T) {
	f := newEngineFixture(t, Config{SentencesPerChunk: 1, ChunkOverlap: 1, TopK: 2})
	ctx := context.Background()

	tr := testutil.MustCompleted(t, f.transcripts, testutil.SampleTranscriptText)

	answered, err := f.engine.AnswerBatch(ctx, tr.ID, []string{"q"})
	require.NoError(t, err)
	require.Len(t, answered, 1)
	require.NotNil(t, answered[0].Answer)
	assert.False(t, strings.HasPrefix(*answered[0].Answer, FailureAnswerPrefix))
}

func TestEngine_GenerationAttemptsObservesCeilingOnExhaustion(t *testing.T) {
	db := testutil.NewTestDB(t)
	generator := testutil.NewMockGenerator()
	registry := prometheus.NewRegistry()
	engine := NewEngine(db.Transcripts(), db.Entries(), testutil.NewMockEmbedder(),
		generator, NewMemoryCache(), gate.New(), metrics.New(registry),
		Config{SentencesPerChunk: 1, TopK: 8, MaxAttempts: 2}, zap.NewNop())

	tr := testutil.MustCompleted(t, db.Transcripts(), testutil.SampleTranscriptText)
	for i := 0; i < 4; i++ {
		generator.QueueError(llm.ErrContextOverflow)
	}

	_, err := engine.AnswerBatch(context.Background(), tr.ID, []string{"q"})
	require.NoError(t, err)

	families, err := registry.Gather()
	require.NoError(t, err)
	found := false
	for _, mf := range families {
		if mf.GetName() != "healthvoice_generation_attempts" {
			continue
		}
		found = true
		h := mf.GetMetric()[0].GetHistogram()
		assert.Equal(t, uint64(1), h.GetSampleCount())
		assert.Equal(t, 2.0, h.GetSampleSum())
	}
	require.True(t, found)
}

func TestEngine_ChunkEmbeddingsCached(t *testing.T) {
	f := newEngineFixture(t, Config{SentencesPerChunk: 2, TopK: 2})
	ctx := context.Background()

	tr := testutil.MustCompleted(t, f.transcripts, testutil.SampleTranscriptText)

	_, err := f.engine.AnswerBatch(ctx, tr.ID, []string{"first question"})
	require.NoError(t, err)
	callsAfterFirst := f.embedder.CallCount

	_, err = f.engine.AnswerBatch(ctx, tr.ID, []string{"second question"})
	require.NoError(t, err)

	// Only the new question is embedded on the second batch.
	assert.Equal(t, callsAfterFirst+1, f.embedder.CallCount)
}

func TestEngine_ChunkEmbeddingFailureExcludesChunk(t *testing.T) {
	f := newEngineFixture(t, Config{SentencesPerChunk: 1, TopK: 8})
	ctx := context.Background()

	tr := testutil.MustCompleted(t, f.transcripts, "Alpha one. Beta two. Gamma three.")
	f.embedder.FailOn("Beta two.", errors.New("embedding service hiccup"))

	answered, err := f.engine.AnswerBatch(ctx, tr.ID, []string{"what about beta?"})
	require.NoError(t, err)
	require.Len(t, answered, 1)
	require.NotNil(t, answered[0].Answer)
	assert.False(t, strings.HasPrefix(*answered[0].Answer, FailureAnswerPrefix))

	// The failed chunk never reaches the prompt.
	calls := f.generator.Calls()
	require.Len(t, calls, 1)
	assert.NotContains(t, calls[0].Prompt, "Beta two.")
	assert.Contains(t, calls[0].Prompt, "Alpha one.")
}
