package qa

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"healthvoice/internal/app/api/embed"
	"healthvoice/internal/app/api/llm"
	"healthvoice/internal/app/gate"
	"healthvoice/internal/app/metrics"
	"healthvoice/internal/app/model"
	"healthvoice/internal/app/repository"
)

// ErrTranscriptNotReady rejects a question batch whose transcript has not
// completed transcription. The whole batch is refused before any entry is
// created.
var ErrTranscriptNotReady = errors.New("transcript is not completed")

// FailureAnswerPrefix marks answers that record a generation failure
// instead of model output. Clients use it to render "could not answer"
// entries distinctly; it is never produced by the model itself.
const FailureAnswerPrefix = "[could not answer] "

const (
	defaultSentencesPerChunk = 4
	defaultChunkOverlap      = 1
	defaultTopK              = 8
	defaultMaxAttempts       = 4
	defaultMaxAnswerTokens   = 300
	contextUsedLimit         = 2000
)

// Config tunes retrieval and generation.
type Config struct {
	SentencesPerChunk int
	ChunkOverlap      int
	TopK              int
	MaxAttempts       int
	MaxAnswerTokens   int
}

func (c Config) withDefaults() Config {
	if c.SentencesPerChunk <= 0 {
		c.SentencesPerChunk = defaultSentencesPerChunk
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.SentencesPerChunk {
		c.ChunkOverlap = defaultChunkOverlap
		if c.ChunkOverlap >= c.SentencesPerChunk {
			c.ChunkOverlap = c.SentencesPerChunk - 1
		}
	}
	if c.TopK <= 0 {
		c.TopK = defaultTopK
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.MaxAnswerTokens <= 0 {
		c.MaxAnswerTokens = defaultMaxAnswerTokens
	}
	return c
}

// Engine answers question batches about one completed transcript. It is
// read-only on transcripts, read-write on QA entries, and serializes every
// generation call through the shared model gate.
type Engine struct {
	transcripts repository.TranscriptDAO
	entries     repository.QAEntryDAO
	embedder    embed.Embedder
	generator   llm.Generator
	cache       EmbeddingCache
	modelGate   *gate.ModelGate
	metrics     *metrics.Metrics
	cfg         Config
	logger      *zap.Logger
}

// NewEngine creates a QA engine.
func NewEngine(
	transcripts repository.TranscriptDAO,
	entries repository.QAEntryDAO,
	embedder embed.Embedder,
	generator llm.Generator,
	cache EmbeddingCache,
	modelGate *gate.ModelGate,
	m *metrics.Metrics,
	cfg Config,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		transcripts: transcripts,
		entries:     entries,
		embedder:    embedder,
		generator:   generator,
		cache:       cache,
		modelGate:   modelGate,
		metrics:     m,
		cfg:         cfg.withDefaults(),
		logger:      logger,
	}
}

// AnswerBatch answers every question in order and persists one QA entry
// per question. A generation failure on one question is recorded in that
// entry's answer and never aborts the rest of the batch; only a transcript
// that is missing or not completed rejects the batch up front.
func (e *Engine) AnswerBatch(ctx context.Context, transcriptID string, questions []string) ([]model.QAEntry, error) {
	t, err := e.transcripts.Get(transcriptID)
	if err != nil {
		return nil, err
	}
	if t.Status != model.StatusCompleted || t.Text == nil {
		return nil, fmt.Errorf("%w: transcript %s is %q", ErrTranscriptNotReady, transcriptID, t.Status)
	}

	embeddings := e.chunkEmbeddings(ctx, t)

	results := make([]model.QAEntry, 0, len(questions))
	for _, question := range questions {
		entry := model.QAEntry{
			ID:           uuid.New().String(),
			TranscriptID: t.ID,
			Question:     question,
			CreatedAt:    time.Now().UTC(),
		}
		if err := e.entries.Create(&entry); err != nil {
			return results, err
		}

		answer, contextUsed, genErr := e.answerOne(ctx, embeddings, question)
		if genErr != nil {
			e.metrics.QuestionsFailed.Inc()
			e.logger.Warn("question failed",
				zap.String("transcript_id", t.ID),
				zap.String("question", question),
				zap.Error(genErr))
			answer = FailureAnswerPrefix + genErr.Error()
		} else {
			e.metrics.QuestionsAnswered.Inc()
		}

		if err := e.entries.UpdateAnswer(entry.ID, answer, contextUsed); err != nil {
			return results, err
		}
		entry.Answer = &answer
		if contextUsed != "" {
			entry.ContextUsed = &contextUsed
		}
		results = append(results, entry)
	}
	return results, nil
}

// answerOne runs the retrieval and the bounded shrink-retry generation
// loop for a single question. Each attempt is a pure function of the
// ranked chunks and the current k.
func (e *Engine) answerOne(ctx context.Context, embeddings []ChunkEmbedding, question string) (answer, contextUsed string, err error) {
	if len(embeddings) == 0 {
		return "", "", errors.New("no usable transcript segments to search")
	}

	questionEmbedding, err := e.embedder.Embed(ctx, question)
	if err != nil {
		return "", "", fmt.Errorf("embedding question: %w", err)
	}

	ranked := rankChunks(questionEmbedding, embeddings)
	k := e.cfg.TopK
	if k > len(ranked) {
		k = len(ranked)
	}

	attempts := 0
	defer func() { e.metrics.GenerationAttempts.Observe(float64(attempts)) }()

	for attempts < e.cfg.MaxAttempts {
		attempts++
		contextChunks := selectContext(ranked, k)
		prompt := buildPrompt(contextChunks, question)

		answer, err := e.generate(ctx, prompt)
		if err == nil {
			return answer, joinChunks(contextChunks, contextUsedLimit), nil
		}
		if !errors.Is(err, llm.ErrContextOverflow) {
			return "", "", err
		}
		if k <= 1 {
			return "", "", fmt.Errorf("context overflow at minimum context size: %w", err)
		}
		e.logger.Info("context overflow, shrinking",
			zap.Int("attempt", attempts),
			zap.Int("chunks", k))
		k /= 2
	}
	return "", "", fmt.Errorf("context overflow persisted after %d attempts", e.cfg.MaxAttempts)
}

func (e *Engine) generate(ctx context.Context, prompt string) (string, error) {
	e.modelGate.Acquire()
	defer e.modelGate.Release()
	return e.generator.Generate(ctx, prompt, e.cfg.MaxAnswerTokens)
}

// chunkEmbeddings returns the transcript's chunk embeddings, from cache
// when the text is unchanged. A chunk whose embedding fails is excluded
// from ranking rather than failing the batch.
func (e *Engine) chunkEmbeddings(ctx context.Context, t *model.Transcript) []ChunkEmbedding {
	textHash := HashText(*t.Text)
	if cached, ok := e.cache.Get(ctx, t.ID, textHash); ok {
		return cached
	}
	// Text changed since the last batch (re-processing): stale entries
	// for the old text are dropped.
	e.cache.Invalidate(ctx, t.ID)

	chunks := ChunkText(*t.Text, e.cfg.SentencesPerChunk, e.cfg.ChunkOverlap)
	embeddings := make([]ChunkEmbedding, 0, len(chunks))
	for _, c := range chunks {
		emb, err := e.embedder.Embed(ctx, c.Text)
		if err != nil {
			e.logger.Warn("chunk embedding failed, excluding from ranking",
				zap.String("transcript_id", t.ID),
				zap.Int("chunk", c.Index),
				zap.Error(err))
			continue
		}
		embeddings = append(embeddings, ChunkEmbedding{Chunk: c, Embedding: emb})
	}
	e.cache.Put(ctx, t.ID, textHash, embeddings)
	return embeddings
}
