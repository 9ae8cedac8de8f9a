package qa

import (
	"strings"
)

const promptPreamble = "Answer the question using only the transcript excerpts below. " +
	"If the excerpts do not contain the answer, state that the information is not present in the transcript."

const chunkSeparator = "\n---\n"

// buildPrompt assembles the fixed preamble, the selected transcript
// excerpts in transcript order and the question.
func buildPrompt(contextChunks []Chunk, question string) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\nTranscript excerpts:\n")
	for i, c := range contextChunks {
		if i > 0 {
			b.WriteString(chunkSeparator)
		}
		b.WriteString(c.Text)
	}
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\nAnswer:")
	return b.String()
}

// joinChunks renders the selected context for persistence alongside the
// answer, truncated so a pathological transcript cannot bloat the row.
func joinChunks(contextChunks []Chunk, limit int) string {
	parts := make([]string, len(contextChunks))
	for i, c := range contextChunks {
		parts[i] = c.Text
	}
	joined := strings.Join(parts, chunkSeparator)
	if limit > 0 && len(joined) > limit {
		joined = joined[:limit] + "..."
	}
	return joined
}
