package qa

import (
	"strings"
	"unicode"
)

// Chunk is one overlapping window of transcript sentences. Index is the
// position in the original transcript; it is the tie-breaker for ranking
// and the sort key when selected chunks are reassembled.
type Chunk struct {
	Index int
	Text  string
}

// ChunkText splits a transcript into overlapping windows of whole
// sentences. sentencesPerChunk controls window size, overlap how many
// trailing sentences are repeated at the start of the next window.
func ChunkText(text string, sentencesPerChunk, overlap int) []Chunk {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = defaultSentencesPerChunk
	}
	if overlap < 0 || overlap >= sentencesPerChunk {
		// The default overlap can still be too large for a one-sentence
		// window; the step must stay positive.
		overlap = defaultChunkOverlap
		if overlap >= sentencesPerChunk {
			overlap = sentencesPerChunk - 1
		}
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	step := sentencesPerChunk - overlap
	chunks := make([]Chunk, 0, (len(sentences)+step-1)/step)
	for start, idx := 0, 0; start < len(sentences); start, idx = start+step, idx+1 {
		end := start + sentencesPerChunk
		if end > len(sentences) {
			end = len(sentences)
		}
		chunks = append(chunks, Chunk{
			Index: idx,
			Text:  strings.Join(sentences[start:end], " "),
		})
		if end == len(sentences) {
			break
		}
	}
	return chunks
}

// splitSentences breaks text on terminal punctuation followed by
// whitespace. Interview transcripts are conversational, so a lightweight
// splitter beats a full tokenizer here; leftover text without terminal
// punctuation still becomes a final sentence.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	flush := func() {
		s := strings.TrimSpace(b.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
				flush()
			}
		}
	}
	flush()
	return sentences
}
