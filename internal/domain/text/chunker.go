package text

import "strings"

// Chunk is one translation unit carved out of a longer text.
type Chunk struct {
	Index   int
	Content string
}

// Split breaks text into sentence-aligned chunks no smaller than a single
// sentence. Terminators are normalized to periods, sentences are packed
// greedily while the running chunk stays under maxChunkSize, and a
// sentence longer than the limit becomes its own chunk rather than being
// cut mid-sentence.
func Split(text string, maxChunkSize int) []Chunk {
	normalized := strings.NewReplacer("!", ".", "?", ".").Replace(text)
	sentences := strings.Split(normalized, ".")

	var chunks []Chunk
	current := ""

	flush := func() {
		trimmed := strings.TrimSpace(current)
		if trimmed != "" {
			chunks = append(chunks, Chunk{Index: len(chunks), Content: trimmed})
		}
		current = ""
	}

	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if len(current)+len(sentence) < maxChunkSize {
			current += sentence + ". "
		} else {
			flush()
			current = sentence + ". "
		}
	}
	flush()

	return chunks
}

// Join reassembles translated chunk contents with single spaces.
func Join(parts []string) string {
	return strings.Join(parts, " ")
}
