package chunker

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/debate-flow/internal/speech"
)

const (
	DefaultTargetMs int64 = 35000
	DefaultMaxMs    int64 = 50000

	// chunks starting inside this window are the speaker's setup
	setupWindowMs int64 = 120000
)

type Options struct {
	TargetMs int64
	MaxMs    int64
}

// Chunk is a citable slice of one speech on the speech-local clock.
type Chunk struct {
	ID        int    `json:"chunk_id"`
	Label     string `json:"label"`
	StartMs   int64  `json:"start_ms"`
	EndMs     int64  `json:"end_ms"`
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
}

func (c Chunk) StartTime() string { return speech.FormatClock(c.StartMs) }
func (c Chunk) EndTime() string   { return speech.FormatClock(c.EndMs) }

// Split groups speech-local words into chunks of roughly TargetMs.
// A chunk closes on the first word whose end reaches TargetMs (or MaxMs) past
// the chunk start; whatever is left at the end joins the last chunk.
func Split(words []speech.WordInterval, opts Options) []Chunk {
	if len(words) == 0 {
		return nil
	}
	if opts.TargetMs <= 0 {
		opts.TargetMs = DefaultTargetMs
	}
	if opts.MaxMs <= 0 {
		opts.MaxMs = DefaultMaxMs
	}

	var chunks []Chunk
	startIdx := 0
	for startIdx < len(words) {
		chunkStart := words[startIdx].StartMs
		endIdx := startIdx

		for i := startIdx + 1; i < len(words); i++ {
			elapsed := words[i].EndMs - chunkStart
			endIdx = i
			if elapsed >= opts.TargetMs || elapsed >= opts.MaxMs {
				break
			}
		}
		if endIdx == startIdx || endIdx >= len(words)-1 {
			endIdx = len(words) - 1
		}

		part := words[startIdx : endIdx+1]
		texts := make([]string, 0, len(part))
		for _, w := range part {
			texts = append(texts, w.Text)
		}

		id := len(chunks)
		chunks = append(chunks, Chunk{
			ID:        id,
			Label:     label(id, part[0].StartMs),
			StartMs:   part[0].StartMs,
			EndMs:     part[len(part)-1].EndMs,
			Text:      strings.Join(texts, " "),
			WordCount: len(part),
		})
		startIdx = endIdx + 1
	}
	return chunks
}

func label(id int, startMs int64) string {
	switch {
	case id == 0:
		return "Hook & Opening"
	case startMs < setupWindowMs:
		return "Model/Setup"
	default:
		return fmt.Sprintf("Argument %d", (id-1)/2+1)
	}
}

// FormatForLLM renders chunks in the form the feedback prompt cites by CHUNK id.
func FormatForLLM(chunks []Chunk) string {
	var b strings.Builder
	b.WriteString("# TIMESTAMPED TRANSCRIPT (CHUNKED)\n\n")
	b.WriteString("Below is the debate speech divided into CHUNKS with timestamps.\n")
	b.WriteString("Each chunk represents a semantic section (~25-50 seconds for precise feedback).\n\n")
	b.WriteString("---\n\n")

	for _, c := range chunks {
		fmt.Fprintf(&b, "[CHUNK_%d] [%s - %s] %s\n", c.ID, c.StartTime(), c.EndTime(), c.Label)
		fmt.Fprintf(&b, "\"%s\"\n\n", c.Text)
	}

	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "Total chunks: %d\n", len(chunks))
	b.WriteString("When citing feedback moments, reference CHUNK_ID (e.g., CHUNK_5)\n")
	return b.String()
}

// Find returns the chunk with the given id.
func Find(chunks []Chunk, id int) (Chunk, bool) {
	for _, c := range chunks {
		if c.ID == id {
			return c, true
		}
	}
	return Chunk{}, false
}
