package enrich

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/nguyentantai21042004/debate-flow/internal/chunker"
	"github.com/nguyentantai21042004/debate-flow/internal/speech"
)

const quoteLimit = 200

var validate = validator.New()

// Moment is a feedback point cited by chunk id, as produced by the LLM.
type Moment struct {
	ChunkID        int    `json:"chunk_id" validate:"gte=0"`
	Category       string `json:"category" validate:"required,oneof=gap unclear weak transition excellent"`
	Severity       string `json:"severity" validate:"required,oneof=praise critical"`
	Issue          string `json:"issue" validate:"required"`
	Recommendation string `json:"recommendation"`
}

// PlayableMoment is a Moment placed on both clocks.
// StartSeconds/EndSeconds are absolute (recording); StartTime/EndTime are
// speech-local MM:SS for display next to the speech.
type PlayableMoment struct {
	ChunkID        int    `json:"chunk_id"`
	StartSeconds   int64  `json:"start_seconds"`
	EndSeconds     int64  `json:"end_seconds"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Category       string `json:"category"`
	Severity       string `json:"severity"`
	WhatTheySaid   string `json:"what_they_said"`
	Issue          string `json:"issue"`
	Recommendation string `json:"recommendation"`
}

// Skipped records a moment that could not be placed.
type Skipped struct {
	Moment Moment `json:"moment"`
	Reason string `json:"reason"`
}

type AudioMetadata struct {
	URL             string `json:"url,omitempty"`
	DurationSeconds int64  `json:"duration_seconds"`
}

type ChunksMetadata struct {
	TotalChunks int      `json:"total_chunks"`
	ChunkLabels []string `json:"chunk_labels"`
}

// Enricher re-expresses chunk citations of one speech on the recording clock.
type Enricher struct {
	offset speech.TimestampOffset
}

// New binds an Enricher to the offset of the speech whose chunks it will see.
func New(offset speech.TimestampOffset) *Enricher {
	return &Enricher{offset: offset}
}

// Enrich resolves each moment's chunk and attaches absolute and relative times.
// Moments that fail validation or cite an unknown chunk are returned in skipped.
func (e *Enricher) Enrich(moments []Moment, chunks []chunker.Chunk) ([]PlayableMoment, []Skipped) {
	var out []PlayableMoment
	var skipped []Skipped

	for _, m := range moments {
		if err := validate.Struct(m); err != nil {
			skipped = append(skipped, Skipped{Moment: m, Reason: err.Error()})
			continue
		}
		c, ok := chunker.Find(chunks, m.ChunkID)
		if !ok {
			skipped = append(skipped, Skipped{Moment: m, Reason: fmt.Sprintf("chunk %d not found", m.ChunkID)})
			continue
		}
		pm, err := e.place(m, c)
		if err != nil {
			skipped = append(skipped, Skipped{Moment: m, Reason: err.Error()})
			continue
		}
		out = append(out, pm)
	}
	return out, skipped
}

func (e *Enricher) place(m Moment, c chunker.Chunk) (PlayableMoment, error) {
	absStart, absEnd, err := e.offset.SpanToAbsolute(c.StartMs, c.EndMs)
	if err != nil {
		return PlayableMoment{}, fmt.Errorf("chunk %d: %w", c.ID, err)
	}
	return PlayableMoment{
		ChunkID:        m.ChunkID,
		StartSeconds:   absStart / 1000,
		EndSeconds:     absEnd / 1000,
		StartTime:      c.StartTime(),
		EndTime:        c.EndTime(),
		Category:       m.Category,
		Severity:       m.Severity,
		WhatTheySaid:   Quote(c.Text),
		Issue:          m.Issue,
		Recommendation: m.Recommendation,
	}, nil
}

// Quote trims text to the first 200 characters, marking the cut.
func Quote(text string) string {
	r := []rune(text)
	if len(r) <= quoteLimit {
		return text
	}
	return string(r[:quoteLimit]) + "..."
}

// Audio summarizes the recording a speech was cut from.
func Audio(url string, words []speech.WordInterval) AudioMetadata {
	meta := AudioMetadata{URL: url}
	for _, w := range words {
		if s := w.EndMs / 1000; s > meta.DurationSeconds {
			meta.DurationSeconds = s
		}
	}
	return meta
}

func Chunks(chunks []chunker.Chunk) ChunksMetadata {
	meta := ChunksMetadata{TotalChunks: len(chunks), ChunkLabels: make([]string, 0, len(chunks))}
	for _, c := range chunks {
		meta.ChunkLabels = append(meta.ChunkLabels, fmt.Sprintf("Chunk %d", c.ID))
	}
	return meta
}
