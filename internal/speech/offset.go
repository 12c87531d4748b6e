package speech

import (
	"fmt"
	"sort"
)

// TimestampOffset converts between a speech's local clock (0 at its first
// word) and the recording clock. It is bound to the speech it was built from;
// annotations of that speech must all go through the same value.
type TimestampOffset struct {
	speech   PrimarySpeech
	offsetMs int64
}

// NewTimestampOffset fixes the offset at firstWord's start. The word must
// belong to ps.
func NewTimestampOffset(ps PrimarySpeech, firstWord WordInterval) (TimestampOffset, error) {
	if !ps.Contains(firstWord) {
		return TimestampOffset{}, fmt.Errorf("word %d (%s %dms-%dms) outside speech %s %dms-%dms: %w",
			firstWord.WordIndex, firstWord.Speaker, firstWord.StartMs, firstWord.EndMs,
			ps.Speaker, ps.StartMs, ps.EndMs, ErrForeignWord)
	}
	return TimestampOffset{speech: ps, offsetMs: firstWord.StartMs}, nil
}

// Offset builds the speech's TimestampOffset from the earliest of its words in words.
func (p PrimarySpeech) Offset(words []WordInterval) (TimestampOffset, error) {
	own := WordsInSpeech(words, p)
	if len(own) == 0 {
		return TimestampOffset{}, fmt.Errorf("speech %s %dms-%dms: %w", p.Speaker, p.StartMs, p.EndMs, ErrEmptyInput)
	}
	return NewTimestampOffset(p, own[0])
}

func (o TimestampOffset) OffsetMs() int64 {
	return o.offsetMs
}

// Speech returns the speech this offset was derived from.
func (o TimestampOffset) Speech() PrimarySpeech {
	return o.speech
}

func (o TimestampOffset) bound() bool {
	return o.speech.Speaker != ""
}

// ToAbsolute maps a speech-local time onto the recording clock.
func (o TimestampOffset) ToAbsolute(relativeMs int64) (int64, error) {
	if !o.bound() {
		return 0, ErrUnboundOffset
	}
	if relativeMs < 0 {
		return 0, fmt.Errorf("relative %dms: %w", relativeMs, ErrNegativeTimestamp)
	}
	return relativeMs + o.offsetMs, nil
}

// ToRelative maps a recording time onto the speech-local clock.
func (o TimestampOffset) ToRelative(absoluteMs int64) (int64, error) {
	if !o.bound() {
		return 0, ErrUnboundOffset
	}
	rel := absoluteMs - o.offsetMs
	if rel < 0 {
		return 0, fmt.Errorf("absolute %dms before offset %dms: %w", absoluteMs, o.offsetMs, ErrNegativeTimestamp)
	}
	return rel, nil
}

// SpanToAbsolute converts a speech-local [start, end) span.
func (o TimestampOffset) SpanToAbsolute(startMs, endMs int64) (int64, int64, error) {
	absStart, err := o.ToAbsolute(startMs)
	if err != nil {
		return 0, 0, err
	}
	absEnd, err := o.ToAbsolute(endMs)
	if err != nil {
		return 0, 0, err
	}
	return absStart, absEnd, nil
}

// Normalize returns copies of the speech's own words rebased onto the local clock.
// Words from other speakers or outside the speech span are dropped.
func (o TimestampOffset) Normalize(words []WordInterval) []WordInterval {
	own := WordsInSpeech(words, o.speech)
	out := make([]WordInterval, 0, len(own))
	for _, w := range own {
		if w.StartMs < o.offsetMs {
			continue
		}
		w.StartMs -= o.offsetMs
		w.EndMs -= o.offsetMs
		out = append(out, w)
	}
	return out
}

// WordsInSpeech selects ps's words that lie fully inside its span, sorted by start time.
func WordsInSpeech(words []WordInterval, ps PrimarySpeech) []WordInterval {
	var out []WordInterval
	for _, w := range words {
		if ps.Contains(w) {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartMs != out[j].StartMs {
			return out[i].StartMs < out[j].StartMs
		}
		return out[i].WordIndex < out[j].WordIndex
	})
	return out
}
