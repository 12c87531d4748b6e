package speech

import (
	"fmt"
	"sort"
)

// BuildBlocks merges one speaker's words into contiguous speech blocks.
// Words must already be sorted by StartMs; unsorted input fails with an
// *OrderingError rather than being re-sorted. Two words are joined when the
// silence between them is strictly shorter than gapToleranceMs.
// A non-positive tolerance falls back to DefaultGapToleranceMs.
func BuildBlocks(words []WordInterval, gapToleranceMs int64) ([]SpeechBlock, error) {
	if len(words) == 0 {
		return nil, nil
	}
	if gapToleranceMs <= 0 {
		gapToleranceMs = DefaultGapToleranceMs
	}

	speaker := words[0].Speaker
	current := SpeechBlock{Speaker: speaker, StartMs: words[0].StartMs, EndMs: words[0].EndMs}
	var blocks []SpeechBlock

	for i := 1; i < len(words); i++ {
		w := words[i]
		if w.Speaker != speaker {
			return nil, fmt.Errorf("word %d has speaker %q, block has %q: %w", i, w.Speaker, speaker, ErrMixedSpeakers)
		}
		if w.StartMs < words[i-1].StartMs {
			return nil, &OrderingError{Speaker: speaker, Index: i, PrevStartMs: words[i-1].StartMs, StartMs: w.StartMs}
		}

		gap := w.StartMs - current.EndMs
		if gap < gapToleranceMs {
			current.EndMs = w.EndMs
			continue
		}
		blocks = append(blocks, current)
		current = SpeechBlock{Speaker: speaker, StartMs: w.StartMs, EndMs: w.EndMs}
	}

	return append(blocks, current), nil
}

// GroupBySpeaker splits a recording-wide word stream into per-speaker streams
// ordered by start time. Words without a speaker label are dropped.
func GroupBySpeaker(words []WordInterval) (map[string][]WordInterval, error) {
	if len(words) == 0 {
		return nil, ErrEmptyInput
	}

	out := make(map[string][]WordInterval)
	for _, w := range words {
		if w.Speaker == "" {
			continue
		}
		out[w.Speaker] = append(out[w.Speaker], w)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%d words carry no speaker label: %w", len(words), ErrEmptyInput)
	}

	for _, ws := range out {
		sort.SliceStable(ws, func(i, j int) bool {
			if ws[i].StartMs != ws[j].StartMs {
				return ws[i].StartMs < ws[j].StartMs
			}
			return ws[i].WordIndex < ws[j].WordIndex
		})
	}
	return out, nil
}

// BuildSpeakerBlocks runs BuildBlocks for every speaker and returns all blocks,
// grouped by speaker label in sorted label order.
// A speaker listed with no words is an input defect and yields ErrEmptyInput.
func BuildSpeakerBlocks(bySpeaker map[string][]WordInterval, gapToleranceMs int64) ([]SpeechBlock, error) {
	if len(bySpeaker) == 0 {
		return nil, ErrEmptyInput
	}

	speakers := make([]string, 0, len(bySpeaker))
	for s := range bySpeaker {
		speakers = append(speakers, s)
	}
	sort.Strings(speakers)

	var all []SpeechBlock
	for _, s := range speakers {
		words := bySpeaker[s]
		if len(words) == 0 {
			return nil, fmt.Errorf("speaker %s: %w", s, ErrEmptyInput)
		}
		blocks, err := BuildBlocks(words, gapToleranceMs)
		if err != nil {
			return nil, fmt.Errorf("speaker %s: %w", s, err)
		}
		all = append(all, blocks...)
	}
	return all, nil
}
