package speech

import (
	"fmt"
	"sort"
)

// Substantive returns the blocks lasting strictly longer than thresholdMs,
// sorted by start time with ties broken by speaker label.
func Substantive(blocks []SpeechBlock, thresholdMs int64) []SpeechBlock {
	var out []SpeechBlock
	for _, b := range blocks {
		if b.DurationMs() > thresholdMs {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartMs != out[j].StartMs {
			return out[i].StartMs < out[j].StartMs
		}
		return out[i].Speaker < out[j].Speaker
	})
	return out
}

// ResolvePrimary finds the opening speaker's speech among all speakers' blocks.
//
// The first substantive block names the primary speaker. Later substantive
// blocks of that speaker are merged until any other speaker's substantive
// block begins; shorter interjections (points of information) were filtered
// out and do not end the merge.
func ResolvePrimary(blocks []SpeechBlock, thresholdMs int64) (PrimarySpeech, error) {
	substantive := Substantive(blocks, thresholdMs)
	if len(substantive) == 0 {
		var longest int64
		for _, b := range blocks {
			if d := b.DurationMs(); d > longest {
				longest = d
			}
		}
		return PrimarySpeech{}, fmt.Errorf("%d blocks, longest %s, threshold %s: %w",
			len(blocks), FormatClock(longest), FormatClock(thresholdMs), ErrNoSubstantiveSpeech)
	}

	first := substantive[0]
	merged := []SpeechBlock{first}
	for _, b := range substantive[1:] {
		if b.Speaker != first.Speaker {
			break
		}
		merged = append(merged, b)
	}

	ps := PrimarySpeech{
		Speaker: first.Speaker,
		StartMs: first.StartMs,
		EndMs:   merged[len(merged)-1].EndMs,
		Blocks:  merged,
	}
	for _, b := range merged {
		ps.DurationMs += b.DurationMs()
	}
	return ps, nil
}
