package speech

import "fmt"

const (
	// DefaultGapToleranceMs is the largest silence a single speech absorbs.
	DefaultGapToleranceMs int64 = 60000
	// DefaultSubstantiveThresholdSec separates real speeches from interjections.
	DefaultSubstantiveThresholdSec = 240
)

// WordInterval is one diarized token on the recording clock.
// EndMs is exclusive.
type WordInterval struct {
	Speaker    string  `json:"speaker"`
	StartMs    int64   `json:"start_ms"`
	EndMs      int64   `json:"end_ms"`
	Text       string  `json:"text,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	WordIndex  int     `json:"word_index"`
}

// SpeechBlock is a maximal run of one speaker's words with every gap below the tolerance.
type SpeechBlock struct {
	Speaker string `json:"speaker"`
	StartMs int64  `json:"start_ms"`
	EndMs   int64  `json:"end_ms"`
}

// DurationMs includes any gap time absorbed by the block.
func (b SpeechBlock) DurationMs() int64 {
	return b.EndMs - b.StartMs
}

func (b SpeechBlock) DurationSec() float64 {
	return float64(b.DurationMs()) / 1000
}

func (b SpeechBlock) String() string {
	return fmt.Sprintf("%s [%dms-%dms] %s", b.Speaker, b.StartMs, b.EndMs, FormatClock(b.DurationMs()))
}

// PrimarySpeech is the opening speaker's turn, possibly merged from several blocks.
// DurationMs is the sum of the merged blocks, so interjections and pauses
// between blocks do not count.
type PrimarySpeech struct {
	Speaker    string        `json:"speaker"`
	StartMs    int64         `json:"start_ms"`
	EndMs      int64         `json:"end_ms"`
	DurationMs int64         `json:"duration_ms"`
	Blocks     []SpeechBlock `json:"blocks,omitempty"`
}

func (p PrimarySpeech) DurationSec() float64 {
	return float64(p.DurationMs) / 1000
}

// Contains reports whether w is one of this speech's words.
func (p PrimarySpeech) Contains(w WordInterval) bool {
	return w.Speaker == p.Speaker && w.StartMs >= p.StartMs && w.EndMs <= p.EndMs
}

// FormatClock renders a millisecond count as MM:SS, truncating sub-second parts.
func FormatClock(ms int64) string {
	if ms < 0 {
		return "-" + FormatClock(-ms)
	}
	total := ms / 1000
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
