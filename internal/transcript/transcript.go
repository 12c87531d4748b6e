package transcript

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/debate-flow/internal/speech"
)

// Word is one token of an AssemblyAI-style result. Times are milliseconds.
type Word struct {
	Text       string  `json:"text"`
	Start      int64   `json:"start"`
	End        int64   `json:"end"`
	Confidence float64 `json:"confidence"`
	Speaker    string  `json:"speaker"`
}

// File is a diarized transcript plus the debate details needed for feedback.
type File struct {
	TranscriptID     int64   `json:"transcript_id"`
	Text             string  `json:"text"`
	AudioDuration    float64 `json:"audio_duration"`
	Words            []Word  `json:"words"`
	Motion           string  `json:"motion"`
	Position         string  `json:"position"`
	ExpectedDuration int     `json:"expected_duration"`
	AudioURL         string  `json:"audio_url"`
	AudioPath        string  `json:"audio_path"`
}

// LoadFile reads and decodes a transcript JSON file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript %s: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode transcript %s: %w", path, err)
	}
	if f.Position == "" {
		f.Position = "PM"
	}
	return &f, nil
}

// Intervals converts the words to the recording-clock form, in file order.
func (f *File) Intervals() []speech.WordInterval {
	out := make([]speech.WordInterval, 0, len(f.Words))
	for i, w := range f.Words {
		out = append(out, speech.WordInterval{
			Speaker:    w.Speaker,
			StartMs:    w.Start,
			EndMs:      w.End,
			Text:       w.Text,
			Confidence: w.Confidence,
			WordIndex:  i,
		})
	}
	return out
}
