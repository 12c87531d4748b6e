package feedback

import (
	"time"

	"github.com/nguyentantai21042004/debate-flow/internal/chunker"
	"github.com/nguyentantai21042004/debate-flow/internal/enrich"
	"github.com/nguyentantai21042004/debate-flow/internal/speech"
)

// Report is everything produced for one transcript.
type Report struct {
	RunID        string    `json:"run_id"`
	Source       string    `json:"source"`
	TranscriptID int64     `json:"transcript_id,omitempty"`
	GeneratedAt  time.Time `json:"generated_at"`
	Motion       string    `json:"motion,omitempty"`
	Position     string    `json:"position"`

	Primary     speech.PrimarySpeech `json:"primary_speech"`
	DurationSec float64              `json:"duration_sec"`
	OffsetMs    int64                `json:"offset_ms"`
	Blocks      []speech.SpeechBlock `json:"blocks"`

	Chunks         []chunker.Chunk         `json:"chunks"`
	Overview       *Overview               `json:"strategic_overview,omitempty"`
	Moments        []enrich.PlayableMoment `json:"playable_moments,omitempty"`
	Skipped        []enrich.Skipped        `json:"skipped_moments,omitempty"`
	AudioMetadata  enrich.AudioMetadata    `json:"audio_metadata"`
	ChunksMetadata enrich.ChunksMetadata   `json:"chunks_metadata"`
}
