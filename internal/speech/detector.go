package speech

import "fmt"

// Options carries the two tuning constants of speech detection.
type Options struct {
	GapToleranceMs          int64
	SubstantiveThresholdSec int
}

// DefaultOptions returns the calibration used for parliamentary debate recordings.
func DefaultOptions() Options {
	return Options{
		GapToleranceMs:          DefaultGapToleranceMs,
		SubstantiveThresholdSec: DefaultSubstantiveThresholdSec,
	}
}

func (o Options) thresholdMs() int64 {
	if o.SubstantiveThresholdSec <= 0 {
		return int64(DefaultSubstantiveThresholdSec) * 1000
	}
	return int64(o.SubstantiveThresholdSec) * 1000
}

// Detection is the full result of running both stages over a recording.
type Detection struct {
	Blocks      []SpeechBlock `json:"blocks"`
	Substantive []SpeechBlock `json:"substantive"`
	Primary     PrimarySpeech `json:"primary"`
}

// Detector runs block building and primary-speaker resolution with fixed options.
// It holds no mutable state and is safe for concurrent use.
type Detector struct {
	opts Options
}

func NewDetector(opts Options) *Detector {
	if opts.GapToleranceMs <= 0 {
		opts.GapToleranceMs = DefaultGapToleranceMs
	}
	if opts.SubstantiveThresholdSec <= 0 {
		opts.SubstantiveThresholdSec = DefaultSubstantiveThresholdSec
	}
	return &Detector{opts: opts}
}

func (d *Detector) Options() Options {
	return d.opts
}

// Detect groups a recording's words by speaker, builds blocks and resolves the primary speech.
func (d *Detector) Detect(words []WordInterval) (Detection, error) {
	bySpeaker, err := GroupBySpeaker(words)
	if err != nil {
		return Detection{}, fmt.Errorf("group words: %w", err)
	}

	blocks, err := BuildSpeakerBlocks(bySpeaker, d.opts.GapToleranceMs)
	if err != nil {
		return Detection{}, fmt.Errorf("build blocks: %w", err)
	}

	primary, err := ResolvePrimary(blocks, d.opts.thresholdMs())
	if err != nil {
		return Detection{Blocks: blocks}, fmt.Errorf("resolve primary speaker: %w", err)
	}

	return Detection{
		Blocks:      blocks,
		Substantive: Substantive(blocks, d.opts.thresholdMs()),
		Primary:     primary,
	}, nil
}
