package speech

import (
	"errors"
	"testing"
)

func TestDetectorDetect(t *testing.T) {
	var words []WordInterval
	words = append(words, span("A", 0, 250000, 10000)...)
	words = append(words, span("B", 260000, 290000, 1000)...)
	words = append(words, span("A", 310000, 620000, 10000)...)

	det := NewDetector(DefaultOptions())
	got, err := det.Detect(words)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if len(got.Blocks) != 3 {
		t.Errorf("len(Blocks) = %d, want 3", len(got.Blocks))
	}
	if len(got.Substantive) != 2 {
		t.Errorf("len(Substantive) = %d, want 2", len(got.Substantive))
	}

	p := got.Primary
	if p.Speaker != "A" || p.StartMs != 0 || p.EndMs != 620000 {
		t.Errorf("Primary = %+v, want A 0-620000", p)
	}
	if p.DurationSec() != 560 {
		t.Errorf("Primary.DurationSec() = %v, want 560", p.DurationSec())
	}
}

func TestDetectorDetectErrors(t *testing.T) {
	tests := []struct {
		name    string
		words   []WordInterval
		wantErr error
	}{
		{"empty transcript", nil, ErrEmptyInput},
		{"short debate", span("A", 0, 200000, 5000), ErrNoSubstantiveSpeech},
	}

	det := NewDetector(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := det.Detect(tt.words)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Detect() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewDetectorDefaults(t *testing.T) {
	det := NewDetector(Options{GapToleranceMs: -1})
	opts := det.Options()
	if opts.GapToleranceMs != DefaultGapToleranceMs {
		t.Errorf("GapToleranceMs = %d, want %d", opts.GapToleranceMs, DefaultGapToleranceMs)
	}
	if opts.SubstantiveThresholdSec != DefaultSubstantiveThresholdSec {
		t.Errorf("SubstantiveThresholdSec = %d, want %d", opts.SubstantiveThresholdSec, DefaultSubstantiveThresholdSec)
	}
}
