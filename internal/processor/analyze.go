package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/debate-flow/internal/chunker"
	"github.com/nguyentantai21042004/debate-flow/internal/enrich"
	"github.com/nguyentantai21042004/debate-flow/internal/feedback"
	"github.com/nguyentantai21042004/debate-flow/internal/transcript"
)

// analyze runs detection, chunking and (optionally) LLM feedback for one transcript.
// Detection errors are returned as is; a failed LLM call only drops the feedback.
func (p *implProcessor) analyze(ctx context.Context, f *transcript.File) (*feedback.Report, error) {
	words := f.Intervals()

	det, err := p.detector.Detect(words)
	if err != nil {
		return nil, err
	}
	primary := det.Primary
	p.logger.Info(ctx, "Primary speaker %s: %d block(s), %dms-%dms, %.0fs speaking",
		primary.Speaker, len(primary.Blocks), primary.StartMs, primary.EndMs, primary.DurationSec())

	offset, err := primary.Offset(words)
	if err != nil {
		return nil, fmt.Errorf("speech offset: %w", err)
	}

	local := offset.Normalize(words)
	chunks := chunker.Split(local, chunker.Options{
		TargetMs: p.cfg.Chunking.TargetMs,
		MaxMs:    p.cfg.Chunking.MaxMs,
	})
	p.logger.Debug(ctx, "Offset %dms, %d words, %d chunks", offset.OffsetMs(), len(local), len(chunks))

	report := &feedback.Report{
		TranscriptID:   f.TranscriptID,
		GeneratedAt:    time.Now(),
		Motion:         f.Motion,
		Position:       f.Position,
		Primary:        primary,
		DurationSec:    primary.DurationSec(),
		OffsetMs:       offset.OffsetMs(),
		Blocks:         det.Blocks,
		Chunks:         chunks,
		AudioMetadata:  enrich.Audio(f.AudioURL, words),
		ChunksMetadata: enrich.Chunks(chunks),
	}

	if p.generator == nil {
		return report, nil
	}

	res, err := p.generator.Generate(ctx, feedback.Request{
		Motion:              f.Motion,
		Position:            f.Position,
		ExpectedDurationSec: f.ExpectedDuration,
		ActualDurationSec:   int(primary.DurationSec()),
		Chunks:              chunks,
	})
	if err != nil {
		p.logger.Warn(ctx, "Feedback generation failed, writing report without it: %v", err)
		return report, nil
	}

	moments, skipped := enrich.New(offset).Enrich(res.PlayableMoments, chunks)
	for _, s := range skipped {
		p.logger.Warn(ctx, "Skipping moment on chunk %d: %s", s.Moment.ChunkID, s.Reason)
	}
	report.Overview = &res.StrategicOverview
	report.Moments = moments
	report.Skipped = skipped
	return report, nil
}
