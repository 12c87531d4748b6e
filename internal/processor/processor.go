package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/debate-flow/internal/logger"
	"github.com/nguyentantai21042004/debate-flow/internal/transcript"
)

// Process orchestrates the whole pipeline for one transcript file
func (p *implProcessor) Process(ctx context.Context, transcriptPath string) error {
	startTime := time.Now()
	name := strings.TrimSuffix(filepath.Base(transcriptPath), filepath.Ext(transcriptPath))
	runID := uuid.NewString()
	ctx = logger.WithFields(ctx, map[string]interface{}{"run_id": runID, "transcript": name})

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting transcript processing: %s", transcriptPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Claim the file
	workPath, err := p.moveToProcessing(ctx, transcriptPath)
	if err != nil {
		return fmt.Errorf("claim transcript: %w", err)
	}

	// Step 2: Load words
	f, err := transcript.LoadFile(workPath)
	if err != nil {
		return fmt.Errorf("load transcript: %w", err)
	}

	// Step 3: Detect the primary speech, chunk it, ask for feedback
	report, err := p.analyze(ctx, f)
	if err != nil {
		p.logger.Error(ctx, "Transcript left in %s for review", workPath)
		return fmt.Errorf("analyze: %w", err)
	}
	report.RunID = runID
	report.Source = filepath.Base(transcriptPath)

	// Step 4: Write report files
	jsonPath, err := p.writeReport(ctx, name, report)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	// Step 5: Cut the speech out of the recording
	if p.cfg.FFmpeg.ClipAudio && f.AudioPath != "" {
		if _, err := p.extractSpeechClip(ctx, f.AudioPath, name, report); err != nil {
			p.logger.Warn(ctx, "Failed to extract speech clip: %v", err)
		}
	}

	// Step 6: Archive the transcript
	if err := p.moveToArchived(ctx, workPath); err != nil {
		p.logger.Warn(ctx, "Failed to move transcript to archived folder: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Primary speaker: %s (%dms-%dms, %.0fs)",
		report.Primary.Speaker, report.Primary.StartMs, report.Primary.EndMs, report.DurationSec)
	p.logger.Info(ctx, "Report: %s", jsonPath)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return nil
}
