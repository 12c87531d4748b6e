package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/debate-flow/internal/feedback"
)

// extractSpeechClip cuts the primary speech out of the full recording so the
// report's absolute timestamps can be played back directly.
func (p *implProcessor) extractSpeechClip(ctx context.Context, audioPath, name string, r *feedback.Report) (string, error) {
	clipsDir := filepath.Join(p.cfg.Paths.Output, "clips")
	if err := os.MkdirAll(clipsDir, 0755); err != nil {
		return "", fmt.Errorf("create clips dir: %w", err)
	}
	clipPath := filepath.Join(clipsDir, fmt.Sprintf("%s_%s%s", name, r.Primary.Speaker, filepath.Ext(audioPath)))

	p.logger.Info(ctx, "Extracting speech clip: %s", clipPath)

	// -ss/-to before -i: seek on the input, times on the recording clock
	args := []string{
		"-y",
		"-ss", msToSeconds(r.OffsetMs),
		"-to", msToSeconds(r.Primary.EndMs),
		"-i", audioPath,
		"-c:a", p.cfg.FFmpeg.AudioCodec,
		clipPath,
	}

	if _, err := p.executor.Execute(ctx, p.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract clip: %w", err)
	}

	p.logger.Info(ctx, "Speech clip extracted: %s", clipPath)
	return clipPath, nil
}

func msToSeconds(ms int64) string {
	return fmt.Sprintf("%d.%03d", ms/1000, ms%1000)
}
