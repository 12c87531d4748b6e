package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// moveToProcessing moves a transcript from input to the processing folder
func (p *implProcessor) moveToProcessing(ctx context.Context, path string) (string, error) {
	return p.move(ctx, path, p.cfg.Paths.Processing)
}

// moveToArchived moves a finished transcript to the archived folder
func (p *implProcessor) moveToArchived(ctx context.Context, path string) error {
	_, err := p.move(ctx, path, p.cfg.Paths.Archived)
	return err
}

func (p *implProcessor) move(ctx context.Context, path, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	destPath := filepath.Join(dir, filepath.Base(path))
	if filepath.Clean(path) == filepath.Clean(destPath) {
		return destPath, nil
	}

	p.logger.Info(ctx, "Moving %s -> %s", path, destPath)

	if err := os.Rename(path, destPath); err != nil {
		return "", fmt.Errorf("move %s: %w", path, err)
	}
	return destPath, nil
}
