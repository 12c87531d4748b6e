package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/debate-flow/internal/feedback"
)

// writeReport stores the JSON report and, when there is feedback, a .docx rendering.
func (p *implProcessor) writeReport(ctx context.Context, name string, r *feedback.Report) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	jsonPath := filepath.Join(p.cfg.Paths.Output, name+".feedback.json")
	if err := writeJSON(jsonPath, r); err != nil {
		return "", err
	}
	p.logger.Info(ctx, "Report written: %s", jsonPath)

	if len(r.Moments) == 0 && r.Overview == nil {
		return jsonPath, nil
	}

	docxPath := filepath.Join(p.cfg.Paths.Output, name+".feedback.docx")
	title := fmt.Sprintf("%s Feedback - %s", r.Position, name)
	if err := feedback.WriteDocx(title, r, docxPath); err != nil {
		p.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
	} else {
		p.logger.Info(ctx, "Feedback document written: %s", docxPath)
	}
	return jsonPath, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
