package processor

import (
	"github.com/nguyentantai21042004/debate-flow/internal/config"
	"github.com/nguyentantai21042004/debate-flow/internal/feedback"
	"github.com/nguyentantai21042004/debate-flow/internal/logger"
	"github.com/nguyentantai21042004/debate-flow/internal/speech"
	"github.com/nguyentantai21042004/debate-flow/pkg/executor"
)

type implProcessor struct {
	cfg       *config.Config
	executor  executor.Executor
	logger    logger.Logger
	detector  *speech.Detector
	generator feedback.Generator
}

// New creates a new Processor instance.
// gen may be nil, in which case reports carry chunks but no LLM feedback.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger, gen feedback.Generator) Processor {
	return &implProcessor{
		cfg:      cfg,
		executor: exec,
		logger:   log,
		detector: speech.NewDetector(speech.Options{
			GapToleranceMs:          cfg.Segmentation.GapToleranceMs,
			SubstantiveThresholdSec: cfg.Segmentation.SubstantiveThresholdSec,
		}),
		generator: gen,
	}
}
