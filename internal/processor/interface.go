package processor

import "context"

// Processor turns one diarized transcript file into a feedback report
type Processor interface {
	Process(ctx context.Context, transcriptPath string) error
}
