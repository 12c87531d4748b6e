package feedback

import (
	"context"

	"github.com/nguyentantai21042004/debate-flow/internal/chunker"
	"github.com/nguyentantai21042004/debate-flow/internal/enrich"
)

// Generator asks an LLM for feedback on one chunked speech.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// Request describes the speech being judged. Chunks are on the speech-local clock.
type Request struct {
	Motion              string
	Position            string
	ExpectedDurationSec int
	ActualDurationSec   int
	Chunks              []chunker.Chunk
}

type Overview struct {
	HookAndSignposting  string `json:"hook_and_signposting"`
	StrategicAssessment string `json:"strategic_assessment"`
	MissingArguments    string `json:"missing_arguments"`
}

// Result is the decoded LLM answer; moments still cite chunk ids only.
type Result struct {
	StrategicOverview Overview        `json:"strategic_overview"`
	PlayableMoments   []enrich.Moment `json:"playable_moments"`
}
