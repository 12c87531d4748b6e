package feedback

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/debate-flow/internal/chunker"
	"github.com/nguyentantai21042004/debate-flow/internal/speech"
)

const feedbackPrompt = `You are an experienced British Parliamentary debate adjudicator giving feedback to a student.

Motion: %s
Motion type: %s
Position: %s
Expected speech length: %s
Actual speech length: %s

Read the chunked speech below and respond with JSON only, in this shape:
{
  "strategic_overview": {
    "hook_and_signposting": "...",
    "strategic_assessment": "...",
    "missing_arguments": "..."
  },
  "playable_moments": [
    {"chunk_id": 0, "category": "gap|unclear|weak|transition|excellent", "severity": "praise|critical", "issue": "...", "recommendation": "..."}
  ]
}

Cite every moment by the CHUNK id it happens in. Pick 4 to 8 moments, mixing praise and critical points.

%s`

// MotionType classifies a motion by its opening words.
func MotionType(motion string) string {
	lower := strings.ToLower(motion)
	switch {
	case strings.Contains(lower, "this house would"):
		return "policy"
	case strings.Contains(lower, "this house prefers"):
		return "comparison"
	default:
		return "principle"
	}
}

func buildPrompt(req Request) string {
	return fmt.Sprintf(feedbackPrompt,
		req.Motion,
		MotionType(req.Motion),
		req.Position,
		speech.FormatClock(int64(req.ExpectedDurationSec)*1000),
		speech.FormatClock(int64(req.ActualDurationSec)*1000),
		chunker.FormatForLLM(req.Chunks),
	)
}

// stripFences removes a markdown code fence the model sometimes wraps JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
