package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Generate sends the chunked speech to Gemini and decodes the feedback.
func (g *implGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	if len(req.Chunks) == 0 {
		return nil, fmt.Errorf("no chunks to judge")
	}

	text, err := g.callGemini(ctx, buildPrompt(req))
	if err != nil {
		return nil, err
	}

	var res Result
	if err := json.Unmarshal([]byte(stripFences(text)), &res); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}
	g.logger.Info(ctx, "Gemini returned %d playable moments", len(res.PlayableMoments))
	return &res, nil
}

// callGemini returns the model's text answer.
// Rotates API keys on 429 / quota errors.
func (g *implGenerator) callGemini(ctx context.Context, prompt string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("no Gemini API keys configured")
	}

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		idx, key := g.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      genai.Ptr[float32](0.3),
		})
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGenerator) key() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

func (g *implGenerator) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}
