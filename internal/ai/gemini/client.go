package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"scholarpath-engine/internal/ai"
)

const defaultModel = "gemini-2.5-flash"

// Generator wraps the Google GenAI client behind the ai.Generator boundary.
// A shared limiter throttles outbound calls so a burst of advisory requests
// cannot exhaust the API quota.
type Generator struct {
	client    *genai.Client
	modelName string
	limiter   *rate.Limiter
}

// NewGenerator creates a Generator for the Gemini API backend. requestsPerMin
// of zero disables throttling.
func NewGenerator(ctx context.Context, apiKey, model string, requestsPerMin float64) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	var limiter *rate.Limiter
	if requestsPerMin > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerMin/60), 1)
	}

	return &Generator{client: client, modelName: model, limiter: limiter}, nil
}

// Generate sends the role-tagged messages to Gemini and returns the combined
// textual response. System messages become the system instruction; user and
// model messages map onto conversation turns.
func (g *Generator) Generate(ctx context.Context, messages []ai.Message) (string, ai.Usage, error) {
	if g == nil || g.client == nil {
		return "", ai.Usage{}, errors.New("gemini generator is not initialized")
	}

	contents, cfg, err := toGenaiRequest(messages)
	if err != nil {
		return "", ai.Usage{}, err
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", ai.Usage{}, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", ai.Usage{}, fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", ai.Usage{}, errors.New("gemini api returned empty response")
	}

	var usage ai.Usage
	if resp.UsageMetadata != nil {
		usage.PromptTokens = resp.UsageMetadata.PromptTokenCount
		usage.OutputTokens = resp.UsageMetadata.CandidatesTokenCount
	}

	return output, usage, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func toGenaiRequest(messages []ai.Message) ([]*genai.Content, *genai.GenerateContentConfig, error) {
	var contents []*genai.Content
	var cfg *genai.GenerateContentConfig

	for _, m := range messages {
		text := strings.TrimSpace(m.Content)
		if text == "" {
			continue
		}
		switch m.Role {
		case ai.RoleSystem:
			if cfg == nil {
				cfg = &genai.GenerateContentConfig{}
			}
			cfg.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: text}},
			}
		case ai.RoleModel:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: text}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: text}},
			})
		}
	}

	if len(contents) == 0 {
		return nil, nil, errors.New("prompt must contain at least one user message")
	}
	return contents, cfg, nil
}
