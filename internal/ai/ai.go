package ai

import "context"

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
	RoleModel  Role = "model"
)

// Message is one role-tagged entry in a conversation or prompt.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Usage is the token accounting reported by the provider.
type Usage struct {
	PromptTokens int32 `json:"promptTokens"`
	OutputTokens int32 `json:"outputTokens"`
}

// Generator is the text-generation provider boundary. Implementations take a
// role-tagged message list and return freeform text; callers are expected to
// convert any error into their own degraded outcome.
type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, Usage, error)
}
