package recommend

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"scholarpath-engine/internal/ai"
)

const advisorSystemPrompt = `You are a friendly study-abroad advisor. Help students compare programs, scholarships,
visa basics and application timelines. Keep answers short and concrete. If asked about something
outside studying abroad, steer the conversation back.`

// FallbackReply is the canned guidance returned when the provider is down or
// unconfigured, so the chat widget never surfaces an error.
const FallbackReply = "I can't reach the advisory service right now. In the meantime: browse programs with the " +
	"search filters, and try the scholarship calculator to estimate your eligibility. Please ask me again in a bit."

// Advisor runs the provider-backed chat, carrying per-user context between
// turns through a HistoryStore.
type Advisor struct {
	gen     ai.Generator
	history *HistoryStore
	logger  *zap.Logger
}

func NewAdvisor(gen ai.Generator, history *HistoryStore, logger *zap.Logger) *Advisor {
	return &Advisor{gen: gen, history: history, logger: logger}
}

// Chat answers one user turn. Provider failure degrades to FallbackReply and
// the failed turn is not recorded, so a retry starts from clean history.
func (a *Advisor) Chat(ctx context.Context, userID, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return FallbackReply
	}
	if a.gen == nil {
		return FallbackReply
	}

	msgs := []ai.Message{{Role: ai.RoleSystem, Content: advisorSystemPrompt}}
	msgs = append(msgs, a.history.Get(userID)...)
	msgs = append(msgs, ai.Message{Role: ai.RoleUser, Content: message})

	reply, usage, err := a.gen.Generate(ctx, msgs)
	if err != nil {
		a.logger.Warn("chat provider call failed", zap.String("user_id", userID), zap.Error(err))
		return FallbackReply
	}

	a.logger.Debug("chat turn",
		zap.String("user_id", userID),
		zap.Int32("prompt_tokens", usage.PromptTokens),
		zap.Int32("output_tokens", usage.OutputTokens),
	)

	a.history.Append(userID,
		ai.Message{Role: ai.RoleUser, Content: message},
		ai.Message{Role: ai.RoleModel, Content: reply},
	)
	return reply
}

// ResetConversation clears a user's chat context.
func (a *Advisor) ResetConversation(userID string) {
	a.history.Reset(userID)
}
