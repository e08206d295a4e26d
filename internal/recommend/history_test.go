package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"scholarpath-engine/internal/ai"
)

func TestHistoryTrimsOldestBeyondLimit(t *testing.T) {
	s := NewHistoryStore(4)
	for i := 0; i < 6; i++ {
		s.Append("u1", ai.Message{Role: ai.RoleUser, Content: fmt.Sprintf("m%d", i)})
	}

	h := s.Get("u1")
	require.Len(t, h, 4)
	assert.Equal(t, "m2", h[0].Content)
	assert.Equal(t, "m5", h[3].Content)
}

func TestHistoryIsolatesUsers(t *testing.T) {
	s := NewHistoryStore(10)
	s.Append("alice", ai.Message{Role: ai.RoleUser, Content: "hi"})

	assert.Len(t, s.Get("alice"), 1)
	assert.Empty(t, s.Get("bob"))

	s.Reset("alice")
	assert.Empty(t, s.Get("alice"))
}

func TestHistoryGetReturnsCopy(t *testing.T) {
	s := NewHistoryStore(10)
	s.Append("u", ai.Message{Role: ai.RoleUser, Content: "original"})

	h := s.Get("u")
	h[0].Content = "mutated"

	assert.Equal(t, "original", s.Get("u")[0].Content)
}

func TestAdvisorFallsBackOnProviderError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("unavailable")}
	a := NewAdvisor(stub, NewHistoryStore(10), zap.NewNop())

	reply := a.Chat(context.Background(), "u1", "which country is cheapest?")
	assert.Equal(t, FallbackReply, reply)

	// Failed turns are not recorded.
	assert.Empty(t, a.history.Get("u1"))
}

func TestAdvisorRecordsSuccessfulTurns(t *testing.T) {
	stub := &stubGenerator{response: "Consider Germany: most public universities charge no tuition."}
	a := NewAdvisor(stub, NewHistoryStore(10), zap.NewNop())

	reply := a.Chat(context.Background(), "u1", "which country is cheapest?")
	assert.Contains(t, reply, "Germany")

	h := a.history.Get("u1")
	require.Len(t, h, 2)
	assert.Equal(t, ai.RoleUser, h[0].Role)
	assert.Equal(t, ai.RoleModel, h[1].Role)
}
