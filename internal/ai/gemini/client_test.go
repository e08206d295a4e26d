package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"scholarpath-engine/internal/ai"
)

func TestToGenaiRequestSplitsRoles(t *testing.T) {
	contents, cfg, err := toGenaiRequest([]ai.Message{
		{Role: ai.RoleSystem, Content: "You are a study-abroad advisor."},
		{Role: ai.RoleUser, Content: "Where should I study?"},
		{Role: ai.RoleModel, Content: "Tell me your field first."},
		{Role: ai.RoleUser, Content: "Computer science."},
	})
	require.NoError(t, err)

	require.NotNil(t, cfg)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "You are a study-abroad advisor.", cfg.SystemInstruction.Parts[0].Text)

	require.Len(t, contents, 3)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, genai.RoleModel, contents[1].Role)
	assert.Equal(t, genai.RoleUser, contents[2].Role)
}

func TestToGenaiRequestSkipsBlankMessages(t *testing.T) {
	contents, cfg, err := toGenaiRequest([]ai.Message{
		{Role: ai.RoleUser, Content: "   "},
		{Role: ai.RoleUser, Content: "hello"},
	})
	require.NoError(t, err)
	assert.Nil(t, cfg)
	require.Len(t, contents, 1)
}

func TestToGenaiRequestRequiresUserContent(t *testing.T) {
	_, _, err := toGenaiRequest([]ai.Message{
		{Role: ai.RoleSystem, Content: "system only"},
	})
	assert.Error(t, err)
}
