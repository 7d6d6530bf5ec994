package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receiptbot/bill-splitter/internal/common"
)

func TestNewCompleter(t *testing.T) {
	c, err := NewCompleter(common.LLMConfig{Provider: "openai"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	c, err = NewCompleter(common.LLMConfig{Provider: "deepseek", BaseURL: "https://api.deepseek.com/v1"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	c, err = NewCompleter(common.LLMConfig{Provider: "gemini"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &GeminiClient{}, c)

	c, err = NewCompleter(common.LLMConfig{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	_, err = NewCompleter(common.LLMConfig{Provider: "llama"}, nil)
	require.Error(t, err)
}
