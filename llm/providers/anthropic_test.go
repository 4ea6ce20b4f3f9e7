package providers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/traitmatrix/llm"
)

func TestAnthropicProvider_BuildRequestBody(t *testing.T) {
	p := &AnthropicProvider{}

	temp := 0.2
	body, err := p.BuildRequestBody("claude-sonnet-4-5", []llm.Message{
		{Role: "system", Content: "You are a botanist's assistant."},
		{Role: "user", Content: "Transcribe this."},
		{Role: "assistant", Content: "[]"},
		{Role: "user", Content: "Try again."},
	}, llm.Params{Temperature: &temp})
	require.NoError(t, err)

	var req map[string]any
	require.NoError(t, json.Unmarshal(body, &req))

	// System prompt is hoisted to the top-level field.
	assert.Equal(t, "You are a botanist's assistant.", req["system"])
	assert.Len(t, req["messages"].([]any), 3)
	// max_tokens is mandatory and defaulted.
	assert.Equal(t, float64(anthropicDefaultMaxTokens), req["max_tokens"])
	assert.Equal(t, 0.2, req["temperature"])
}

func TestAnthropicProvider_ParseResponse(t *testing.T) {
	p := &AnthropicProvider{}

	body := `{
		"id": "msg_1",
		"type": "message",
		"role": "assistant",
		"content": [{"type": "text", "text": "[{\"characteristic\": \"habit\", \"value\": \"tree\"}]"}],
		"model": "claude-sonnet-4-5",
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 50, "output_tokens": 25}
	}`

	resp, err := p.ParseResponse([]byte(body), "claude-sonnet-4-5")
	require.NoError(t, err)
	assert.Contains(t, resp.Content, "habit")
	assert.Equal(t, 75, resp.Usage.TotalTokens)
	assert.Equal(t, "end_turn", resp.FinishReason)
}

func TestOpenAIProvider_BuildURLAndBody(t *testing.T) {
	p := &OpenAIProvider{}

	assert.Equal(t, "https://api.openai.com/v1/chat/completions", p.BuildURL(""))
	assert.Equal(t, "http://vllm:8000/v1/chat/completions", p.BuildURL("http://vllm:8000/v1"))

	seed := 7
	body, err := p.BuildRequestBody("gpt-4o-mini", []llm.Message{
		{Role: "user", Content: "hi"},
	}, llm.Params{Seed: &seed, MaxTokens: 256})
	require.NoError(t, err)

	var req map[string]any
	require.NoError(t, json.Unmarshal(body, &req))
	assert.Equal(t, float64(7), req["seed"])
	assert.Equal(t, float64(256), req["max_tokens"])
	// Ollama-only options never leak into the compatible surface.
	assert.NotContains(t, req, "options")
}

func TestOpenAIProvider_ParseResponse_NoChoices(t *testing.T) {
	p := &OpenAIProvider{}

	_, err := p.ParseResponse([]byte(`{"model": "gpt-4o-mini", "choices": []}`), "gpt-4o-mini")
	assert.Error(t, err)
}
