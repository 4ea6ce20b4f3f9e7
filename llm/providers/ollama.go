// Package providers implements backend provider adapters.
package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/c360studio/traitmatrix/llm"
)

// OllamaProvider implements the native Ollama chat API. Unlike the
// OpenAI-compatible endpoint, the native API accepts the full option set
// (num_ctx, num_predict, repeat_last_n, top_k) the pipeline carries.
type OllamaProvider struct{}

func init() {
	llm.RegisterProvider(&OllamaProvider{})
}

// Name returns the provider identifier.
func (o *OllamaProvider) Name() string {
	return "ollama"
}

// BuildURL constructs the native chat endpoint.
func (o *OllamaProvider) BuildURL(baseURL string) string {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	if strings.HasSuffix(baseURL, "/api/chat") {
		return baseURL
	}
	return baseURL + "/api/chat"
}

// SetHeaders adds request headers. The native API needs none beyond
// Content-Type, which the client sets.
func (o *OllamaProvider) SetHeaders(_ *http.Request) {}

// ollamaOptions is the native model option set. Unset fields are omitted so
// the model's own defaults apply.
type ollamaOptions struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Seed        *int     `json:"seed,omitempty"`
	RepeatLastN *int     `json:"repeat_last_n,omitempty"`
	NumPredict  *int     `json:"num_predict,omitempty"`
	NumCtx      *int     `json:"num_ctx,omitempty"`
	TopK        *int     `json:"top_k,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
}

// ollamaRequest is the native chat request format.
type ollamaRequest struct {
	Model    string        `json:"model"`
	Messages []llm.Message `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options"`
}

// BuildRequestBody creates the native chat request body.
func (o *OllamaProvider) BuildRequestBody(model string, messages []llm.Message, params llm.Params) ([]byte, error) {
	opts := ollamaOptions{
		Temperature: params.Temperature,
		Seed:        params.Seed,
		RepeatLastN: params.RepeatLastN,
		TopK:        params.TopK,
		TopP:        params.TopP,
	}
	if params.MaxTokens > 0 {
		opts.NumPredict = &params.MaxTokens
	}
	if params.ContextSize > 0 {
		opts.NumCtx = &params.ContextSize
	}

	req := ollamaRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
		Options:  opts,
	}

	return json.Marshal(req)
}

// ollamaResponse is the native chat response format.
type ollamaResponse struct {
	Model   string `json:"model"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done            bool   `json:"done"`
	DoneReason      string `json:"done_reason"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

// ParseResponse extracts content from a native chat response.
func (o *OllamaProvider) ParseResponse(body []byte, _ string) (*llm.Response, error) {
	var resp ollamaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse ollama response: %w", err)
	}

	if resp.Message.Content == "" && !resp.Done {
		return nil, fmt.Errorf("empty message in ollama response")
	}

	return &llm.Response{
		Content: resp.Message.Content,
		Model:   resp.Model,
		Usage: llm.TokenUsage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		},
		FinishReason: resp.DoneReason,
	}, nil
}
