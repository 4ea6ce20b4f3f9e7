package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/traitmatrix/llm"
	_ "github.com/c360studio/traitmatrix/llm/providers"
)

// fastRetry keeps retry tests quick.
func fastRetry() llm.RetryConfig {
	return llm.RetryConfig{
		MaxAttempts:       3,
		BackoffBase:       time.Millisecond,
		BackoffMultiplier: 1.0,
		MaxBackoff:        time.Millisecond,
	}
}

func ollamaReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	err := json.NewEncoder(w).Encode(map[string]any{
		"model":             "test-model",
		"message":           map[string]string{"role": "assistant", "content": content},
		"done":              true,
		"done_reason":       "stop",
		"prompt_eval_count": 10,
		"eval_count":        5,
	})
	require.NoError(t, err)
}

func TestClient_Generate(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		ollamaReply(t, w, `[{"characteristic": "habit", "value": "tree"}]`)
	}))
	defer server.Close()

	temp := 0.1
	seed := 1
	client := llm.NewClient(
		llm.Endpoint{Provider: "ollama", URL: server.URL, Model: "llama3"},
		llm.Params{Temperature: &temp, Seed: &seed, ContextSize: 4096},
	)

	content, err := client.Generate(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, `[{"characteristic": "habit", "value": "tree"}]`, content)

	// The request carries both turns and the opaque options.
	msgs := gotBody["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])

	opts := gotBody["options"].(map[string]any)
	assert.Equal(t, 0.1, opts["temperature"])
	assert.Equal(t, float64(1), opts["seed"])
	assert.Equal(t, float64(4096), opts["num_ctx"])
	assert.Equal(t, false, gotBody["stream"])
}

func TestClient_Converse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body["messages"].([]any), 4)
		ollamaReply(t, w, "followup answer")
	}))
	defer server.Close()

	client := llm.NewClient(
		llm.Endpoint{Provider: "ollama", URL: server.URL, Model: "llama3"},
		llm.Params{},
	)

	content, err := client.Converse(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "sys"},
		{Role: llm.RoleUser, Content: "initial"},
		{Role: llm.RoleAssistant, Content: "first answer"},
		{Role: llm.RoleUser, Content: "followup"},
	})
	require.NoError(t, err)
	assert.Equal(t, "followup answer", content)
}

func TestClient_RetriesTransientErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		ollamaReply(t, w, "recovered")
	}))
	defer server.Close()

	client := llm.NewClient(
		llm.Endpoint{Provider: "ollama", URL: server.URL, Model: "llama3"},
		llm.Params{},
		llm.WithRetryConfig(fastRetry()),
	)

	content, err := client.Generate(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, "recovered", content)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClient_FatalErrorNotRetried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := llm.NewClient(
		llm.Endpoint{Provider: "ollama", URL: server.URL, Model: "llama3"},
		llm.Params{},
		llm.WithRetryConfig(fastRetry()),
	)

	_, err := client.Generate(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.True(t, llm.IsFatal(err))
	assert.Equal(t, int32(1), attempts.Load())
}

func TestClient_UnknownProvider(t *testing.T) {
	client := llm.NewClient(llm.Endpoint{Provider: "nope"}, llm.Params{})

	_, err := client.Generate(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.True(t, llm.IsFatal(err))
}
