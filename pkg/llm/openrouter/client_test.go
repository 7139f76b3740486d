// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teradata-labs/troupe/pkg/llm"
	"github.com/teradata-labs/troupe/pkg/props"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   *Client
	}{
		{
			name:   "with defaults",
			config: Config{APIKey: "test-key"},
			want: &Client{
				apiKey:    "test-key",
				model:     "anthropic/claude-3-haiku",
				endpoint:  "https://openrouter.ai/api/v1/chat/completions",
				maxTokens: 1024,
			},
		},
		{
			name: "with custom config",
			config: Config{
				APIKey:    "custom-key",
				Model:     "google/gemini-2.0-flash-001",
				Endpoint:  "https://example.com/v1/chat",
				MaxTokens: 2048,
				Timeout:   30 * time.Second,
			},
			want: &Client{
				apiKey:    "custom-key",
				model:     "google/gemini-2.0-flash-001",
				endpoint:  "https://example.com/v1/chat",
				maxTokens: 2048,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewClient(tt.config)
			assert.Equal(t, tt.want.apiKey, got.apiKey)
			assert.Equal(t, tt.want.model, got.model)
			assert.Equal(t, tt.want.endpoint, got.endpoint)
			assert.Equal(t, tt.want.maxTokens, got.maxTokens)
			assert.NotNil(t, got.httpClient)
		})
	}
}

func TestClient_Name(t *testing.T) {
	client := NewClient(Config{APIKey: "test"})
	assert.Equal(t, "openrouter", client.Name())
}

func TestClient_Chat_TextResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "http://localhost:3000", r.Header.Get("HTTP-Referer"))

		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Empty(t, req.Tools)

		resp := ChatCompletionResponse{
			Choices: []ChatCompletionChoice{{
				Message:      ChatMessage{Role: "assistant", Content: "The forest darkens."},
				FinishReason: "stop",
			}},
			Usage: ChatCompletionUsage{PromptTokens: 12, CompletionTokens: 5, TotalTokens: 17},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client := NewClient(Config{
		APIKey:   "test-key",
		Endpoint: server.URL,
		Referer:  "http://localhost:3000",
	})

	resp, err := client.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "You are the narrator."},
		{Role: llm.RoleUser, Content: "Begin the adventure"},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "The forest darkens.", resp.Content)
	assert.Empty(t, resp.ToolCalls)
	assert.Equal(t, "end_turn", resp.StopReason)
	assert.Equal(t, 17, resp.Usage.TotalTokens)
}

func TestClient_Chat_ToolCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Tools, 1)
		assert.Equal(t, "roll_dice", req.Tools[0].Function.Name)
		assert.Equal(t, "auto", req.ToolChoice)

		resp := ChatCompletionResponse{
			Choices: []ChatCompletionChoice{{
				Message: ChatMessage{
					Role: "assistant",
					ToolCalls: []ToolCall{{
						ID:   "call_1",
						Type: "function",
						Function: FunctionCall{
							Name:      "roll_dice",
							Arguments: `{"sides": 20, "count": 1}`,
						},
					}},
				},
				FinishReason: "tool_calls",
			}},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", Endpoint: server.URL})

	dice := &props.MockTool{
		MockName:        "roll_dice",
		MockDescription: "Roll dice for game mechanics",
	}

	resp, err := client.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "attack the goblin"},
	}, []props.Tool{dice})

	require.NoError(t, err)
	assert.Equal(t, "tool_use", resp.StopReason)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "call_1", resp.ToolCalls[0].ID)
	assert.Equal(t, "roll_dice", resp.ToolCalls[0].Name)
	assert.Equal(t, float64(20), resp.ToolCalls[0].Input["sides"])
}

func TestClient_Chat_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(ChatCompletionResponse{
			Error: &APIError{Message: "Rate limit exceeded", Type: "rate_limit_error"},
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", Endpoint: server.URL})

	_, err := client.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}}, nil)
	require.Error(t, err)

	var perr *llm.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusTooManyRequests, perr.StatusCode)
	assert.True(t, llm.IsTransient(err))
}

func TestClient_Chat_PermanentError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(ChatCompletionResponse{
			Error: &APIError{Message: "Invalid API key", Type: "authentication_error"},
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "bad", Endpoint: server.URL})

	_, err := client.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}}, nil)
	require.Error(t, err)
	assert.False(t, llm.IsTransient(err))
}

func TestConvertMessages_ToolRoundTrip(t *testing.T) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: "instructions"},
		{Role: llm.RoleUser, Content: "roll for me"},
		{Role: llm.RoleAssistant, ToolCalls: []llm.ToolCall{
			{ID: "call_9", Name: "roll_dice", Input: map[string]interface{}{"sides": 6}},
		}},
		{Role: llm.RoleTool, Content: "Dice rolls: [4] (Total: 4)", ToolCallID: "call_9", ToolName: "roll_dice"},
	}

	apiMessages := convertMessages(messages)
	require.Len(t, apiMessages, 4)

	assistant := apiMessages[2]
	assert.Nil(t, assistant.Content)
	require.Len(t, assistant.ToolCalls, 1)
	assert.Equal(t, "call_9", assistant.ToolCalls[0].ID)
	assert.JSONEq(t, `{"sides": 6}`, assistant.ToolCalls[0].Function.Arguments)

	tool := apiMessages[3]
	assert.Equal(t, "tool", tool.Role)
	assert.Equal(t, "call_9", tool.ToolCallID)
	assert.Equal(t, "roll_dice", tool.Name)
}

func TestConvertResponse_MalformedArguments(t *testing.T) {
	resp := convertResponse(&ChatCompletionResponse{
		Choices: []ChatCompletionChoice{{
			Message: ChatMessage{
				Role: "assistant",
				ToolCalls: []ToolCall{{
					ID:       "call_x",
					Function: FunctionCall{Name: "roll_dice", Arguments: "not json"},
				}},
			},
			FinishReason: "tool_calls",
		}},
	})

	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "not json", resp.ToolCalls[0].Input["_raw"])
}
