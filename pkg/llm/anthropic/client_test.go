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
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teradata-labs/troupe/pkg/llm"
	"github.com/teradata-labs/troupe/pkg/props"
)

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{APIKey: "test-key"})
	assert.Equal(t, "test-key", client.apiKey)
	assert.Equal(t, DefaultModel, client.model)
	assert.Equal(t, DefaultEndpoint, client.endpoint)
	assert.Equal(t, DefaultMaxTokens, client.maxTokens)
	assert.Equal(t, "anthropic", client.Name())
	assert.Equal(t, DefaultModel, client.Model())
}

func TestClient_Chat_TextResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req MessagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "You plan journeys.", req.System)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		resp := MessagesResponse{
			Content:    []ContentBlock{{Type: "text", Text: "Consider Kyoto in spring."}},
			StopReason: "end_turn",
			Usage:      APIUsage{InputTokens: 10, OutputTokens: 8},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", Endpoint: server.URL})

	resp, err := client.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "You plan journeys."},
		{Role: llm.RoleUser, Content: "Where should I go?"},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "Consider Kyoto in spring.", resp.Content)
	assert.Equal(t, "end_turn", resp.StopReason)
	assert.Equal(t, 18, resp.Usage.TotalTokens)
}

func TestClient_Chat_ToolUse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req MessagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Tools, 1)
		assert.Equal(t, "generate_event", req.Tools[0].Name)

		resp := MessagesResponse{
			Content: []ContentBlock{
				{Type: "text", Text: "Let me see what happens."},
				{Type: "tool_use", ID: "toolu_1", Name: "generate_event", Input: json.RawMessage(`{"event_type": "treasure"}`)},
			},
			StopReason: "tool_use",
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", Endpoint: server.URL})

	event := &props.MockTool{
		MockName:        "generate_event",
		MockDescription: "Generate a random game event",
	}

	resp, err := client.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "search the room"},
	}, []props.Tool{event})

	require.NoError(t, err)
	assert.Equal(t, "Let me see what happens.", resp.Content)
	assert.Equal(t, "tool_use", resp.StopReason)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "toolu_1", resp.ToolCalls[0].ID)
	assert.Equal(t, "treasure", resp.ToolCalls[0].Input["event_type"])
}

func TestClient_Chat_OverloadedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(529)
		_ = json.NewEncoder(w).Encode(MessagesResponse{
			Error: &APIError{Type: "overloaded_error", Message: "Overloaded"},
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", Endpoint: server.URL})

	_, err := client.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}}, nil)
	require.Error(t, err)

	var perr *llm.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 529, perr.StatusCode)
	assert.True(t, llm.IsTransient(err))
}

func TestClient_Chat_InvalidKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(MessagesResponse{
			Error: &APIError{Type: "authentication_error", Message: "invalid x-api-key"},
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "bad", Endpoint: server.URL})

	_, err := client.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}}, nil)
	require.Error(t, err)
	assert.False(t, llm.IsTransient(err))
}

func TestConvertMessages_ToolResult(t *testing.T) {
	system, apiMessages, err := convertMessages([]llm.Message{
		{Role: llm.RoleSystem, Content: "instructions"},
		{Role: llm.RoleUser, Content: "search"},
		{Role: llm.RoleAssistant, ToolCalls: []llm.ToolCall{
			{ID: "toolu_9", Name: "generate_event", Input: map[string]interface{}{"event_type": "combat"}},
		}},
		{Role: llm.RoleTool, Content: "A goblin ambush!", ToolCallID: "toolu_9", ToolName: "generate_event"},
	})

	require.NoError(t, err)
	assert.Equal(t, "instructions", system)
	require.Len(t, apiMessages, 3)

	assistant := apiMessages[1]
	require.Len(t, assistant.Content, 1)
	assert.Equal(t, "tool_use", assistant.Content[0].Type)
	assert.JSONEq(t, `{"event_type": "combat"}`, string(assistant.Content[0].Input))

	result := apiMessages[2]
	assert.Equal(t, "user", result.Role)
	require.Len(t, result.Content, 1)
	assert.Equal(t, "tool_result", result.Content[0].Type)
	assert.Equal(t, "toolu_9", result.Content[0].ToolUseID)
	assert.Equal(t, "A goblin ambush!", result.Content[0].Content)
}
