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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/teradata-labs/troupe/pkg/llm"
	"github.com/teradata-labs/troupe/pkg/props"
)

const (
	// DefaultModel is a function-calling capable model on OpenRouter
	DefaultModel = "anthropic/claude-3-haiku"
	// DefaultEndpoint is the OpenRouter chat completions endpoint
	DefaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"
	// DefaultTimeout is the default HTTP timeout
	DefaultTimeout = 60 * time.Second
	// DefaultMaxTokens is the default maximum tokens per request
	DefaultMaxTokens = 1024
)

// Client implements the llm.Provider interface against OpenRouter's
// OpenAI-compatible chat completions API.
type Client struct {
	apiKey     string
	model      string
	endpoint   string
	referer    string
	title      string
	maxTokens  int
	httpClient *http.Client
}

// Config holds configuration for the OpenRouter client.
type Config struct {
	APIKey    string
	Model     string // Default: anthropic/claude-3-haiku
	Endpoint  string // Default: https://openrouter.ai/api/v1/chat/completions
	Timeout   time.Duration
	MaxTokens int // Default: 1024

	// Referer and Title identify the calling app to OpenRouter (optional)
	Referer string
	Title   string
}

// NewClient creates a new OpenRouter client.
func NewClient(config Config) *Client {
	if config.Model == "" {
		if envModel := os.Getenv("TROUPE_OPENROUTER_MODEL"); envModel != "" {
			config.Model = envModel
		} else {
			config.Model = DefaultModel
		}
	}
	if config.Endpoint == "" {
		if envEndpoint := os.Getenv("TROUPE_OPENROUTER_ENDPOINT"); envEndpoint != "" {
			config.Endpoint = envEndpoint
		} else {
			config.Endpoint = DefaultEndpoint
		}
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = DefaultMaxTokens
	}

	return &Client{
		apiKey:    config.APIKey,
		model:     config.Model,
		endpoint:  config.Endpoint,
		referer:   config.Referer,
		title:     config.Title,
		maxTokens: config.MaxTokens,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "openrouter"
}

// Model returns the model identifier.
func (c *Client) Model() string {
	return c.model
}

// Chat sends a conversation to OpenRouter and returns the response.
func (c *Client) Chat(ctx context.Context, messages []llm.Message, tools []props.Tool) (*llm.Response, error) {
	req := &ChatCompletionRequest{
		Model:     c.model,
		Messages:  convertMessages(messages),
		MaxTokens: c.maxTokens,
	}

	if apiTools := convertTools(tools); len(apiTools) > 0 {
		req.Tools = apiTools
		req.ToolChoice = "auto"
	}

	resp, err := c.callAPI(ctx, req)
	if err != nil {
		return nil, err
	}

	return convertResponse(resp), nil
}

// convertMessages converts transcript messages to the wire format.
func convertMessages(messages []llm.Message) []ChatMessage {
	apiMessages := make([]ChatMessage, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleAssistant:
			apiMsg := ChatMessage{Role: llm.RoleAssistant}
			if msg.Content != "" {
				apiMsg.Content = msg.Content
			}
			for _, tc := range msg.ToolCalls {
				argsJSON, err := json.Marshal(tc.Input)
				if err != nil {
					argsJSON = []byte("{}")
				}
				apiMsg.ToolCalls = append(apiMsg.ToolCalls, ToolCall{
					ID:   tc.ID,
					Type: "function",
					Function: FunctionCall{
						Name:      tc.Name,
						Arguments: string(argsJSON),
					},
				})
			}
			apiMessages = append(apiMessages, apiMsg)

		case llm.RoleTool:
			apiMessages = append(apiMessages, ChatMessage{
				Role:       llm.RoleTool,
				Content:    msg.Content,
				Name:       msg.ToolName,
				ToolCallID: msg.ToolCallID,
			})

		default: // system, user
			apiMessages = append(apiMessages, ChatMessage{
				Role:    msg.Role,
				Content: msg.Content,
			})
		}
	}

	return apiMessages
}

// convertTools converts props tools to the wire format.
func convertTools(tools []props.Tool) []Tool {
	var apiTools []Tool

	for _, tool := range tools {
		apiTool := Tool{
			Type: "function",
			Function: FunctionDef{
				Name:        tool.Name(),
				Description: tool.Description(),
			},
		}

		if schema := tool.InputSchema(); schema != nil {
			raw, err := schema.ToJSON()
			if err == nil {
				var params map[string]interface{}
				if json.Unmarshal(raw, &params) == nil {
					apiTool.Function.Parameters = params
				}
			}
		}

		apiTools = append(apiTools, apiTool)
	}

	return apiTools
}

// convertResponse converts the wire response to the provider-neutral format.
func convertResponse(resp *ChatCompletionResponse) *llm.Response {
	out := &llm.Response{
		Usage: llm.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}

	if len(resp.Choices) == 0 {
		return out
	}
	choice := resp.Choices[0]

	switch choice.FinishReason {
	case "stop":
		out.StopReason = "end_turn"
	case "length":
		out.StopReason = "max_tokens"
	case "tool_calls", "function_call":
		out.StopReason = "tool_use"
	default:
		out.StopReason = choice.FinishReason
	}

	if str, ok := choice.Message.Content.(string); ok {
		out.Content = str
	}

	for _, tc := range choice.Message.ToolCalls {
		var input map[string]interface{}
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &input); err != nil {
			// Undecodable argument payloads are preserved raw rather than dropped
			input = map[string]interface{}{"_raw": tc.Function.Arguments}
		}
		out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
			ID:    tc.ID,
			Name:  tc.Function.Name,
			Input: input,
		})
	}

	return out
}

// callAPI makes the HTTP request to the chat completions endpoint.
func (c *Client) callAPI(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		httpReq.Header.Set("X-Title", c.title)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &llm.ProviderError{Provider: c.Name(), Message: err.Error()}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &llm.ProviderError{Provider: c.Name(), StatusCode: httpResp.StatusCode, Message: err.Error()}
	}

	var resp ChatCompletionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		if httpResp.StatusCode != http.StatusOK {
			return nil, &llm.ProviderError{Provider: c.Name(), StatusCode: httpResp.StatusCode, Message: string(respBody)}
		}
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if resp.Error != nil {
		return nil, &llm.ProviderError{Provider: c.Name(), StatusCode: httpResp.StatusCode, Message: resp.Error.Message}
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, &llm.ProviderError{Provider: c.Name(), StatusCode: httpResp.StatusCode, Message: string(respBody)}
	}

	return &resp, nil
}

// Ensure Client implements the Provider interface.
var _ llm.Provider = (*Client)(nil)
