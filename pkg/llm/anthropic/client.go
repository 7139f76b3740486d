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
	// DefaultModel is the default Claude model
	DefaultModel = "claude-sonnet-4-5-20250929"
	// DefaultEndpoint is the default Anthropic API endpoint
	DefaultEndpoint = "https://api.anthropic.com/v1/messages"
	// DefaultMaxTokens is the default maximum tokens per request
	DefaultMaxTokens = 1024
	// DefaultTimeout is the default HTTP timeout
	DefaultTimeout = 60 * time.Second

	apiVersion = "2023-06-01"
)

// Client implements the llm.Provider interface for Anthropic's Messages API.
type Client struct {
	apiKey     string
	model      string
	endpoint   string
	maxTokens  int
	httpClient *http.Client
}

// Config holds configuration for the Anthropic client.
type Config struct {
	APIKey    string
	Model     string // Default: claude-sonnet-4-5-20250929
	Endpoint  string // Default: https://api.anthropic.com/v1/messages
	Timeout   time.Duration
	MaxTokens int // Default: 1024
}

// NewClient creates a new Anthropic client.
func NewClient(config Config) *Client {
	if config.Model == "" {
		if envModel := os.Getenv("TROUPE_ANTHROPIC_MODEL"); envModel != "" {
			config.Model = envModel
		} else {
			config.Model = DefaultModel
		}
	}
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
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
		maxTokens: config.MaxTokens,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "anthropic"
}

// Model returns the model identifier.
func (c *Client) Model() string {
	return c.model
}

// Chat sends a conversation to Anthropic and returns the response.
func (c *Client) Chat(ctx context.Context, messages []llm.Message, tools []props.Tool) (*llm.Response, error) {
	system, apiMessages, err := convertMessages(messages)
	if err != nil {
		return nil, err
	}

	req := &MessagesRequest{
		Model:     c.model,
		System:    system,
		Messages:  apiMessages,
		MaxTokens: c.maxTokens,
		Tools:     convertTools(tools),
	}

	resp, err := c.callAPI(ctx, req)
	if err != nil {
		return nil, err
	}

	return convertResponse(resp), nil
}

// convertMessages converts transcript messages to the Messages API shape.
// The system message becomes the top-level system field; tool results become
// tool_result blocks inside a user message, as the API requires.
func convertMessages(messages []llm.Message) (string, []APIMessage, error) {
	var system string
	var apiMessages []APIMessage

	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleSystem:
			system = msg.Content

		case llm.RoleUser:
			apiMessages = append(apiMessages, APIMessage{
				Role:    "user",
				Content: []ContentBlock{{Type: "text", Text: msg.Content}},
			})

		case llm.RoleAssistant:
			var blocks []ContentBlock
			if msg.Content != "" {
				blocks = append(blocks, ContentBlock{Type: "text", Text: msg.Content})
			}
			for _, tc := range msg.ToolCalls {
				input, err := json.Marshal(tc.Input)
				if err != nil {
					input = []byte("{}")
				}
				blocks = append(blocks, ContentBlock{
					Type:  "tool_use",
					ID:    tc.ID,
					Name:  tc.Name,
					Input: input,
				})
			}
			apiMessages = append(apiMessages, APIMessage{Role: "assistant", Content: blocks})

		case llm.RoleTool:
			apiMessages = append(apiMessages, APIMessage{
				Role: "user",
				Content: []ContentBlock{{
					Type:      "tool_result",
					ToolUseID: msg.ToolCallID,
					Content:   msg.Content,
				}},
			})

		default:
			return "", nil, fmt.Errorf("unsupported message role: %s", msg.Role)
		}
	}

	return system, apiMessages, nil
}

// convertTools converts props tools to the Messages API shape.
func convertTools(tools []props.Tool) []APITool {
	var apiTools []APITool

	for _, tool := range tools {
		apiTool := APITool{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: json.RawMessage(`{"type":"object"}`),
		}
		if schema := tool.InputSchema(); schema != nil {
			if raw, err := schema.ToJSON(); err == nil {
				apiTool.InputSchema = raw
			}
		}
		apiTools = append(apiTools, apiTool)
	}

	return apiTools
}

// convertResponse converts the Messages API response to the provider-neutral
// format. Text blocks are concatenated; tool_use blocks become tool calls.
func convertResponse(resp *MessagesResponse) *llm.Response {
	out := &llm.Response{
		StopReason: resp.StopReason,
		Usage: llm.Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}

	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			out.Content += block.Text
		case "tool_use":
			var input map[string]interface{}
			if err := json.Unmarshal(block.Input, &input); err != nil {
				input = map[string]interface{}{"_raw": string(block.Input)}
			}
			out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
				ID:    block.ID,
				Name:  block.Name,
				Input: input,
			})
		}
	}

	return out
}

// callAPI makes the HTTP request to the Messages API.
func (c *Client) callAPI(ctx context.Context, req *MessagesRequest) (*MessagesResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &llm.ProviderError{Provider: c.Name(), Message: err.Error()}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &llm.ProviderError{Provider: c.Name(), StatusCode: httpResp.StatusCode, Message: err.Error()}
	}

	var resp MessagesResponse
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
