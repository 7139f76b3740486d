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

// Package llm defines the completion-provider boundary: conversation
// messages, tool calls, and the Provider interface implemented by the
// per-provider subpackages.
package llm

import (
	"context"

	"github.com/teradata-labs/troupe/pkg/props"
)

// Message roles. The first message of a transcript is always the active
// role's system instructions.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall represents a tool invocation requested by the model.
type ToolCall struct {
	// ID is a unique identifier for this tool call
	ID string

	// Name is the tool name
	Name string

	// Input contains the decoded tool parameters
	Input map[string]interface{}
}

// Message represents a single message in the conversation.
type Message struct {
	// Role is the message sender (system, user, assistant, tool)
	Role string

	// Content is the message text. Empty on assistant messages that carry
	// tool calls instead of text.
	Content string

	// ToolCalls contains tool invocations (role assistant only)
	ToolCalls []ToolCall

	// ToolCallID correlates a tool result to the originating request
	// (role tool only)
	ToolCallID string

	// ToolName is the name of the tool that produced this result
	// (role tool only)
	ToolName string
}

// Usage tracks token consumption for a single completion call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Response represents a completion from the provider: either final text or
// a set of requested tool calls, never both meaningfully.
type Response struct {
	// Content is the text response (if no tool calls)
	Content string

	// ToolCalls contains requested tool executions
	ToolCalls []ToolCall

	// StopReason indicates why the model stopped
	StopReason string

	// Usage tracks token usage
	Usage Usage
}

// Provider defines the interface for completion providers. Implementations
// live in the per-provider subpackages (openrouter, anthropic).
type Provider interface {
	// Chat sends a conversation to the model and returns the response.
	// The tool list may be empty; an empty list offers no tools.
	Chat(ctx context.Context, messages []Message, tools []props.Tool) (*Response, error)

	// Name returns the provider name
	Name() string

	// Model returns the model identifier
	Model() string
}
