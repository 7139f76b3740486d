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
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/teradata-labs/troupe/internal/log"
	"github.com/teradata-labs/troupe/pkg/llm"
	"github.com/teradata-labs/troupe/pkg/props"
)

// DefaultMaxRounds bounds completion round-trips per user turn. A
// confused model that keeps requesting tools would otherwise never
// terminate.
const DefaultMaxRounds = 10

// ErrLoopExceeded is returned when a single turn exceeds the round
// ceiling without producing a final text answer.
var ErrLoopExceeded = errors.New("tool-call loop exceeded maximum rounds")

// Loop drives completion round-trips for one performer's turn,
// dispatching requested tool calls until a final text answer arrives.
type Loop struct {
	provider  llm.Provider
	executor  *props.Executor
	retry     RetryPolicy
	maxRounds int
}

// NewLoop creates a tool-call loop.
func NewLoop(provider llm.Provider, executor *props.Executor, retry RetryPolicy, maxRounds int) *Loop {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	return &Loop{
		provider:  provider,
		executor:  executor,
		retry:     retry,
		maxRounds: maxRounds,
	}
}

// Run queries the provider with the transcript and the performer's
// tool subset, executes any requested tool calls, feeds the results
// back, and repeats until the response carries no tool calls. The
// final text is returned and also appended to the transcript as an
// assistant message.
//
// Individual tool failures never abort the loop; they are fed back to
// the model as error-string results. Only provider failure (after
// retries) or exceeding the round ceiling ends the turn with an error.
func (l *Loop) Run(ctx context.Context, transcript *Transcript, def *Definition) (string, error) {
	for round := 0; round < l.maxRounds; round++ {
		resp, err := l.retry.Execute(ctx, func(ctx context.Context) (*llm.Response, error) {
			return l.provider.Chat(ctx, transcript.Messages(), def.Tools)
		})
		if err != nil {
			return "", err
		}

		if len(resp.ToolCalls) == 0 {
			transcript.Append(llm.Message{Role: llm.RoleAssistant, Content: resp.Content})
			return resp.Content, nil
		}

		transcript.Append(llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			payload, err := l.dispatch(ctx, call)
			if err != nil {
				return "", err
			}
			transcript.Append(llm.Message{
				Role:       llm.RoleTool,
				Content:    payload,
				ToolCallID: call.ID,
				ToolName:   call.Name,
			})
		}
	}

	return "", fmt.Errorf("%w (%d) for performer %s", ErrLoopExceeded, l.maxRounds, def.Name)
}

// dispatch executes one tool call and serializes its result. The only
// error path is context cancellation.
func (l *Loop) dispatch(ctx context.Context, call llm.ToolCall) (string, error) {
	result, err := l.executor.Execute(ctx, call.Name, call.Input)
	if err != nil {
		return "", err
	}

	if !result.Success {
		msg := "tool execution failed"
		if result.Error != nil {
			msg = result.Error.Message
		}
		log.Debug("tool call failed",
			zap.String("tool", call.Name),
			zap.String("error", msg))
		return fmt.Sprintf("Error: %s", msg), nil
	}

	switch data := result.Data.(type) {
	case nil:
		return "", nil
	case string:
		return data, nil
	default:
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Sprintf("%v", data), nil
		}
		return string(raw), nil
	}
}
