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
package props

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// Invocation records a single tool execution for inspection.
type Invocation struct {
	Tool     string
	Params   map[string]interface{}
	Success  bool
	Duration time.Duration
}

// Executor executes tools with argument validation and failure containment.
// A tool failure never propagates as an error: it is converted into a
// failed Result so the conversation loop can feed it back to the model.
type Executor struct {
	registry *Registry

	mu  sync.Mutex
	log []Invocation
}

// NewExecutor creates a new tool executor.
func NewExecutor(registry *Registry) *Executor {
	return &Executor{registry: registry}
}

// Execute executes a tool by name with the given parameters.
// Unknown tools, invalid arguments, and handler errors all produce a failed
// Result rather than an error; the only error returned is context
// cancellation.
func (e *Executor) Execute(ctx context.Context, toolName string, params map[string]interface{}) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tool, ok := e.registry.Get(toolName)
	if !ok {
		return &Result{
			Success: false,
			Error: &Error{
				Code:    "unknown_tool",
				Message: fmt.Sprintf("tool not found: %s", toolName),
			},
		}, nil
	}

	if err := validateParams(tool, params); err != nil {
		e.record(toolName, params, false, 0)
		return &Result{
			Success: false,
			Error: &Error{
				Code:    "invalid_arguments",
				Message: err.Error(),
			},
		}, nil
	}

	start := time.Now()
	result, err := tool.Execute(ctx, params)
	elapsed := time.Since(start)

	if err != nil {
		e.record(toolName, params, false, elapsed)
		return &Result{
			Success: false,
			Error: &Error{
				Code:    "execution_error",
				Message: fmt.Sprintf("tool %s failed: %v", toolName, err),
			},
		}, nil
	}
	if result == nil {
		result = &Result{Success: true}
	}

	e.record(toolName, params, result.Success, elapsed)
	return result, nil
}

// Log returns a copy of the invocation log.
func (e *Executor) Log() []Invocation {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Invocation, len(e.log))
	copy(out, e.log)
	return out
}

func (e *Executor) record(tool string, params map[string]interface{}, success bool, d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = append(e.log, Invocation{Tool: tool, Params: params, Success: success, Duration: d})
}

// validateParams validates tool arguments against the tool's JSON Schema.
func validateParams(tool Tool, params map[string]interface{}) error {
	schema := tool.InputSchema()
	if schema == nil {
		return nil
	}
	if params == nil {
		params = map[string]interface{}{}
	}

	schemaLoader := gojsonschema.NewGoLoader(schema)
	argsLoader := gojsonschema.NewGoLoader(params)

	result, err := gojsonschema.Validate(schemaLoader, argsLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		descs := make([]string, len(result.Errors()))
		for i, verr := range result.Errors() {
			descs[i] = verr.String()
		}
		return fmt.Errorf("invalid arguments: %s", strings.Join(descs, "; "))
	}

	return nil
}
