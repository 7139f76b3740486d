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
package quest

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"

	"github.com/teradata-labs/troupe/pkg/props"
)

//go:embed events.yaml
var eventsYAML []byte

// DiceTool rolls dice for game mechanics.
type DiceTool struct {
	rng *rand.Rand
}

// NewDiceTool creates a dice tool seeded from the given source. A nil
// source uses the default shared source.
func NewDiceTool(rng *rand.Rand) *DiceTool {
	return &DiceTool{rng: rng}
}

func (d *DiceTool) Name() string        { return "roll_dice" }
func (d *DiceTool) Description() string { return "Roll dice for game mechanics" }

func (d *DiceTool) InputSchema() *props.JSONSchema {
	return props.NewObjectSchema("Dice roll parameters", map[string]*props.JSONSchema{
		"sides": props.NewIntegerSchema("Number of sides per die").WithDefault(6),
		"count": props.NewIntegerSchema("Number of dice to roll").WithDefault(1),
	}, nil)
}

func (d *DiceTool) Execute(ctx context.Context, params map[string]interface{}) (*props.Result, error) {
	sides := intParam(params, "sides", 6)
	count := intParam(params, "count", 1)
	if sides < 1 {
		sides = 6
	}
	if count < 1 {
		count = 1
	}

	results := make([]int, count)
	total := 0
	for i := range results {
		results[i] = d.roll(sides)
		total += results[i]
	}

	return &props.Result{
		Success: true,
		Data:    fmt.Sprintf("Dice rolls: %v (Total: %d)", results, total),
	}, nil
}

func (d *DiceTool) roll(sides int) int {
	if d.rng != nil {
		return d.rng.Intn(sides) + 1
	}
	return rand.Intn(sides) + 1
}

// EventTool picks a random game event from the embedded catalog.
type EventTool struct {
	rng    *rand.Rand
	events []string
}

// NewEventTool creates an event tool backed by the embedded catalog.
func NewEventTool(rng *rand.Rand) (*EventTool, error) {
	var catalog struct {
		Events []string `yaml:"events"`
	}
	if err := yaml.Unmarshal(eventsYAML, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse event catalog: %w", err)
	}
	if len(catalog.Events) == 0 {
		return nil, fmt.Errorf("event catalog is empty")
	}
	return &EventTool{rng: rng, events: catalog.Events}, nil
}

func (e *EventTool) Name() string        { return "generate_event" }
func (e *EventTool) Description() string { return "Generate random game events" }

func (e *EventTool) InputSchema() *props.JSONSchema {
	return props.NewObjectSchema("No parameters", nil, nil)
}

func (e *EventTool) Execute(ctx context.Context, params map[string]interface{}) (*props.Result, error) {
	idx := 0
	if e.rng != nil {
		idx = e.rng.Intn(len(e.events))
	} else {
		idx = rand.Intn(len(e.events))
	}
	return &props.Result{Success: true, Data: e.events[idx]}, nil
}

// intParam reads an integer parameter that may arrive as float64 from
// JSON decoding.
func intParam(params map[string]interface{}, key string, fallback int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}

var (
	_ props.Tool = (*DiceTool)(nil)
	_ props.Tool = (*EventTool)(nil)
)
