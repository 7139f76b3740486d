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
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teradata-labs/troupe/internal/log"
	"github.com/teradata-labs/troupe/pkg/llm"
	"github.com/teradata-labs/troupe/pkg/marker"
)

// Fragment is one performer's full response, collected by pipeline
// scenarios that assemble a composite report instead of displaying
// each turn incrementally.
type Fragment struct {
	Agent string
	Text  string
}

// State is the mutable session state, owned exclusively by one
// Controller. Scenario code reads and writes it between turns; no
// concurrent access happens within a session.
type State struct {
	// Agent names the performer currently on stage.
	Agent string

	// Health and Inventory back the game-style mutation markers.
	Health    int
	Inventory []string

	// Facts holds scalar domain facts keyed by name (location,
	// destination, career, monster, item).
	Facts map[string]string

	// GameOver is set when health is exhausted; the session is
	// terminal once it is true.
	GameOver bool

	// AwaitingSelection marks the sub-mode where the next user input
	// is matched against Options instead of being sent to the model.
	AwaitingSelection bool
	Options           []string
}

// NewState creates session state starting at the named performer.
func NewState(initial string) *State {
	return &State{
		Agent: initial,
		Facts: make(map[string]string),
	}
}

// KeywordRule transitions on raw user input: while in From, input
// containing any keyword (case-insensitive) moves to To and clears the
// named facts.
type KeywordRule struct {
	From       string
	Keywords   []string
	To         string
	ClearFacts []string
}

// PhraseRule transitions on performer output: while in From, output
// containing Phrase (case-insensitive) moves to To.
type PhraseRule struct {
	From   string
	Phrase string
	To     string
}

// FactRule transitions once a fact is captured: while in From, a
// non-empty value under Fact moves to To at the end of the turn.
type FactRule struct {
	From string
	Fact string
	To   string
}

// Selection configures the awaiting-selection sub-mode: a matched
// option is stored under Fact and control moves to To; unmatched input
// re-prompts without transitioning.
type Selection struct {
	Fact     string
	To       string
	Reprompt func(options []string) string
}

// Config assembles a session from a scenario's cast and rules.
type Config struct {
	Provider llm.Provider
	Loop     *Loop
	Agents   []*Definition
	Initial  string

	Rules        marker.Ruleset
	KeywordRules []KeywordRule
	PhraseRules  []PhraseRule
	FactRules    []FactRule
	Selection    *Selection

	// ContextRenderer produces a compact textual summary of the state
	// fields relevant to the active performer, prepended to each user
	// input so the model sees current health, location, or target.
	ContextRenderer func(state *State) string

	// OnHandoff customizes handoff side effects (setting the active
	// monster, clearing combat state). The default records a non-empty
	// payload as a fact under the target's name.
	OnHandoff func(state *State, h marker.Handoff)
}

// Controller owns the transcript and session state and drives the
/// orchestration cycle: apply input transitions, run the tool-call
// loop, parse markers, apply effects, render display text.
type Controller struct {
	id         string
	cfg        Config
	agents     map[string]*Definition
	state      *State
	transcript *Transcript
}

// NewController creates a session controller. The provider handle is
// injected by the caller; nothing here reads process-wide state.
func NewController(cfg Config) (*Controller, error) {
	if len(cfg.Agents) == 0 {
		return nil, fmt.Errorf("session requires at least one performer")
	}

	agents := make(map[string]*Definition, len(cfg.Agents))
	for _, def := range cfg.Agents {
		agents[def.Name] = def
	}

	initial := cfg.Initial
	if initial == "" {
		initial = cfg.Agents[0].Name
	}
	def, ok := agents[initial]
	if !ok {
		return nil, fmt.Errorf("unknown initial performer: %s", initial)
	}

	return &Controller{
		id:         uuid.NewString(),
		cfg:        cfg,
		agents:     agents,
		state:      NewState(initial),
		transcript: NewTranscript(def.Instructions),
	}, nil
}

// ID returns the session's unique identifier.
func (c *Controller) ID() string {
	return c.id
}

// State returns the mutable session state.
func (c *Controller) State() *State {
	return c.state
}

// Transcript returns the session transcript.
func (c *Controller) Transcript() *Transcript {
	return c.transcript
}

// Active returns the definition of the performer currently on stage.
func (c *Controller) Active() *Definition {
	return c.agents[c.state.Agent]
}

// Terminal reports whether the session has reached a terminal state.
func (c *Controller) Terminal() bool {
	return c.state.GameOver
}

// HandleInput runs one full orchestration cycle for a line of user
// input and returns the text to display.
func (c *Controller) HandleInput(ctx context.Context, input string) (string, error) {
	if c.state.AwaitingSelection {
		return c.resolveSelection(ctx, input)
	}

	c.applyKeywordRules(input)

	def := c.Active()
	if def == nil {
		return "", fmt.Errorf("unknown performer: %s", c.state.Agent)
	}

	if def.Respond != nil {
		return def.Respond(ctx, c.state, input)
	}

	content := input
	if c.cfg.ContextRenderer != nil {
		if summary := c.cfg.ContextRenderer(c.state); summary != "" {
			content = summary + "\n\n" + input
		}
	}
	c.transcript.Append(llm.Message{Role: llm.RoleUser, Content: content})

	text, err := c.cfg.Loop.Run(ctx, c.transcript, def)
	if err != nil {
		return "", err
	}

	display, effects := c.cfg.Rules.Parse(text)
	c.applyEffects(effects)
	c.applyPhraseRules(def.Name, text)
	c.applyFactRules(def.Name)

	return display, nil
}

// Transition moves control to the named performer, swapping the
// transcript's system instructions.
func (c *Controller) Transition(target, payload string) {
	def, ok := c.agents[target]
	if !ok {
		log.Warn("handoff to unknown performer", zap.String("target", target))
		return
	}
	if target == c.state.Agent {
		return
	}

	log.Info("performer handoff",
		zap.String("session", c.id),
		zap.String("from", c.state.Agent),
		zap.String("to", target))

	c.state.Agent = target

	note := fmt.Sprintf("[Control handed to %s]", target)
	if payload != "" {
		note = fmt.Sprintf("[Control handed to %s: %s]", target, payload)
	}
	c.transcript.Handoff(def.Instructions, note)
}

func (c *Controller) resolveSelection(ctx context.Context, input string) (string, error) {
	sel := c.cfg.Selection
	if sel == nil {
		c.state.AwaitingSelection = false
		return "", fmt.Errorf("awaiting selection with no selection rule configured")
	}

	lower := strings.ToLower(input)
	for _, option := range c.state.Options {
		if strings.Contains(lower, strings.ToLower(option)) {
			c.state.Facts[sel.Fact] = option
			c.state.AwaitingSelection = false
			c.state.Options = nil
			c.Transition(sel.To, option)
			def := c.Active()
			if def != nil && def.Respond != nil {
				return def.Respond(ctx, c.state, input)
			}
			return fmt.Sprintf("Great choice! Let's continue with %s.", option), nil
		}
	}

	if sel.Reprompt != nil {
		return sel.Reprompt(c.state.Options), nil
	}
	return "Please pick one of: " + strings.Join(c.state.Options, ", "), nil
}

func (c *Controller) applyKeywordRules(input string) {
	lower := strings.ToLower(input)
	for _, rule := range c.cfg.KeywordRules {
		if rule.From != c.state.Agent {
			continue
		}
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				for _, fact := range rule.ClearFacts {
					delete(c.state.Facts, fact)
				}
				c.Transition(rule.To, "")
				return
			}
		}
	}
}

func (c *Controller) applyPhraseRules(from, text string) {
	lower := strings.ToLower(text)
	for _, rule := range c.cfg.PhraseRules {
		if rule.From == from && strings.Contains(lower, strings.ToLower(rule.Phrase)) {
			c.Transition(rule.To, "")
			return
		}
	}
}

func (c *Controller) applyFactRules(from string) {
	for _, rule := range c.cfg.FactRules {
		if rule.From == from && c.state.Facts[rule.Fact] != "" {
			c.Transition(rule.To, c.state.Facts[rule.Fact])
			return
		}
	}
}

// applyEffects mutates session state from parsed marker effects.
// Damage clamps health at zero and marks the session terminal; healing
// is unclamped.
func (c *Controller) applyEffects(effects []marker.Effect) {
	for _, effect := range effects {
		switch e := effect.(type) {
		case marker.Handoff:
			if c.cfg.OnHandoff != nil {
				c.cfg.OnHandoff(c.state, e)
			} else if e.Payload != "" {
				c.state.Facts[e.Target] = e.Payload
			}
			c.Transition(e.Target, e.Payload)

		case marker.Mutate:
			if e.Field != "health" {
				log.Warn("mutation for unknown field", zap.String("field", e.Field))
				continue
			}
			c.state.Health += e.Delta
			if c.state.Health <= 0 {
				c.state.Health = 0
				c.state.GameOver = true
			}

		case marker.Append:
			if e.Field != "inventory" {
				log.Warn("append for unknown field", zap.String("field", e.Field))
				continue
			}
			c.state.Inventory = append(c.state.Inventory, e.Value)

		case marker.SetFact:
			c.state.Facts[e.Key] = e.Value
		}
	}
}
