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
// Package quest implements the fantasy adventure scenario: a narrator,
// a monster, and an item spirit trade control of the story through
// markers embedded in their output.
package quest

import (
	"context"
	"fmt"
	"strings"

	"github.com/teradata-labs/troupe/pkg/agent"
	"github.com/teradata-labs/troupe/pkg/llm"
	"github.com/teradata-labs/troupe/pkg/marker"
	"github.com/teradata-labs/troupe/pkg/props"
)

const (
	// StartingHealth is the player's initial hit points.
	StartingHealth = 100

	// StartingLocation is where every adventure begins.
	StartingLocation = "Forest Entrance"
)

const narratorInstructions = "You are the narrator of a fantasy adventure game. Describe the environment, " +
	"progress the story, and respond to player actions. Use tools for game mechanics. When combat starts, " +
	"output exactly: 'HANDOFF_MONSTER: [monster name]'. When an item is discovered, output exactly: " +
	"'HANDOFF_ITEM: [item name]'. To update game state, output exactly: 'UPDATE_LOCATION: [location]', " +
	"'DAMAGE_PLAYER: [amount]', 'HEAL_PLAYER: [amount]', or 'ADD_ITEM: [item name]'."

const monsterInstructions = "You handle combat encounters. Describe monster actions, calculate damage using " +
	"dice rolls, and manage combat mechanics. Apply damage with 'DAMAGE_PLAYER: [amount]'. Hand back to the " +
	"narrator when combat ends by outputting exactly: 'HANDOFF_NARRATOR'. Use the dice roll tool for combat mechanics."

const itemInstructions = "You handle item discovery and inventory management. Describe discovered items and " +
	"add them to the inventory with 'ADD_ITEM: [item name]'. Hand back to the narrator when done by outputting " +
	"exactly: 'HANDOFF_NARRATOR'."

// Rules returns the marker ruleset the performers are instructed to
// emit.
func Rules() marker.Ruleset {
	return marker.Ruleset{
		{Marker: "HANDOFF_MONSTER:", Payload: true, Build: marker.HandoffTo("monster")},
		{Marker: "HANDOFF_ITEM:", Payload: true, Build: marker.HandoffTo("item")},
		{Marker: "HANDOFF_NARRATOR", Payload: false, Build: marker.HandoffTo("narrator")},
		{Marker: "UPDATE_LOCATION:", Payload: true, Build: marker.SetFactKey("location")},
		{Marker: "DAMAGE_PLAYER:", Payload: true, Build: marker.MutateBy("health", -1)},
		{Marker: "HEAL_PLAYER:", Payload: true, Build: marker.MutateBy("health", +1)},
		{Marker: "ADD_ITEM:", Payload: true, Build: marker.AppendTo("inventory")},
	}
}

// Game is one adventure session.
type Game struct {
	ctrl *agent.Controller
}

// New assembles a game around the given provider.
func New(provider llm.Provider) (*Game, error) {
	dice := NewDiceTool(nil)
	event, err := NewEventTool(nil)
	if err != nil {
		return nil, err
	}

	registry := props.NewRegistry()
	registry.RegisterAll(dice, event)
	loop := agent.NewLoop(provider, props.NewExecutor(registry), agent.DefaultRetryPolicy(), agent.DefaultMaxRounds)

	ctrl, err := agent.NewController(agent.Config{
		Provider: provider,
		Loop:     loop,
		Agents: []*agent.Definition{
			{Name: "narrator", Instructions: narratorInstructions, Tools: []props.Tool{dice, event}},
			{Name: "monster", Instructions: monsterInstructions, Tools: []props.Tool{dice}},
			{Name: "item", Instructions: itemInstructions},
		},
		Rules:           Rules(),
		ContextRenderer: renderContext,
		OnHandoff:       applyHandoff,
	})
	if err != nil {
		return nil, err
	}

	state := ctrl.State()
	state.Health = StartingHealth
	state.Facts["location"] = StartingLocation

	return &Game{ctrl: ctrl}, nil
}

// Begin produces the opening narration.
func (g *Game) Begin(ctx context.Context) (string, error) {
	return g.ctrl.HandleInput(ctx, "Begin the adventure")
}

// Turn processes one line of player input.
func (g *Game) Turn(ctx context.Context, input string) (string, error) {
	g.ctrl.State().Facts["last_action"] = input
	return g.ctrl.HandleInput(ctx, input)
}

// Over reports whether the player has been defeated.
func (g *Game) Over() bool {
	return g.ctrl.Terminal()
}

// State exposes the session state for status rendering.
func (g *Game) State() *agent.State {
	return g.ctrl.State()
}

// Speaker returns the display name of the performer currently on
// stage, for the input prompt.
func (g *Game) Speaker() string {
	name := g.ctrl.State().Agent
	if name == "" {
		return "Narrator"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// Status summarizes the adventure state for the status panel.
func (g *Game) Status() string {
	state := g.ctrl.State()

	inventory := "Empty"
	if len(state.Inventory) > 0 {
		inventory = strings.Join(state.Inventory, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Health: %d HP\n", state.Health)
	fmt.Fprintf(&b, "Inventory: %s\n", inventory)
	fmt.Fprintf(&b, "Location: %s", state.Facts["location"])
	if monster := state.Facts["monster"]; monster != "" {
		fmt.Fprintf(&b, "\nCombat with: %s", monster)
	} else if item := state.Facts["item"]; item != "" {
		fmt.Fprintf(&b, "\nDiscovered: %s", item)
	}
	return b.String()
}

// applyHandoff keeps the combat and discovery facts in sync with the
// active performer: entering combat records the monster, returning to
// the narrator clears both.
func applyHandoff(state *agent.State, h marker.Handoff) {
	switch h.Target {
	case "monster", "item":
		state.Facts[h.Target] = h.Payload
	case "narrator":
		delete(state.Facts, "monster")
		delete(state.Facts, "item")
	}
}

// renderContext builds the compact state preamble each performer sees
// ahead of the player's input.
func renderContext(state *agent.State) string {
	inventory := "Empty"
	if len(state.Inventory) > 0 {
		inventory = strings.Join(state.Inventory, ", ")
	}

	switch state.Agent {
	case "monster":
		return fmt.Sprintf("Combat with: %s\nPlayer Health: %d HP\nLast Action: %s",
			state.Facts["monster"], state.Health, state.Facts["last_action"])
	case "item":
		return fmt.Sprintf("Discovered Item: %s\nPlayer Inventory: %s",
			state.Facts["item"], inventory)
	default:
		return fmt.Sprintf("Location: %s\nHealth: %d HP\nInventory: %s\nLast Action: %s",
			state.Facts["location"], state.Health, inventory, state.Facts["last_action"])
	}
}
