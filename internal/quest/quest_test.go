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
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teradata-labs/troupe/pkg/llm"
	"github.com/teradata-labs/troupe/pkg/props"
)

type scriptedProvider struct {
	responses []*llm.Response
	calls     int
}

func (s *scriptedProvider) Chat(ctx context.Context, messages []llm.Message, tools []props.Tool) (*llm.Response, error) {
	idx := s.calls
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.calls++
	return s.responses[idx], nil
}

func (s *scriptedProvider) Name() string  { return "scripted" }
func (s *scriptedProvider) Model() string { return "scripted-model" }

func TestDiceTool_RollsWithinRange(t *testing.T) {
	dice := NewDiceTool(rand.New(rand.NewSource(1)))

	result, err := dice.Execute(context.Background(), map[string]interface{}{
		"sides": float64(20),
		"count": float64(3),
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	text, ok := result.Data.(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(text, "Dice rolls: ["))
	assert.Contains(t, text, "Total:")
}

func TestDiceTool_Defaults(t *testing.T) {
	dice := NewDiceTool(rand.New(rand.NewSource(1)))

	result, err := dice.Execute(context.Background(), map[string]interface{}{})
	require.NoError(t, err)
	require.True(t, result.Success)

	text := result.Data.(string)
	// One die, six sides: a single result between 1 and 6.
	assert.Regexp(t, `^Dice rolls: \[[1-6]\] \(Total: [1-6]\)$`, text)
}

func TestEventTool_PicksFromCatalog(t *testing.T) {
	event, err := NewEventTool(rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	result, err := event.Execute(context.Background(), map[string]interface{}{})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Contains(t, event.events, result.Data.(string))
}

func TestGame_InitialState(t *testing.T) {
	game, err := New(&scriptedProvider{responses: []*llm.Response{{Content: "hello"}}})
	require.NoError(t, err)

	assert.Equal(t, StartingHealth, game.State().Health)
	assert.Equal(t, StartingLocation, game.State().Facts["location"])
	assert.Equal(t, "Narrator", game.Speaker())
	assert.False(t, game.Over())
}

func TestGame_CombatFlow(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{
		{Content: "You step into the gloom. A goblin leaps out!\nHANDOFF_MONSTER: Goblin"},
		{Content: "The goblin's blade bites deep.\nDAMAGE_PLAYER: 30"},
		{Content: "With a final blow the goblin falls.\nHANDOFF_NARRATOR"},
	}}

	game, err := New(provider)
	require.NoError(t, err)

	display, err := game.Begin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "You step into the gloom. A goblin leaps out!", display)
	assert.Equal(t, "Monster", game.Speaker())
	assert.Contains(t, game.Status(), "Combat with: Goblin")

	_, err = game.Turn(context.Background(), "I swing my sword")
	require.NoError(t, err)
	assert.Equal(t, 70, game.State().Health)
	assert.False(t, game.Over())

	_, err = game.Turn(context.Background(), "finish it")
	require.NoError(t, err)
	assert.Equal(t, "Narrator", game.Speaker())
	assert.NotContains(t, game.Status(), "Combat with")
}

func TestGame_DefeatEndsRun(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{
		{Content: "The ogre's club crushes you.\nDAMAGE_PLAYER: 150"},
	}}

	game, err := New(provider)
	require.NoError(t, err)

	_, err = game.Turn(context.Background(), "charge the ogre")
	require.NoError(t, err)
	assert.Equal(t, 0, game.State().Health)
	assert.True(t, game.Over())
}

func TestGame_ItemDiscovery(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{
		{Content: "Something glints in the moss.\nHANDOFF_ITEM: Ancient Key"},
		{Content: "You pocket the key.\nADD_ITEM: Ancient Key\nHANDOFF_NARRATOR"},
	}}

	game, err := New(provider)
	require.NoError(t, err)

	_, err = game.Turn(context.Background(), "search the clearing")
	require.NoError(t, err)
	assert.Equal(t, "Item", game.Speaker())
	assert.Contains(t, game.Status(), "Discovered: Ancient Key")

	_, err = game.Turn(context.Background(), "take it")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ancient Key"}, game.State().Inventory)
	assert.Equal(t, "Narrator", game.Speaker())
}

func TestRenderContext_PerPerformer(t *testing.T) {
	game, err := New(&scriptedProvider{responses: []*llm.Response{{Content: "x"}}})
	require.NoError(t, err)

	state := game.State()
	state.Facts["last_action"] = "look around"
	summary := renderContext(state)
	assert.Contains(t, summary, "Location: Forest Entrance")
	assert.Contains(t, summary, "Health: 100 HP")
	assert.Contains(t, summary, "Inventory: Empty")
	assert.Contains(t, summary, "Last Action: look around")

	state.Agent = "monster"
	state.Facts["monster"] = "Goblin"
	summary = renderContext(state)
	assert.Contains(t, summary, "Combat with: Goblin")
	assert.Contains(t, summary, "Player Health: 100 HP")
}
