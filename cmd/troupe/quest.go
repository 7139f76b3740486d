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
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teradata-labs/troupe/internal/quest"
)

// questDefaultModel is used when no model is configured.
const questDefaultModel = "google/gemini-2.0-flash-001"

var questCmd = &cobra.Command{
	Use:   "quest",
	Short: "Play a text adventure run by cooperating narrators",
	Long: `A fantasy adventure where a narrator, a monster, and an item examiner
take turns running the scene. Markers in the generated text move
control between them and update your health and inventory.`,
	RunE: runQuest,
}

func runQuest(cmd *cobra.Command, args []string) error {
	provider, err := buildProvider(questDefaultModel)
	if err != nil {
		return err
	}

	game, err := quest.New(provider)
	if err != nil {
		return fmt.Errorf("failed to start adventure: %w", err)
	}

	fmt.Println(bold(cyan("⚔️  Fantasy Adventure")))
	fmt.Println("Type 'quit' to stop playing.")
	fmt.Println()

	opening, err := game.Begin(cmd.Context())
	if err != nil {
		fmt.Println(red("Error: " + err.Error()))
		return nil
	}
	fmt.Println(yellow(opening))
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		printStatus(game)

		input, ok := readLine(scanner, green(game.Speaker()+" > "))
		if !ok {
			break
		}
		if input == "" {
			continue
		}
		if isQuit(input) {
			fmt.Println("Thanks for playing!")
			return nil
		}

		reply, err := game.Turn(cmd.Context(), input)
		if err != nil {
			fmt.Println(red("Error: " + err.Error()))
			continue
		}
		fmt.Println(yellow(reply))
		fmt.Println()

		if game.Over() {
			fmt.Println(red(bold("Game Over! You have been defeated.")))
			return nil
		}
	}
	return scanner.Err()
}

func printStatus(game *quest.Game) {
	fmt.Println(cyan("=== ADVENTURE STATUS ==="))
	fmt.Println(game.Status())
	fmt.Println(cyan("========================"))
}
