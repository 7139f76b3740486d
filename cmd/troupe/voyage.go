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
	"strings"

	"github.com/spf13/cobra"

	"github.com/teradata-labs/troupe/internal/voyage"
)

// voyageDefaultModel is used when no model is configured.
const voyageDefaultModel = "anthropic/claude-3-haiku"

var voyageCmd = &cobra.Command{
	Use:   "voyage [preferences...]",
	Short: "Generate a travel plan from your preferences",
	Long: `Describe the trip you want and three specialists take over in
sequence: one picks the destination, one books flights and hotels,
and one plans attractions and dining. The combined itinerary is
printed when they finish.

Preferences can be given as arguments or typed at the prompt.`,
	RunE: runVoyage,
}

func runVoyage(cmd *cobra.Command, args []string) error {
	provider, err := buildProvider(voyageDefaultModel)
	if err != nil {
		return err
	}

	input := strings.TrimSpace(strings.Join(args, " "))
	if input == "" {
		fmt.Println(bold(cyan("✈️  Travel Designer")))
		scanner := bufio.NewScanner(os.Stdin)
		input, _ = readLine(scanner, green("Where would you like to go? > "))
		if input == "" {
			return fmt.Errorf("no travel preferences given")
		}
	}

	fmt.Println()
	fmt.Println(yellow("Planning your trip, this can take a minute..."))
	fmt.Println()

	designer := voyage.New(provider)
	fmt.Println(designer.Plan(cmd.Context(), input))
	return nil
}
