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

	"github.com/teradata-labs/troupe/internal/mentor"
)

var mentorCmd = &cobra.Command{
	Use:   "mentor",
	Short: "Interactive career mentor (no API key needed)",
	Long: `Chat with a three-role career mentor. Describe your interests to get
career recommendations, pick one to see its skill roadmap, then ask
about job opportunities. All answers come from local catalogs.`,
	RunE: runMentor,
}

func runMentor(cmd *cobra.Command, args []string) error {
	session, err := mentor.New()
	if err != nil {
		return fmt.Errorf("failed to start mentor session: %w", err)
	}

	fmt.Println(bold(cyan("🎓 Career Mentor")))
	fmt.Println("Tell me about your interests and I'll suggest careers.")
	fmt.Println("Type 'exit' or 'quit' to leave.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		input, ok := readLine(scanner, green("You > "))
		if !ok {
			break
		}
		if input == "" {
			continue
		}
		if isQuit(input) {
			fmt.Println("Goodbye! 👋")
			return nil
		}

		reply, err := session.Turn(cmd.Context(), input)
		if err != nil {
			fmt.Println(red("Error: " + err.Error()))
			continue
		}
		fmt.Println(yellow("Mentor: ") + reply)
		fmt.Println()
	}
	return scanner.Err()
}
