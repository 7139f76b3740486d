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

	"github.com/muesli/termenv"
)

var output = termenv.NewOutput(os.Stdout)

func colorize(s string, color termenv.ANSIColor) string {
	return output.String(s).Foreground(color).String()
}

func cyan(s string) string   { return colorize(s, termenv.ANSICyan) }
func green(s string) string  { return colorize(s, termenv.ANSIGreen) }
func yellow(s string) string { return colorize(s, termenv.ANSIYellow) }
func red(s string) string    { return colorize(s, termenv.ANSIRed) }

func bold(s string) string {
	return output.String(s).Bold().String()
}

// readLine prompts and reads one trimmed line. The second return is
// false on EOF.
func readLine(scanner *bufio.Scanner, prompt string) (string, bool) {
	fmt.Print(prompt)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

// isQuit reports whether input asks to end the session.
func isQuit(input string) bool {
	lower := strings.ToLower(input)
	return lower == "exit" || lower == "quit"
}
