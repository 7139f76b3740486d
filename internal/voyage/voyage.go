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
// Package voyage implements the travel designer scenario: a
// non-interactive pipeline where a destination specialist, a booking
// specialist, and an exploration specialist each contribute one
// section of a composite travel plan.
package voyage

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/teradata-labs/troupe/pkg/agent"
	"github.com/teradata-labs/troupe/pkg/llm"
	"github.com/teradata-labs/troupe/pkg/props"
)

const destinationInstructions = "Suggest travel destinations based on mood or interests. " +
	"Analyze user preferences and recommend exactly ONE suitable location. " +
	"Your response should ONLY contain the destination name in the format: 'Destination: [CITY NAME]'."

const bookingInstructions = "Handle travel bookings. Use the following defaults: " +
	"Origin city: 'New York', Departure date: 7 days from today, " +
	"Return date: 14 days from today. " +
	"Use tools to find flights and hotels. " +
	"When bookings are complete, say: 'BOOKINGS COMPLETE'."

const exploreInstructions = "Suggest attractions and restaurants. " +
	"Use tools to find points of interest and dining options. " +
	"Provide comprehensive exploration plans."

// Designer runs the travel planning pipeline. Unlike the chat
// scenarios it is not interactive: one preference line in, one
// composite plan out, with handoffs driven internally.
type Designer struct {
	loop        *agent.Loop
	destination *agent.Definition
	booking     *agent.Definition
	explore     *agent.Definition

	fragments []agent.Fragment
	now       func() time.Time
}

// New assembles a travel designer around the given provider.
func New(provider llm.Provider) *Designer {
	tools := []props.Tool{FlightsTool{}, HotelsTool{}, AttractionsTool{}, RestaurantsTool{}}

	registry := props.NewRegistry()
	registry.RegisterAll(tools...)
	loop := agent.NewLoop(provider, props.NewExecutor(registry), agent.DefaultRetryPolicy(), agent.DefaultMaxRounds)

	return &Designer{
		loop:        loop,
		destination: &agent.Definition{Name: "Destination Specialist", Instructions: destinationInstructions},
		booking:     &agent.Definition{Name: "Booking Specialist", Instructions: bookingInstructions, Tools: tools},
		explore:     &agent.Definition{Name: "Exploration Specialist", Instructions: exploreInstructions, Tools: tools},
		now:         time.Now,
	}
}

// Plan turns one line of travel preferences into a composite plan.
// Provider failure produces a formatted error string rather than an
// error; the caller still exits cleanly.
func (d *Designer) Plan(ctx context.Context, input string) string {
	transcript := agent.NewTranscript(d.destination.Instructions)
	transcript.Append(llm.Message{Role: llm.RoleUser, Content: input})

	current := d.destination
	for {
		text, err := d.loop.Run(ctx, transcript, current)
		if err != nil {
			return formatError(err)
		}
		d.fragments = append(d.fragments, agent.Fragment{Agent: current.Name, Text: text})

		switch current {
		case d.destination:
			destination := extractDestination(text)
			if destination == "" {
				return "❌ Error: Could not determine destination"
			}

			today := d.now()
			note := fmt.Sprintf("Destination confirmed: %s\nOrigin: %s\nDeparture Date: %s\nReturn Date: %s\nPlease book flights and hotels.",
				destination, DefaultOrigin, departureDate(today), returnDate(today))
			transcript.Handoff(d.booking.Instructions, note)
			current = d.booking

		case d.booking:
			if !strings.Contains(strings.ToUpper(text), "BOOKINGS COMPLETE") {
				return d.report()
			}
			transcript.Handoff(d.explore.Instructions, "Bookings complete. Please suggest attractions and restaurants.")
			current = d.explore

		default:
			return d.report()
		}
	}
}

// extractDestination pulls the destination out of the specialist's
// reply. The formatted "Destination:" line wins; otherwise a short
// digit-free first line is taken as a location name; otherwise the
// whole reply is used.
func extractDestination(text string) string {
	if text == "" {
		return ""
	}

	if idx := strings.Index(text, "Destination:"); idx >= 0 {
		rest := text[idx+len("Destination:"):]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[:nl]
		}
		if dest := strings.TrimSpace(rest); dest != "" {
			return dest
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(strings.Fields(line)) <= 3 && !strings.ContainsFunc(line, unicode.IsDigit) {
			return line
		}
		break
	}

	return text
}

// report assembles the accumulated fragments into the final plan.
func (d *Designer) report() string {
	if len(d.fragments) == 0 {
		return "No travel plan generated."
	}

	var b strings.Builder
	b.WriteString("✈️ Your Personalized Travel Plan ✈️\n\n")
	for _, frag := range d.fragments {
		fmt.Fprintf(&b, "=== %s ===\n%s\n\n", frag.Agent, frag.Text)
	}
	return b.String()
}

// formatError maps provider failures to the user-facing error string.
func formatError(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "402") || strings.Contains(strings.ToLower(msg), "credit") {
		return "❌ Error: Insufficient credits on OpenRouter. Please upgrade your account at https://openrouter.ai/settings/credits"
	}
	return fmt.Sprintf("❌ Error: %s", msg)
}
