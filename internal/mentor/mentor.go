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
// Package mentor implements the career mentor scenario: a career
// recommender, a skill coach, and a job-market advisor. All three
// roles answer from local catalogs; no completion provider is
// involved.
package mentor

import (
	"context"
	"fmt"
	"strings"

	"github.com/teradata-labs/troupe/pkg/agent"
)

// interestGroup maps interest keywords to recommended careers. Groups
// are checked in order; the last group is the fallback.
type interestGroup struct {
	keywords []string
	careers  []string
}

var interestGroups = []interestGroup{
	{keywords: []string{"data", "stat", "analy"}, careers: []string{"Data Scientist", "Data Analyst"}},
	{keywords: []string{"design", "ui", "ux", "interface"}, careers: []string{"UX Designer", "Product Designer"}},
	{keywords: []string{"security", "cyber", "hack"}, careers: []string{"Cybersecurity Analyst", "Security Engineer"}},
	{keywords: []string{"web", "front", "back"}, careers: []string{"Web Developer", "Frontend Developer", "Backend Developer"}},
}

var fallbackCareers = []string{"Software Engineer", "Full Stack Developer"}

// recommend maps free-text interests to a career shortlist.
func recommend(interests string) []string {
	lower := strings.ToLower(interests)
	for _, group := range interestGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.careers
			}
		}
	}
	return fallbackCareers
}

// Mentor is one career mentoring session.
type Mentor struct {
	ctrl    *agent.Controller
	catalog *Catalog
}

// New assembles a mentoring session from the embedded catalogs.
func New() (*Mentor, error) {
	catalog, err := LoadCatalog()
	if err != nil {
		return nil, err
	}
	roadmap := NewRoadmapTool(catalog)

	career := &agent.Definition{
		Name:         "career",
		Instructions: "You recommend careers based on the user's interests.",
		Respond: func(ctx context.Context, state *agent.State, input string) (string, error) {
			careers := recommend(input)
			state.Options = careers
			state.AwaitingSelection = true

			var b strings.Builder
			b.WriteString("🔍 Based on your interests, I recommend:\n")
			for _, c := range careers {
				fmt.Fprintf(&b, "- %s\n", c)
			}
			b.WriteString("\nPlease type the name of a career to explore further")
			return b.String(), nil
		},
	}

	skill := &agent.Definition{
		Name:         "skill",
		Instructions: "You show the skill roadmap for the selected career.",
		Respond: func(ctx context.Context, state *agent.State, input string) (string, error) {
			result, err := roadmap.Execute(ctx, map[string]interface{}{"career": state.Facts["career"]})
			if err != nil {
				return "", err
			}
			text, _ := result.Data.(string)
			if !result.Success {
				text = result.Error.Message
			}
			return text + "\n\nType 'jobs' to see career opportunities", nil
		},
	}

	job := &agent.Definition{
		Name:         "job",
		Instructions: "You provide job market insights for the selected career.",
		Respond: func(ctx context.Context, state *agent.State, input string) (string, error) {
			return marketSummary(catalog, state.Facts["career"]), nil
		},
	}

	ctrl, err := agent.NewController(agent.Config{
		Agents: []*agent.Definition{career, skill, job},
		KeywordRules: []agent.KeywordRule{
			{From: "skill", Keywords: []string{"job", "opportunit"}, To: "job"},
			{From: "job", Keywords: []string{"new"}, To: "career", ClearFacts: []string{"career"}},
		},
		Selection: &agent.Selection{
			Fact: "career",
			To:   "skill",
			Reprompt: func(options []string) string {
				var b strings.Builder
				b.WriteString("⚠️ Please select a career from the recommendations:\n")
				for _, c := range options {
					fmt.Fprintf(&b, "- %s\n", c)
				}
				b.WriteString("\nOr describe your interests for new suggestions.")
				return b.String()
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return &Mentor{ctrl: ctrl, catalog: catalog}, nil
}

// Turn processes one line of user input.
func (m *Mentor) Turn(ctx context.Context, input string) (string, error) {
	return m.ctrl.HandleInput(ctx, input)
}

// Career returns the currently selected career, if any.
func (m *Mentor) Career() string {
	return m.ctrl.State().Facts["career"]
}
