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
package mentor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend(t *testing.T) {
	tests := []struct {
		name      string
		interests string
		want      []string
	}{
		{
			name:      "data interests",
			interests: "I enjoy problem solving with data",
			want:      []string{"Data Scientist", "Data Analyst"},
		},
		{
			name:      "design interests",
			interests: "I love crafting user interfaces",
			want:      []string{"UX Designer", "Product Designer"},
		},
		{
			name:      "security interests",
			interests: "ethical hacking fascinates me",
			want:      []string{"Cybersecurity Analyst", "Security Engineer"},
		},
		{
			name:      "web interests",
			interests: "frontend and backend web apps",
			want:      []string{"Web Developer", "Frontend Developer", "Backend Developer"},
		},
		{
			name:      "fallback",
			interests: "I like building things",
			want:      []string{"Software Engineer", "Full Stack Developer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recommend(tt.interests))
		})
	}
}

func TestCatalog_Roadmap(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)

	roadmap := catalog.Roadmap("data scientist")
	assert.Contains(t, roadmap, "Data Scientist Skill Roadmap")
	assert.Contains(t, roadmap, "Python, Pandas, NumPy")

	assert.Contains(t, catalog.Roadmap("Basket Weaver"), "No roadmap available for Basket Weaver")
}

func TestCatalog_Market(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)

	name, market := catalog.Market("UX DESIGNER")
	assert.Equal(t, "UX Designer", name)
	assert.Contains(t, market.Roles, "UX Researcher")

	name, market = catalog.Market("Astronaut")
	assert.Equal(t, "Technology Professional", name)
	assert.Equal(t, []string{"Various technical roles"}, market.Roles)
}

func TestRoadmapTool_RequiresCareer(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)

	tool := NewRoadmapTool(catalog)
	result, err := tool.Execute(context.Background(), map[string]interface{}{})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "invalid_arguments", result.Error.Code)
}

func TestMentor_FullJourney(t *testing.T) {
	mentor, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	// Interests produce a recommendation list and enter selection mode.
	out, err := mentor.Turn(ctx, "I enjoy problem solving with data")
	require.NoError(t, err)
	assert.Contains(t, out, "Data Scientist")
	assert.Contains(t, out, "Data Analyst")

	// Unmatched input re-prompts without leaving selection mode.
	out, err = mentor.Turn(ctx, "tell me more")
	require.NoError(t, err)
	assert.Contains(t, out, "Please select a career")
	assert.Empty(t, mentor.Career())

	// A match selects the career and shows its roadmap immediately.
	out, err = mentor.Turn(ctx, "I'll go with data scientist please")
	require.NoError(t, err)
	assert.Equal(t, "Data Scientist", mentor.Career())
	assert.Contains(t, out, "Data Scientist Skill Roadmap")
	assert.Contains(t, out, "Type 'jobs' to see career opportunities")

	// Asking about jobs advances to the job-market advisor.
	out, err = mentor.Turn(ctx, "show me job opportunities")
	require.NoError(t, err)
	assert.Contains(t, out, "Job Market for Data Scientist")
	assert.Contains(t, out, "Machine Learning Engineer")

	// "new" returns to the recommender and clears the career.
	out, err = mentor.Turn(ctx, "I want something new: security")
	require.NoError(t, err)
	assert.Empty(t, mentor.Career())
	assert.Contains(t, out, "Cybersecurity Analyst")
}
