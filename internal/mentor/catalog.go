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
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// JobMarket describes the market for one career.
type JobMarket struct {
	Roles  []string `yaml:"roles"`
	Salary string   `yaml:"salary"`
	Demand string   `yaml:"demand"`
}

// Catalog holds the static roadmap and job-market data.
type Catalog struct {
	Roadmaps map[string][]string  `yaml:"roadmaps"`
	Jobs     map[string]JobMarket `yaml:"jobs"`
}

// LoadCatalog parses the embedded catalog.
func LoadCatalog() (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(catalogYAML, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse mentor catalog: %w", err)
	}
	if len(catalog.Roadmaps) == 0 || len(catalog.Jobs) == 0 {
		return nil, fmt.Errorf("mentor catalog is incomplete")
	}
	return &catalog, nil
}

// Roadmap renders the skill roadmap for a career, matched
// case-insensitively.
func (c *Catalog) Roadmap(career string) string {
	normalized := strings.ToLower(career)
	for key, steps := range c.Roadmaps {
		if strings.ToLower(key) == normalized {
			return fmt.Sprintf("📚 %s Skill Roadmap:\n%s", key, strings.Join(steps, "\n"))
		}
	}
	return fmt.Sprintf("⚠️ No roadmap available for %s", career)
}

// Market returns the job-market entry for a career, matched
// case-insensitively, falling back to a generic technology profile.
func (c *Catalog) Market(career string) (string, JobMarket) {
	normalized := strings.ToLower(career)
	for key, market := range c.Jobs {
		if strings.ToLower(key) == normalized {
			return key, market
		}
	}
	return "Technology Professional", JobMarket{
		Roles:  []string{"Various technical roles"},
		Salary: "$70k-$160k (varies by experience)",
		Demand: "Strong in technology sector",
	}
}
