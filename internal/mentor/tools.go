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
	"fmt"
	"strings"

	"github.com/teradata-labs/troupe/pkg/props"
)

// RoadmapTool returns the skill roadmap for a career.
type RoadmapTool struct {
	catalog *Catalog
}

// NewRoadmapTool creates a roadmap tool over the catalog.
func NewRoadmapTool(catalog *Catalog) *RoadmapTool {
	return &RoadmapTool{catalog: catalog}
}

func (r *RoadmapTool) Name() string        { return "get_career_roadmap" }
func (r *RoadmapTool) Description() string { return "Returns the skill roadmap for a specific career" }

func (r *RoadmapTool) InputSchema() *props.JSONSchema {
	return props.NewObjectSchema("Roadmap lookup parameters", map[string]*props.JSONSchema{
		"career": props.NewStringSchema("Career to look up"),
	}, []string{"career"})
}

func (r *RoadmapTool) Execute(ctx context.Context, params map[string]interface{}) (*props.Result, error) {
	career, ok := params["career"].(string)
	if !ok || career == "" {
		return &props.Result{
			Success: false,
			Error:   &props.Error{Code: "invalid_arguments", Message: "career parameter is required"},
		}, nil
	}
	return &props.Result{Success: true, Data: r.catalog.Roadmap(career)}, nil
}

var _ props.Tool = (*RoadmapTool)(nil)

// marketSummary renders the job-market report for a career.
func marketSummary(catalog *Catalog, career string) string {
	matched, market := catalog.Market(career)
	return fmt.Sprintf("💼 Job Market for %s:\nCommon Roles: %s\nSalary Range: %s\nMarket Demand: %s\n\nType 'new' to explore another career",
		matched, strings.Join(market.Roles, ", "), market.Salary, market.Demand)
}
