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
package factory

import (
	"fmt"
	"time"

	"github.com/teradata-labs/troupe/pkg/llm"
	"github.com/teradata-labs/troupe/pkg/llm/anthropic"
	"github.com/teradata-labs/troupe/pkg/llm/openrouter"
)

// Config holds configuration for creating LLM providers.
type Config struct {
	// Provider selects the backend: "openrouter" or "anthropic".
	Provider string
	Model    string
	APIKey   string

	// Common settings
	MaxTokens int
	Timeout   time.Duration

	// OpenRouter app attribution headers (optional)
	Referer string
	Title   string
}

// NewProvider creates an LLM provider for the configured provider type.
func NewProvider(config Config) (llm.Provider, error) {
	switch config.Provider {
	case "openrouter", "":
		return openrouter.NewClient(openrouter.Config{
			APIKey:    config.APIKey,
			Model:     config.Model,
			MaxTokens: config.MaxTokens,
			Timeout:   config.Timeout,
			Referer:   config.Referer,
			Title:     config.Title,
		}), nil
	case "anthropic":
		return anthropic.NewClient(anthropic.Config{
			APIKey:    config.APIKey,
			Model:     config.Model,
			MaxTokens: config.MaxTokens,
			Timeout:   config.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s (supported: openrouter, anthropic)", config.Provider)
	}
}
