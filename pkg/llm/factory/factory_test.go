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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantName string
		wantErr  bool
	}{
		{
			name:     "openrouter",
			config:   Config{Provider: "openrouter", APIKey: "k"},
			wantName: "openrouter",
		},
		{
			name:     "defaults to openrouter",
			config:   Config{APIKey: "k"},
			wantName: "openrouter",
		},
		{
			name:     "anthropic",
			config:   Config{Provider: "anthropic", APIKey: "k"},
			wantName: "anthropic",
		},
		{
			name:    "unknown provider",
			config:  Config{Provider: "cohere", APIKey: "k"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, provider.Name())
		})
	}
}

func TestNewProvider_ModelOverride(t *testing.T) {
	provider, err := NewProvider(Config{
		Provider: "openrouter",
		APIKey:   "k",
		Model:    "google/gemini-2.0-flash-001",
	})
	require.NoError(t, err)
	assert.Equal(t, "google/gemini-2.0-flash-001", provider.Model())
}
