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
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"

	"github.com/teradata-labs/troupe/pkg/llm"
	"github.com/teradata-labs/troupe/pkg/llm/factory"
)

const (
	// ServiceName for keyring storage
	ServiceName = "troupe"

	// Referer and AppTitle identify this app to OpenRouter.
	Referer  = "http://localhost:3000"
	AppTitle = "Troupe"
)

// apiKeyEnvVars maps providers to their conventional environment
// variables.
var apiKeyEnvVars = map[string]string{
	"openrouter": "OPENROUTER_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
}

// resolveAPIKey finds the credential for a provider.
// Priority: --api-key flag / config file > environment > keyring.
// A missing credential is a fatal startup error, not a runtime error.
func resolveAPIKey(provider string) (string, error) {
	if key := viper.GetString("llm.api_key"); key != "" {
		return key, nil
	}

	envVar := apiKeyEnvVars[provider]
	if envVar != "" {
		if key := os.Getenv(envVar); key != "" {
			return key, nil
		}
	}

	if key, err := keyring.Get(ServiceName, provider+"_api_key"); err == nil && key != "" {
		return key, nil
	}

	return "", fmt.Errorf("no API key configured for provider %q: set --api-key, the %s environment variable, or store it in the system keyring under service %q",
		provider, envVar, ServiceName)
}

// buildProvider constructs the configured completion provider.
// defaultModel is used when neither flag nor config names a model.
func buildProvider(defaultModel string) (llm.Provider, error) {
	provider := viper.GetString("llm.provider")

	apiKey, err := resolveAPIKey(provider)
	if err != nil {
		return nil, err
	}

	model := viper.GetString("llm.model")
	if model == "" {
		model = defaultModel
	}

	return factory.NewProvider(factory.Config{
		Provider:  provider,
		Model:     model,
		APIKey:    apiKey,
		MaxTokens: viper.GetInt("llm.max_tokens"),
		Referer:   Referer,
		Title:     AppTitle,
	})
}
