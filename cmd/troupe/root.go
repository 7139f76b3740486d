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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/teradata-labs/troupe/internal/version"
)

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:     "troupe",
	Short:   "Troupe - marker-driven multi-agent dialogue scenarios",
	Long: `Troupe runs small casts of cooperating conversational roles that hand
control to one another through markers embedded in generated text.

Scenarios:
  mentor  Career mentor (local catalogs, no API key needed)
  quest   Fantasy adventure game (OpenRouter or Anthropic)
  voyage  Travel designer pipeline (OpenRouter or Anthropic)`,
	Version: version.Get(),
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.troupe/troupe.yaml)")

	// LLM flags
	rootCmd.PersistentFlags().String("llm-provider", "openrouter", "LLM provider (openrouter, anthropic)")
	rootCmd.PersistentFlags().String("model", "", "model identifier (defaults per scenario)")
	rootCmd.PersistentFlags().String("api-key", "", "API key (or use env/keyring)")
	rootCmd.PersistentFlags().Int("max-tokens", 1024, "maximum tokens per request")

	_ = viper.BindPFlag("llm.provider", rootCmd.PersistentFlags().Lookup("llm-provider"))
	_ = viper.BindPFlag("llm.model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("llm.api_key", rootCmd.PersistentFlags().Lookup("api-key"))
	_ = viper.BindPFlag("llm.max_tokens", rootCmd.PersistentFlags().Lookup("max-tokens"))

	rootCmd.AddCommand(mentorCmd)
	rootCmd.AddCommand(questCmd)
	rootCmd.AddCommand(voyageCmd)
}

// initConfig reads in the optional config file and environment.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.troupe")
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("troupe")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TROUPE")
	viper.AutomaticEnv()

	// Missing config file is fine; flags and env cover everything.
	_ = viper.ReadInConfig()
}
