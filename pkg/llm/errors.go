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
package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ProviderError is a failure surfaced by a completion provider. It carries
// the HTTP status when one is available so callers can classify without
// scraping message text.
type ProviderError struct {
	// Provider is the provider name (openrouter, anthropic)
	Provider string

	// StatusCode is the HTTP status, 0 for transport-level failures
	StatusCode int

	// Message is the provider's human-readable error text
	Message string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// transientKeywords match quota, rate-limit, and credit exhaustion failures
// in provider error text. Status codes are checked first; the keyword match
// is kept for providers that report capacity errors with a generic status.
var transientKeywords = []string{"quota", "rate", "credit", "overloaded"}

// transientStatus lists HTTP statuses worth retrying: rate limit, payment
// required (OpenRouter credit exhaustion), service overload.
var transientStatus = map[int]bool{
	402: true,
	429: true,
	503: true,
	529: true,
}

// IsTransient reports whether err represents a transient capacity failure
// that a retry with backoff may recover from. Anything else (bad
// credentials, malformed request, transport failure) is permanent.
func IsTransient(err error) bool {
	var perr *ProviderError
	if !errors.As(err, &perr) {
		return false
	}
	if transientStatus[perr.StatusCode] {
		return true
	}
	msg := strings.ToLower(perr.Message)
	for _, kw := range transientKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
