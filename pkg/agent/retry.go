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
package agent

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/teradata-labs/troupe/internal/log"
	"github.com/teradata-labs/troupe/pkg/llm"
)

const (
	// DefaultMaxAttempts bounds completion calls per retry cycle.
	DefaultMaxAttempts = 5

	// DefaultBaseDelay is the backoff base. The delay before attempt n
	// (zero-based) is base * 2^n.
	DefaultBaseDelay = 30 * time.Second
)

// RetryPolicy retries completion calls with exponential backoff.
//
// Only transient failures (rate limits, quota exhaustion, provider
// overload) are retried; permanent failures such as invalid
// credentials fail immediately. The backoff sleep honors context
// cancellation.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryPolicy returns the standard policy: 5 attempts with a
// 30 second backoff base.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
	}
}

// Execute runs op until it succeeds, fails permanently, or the attempt
// budget is spent. The returned error wraps the last failure.
func (p RetryPolicy) Execute(ctx context.Context, op func(context.Context) (*llm.Response, error)) (*llm.Response, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := op(ctx)
		if err == nil {
			if attempt > 0 {
				log.Info("completion retry succeeded", zap.Int("attempt", attempt+1))
			}
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, fmt.Errorf("completion call failed (attempt %d/%d): %w", attempt+1, maxAttempts, err)
		}

		if !llm.IsTransient(err) {
			return nil, fmt.Errorf("completion call failed permanently: %w", err)
		}

		if attempt == maxAttempts-1 {
			break
		}

		delay := p.BaseDelay * (1 << attempt)
		log.Warn("transient completion failure, backing off",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", maxAttempts),
			zap.Duration("delay", delay),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("completion call failed (attempt %d/%d): %w", attempt+1, maxAttempts, ctx.Err())
		case <-time.After(delay):
		}
	}

	log.Error("completion retries exhausted",
		zap.Int("max_attempts", maxAttempts),
		zap.Error(lastErr))
	return nil, fmt.Errorf("completion call failed after %d attempts: %w", maxAttempts, lastErr)
}
