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
// Package marker parses control markers embedded in generated text.
//
// Performers signal control flow by emitting literal marker substrings
// in their output ("HANDOFF_MONSTER: Goblin", "DAMAGE_PLAYER: 15").
// The parser strips markers from the display text and converts them
// into typed effects, so raw substring tests never leak past this
// boundary. The wire-level marker format is kept as-is because it is
// what the model is instructed to produce.
package marker

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/teradata-labs/troupe/internal/log"
)

// Effect is a typed control effect extracted from generated text.
type Effect interface {
	isEffect()
}

// Handoff transfers control to another performer. Payload carries the
// optional marker payload (monster name, item name).
type Handoff struct {
	Target  string
	Payload string
}

// Mutate adjusts a numeric state field by a signed delta.
type Mutate struct {
	Field string
	Delta int
}

// Append adds a value to a list state field.
type Append struct {
	Field string
	Value string
}

// SetFact records a scalar domain fact without triggering a transition.
type SetFact struct {
	Key   string
	Value string
}

func (Handoff) isEffect() {}
func (Mutate) isEffect()  {}
func (Append) isEffect()  {}
func (SetFact) isEffect() {}

// Rule recognizes one marker family.
type Rule struct {
	// Marker is the literal substring, including any trailing colon.
	Marker string

	// Payload indicates the marker carries a payload terminated by
	// the next line break (or end of text).
	Payload bool

	// Build converts the trimmed payload into an effect. A non-nil
	// error means the payload is malformed; the effect is skipped and
	// the anomaly logged, but the marker is still stripped from the
	// display text.
	Build func(payload string) (Effect, error)
}

// HandoffTo returns a builder producing a Handoff to target.
func HandoffTo(target string) func(string) (Effect, error) {
	return func(payload string) (Effect, error) {
		return Handoff{Target: target, Payload: payload}, nil
	}
}

// MutateBy returns a builder producing a Mutate of field by sign*payload.
// The payload must be a decimal integer.
func MutateBy(field string, sign int) func(string) (Effect, error) {
	return func(payload string) (Effect, error) {
		n, err := strconv.Atoi(payload)
		if err != nil {
			return nil, err
		}
		return Mutate{Field: field, Delta: sign * n}, nil
	}
}

// AppendTo returns a builder producing an Append to field.
func AppendTo(field string) func(string) (Effect, error) {
	return func(payload string) (Effect, error) {
		return Append{Field: field, Value: payload}, nil
	}
}

// SetFactKey returns a builder producing a SetFact for key.
func SetFactKey(key string) func(string) (Effect, error) {
	return func(payload string) (Effect, error) {
		return SetFact{Key: key, Value: payload}, nil
	}
}

// Ruleset is an ordered set of marker rules.
type Ruleset []Rule

type match struct {
	index   int
	payload string
	rule    *Rule
}

// Parse scans text for recognized markers. It returns the display text
// with markers stripped and the typed effects in order of occurrence.
//
// Each rule fires at most once, on its first occurrence. The display
// text is the trimmed prefix before the earliest marker. Text with no
// recognized marker passes through unchanged.
func (rs Ruleset) Parse(text string) (string, []Effect) {
	var matches []match
	first := len(text)

	for i := range rs {
		rule := &rs[i]
		idx := strings.Index(text, rule.Marker)
		if idx < 0 {
			continue
		}

		payload := ""
		if rule.Payload {
			rest := text[idx+len(rule.Marker):]
			if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
				rest = rest[:nl]
			}
			payload = strings.TrimSpace(rest)
		}

		matches = append(matches, match{index: idx, payload: payload, rule: rule})
		if idx < first {
			first = idx
		}
	}

	if len(matches) == 0 {
		return text, nil
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].index < matches[j].index
	})

	var effects []Effect
	for _, m := range matches {
		effect, err := m.rule.Build(m.payload)
		if err != nil {
			log.Warn("malformed marker payload",
				zap.String("marker", m.rule.Marker),
				zap.String("payload", m.payload),
				zap.Error(err))
			continue
		}
		effects = append(effects, effect)
	}

	return strings.TrimSpace(text[:first]), effects
}
