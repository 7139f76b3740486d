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
// Package agent implements the tool-augmented dialogue orchestration
// core: the transcript, the completion retry policy, the tool-call
// loop, and the session controller that routes control between a
// fixed cast of conversational roles.
package agent

import (
	"context"

	"github.com/teradata-labs/troupe/pkg/props"
)

// Definition describes one performer: a named conversational role with
// fixed instructions and a fixed tool subset. The cast is enumerated
// statically per scenario; performers are never created at runtime.
type Definition struct {
	// Name identifies the performer and is the target of handoffs.
	Name string

	// Instructions is the system preamble installed in the transcript
	// whenever this performer takes the stage.
	Instructions string

	// Tools is the subset of props this performer may use. A performer
	// with no tools is never offered any, so it can never receive tool
	// calls.
	Tools []props.Tool

	// Respond, when set, answers the user locally instead of running
	// the completion loop. Scenarios with fully scripted roles use this
	// to keep their deterministic turns off the provider.
	Respond func(ctx context.Context, state *State, input string) (string, error)
}
