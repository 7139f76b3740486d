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
	"github.com/teradata-labs/troupe/pkg/llm"
)

// Transcript is the ordered message history for one session.
//
// Invariant: the first message is always the active performer's system
// instructions, and it is the only system message. A handoff replaces
// it in place rather than appending, deliberately discarding the prior
// performer's preamble.
type Transcript struct {
	messages []llm.Message
}

// NewTranscript creates a transcript seeded with system instructions.
func NewTranscript(instructions string) *Transcript {
	return &Transcript{
		messages: []llm.Message{
			{Role: llm.RoleSystem, Content: instructions},
		},
	}
}

// Append adds a message to the transcript. System messages are not
// accepted here; use Handoff to swap instructions.
func (t *Transcript) Append(msg llm.Message) {
	if msg.Role == llm.RoleSystem {
		return
	}
	t.messages = append(t.messages, msg)
}

// Handoff installs the next performer's instructions in place of the
// current system message and appends note as a user message, so the
// model sees why the voice changed.
func (t *Transcript) Handoff(instructions, note string) {
	t.messages[0] = llm.Message{Role: llm.RoleSystem, Content: instructions}
	if note != "" {
		t.messages = append(t.messages, llm.Message{Role: llm.RoleUser, Content: note})
	}
}

// Messages returns a copy of the message history.
func (t *Transcript) Messages() []llm.Message {
	out := make([]llm.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.messages)
}
