// Copyright 2025 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMode indicates a ModeChange action or a mode-scoped mapping
	// referenced a mode name that is not present in the compiled map. This
	// should only ever be observed as an internal invariant violation: the
	// validator rejects unknown mode references at compile time.
	ErrUnknownMode = errors.New("core: unknown mode")

	// ErrNoLiveMap indicates a dispatch was attempted before any compiled
	// map was ever published.
	ErrNoLiveMap = errors.New("core: no live compiled map")

	// ErrMaxDepthExceeded indicates an Action nested Sequence/Repeat/
	// Conditional values deeper than MaxActionDepth.
	ErrMaxDepthExceeded = errors.New("core: action nesting exceeds maximum depth")

	// ErrEmptyCommand indicates a Shell action's command string contained
	// no tokens once parsed.
	ErrEmptyCommand = errors.New("core: shell command has no tokens")

	// ErrDeniedMetacharacter indicates a Shell action's command string
	// contained a disallowed shell metacharacter sequence.
	ErrDeniedMetacharacter = errors.New("core: shell command contains a denied metacharacter")
)

// ValidationIssue is one structured finding from Validate. Path identifies
// the offending config location (e.g. "modes[1].mappings[3].action"), Kind
// is a short machine-readable category, and Message is human-readable.
type ValidationIssue struct {
	Path    string
	Kind    string
	Message string
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Path, i.Kind, i.Message)
}

// ValidationErrors is returned by Validate when one or more ValidationIssues
// were found. No partial CompiledMap is ever produced alongside it.
type ValidationErrors struct {
	Issues []ValidationIssue
}

func (e *ValidationErrors) Error() string {
	if len(e.Issues) == 1 {
		return "core: invalid config: " + e.Issues[0].String()
	}
	return fmt.Sprintf("core: invalid config: %d issues (first: %s)", len(e.Issues), e.Issues[0].String())
}

func newValidationErrors(issues []ValidationIssue) error {
	if len(issues) == 0 {
		return nil
	}
	return &ValidationErrors{Issues: issues}
}
