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
	"os/exec"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExecutionContext is the environment a leaf action or Condition is
// evaluated under. It is the same shape DispatchContext already carries
// (§4.3's ctx = {velocity?, current_mode, now, host_state}).
type ExecutionContext = DispatchContext

// OutcomeKind classifies an ExecutionOutcome.
type OutcomeKind int

const (
	Completed OutcomeKind = iota
	Failed
	Detached
)

// DetachedHandle identifies a long-running action that was handed off and
// whose outcome does not block the caller.
type DetachedHandle struct {
	ID uuid.UUID
}

// ExecutionOutcome is what an Execute call reports; the mapping engine
// never retries on Failed, it only observes it (metrics + log).
type ExecutionOutcome struct {
	Kind   OutcomeKind
	Reason string
	Handle DetachedHandle
}

func completedOutcome() ExecutionOutcome { return ExecutionOutcome{Kind: Completed} }
func failedOutcome(reason string) ExecutionOutcome {
	return ExecutionOutcome{Kind: Failed, Reason: reason}
}
func detachedOutcome(h DetachedHandle) ExecutionOutcome {
	return ExecutionOutcome{Kind: Detached, Handle: h}
}

// LeafRunner executes the platform-specific leaf actions the core itself
// has no business performing: synthesizing keystrokes, typing text,
// clicking the mouse, launching an application by adapter-resolved target,
// and driving host volume. A concrete implementation is injected per
// platform; the core stays free of OS calls for these (Design Note:
// "Platform-specific key/button types → logical table").
type LeafRunner interface {
	Keystroke(ctx ExecutionContext, a Keystroke) ExecutionOutcome
	Text(ctx ExecutionContext, a Text) ExecutionOutcome
	MouseClick(ctx ExecutionContext, a MouseClick) ExecutionOutcome
	Launch(ctx ExecutionContext, a Launch) ExecutionOutcome
	VolumeControl(ctx ExecutionContext, a VolumeControl) ExecutionOutcome
}

// Executor runs Actions: composite actions (Sequence, Delay, Repeat,
// Conditional) are composed here; leaf actions are delegated to a
// LeafRunner, except Shell, which the core runs itself so that the
// no-shell-interpreter guarantee never depends on a platform adapter
// honoring it. The executor is non-reentrant from the same goroutine but
// expects to be invoked from the single processor thread; it spawns
// detached work of its own for long-running leaves.
type Executor struct {
	leaf    LeafRunner
	setMode func(string)
	logger  *zap.Logger
}

// NewExecutor builds an Executor. setMode is called for a ModeChange
// action reached during execution (e.g. nested in a Sequence); it is
// typically MappingEngine.SetMode. logger defaults to a no-op logger.
func NewExecutor(leaf LeafRunner, setMode func(string), logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{leaf: leaf, setMode: setMode, logger: logger}
}

// Execute runs a (possibly composite) Action to completion, recursing into
// Sequence/Repeat/Conditional and suspending cooperatively at Delay and
// between Repeat iterations.
func (ex *Executor) Execute(a Action, ctx ExecutionContext) ExecutionOutcome {
	switch act := a.(type) {
	case Keystroke:
		return ex.leaf.Keystroke(ctx, act)
	case Text:
		return ex.leaf.Text(ctx, act)
	case MouseClick:
		return ex.leaf.MouseClick(ctx, act)
	case Launch:
		return ex.leaf.Launch(ctx, act)
	case VolumeControl:
		return ex.leaf.VolumeControl(ctx, act)
	case Shell:
		return ex.executeShell(act)
	case ModeChange:
		if ex.setMode != nil {
			ex.setMode(act.Target)
		}
		return completedOutcome()
	case Sequence:
		return ex.executeSequence(act, ctx)
	case Delay:
		if act.Ms > 0 {
			time.Sleep(time.Duration(act.Ms) * time.Millisecond)
		}
		return completedOutcome()
	case Repeat:
		return ex.executeRepeat(act, ctx)
	case Conditional:
		return ex.executeConditional(act, ctx)
	default:
		return failedOutcome("core: unknown action type")
	}
}

func (ex *Executor) executeSequence(s Sequence, ctx ExecutionContext) ExecutionOutcome {
	outcome := completedOutcome()
	for _, step := range s.Steps {
		if step.Action == nil {
			continue
		}
		outcome = ex.Execute(step.Action, ctx)
		if outcome.Kind == Failed && !step.NonFatal {
			return outcome
		}
	}
	return outcome
}

func (ex *Executor) executeRepeat(r Repeat, ctx ExecutionContext) ExecutionOutcome {
	outcome := completedOutcome()
	for i := 0; i < r.Count; i++ {
		if r.Inner != nil {
			outcome = ex.Execute(r.Inner, ctx)
		}
		if i < r.Count-1 && r.GapMs > 0 {
			time.Sleep(time.Duration(r.GapMs) * time.Millisecond)
		}
	}
	return outcome
}

func (ex *Executor) executeConditional(c Conditional, ctx ExecutionContext) ExecutionOutcome {
	when := c.When
	if when == nil {
		when = Always{}
	}
	if when.Evaluate(ctx.conditionContext()) {
		if c.Then == nil {
			return completedOutcome()
		}
		return ex.Execute(c.Then, ctx)
	}
	if c.Else == nil {
		return completedOutcome()
	}
	return ex.Execute(c.Else, ctx)
}

// executeShell tokenizes act.Command (re-checked here defensively even
// though the validator already rejected bad commands at config time) and
// runs program+argv directly via os/exec, which never spawns a shell, and
// hands the run off so the processor is never blocked by it.
func (ex *Executor) executeShell(act Shell) ExecutionOutcome {
	tokens, err := tokenizeShellCommand(act.Command)
	if err != nil {
		return failedOutcome(err.Error())
	}
	handle := DetachedHandle{ID: uuid.New()}
	cmd := exec.Command(tokens[0], tokens[1:]...)
	go func() {
		if err := cmd.Run(); err != nil {
			ex.logger.Warn("shell action failed",
				zap.String("handle", handle.ID.String()),
				zap.Error(err))
		}
	}()
	return detachedOutcome(handle)
}
