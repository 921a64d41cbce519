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

import "time"

// HostStateProvider answers questions about host process state that the
// core has no business knowing how to ask on its own (Non-goal: talking to
// the OS). A concrete implementation is injected by the caller; see the
// hoststate package for one backed by github.com/mitchellh/go-ps.
type HostStateProvider interface {
	IsAppRunning(name string) bool
	IsAppFrontmost(name string) bool
}

// ConditionContext is the evaluation environment for a Condition.
type ConditionContext struct {
	CurrentMode string
	Velocity    *uint8
	WallClock   time.Time
	Host        HostStateProvider
}

// Condition is a predicate evaluated when a Conditional action fires.
type Condition interface {
	Evaluate(ctx ConditionContext) bool
	isCondition()
}

type conditionBase struct{}

func (conditionBase) isCondition() {}

// Always never blocks a Conditional's "then" branch.
type Always struct{ conditionBase }

func (Always) Evaluate(ConditionContext) bool { return true }

// Never always selects a Conditional's "else" branch, if any.
type Never struct{ conditionBase }

func (Never) Evaluate(ConditionContext) bool { return false }

// TimeRange matches wall-clock HH:MM values between Start and End,
// inclusive of Start and exclusive of End. If End < Start the range is
// understood to cross midnight (e.g. 22:00..06:00).
type TimeRange struct {
	conditionBase
	Start, End string // HH:MM
}

func (r TimeRange) Evaluate(ctx ConditionContext) bool {
	start, sok := parseHHMM(r.Start)
	end, eok := parseHHMM(r.End)
	if !sok || !eok {
		return false
	}
	now := ctx.WallClock.Hour()*60 + ctx.WallClock.Minute()
	if end < start {
		return now >= start || now < end
	}
	return now >= start && now < end
}

func parseHHMM(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' ||
		s[3] < '0' || s[3] > '9' || s[4] < '0' || s[4] > '9' {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// DayOfWeek matches the current wall-clock weekday against Days.
type DayOfWeek struct {
	conditionBase
	Days []time.Weekday
}

func (d DayOfWeek) Evaluate(ctx ConditionContext) bool {
	today := ctx.WallClock.Weekday()
	for _, day := range d.Days {
		if day == today {
			return true
		}
	}
	return false
}

// AppRunning matches when a named application is running anywhere, per the
// injected HostStateProvider.
type AppRunning struct {
	conditionBase
	Name string
}

func (c AppRunning) Evaluate(ctx ConditionContext) bool {
	return ctx.Host != nil && ctx.Host.IsAppRunning(c.Name)
}

// AppFrontmost matches when a named application currently has input focus.
type AppFrontmost struct {
	conditionBase
	Name string
}

func (c AppFrontmost) Evaluate(ctx ConditionContext) bool {
	return ctx.Host != nil && ctx.Host.IsAppFrontmost(c.Name)
}

// ModeIs matches the current dispatch-time mode.
type ModeIs struct {
	conditionBase
	Name string
}

func (c ModeIs) Evaluate(ctx ConditionContext) bool {
	return ctx.CurrentMode == c.Name
}

// And matches when every nested Condition matches. An empty And matches.
type And struct {
	conditionBase
	Conditions []Condition
}

func (c And) Evaluate(ctx ConditionContext) bool {
	for _, sub := range c.Conditions {
		if !sub.Evaluate(ctx) {
			return false
		}
	}
	return true
}

// Or matches when any nested Condition matches. An empty Or does not match.
type Or struct {
	conditionBase
	Conditions []Condition
}

func (c Or) Evaluate(ctx ConditionContext) bool {
	for _, sub := range c.Conditions {
		if sub.Evaluate(ctx) {
			return true
		}
	}
	return false
}

// Not inverts a nested Condition.
type Not struct {
	conditionBase
	Inner Condition
}

func (c Not) Evaluate(ctx ConditionContext) bool {
	return c.Inner == nil || !c.Inner.Evaluate(ctx)
}
