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

// Package hoststate implements core.HostStateProvider by scanning the host
// process table with github.com/mitchellh/go-ps.
package hoststate

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	ps "github.com/mitchellh/go-ps"
)

// cacheWindow bounds how often Processes rescans the process table; an
// AppRunning/AppFrontmost condition can be evaluated on every dispatch, and
// the process table rarely changes between two presses a few ms apart.
const cacheWindow = 500 * time.Millisecond

// Provider answers core.HostStateProvider queries against the live process
// table. The zero value is ready to use.
type Provider struct {
	mu        sync.Mutex
	cachedAt  time.Time
	snapshot  []ps.Process
	Processes func() ([]ps.Process, error) // overridable for tests
}

// New returns a Provider backed by ps.Processes.
func New() *Provider {
	return &Provider{Processes: ps.Processes}
}

func (p *Provider) list() []ps.Process {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.cachedAt) < cacheWindow && p.snapshot != nil {
		return p.snapshot
	}
	fn := p.Processes
	if fn == nil {
		fn = ps.Processes
	}
	procs, err := fn()
	if err != nil {
		return p.snapshot
	}
	p.snapshot, p.cachedAt = procs, time.Now()
	return p.snapshot
}

// IsAppRunning reports whether any process's executable basename matches
// name, case-insensitively and ignoring a platform executable suffix.
func (p *Provider) IsAppRunning(name string) bool {
	want := normalizeExeName(name)
	for _, proc := range p.list() {
		if normalizeExeName(proc.Executable()) == want {
			return true
		}
	}
	return false
}

// IsAppFrontmost reports whether name currently has input focus. go-ps
// exposes no window-focus API, so this is only ever as good as
// IsAppRunning: a platform adapter wanting true focus tracking should wrap
// Provider and override this method.
func (p *Provider) IsAppFrontmost(name string) bool {
	return p.IsAppRunning(name)
}

func normalizeExeName(s string) string {
	s = filepath.Base(s)
	s = strings.TrimSuffix(strings.ToLower(s), ".exe")
	return s
}
