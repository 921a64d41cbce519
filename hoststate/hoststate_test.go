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

package hoststate

import (
	"testing"

	ps "github.com/mitchellh/go-ps"
)

type fakeProcess struct {
	pid, ppid int
	exe       string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return p.ppid }
func (p fakeProcess) Executable() string { return p.exe }

func TestIsAppRunningMatchesCaseAndSuffix(t *testing.T) {
	p := &Provider{
		Processes: func() ([]ps.Process, error) {
			return []ps.Process{
				fakeProcess{pid: 1, exe: "Spotify.exe"},
				fakeProcess{pid: 2, exe: "/usr/bin/firefox"},
			}, nil
		},
	}
	if !p.IsAppRunning("spotify") {
		t.Fatal("expected spotify to be detected regardless of case/.exe suffix")
	}
	if !p.IsAppRunning("firefox") {
		t.Fatal("expected firefox to be detected by basename")
	}
	if p.IsAppRunning("chrome") {
		t.Fatal("did not expect chrome to be running")
	}
}

func TestIsAppFrontmostApproximatesIsAppRunning(t *testing.T) {
	p := &Provider{
		Processes: func() ([]ps.Process, error) {
			return []ps.Process{fakeProcess{pid: 1, exe: "obs"}}, nil
		},
	}
	if !p.IsAppFrontmost("obs") {
		t.Fatal("expected IsAppFrontmost to report true when the process is running")
	}
}
