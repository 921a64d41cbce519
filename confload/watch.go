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

package confload

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceWindow coalesces the burst of Write/Create/Rename events an editor's
// save-via-rename produces into a single reload.
const debounceWindow = 150 * time.Millisecond

// Watcher triggers OnChange whenever the watched config file is written.
// Editors that save via rename-into-place (vim, most GUI editors) remove
// the old inode and create a new one at the same path, so Watcher watches
// the containing directory and filters events by basename rather than
// watching the file descriptor directly.
type Watcher struct {
	path     string
	logger   *zap.Logger
	fsw      *fsnotify.Watcher
	OnChange func()
}

// NewWatcher opens an fsnotify watch on the directory containing path.
// Call Run to start delivering OnChange callbacks.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{path: path, logger: logger, fsw: fsw}, nil
}

// Run blocks, delivering a debounced OnChange call for every write/rename
// that lands on the watched path, until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	target := filepath.Base(w.path)
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(debounceWindow, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		case <-fire:
			if w.OnChange != nil {
				w.OnChange()
			}
		}
	}
}

// Close releases the underlying fsnotify watch. Safe to call even if Run
// was never started.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
