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

// Command padmapd wires the core's event-processing pipeline to a MIDI
// device, an optional WS2812 LED strip, and a hot-reloadable TOML config,
// demonstrating the full daemon described by spec.md end to end.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/padbridge/core"
	"github.com/padbridge/core/confload"
	"github.com/padbridge/core/hoststate"
	"github.com/padbridge/core/ledstrip"
	"github.com/padbridge/core/midiadapter"
)

func main() {
	configPath := flag.String("config", "padmapd.toml", "path to the mapping config")
	midiDevice := flag.String("midi-device", "/dev/midi1", "raw MIDI device node to read")
	spiBus := flag.String("spi-bus", "", "SPI bus name for an attached WS2812 strip (empty disables LED output)")
	devMode := flag.Bool("dev", false, "use a human-readable development logger")
	flag.Parse()

	logger := newLogger(*devMode)
	defer logger.Sync()

	cfg, err := confload.LoadFile(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	engine := core.NewMappingEngine()
	reloader := core.NewReloadCoordinator(engine, logger)
	if _, err := reloader.Reload(cfg); err != nil {
		logger.Fatal("initial config failed validation", zap.Error(err))
	}

	leaf := &unsupportedLeafRunner{logger: logger}
	executor := core.NewExecutor(leaf, engine.SetMode, logger)
	processor := core.NewProcessor(cfg.AdvancedTimings)
	host := hoststate.New()

	var feedback *core.FeedbackManager
	if *spiBus != "" || hasEnv("PADMAPD_FORCE_LED") {
		elements := elementsFromHints(cfg.DeviceHints)
		strip, err := ledstrip.Open(*spiBus, elements)
		if err != nil {
			logger.Warn("LED strip unavailable, continuing without feedback", zap.Error(err))
		} else {
			defer strip.Close()
			feedback = core.NewFeedbackManager(strip, elements, logger)
			feedback.SetScheme(cfg.LedScheme)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	queue := core.NewEventQueue(core.DefaultQueueCapacity)
	adapter := midiadapter.New(queue, logger)
	go func() {
		f, err := os.Open(*midiDevice)
		if err != nil {
			logger.Fatal("failed to open MIDI device", zap.String("device", *midiDevice), zap.Error(err))
		}
		defer f.Close()
		if err := adapter.Run(ctx, f); err != nil && ctx.Err() == nil {
			logger.Error("MIDI adapter stopped unexpectedly", zap.Error(err))
		}
	}()

	watcher, err := confload.NewWatcher(*configPath, logger)
	if err != nil {
		logger.Warn("config hot-reload disabled", zap.Error(err))
	} else {
		watcher.OnChange = func() {
			next, err := confload.LoadFile(*configPath)
			if err != nil {
				logger.Warn("reload skipped: failed to parse config", zap.Error(err))
				return
			}
			report, _ := reloader.Reload(next)
			logger.Info("config reload",
				zap.Bool("ok", report.Ok),
				zap.Int64("total_ms", report.TotalMs),
				zap.String("grade", string(report.Grade)))
			processor.SetTimings(next.AdvancedTimings)
			if feedback != nil {
				feedback.SetScheme(next.LedScheme)
			}
		}
		go watcher.Run(ctx)
		defer watcher.Close()
	}

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	events := drain(queue)

	logger.Info("padmapd started", zap.String("config", *configPath), zap.String("device", cfg.Device))

	for {
		select {
		case <-ctx.Done():
			logger.Info("padmapd shutting down")
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			dispatchAll(processor.Process(ev, ev.When()), engine, executor, host, feedback, logger)
		case now := <-ticker.C:
			dispatchAll(processor.Tick(now), engine, executor, host, feedback, logger)
			if feedback != nil {
				feedback.Update(now)
			}
		}
	}
}

func dispatchAll(events []core.ProcessedEvent, engine *core.MappingEngine, executor *core.Executor,
	host core.HostStateProvider, feedback *core.FeedbackManager, logger *zap.Logger) {
	for _, ev := range events {
		recordFeedback(ev, feedback)
		now := time.Now()
		ctx := engine.ContextFor(ev, now, host)
		actions := engine.Dispatch(ev, now, host)
		for _, a := range actions {
			outcome := executor.Execute(a, ctx)
			if outcome.Kind == core.Failed {
				logger.Warn("action failed", zap.String("reason", outcome.Reason))
			}
		}
	}
}

func recordFeedback(ev core.ProcessedEvent, feedback *core.FeedbackManager) {
	if feedback == nil {
		return
	}
	switch e := ev.(type) {
	case core.Note:
		feedback.OnPadPress(e.Id, e.VelocityLevel, e.RawVelocity, e.When())
	case core.NoteRelease:
		feedback.OnPadRelease(e.Id, e.When())
	}
}

// drain adapts the blocking EventQueue.Next into a channel usable in a
// select alongside the ticker and shutdown signal, forwarding events until
// the queue is closed.
func drain(q *core.EventQueue) <-chan core.InputEvent {
	ch := make(chan core.InputEvent)
	go func() {
		defer close(ch)
		for {
			ev, ok := q.Next()
			if !ok {
				return
			}
			ch <- ev
		}
	}()
	return ch
}

func elementsFromHints(hints map[string]core.ElementId) []core.ElementId {
	ids := make([]core.ElementId, 0, len(hints))
	for _, id := range hints {
		ids = append(ids, id)
	}
	return ids
}

func hasEnv(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}

func newLogger(dev bool) *zap.Logger {
	if dev {
		l, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return l
	}
	l, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// unsupportedLeafRunner is a placeholder LeafRunner: padmapd's core wiring
// is platform-neutral, but keystroke/text/mouse/launch/volume synthesis is
// not (Non-goal: the core itself never touches an OS input-synthesis API).
// A real deployment swaps this for a platform adapter.
type unsupportedLeafRunner struct {
	logger *zap.Logger
}

func (u *unsupportedLeafRunner) unsupported(method string) core.ExecutionOutcome {
	u.logger.Warn("leaf action has no platform adapter wired", zap.String("method", method))
	return core.ExecutionOutcome{Kind: core.Failed, Reason: "no platform adapter: " + method}
}

func (u *unsupportedLeafRunner) Keystroke(core.ExecutionContext, core.Keystroke) core.ExecutionOutcome {
	return u.unsupported("Keystroke")
}
func (u *unsupportedLeafRunner) Text(core.ExecutionContext, core.Text) core.ExecutionOutcome {
	return u.unsupported("Text")
}
func (u *unsupportedLeafRunner) MouseClick(core.ExecutionContext, core.MouseClick) core.ExecutionOutcome {
	return u.unsupported("MouseClick")
}
func (u *unsupportedLeafRunner) Launch(core.ExecutionContext, core.Launch) core.ExecutionOutcome {
	return u.unsupported("Launch")
}
func (u *unsupportedLeafRunner) VolumeControl(core.ExecutionContext, core.VolumeControl) core.ExecutionOutcome {
	return u.unsupported("VolumeControl")
}
