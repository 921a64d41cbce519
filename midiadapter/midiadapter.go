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

// Package midiadapter reads a raw MIDI byte stream (an ALSA rawmidi device
// node, say) and submits the core.InputEvent algebra it decodes to a
// core.EventQueue. It understands MIDI running status: a status byte may be
// omitted if it matches the previous message on the wire.
package midiadapter

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/padbridge/core"
	"go.uber.org/zap"
)

// Status nibbles, per the MIDI 1.0 channel voice message table.
const (
	statusNoteOff         = 0x8
	statusNoteOn          = 0x9
	statusAftertouch      = 0xA
	statusControlChange   = 0xB
	statusProgramChange   = 0xC
	statusChannelPressure = 0xD
	statusPitchBend       = 0xE
)

// dataLen is the number of data bytes following each status nibble's
// status+channel byte.
var dataLen = map[byte]int{
	statusNoteOff:         2,
	statusNoteOn:          2,
	statusAftertouch:      2,
	statusControlChange:   2,
	statusProgramChange:   1,
	statusChannelPressure: 1,
	statusPitchBend:       2,
}

// Adapter decodes a MIDI byte stream and submits InputEvents to queue.
type Adapter struct {
	queue  *core.EventQueue
	logger *zap.Logger

	runningStatus byte
	haveStatus    bool
}

// New builds an Adapter that submits decoded events to queue. A nil logger
// is replaced with a no-op logger.
func New(queue *core.EventQueue, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{queue: queue, logger: logger}
}

// Run reads from r until ctx is canceled (returning ctx.Err()), r reaches
// io.EOF (returning nil), or r fails (returning that error). It submits
// every decoded event with TrySubmitDroppingOldest, since the read loop must never block on the EventQueue's consumer.
func (a *Adapter) Run(ctx context.Context, r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		if b&0x80 != 0 {
			a.runningStatus = b
			a.haveStatus = true
			continue
		}
		if !a.haveStatus {
			// A data byte arrived with no preceding status byte; the
			// stream is desynchronized. Drop it and resync on the next
			// status byte.
			continue
		}

		status := a.runningStatus
		msgType := status >> 4
		channel := status & 0x0F
		n := dataLen[msgType]
		if n == 0 {
			continue
		}

		data := make([]byte, n)
		data[0] = b
		for i := 1; i < n; i++ {
			nb, err := br.ReadByte()
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
			data[i] = nb
		}

		now := time.Now()
		ev := a.decode(now, msgType, channel, data)
		if ev == nil {
			continue
		}
		if dropped, wasDropped := a.queue.TrySubmitDroppingOldest(ev); wasDropped {
			a.logger.Warn("event queue full, dropped oldest", zap.Any("dropped", dropped))
		}
	}
}

func (a *Adapter) decode(now time.Time, msgType, channel byte, data []byte) core.InputEvent {
	switch msgType {
	case statusNoteOn:
		return core.NewNoteOn(now, core.ElementId(data[0]), int(data[1]), channel)
	case statusNoteOff:
		return core.NewNoteOff(now, core.ElementId(data[0]), channel)
	case statusAftertouch:
		note := core.ElementId(data[0])
		return core.NewAftertouch(now, &note, int(data[1]), channel)
	case statusControlChange:
		return core.NewControlChange(now, core.ElementId(data[0]), int(data[1]), channel)
	case statusChannelPressure:
		return core.NewAftertouch(now, nil, int(data[0]), channel)
	case statusPitchBend:
		raw := int(data[0]) | int(data[1])<<7 // 14-bit, LSB first
		return core.NewPitchBend(now, raw-8192, channel)
	default:
		return nil
	}
}
