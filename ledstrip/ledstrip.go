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

// Package ledstrip implements core.LEDDevice for a WS2812 ("NeoPixel")
// strip driven over SPI. WS2812's one-wire protocol is bit-banged onto the
// SPI MOSI line: each pixel bit is encoded as three SPI bits, a high-low
// ratio the strip reads back as its own 0/1 symbol, which lets a plain SPI
// controller generate WS2812-compliant timing without a dedicated PWM
// peripheral.
package ledstrip

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/padbridge/core"
	"github.com/padbridge/core/ledcolor"
)

// busSpeed is the SPI clock driving the 3-bits-per-pixel-bit encoding; at
// 2.4MHz each encoded bit lasts ~417ns, giving WS2812 its ~1.25us/bit
// envelope once grouped in threes.
const busSpeed = 2400 * physic.KiloHertz

// bytesPerChannel is the encoded SPI byte count per 8-bit color channel (3
// SPI bits per pixel bit).
const bytesPerChannel = 3

// Driver maintains an in-memory pixel buffer for a strip of n elements,
// indexed by position, and flushes it to the bus on every Apply.
type Driver struct {
	mu     sync.Mutex
	port   spi.PortCloser
	conn   spi.Conn
	pixels []ledcolor.RGB
	index  map[core.ElementId]int
}

// Open initializes the host drivers, opens the SPI port named by busName
// (empty string selects the default port, per spireg convention), and
// builds a Driver for the given ElementId-to-strip-position mapping.
func Open(busName string, order []core.ElementId) (*Driver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("ledstrip: host init: %w", err)
	}
	port, err := spireg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("ledstrip: open %q: %w", busName, err)
	}
	conn, err := port.Connect(busSpeed, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("ledstrip: connect: %w", err)
	}

	index := make(map[core.ElementId]int, len(order))
	for i, id := range order {
		index[id] = i
	}
	return &Driver{
		port:   port,
		conn:   conn,
		pixels: make([]ledcolor.RGB, len(order)),
		index:  index,
	}, nil
}

// Close releases the underlying SPI port.
func (d *Driver) Close() error {
	return d.port.Close()
}

// Apply implements core.LEDDevice.
func (d *Driver) Apply(cmd core.FeedbackCommand) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch c := cmd.(type) {
	case core.SetPad:
		i, ok := d.index[c.Id]
		if !ok {
			return nil
		}
		d.pixels[i] = c.Color
	case core.ClearAllPads:
		for i := range d.pixels {
			d.pixels[i] = ledcolor.Off
		}
	default:
		return nil
	}
	return d.flush()
}

// flush encodes the full pixel buffer and writes it to the bus. Caller
// must hold d.mu.
func (d *Driver) flush() error {
	buf := make([]byte, 0, len(d.pixels)*3*bytesPerChannel)
	for _, px := range d.pixels {
		// WS2812 wire order is GRB, not RGB.
		buf = appendChannel(buf, px.G)
		buf = appendChannel(buf, px.R)
		buf = appendChannel(buf, px.B)
	}
	return d.conn.Tx(buf, nil)
}

// appendChannel encodes one 8-bit color channel as 3 SPI bits per pixel
// bit (24 SPI bits, 3 bytes total), high-true for a WS2812 "1" symbol (a long
// high pulse) and low-true for a "0" symbol (a short high pulse).
func appendChannel(buf []byte, channel uint8) []byte {
	var bitBuf uint32
	bits := 0
	emit := func(symbol uint8) {
		bitBuf = bitBuf<<3 | uint32(symbol)
		bits += 3
		for bits >= 8 {
			bits -= 8
			buf = append(buf, byte(bitBuf>>uint(bits)))
		}
	}
	for i := 7; i >= 0; i-- {
		if channel&(1<<uint(i)) != 0 {
			emit(0b110) // "1" symbol: long high, short low
		} else {
			emit(0b100) // "0" symbol: short high, long low
		}
	}
	return buf
}
