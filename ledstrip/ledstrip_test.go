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

package ledstrip

import "testing"

func TestAppendChannelEncodesThreeBytesPerChannel(t *testing.T) {
	out := appendChannel(nil, 0b10110000)
	if len(out) != 3 {
		t.Fatalf("expected 3 encoded bytes per channel, got %d", len(out))
	}
}

func TestAppendChannelAllZeroBits(t *testing.T) {
	zero := appendChannel(nil, 0x00)
	one := appendChannel(nil, 0xFF)
	if len(zero) != 3 || len(one) != 3 {
		t.Fatalf("expected 3 bytes each, got %d and %d", len(zero), len(one))
	}
	// An all-1s channel should encode to strictly more high bits on the
	// wire than an all-0s channel (longer high pulses per WS2812 "1").
	highBits := func(bs []byte) int {
		n := 0
		for _, b := range bs {
			for i := 0; i < 8; i++ {
				if b&(1<<uint(i)) != 0 {
					n++
				}
			}
		}
		return n
	}
	if highBits(one) <= highBits(zero) {
		t.Fatalf("expected 0xFF to produce more high bits than 0x00, got %d vs %d",
			highBits(one), highBits(zero))
	}
}

func TestAppendChannelAppendsToExistingBuffer(t *testing.T) {
	buf := []byte{0xAA}
	out := appendChannel(buf, 0x00)
	if len(out) != 4 || out[0] != 0xAA {
		t.Fatalf("expected to append 3 bytes after the existing prefix, got %v", out)
	}
}
