// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

import (
	"encoding/binary"
	"math/rand/v2"
	"testing"
)

var (
	pureRed  = vec3{1, 0, 0}
	pureBlue = vec3{0, 0, 1}
)

func rampIndices() *[16]uint8 {
	var indices [16]uint8
	for i := range indices {
		indices[i] = uint8(i % 4)
	}
	return &indices
}

func TestColourBlock4RedBlueRamp(t *testing.T) {
	t.Parallel()

	want := [4][4]uint8{
		{255, 0, 0, 255},
		{0, 0, 255, 255},
		{170, 0, 85, 255},
		{85, 0, 170, 255},
	}

	for _, swap := range []bool{false, true} {
		start, end := pureRed, pureBlue
		indices := rampIndices()
		if swap {
			// Swapped endpoints swap every index pair as well.
			start, end = end, start
			for i := range indices {
				indices[i] ^= 1
			}
		}

		block := make([]byte, 8)
		writeColourBlock4(start, end, indices, block)

		var rgba [64]byte
		decompressColour(&rgba, block, true)
		for i := 0; i < 16; i++ {
			got := [4]uint8(rgba[4*i : 4*i+4])
			if got != want[i%4] {
				t.Fatalf("swap=%v pixel %d = %v, want %v", swap, i, got, want[i%4])
			}
		}
	}
}

func TestColourBlock3RedBlueRamp(t *testing.T) {
	t.Parallel()

	want := [4][4]uint8{
		{255, 0, 0, 255},
		{0, 0, 255, 255},
		{127, 0, 127, 255},
		{0, 0, 0, 0},
	}

	block := make([]byte, 8)
	writeColourBlock3(pureRed, pureBlue, rampIndices(), block)

	a := binary.LittleEndian.Uint16(block[0:])
	b := binary.LittleEndian.Uint16(block[2:])
	if a > b {
		t.Fatalf("3-colour block endpoints %#04x > %#04x", a, b)
	}

	var rgba [64]byte
	decompressColour(&rgba, block, true)
	for i := 0; i < 16; i++ {
		got := [4]uint8(rgba[4*i : 4*i+4])
		if got != want[i%4] {
			t.Fatalf("pixel %d = %v, want %v", i, got, want[i%4])
		}
	}
}

func TestColourBlock4EqualEndpoints(t *testing.T) {
	t.Parallel()

	block := make([]byte, 8)
	c := vec3{0.5, 0.5, 0.5}
	writeColourBlock4(c, c, rampIndices(), block)

	for i := 4; i < 8; i++ {
		if block[i] != 0 {
			t.Fatalf("index byte %d = %#02x, want 0", i, block[i])
		}
	}
}

func TestColourBlock4Ordering(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 1000; trial++ {
		start := vec3{rng.Float32(), rng.Float32(), rng.Float32()}.clampGrid()
		end := vec3{rng.Float32(), rng.Float32(), rng.Float32()}.clampGrid()
		var indices [16]uint8
		for i := range indices {
			indices[i] = uint8(rng.IntN(4))
		}

		block := make([]byte, 8)
		writeColourBlock4(start, end, &indices, block)
		a := binary.LittleEndian.Uint16(block[0:])
		b := binary.LittleEndian.Uint16(block[2:])
		if a < b {
			t.Fatalf("trial %d: endpoints %#04x < %#04x", trial, a, b)
		}
	}
}

func TestClampGrid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   vec3
		want uint16
	}{
		{vec3{-1, -1, -1}, 0x0000},
		{vec3{2, 2, 2}, 0xffff},
		{vec3{1, 0, 0}, 0xf800},
		{vec3{0, 1, 0}, 0x07e0},
		{vec3{0, 0, 1}, 0x001f},
	}
	for _, tt := range tests {
		if got := tt.in.clampGrid().to565(); got != tt.want {
			t.Errorf("clampGrid(%v).to565() = %#04x, want %#04x", tt.in, got, tt.want)
		}
	}

	// Every grid point is a fixed point of clampGrid.
	for r := 0; r < 32; r++ {
		for g := 0; g < 64; g++ {
			v := vec3{float32(r) / 31, float32(g) / 63, float32(r) / 31}
			if got := v.clampGrid(); got != v {
				t.Fatalf("clampGrid(%v) = %v", v, got)
			}
			if got := v.to565(); got != uint16(r<<11|g<<5|r) {
				t.Fatalf("to565(%v) = %#04x", v, got)
			}
		}
	}
}

func TestUnpack565Replication(t *testing.T) {
	t.Parallel()

	for v := 0; v < 32; v++ {
		c := unpack565(uint16(v<<11 | v))
		want := uint8(v<<3 | v>>2)
		if c[0] != want || c[2] != want {
			t.Fatalf("5-bit %d expanded to %d/%d, want %d", v, c[0], c[2], want)
		}
	}
	for v := 0; v < 64; v++ {
		c := unpack565(uint16(v << 5))
		if want := uint8(v<<2 | v>>4); c[1] != want {
			t.Fatalf("6-bit %d expanded to %d, want %d", v, c[1], want)
		}
	}
}
