// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

import "math"

// vec3 is a colour or direction in RGB space, components in [0,1].
type vec3 struct {
	x, y, z float32
}

func (a vec3) add(b vec3) vec3 { return vec3{a.x + b.x, a.y + b.y, a.z + b.z} }
func (a vec3) sub(b vec3) vec3 { return vec3{a.x - b.x, a.y - b.y, a.z - b.z} }
func (a vec3) mul(b vec3) vec3 { return vec3{a.x * b.x, a.y * b.y, a.z * b.z} }
func (a vec3) scale(s float32) vec3 {
	return vec3{a.x * s, a.y * s, a.z * s}
}

func (a vec3) dot(b vec3) float32 { return a.x*b.x + a.y*b.y + a.z*b.z }

func (a vec3) lengthSq() float32 { return a.dot(a) }

// clampGrid snaps each channel to the 5:6:5 lattice, saturating to [0,1].
func (a vec3) clampGrid() vec3 {
	return vec3{
		snap(a.x, 31),
		snap(a.y, 63),
		snap(a.z, 31),
	}
}

func snap(v, grid float32) float32 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 1
	}
	return float32(int32(grid*v+0.5)) / grid
}

// to565 packs a colour already in [0,1] to 5:6:5.
func (a vec3) to565() uint16 {
	r := uint16(clampInt(int(31*a.x+0.5), 0, 31))
	g := uint16(clampInt(int(63*a.y+0.5), 0, 63))
	b := uint16(clampInt(int(31*a.z+0.5), 0, 31))
	return r<<11 | g<<5 | b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absf(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
