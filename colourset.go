// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

const (
	remapMasked      = -1
	remapTransparent = -2
)

// transparentIndex is the DXT1 3-colour palette slot that decodes to transparent black.
const transparentIndex = 3

// colourSet holds the unique colours of one tile.
type colourSet struct {
	points      [16]vec3
	weights     [16]float32
	remap       [16]int
	count       int
	transparent bool
}

// newColourSet collects the valid pixels of a tile into unique colours.
// For DXT1, pixels with alpha below 128 are treated as transparent and
// excluded from fitting.
func newColourSet(rgba *[64]byte, mask uint16, format Format, weightAlpha bool) colourSet {
	var s colourSet
	isDXT1 := format == FormatDXT1

	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			s.remap[i] = remapMasked
			continue
		}

		r, g, b, a := rgba[4*i], rgba[4*i+1], rgba[4*i+2], rgba[4*i+3]
		if isDXT1 && a < 128 {
			s.remap[i] = remapTransparent
			s.transparent = true
			continue
		}

		w := float32(1)
		if weightAlpha {
			w = float32(int(a)+1) / 256
		}

		// Earlier valid pixel with the same RGB.
		matched := false
		for j := 0; j < i; j++ {
			if mask&(1<<uint(j)) == 0 || s.remap[j] < 0 {
				continue
			}
			if rgba[4*j] == r && rgba[4*j+1] == g && rgba[4*j+2] == b {
				idx := s.remap[j]
				s.weights[idx] += w
				s.remap[i] = idx
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		s.points[s.count] = vec3{
			float32(r) / 255,
			float32(g) / 255,
			float32(b) / 255,
		}
		s.weights[s.count] = w
		s.remap[i] = s.count
		s.count++
	}

	return s
}

// remapIndices expands per-colour indices in source to per-pixel indices in target.
func (s *colourSet) remapIndices(source, target *[16]uint8) {
	for i, r := range s.remap {
		switch r {
		case remapMasked:
			target[i] = 0
		case remapTransparent:
			target[i] = transparentIndex
		default:
			target[i] = source[r]
		}
	}
}

// covariance returns the weighted covariance matrix of the set.
func (s *colourSet) covariance() sym3 {
	return covariance(s.points[:s.count], s.weights[:s.count])
}
