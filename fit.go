// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

import "math"

// colourFit finds endpoints and indices for a colour set and writes the
// colour block. The 3- and 4-colour passes of one fit share a best error,
// so a later pass only overwrites the block when it is strictly better.
type colourFit interface {
	compress3(block []byte)
	compress4(block []byte)
	bestError() float32
}

// newColourFit picks the fitter for a set. A single unique colour always
// takes the exact single-colour path.
func newColourFit(set *colourSet, method Method, metric Metric) colourFit {
	switch {
	case set.count == 1:
		return newSingleColourFit(set)
	case method == MethodRangeFit:
		return newRangeFit(set, metric)
	default:
		return newClusterFit(set, metric)
	}
}

// compressColour writes the colour sub-block of one tile.
func compressColour(set *colourSet, format Format, opts *Options, block []byte) {
	if set.count == 0 {
		// Every slot is masked or transparent.
		var unique, indices [16]uint8
		set.remapIndices(&unique, &indices)
		if format == FormatDXT1 {
			writeColourBlock3(vec3{}, vec3{}, &indices, block)
		} else {
			writeColourBlock4(vec3{}, vec3{}, &indices, block)
		}
		return
	}

	fit := newColourFit(set, opts.Method, opts.Metric)
	if format == FormatDXT1 {
		fit.compress3(block)
		if !set.transparent {
			fit.compress4(block)
		}
		return
	}
	fit.compress4(block)
}

const maxError = math.MaxFloat32
