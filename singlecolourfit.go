// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

import "math"

// singleColourFit is the exact fit for a tile with one unique colour.
type singleColourFit struct {
	set    *colourSet
	colour [3]int
	best   int
}

func newSingleColourFit(set *colourSet) *singleColourFit {
	singleColourLookups()

	p := set.points[0]
	return &singleColourFit{
		set: set,
		colour: [3]int{
			int(math.Round(float64(255 * p.x))),
			int(math.Round(float64(255 * p.y))),
			int(math.Round(float64(255 * p.z))),
		},
		best: math.MaxInt32,
	}
}

func (f *singleColourFit) bestError() float32 { return float32(f.best) }

func (f *singleColourFit) compress3(block []byte) {
	f.fit(3, [3]*singleColourLookup{lookup53, lookup63, lookup53}, writeColourBlock3, block)
}

func (f *singleColourFit) compress4(block []byte) {
	f.fit(4, [3]*singleColourLookup{lookup54, lookup64, lookup54}, writeColourBlock4, block)
}

func (f *singleColourFit) fit(levels int, lookups [3]*singleColourLookup, write func(start, end vec3, indices *[16]uint8, block []byte), block []byte) {
	bestErr := f.best
	bestIndex := -1
	var sources [3]singleColourSource

	for index := 0; index < levels; index++ {
		var cand [3]singleColourSource
		err := 0
		for c := 0; c < 3; c++ {
			cand[c] = lookups[c][f.colour[c]][index]
			d := int(cand[c].err)
			err += d * d
		}
		if err < bestErr {
			bestErr = err
			bestIndex = index
			sources = cand
		}
	}

	if bestIndex < 0 {
		return
	}

	start := vec3{
		float32(sources[0].start) / 31,
		float32(sources[1].start) / 63,
		float32(sources[2].start) / 31,
	}
	end := vec3{
		float32(sources[0].end) / 31,
		float32(sources[1].end) / 63,
		float32(sources[2].end) / 31,
	}

	var unique, indices [16]uint8
	unique[0] = uint8(bestIndex)
	f.set.remapIndices(&unique, &indices)
	write(start, end, &indices, block)
	f.best = bestErr
}
