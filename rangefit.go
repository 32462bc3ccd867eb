// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

// rangeFit uses the extreme points along the principal axis as endpoints.
type rangeFit struct {
	set    *colourSet
	metric vec3
	start  vec3
	end    vec3
	best   float32
}

func newRangeFit(set *colourSet, metric Metric) *rangeFit {
	f := &rangeFit{
		set:    set,
		metric: metric.weights(),
		best:   maxError,
	}

	axis := principalComponent(set.covariance())

	points := set.points[:set.count]
	var start, end vec3
	if len(points) > 0 {
		start = points[0]
		end = points[0]
		lo := points[0].dot(axis)
		hi := lo
		for _, p := range points[1:] {
			v := p.dot(axis)
			if v < lo {
				start = p
				lo = v
			} else if v > hi {
				end = p
				hi = v
			}
		}
	}

	f.start = start.clampGrid()
	f.end = end.clampGrid()
	return f
}

func (f *rangeFit) bestError() float32 { return f.best }

func (f *rangeFit) compress3(block []byte) {
	codes := [3]vec3{
		f.start,
		f.end,
		f.start.scale(0.5).add(f.end.scale(0.5)),
	}
	f.fit(codes[:], writeColourBlock3, block)
}

func (f *rangeFit) compress4(block []byte) {
	codes := [4]vec3{
		f.start,
		f.end,
		f.start.scale(2.0 / 3.0).add(f.end.scale(1.0 / 3.0)),
		f.start.scale(1.0 / 3.0).add(f.end.scale(2.0 / 3.0)),
	}
	f.fit(codes[:], writeColourBlock4, block)
}

// fit maps every colour to its nearest code and writes the block if the
// total error beats the best so far.
func (f *rangeFit) fit(codes []vec3, write func(start, end vec3, indices *[16]uint8, block []byte), block []byte) {
	var closest [16]uint8
	var total float32

	for i, p := range f.set.points[:f.set.count] {
		dist := float32(maxError)
		idx := 0
		for j, c := range codes {
			d := p.sub(c).mul(f.metric).lengthSq()
			if d < dist {
				dist = d
				idx = j
			}
		}
		closest[i] = uint8(idx)
		total += dist
	}

	if total < f.best {
		var indices [16]uint8
		f.set.remapIndices(&closest, &indices)
		write(f.start, f.end, &indices, block)
		f.best = total
	}
}
