// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

import "math"

const maxClusterIterations = 8

// clusterFit searches every ordered partition of the colours into 3 or 4
// clusters along an axis, refining the axis from the best endpoints.
type clusterFit struct {
	set       *colourSet
	metric    vec3
	principal vec3
	best      float32

	orders   [maxClusterIterations][16]uint8
	weighted [16]vec3
	weights  [16]float32
	xxSum    vec3

	alpha [16]float32
	beta  [16]float32
}

func newClusterFit(set *colourSet, metric Metric) *clusterFit {
	return &clusterFit{
		set:       set,
		metric:    metric.weights(),
		principal: principalComponent(set.covariance()),
		best:      maxError,
	}
}

func (f *clusterFit) bestError() float32 { return f.best }

// clusterCode describes one cluster: its palette index and its
// interpolation fractions towards start and end.
type clusterCode struct {
	index uint8
	alpha float32
	beta  float32
}

var (
	codeStart     = clusterCode{0, 1, 0}
	codeEnd       = clusterCode{1, 0, 1}
	codeHalf      = clusterCode{2, 0.5, 0.5}
	codeOneThird  = clusterCode{2, 2.0 / 3.0, 1.0 / 3.0}
	codeTwoThirds = clusterCode{3, 1.0 / 3.0, 2.0 / 3.0}
	threeClusters = []clusterCode{codeStart, codeHalf, codeEnd}
	fourClusters  = []clusterCode{codeStart, codeOneThird, codeTwoThirds, codeEnd}
)

func (f *clusterFit) compress3(block []byte) {
	f.search(threeClusters, writeColourBlock3, block)
}

func (f *clusterFit) compress4(block []byte) {
	f.search(fourClusters, writeColourBlock4, block)
}

// search runs the iterative partition search for the given cluster codes
// (3 or 4 of them, start first and end last) and writes the block if the
// result beats the best error so far.
func (f *clusterFit) search(codes []clusterCode, write func(start, end vec3, indices *[16]uint8, block []byte), block []byte) {
	count := f.set.count

	var bestStart, bestEnd vec3
	var bestIndices, indices [16]uint8
	bestErr := f.best
	bestIteration := 0

	f.constructOrdering(f.principal, 0)

	for iteration := 0; ; iteration++ {
		f.assign(indices[:count], 0, count, codes[0])
		f.partition(codes, 1, 0, &indices, func() {
			start, end, err := f.solveLeastSquares()
			if err < bestErr {
				bestStart = start
				bestEnd = end
				bestIndices = indices
				bestErr = err
				bestIteration = iteration
			}
		})

		// no improvement in this iteration
		if bestIteration != iteration {
			break
		}

		if iteration+1 == maxClusterIterations {
			break
		}
		if !f.constructOrdering(bestEnd.sub(bestStart), iteration+1) {
			break
		}
	}

	if bestErr < f.best {
		var unordered, remapped [16]uint8
		for i := 0; i < count; i++ {
			unordered[f.orders[bestIteration][i]] = bestIndices[i]
		}
		f.set.remapIndices(&unordered, &remapped)
		write(bestStart, bestEnd, &remapped, block)
		f.best = bestErr
	}
}

// partition walks the split point for cluster c over [from, count], from
// the back, assigning cluster c to the suffix. The last code is the end
// cluster and is placed one slot at a time.
func (f *clusterFit) partition(codes []clusterCode, c, from int, indices *[16]uint8, visit func()) {
	count := f.set.count
	last := c == len(codes)-1

	for i := count; i >= from; i-- {
		if last {
			if i < count {
				f.assign(indices[:count], i, i+1, codes[c])
			}
			visit()
			continue
		}
		f.assign(indices[:count], i, count, codes[c])
		f.partition(codes, c+1, i, indices, visit)
	}
}

func (f *clusterFit) assign(indices []uint8, from, to int, code clusterCode) {
	for m := from; m < to; m++ {
		indices[m] = code.index
		f.alpha[m] = code.alpha * f.weights[m]
		f.beta[m] = code.beta * f.weights[m]
	}
}

// constructOrdering stably sorts the colours by their projection on axis
// and caches the weighted points in that order. It returns false when the
// ordering repeats one from an earlier iteration.
func (f *clusterFit) constructOrdering(axis vec3, iteration int) bool {
	count := f.set.count
	points := f.set.points[:count]
	order := &f.orders[iteration]

	var dps [16]float32
	for i, p := range points {
		dps[i] = p.dot(axis)
		order[i] = uint8(i)
	}

	for i := 0; i < count; i++ {
		for j := i; j > 0 && dps[j] < dps[j-1]; j-- {
			dps[j], dps[j-1] = dps[j-1], dps[j]
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	for it := 0; it < iteration; it++ {
		if f.orders[it] == *order {
			return false
		}
	}

	f.xxSum = vec3{}
	for i := 0; i < count; i++ {
		p := order[i]
		w := f.set.weights[p]
		x := points[p].scale(w)
		f.weights[i] = w
		f.weighted[i] = x
		f.xxSum = f.xxSum.add(x.mul(x))
	}
	return true
}

// solveLeastSquares places the endpoints for the current cluster
// assignment and returns them with the metric-weighted error.
func (f *clusterFit) solveLeastSquares() (start, end vec3, err float32) {
	count := f.set.count

	var alpha2, beta2, alphaBeta float32
	var alphaX, betaX vec3
	for i := 0; i < count; i++ {
		a := f.alpha[i]
		b := f.beta[i]
		alpha2 += a * a
		beta2 += b * b
		alphaBeta += a * b
		alphaX = alphaX.add(f.weighted[i].scale(a))
		betaX = betaX.add(f.weighted[i].scale(b))
	}

	switch {
	case beta2 == 0:
		start = alphaX.scale(1 / alpha2)
	case alpha2 == 0:
		end = betaX.scale(1 / beta2)
	default:
		rcp := 1 / (alpha2*beta2 - alphaBeta*alphaBeta)
		if math.IsInf(float64(rcp), 0) {
			return vec3{}, vec3{}, maxError
		}
		start = alphaX.scale(beta2).sub(betaX.scale(alphaBeta)).scale(rcp)
		end = betaX.scale(alpha2).sub(alphaX.scale(alphaBeta)).scale(rcp)
	}

	start = start.clampGrid()
	end = end.clampGrid()

	e := vec3{
		channelError(start.x, end.x, alpha2, beta2, alphaBeta, alphaX.x, betaX.x, f.xxSum.x),
		channelError(start.y, end.y, alpha2, beta2, alphaBeta, alphaX.y, betaX.y, f.xxSum.y),
		channelError(start.z, end.z, alpha2, beta2, alphaBeta, alphaX.z, betaX.z, f.xxSum.z),
	}
	return start, end, f.metric.dot(e)
}

// channelError expands sum((alpha*a + beta*b - x)^2) for one channel.
func channelError(a, b, alpha2, beta2, alphaBeta, alphaX, betaX, xx float32) float32 {
	return a*a*alpha2 + b*b*beta2 + xx + 2*(a*b*alphaBeta-a*alphaX-b*betaX)
}
