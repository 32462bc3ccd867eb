// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

import "math"

// sym3 is a symmetric 3x3 matrix stored as its upper triangle:
// xx, xy, xz, yy, yz, zz.
type sym3 [6]float32

// covariance returns the weighted covariance of points about their weighted centroid.
// A zero total weight yields the zero matrix.
func covariance(points []vec3, weights []float32) sym3 {
	var total float32
	var centroid vec3
	for i, p := range points {
		total += weights[i]
		centroid = centroid.add(p.scale(weights[i]))
	}

	var m sym3
	if total <= 0 {
		return m
	}
	centroid = centroid.scale(1 / total)

	for i, p := range points {
		a := p.sub(centroid)
		b := a.scale(weights[i])
		m[0] += a.x * b.x
		m[1] += a.x * b.y
		m[2] += a.x * b.z
		m[3] += a.y * b.y
		m[4] += a.y * b.z
		m[5] += a.z * b.z
	}
	return m
}

const axisEpsilon = 1e-5

// principalComponent returns an eigenvector of the largest-magnitude
// eigenvalue, solved in closed form from the characteristic cubic.
// The result is not normalised. When the cubic has a single real root, or
// m is the zero matrix, the direction (1,1,1) is returned.
func principalComponent(m sym3) vec3 {
	// A covariance is positive semidefinite, so zero trace means m == 0.
	c2 := m[0] + m[3] + m[5]
	if c2 <= 0 {
		return vec3{1, 1, 1}
	}

	c0 := m[0]*m[3]*m[5] +
		2*m[1]*m[2]*m[4] -
		m[0]*m[4]*m[4] -
		m[3]*m[2]*m[2] -
		m[5]*m[1]*m[1]
	c1 := m[0]*m[3] + m[0]*m[5] + m[3]*m[5] -
		m[1]*m[1] - m[2]*m[2] - m[4]*m[4]

	a := c1 - c2*c2/3
	b := -2*c2*c2*c2/27 + c1*c2/3 - c0
	q := b*b/4 + a*a*a/27

	switch {
	case q > axisEpsilon:
		return vec3{1, 1, 1}

	case q < -axisEpsilon:
		theta := math.Atan2(math.Sqrt(float64(-q)), float64(-b/2))
		rho := math.Sqrt(float64(b*b/4 - q))
		rt := float32(math.Cbrt(rho))
		ct := float32(math.Cos(theta / 3))
		st := float32(math.Sin(theta / 3))

		l1 := c2/3 + 2*rt*ct
		l2 := c2/3 - rt*(ct+float32(math.Sqrt(3))*st)
		l3 := c2/3 - rt*(ct-float32(math.Sqrt(3))*st)

		if absf(l2) > absf(l1) {
			l1 = l2
		}
		if absf(l3) > absf(l1) {
			l1 = l3
		}
		return orUnit(multiplicity1(m, l1))

	default:
		var rt float32
		if b < 0 {
			rt = -float32(math.Cbrt(float64(-b / 2)))
		} else {
			rt = float32(math.Cbrt(float64(b / 2)))
		}
		l1 := c2/3 + rt
		l2 := c2/3 - 2*rt
		if absf(l1) > absf(l2) {
			return orUnit(multiplicity2(m, l1))
		}
		return orUnit(multiplicity1(m, l2))
	}
}

// orUnit replaces a degenerate zero axis with (1,1,1).
func orUnit(v vec3) vec3 {
	if v.lengthSq() == 0 {
		return vec3{1, 1, 1}
	}
	return v
}

// multiplicity1 returns a null vector of m - lambda*I for a simple eigenvalue
// by picking the largest column of its adjugate.
func multiplicity1(m sym3, lambda float32) vec3 {
	m0 := m[0] - lambda
	m1 := m[1]
	m2 := m[2]
	m3 := m[3] - lambda
	m4 := m[4]
	m5 := m[5] - lambda

	u := [6]float32{
		m3*m5 - m4*m4,
		m2*m4 - m1*m5,
		m1*m4 - m2*m3,
		m0*m5 - m2*m2,
		m1*m2 - m4*m0,
		m0*m3 - m1*m1,
	}

	mc := absf(u[0])
	mi := 0
	for i := 1; i < 6; i++ {
		if c := absf(u[i]); c > mc {
			mc = c
			mi = i
		}
	}

	switch mi {
	case 0:
		return vec3{u[0], u[1], u[2]}
	case 1, 3:
		return vec3{u[1], u[3], u[4]}
	default:
		return vec3{u[2], u[4], u[5]}
	}
}

// multiplicity2 returns a vector orthogonal to the largest row of
// m - lambda*I for a repeated eigenvalue.
func multiplicity2(m sym3, lambda float32) vec3 {
	n := [6]float32{m[0] - lambda, m[1], m[2], m[3] - lambda, m[4], m[5] - lambda}

	mc := absf(n[0])
	mi := 0
	for i := 1; i < 6; i++ {
		if c := absf(n[i]); c > mc {
			mc = c
			mi = i
		}
	}

	switch mi {
	case 0, 1:
		return vec3{-n[1], n[0], 0}
	case 2:
		return vec3{n[2], 0, -n[0]}
	case 3, 4:
		return vec3{0, -n[4], n[3]}
	default:
		return vec3{0, -n[5], n[4]}
	}
}
