// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

// Package quality measures the error a lossy texture round trip introduces.
package quality

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrSizeMismatch indicates buffers that do not hold width x height RGBA8 pixels.
var ErrSizeMismatch = errors.New("buffer size mismatch")

// Report summarises the RGB error of a decoded image against its source.
// Pixels whose source alpha is zero are ignored.
type Report struct {
	// Pixels is the number of compared pixels.
	Pixels int
	// MaxError is the largest absolute channel difference.
	MaxError int
	// RMSE is the root mean squared channel difference.
	RMSE float64
	// PSNR is in dB; +Inf for identical images.
	PSNR float64
	// MeanDeltaE is the mean CIE76 distance in Lab space.
	MeanDeltaE float64
	// AlphaMaxError is the largest absolute alpha difference over all pixels.
	AlphaMaxError int
}

func (r Report) String() string {
	return fmt.Sprintf("pixels=%d max=%d rmse=%.3f psnr=%.2fdB dE=%.3f alpha_max=%d",
		r.Pixels, r.MaxError, r.RMSE, r.PSNR, r.MeanDeltaE, r.AlphaMaxError)
}

// Compare computes a Report for got against want, both non-premultiplied
// RGBA8 of width x height.
func Compare(want, got []byte, width, height int) (Report, error) {
	n := width * height * 4
	if width <= 0 || height <= 0 || len(want) < n || len(got) < n {
		return Report{}, fmt.Errorf("%w: %dx%d with %d and %d bytes", ErrSizeMismatch, width, height, len(want), len(got))
	}

	var (
		r      Report
		sqSum  float64
		deltaE float64
	)
	for i := 0; i < n; i += 4 {
		r.AlphaMaxError = max(r.AlphaMaxError, absDiff(want[i+3], got[i+3]))
		if want[i+3] == 0 {
			continue
		}

		for c := 0; c < 3; c++ {
			d := absDiff(want[i+c], got[i+c])
			r.MaxError = max(r.MaxError, d)
			sqSum += float64(d * d)
		}
		deltaE += toColor(want[i:]).DistanceLab(toColor(got[i:]))
		r.Pixels++
	}

	if r.Pixels == 0 {
		r.PSNR = math.Inf(1)
		return r, nil
	}

	mse := sqSum / float64(3*r.Pixels)
	r.RMSE = math.Sqrt(mse)
	r.MeanDeltaE = deltaE / float64(r.Pixels)
	if mse == 0 {
		r.PSNR = math.Inf(1)
	} else {
		r.PSNR = 10 * math.Log10(255*255/mse)
	}

	return r, nil
}

func toColor(p []byte) colorful.Color {
	return colorful.Color{
		R: float64(p[0]) / 255.0,
		G: float64(p[1]) / 255.0,
		B: float64(p[2]) / 255.0,
	}
}

func absDiff(a, b byte) int {
	d := int(a) - int(b)
	return max(d, -d)
}
