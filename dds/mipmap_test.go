// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package dds

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/gift"
)

func TestMipCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		w, h int
		want int
	}{
		{w: 1, h: 1, want: 1},
		{w: 4, h: 4, want: 3},
		{w: 5, h: 3, want: 3},
		{w: 16, h: 8, want: 5},
		{w: 1024, h: 1024, want: 11},
		{w: 4096, h: 4096, want: MaxMipLevels},
	}

	for _, tc := range tests {
		if got := mipCount(tc.w, tc.h); got != tc.want {
			t.Errorf("mipCount(%d, %d) = %d, want %d", tc.w, tc.h, got, tc.want)
		}
	}
}

func TestMipDimension(t *testing.T) {
	t.Parallel()

	if got := mipDimension(16, 2); got != 4 {
		t.Fatalf("mipDimension(16, 2) = %d", got)
	}
	if got := mipDimension(5, 3); got != 1 {
		t.Fatalf("mipDimension(5, 3) = %d", got)
	}
}

func TestGenerateMipmaps(t *testing.T) {
	t.Parallel()

	flat := color.NRGBA{R: 200, G: 40, B: 90, A: 255}
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, flat)
		}
	}

	tests := []struct {
		name   string
		filter gift.Resampling
		levels int
		want   int
	}{
		{name: "box-full", filter: nil, levels: 0, want: 5},
		{name: "box-limited", filter: nil, levels: 2, want: 2},
		{name: "lanczos-full", filter: gift.LanczosResampling, levels: 0, want: 5},
		{name: "linear-too-many", filter: gift.LinearResampling, levels: 40, want: 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mips := GenerateMipmaps(img, tc.levels, tc.filter)
			if len(mips) != tc.want {
				t.Fatalf("levels = %d, want %d", len(mips), tc.want)
			}

			for level, mip := range mips {
				b := mip.Bounds()
				if b.Dx() != mipDimension(16, level) || b.Dy() != mipDimension(8, level) {
					t.Fatalf("level %d size %dx%d", level, b.Dx(), b.Dy())
				}
				if b.Min != (image.Point{}) {
					t.Fatalf("level %d origin %v", level, b.Min)
				}

				c := mip.NRGBAAt(b.Dx()/2, b.Dy()/2)
				if absDiff(c.R, flat.R) > 1 || absDiff(c.G, flat.G) > 1 || absDiff(c.B, flat.B) > 1 || absDiff(c.A, 255) > 1 {
					t.Fatalf("level %d colour %v, want %v", level, c, flat)
				}
			}
		})
	}
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	return max(d, -d)
}
