// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package dds

import (
	"image"

	"github.com/acmi/squish"
	"github.com/disintegration/gift"
	"github.com/woozymasta/bcn"
)

// MaxMipLevels caps the mip chain written to a container.
const MaxMipLevels = 11

// mipCount returns the full chain length for width x height, capped at
// MaxMipLevels.
func mipCount(width, height int) int {
	count := 1
	for width > 1 || height > 1 {
		width = max(width/2, 1)
		height = max(height/2, 1)
		count++
	}

	return min(count, MaxMipLevels)
}

// mipDimension returns the size of base at the given level, never below 1.
func mipDimension(base, level int) int {
	return max(base>>level, 1)
}

// GenerateMipmaps returns up to levels mip images of img, largest first.
// levels <= 0 means the full chain. A nil filter uses the box filter of
// bcn.GenerateMipmaps; otherwise each level is resampled from img with
// the given gift filter.
func GenerateMipmaps(img image.Image, levels int, filter gift.Resampling) []*image.NRGBA {
	b := img.Bounds()
	full := mipCount(b.Dx(), b.Dy())
	if levels <= 0 || levels > full {
		levels = full
	}

	if filter == nil {
		chain := bcn.GenerateMipmaps(img, false)
		if len(chain) > levels {
			chain = chain[:levels]
		}
		mips := make([]*image.NRGBA, len(chain))
		for i, m := range chain {
			mips[i] = squish.ToNRGBA(m)
		}
		return mips
	}

	mips := make([]*image.NRGBA, levels)
	mips[0] = squish.ToNRGBA(img)
	for level := 1; level < levels; level++ {
		g := gift.New(gift.Resize(mipDimension(b.Dx(), level), mipDimension(b.Dy(), level), filter))
		dst := image.NewNRGBA(g.Bounds(b))
		g.Draw(dst, img)
		mips[level] = dst
	}

	return mips
}
