// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

import (
	"fmt"
	"image"
	"image/draw"
)

// CompressImage encodes img as non-premultiplied RGBA8.
func CompressImage(img image.Image, format Format, opts *Options) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}

	nrgba := ToNRGBA(img)
	b := nrgba.Bounds()
	return Compress(nrgba.Pix, b.Dx(), b.Dy(), format, opts)
}

// DecompressImage decodes blocks into a new NRGBA image.
func DecompressImage(blocks []byte, width, height int, format Format, opts *Options) (*image.NRGBA, error) {
	pix, err := Decompress(blocks, width, height, format, opts)
	if err != nil {
		return nil, err
	}

	return &image.NRGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// ToNRGBA returns img as a tightly packed NRGBA image with origin (0, 0),
// converting only when needed.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
