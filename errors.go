// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

import "errors"

var (
	// ErrInvalidDimensions indicates a non-positive image width or height.
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	// ErrSizeOverflow indicates dimensions whose buffer sizes do not fit in an int.
	ErrSizeOverflow = errors.New("image size overflows int")
	// ErrBufferTooSmall indicates a source or destination buffer shorter than required.
	ErrBufferTooSmall = errors.New("buffer too small")
	// ErrUnsupportedFormat indicates a format other than DXT1, DXT3 or DXT5.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrInvalidOptions indicates an unknown compression method or metric.
	ErrInvalidOptions = errors.New("invalid options")
)
