// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package dds

import (
	"fmt"

	"github.com/woozymasta/bcn"
)

const (
	maxInt32  = int(^uint32(0) >> 1)
	maxUint32 = uint64(^uint32(0))

	// maxDimension bounds header dimensions accepted on read.
	maxDimension = 1 << 16
)

func i32FromInt(n int) (int32, error) {
	if n < 0 || n > maxInt32 {
		return 0, fmt.Errorf("%w: %d", ErrSizeOverflow, n)
	}

	return int32(n), nil
}

func u32FromInt(n int) (uint32, error) {
	if n < 0 || uint64(n) > maxUint32 {
		return 0, fmt.Errorf("%w: %d", ErrSizeOverflow, n)
	}

	// #nosec G115 -- bounds checked above.
	return uint32(n), nil
}

// headerDimensions returns the header width and height as ints, rejecting
// empty or oversized textures.
func headerDimensions(header *bcn.DDSHeader) (int, int, error) {
	if header.Width == 0 || header.Height == 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, header.Width, header.Height)
	}
	if header.Width > maxDimension || header.Height > maxDimension {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrSizeOverflow, header.Width, header.Height)
	}

	return int(header.Width), int(header.Height), nil
}
