// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// serialTileLimit is the tile count below which work stays on the calling goroutine.
const serialTileLimit = 32

// Compress encodes a width x height RGBA8 image (row-major, top to bottom)
// and returns StorageRequirements(width, height, format) bytes of blocks.
func Compress(rgba []byte, width, height int, format Format, opts *Options) ([]byte, error) {
	size, err := StorageRequirements(width, height, format)
	if err != nil {
		return nil, err
	}

	out := make([]byte, size)
	if err := CompressTo(out, rgba, width, height, format, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// CompressTo encodes rgba into dst, which must hold at least
// StorageRequirements(width, height, format) bytes.
func CompressTo(dst, rgba []byte, width, height int, format Format, opts *Options) error {
	size, err := StorageRequirements(width, height, format)
	if err != nil {
		return err
	}
	opts = opts.orDefault()
	if err := opts.validate(); err != nil {
		return err
	}
	pixels, err := pixelBytes(width, height)
	if err != nil {
		return err
	}
	if len(rgba) < pixels {
		return fmt.Errorf("%w: source has %d bytes, need %d", ErrBufferTooSmall, len(rgba), pixels)
	}
	if len(dst) < size {
		return fmt.Errorf("%w: destination has %d bytes, need %d", ErrBufferTooSmall, len(dst), size)
	}

	blocksW := (width-1)/4 + 1
	blockSize := format.BlockSize()

	forEachTile(size/blockSize, opts.Workers, func(idx int, tile *[64]byte) {
		bx := idx % blocksW
		by := idx / blocksW
		mask := loadTile(rgba, width, height, bx, by, tile)
		compressTile(tile, mask, format, opts, dst[idx*blockSize:(idx+1)*blockSize])
	})
	return nil
}

// Decompress decodes blocks into width*height*4 bytes of RGBA8.
// Only opts.Workers is used.
func Decompress(blocks []byte, width, height int, format Format, opts *Options) ([]byte, error) {
	if _, err := StorageRequirements(width, height, format); err != nil {
		return nil, err
	}
	pixels, err := pixelBytes(width, height)
	if err != nil {
		return nil, err
	}

	out := make([]byte, pixels)
	if err := DecompressTo(out, blocks, width, height, format, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// DecompressTo decodes blocks into dst, which must hold at least width*height*4 bytes.
func DecompressTo(dst, blocks []byte, width, height int, format Format, opts *Options) error {
	size, err := StorageRequirements(width, height, format)
	if err != nil {
		return err
	}
	opts = opts.orDefault()
	if opts.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidOptions, opts.Workers)
	}
	if len(blocks) < size {
		return fmt.Errorf("%w: source has %d bytes, need %d", ErrBufferTooSmall, len(blocks), size)
	}
	pixels, err := pixelBytes(width, height)
	if err != nil {
		return err
	}
	if len(dst) < pixels {
		return fmt.Errorf("%w: destination has %d bytes, need %d", ErrBufferTooSmall, len(dst), pixels)
	}

	blocksW := (width-1)/4 + 1
	blockSize := format.BlockSize()

	forEachTile(size/blockSize, opts.Workers, func(idx int, tile *[64]byte) {
		bx := idx % blocksW
		by := idx / blocksW
		decompressTile(tile, blocks[idx*blockSize:(idx+1)*blockSize], format)
		storeTile(dst, width, height, bx, by, tile)
	})
	return nil
}

// forEachTile calls fn for every tile index in [0, total). Tiles are spread
// over workers goroutines (GOMAXPROCS when workers is 0), each with its own
// scratch tile. fn must only write state owned by its tile.
func forEachTile(total, workers int, fn func(idx int, tile *[64]byte)) {
	procs := workers
	if procs <= 0 {
		procs = runtime.GOMAXPROCS(0)
	}
	if procs < 1 {
		procs = 1
	}
	if procs > total {
		procs = total
	}

	if procs <= 1 || total < serialTileLimit {
		var tile [64]byte
		for idx := 0; idx < total; idx++ {
			fn(idx, &tile)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(procs)
	for w := 0; w < procs; w++ {
		go func() {
			defer wg.Done()
			var tile [64]byte
			for {
				idx := int(next.Add(1) - 1)
				if idx >= total {
					return
				}
				fn(idx, &tile)
			}
		}()
	}
	wg.Wait()
}
