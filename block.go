// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

import "fmt"

// CompressMasked compresses one 4x4 tile of RGBA8 pixels (64 bytes,
// row-major) into block. Bit 4*y+x of mask marks slot (x, y) as a real
// pixel; unset slots are ignored by the fit. block must hold
// format.BlockSize() bytes.
func CompressMasked(block, rgba []byte, mask uint16, format Format, opts *Options) error {
	if !format.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	opts = opts.orDefault()
	if err := opts.validate(); err != nil {
		return err
	}
	if len(rgba) < 64 {
		return fmt.Errorf("%w: tile has %d bytes, need 64", ErrBufferTooSmall, len(rgba))
	}
	if len(block) < format.BlockSize() {
		return fmt.Errorf("%w: block has %d bytes, need %d", ErrBufferTooSmall, len(block), format.BlockSize())
	}

	compressTile((*[64]byte)(rgba[:64]), mask, format, opts, block)
	return nil
}

// DecompressBlock decodes one block into 16 RGBA8 pixels (64 bytes).
func DecompressBlock(rgba, block []byte, format Format) error {
	if !format.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if len(rgba) < 64 {
		return fmt.Errorf("%w: tile has %d bytes, need 64", ErrBufferTooSmall, len(rgba))
	}
	if len(block) < format.BlockSize() {
		return fmt.Errorf("%w: block has %d bytes, need %d", ErrBufferTooSmall, len(block), format.BlockSize())
	}

	decompressTile((*[64]byte)(rgba[:64]), block, format)
	return nil
}

func compressTile(tile *[64]byte, mask uint16, format Format, opts *Options, block []byte) {
	set := newColourSet(tile, mask, format, opts.WeightAlpha)
	compressColour(&set, format, opts, block[format.colourOffset():])

	switch format {
	case FormatDXT3:
		compressAlphaDXT3(tile, mask, block[:8])
	case FormatDXT5:
		compressAlphaDXT5(tile, mask, block[:8])
	}
}

func decompressTile(tile *[64]byte, block []byte, format Format) {
	decompressColour(tile, block[format.colourOffset():], format == FormatDXT1)

	switch format {
	case FormatDXT3:
		decompressAlphaDXT3(tile, block[:8])
	case FormatDXT5:
		decompressAlphaDXT5(tile, block[:8])
	}
}

// loadTile copies the pixels of tile (bx, by) into tile and returns the
// validity mask. Slots outside the image are left untouched.
func loadTile(rgba []byte, width, height, bx, by int, tile *[64]byte) uint16 {
	var mask uint16
	for py := 0; py < 4; py++ {
		y := 4*by + py
		if y >= height {
			break
		}
		for px := 0; px < 4; px++ {
			x := 4*bx + px
			if x >= width {
				break
			}
			src := 4 * (y*width + x)
			copy(tile[4*(4*py+px):4*(4*py+px)+4], rgba[src:src+4])
			mask |= 1 << uint(4*py+px)
		}
	}
	return mask
}

// storeTile writes the in-image pixels of tile (bx, by) to rgba.
func storeTile(rgba []byte, width, height, bx, by int, tile *[64]byte) {
	for py := 0; py < 4; py++ {
		y := 4*by + py
		if y >= height {
			break
		}
		for px := 0; px < 4; px++ {
			x := 4*bx + px
			if x >= width {
				break
			}
			dst := 4 * (y*width + x)
			copy(rgba[dst:dst+4], tile[4*(4*py+px):4*(4*py+px)+4])
		}
	}
}
