// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

import "encoding/binary"

// writeColourBlock3 packs a 3-colour block. The endpoints are stored with
// packed(start) <= packed(end) so decoders select the 3-colour palette.
func writeColourBlock3(start, end vec3, indices *[16]uint8, block []byte) {
	a := start.to565()
	b := end.to565()

	var remapped [16]uint8
	if a <= b {
		remapped = *indices
	} else {
		a, b = b, a
		for i, idx := range indices {
			switch idx {
			case 0:
				remapped[i] = 1
			case 1:
				remapped[i] = 0
			default:
				remapped[i] = idx
			}
		}
	}

	writeColourBlock(a, b, &remapped, block)
}

// writeColourBlock4 packs a 4-colour block with packed(start) > packed(end).
// Equal endpoints force every index to 0.
func writeColourBlock4(start, end vec3, indices *[16]uint8, block []byte) {
	a := start.to565()
	b := end.to565()

	var remapped [16]uint8
	switch {
	case a < b:
		a, b = b, a
		for i, idx := range indices {
			remapped[i] = (idx ^ 1) & 3
		}
	case a == b:
		// all zero
	default:
		remapped = *indices
	}

	writeColourBlock(a, b, &remapped, block)
}

func writeColourBlock(a, b uint16, indices *[16]uint8, block []byte) {
	binary.LittleEndian.PutUint16(block[0:2], a)
	binary.LittleEndian.PutUint16(block[2:4], b)

	for i := 0; i < 4; i++ {
		block[4+i] = indices[4*i] |
			indices[4*i+1]<<2 |
			indices[4*i+2]<<4 |
			indices[4*i+3]<<6
	}
}

// unpack565 expands a 5:6:5 colour to 8 bits per channel by bit replication.
func unpack565(v uint16) [4]uint8 {
	r := uint8(v>>11) & 0x1f
	g := uint8(v>>5) & 0x3f
	b := uint8(v) & 0x1f
	return [4]uint8{
		r<<3 | r>>2,
		g<<2 | g>>4,
		b<<3 | b>>2,
		255,
	}
}

// decompressColour decodes an 8 byte colour block into 16 RGBA pixels.
func decompressColour(rgba *[64]byte, block []byte, isDXT1 bool) {
	a := binary.LittleEndian.Uint16(block[0:2])
	b := binary.LittleEndian.Uint16(block[2:4])

	var codes [4][4]uint8
	codes[0] = unpack565(a)
	codes[1] = unpack565(b)

	for c := 0; c < 3; c++ {
		ca := int(codes[0][c])
		cb := int(codes[1][c])
		if isDXT1 && a <= b {
			codes[2][c] = uint8((ca + cb) / 2)
			codes[3][c] = 0
		} else {
			codes[2][c] = uint8((2*ca + cb) / 3)
			codes[3][c] = uint8((ca + 2*cb) / 3)
		}
	}
	codes[2][3] = 255
	if isDXT1 && a <= b {
		codes[3][3] = 0
	} else {
		codes[3][3] = 255
	}

	for i := 0; i < 16; i++ {
		idx := (block[4+i/4] >> (2 * uint(i%4))) & 3
		copy(rgba[4*i:4*i+4], codes[idx][:])
	}
}
