// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

// compressAlphaDXT3 quantises alpha to 4 bits, two pixels per byte, low nibble first.
// Masked pixels are written as 0.
func compressAlphaDXT3(rgba *[64]byte, mask uint16, block []byte) {
	for i := 0; i < 8; i++ {
		q1 := quantiseAlpha4(rgba[8*i+3])
		q2 := quantiseAlpha4(rgba[8*i+7])

		if mask&(1<<uint(2*i)) == 0 {
			q1 = 0
		}
		if mask&(1<<uint(2*i+1)) == 0 {
			q2 = 0
		}

		block[i] = q1 | q2<<4
	}
}

func quantiseAlpha4(a byte) byte {
	return byte(float32(a)*(15.0/255.0) + 0.5)
}

func decompressAlphaDXT3(rgba *[64]byte, block []byte) {
	for i := 0; i < 8; i++ {
		q := block[i]
		lo := q & 0x0f
		hi := q & 0xf0
		rgba[8*i+3] = lo | lo<<4
		rgba[8*i+7] = hi | hi>>4
	}
}

// compressAlphaDXT5 fits alpha to both the 5-value (with literal 0 and 255)
// and the 7-value interpolated codebooks and keeps the one with the lower
// total squared error. Ties go to the 5-value codebook.
func compressAlphaDXT5(rgba *[64]byte, mask uint16, block []byte) {
	min5, max5 := 255, 0
	min7, max7 := 255, 0
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}

		v := int(rgba[4*i+3])
		min7 = min(min7, v)
		max7 = max(max7, v)
		if v != 0 && v < min5 {
			min5 = v
		}
		if v != 255 && v > max5 {
			max5 = v
		}
	}

	if min7 > max7 {
		min7 = max7
	}
	if min5 > max5 {
		min5, max5 = min7, max7
	}

	min5, max5 = widenAlphaRange(min5, max5, 5)
	min7, max7 = widenAlphaRange(min7, max7, 7)

	var codes5 [8]int
	codes5[0] = min5
	codes5[1] = max5
	for i := 1; i < 5; i++ {
		codes5[1+i] = ((5-i)*min5 + i*max5) / 5
	}
	codes5[6] = 0
	codes5[7] = 255

	var codes7 [8]int
	codes7[0] = min7
	codes7[1] = max7
	for i := 1; i < 7; i++ {
		codes7[1+i] = ((7-i)*min7 + i*max7) / 7
	}

	var indices5, indices7 [16]uint8
	err5 := fitAlphaCodes(rgba, mask, &codes5, &indices5)
	err7 := fitAlphaCodes(rgba, mask, &codes7, &indices7)

	if err5 <= err7 {
		writeAlphaBlock5(min5, max5, &indices5, block)
	} else {
		writeAlphaBlock7(min7, max7, &indices7, block)
	}
}

// widenAlphaRange stretches [lo, hi] to a span of at least n within [0, 255].
func widenAlphaRange(lo, hi, n int) (int, int) {
	if hi-lo < n {
		hi = min(lo+n, 255)
	}
	if hi-lo < n {
		lo = max(0, hi-n)
	}
	return lo, hi
}

// fitAlphaCodes maps every valid pixel to its nearest code and returns the
// total squared error. Masked pixels take index 0.
func fitAlphaCodes(rgba *[64]byte, mask uint16, codes *[8]int, indices *[16]uint8) int {
	total := 0
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			indices[i] = 0
			continue
		}

		v := int(rgba[4*i+3])
		least := int(^uint(0) >> 1)
		index := 0
		for j, c := range codes {
			d := (v - c) * (v - c)
			if d < least {
				least = d
				index = j
			}
		}
		indices[i] = uint8(index)
		total += least
	}
	return total
}

// writeAlphaBlock5 stores the endpoints with alpha0 <= alpha1.
func writeAlphaBlock5(alpha0, alpha1 int, indices *[16]uint8, block []byte) {
	if alpha0 <= alpha1 {
		writeAlphaBlock(alpha0, alpha1, indices, block)
		return
	}

	var swapped [16]uint8
	for i, idx := range indices {
		switch {
		case idx == 0:
			swapped[i] = 1
		case idx == 1:
			swapped[i] = 0
		case idx <= 5:
			swapped[i] = 7 - idx
		default:
			swapped[i] = idx
		}
	}
	writeAlphaBlock(alpha1, alpha0, &swapped, block)
}

// writeAlphaBlock7 stores the endpoints with alpha0 >= alpha1.
func writeAlphaBlock7(alpha0, alpha1 int, indices *[16]uint8, block []byte) {
	if alpha0 >= alpha1 {
		writeAlphaBlock(alpha0, alpha1, indices, block)
		return
	}

	var swapped [16]uint8
	for i, idx := range indices {
		switch idx {
		case 0:
			swapped[i] = 1
		case 1:
			swapped[i] = 0
		default:
			swapped[i] = 9 - idx
		}
	}
	writeAlphaBlock(alpha1, alpha0, &swapped, block)
}

func writeAlphaBlock(alpha0, alpha1 int, indices *[16]uint8, block []byte) {
	block[0] = byte(alpha0)
	block[1] = byte(alpha1)

	for g := 0; g < 2; g++ {
		var value uint32
		for j := 0; j < 8; j++ {
			value |= uint32(indices[8*g+j]) << (3 * uint(j))
		}
		block[2+3*g] = byte(value)
		block[3+3*g] = byte(value >> 8)
		block[4+3*g] = byte(value >> 16)
	}
}

func decompressAlphaDXT5(rgba *[64]byte, block []byte) {
	alpha0 := int(block[0])
	alpha1 := int(block[1])

	var codes [8]int
	codes[0] = alpha0
	codes[1] = alpha1
	if alpha0 <= alpha1 {
		for i := 1; i < 5; i++ {
			codes[1+i] = ((5-i)*alpha0 + i*alpha1) / 5
		}
		codes[6] = 0
		codes[7] = 255
	} else {
		for i := 1; i < 7; i++ {
			codes[1+i] = ((7-i)*alpha0 + i*alpha1) / 7
		}
	}

	for g := 0; g < 2; g++ {
		value := uint32(block[2+3*g]) | uint32(block[3+3*g])<<8 | uint32(block[4+3*g])<<16
		for j := 0; j < 8; j++ {
			idx := (value >> (3 * uint(j))) & 7
			rgba[4*(8*g+j)+3] = byte(codes[idx])
		}
	}
}
