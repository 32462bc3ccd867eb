// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

import "sync"

// singleColourSource is the best quantised endpoint pair for one 8-bit
// channel value and palette index, with the absolute reconstruction error.
type singleColourSource struct {
	start uint8
	end   uint8
	err   uint8
}

// singleColourLookup is indexed by [target value][palette index].
type singleColourLookup [256][4]singleColourSource

var (
	lookupOnce sync.Once
	lookup53   *singleColourLookup
	lookup63   *singleColourLookup
	lookup54   *singleColourLookup
	lookup64   *singleColourLookup
)

func singleColourLookups() {
	lookupOnce.Do(func() {
		lookup53 = buildSingleColourLookup(5, 3)
		lookup63 = buildSingleColourLookup(6, 3)
		lookup54 = buildSingleColourLookup(5, 4)
		lookup64 = buildSingleColourLookup(6, 4)
	})
}

// expandBits widens a 5 or 6 bit channel to 8 bits the way decoders do.
func expandBits(v, bits int) int {
	if bits == 5 {
		return v<<3 | v>>2
	}
	return v<<2 | v>>4
}

// paletteValue returns the decoded value of palette index for the 8-bit
// endpoints a and b in a palette of levels entries.
func paletteValue(a, b, index, levels int) int {
	switch index {
	case 0:
		return a
	case 1:
		return b
	}
	if levels == 3 {
		return (a + b) / 2
	}
	if index == 2 {
		return (2*a + b) / 3
	}
	return (a + 2*b) / 3
}

// buildSingleColourLookup enumerates every quantised endpoint pair at the
// given bit depth and records, per 8-bit target and palette index, the
// pair with the smallest reconstruction error. Ties keep the first pair
// in (start, end) order.
func buildSingleColourLookup(bits, levels int) *singleColourLookup {
	var table singleColourLookup
	size := 1 << bits

	for index := 0; index < levels; index++ {
		var bestErr [256]int
		for target := range bestErr {
			bestErr[target] = 256
		}

		for lo := 0; lo < size; lo++ {
			a := expandBits(lo, bits)
			for hi := 0; hi < size; hi++ {
				v := paletteValue(a, expandBits(hi, bits), index, levels)
				for target := 0; target < 256; target++ {
					e := v - target
					if e < 0 {
						e = -e
					}
					if e < bestErr[target] {
						bestErr[target] = e
						table[target][index] = singleColourSource{
							start: uint8(lo),
							end:   uint8(hi),
							err:   uint8(e),
						}
					}
				}
			}
		}
	}

	return &table
}
