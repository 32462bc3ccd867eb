// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package dds

import (
	"errors"
	"testing"

	"github.com/woozymasta/bcn"
)

func TestDetectFormatTable(t *testing.T) {
	t.Parallel()

	fourCCHeader := func(code string) *bcn.DDSHeader {
		return &bcn.DDSHeader{
			PixelFormat: bcn.DDSPixelFormat{Flags: bcn.DDSPFFourCC, FourCC: fourCC(code)},
		}
	}
	rgbHeader := func(r, b uint32) *bcn.DDSHeader {
		return &bcn.DDSHeader{
			PixelFormat: bcn.DDSPixelFormat{
				Flags:       bcn.DDSPFRGB | bcn.DDSPFAlphaPixels,
				RGBBitCount: 32,
				RBitMask:    r,
				GBitMask:    0x0000ff00,
				BBitMask:    b,
				ABitMask:    0xff000000,
			},
		}
	}

	tests := []struct {
		name   string
		header *bcn.DDSHeader
		dx10   *bcn.DDSHeaderDX10
		want   bcn.Format
		label  string
	}{
		{name: "fourcc-dxt1", header: fourCCHeader("DXT1"), want: bcn.FormatDXT1, label: "DXT1"},
		{name: "fourcc-dxt2", header: fourCCHeader("DXT2"), want: bcn.FormatDXT3, label: "DXT2"},
		{name: "fourcc-dxt4", header: fourCCHeader("DXT4"), want: bcn.FormatDXT5, label: "DXT4"},
		{name: "fourcc-ati1", header: fourCCHeader("ATI1"), want: bcn.FormatBC4, label: "ATI1"},
		{name: "fourcc-bc5s", header: fourCCHeader("BC5S"), want: bcn.FormatBC5, label: "BC5S"},
		{name: "rgb-rgba8", header: rgbHeader(0x000000ff, 0x00ff0000), want: bcn.FormatRGBA8, label: "RGBA8"},
		{name: "rgb-bgra8", header: rgbHeader(0x00ff0000, 0x000000ff), want: bcn.FormatBGRA8, label: "BGRA8"},
		{name: "rgb-odd-masks", header: rgbHeader(0x0000001f, 0x00ff0000), want: bcn.FormatUnknown, label: "unknown"},
		{name: "dxgi-dxt5", dx10: &bcn.DDSHeaderDX10{DXGIFormat: 77}, want: bcn.FormatDXT5, label: "DXGI 77"},
		{name: "dxgi-bgra8", dx10: &bcn.DDSHeaderDX10{DXGIFormat: 87}, want: bcn.FormatBGRA8, label: "DXGI 87"},
		{name: "dxgi-unknown", dx10: &bcn.DDSHeaderDX10{DXGIFormat: 2}, want: bcn.FormatUnknown, label: "DXGI 2"},
		{name: "unknown", header: fourCCHeader("XXXX"), want: bcn.FormatUnknown, label: "XXXX"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, label := detectFormat(tc.header, tc.dx10)
			if got != tc.want || label != tc.label {
				t.Fatalf("detectFormat() = %v, %q, want %v, %q", got, label, tc.want, tc.label)
			}
		})
	}
}

func TestExpectedDataLengthTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format bcn.Format
		w      int
		h      int
		want   int
	}{
		{name: "dxt1-4x4", format: bcn.FormatDXT1, w: 4, h: 4, want: 8},
		{name: "dxt1-5x7", format: bcn.FormatDXT1, w: 5, h: 7, want: 32},
		{name: "dxt1-1x1", format: bcn.FormatDXT1, w: 1, h: 1, want: 8},
		{name: "dxt3-8x4", format: bcn.FormatDXT3, w: 8, h: 4, want: 32},
		{name: "dxt5-4x4", format: bcn.FormatDXT5, w: 4, h: 4, want: 16},
		{name: "bc4-8x8", format: bcn.FormatBC4, w: 8, h: 8, want: 32},
		{name: "bgra8-5x7", format: bcn.FormatBGRA8, w: 5, h: 7, want: 140},
		{name: "unknown", format: bcn.FormatUnknown, w: 4, h: 4, want: -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := expectedDataLength(tc.format, tc.w, tc.h)
			if got != tc.want {
				t.Fatalf("expectedDataLength(%v,%d,%d) = %d, want %d", tc.format, tc.w, tc.h, got, tc.want)
			}
		})
	}
}

func TestMakeHeader(t *testing.T) {
	t.Parallel()

	t.Run("edds-dxt1-mips", func(t *testing.T) {
		t.Parallel()

		h, err := makeHeader(64, 32, 7, bcn.FormatDXT1, true)
		if err != nil {
			t.Fatalf("makeHeader: %v", err)
		}
		if h.Flags&bcn.DDSFlagMipmapCount == 0 || h.Caps&bcn.DDSCapsMipmap == 0 {
			t.Fatalf("mip flags missing: flags %#x caps %#x", h.Flags, h.Caps)
		}
		if h.Reserved1[1] != enfusionTag || h.PitchOrLinearSize != 0 {
			t.Fatalf("reserved %#x linear %d", h.Reserved1[1], h.PitchOrLinearSize)
		}
		if fourCCString(h.PixelFormat.FourCC) != "DXT1" {
			t.Fatalf("fourCC %q", fourCCString(h.PixelFormat.FourCC))
		}
	})

	t.Run("dds-bgra8", func(t *testing.T) {
		t.Parallel()

		h, err := makeHeader(10, 3, 1, bcn.FormatBGRA8, false)
		if err != nil {
			t.Fatalf("makeHeader: %v", err)
		}
		if h.Flags&bcn.DDSFlagMipmapCount != 0 || h.Reserved1[1] != 0 {
			t.Fatalf("unexpected flags %#x reserved %#x", h.Flags, h.Reserved1[1])
		}
		if h.PitchOrLinearSize != 40 || h.Flags&bcn.DDSFlagPitch == 0 {
			t.Fatalf("pitch %d flags %#x", h.PitchOrLinearSize, h.Flags)
		}
		if got, _ := detectFormat(h, nil); got != bcn.FormatBGRA8 {
			t.Fatalf("header detects as %v", got)
		}
	})

	t.Run("dds-dxt5-linear-size", func(t *testing.T) {
		t.Parallel()

		h, err := makeHeader(6, 6, 1, bcn.FormatDXT5, false)
		if err != nil {
			t.Fatalf("makeHeader: %v", err)
		}
		if h.PitchOrLinearSize != 64 {
			t.Fatalf("linear size %d, want 64", h.PitchOrLinearSize)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		if _, err := makeHeader(4, 4, 1, bcn.FormatUnknown, false); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("expected ErrInvalidFormat, got %v", err)
		}
	})
}

func TestCheckedConversions(t *testing.T) {
	t.Parallel()

	if _, err := u32FromInt(-1); !errors.Is(err, ErrSizeOverflow) {
		t.Fatalf("u32FromInt(-1): %v", err)
	}
	if _, err := i32FromInt(maxInt32 + 1); !errors.Is(err, ErrSizeOverflow) {
		t.Fatalf("i32FromInt(maxInt32+1): %v", err)
	}
	if v, err := u32FromInt(1 << 20); err != nil || v != 1<<20 {
		t.Fatalf("u32FromInt(1<<20) = %d, %v", v, err)
	}
}
