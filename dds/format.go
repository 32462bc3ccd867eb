// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package dds

import (
	"fmt"

	"github.com/acmi/squish"
	"github.com/woozymasta/bcn"
)

// DXGI_FORMAT codes recognised in DX10 headers.
const (
	dxgiRGBA8 = 28
	dxgiBC1   = 71
	dxgiBC2   = 74
	dxgiBC3   = 77
	dxgiBC4   = 80
	dxgiBC5   = 83
	dxgiBGRA8 = 87
)

// enfusionTag is stored in Reserved1[1] of EDDS headers ("ENF1").
var enfusionTag = fourCC("ENF1")

func fourCC(s string) uint32 {
	return uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24
}

func fourCCString(v uint32) string {
	return string([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

// squishFormat maps container formats handled by the squish codec.
func squishFormat(format bcn.Format) (squish.Format, bool) {
	switch format {
	case bcn.FormatDXT1:
		return squish.FormatDXT1, true
	case bcn.FormatDXT3:
		return squish.FormatDXT3, true
	case bcn.FormatDXT5:
		return squish.FormatDXT5, true
	default:
		return 0, false
	}
}

// detectFormat resolves the pixel format of a header and a label for it.
func detectFormat(header *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10) (bcn.Format, string) {
	if dx10 != nil {
		return formatFromDXGI(dx10.DXGIFormat), fmt.Sprintf("DXGI %d", dx10.DXGIFormat)
	}

	pf := header.PixelFormat
	switch {
	case pf.Flags&bcn.DDSPFFourCC != 0:
		code := fourCCString(pf.FourCC)
		return formatFromFourCC(code), code
	case pf.Flags&bcn.DDSPFRGB != 0 && pf.Flags&bcn.DDSPFAlphaPixels != 0 && pf.RGBBitCount == 32:
		if pf.ABitMask != 0xff000000 || pf.GBitMask != 0x0000ff00 {
			break
		}
		if pf.RBitMask == 0x000000ff && pf.BBitMask == 0x00ff0000 {
			return bcn.FormatRGBA8, "RGBA8"
		}
		if pf.RBitMask == 0x00ff0000 && pf.BBitMask == 0x000000ff {
			return bcn.FormatBGRA8, "BGRA8"
		}
	}

	return bcn.FormatUnknown, "unknown"
}

func formatFromFourCC(code string) bcn.Format {
	switch code {
	case "DXT1":
		return bcn.FormatDXT1
	case "DXT2", "DXT3":
		return bcn.FormatDXT3
	case "DXT4", "DXT5":
		return bcn.FormatDXT5
	case "ATI1", "BC4U", "BC4S":
		return bcn.FormatBC4
	case "ATI2", "BC5U", "BC5S":
		return bcn.FormatBC5
	default:
		return bcn.FormatUnknown
	}
}

func formatFromDXGI(code uint32) bcn.Format {
	switch code {
	case dxgiBC1:
		return bcn.FormatDXT1
	case dxgiBC2:
		return bcn.FormatDXT3
	case dxgiBC3:
		return bcn.FormatDXT5
	case dxgiBC4:
		return bcn.FormatBC4
	case dxgiBC5:
		return bcn.FormatBC5
	case dxgiBGRA8:
		return bcn.FormatBGRA8
	case dxgiRGBA8:
		return bcn.FormatRGBA8
	default:
		return bcn.FormatUnknown
	}
}

// expectedDataLength returns the payload size of one width x height level,
// or -1 for formats the container cannot size.
func expectedDataLength(format bcn.Format, width, height int) int {
	blocks := ((width + 3) / 4) * ((height + 3) / 4)
	switch format {
	case bcn.FormatDXT1, bcn.FormatBC4:
		return blocks * 8
	case bcn.FormatDXT3, bcn.FormatDXT5, bcn.FormatBC5:
		return blocks * 16
	case bcn.FormatRGBA8, bcn.FormatBGRA8:
		return width * height * 4
	default:
		return -1
	}
}

// makeHeader builds the DDS header for a texture. EDDS headers carry the
// ENF1 tag; plain DDS headers carry the top level's linear size or pitch.
func makeHeader(width, height, mipMapCount uint32, format bcn.Format, enfusion bool) (*bcn.DDSHeader, error) {
	hdr := &bcn.DDSHeader{
		Size:        bcn.DDSHeaderSize,
		Flags:       bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat,
		Height:      height,
		Width:       width,
		Depth:       1,
		MipMapCount: mipMapCount,
		Caps:        bcn.DDSCapsTexture,
	}
	hdr.PixelFormat.Size = bcn.DDSPixelFormatSize
	if mipMapCount > 1 {
		hdr.Flags |= bcn.DDSFlagMipmapCount
		hdr.Caps |= bcn.DDSCapsComplex | bcn.DDSCapsMipmap
	}
	if enfusion {
		hdr.Reserved1[1] = enfusionTag
	}

	pf := &hdr.PixelFormat
	switch format {
	case bcn.FormatDXT1, bcn.FormatDXT3, bcn.FormatDXT5, bcn.FormatBC4, bcn.FormatBC5:
		hdr.Flags |= bcn.DDSFlagLinearSize
		pf.Flags = bcn.DDSPFFourCC
		pf.FourCC = fourCC(formatFourCC(format))
		if !enfusion {
			size, err := u32FromInt(expectedDataLength(format, int(width), int(height)))
			if err != nil {
				return nil, err
			}
			hdr.PitchOrLinearSize = size
		}
	case bcn.FormatRGBA8, bcn.FormatBGRA8:
		hdr.Flags |= bcn.DDSFlagPitch
		pf.Flags = bcn.DDSPFRGB | bcn.DDSPFAlphaPixels
		pf.RGBBitCount = 32
		pf.GBitMask = 0x0000ff00
		pf.ABitMask = 0xff000000
		if format == bcn.FormatRGBA8 {
			pf.RBitMask, pf.BBitMask = 0x000000ff, 0x00ff0000
		} else {
			pf.RBitMask, pf.BBitMask = 0x00ff0000, 0x000000ff
		}
		hdr.PitchOrLinearSize = width * 4
	default:
		return nil, ErrInvalidFormat
	}

	return hdr, nil
}

func formatFourCC(format bcn.Format) string {
	switch format {
	case bcn.FormatDXT1:
		return "DXT1"
	case bcn.FormatDXT3:
		return "DXT3"
	case bcn.FormatDXT5:
		return "DXT5"
	case bcn.FormatBC4:
		return "ATI1"
	default:
		return "ATI2"
	}
}
