// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package dds

import "errors"

var (
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrInvalidDimensions indicates a zero width or height.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidFormat indicates a pixel format the container cannot describe.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrEmptyMipmaps indicates missing mipmap data.
	ErrEmptyMipmaps = errors.New("empty mipmaps")
	// ErrMipmapSizeMismatch indicates a mipmap payload of the wrong length.
	ErrMipmapSizeMismatch = errors.New("mipmap size mismatch")

	// ErrLZ4Compress indicates LZ4 compression failed.
	ErrLZ4Compress = errors.New("LZ4 compression failed")
	// ErrLZ4Decode indicates LZ4 decode failed.
	ErrLZ4Decode = errors.New("LZ4 decode failed")
	// ErrChunkStream indicates a malformed LZ4 chunk stream.
	ErrChunkStream = errors.New("malformed LZ4 chunk stream")
	// ErrDecodedSizeMismatch indicates a block inflated to an unexpected length.
	ErrDecodedSizeMismatch = errors.New("decoded size mismatch")

	// ErrBlockTableUnknownMagic indicates unknown block magic in the table.
	ErrBlockTableUnknownMagic = errors.New("unknown block magic in table")
	// ErrBlockTableInvalidSize indicates an invalid size in the block table.
	ErrBlockTableInvalidSize = errors.New("invalid block size in table")
	// ErrBlockTableRead indicates the block table could not be read.
	ErrBlockTableRead = errors.New("reading block table failed")
	// ErrBlockBodyRead indicates a block body could not be read.
	ErrBlockBodyRead = errors.New("reading block body failed")

	// ErrHeaderRead indicates the DDS header could not be read.
	ErrHeaderRead = errors.New("reading DDS header failed")
	// ErrHeaderWrite indicates the DDS magic or header could not be written.
	ErrHeaderWrite = errors.New("writing DDS header failed")
	// ErrPayloadRead indicates pixel data could not be read.
	ErrPayloadRead = errors.New("reading payload failed")
	// ErrPayloadWrite indicates block or pixel data could not be written.
	ErrPayloadWrite = errors.New("writing payload failed")

	// ErrOpenFile indicates a file could not be opened.
	ErrOpenFile = errors.New("open file failed")
	// ErrCreateFile indicates a file could not be created.
	ErrCreateFile = errors.New("create file failed")

	// ErrEncodeMipmap indicates a mip level could not be encoded.
	ErrEncodeMipmap = errors.New("encode mipmap failed")
	// ErrDecodeImage indicates pixel data could not be decoded.
	ErrDecodeImage = errors.New("decode image failed")
)
