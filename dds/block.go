// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package dds

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

const (
	// MagicCOPY marks a block stored verbatim.
	MagicCOPY = "COPY"
	// MagicLZ4 marks a block stored as an LZ4 chunk stream.
	MagicLZ4 = "LZ4 "

	// ChunkSize is the uncompressed size of one LZ4 chunk and of the
	// rolling dictionary.
	ChunkSize = 64 * 1024

	// minCompressSize is the smallest payload worth an LZ4 stream.
	minCompressSize = 1024
	// maxChunkBytes bounds the compressed length of one chunk.
	maxChunkBytes = 1<<23 - 1
	// lastChunk flags the final chunk of a stream.
	lastChunk = 0x80
)

// block is one mip level as stored in an EDDS file. For LZ4 blocks the
// body starts with the little-endian uncompressed size.
type block struct {
	magic string
	body  []byte
}

func copyBlock(data []byte) block {
	return block{magic: MagicCOPY, body: data}
}

// packBlock stores data as an LZ4 chunk stream, or as COPY when the data
// is small or any chunk compresses worse than 85%.
func packBlock(data []byte) (block, error) {
	size, err := u32FromInt(len(data))
	if err != nil {
		return block{}, err
	}
	if len(data) < minCompressSize {
		return copyBlock(data), nil
	}

	var out bytes.Buffer
	out.Grow(len(data) / 2)
	out.Write(binary.LittleEndian.AppendUint32(nil, size))

	scratch := make([]byte, lz4.CompressBlockBound(ChunkSize))
	for start := 0; start < len(data); start += ChunkSize {
		chunk := data[start:min(start+ChunkSize, len(data))]

		n, err := lz4.CompressBlockHC(chunk, scratch, 0, nil, nil)
		if err != nil {
			return block{}, fmt.Errorf("%w: %v", ErrLZ4Compress, err)
		}
		if n == 0 || n*100 > len(chunk)*85 {
			return copyBlock(data), nil
		}
		if n > maxChunkBytes {
			return block{}, fmt.Errorf("%w: chunk of %d bytes", ErrSizeOverflow, n)
		}

		var flags byte
		if start+len(chunk) == len(data) {
			flags = lastChunk
		}
		out.Write([]byte{byte(n), byte(n >> 8), byte(n >> 16), flags})
		out.Write(scratch[:n])
	}

	if out.Len()*100 > len(data)*85 {
		return copyBlock(data), nil
	}

	return block{magic: MagicLZ4, body: out.Bytes()}, nil
}

// unpackBlock returns the want bytes stored in b.
func unpackBlock(b block, want int) ([]byte, error) {
	switch b.magic {
	case MagicCOPY:
		if len(b.body) != want {
			return nil, fmt.Errorf("%w: COPY block of %d bytes, want %d", ErrDecodedSizeMismatch, len(b.body), want)
		}
		return b.body, nil
	case MagicLZ4:
		return inflateChunks(b.body, want)
	default:
		return nil, fmt.Errorf("%w: %q", ErrBlockTableUnknownMagic, b.magic)
	}
}

// inflateChunks decodes an LZ4 chunk stream. A leading uncompressed size is
// optional: it is consumed only when it matches want and is followed by a
// plausible chunk header.
func inflateChunks(stream []byte, want int) ([]byte, error) {
	if want <= 0 {
		return nil, fmt.Errorf("%w: target size %d", ErrDecodedSizeMismatch, want)
	}
	if len(stream) >= 8 {
		prefix := int(binary.LittleEndian.Uint32(stream))
		first := int(stream[4]) | int(stream[5])<<8 | int(stream[6])<<16
		if prefix == want && first > 0 && first <= maxChunkBytes {
			stream = stream[4:]
		}
	}

	out := make([]byte, want)
	n := 0
	for {
		if len(stream) < 4 {
			return nil, fmt.Errorf("%w: truncated chunk header", ErrChunkStream)
		}
		size := int(stream[0]) | int(stream[1])<<8 | int(stream[2])<<16
		flags := stream[3]
		stream = stream[4:]
		if flags&^lastChunk != 0 {
			return nil, fmt.Errorf("%w: flags %#02x", ErrChunkStream, flags)
		}
		if size == 0 || size > len(stream) {
			return nil, fmt.Errorf("%w: chunk of %d bytes, %d left", ErrChunkStream, size, len(stream))
		}
		if n == want {
			return nil, fmt.Errorf("%w: data past %d bytes", ErrDecodedSizeMismatch, want)
		}

		dict := out[max(0, n-ChunkSize):n]
		dst := out[n:min(n+ChunkSize, want)]
		got, err := lz4.UncompressBlockWithDict(stream[:size], dst, dict)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Decode, err)
		}
		n += got
		stream = stream[size:]

		if flags&lastChunk != 0 {
			break
		}
	}

	if n != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrDecodedSizeMismatch, n, want)
	}
	if len(stream) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrChunkStream, len(stream))
	}

	return out, nil
}

type tableEntry struct {
	magic string
	size  int32
}

// readBlockTable reads count (magic, size) entries.
func readBlockTable(r io.Reader, count int) ([]tableEntry, error) {
	table := make([]tableEntry, count)
	var raw [8]byte
	for i := range table {
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrBlockTableRead, i, err)
		}

		magic := string(raw[:4])
		size := int32(binary.LittleEndian.Uint32(raw[4:]))
		if magic != MagicCOPY && magic != MagicLZ4 {
			return nil, fmt.Errorf("%w: entry %d: %q", ErrBlockTableUnknownMagic, i, magic)
		}
		if size < 0 {
			return nil, fmt.Errorf("%w: entry %d: %d", ErrBlockTableInvalidSize, i, size)
		}
		table[i] = tableEntry{magic: magic, size: size}
	}

	return table, nil
}

func readBlockBody(r io.Reader, e tableEntry) (block, error) {
	body := make([]byte, e.size)
	if _, err := io.ReadFull(r, body); err != nil {
		return block{}, fmt.Errorf("%w: %s: %v", ErrBlockBodyRead, e.magic, err)
	}

	return block{magic: e.magic, body: body}, nil
}

// writeBlocks writes the table and bodies of blocks, which are ordered
// largest level first, smallest level first on disk.
func writeBlocks(w io.Writer, blocks []block) error {
	var entry [8]byte
	for i := len(blocks) - 1; i >= 0; i-- {
		size, err := i32FromInt(len(blocks[i].body))
		if err != nil {
			return err
		}
		copy(entry[:4], blocks[i].magic)
		binary.LittleEndian.PutUint32(entry[4:], uint32(size))
		if _, err := w.Write(entry[:]); err != nil {
			return fmt.Errorf("%w: table entry %d: %v", ErrPayloadWrite, i, err)
		}
	}

	for i := len(blocks) - 1; i >= 0; i-- {
		if _, err := w.Write(blocks[i].body); err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrPayloadWrite, i, err)
		}
	}

	return nil
}
