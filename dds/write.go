// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package dds

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/acmi/squish"
	"github.com/disintegration/gift"
	"github.com/woozymasta/bcn"
)

// WriteOptions configures texture writing.
type WriteOptions struct {
	// Format is the stored pixel format. FormatUnknown means DXT5.
	Format bcn.Format
	// MaxMipMaps limits the mip chain; 0 means the full chain.
	MaxMipMaps int
	// Compress stores EDDS blocks as LZ4 chunk streams where it pays off.
	// Plain DDS output ignores it.
	Compress bool
	// Encode configures the squish encoder for DXT formats.
	Encode *squish.Options
	// BCn configures the bcn encoder for the remaining formats.
	BCn *bcn.EncodeOptions
	// MipFilter resamples mip levels; nil uses a 2x2 box filter.
	MipFilter gift.Resampling
}

func (o *WriteOptions) orDefault() *WriteOptions {
	if o == nil {
		return &WriteOptions{Format: bcn.FormatDXT5, Compress: true}
	}
	if o.Format == bcn.FormatUnknown {
		c := *o
		c.Format = bcn.FormatDXT5
		return &c
	}

	return o
}

// Write writes img to path as a DXT5 EDDS file with a full, LZ4 compressed
// mip chain.
func Write(img image.Image, path string) error {
	return WriteWithOptions(img, path, nil)
}

// WriteWithOptions writes img to path as an EDDS file.
func WriteWithOptions(img image.Image, path string, opts *WriteOptions) error {
	opts = opts.orDefault()

	payloads, err := encodeChain(img, opts)
	if err != nil {
		return err
	}

	b := img.Bounds()
	return WriteFromBlocksWithCompression(path, opts.Format, b.Dx(), b.Dy(), payloads, opts.Compress)
}

// WriteFromBlocks writes an LZ4 compressed EDDS file from pre-encoded mip
// payloads ordered largest first.
func WriteFromBlocks(path string, format bcn.Format, width, height int, mipmaps [][]byte) error {
	return WriteFromBlocksWithCompression(path, format, width, height, mipmaps, true)
}

// WriteFromBlocksWithCompression writes an EDDS file from pre-encoded mip
// payloads ordered largest first. compress=false stores COPY blocks only.
func WriteFromBlocksWithCompression(path string, format bcn.Format, width, height int, mipmaps [][]byte, compress bool) error {
	if err := validatePayloads(format, width, height, mipmaps); err != nil {
		return err
	}

	blocks := make([]block, len(mipmaps))
	for i, mip := range mipmaps {
		if !compress {
			blocks[i] = copyBlock(mip)
			continue
		}
		b, err := packBlock(mip)
		if err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrEncodeMipmap, i, err)
		}
		blocks[i] = b
	}

	return createFile(path, func(w io.Writer) error {
		if err := writeHeader(w, format, width, height, len(mipmaps), true); err != nil {
			return err
		}
		return writeBlocks(w, blocks)
	})
}

// WriteDDS writes img to w as a plain DDS file, largest level first.
func WriteDDS(w io.Writer, img image.Image, opts *WriteOptions) error {
	opts = opts.orDefault()

	payloads, err := encodeChain(img, opts)
	if err != nil {
		return err
	}

	b := img.Bounds()
	return WriteDDSFromBlocks(w, opts.Format, b.Dx(), b.Dy(), payloads)
}

// WriteDDSFromBlocks writes pre-encoded mip payloads, ordered largest first,
// to w as a plain DDS file.
func WriteDDSFromBlocks(w io.Writer, format bcn.Format, width, height int, mipmaps [][]byte) error {
	if err := validatePayloads(format, width, height, mipmaps); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, format, width, height, len(mipmaps), false); err != nil {
		return err
	}
	for i, mip := range mipmaps {
		if _, err := bw.Write(mip); err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrPayloadWrite, i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrPayloadWrite, err)
	}

	return nil
}

// encodeChain builds and encodes the mip chain of img.
func encodeChain(img image.Image, opts *WriteOptions) ([][]byte, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, b.Dx(), b.Dy())
	}

	mips := GenerateMipmaps(img, opts.MaxMipMaps, opts.MipFilter)
	payloads := make([][]byte, len(mips))
	for i, mip := range mips {
		data, err := encodeLevel(mip, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: mipmap %d: %v", ErrEncodeMipmap, i, err)
		}
		payloads[i] = data
	}

	return payloads, nil
}

func encodeLevel(img *image.NRGBA, opts *WriteOptions) ([]byte, error) {
	if format, ok := squishFormat(opts.Format); ok {
		return squish.CompressImage(img, format, opts.Encode)
	}

	data, _, _, err := bcn.EncodeImageWithOptions(img, opts.Format, opts.BCn)
	return data, err
}

func validatePayloads(format bcn.Format, width, height int, mipmaps [][]byte) error {
	if len(mipmaps) == 0 {
		return ErrEmptyMipmaps
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(mipmaps) > MaxMipLevels {
		return fmt.Errorf("%w: %d mipmaps", ErrSizeOverflow, len(mipmaps))
	}

	for i, mip := range mipmaps {
		want := expectedDataLength(format, mipDimension(width, i), mipDimension(height, i))
		if want <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidFormat, format)
		}
		if len(mip) != want {
			return fmt.Errorf("%w: mipmap %d: expected %d, got %d", ErrMipmapSizeMismatch, i, want, len(mip))
		}
	}

	return nil
}

func writeHeader(w io.Writer, format bcn.Format, width, height, mipmaps int, enfusion bool) error {
	w32, err := u32FromInt(width)
	if err != nil {
		return err
	}
	h32, err := u32FromInt(height)
	if err != nil {
		return err
	}
	m32, err := u32FromInt(mipmaps)
	if err != nil {
		return err
	}

	header, err := makeHeader(w32, h32, m32, format, enfusion)
	if err != nil {
		return err
	}
	if err := bcn.WriteDDSMagic(w); err != nil {
		return fmt.Errorf("%w: %v", ErrHeaderWrite, err)
	}
	if err := bcn.WriteDDSHeader(w, header); err != nil {
		return fmt.Errorf("%w: %v", ErrHeaderWrite, err)
	}

	return nil
}

// createFile runs write against a buffered file at path.
func createFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %v", ErrPayloadWrite, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}

	return nil
}
