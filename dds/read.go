// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package dds

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/acmi/squish"
	"github.com/woozymasta/bcn"
)

// ReadOptions configures texture decoding.
type ReadOptions struct {
	// Workers bounds the squish decoder's goroutines; 0 means GOMAXPROCS.
	Workers int
	// DecodeOptions are passed to the bcn decoder for non-DXT formats.
	DecodeOptions *bcn.DecodeOptions
}

// Info describes a DDS or EDDS file without decoding its pixels.
type Info struct {
	Width   int
	Height  int
	MipMaps int
	Format  bcn.Format
	// Label names the FourCC, DXGI code or bit layout the format came from.
	Label    string
	Enfusion bool
	// Blocks lists the EDDS block magics, largest level first.
	Blocks []string
}

// ReadConfig reads the dimensions of a DDS or EDDS file.
func ReadConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	header, _, err := readHeaders(f)
	if err != nil {
		return image.Config{}, err
	}
	w, h, err := headerDimensions(header)
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{Width: w, Height: h, ColorModel: color.NRGBAModel}, nil
}

// ReadInfo reads the header and, for EDDS files, the block table of path.
func ReadInfo(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	header, dx10, err := readHeaders(f)
	if err != nil {
		return Info{}, err
	}
	w, h, err := headerDimensions(header)
	if err != nil {
		return Info{}, err
	}

	info := Info{
		Width:    w,
		Height:   h,
		MipMaps:  headerMipCount(header),
		Enfusion: isEnfusion(header),
	}
	info.Format, info.Label = detectFormat(header, dx10)

	if info.Enfusion {
		table, err := readBlockTable(f, info.MipMaps)
		if err != nil {
			return Info{}, err
		}
		for i := len(table) - 1; i >= 0; i-- {
			info.Blocks = append(info.Blocks, table[i].magic)
		}
	}

	return info, nil
}

// Read decodes the largest level of a DDS or EDDS file.
func Read(path string) (image.Image, error) {
	return ReadWithOptions(path, nil)
}

// ReadWithOptions decodes the largest level of a DDS or EDDS file. Files
// whose header lacks the ENF1 tag are read as plain DDS.
func ReadWithOptions(path string, opts *ReadOptions) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	header, dx10, err := readHeaders(f)
	if err != nil {
		return nil, err
	}
	if !isEnfusion(header) {
		return readPlain(bufio.NewReader(f), header, dx10, opts)
	}

	format, label := detectFormat(header, dx10)
	w, h, err := headerDimensions(header)
	if err != nil {
		return nil, err
	}
	size := expectedDataLength(format, w, h)
	if size <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, label)
	}

	data, err := readTopBlock(f, headerMipCount(header), size)
	if err != nil {
		data, err = readLegacyBlob(f, dx10 != nil, size)
		if err != nil {
			return nil, err
		}
	}

	return decodeLevel(data, w, h, format, opts)
}

// ReadDDS decodes the largest level of a plain DDS stream.
func ReadDDS(r io.Reader, opts *ReadOptions) (image.Image, error) {
	header, dx10, err := readHeaders(r)
	if err != nil {
		return nil, err
	}

	return readPlain(r, header, dx10, opts)
}

func readPlain(r io.Reader, header *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10, opts *ReadOptions) (image.Image, error) {
	format, label := detectFormat(header, dx10)
	w, h, err := headerDimensions(header)
	if err != nil {
		return nil, err
	}
	size := expectedDataLength(format, w, h)
	if size <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, label)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadRead, err)
	}

	return decodeLevel(data, w, h, format, opts)
}

// readTopBlock reads the block table and returns the level 0 payload, which
// is stored last.
func readTopBlock(r io.ReadSeeker, count, size int) ([]byte, error) {
	table, err := readBlockTable(r, count)
	if err != nil {
		return nil, err
	}

	var skip int64
	for _, e := range table[:len(table)-1] {
		skip += int64(e.size)
	}
	if _, err := r.Seek(skip, io.SeekCurrent); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlockBodyRead, err)
	}

	b, err := readBlockBody(r, table[len(table)-1])
	if err != nil {
		return nil, err
	}

	return unpackBlock(b, size)
}

// readLegacyBlob reads files that store a single payload straight after the
// header: an LZ4 chunk stream, or raw data of exactly size bytes.
func readLegacyBlob(r io.ReadSeeker, dx10 bool, size int) ([]byte, error) {
	start := int64(4 + bcn.DDSHeaderSize)
	if dx10 {
		start += 20
	}
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadRead, err)
	}

	rest, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadRead, err)
	}

	data, err := inflateChunks(rest, size)
	if err == nil {
		return data, nil
	}
	if len(rest) == size {
		return rest, nil
	}

	return nil, err
}

func decodeLevel(data []byte, width, height int, format bcn.Format, opts *ReadOptions) (image.Image, error) {
	if opts == nil {
		opts = &ReadOptions{}
	}

	if sf, ok := squishFormat(format); ok {
		img, err := squish.DecompressImage(data, width, height, sf, &squish.Options{Workers: opts.Workers})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
		}
		return img, nil
	}

	img, err := bcn.DecodeImageWithOptions(data, width, height, format, opts.DecodeOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}

	return img, nil
}

func readHeaders(r io.Reader) (*bcn.DDSHeader, *bcn.DDSHeaderDX10, error) {
	header, err := bcn.ReadDDSHeader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrHeaderRead, err)
	}

	dx10, err := bcn.ReadDDSHeaderDX10(r, header)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: DX10: %v", ErrHeaderRead, err)
	}

	return header, dx10, nil
}

func isEnfusion(header *bcn.DDSHeader) bool {
	return header.Reserved1[1] == enfusionTag
}

// maxHeaderMips bounds the level count trusted from a header.
const maxHeaderMips = 32

// headerMipCount returns the stored level count, at least 1.
func headerMipCount(header *bcn.DDSHeader) int {
	if header.Caps&bcn.DDSCapsMipmap == 0 || header.MipMapCount == 0 {
		return 1
	}

	return int(min(header.MipMapCount, maxHeaderMips))
}
