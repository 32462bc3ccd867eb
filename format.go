// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

import (
	"fmt"
	"math"
	"strings"
)

// Format selects the S3TC block layout.
type Format uint8

const (
	// FormatDXT1 stores colour only, with optional 1-bit alpha, in 8 byte blocks.
	FormatDXT1 Format = iota + 1
	// FormatDXT3 stores explicit 4-bit alpha followed by colour in 16 byte blocks.
	FormatDXT3
	// FormatDXT5 stores interpolated alpha followed by colour in 16 byte blocks.
	FormatDXT5
)

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	return f >= FormatDXT1 && f <= FormatDXT5
}

// BlockSize returns the number of bytes per 4x4 block, or 0 for an invalid format.
func (f Format) BlockSize() int {
	switch f {
	case FormatDXT1:
		return 8
	case FormatDXT3, FormatDXT5:
		return 16
	default:
		return 0
	}
}

// colourOffset is the offset of the colour sub-block inside a block.
func (f Format) colourOffset() int {
	return f.BlockSize() - 8
}

func (f Format) String() string {
	switch f {
	case FormatDXT1:
		return "DXT1"
	case FormatDXT3:
		return "DXT3"
	case FormatDXT5:
		return "DXT5"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat parses "dxt1", "dxt3" or "dxt5" (case-insensitive, "bc1".."bc3" accepted).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dxt1", "bc1":
		return FormatDXT1, nil
	case "dxt3", "bc2":
		return FormatDXT3, nil
	case "dxt5", "bc3":
		return FormatDXT5, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Method selects the colour fitting strategy for tiles with more than one colour.
type Method uint8

const (
	// MethodClusterFit searches all ordered partitions of the tile colours. Slow, high quality.
	MethodClusterFit Method = iota
	// MethodRangeFit uses the extremes along the principal axis. Fast.
	MethodRangeFit
)

func (m Method) String() string {
	switch m {
	case MethodClusterFit:
		return "cluster"
	case MethodRangeFit:
		return "range"
	default:
		return fmt.Sprintf("Method(%d)", uint8(m))
	}
}

// ParseMethod parses "cluster" or "range".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cluster", "cluster-fit", "":
		return MethodClusterFit, nil
	case "range", "range-fit":
		return MethodRangeFit, nil
	default:
		return 0, fmt.Errorf("%w: method %q", ErrInvalidOptions, s)
	}
}

// Metric selects the per-channel weighting of the colour error.
type Metric uint8

const (
	// MetricPerceptual weights channels by their luma contribution (BT.709).
	MetricPerceptual Metric = iota
	// MetricUniform weights all channels equally.
	MetricUniform
)

func (m Metric) String() string {
	switch m {
	case MetricPerceptual:
		return "perceptual"
	case MetricUniform:
		return "uniform"
	default:
		return fmt.Sprintf("Metric(%d)", uint8(m))
	}
}

// ParseMetric parses "perceptual" or "uniform".
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "perceptual", "":
		return MetricPerceptual, nil
	case "uniform":
		return MetricUniform, nil
	default:
		return 0, fmt.Errorf("%w: metric %q", ErrInvalidOptions, s)
	}
}

// weights returns the channel weights of the metric.
func (m Metric) weights() vec3 {
	if m == MetricUniform {
		return vec3{1, 1, 1}
	}
	return vec3{0.2126, 0.7152, 0.0722}
}

// Options configures compression. The zero value is valid: cluster fit,
// perceptual metric, no alpha weighting, one worker per CPU.
type Options struct {
	// Method is the colour fitting strategy.
	Method Method
	// Metric is the colour error weighting.
	Metric Metric
	// WeightAlpha weights each pixel's colour by its alpha, so that
	// translucent pixels matter less to the fit.
	WeightAlpha bool
	// Workers is the number of goroutines. 0 means runtime.GOMAXPROCS(0).
	Workers int
}

var defaultOptions = Options{}

func (o *Options) orDefault() *Options {
	if o == nil {
		return &defaultOptions
	}
	return o
}

func (o *Options) validate() error {
	if o.Method > MethodRangeFit {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, o.Method)
	}
	if o.Metric > MetricUniform {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, o.Metric)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidOptions, o.Workers)
	}
	return nil
}

// StorageRequirements returns the number of bytes needed to hold a
// width x height image compressed with format. Dimensions whose block or
// RGBA8 buffer size does not fit in an int are rejected with ErrSizeOverflow.
func StorageRequirements(width, height int, format Format) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !format.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if _, err := pixelBytes(width, height); err != nil {
		return 0, err
	}

	blocksW := (width-1)/4 + 1
	blocksH := (height-1)/4 + 1
	blockSize := format.BlockSize()
	if blocksW > math.MaxInt/blockSize/blocksH {
		return 0, fmt.Errorf("%w: %dx%d", ErrSizeOverflow, width, height)
	}
	return blocksW * blocksH * blockSize, nil
}

// pixelBytes returns width*height*4, the size of an RGBA8 buffer.
func pixelBytes(width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > math.MaxInt/4/height {
		return 0, fmt.Errorf("%w: %dx%d", ErrSizeOverflow, width, height)
	}
	return width * height * 4, nil
}
