// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

// squishtool encodes images to DXT1/3/5 textures, decodes DDS and EDDS
// textures to PNG, and reports codec quality.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/acmi/squish"
	"github.com/acmi/squish/dds"
	"github.com/acmi/squish/internal/quality"
	"github.com/woozymasta/bcn"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const usageStr = `squishtool encodes and decodes S3TC (DXT1/3/5) textures.

Usage: choose one of

    squishtool -encode [flags] input.png
    squishtool -decode [flags] input.dds|input.edds
    squishtool -info input.dds|input.edds
    squishtool -compare [flags] input.png

Encode reads BMP, GIF, JPEG, PNG, TIFF or WEBP and writes a DDS, EDDS or
raw block file. The container follows -container, or the -out extension.
Decode writes the largest mip level as PNG.
Compare round-trips the image through the codec and prints error metrics.

Flags:
`

// errUsage marks command line mistakes; they exit with status 2.
var errUsage = errors.New("usage")

var (
	encodeFlag  = flag.Bool("encode", false, "encode an image to a texture")
	decodeFlag  = flag.Bool("decode", false, "decode a texture to PNG")
	infoFlag    = flag.Bool("info", false, "print texture header information")
	compareFlag = flag.Bool("compare", false, "round-trip an image and print quality metrics")

	formatFlag      = flag.String("format", "dxt5", "block format: dxt1|dxt3|dxt5")
	methodFlag      = flag.String("method", "cluster", "colour fit: cluster|range")
	metricFlag      = flag.String("metric", "perceptual", "error metric: perceptual|uniform")
	weightAlphaFlag = flag.Bool("weight-alpha", false, "weight colour error by pixel alpha")
	workersFlag     = flag.Int("workers", 0, "worker goroutines; 0 means GOMAXPROCS")
	mipmapsFlag     = flag.Int("mipmaps", 0, "mip levels to write; 0 means the full chain")
	containerFlag   = flag.String("container", "", "output container: dds|edds|raw (default from -out)")
	lz4Flag         = flag.Bool("lz4", true, "LZ4-compress EDDS blocks")
	outFlag         = flag.String("out", "", "output path (default derived from input)")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("squishtool: ")

	flag.Usage = func() {
		_, _ = os.Stderr.WriteString(usageStr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(); err != nil {
		log.Print(err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run() error {
	if flag.NArg() != 1 {
		return fmt.Errorf("%w: expected exactly one input path", errUsage)
	}
	input := flag.Arg(0)

	modes := 0
	for _, m := range []bool{*encodeFlag, *decodeFlag, *infoFlag, *compareFlag} {
		if m {
			modes++
		}
	}
	if modes != 1 {
		return fmt.Errorf("%w: specify exactly one of -encode, -decode, -info or -compare", errUsage)
	}

	switch {
	case *infoFlag:
		return info(input)
	case *decodeFlag:
		return decode(input)
	}

	format, opts, err := codecOptions()
	if err != nil {
		return err
	}
	if *compareFlag {
		return compare(input, format, opts)
	}
	return encode(input, format, opts)
}

func codecOptions() (squish.Format, *squish.Options, error) {
	format, err := squish.ParseFormat(*formatFlag)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	method, err := squish.ParseMethod(*methodFlag)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	metric, err := squish.ParseMetric(*metricFlag)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if *workersFlag < 0 || *mipmapsFlag < 0 {
		return 0, nil, fmt.Errorf("%w: -workers and -mipmaps must not be negative", errUsage)
	}

	return format, &squish.Options{
		Method:      method,
		Metric:      metric,
		WeightAlpha: *weightAlphaFlag,
		Workers:     *workersFlag,
	}, nil
}

func encode(input string, format squish.Format, opts *squish.Options) error {
	img, err := loadImage(input)
	if err != nil {
		return err
	}

	container := *containerFlag
	out := *outFlag
	if container == "" {
		container = containerFromPath(out)
	}
	if out == "" {
		out = replaceExt(input, "."+container)
	}

	start := time.Now()
	switch container {
	case "raw":
		blocks, err := squish.CompressImage(img, format, opts)
		if err != nil {
			return err
		}
		err = os.WriteFile(out, blocks, 0o644)
		if err != nil {
			return err
		}
	case "dds", "edds":
		wopts := &dds.WriteOptions{
			Format:     containerFormat(format),
			MaxMipMaps: *mipmapsFlag,
			Compress:   *lz4Flag,
			Encode:     opts,
		}
		if container == "edds" {
			err = dds.WriteWithOptions(img, out, wopts)
		} else {
			err = writeDDSFile(out, img, wopts)
		}
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown container %q", errUsage, container)
	}

	b := img.Bounds()
	log.Printf("encoded %s (%dx%d) as %s %s to %s in %v", input, b.Dx(), b.Dy(), format, container, out, time.Since(start).Round(time.Millisecond))
	return nil
}

func decode(input string) error {
	start := time.Now()
	img, err := dds.ReadWithOptions(input, &dds.ReadOptions{Workers: *workersFlag})
	if err != nil {
		return err
	}

	out := *outFlag
	if out == "" {
		out = replaceExt(input, ".png")
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Printf("decoded %s to %s in %v", input, out, time.Since(start).Round(time.Millisecond))
	return nil
}

func info(input string) error {
	i, err := dds.ReadInfo(input)
	if err != nil {
		return err
	}

	container := "DDS"
	if i.Enfusion {
		container = "EDDS"
	}
	fmt.Printf("container: %s\n", container)
	fmt.Printf("size:      %dx%d\n", i.Width, i.Height)
	fmt.Printf("format:    %s\n", i.Label)
	fmt.Printf("mipmaps:   %d\n", i.MipMaps)
	if len(i.Blocks) > 0 {
		fmt.Printf("blocks:    %s\n", strings.Join(i.Blocks, ","))
	}
	return nil
}

func compare(input string, format squish.Format, opts *squish.Options) error {
	img, err := loadImage(input)
	if err != nil {
		return err
	}
	src := squish.ToNRGBA(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	start := time.Now()
	blocks, err := squish.Compress(src.Pix, w, h, format, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	decoded, err := squish.Decompress(blocks, w, h, format, opts)
	if err != nil {
		return err
	}
	report, err := quality.Compare(src.Pix, decoded, w, h)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s/%s/%s: %s encode=%v\n", input, format, opts.Method, opts.Metric, report, elapsed.Round(time.Millisecond))
	return nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func writeDDSFile(path string, img image.Image, opts *dds.WriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dds.WriteDDS(f, img, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func containerFormat(format squish.Format) bcn.Format {
	switch format {
	case squish.FormatDXT1:
		return bcn.FormatDXT1
	case squish.FormatDXT3:
		return bcn.FormatDXT3
	default:
		return bcn.FormatDXT5
	}
}

func containerFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dds":
		return "dds"
	case ".raw", ".bin":
		return "raw"
	default:
		return "edds"
	}
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
