// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

/*
Package dds reads and writes DDS textures and Enfusion EDDS containers
around the squish S3TC codec.

DXT1, DXT3 and DXT5 payloads are encoded and decoded with squish. Other
pixel formats (RGBA8, BGRA8, BC4, BC5) are delegated to the bcn codec.

A plain DDS file holds the magic, the header and every mip level, largest
first. An EDDS file holds the same header (tagged "ENF1") followed by a
block table and block bodies, smallest level first. Blocks are stored raw
(COPY) or as an LZ4 chunk stream with a rolling 64KB dictionary.
*/
package dds
