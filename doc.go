// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

/*
Package squish implements the S3TC (DXT1, DXT3, DXT5) block texture codec.

Images are split into 4x4 tiles. Each tile is compressed to one 8 byte
(DXT1) or 16 byte (DXT3, DXT5) block. Colour is fitted with one of three
strategies: a range fit along the principal axis of the tile's colours, an
iterative cluster fit, or an exact single-colour fit chosen automatically for
flat tiles. Alpha is stored as explicit 4-bit values (DXT3) or as an
interpolated 3-bit index ramp (DXT5).

Tiles are independent and are compressed on a pool of goroutines. The output
does not depend on the number of workers.
*/
package squish
