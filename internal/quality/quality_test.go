// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package quality

import (
	"errors"
	"math"
	"testing"
)

func TestCompareIdentical(t *testing.T) {
	t.Parallel()

	pix := []byte{10, 20, 30, 255, 200, 100, 0, 128}
	r, err := Compare(pix, pix, 2, 1)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if r.Pixels != 2 || r.MaxError != 0 || r.RMSE != 0 || r.MeanDeltaE != 0 || !math.IsInf(r.PSNR, 1) {
		t.Fatalf("report = %+v", r)
	}
}

func TestCompareErrors(t *testing.T) {
	t.Parallel()

	want := []byte{0, 0, 0, 255, 100, 100, 100, 255}
	got := []byte{3, 0, 0, 250, 100, 104, 100, 255}

	r, err := Compare(want, got, 2, 1)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if r.MaxError != 4 || r.AlphaMaxError != 5 {
		t.Fatalf("max %d alpha %d", r.MaxError, r.AlphaMaxError)
	}
	wantRMSE := math.Sqrt((9.0 + 16.0) / 6.0)
	if math.Abs(r.RMSE-wantRMSE) > 1e-9 {
		t.Fatalf("rmse %f, want %f", r.RMSE, wantRMSE)
	}
	wantPSNR := 10 * math.Log10(255*255/(25.0/6.0))
	if math.Abs(r.PSNR-wantPSNR) > 1e-9 {
		t.Fatalf("psnr %f, want %f", r.PSNR, wantPSNR)
	}
	if r.MeanDeltaE <= 0 {
		t.Fatalf("mean dE %f, want > 0", r.MeanDeltaE)
	}
}

func TestCompareSkipsTransparentSource(t *testing.T) {
	t.Parallel()

	want := []byte{0, 0, 0, 0, 50, 50, 50, 255}
	got := []byte{255, 255, 255, 0, 50, 50, 50, 255}

	r, err := Compare(want, got, 2, 1)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if r.Pixels != 1 || r.MaxError != 0 {
		t.Fatalf("report = %+v", r)
	}
}

func TestCompareSizeMismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		want, got []byte
		w, h      int
	}{
		{name: "short-got", want: make([]byte, 16), got: make([]byte, 12), w: 2, h: 2},
		{name: "short-want", want: make([]byte, 4), got: make([]byte, 16), w: 2, h: 2},
		{name: "zero-size", want: nil, got: nil, w: 0, h: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Compare(tc.want, tc.got, tc.w, tc.h); !errors.Is(err, ErrSizeMismatch) {
				t.Fatalf("expected ErrSizeMismatch, got %v", err)
			}
		})
	}
}
