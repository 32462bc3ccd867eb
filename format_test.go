// SPDX-License-Identifier: MIT
// Copyright (c) 2026 acmi
// Source: github.com/acmi/squish

package squish

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr error
	}{
		{in: "dxt1", want: FormatDXT1},
		{in: " BC1 ", want: FormatDXT1},
		{in: "DXT3", want: FormatDXT3},
		{in: "bc3", want: FormatDXT5},
		{in: "dxt2", wantErr: ErrUnsupportedFormat},
	}

	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if !errors.Is(err, tc.wantErr) || (err == nil && got != tc.want) {
			t.Errorf("ParseFormat(%q) = %v, %v, want %v, %v", tc.in, got, err, tc.want, tc.wantErr)
		}
		if err == nil {
			if back, _ := ParseFormat(got.String()); back != got {
				t.Errorf("ParseFormat(%q) = %v", got.String(), back)
			}
		}
	}
}

func TestParseMethodAndMetric(t *testing.T) {
	t.Parallel()

	methods := map[string]Method{"cluster": MethodClusterFit, "": MethodClusterFit, "Range": MethodRangeFit, "range-fit": MethodRangeFit}
	for in, want := range methods {
		got, err := ParseMethod(in)
		if err != nil || got != want {
			t.Errorf("ParseMethod(%q) = %v, %v, want %v", in, got, err, want)
		}
		if back, _ := ParseMethod(got.String()); back != got {
			t.Errorf("ParseMethod(%q.String()) = %v", got, back)
		}
	}
	if _, err := ParseMethod("iterative"); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("ParseMethod(iterative): %v", err)
	}

	metrics := map[string]Metric{"perceptual": MetricPerceptual, "": MetricPerceptual, "UNIFORM": MetricUniform}
	for in, want := range metrics {
		got, err := ParseMetric(in)
		if err != nil || got != want {
			t.Errorf("ParseMetric(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseMetric("lab"); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("ParseMetric(lab): %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{name: "zero", opts: Options{}},
		{name: "range-uniform", opts: Options{Method: MethodRangeFit, Metric: MetricUniform, WeightAlpha: true, Workers: 3}},
		{name: "bad-method", opts: Options{Method: 9}, wantErr: ErrInvalidOptions},
		{name: "bad-metric", opts: Options{Metric: 9}, wantErr: ErrInvalidOptions},
		{name: "negative-workers", opts: Options{Workers: -1}, wantErr: ErrInvalidOptions},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if err := tc.opts.validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
