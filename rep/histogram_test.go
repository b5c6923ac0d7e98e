// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/densviz/densviz/stats"
)

// uniformGrid returns n evenly spread points on [0, 1] with the
// median-unbiased plotting positions, so quantile-based statistics
// come out on round values.
func uniformGrid(n int) stats.Sample {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = (float64(i+1) - 0.5) / float64(n)
	}
	return stats.Sample{Xs: xs, Sorted: true}
}

func TestFDWidth(t *testing.T) {
	// A sample of 1000 points with IQR 1.0 gives 2/1000^(1/3).
	xs := make([]float64, 1000)
	for i := range xs {
		xs[i] = 2 * (float64(i+1) - 0.5) / 1000
	}
	s := stats.Sample{Xs: xs, Sorted: true}
	require.InDelta(t, 1.0, s.IQR(), 1e-3)
	require.InDelta(t, 2*s.IQR()/math.Pow(1000, 1.0/3), FDWidth(s), 1e-12)

	// Degenerate: zero IQR but nonzero range.
	s = stats.Sample{Xs: []float64{0, 1, 1, 1, 1, 1, 1, 1, 1, 2}, Sorted: true}
	require.Greater(t, FDWidth(s), 0.0)

	// Fully degenerate: constant sample.
	s = stats.Sample{Xs: []float64{7, 7, 7}, Sorted: true}
	require.Equal(t, MinBinWidth, FDWidth(s))
}

func TestBuildHistogram(t *testing.T) {
	_, err := BuildHistogram(stats.Sample{}, 0)
	require.ErrorIs(t, err, stats.ErrInvalidParameter)
	_, err = BuildHistogram(uniformGrid(10), -1)
	require.ErrorIs(t, err, stats.ErrInvalidParameter)

	s := uniformGrid(100)
	h, err := BuildHistogram(s, 0.1)
	require.NoError(t, err)

	// Edges aligned to multiples of the width, covering the
	// sample range.
	min, max := s.Bounds()
	require.InDelta(t, 0, math.Mod(h.Edges[0], h.BinWidth), 1e-12)
	require.LessOrEqual(t, h.Edges[0], min)
	require.Greater(t, h.Edges[0]+h.BinWidth, min)
	require.GreaterOrEqual(t, h.Edges[len(h.Edges)-1], max)
	require.Len(t, h.Heights, len(h.Edges)-1)

	// Total area is 1.
	area := 0.0
	for _, y := range h.Heights {
		area += y * h.BinWidth
	}
	require.InDelta(t, 1.0, area, 1e-12)
}

func TestHistogramCDF(t *testing.T) {
	s := uniformGrid(1000)
	h, err := BuildHistogram(s, 0)
	require.NoError(t, err)

	require.Equal(t, 0.0, h.CDF(h.Edges[0]-1))
	require.Equal(t, 1.0, h.CDF(h.Edges[len(h.Edges)-1]+1))

	// Continuous, non-decreasing, and close to the uniform CDF
	// for a uniform sample.
	last := 0.0
	for x := -0.1; x <= 1.1; x += 0.003 {
		y := h.CDF(x)
		require.GreaterOrEqual(t, y, last)
		last = y
	}
	for _, x := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		require.InDelta(t, x, h.CDF(x), 0.05, "x=%v", x)
	}
}
