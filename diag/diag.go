// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// diag wires the calibration-diagnostic pipeline together: draw a
// sample from a stepped reference distribution, fit a graphical
// density representation to it, map the sample back through the
// representation's CDF (the probability integral transform), and
// compare the result's ECDF against a simultaneous uniform band.
//
// If the representation were a faithful picture of the distribution,
// the transformed sample would be uniform and its ECDF would stay
// inside the band; excursions beyond the band are representation
// bias, not sampling noise.
//
// Everything here is a pure function of its arguments. Presentation
// is somebody else's problem: these functions return plain series
// (coordinates and band limits) for a renderer to draw.
package diag // import "github.com/densviz/densviz/diag"

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/densviz/densviz/band"
	"github.com/densviz/densviz/rep"
	"github.com/densviz/densviz/stats"
	"github.com/densviz/densviz/stepdist"
)

// A Point is one (x, y) pair of a computed series.
type Point struct {
	X, Y float64
}

// A PITSample is a sample mapped through a candidate CDF. If the
// candidate matches the distribution the sample was drawn from, the
// PITSample is uniform on [0, 1].
type PITSample []float64

// SampleFrom draws n independent observations from d. The sample is
// drawn once and reused across all representations and their
// diagnostics.
func SampleFrom(d *stepdist.Dist, n int, src rand.Source) (stats.Sample, error) {
	return d.Sample(n, src)
}

// ReferenceDensityCurve evaluates d's density at each of xs, for
// overlaying the true density on a fitted representation.
func ReferenceDensityCurve(d *stepdist.Dist, xs []float64) []Point {
	pts := make([]Point, len(xs))
	for i, x := range xs {
		pts[i] = Point{x, d.PDF(x)}
	}
	return pts
}

// FitDotLayout builds a quantile dot plot of s. See rep.LayoutDots.
func FitDotLayout(s stats.Sample, quantileCount int, binWidth float64) (*rep.DotLayout, error) {
	return rep.LayoutDots(s, quantileCount, binWidth, rep.OverflowKeep)
}

// FitHistogram builds a density histogram of s with the
// Freedman–Diaconis bin width rule. See rep.BuildHistogram.
func FitHistogram(s stats.Sample) (*rep.Histogram, error) {
	return rep.BuildHistogram(s, 0)
}

// FitKernelDensity builds a gridded kernel density estimate of s with
// the given bandwidth rule. See rep.FitKernelDensity.
func FitKernelDensity(s stats.Sample, rule stats.BandwidthRule) (*rep.KernelDensity, error) {
	return rep.FitKernelDensity(s, rule)
}

// ComputePIT maps each observation of s through the representation's
// CDF. The same transform serves all three representations via the
// rep.CDFer capability.
func ComputePIT(r rep.CDFer, s stats.Sample) PITSample {
	pit := make(PITSample, len(s.Xs))
	for i, x := range s.Xs {
		pit[i] = r.CDF(x)
	}
	return pit
}

// ComputeBand calibrates the simultaneous acceptance band for a
// uniform ECDF of size n on a k-point grid. See band.Calibrate.
func ComputeBand(n, k int, confidence float64, src rand.Source) (band.Band, error) {
	return band.Calibrate(n, k, confidence, 0, src)
}

// ECDFDeviation returns, at each grid point p_j = (j+1)/k, the deviation
// of the PIT sample's empirical CDF from uniformity,
// ECDF(p_j) - p_j. This is the series plotted against a Band (after
// subtracting the grid from the band limits likewise).
//
// It returns an error wrapping stats.ErrInvalidParameter if k is not
// positive or the PIT sample is empty.
func ECDFDeviation(pit PITSample, k int) ([]Point, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: grid size %d <= 0", stats.ErrInvalidParameter, k)
	}
	if len(pit) == 0 {
		return nil, fmt.Errorf("%w: empty PIT sample", stats.ErrInvalidParameter)
	}
	sorted := make([]float64, len(pit))
	copy(sorted, pit)
	sort.Float64s(sorted)

	pts := make([]Point, k)
	for j, c := range stats.GridCounts(sorted, k) {
		p := float64(j+1) / float64(k)
		pts[j] = Point{p, float64(c)/float64(len(pit)) - p}
	}
	return pts, nil
}
