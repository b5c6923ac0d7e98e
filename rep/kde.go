// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rep

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/densviz/densviz/stats"
)

// kdeGridSize is the number of points the density estimate is
// evaluated at. The grid is fixed-size: the PIT of an observation is
// defined by trapezoidal integration over this grid, so the grid is
// part of the representation, not a rendering detail.
const kdeGridSize = 512

// kdeGridMargin is how far the grid extends past the sample range, in
// bandwidths.
const kdeGridMargin = 3

// KernelDensity is a kernel density estimate evaluated on a fixed
// grid. It is immutable once built.
type KernelDensity struct {
	// Bandwidth is the kernel bandwidth selected by the rule the
	// estimate was built with.
	Bandwidth float64

	// Xs is the evaluation grid, in ascending order, spanning the
	// sample range with a margin of a few bandwidths.
	Xs []float64

	// Ys is the estimated density at each grid point.
	Ys []float64

	// cum[i] is the trapezoidal integral of the density from
	// Xs[0] to Xs[i], normalized so cum[len-1] == 1.
	cum []float64

	// total is the unnormalized trapezoidal area under Ys.
	total float64
}

// FitKernelDensity estimates the density of s with a Gaussian-kernel
// KDE, using rule to select the bandwidth (stats.BandwidthNormalReference
// if rule is nil). It returns an error wrapping
// stats.ErrInvalidParameter if s is empty.
func FitKernelDensity(s stats.Sample, rule stats.BandwidthRule) (*KernelDensity, error) {
	if len(s.Xs) == 0 {
		return nil, fmt.Errorf("%w: empty sample", stats.ErrInvalidParameter)
	}
	if rule == nil {
		rule = stats.BandwidthNormalReference
	}
	h := rule(s)

	lo, hi := s.Bounds()
	lo, hi = lo-kdeGridMargin*h, hi+kdeGridMargin*h

	kd := &KernelDensity{
		Bandwidth: h,
		Xs:        floats.Span(make([]float64, kdeGridSize), lo, hi),
		Ys:        make([]float64, kdeGridSize),
	}
	dist := stats.KDE{Bandwidth: h}.From(s)
	for i, x := range kd.Xs {
		kd.Ys[i] = dist.PDF(x)
	}

	// Accumulate the running trapezoidal integral and normalize
	// by the total area so the grid CDF reaches exactly 1.
	kd.total = integrate.Trapezoidal(kd.Xs, kd.Ys)
	kd.cum = make([]float64, kdeGridSize)
	for i := 1; i < kdeGridSize; i++ {
		dx := kd.Xs[i] - kd.Xs[i-1]
		kd.cum[i] = kd.cum[i-1] + dx*(kd.Ys[i]+kd.Ys[i-1])/2/kd.total
	}
	return kd, nil
}

// CDF returns the cumulative probability the gridded estimate assigns
// below x: the normalized trapezoidal integral of the density from
// the left edge of the grid to x. Points outside the grid map to 0
// or 1.
func (kd *KernelDensity) CDF(x float64) float64 {
	if x <= kd.Xs[0] {
		return 0
	}
	if x >= kd.Xs[len(kd.Xs)-1] {
		return 1
	}
	// First grid point >= x.
	i := sort.SearchFloat64s(kd.Xs, x)
	// Integrate the final partial cell with the interpolated
	// density at x.
	x0, x1 := kd.Xs[i-1], kd.Xs[i]
	y0, y1 := kd.Ys[i-1], kd.Ys[i]
	yx := y0 + (y1-y0)*(x-x0)/(x1-x0)
	return kd.cum[i-1] + (x-x0)*(y0+yx)/2/kd.total
}
