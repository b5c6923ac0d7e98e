// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rep

import (
	"fmt"
	"math"
	"sort"

	"github.com/densviz/densviz/stats"
)

// MinBinWidth is the smallest bin width BuildHistogram will use. It
// is the fallback for degenerate samples whose interquartile range
// and total range are both zero, where any width rule would divide by
// zero.
const MinBinWidth = 1e-3

// Histogram is a density histogram: bin heights are normalized so the
// total area is 1. It is immutable once built.
type Histogram struct {
	// BinWidth is the common width of all bins.
	BinWidth float64

	// Edges are the len(Heights)+1 bin boundaries, in ascending
	// order. Bins are left-closed; the last bin is closed on both
	// sides so the sample maximum is counted.
	//
	// Edges are aligned to integer multiples of BinWidth, with
	// Edges[0] the largest such multiple <= the sample minimum.
	// The anchor rule matters: where bin edges fall relative to a
	// discontinuity in the underlying density changes how visible
	// the discontinuity is, so edges are pinned to a fixed
	// absolute alignment rather than floating with the sample
	// minimum.
	Edges []float64

	// Heights[i] is the density in bin i.
	Heights []float64
}

// FDWidth returns the Freedman–Diaconis bin width for s,
// 2*IQR/n^(1/3). A robust rule: it uses the interquartile range, so
// outliers widen the bins far less than with variance-based rules.
//
// Freedman, D. and Diaconis, P. (1981) On the histogram as a density
// estimator: L₂ theory.
//
// For degenerate samples with zero interquartile range it falls back
// to spanning the sample range with one bin per ~sqrt(n) points, and
// to MinBinWidth if the range is zero too.
func FDWidth(s stats.Sample) float64 {
	n := s.Weight()
	if w := 2 * s.IQR() * math.Pow(n, -1.0/3); w > 0 {
		return w
	}
	min, max := s.Bounds()
	if w := (max - min) / math.Max(1, math.Sqrt(n)); w > 0 {
		return w
	}
	return MinBinWidth
}

// BuildHistogram bins s into a density histogram with the given bin
// width, or the Freedman–Diaconis width if width is zero. A negative
// width returns an error wrapping stats.ErrInvalidParameter, as does
// an empty sample.
func BuildHistogram(s stats.Sample, width float64) (*Histogram, error) {
	if len(s.Xs) == 0 {
		return nil, fmt.Errorf("%w: empty sample", stats.ErrInvalidParameter)
	}
	if width < 0 {
		return nil, fmt.Errorf("%w: bin width %v < 0", stats.ErrInvalidParameter, width)
	}
	if width == 0 {
		width = FDWidth(s)
	}

	min, max := s.Bounds()
	origin := math.Floor(min/width) * width
	nbins := int(math.Ceil((max - origin) / width))
	if nbins < 1 {
		nbins = 1
	}

	h := &Histogram{
		BinWidth: width,
		Edges:    make([]float64, nbins+1),
		Heights:  make([]float64, nbins),
	}
	for i := range h.Edges {
		h.Edges[i] = origin + float64(i)*width
	}

	counts := make([]float64, nbins)
	for i, x := range s.Xs {
		bin := int((x - origin) / width)
		if bin >= nbins {
			// The sample maximum lands exactly on the last
			// edge; close the last bin.
			bin = nbins - 1
		}
		if s.Weights == nil {
			counts[bin]++
		} else {
			counts[bin] += s.Weights[i]
		}
	}

	// Normalize to total area 1.
	total := s.Weight() * width
	for i, c := range counts {
		h.Heights[i] = c / total
	}
	return h, nil
}

// CDF returns the area of the histogram below x: full bins below x
// plus the partial area of x's own bin at its constant height. This
// makes the histogram's CDF piecewise linear and continuous.
func (h *Histogram) CDF(x float64) float64 {
	if x <= h.Edges[0] {
		return 0
	}
	if x >= h.Edges[len(h.Edges)-1] {
		return 1
	}
	// First edge > x; x is in bin i-1.
	i := sort.Search(len(h.Edges), func(i int) bool { return h.Edges[i] > x })
	area := 0.0
	for j := 0; j < i-1; j++ {
		area += h.Heights[j] * h.BinWidth
	}
	return area + h.Heights[i-1]*(x-h.Edges[i-1])
}
