// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rep

import (
	"fmt"
	"sort"

	"github.com/densviz/densviz/stats"
)

// OverflowPolicy controls what a dot layout does when local density
// requires more stacking height than a renderer might want.
type OverflowPolicy int

const (
	// OverflowKeep never merges or drops dots; stacks simply grow
	// as tall as needed.
	OverflowKeep OverflowPolicy = iota
)

// A Dot is one dot of a quantile dot plot: a quantile's x position
// and the vertical slot it stacks into. Slots count up from 0.
type Dot struct {
	X    float64
	Slot int
}

// DotLayout is a quantile dot plot: a fixed number of sample
// quantiles drawn as stacked dots of equal diameter. It is immutable
// once built.
type DotLayout struct {
	// QuantileCount is the number of dots.
	QuantileCount int

	// BinWidth is the dot diameter in x units.
	BinWidth float64

	// Dots holds one dot per quantile, in ascending x order.
	Dots []Dot

	// cdfXs, cdfPs are the knots of the piecewise-linear CDF
	// implied by the dot positions.
	cdfXs, cdfPs []float64
}

// LayoutDots lays out a quantile dot plot of s: quantileCount
// quantiles at probabilities (i-0.5)/quantileCount, stacked greedily
// into dots of diameter binWidth. The layout is deterministic: the
// same quantiles and bin width always produce the same slots.
//
// It returns an error wrapping stats.ErrInvalidParameter if s is
// empty, quantileCount or binWidth is not positive, or policy is
// unknown.
func LayoutDots(s stats.Sample, quantileCount int, binWidth float64, policy OverflowPolicy) (*DotLayout, error) {
	if len(s.Xs) == 0 {
		return nil, fmt.Errorf("%w: empty sample", stats.ErrInvalidParameter)
	}
	if quantileCount <= 0 {
		return nil, fmt.Errorf("%w: quantile count %d <= 0", stats.ErrInvalidParameter, quantileCount)
	}
	if binWidth <= 0 {
		return nil, fmt.Errorf("%w: bin width %v <= 0", stats.ErrInvalidParameter, binWidth)
	}
	if policy != OverflowKeep {
		return nil, fmt.Errorf("%w: unknown overflow policy %d", stats.ErrInvalidParameter, policy)
	}

	l := &DotLayout{
		QuantileCount: quantileCount,
		BinWidth:      binWidth,
		Dots:          make([]Dot, quantileCount),
	}

	// The quantiles are computed in ascending probability order,
	// so the dots are already sorted by x.
	xs := make([]float64, quantileCount)
	for i := range xs {
		p := (float64(i+1) - 0.5) / float64(quantileCount)
		xs[i] = s.Quantile(p)
	}

	// Greedy stacking: each dot takes the lowest slot whose last
	// dot is at least a diameter to its left. With OverflowKeep
	// this never drops a dot, so slotX only ever grows.
	var slotX []float64 // x of the rightmost dot in each slot
	for i, x := range xs {
		slot := len(slotX)
		for j, last := range slotX {
			if x-last >= binWidth {
				slot = j
				break
			}
		}
		if slot == len(slotX) {
			slotX = append(slotX, x)
		} else {
			slotX[slot] = x
		}
		l.Dots[i] = Dot{X: x, Slot: slot}
	}

	l.buildCDF()
	return l, nil
}

// Height returns the tallest stack in the layout, in dots.
func (l *DotLayout) Height() int {
	max := 0
	for _, d := range l.Dots {
		if d.Slot+1 > max {
			max = d.Slot + 1
		}
	}
	return max
}

// buildCDF precomputes the piecewise-linear CDF through the dot
// positions. For m distinct positions the knots are the plotting
// positions (x_(i), (i-0.5)/m), generalized to tied positions by
// taking the midpoint of each tie group's cumulative range, with the
// 0 and 1 levels reached half a dot beyond the extreme positions
// (dots have diameter BinWidth, so the drawing extends that far).
func (l *DotLayout) buildCDF() {
	m := float64(len(l.Dots))
	xs := []float64{l.Dots[0].X - l.BinWidth/2}
	ps := []float64{0}
	for i := 0; i < len(l.Dots); {
		j := i
		for j < len(l.Dots) && l.Dots[j].X == l.Dots[i].X {
			j++
		}
		xs = append(xs, l.Dots[i].X)
		ps = append(ps, (float64(i+j)/2)/m)
		i = j
	}
	xs = append(xs, l.Dots[len(l.Dots)-1].X+l.BinWidth/2)
	ps = append(ps, 1)
	l.cdfXs, l.cdfPs = xs, ps
}

// CDF returns the empirical CDF of the binned quantile set evaluated
// at x by linear interpolation between dot positions. This is the
// distribution a reader reconstructs from the dot plot, and it is
// what each original observation is mapped through for the PIT.
func (l *DotLayout) CDF(x float64) float64 {
	if x <= l.cdfXs[0] {
		return 0
	}
	if x >= l.cdfXs[len(l.cdfXs)-1] {
		return 1
	}
	// First knot >= x.
	i := sort.SearchFloat64s(l.cdfXs, x)
	x0, x1 := l.cdfXs[i-1], l.cdfXs[i]
	p0, p1 := l.cdfPs[i-1], l.cdfPs[i]
	return p0 + (p1-p0)*(x-x0)/(x1-x0)
}
