// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// stepdist implements a three-piece reference distribution with a
// discontinuous ("stepped") density: a truncated standard-normal left
// tail, a flat middle, and a truncated scaled-normal right tail. The
// two density discontinuities at the split points are the feature the
// calibration diagnostics are tested against.
package stepdist // import "github.com/densviz/densviz/stepdist"

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/densviz/densviz/stats"
)

// Dist is a stepped three-piece distribution. It is immutable once
// constructed; use New or NewFromSplits.
//
// Let a = SplitLeft and b = SplitRight. The density is proportional
// to the standard normal density below a, constant on [a, b], and
// proportional to a centered normal density with standard deviation
// RightScale above b. The three pieces carry total mass PLeft,
// PRight-PLeft, and 1-PRight respectively.
type Dist struct {
	// SplitLeft and SplitRight are the boundaries of the flat
	// middle piece. SplitLeft < SplitRight.
	SplitLeft, SplitRight float64

	// RightScale is the standard deviation of the normal density
	// the right tail is cut from. RightScale > 0.
	RightScale float64

	// PLeft and PRight are the CDF values at SplitLeft and
	// SplitRight. 0 < PLeft < PRight < 1.
	PLeft, PRight float64

	// CDF values of the untruncated tail normals at the split
	// points, fixed at construction.
	leftTailCDF  float64 // Φ(SplitLeft)
	rightTailCDF float64 // Φ(SplitRight / RightScale)
}

// region identifies which piece of the distribution a point falls in.
// The middle piece owns both boundaries (inclusive-left convention:
// x < SplitLeft is the left tail, SplitLeft <= x <= SplitRight is the
// middle).
type region int

const (
	regionLeft region = iota
	regionMiddle
	regionRight
)

func (d *Dist) regionOf(x float64) region {
	switch {
	case x < d.SplitLeft:
		return regionLeft
	case x <= d.SplitRight:
		return regionMiddle
	default:
		return regionRight
	}
}

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// New returns a stepped distribution with the given split points,
// right tail scale, and mixture weights. It returns an error wrapping
// stats.ErrInvalidParameter if splitLeft >= splitRight, rightScale is
// not positive, or the weights do not satisfy 0 < pLeft < pRight < 1.
func New(splitLeft, splitRight, rightScale, pLeft, pRight float64) (*Dist, error) {
	switch {
	case !(splitLeft < splitRight):
		return nil, fmt.Errorf("%w: splitLeft %v >= splitRight %v", stats.ErrInvalidParameter, splitLeft, splitRight)
	case !(rightScale > 0):
		return nil, fmt.Errorf("%w: rightScale %v <= 0", stats.ErrInvalidParameter, rightScale)
	case !(0 < pLeft && pLeft < pRight && pRight < 1):
		return nil, fmt.Errorf("%w: weights must satisfy 0 < pLeft (%v) < pRight (%v) < 1", stats.ErrInvalidParameter, pLeft, pRight)
	}
	d := &Dist{
		SplitLeft:  splitLeft,
		SplitRight: splitRight,
		RightScale: rightScale,
		PLeft:      pLeft,
		PRight:     pRight,
	}
	d.leftTailCDF = stdNormal.CDF(splitLeft)
	d.rightTailCDF = stdNormal.CDF(splitRight / rightScale)
	return d, nil
}

// NewFromSplits is like New, with the mixture weights derived from
// the standard normal CDF at the split points: pLeft = Φ(splitLeft)
// and pRight = Φ(splitRight).
func NewFromSplits(splitLeft, splitRight, rightScale float64) (*Dist, error) {
	return New(splitLeft, splitRight, rightScale,
		stdNormal.CDF(splitLeft), stdNormal.CDF(splitRight))
}

// PDF returns the density at x. The density is discontinuous at
// SplitLeft and SplitRight.
func (d *Dist) PDF(x float64) float64 {
	switch d.regionOf(x) {
	case regionLeft:
		return d.PLeft * stdNormal.Prob(x) / d.leftTailCDF
	case regionMiddle:
		return (d.PRight - d.PLeft) / (d.SplitRight - d.SplitLeft)
	default:
		tail := distuv.Normal{Mu: 0, Sigma: d.RightScale}
		return (1 - d.PRight) * tail.Prob(x) / (1 - d.rightTailCDF)
	}
}

// CDF returns the cumulative distribution at x. Unlike the density,
// the CDF is continuous everywhere.
func (d *Dist) CDF(x float64) float64 {
	switch d.regionOf(x) {
	case regionLeft:
		return d.PLeft * stdNormal.CDF(x) / d.leftTailCDF
	case regionMiddle:
		frac := (x - d.SplitLeft) / (d.SplitRight - d.SplitLeft)
		return d.PLeft + frac*(d.PRight-d.PLeft)
	default:
		tail := distuv.Normal{Mu: 0, Sigma: d.RightScale}
		return d.PRight + (1-d.PRight)*(tail.CDF(x)-d.rightTailCDF)/(1-d.rightTailCDF)
	}
}

// InvCDF returns the quantile function at p. The value of p must be
// in [0, 1]; values outside it return NaN.
func (d *Dist) InvCDF(p float64) float64 {
	switch {
	case math.IsNaN(p) || p < 0 || p > 1:
		return math.NaN()
	case p == 0:
		return math.Inf(-1)
	case p == 1:
		return math.Inf(1)
	case p < d.PLeft:
		// Invert p = PLeft * Φ(x) / Φ(a).
		return stdNormal.Quantile(p * d.leftTailCDF / d.PLeft)
	case p <= d.PRight:
		frac := (p - d.PLeft) / (d.PRight - d.PLeft)
		return d.SplitLeft + frac*(d.SplitRight-d.SplitLeft)
	default:
		tail := distuv.Normal{Mu: 0, Sigma: d.RightScale}
		frac := (p - d.PRight) / (1 - d.PRight)
		return tail.Quantile(d.rightTailCDF + frac*(1-d.rightTailCDF))
	}
}

// Bounds returns the range containing all but ~1% of the
// distribution's weight.
func (d *Dist) Bounds() (float64, float64) {
	return d.InvCDF(0.005), d.InvCDF(0.995)
}

// Rand returns one draw from the distribution using src, or the
// global random source if src is nil.
//
// Sampling is by composition: a uniform variate picks the piece by
// its mass, then the piece is sampled by inverse CDF with the
// appropriate truncation bound. This is exactly InvCDF applied to a
// uniform variate, so the draw has the stepped density exactly.
func (d *Dist) Rand(src rand.Source) float64 {
	var u float64
	if src == nil {
		u = rand.Float64()
	} else {
		u = rand.New(src).Float64()
	}
	return d.InvCDF(u)
}

// Sample returns a sample of n independent draws from the
// distribution. It returns an error wrapping stats.ErrInvalidParameter
// if n is not positive.
func (d *Dist) Sample(n int, src rand.Source) (stats.Sample, error) {
	if n <= 0 {
		return stats.Sample{}, fmt.Errorf("%w: sample size %d <= 0", stats.ErrInvalidParameter, n)
	}
	uniform := rand.Float64
	if src != nil {
		uniform = rand.New(src).Float64
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = d.InvCDF(uniform())
	}
	return stats.Sample{Xs: xs}, nil
}
