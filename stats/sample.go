// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Sample is a collection of possibly weighted data points.
type Sample struct {
	// Xs is the slice of sample values.
	Xs []float64

	// Weights[i] is the weight of sample Xs[i]. If Weights is
	// nil, all Xs have weight 1. Weights must have the same
	// length of Xs and all values must be non-negative.
	Weights []float64

	// Sorted indicates that Xs is sorted in ascending order.
	Sorted bool
}

// Bounds returns the minimum and maximum values of xs.
func Bounds(xs []float64) (min float64, max float64) {
	if len(xs) == 0 {
		return nan, nan
	}
	min, max = xs[0], xs[0]
	for _, x := range xs {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return
}

// Bounds returns the minimum and maximum values of the Sample.
//
// If the Sample is weighted, this ignores samples with zero weight.
func (s Sample) Bounds() (min float64, max float64) {
	if len(s.Xs) == 0 || (!s.Sorted && s.Weights == nil) {
		return Bounds(s.Xs)
	}

	if s.Sorted {
		if s.Weights == nil {
			return s.Xs[0], s.Xs[len(s.Xs)-1]
		}
		min, max = nan, nan
		for i, w := range s.Weights {
			if w != 0 {
				min = s.Xs[i]
				break
			}
		}
		if math.IsNaN(min) {
			return
		}
		for i := range s.Weights {
			if s.Weights[len(s.Weights)-1-i] != 0 {
				max = s.Xs[len(s.Weights)-1-i]
				break
			}
		}
	} else {
		min, max = inf, -inf
		for i, x := range s.Xs {
			w := s.Weights[i]
			if w != 0 {
				if x < min {
					min = x
				}
				if x > max {
					max = x
				}
			}
		}
		if math.IsInf(min, 1) {
			min, max = nan, nan
		}
	}
	return
}

// Sum returns the (possibly weighted) sum of the Sample.
func (s Sample) Sum() float64 {
	sum := 0.0
	if s.Weights == nil {
		for _, x := range s.Xs {
			sum += x
		}
	} else {
		for i, x := range s.Xs {
			sum += x * s.Weights[i]
		}
	}
	return sum
}

// Weight returns the total weight of the Sample.
func (s Sample) Weight() float64 {
	if s.Weights == nil {
		return float64(len(s.Xs))
	}
	sum := 0.0
	for _, w := range s.Weights {
		sum += w
	}
	return sum
}

// Mean returns the arithmetic mean of the Sample.
func (s Sample) Mean() float64 {
	if len(s.Xs) == 0 {
		return nan
	}
	return stat.Mean(s.Xs, s.Weights)
}

// Variance returns the sample variance of the Sample.
func (s Sample) Variance() float64 {
	if len(s.Xs) == 0 {
		return nan
	}
	return stat.Variance(s.Xs, s.Weights)
}

// StdDev returns the sample standard deviation of the Sample.
func (s Sample) StdDev() float64 {
	if len(s.Xs) == 0 {
		return nan
	}
	return stat.StdDev(s.Xs, s.Weights)
}

// Quantile returns the sample value X at which q*weight of the sample
// is <= X. q is a value in [0, 1]. Values of q outside [0, 1] return
// the minimum or maximum of the sample, respectively.
//
// Quantile uses the median-unbiased estimator ("R8"), which
// interpolates between adjacent order statistics at plotting
// positions (i - 1/3)/(n + 1/3). This estimator is approximately
// unbiased for the quantiles of any distribution, which matters when
// the quantiles themselves become plotted data, as in a quantile dot
// plot.
//
// Weighted samples are not supported.
func (s Sample) Quantile(q float64) float64 {
	if len(s.Xs) == 0 {
		return nan
	} else if s.Weights != nil {
		panic("Quantile requires an unweighted sample")
	}

	if !s.Sorted {
		s = *s.Copy().Sort()
	}

	n := float64(len(s.Xs))
	h := (n+1.0/3)*q + 1.0/3
	if h <= 1 {
		return s.Xs[0]
	} else if h >= n {
		return s.Xs[len(s.Xs)-1]
	}
	fl := math.Floor(h)
	lo := s.Xs[int(fl)-1]
	hi := s.Xs[int(fl)]
	return lo + (h-fl)*(hi-lo)
}

// IQR returns the interquartile range of the Sample.
//
// Weighted samples are not supported.
func (s Sample) IQR() float64 {
	if !s.Sorted {
		s = *s.Copy().Sort()
	}
	return s.Quantile(0.75) - s.Quantile(0.25)
}

// Copy returns a copy of the Sample.
//
// The returned Sample shares no state with s, so they can both be
// modified without affecting the other.
func (s Sample) Copy() *Sample {
	xs := make([]float64, len(s.Xs))
	copy(xs, s.Xs)

	var weights []float64
	if s.Weights != nil {
		weights = make([]float64, len(s.Weights))
		copy(weights, s.Weights)
	}

	return &Sample{xs, weights, s.Sorted}
}

// Sort sorts the samples in place in s and returns s.
//
// A sorted sample improves the performance of some algorithms.
func (s *Sample) Sort() *Sample {
	if s.Sorted || sort.Float64sAreSorted(s.Xs) {
		// All set.
	} else if s.Weights == nil {
		sort.Float64s(s.Xs)
	} else {
		sort.Sort(&sampleSorter{s.Xs, s.Weights})
	}
	s.Sorted = true
	return s
}

type sampleSorter struct {
	xs      []float64
	weights []float64
}

func (p *sampleSorter) Len() int {
	return len(p.xs)
}

func (p *sampleSorter) Less(i, j int) bool {
	return p.xs[i] < p.xs[j]
}

func (p *sampleSorter) Swap(i, j int) {
	p.xs[i], p.xs[j] = p.xs[j], p.xs[i]
	p.weights[i], p.weights[j] = p.weights[j], p.weights[i]
}
