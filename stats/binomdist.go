// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// BinomialDist is a binomial distribution.
type BinomialDist struct {
	// N is the number of independent Bernoulli trials. N >= 0.
	//
	// If N=1, this is equivalent to the Bernoulli distribution.
	N int

	// P is the probability of success in each trial. 0 <= P <= 1.
	P float64
}

func (d BinomialDist) dist() distuv.Binomial {
	return distuv.Binomial{N: float64(d.N), P: d.P}
}

// PMF is the probability of getting exactly int(k) successes in d.N
// independent Bernoulli trials with probability d.P.
func (d BinomialDist) PMF(k float64) float64 {
	ki := int(math.Floor(k))
	if ki < 0 || ki > d.N {
		return 0
	}
	// Log-space formulas misbehave at the degenerate corners.
	if d.P == 0 {
		if ki == 0 {
			return 1
		}
		return 0
	} else if d.P == 1 {
		if ki == d.N {
			return 1
		}
		return 0
	}
	return d.dist().Prob(float64(ki))
}

// CDF is the probability of getting k or fewer successes in d.N
// independent Bernoulli trials with probability d.P.
func (d BinomialDist) CDF(k float64) float64 {
	k = math.Floor(k)
	if k < 0 {
		return 0
	} else if k >= float64(d.N) {
		return 1
	}
	if d.P == 0 {
		return 1
	} else if d.P == 1 {
		return 0
	}
	return d.dist().CDF(k)
}

// InvCDF returns the smallest count k such that CDF(k) >= y, for y in
// [0, 1]. This is the usual quantile of a discrete distribution.
//
// The binomial CDF is a step function, so InvCDF(CDF(k)) == k for
// integer k, but CDF(InvCDF(y)) may exceed y.
func (d BinomialDist) InvCDF(y float64) float64 {
	if y < 0 || y > 1 {
		return nan
	} else if y == 0 {
		return 0
	} else if y == 1 {
		return float64(d.N)
	}
	// CDF is monotone in k, so binary search over 0..N.
	return float64(sort.Search(d.N, func(k int) bool {
		return d.CDF(float64(k)) >= y
	}))
}

func (d BinomialDist) Bounds() (float64, float64) {
	return 0, float64(d.N)
}

func (d BinomialDist) Step() float64 {
	return 1
}

func (d BinomialDist) Mean() float64 {
	return float64(d.N) * d.P
}

func (d BinomialDist) Variance() float64 {
	return float64(d.N) * d.P * (1 - d.P)
}

// NormalApprox returns a normal distribution approximation of
// binomial distribution d.
//
// Because the binomial distribution is discrete and the normal
// distribution is continuous, the caller must apply a continuity
// correction when using this approximation. Specifically, if b is the
// binomial distribution and n is the normal approximation, operations
// map as follows:
//
//	b.PMF(k) => n.CDF(k+0.5) - n.CDF(k-0.5)
//	b.CDF(k) => n.CDF(k+0.5)
func (d BinomialDist) NormalApprox() distuv.Normal {
	return distuv.Normal{Mu: d.Mean(), Sigma: math.Sqrt(d.Variance())}
}
