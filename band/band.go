// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// band computes simultaneous acceptance bands for the empirical CDF
// of a uniform sample.
//
// Pointwise binomial intervals at level 1-γ are too loose as a joint
// test: an ECDF evaluated at K grid points gets K chances to break
// out, so the probability of staying inside everywhere is well below
// 1-γ. The calibrator searches for the single per-point tail
// probability γ whose pointwise intervals, taken jointly across the
// whole grid, contain a uniform ECDF with exactly the target
// probability.
package band // import "github.com/densviz/densviz/band"

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/exp/rand"

	"github.com/densviz/densviz/stats"
)

// ErrNonConvergence is returned when the calibration search cannot
// bracket the target coverage. Consumers rely on the simultaneous
// guarantee, so an uncalibrated pointwise band is never returned in
// its place.
var ErrNonConvergence = errors.New("band calibration did not converge")

// DefaultTrials is the number of Monte Carlo trials used to estimate
// simultaneous coverage.
const DefaultTrials = 4000

// coverageTol is the tolerance on the achieved simultaneous coverage.
const coverageTol = 1e-4

// searchIters bounds the bisection of γ. The Monte Carlo coverage
// estimate is a step function of γ, so the search must terminate on
// an iteration count, not on progress.
const searchIters = 60

// Band is a simultaneous acceptance envelope for the ECDF of a
// uniform sample of size N, evaluated at the K grid points k/K for
// k = 1..K.
type Band struct {
	N, K int

	// Coverage is the requested joint coverage probability.
	Coverage float64

	// Gamma is the calibrated per-point tail probability: each
	// point's interval is the binomial gamma/2 and 1-gamma/2
	// quantile, and jointly they contain a uniform ECDF with
	// probability ~Coverage.
	Gamma float64

	// Lower and Upper are the envelope values at each grid point,
	// on the ECDF (probability) scale. Lower[j] <= Upper[j], and
	// both are non-decreasing in j.
	Lower, Upper []float64
}

// Contains reports whether grid counts (the number of sample values
// <= k/K for each k, as produced by stats.GridCounts) stay within the
// envelope at every grid point.
func (b Band) Contains(counts []int) bool {
	if len(counts) != b.K {
		panic("grid count length != band K")
	}
	n := float64(b.N)
	for j, c := range counts {
		e := float64(c) / n
		if e < b.Lower[j] || e > b.Upper[j] {
			return false
		}
	}
	return true
}

// Covers reports whether the ECDF of the sample xs stays within the
// envelope at every grid point. xs need not be sorted.
func (b Band) Covers(xs []float64) bool {
	if len(xs) != b.N {
		panic("sample size != band N")
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return b.Contains(stats.GridCounts(sorted, b.K))
}

// Calibrate computes the simultaneous band for a uniform ECDF of size
// n on a k-point grid with the given joint coverage, using trials
// Monte Carlo trials (DefaultTrials if 0) drawn from src (the global
// source if nil).
//
// The per-point intervals are exact binomial quantiles: under the
// null, the count at grid point j is Binomial(n, (j+1)/k). The
// simultaneous coverage of a candidate γ is estimated on a set of
// simulated uniform ECDFs that is drawn once and reused across the
// whole search, which makes coverage monotone in γ and the bisection
// deterministic given src.
//
// It returns an error wrapping stats.ErrInvalidParameter for invalid
// sizes or coverage, and ErrNonConvergence if the target coverage
// cannot be bracketed.
func Calibrate(n, k int, coverage float64, trials int, src rand.Source) (Band, error) {
	if n <= 0 || k <= 0 {
		return Band{}, fmt.Errorf("%w: n=%d, k=%d", stats.ErrInvalidParameter, n, k)
	}
	if !(0 < coverage && coverage < 1) {
		return Band{}, fmt.Errorf("%w: coverage %v not in (0,1)", stats.ErrInvalidParameter, coverage)
	}
	if trials == 0 {
		trials = DefaultTrials
	}

	// Simulate the null once: counts[t][j] is the number of
	// uniforms <= (j+1)/k in trial t. These are the only
	// sample-dependent quantities coverage depends on.
	uniform := rand.Float64
	if src != nil {
		uniform = rand.New(src).Float64
	}
	counts := make([][]int, trials)
	us := make([]float64, n)
	for t := range counts {
		for i := range us {
			us[i] = uniform()
		}
		sort.Float64s(us)
		counts[t] = stats.GridCounts(us, k)
	}

	// Per-point binomial quantiles at tail probability gamma, on
	// the count scale.
	bounds := func(gamma float64) (lo, hi []int) {
		lo, hi = make([]int, k), make([]int, k)
		for j := 0; j < k; j++ {
			b := stats.BinomialDist{N: n, P: float64(j+1) / float64(k)}
			lo[j] = int(b.InvCDF(gamma / 2))
			hi[j] = int(b.InvCDF(1 - gamma/2))
		}
		return
	}
	coverageAt := func(lo, hi []int) float64 {
		inside := 0
	trial:
		for _, cnt := range counts {
			for j, c := range cnt {
				if c < lo[j] || c > hi[j] {
					continue trial
				}
			}
			inside++
		}
		return float64(inside) / float64(trials)
	}

	// Coverage is non-increasing in γ: γ=0 gives full-range
	// intervals (coverage 1). Find an upper γ with coverage at or
	// below the target to bracket the root.
	gloHas := 1.0
	glo, ghi := 0.0, 1-coverage
	for iter := 0; ; iter++ {
		lo, hi := bounds(ghi)
		if c := coverageAt(lo, hi); c <= coverage {
			break
		}
		if iter == 8 || ghi >= 1 {
			return Band{}, ErrNonConvergence
		}
		glo = ghi
		ghi *= 2
		if ghi > 1 {
			ghi = 1
		}
	}

	// Bisect γ. Keep the largest γ whose coverage is still >= the
	// target, so the returned band errs on the conservative side
	// of the Monte Carlo step function.
	gamma, achieved := glo, gloHas
	for i := 0; i < searchIters; i++ {
		mid := (glo + ghi) / 2
		lo, hi := bounds(mid)
		c := coverageAt(lo, hi)
		if c >= coverage {
			glo, gamma, achieved = mid, mid, c
		} else {
			ghi = mid
		}
		if c >= coverage && c-coverage < coverageTol {
			break
		}
	}
	if achieved < coverage {
		return Band{}, ErrNonConvergence
	}

	b := Band{N: n, K: k, Coverage: coverage, Gamma: gamma,
		Lower: make([]float64, k), Upper: make([]float64, k)}
	lo, hi := bounds(gamma)
	for j := 0; j < k; j++ {
		b.Lower[j] = float64(lo[j]) / float64(n)
		b.Upper[j] = float64(hi[j]) / float64(n)
	}
	return b, nil
}

// A Calibrator caches calibrated bands. Band calibration depends only
// on (N, K, coverage), not on any sample, so diagnostics that share a
// grid can share a band. Safe for concurrent use.
type Calibrator struct {
	// Trials is the Monte Carlo trial count for new calibrations
	// (DefaultTrials if 0).
	Trials int

	// Seed seeds the random source for each calibration, keeping
	// the cache deterministic.
	Seed uint64

	mu    sync.Mutex
	bands map[bandKey]Band
}

type bandKey struct {
	n, k     int
	coverage float64
}

// Band returns the simultaneous band for (n, k, coverage), computing
// and caching it on first use.
func (c *Calibrator) Band(n, k int, coverage float64) (Band, error) {
	key := bandKey{n, k, coverage}
	c.mu.Lock()
	b, ok := c.bands[key]
	c.mu.Unlock()
	if ok {
		return b, nil
	}

	// Calibrate outside the lock; duplicate work on a race is
	// harmless and the result is deterministic.
	b, err := Calibrate(n, k, coverage, c.Trials, rand.NewSource(c.Seed))
	if err != nil {
		return Band{}, err
	}
	c.mu.Lock()
	if c.bands == nil {
		c.bands = make(map[bandKey]Band)
	}
	c.bands[key] = b
	c.mu.Unlock()
	return b, nil
}
