// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "sort"

// ECDF returns the empirical cumulative distribution function of xs
// evaluated at x, that is, the fraction of xs that are <= x. xs must
// be sorted in ascending order.
func ECDF(xs []float64, x float64) float64 {
	if len(xs) == 0 {
		return nan
	}
	// Index of the first value > x.
	i := sort.Search(len(xs), func(i int) bool { return xs[i] > x })
	return float64(i) / float64(len(xs))
}

// GridCounts returns, for each grid point p_j = (j+1)/k with
// j = 0..k-1, the number of values in xs that are <= p_j. xs must be
// sorted in ascending order and is typically a sample on [0, 1].
//
// This is the sufficient statistic for comparing an empirical CDF
// against a band evaluated on a regular probability grid: under the
// null hypothesis that xs is uniform, each count is Binomial(len(xs),
// p_j).
func GridCounts(xs []float64, k int) []int {
	counts := make([]int, k)
	i := 0
	for j := 0; j < k; j++ {
		p := float64(j+1) / float64(k)
		for i < len(xs) && xs[i] <= p {
			i++
		}
		counts[j] = i
	}
	return counts
}
