// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "testing"

func TestECDF(t *testing.T) {
	xs := []float64{1, 2, 2, 3}
	testFunc(t, "ECDF", func(x float64) float64 { return ECDF(xs, x) },
		map[float64]float64{
			0:   0,
			1:   0.25,
			1.5: 0.25,
			2:   0.75,
			2.5: 0.75,
			3:   1,
			4:   1,
		})
}

func TestGridCounts(t *testing.T) {
	xs := []float64{0.05, 0.25, 0.25, 0.8}
	got := GridCounts(xs, 4)
	want := []int{3, 3, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("want counts %v, got %v", want, got)
			break
		}
	}

	// Counts at the grid agree with the ECDF.
	for j, c := range GridCounts(xs, 10) {
		p := float64(j+1) / 10
		if want := ECDF(xs, p) * 4; float64(c) != want {
			t.Errorf("want count %v at %v, got %v", want, p, c)
		}
	}
}
