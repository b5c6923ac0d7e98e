// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"
)

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 0.00001
}

func testFunc(t *testing.T, name string, f func(float64) float64, vals map[float64]float64) {
	t.Helper()
	for arg, want := range vals {
		if got := f(arg); !aeq(want, got) {
			t.Errorf("want %s(%v)=%v, got %v", name, arg, want, got)
		}
	}
}

type discreteDist interface {
	PMF(k float64) float64
	CDF(k float64) float64
	Bounds() (float64, float64)
	Step() float64
}

// testDiscreteCDF checks that d's CDF is consistent with accumulating
// its PMF over the support.
func testDiscreteCDF(t *testing.T, name string, d discreteDist) {
	t.Helper()
	lo, hi := d.Bounds()
	if got := d.CDF(lo - d.Step()); got != 0 {
		t.Errorf("want %s(%v)=0, got %v", name, lo-d.Step(), got)
	}
	if got := d.CDF(hi); !aeq(1, got) {
		t.Errorf("want %s(%v)=1, got %v", name, hi, got)
	}
	accum := 0.0
	for k := lo; k <= hi; k += d.Step() {
		accum += d.PMF(k)
		if got := d.CDF(k); !aeq(accum, got) {
			t.Errorf("want %s(%v)=%v, got %v", name, k, accum, got)
		}
		// The CDF is flat between support points.
		if got := d.CDF(k + d.Step()/2); !aeq(accum, got) {
			t.Errorf("want %s(%v)=%v, got %v", name, k+d.Step()/2, accum, got)
		}
	}
}
