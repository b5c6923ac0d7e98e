// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"
)

// bimodalSample returns a sample with two well-separated clusters.
// It is deterministic so tests are reproducible.
func bimodalSample(n int) Sample {
	xs := make([]float64, n)
	for i := range xs {
		// Spread points within each cluster so the sample
		// isn't degenerate.
		off := 0.1 * float64(i%7) / 7
		if i%2 == 0 {
			xs[i] = off
		} else {
			xs[i] = 10 + off
		}
	}
	return *(&Sample{Xs: xs}).Sort()
}

func TestBandwidthNormalReference(t *testing.T) {
	s := Sample{Xs: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, Sorted: true}
	sigma := s.StdDev()
	if iqr := s.IQR() / 1.34; iqr < sigma {
		sigma = iqr
	}
	want := 0.9 * sigma * math.Pow(10, -1.0/5)
	if got := BandwidthNormalReference(s); !aeq(want, got) {
		t.Errorf("want bandwidth %v, got %v", want, got)
	}
}

func TestBandwidthDegenerate(t *testing.T) {
	s := Sample{Xs: []float64{4, 4, 4, 4}, Sorted: true}
	if got := BandwidthNormalReference(s); got != MinBandwidth {
		t.Errorf("want floor bandwidth %v, got %v", MinBandwidth, got)
	}
	if got := BandwidthPlugin(s); got != MinBandwidth {
		t.Errorf("want floor bandwidth %v, got %v", MinBandwidth, got)
	}
}

func TestBandwidthPluginBimodal(t *testing.T) {
	// The plug-in rule must pick up the fine structure that the
	// normal reference rule smooths away.
	s := bimodalSample(500)
	rot := BandwidthNormalReference(s)
	plugin := BandwidthPlugin(s)
	if plugin >= 0.7*rot {
		t.Errorf("want plug-in bandwidth well below rule of thumb %v, got %v", rot, plugin)
	}
}

func TestKDECDF(t *testing.T) {
	s := Sample{Xs: []float64{-1, 0, 0.5, 2}, Sorted: true}
	dist := KDE{Bandwidth: 0.5}.From(s)

	lo, hi := dist.Bounds()
	if dist.CDF(lo) > 0.01 || dist.CDF(hi) < 0.99 {
		t.Errorf("CDF does not span [0,1] over bounds: [%v,%v]", dist.CDF(lo), dist.CDF(hi))
	}
	last := 0.0
	for x := lo; x <= hi; x += (hi - lo) / 100 {
		y := dist.CDF(x)
		if y < last {
			t.Fatalf("CDF not monotone at %v: %v < %v", x, y, last)
		}
		last = y
	}

	// InvCDF inverts CDF.
	for _, y := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		x := dist.InvCDF(y)
		if got := dist.CDF(x); !aeq(y, got) {
			t.Errorf("want CDF(InvCDF(%v))=%v, got %v", y, y, got)
		}
	}
}

func TestKDEDeltaKernel(t *testing.T) {
	s := Sample{Xs: []float64{1, 2, 3, 4}, Sorted: true}
	dist := KDE{Kernel: DeltaKernel}.From(s)

	// The delta-kernel CDF is exactly the ECDF.
	testFunc(t, "CDF", dist.CDF, map[float64]float64{
		0.5: 0,
		1:   0.25,
		1.5: 0.25,
		2:   0.5,
		3.5: 0.75,
		4:   1,
		5:   1,
	})
}
