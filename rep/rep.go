// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// rep implements the three graphical density representations whose
// calibration the pipeline diagnoses: a kernel density estimate, a
// density histogram, and a quantile dot plot.
//
// Each representation exposes the cumulative distribution it implies
// via a CDF method, so the probability integral transform is written
// once against that capability rather than once per representation.
package rep // import "github.com/densviz/densviz/rep"

// A CDFer is a density representation that can report the cumulative
// probability it assigns below a point. A representation that exactly
// matches the distribution a sample was drawn from maps that sample
// to Uniform(0,1) through its CDF.
type CDFer interface {
	CDF(x float64) float64
}
