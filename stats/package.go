// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// stats provides the sample and distribution primitives shared by the
// density-visualization calibration pipeline.
package stats // import "github.com/densviz/densviz/stats"

import (
	"errors"
	"math"
)

var inf = math.Inf(1)
var nan = math.NaN()

// ErrInvalidParameter is returned when a constructor is given a
// parameter outside its documented domain. Parameters are never
// silently clamped.
var ErrInvalidParameter = errors.New("invalid parameter")
