// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rep

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/densviz/densviz/stats"
)

func TestLayoutDotsValidation(t *testing.T) {
	s := uniformGrid(10)
	_, err := LayoutDots(stats.Sample{}, 10, 0.1, OverflowKeep)
	require.ErrorIs(t, err, stats.ErrInvalidParameter)
	_, err = LayoutDots(s, 0, 0.1, OverflowKeep)
	require.ErrorIs(t, err, stats.ErrInvalidParameter)
	_, err = LayoutDots(s, 10, 0, OverflowKeep)
	require.ErrorIs(t, err, stats.ErrInvalidParameter)
	_, err = LayoutDots(s, 10, 0.1, OverflowPolicy(99))
	require.ErrorIs(t, err, stats.ErrInvalidParameter)
}

func TestLayoutDotsStacking(t *testing.T) {
	// Four identical values: all dots stack in one column.
	s := stats.Sample{Xs: []float64{5, 5, 5, 5}, Sorted: true}
	l, err := LayoutDots(s, 4, 1, OverflowKeep)
	require.NoError(t, err)
	for i, d := range l.Dots {
		require.Equal(t, 5.0, d.X)
		require.Equal(t, i, d.Slot)
	}
	require.Equal(t, 4, l.Height())

	// Well-separated values: all dots on the ground.
	s = stats.Sample{Xs: []float64{0, 10, 20, 30}, Sorted: true}
	l, err = LayoutDots(s, 4, 1, OverflowKeep)
	require.NoError(t, err)
	for _, d := range l.Dots {
		require.Equal(t, 0, d.Slot)
	}
	require.Equal(t, 1, l.Height())
}

func TestLayoutDotsDeterministic(t *testing.T) {
	s := uniformGrid(200)
	a, err := LayoutDots(s, 50, 0.05, OverflowKeep)
	require.NoError(t, err)
	b, err := LayoutDots(s, 50, 0.05, OverflowKeep)
	require.NoError(t, err)
	require.Equal(t, a.Dots, b.Dots)
}

func TestDotLayoutCDF(t *testing.T) {
	s := uniformGrid(1000)
	l, err := LayoutDots(s, 100, 0.01, OverflowKeep)
	require.NoError(t, err)

	// Below and above the drawing the CDF clamps.
	require.Equal(t, 0.0, l.CDF(l.Dots[0].X-1))
	require.Equal(t, 1.0, l.CDF(l.Dots[len(l.Dots)-1].X+1))

	// Non-decreasing and close to the uniform CDF for a uniform
	// sample.
	last := 0.0
	for x := -0.1; x <= 1.1; x += 0.003 {
		y := l.CDF(x)
		require.GreaterOrEqual(t, y, last)
		last = y
	}
	for _, x := range []float64{0.2, 0.5, 0.8} {
		require.InDelta(t, x, l.CDF(x), 0.05, "x=%v", x)
	}

	// At a dot position the CDF passes through its plotting
	// position.
	for i, d := range l.Dots {
		require.InDelta(t, (float64(i)+0.5)/100, l.CDF(d.X), 1e-9, "dot %d", i)
	}
}
