// Copyright 2026 The densviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// densviz runs the calibration diagnostic for the three graphical
// density representations of a sample from a stepped reference
// distribution, prints a summary, and renders the fitted
// representations and their ECDF-deviation diagnostics as PNGs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/exp/rand"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/densviz/densviz/band"
	"github.com/densviz/densviz/diag"
	"github.com/densviz/densviz/rep"
	"github.com/densviz/densviz/stats"
	"github.com/densviz/densviz/stepdist"
)

var (
	flagN          = flag.Int("n", 1000, "sample size")
	flagDots       = flag.Int("dots", 100, "quantile count for the dot plot")
	flagDotWidth   = flag.Float64("dotwidth", 0.25, "dot diameter in x units")
	flagK          = flag.Int("k", 100, "ECDF evaluation grid size for histogram/KDE diagnostics")
	flagConfidence = flag.Float64("confidence", 0.95, "joint coverage of the acceptance band")
	flagSeed       = flag.Uint64("seed", 1, "random seed")
	flagOut        = flag.String("o", ".", "output directory for rendered PNGs")

	flagLeft   = flag.Float64("left", -0.5, "left split point")
	flagRight  = flag.Float64("right", 0.5, "right split point")
	flagScale  = flag.Float64("scale", 0.5, "right tail scale")
	flagPLeft  = flag.Float64("pleft", 0.4, "mass left of the left split")
	flagPRight = flag.Float64("pright", 0.6, "mass left of the right split")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("densviz: ")
	flag.Parse()

	dist, err := stepdist.New(*flagLeft, *flagRight, *flagScale, *flagPLeft, *flagPRight)
	if err != nil {
		log.Fatal(err)
	}
	sample, err := diag.SampleFrom(dist, *flagN, rand.NewSource(*flagSeed))
	if err != nil {
		log.Fatal(err)
	}
	sample.Sort()

	fmt.Printf("N %d  mean %.4g  std dev %.4g  IQR %.4g\n",
		len(sample.Xs), sample.Mean(), sample.StdDev(), sample.IQR())

	cal := &band.Calibrator{Seed: *flagSeed + 1}

	// Quantile dot plot.
	dots, err := diag.FitDotLayout(sample, *flagDots, *flagDotWidth)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\ndot plot: %d dots, width %.3g, max stack %d\n",
		len(dots.Dots), dots.BinWidth, dots.Height())
	diagnose("dots", dots, sample, *flagDots, cal)
	if err := renderDots(dots); err != nil {
		log.Fatal(err)
	}

	// Density histogram.
	hist, err := diag.FitHistogram(sample)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nhistogram: %d bins, width %.3g\n", len(hist.Heights), hist.BinWidth)
	diagnose("histogram", hist, sample, *flagK, cal)
	if err := renderHistogram(dist, hist); err != nil {
		log.Fatal(err)
	}

	// Kernel density estimates, both bandwidth rules.
	for _, kde := range []struct {
		name string
		rule stats.BandwidthRule
	}{
		{"kde-rot", stats.BandwidthNormalReference},
		{"kde-plugin", stats.BandwidthPlugin},
	} {
		kd, err := diag.FitKernelDensity(sample, kde.rule)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("\n%s: bandwidth %.3g\n", kde.name, kd.Bandwidth)
		diagnose(kde.name, kd, sample, *flagK, cal)
		if err := renderCurve(kde.name, dist, kd); err != nil {
			log.Fatal(err)
		}
	}
}

// diagnose computes the PIT diagnostic of r against a calibrated
// band, reports it, and renders the deviation plot.
func diagnose(name string, r rep.CDFer, sample stats.Sample, k int, cal *band.Calibrator) {
	pit := diag.ComputePIT(r, sample)
	b, err := cal.Band(len(pit), k, *flagConfidence)
	if err != nil {
		log.Fatal(err)
	}
	dev, err := diag.ECDFDeviation(pit, k)
	if err != nil {
		log.Fatal(err)
	}

	breaches := 0
	for j, pt := range dev {
		if pt.Y < b.Lower[j]-pt.X || pt.Y > b.Upper[j]-pt.X {
			breaches++
		}
	}
	verdict := "calibrated"
	if breaches > 0 {
		verdict = "MISCALIBRATED"
	}
	fmt.Printf("  band gamma %.2g; ECDF outside band at %d/%d grid points: %s\n",
		b.Gamma, breaches, k, verdict)

	if err := renderDeviation(name, dev, b); err != nil {
		log.Fatal(err)
	}
}

func newPlot(title, xlabel, ylabel string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	return p, nil
}

func save(p *plot.Plot, name string) error {
	path := filepath.Join(*flagOut, name+".png")
	if err := os.MkdirAll(*flagOut, 0o777); err != nil {
		return err
	}
	fmt.Printf("  wrote %s\n", path)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// referenceLine returns the true density curve over the
// distribution's bounds.
func referenceLine(dist *stepdist.Dist) (*plotter.Line, error) {
	lo, hi := dist.Bounds()
	const pts = 400
	xs := make([]float64, pts)
	for i := range xs {
		xs[i] = lo + (hi-lo)*float64(i)/(pts-1)
	}
	xys := make(plotter.XYs, pts)
	for i, pt := range diag.ReferenceDensityCurve(dist, xs) {
		xys[i].X, xys[i].Y = pt.X, pt.Y
	}
	return plotter.NewLine(xys)
}

func renderDots(l *rep.DotLayout) error {
	p, err := newPlot("quantile dot plot", "x", "stack slot")
	if err != nil {
		return err
	}
	xys := make(plotter.XYs, len(l.Dots))
	for i, d := range l.Dots {
		xys[i].X, xys[i].Y = d.X, float64(d.Slot)
	}
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	p.Add(scatter)
	return save(p, "dots")
}

func renderHistogram(dist *stepdist.Dist, h *rep.Histogram) error {
	p, err := newPlot("density histogram", "x", "density")
	if err != nil {
		return err
	}
	// Draw the bins as a step outline.
	xys := make(plotter.XYs, 0, 2*len(h.Heights)+2)
	xys = append(xys, plotter.XY{X: h.Edges[0], Y: 0})
	for i, y := range h.Heights {
		xys = append(xys, plotter.XY{X: h.Edges[i], Y: y},
			plotter.XY{X: h.Edges[i+1], Y: y})
	}
	xys = append(xys, plotter.XY{X: h.Edges[len(h.Edges)-1], Y: 0})
	steps, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	ref, err := referenceLine(dist)
	if err != nil {
		return err
	}
	p.Add(steps, ref)
	return save(p, "histogram")
}

func renderCurve(name string, dist *stepdist.Dist, kd *rep.KernelDensity) error {
	p, err := newPlot("kernel density estimate", "x", "density")
	if err != nil {
		return err
	}
	xys := make(plotter.XYs, len(kd.Xs))
	for i := range kd.Xs {
		xys[i].X, xys[i].Y = kd.Xs[i], kd.Ys[i]
	}
	curve, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	ref, err := referenceLine(dist)
	if err != nil {
		return err
	}
	p.Add(curve, ref)
	return save(p, name)
}

func renderDeviation(name string, dev []diag.Point, b band.Band) error {
	p, err := newPlot("ECDF deviation from uniform", "p", "ECDF(p) - p")
	if err != nil {
		return err
	}
	devXY := make(plotter.XYs, len(dev))
	loXY := make(plotter.XYs, len(dev))
	hiXY := make(plotter.XYs, len(dev))
	for j, pt := range dev {
		devXY[j] = plotter.XY{X: pt.X, Y: pt.Y}
		loXY[j] = plotter.XY{X: pt.X, Y: b.Lower[j] - pt.X}
		hiXY[j] = plotter.XY{X: pt.X, Y: b.Upper[j] - pt.X}
	}
	for _, xys := range []plotter.XYs{devXY, loXY, hiXY} {
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		p.Add(line)
	}
	return save(p, name+"-deviation")
}
