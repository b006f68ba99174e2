// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package figure

import (
	"image/color"

	"github.com/js-arias/profplot/profile"
	"github.com/js-arias/profplot/taxonomy"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Comparison stores the true
// and predicted abundances
// of the leaves of a tree,
// as fractions.
type Comparison struct {
	IDs       []string
	True      []float64
	Predicted []float64
}

// Compare returns the comparison of the leaves of a tree
// that are at the given rank,
// in the traversal order of the tree.
// Absent taxa have abundance 0.
func Compare(t *taxonomy.Tree, rank taxonomy.Rank, truth, pred profile.Abundance) Comparison {
	var c Comparison
	for _, n := range t.Leaves() {
		if n.Rank != rank {
			continue
		}
		c.IDs = append(c.IDs, n.TaxID)
		c.True = append(c.True, truth.Fraction(n.TaxID))
		c.Predicted = append(c.Predicted, pred.Fraction(n.TaxID))
	}
	return c
}

// L1 returns the L1 distance
// between true and predicted abundances.
func (c Comparison) L1() float64 {
	if len(c.IDs) == 0 {
		return 0
	}
	return floats.Distance(c.True, c.Predicted, 1)
}

// Max returns the maximum abundance
// in the comparison.
func (c Comparison) Max() float64 {
	if len(c.IDs) == 0 {
		return 0
	}
	return max(floats.Max(c.True), floats.Max(c.Predicted))
}

// A Segment is a vertical segment
// between the true and predicted abundance
// of a taxon.
type Segment struct {
	X         float64
	Low, High float64
}

// Segments returns the deviation segments
// of the comparison.
// Taxa with equal true and predicted abundances
// do not have a segment.
func (c Comparison) Segments() []Segment {
	segs := make([]Segment, 0, len(c.IDs))
	for i := range c.IDs {
		if c.True[i] == c.Predicted[i] {
			continue
		}
		segs = append(segs, Segment{
			X:    c.True[i],
			Low:  min(c.True[i], c.Predicted[i]),
			High: max(c.True[i], c.Predicted[i]),
		})
	}
	return segs
}

var (
	blue  = color.RGBA{0, 0, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	black = color.RGBA{0, 0, 0, 255}
)

// L1Plot returns a scatter plot
// of the true and predicted abundances
// of a comparison.
// Both axes have the same range.
func L1Plot(c Comparison, tool string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Tool: " + tool
	p.X.Label.Text = "True"
	p.Y.Label.Text = "Predicted"

	top := c.Max() + 1

	if len(c.IDs) > 0 {
		xys := make(plotter.XYs, len(c.IDs))
		for i := range c.IDs {
			xys[i].X = c.True[i]
			xys[i].Y = c.Predicted[i]
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = blue
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)
	}

	diag, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: top, Y: top}})
	if err != nil {
		return nil, err
	}
	diag.LineStyle.Color = black
	diag.LineStyle.Width = vg.Points(0.5)
	p.Add(diag)

	p.Add(&deviations{
		segs: c.Segments(),
		line: draw.LineStyle{
			Color: red,
			Width: vg.Points(1),
		},
	})

	// equal ranges in both axis,
	// draw it as a SquarePlot
	// to keep the aspect ratio
	p.X.Min, p.X.Max = -0.5, top
	p.Y.Min, p.Y.Max = -0.5, top
	return p, nil
}

// deviations draws the segments
// of a comparison.
type deviations struct {
	segs []Segment
	line draw.LineStyle
}

// Plot implements the plot.Plotter interface.
func (d *deviations) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, s := range d.segs {
		x := trX(s.X)
		c.StrokeLine2(d.line, x, trY(s.Low), x, trY(s.High))
	}
}
