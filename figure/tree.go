// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package figure

import (
	"image/color"
	"math"

	"github.com/js-arias/profplot/taxonomy"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// MinLeafSeparation is the minimum distance
// between two leaves
// in the outer circle of a tree,
// in tree units.
const MinLeafSeparation = 10

// levelStep is the minimum distance
// between two levels of a tree,
// in tree units.
const levelStep = 20

// Legend sizes.
var (
	legendFontSize  = vg.Points(7)
	legendMarker    = vg.Points(4)
	legendThumbSize = vg.Points(10)
)

// polar is the position of a node
// in a circular layout.
type polar struct {
	r     float64
	theta float64

	// angles of the first and last descendants
	from, to float64
}

// A treePlotter draws a taxonomic tree
// in a circular layout.
type treePlotter struct {
	tree   *taxonomy.Tree
	nodes  []*taxonomy.Node
	pos    map[*taxonomy.Node]polar
	styles map[*taxonomy.Node]NodeStyle

	step  float64
	outer float64
	line  draw.LineStyle
}

func newTreePlotter(t *taxonomy.Tree, lay Layout) *treePlotter {
	tp := &treePlotter{
		tree:   t,
		nodes:  t.Nodes(),
		pos:    make(map[*taxonomy.Node]polar, t.Len()),
		styles: make(map[*taxonomy.Node]NodeStyle, t.Len()),
		step:   levelStep,
		line: draw.LineStyle{
			Color: color.Black,
			Width: vg.Points(0.5),
		},
	}

	leaves := len(t.Leaves())
	depth := t.Depth()
	if depth > 0 {
		// increase the level step
		// to keep the leaf separation
		// in the outer circle
		if s := MinLeafSeparation * float64(leaves) / (2 * math.Pi * float64(depth)); s > tp.step {
			tp.step = s
		}
	}
	tp.outer = float64(depth) * tp.step

	next := 0
	tp.place(t.Root(), 0, &next, leaves)

	for _, n := range tp.nodes {
		tp.styles[n] = lay.Style(n)
	}
	return tp
}

// place sets the position of a node
// and its descendants,
// and returns the angle of the node.
func (tp *treePlotter) place(n *taxonomy.Node, depth int, next *int, leaves int) float64 {
	r := float64(depth) * tp.step
	if n.IsLeaf() {
		theta := 2 * math.Pi * float64(*next) / float64(leaves)
		*next++
		tp.pos[n] = polar{r: r, theta: theta, from: theta, to: theta}
		return theta
	}

	var from, to float64
	for i, c := range n.Children() {
		theta := tp.place(c, depth+1, next, leaves)
		if i == 0 {
			from = theta
		}
		to = theta
	}
	theta := (from + to) / 2
	tp.pos[n] = polar{r: r, theta: theta, from: from, to: to}
	return theta
}

// maxFace returns the maximum radius of a face
// in tree units.
func (tp *treePlotter) maxFace() float64 {
	return tp.step / 2
}

// DataRange implements the plot.DataRanger interface.
func (tp *treePlotter) DataRange() (xMin, xMax, yMin, yMax float64) {
	r := tp.outer + tp.maxFace()
	return -r, r, -r, r
}

// Plot implements the plot.Plotter interface.
func (tp *treePlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	point := func(r, theta float64) vg.Point {
		return vg.Point{
			X: trX(r * math.Cos(theta)),
			Y: trY(r * math.Sin(theta)),
		}
	}

	// branches
	for _, n := range tp.nodes {
		ls := tp.line
		if b := tp.styles[n].Branch; b != nil {
			ls.Color = b
		}

		p := tp.pos[n]
		if anc := n.Parent(); anc != nil {
			a := point(tp.pos[anc].r, p.theta)
			b := point(p.r, p.theta)
			c.StrokeLine2(ls, a.X, a.Y, b.X, b.Y)
		}
		if len(n.Children()) < 2 {
			continue
		}

		// the arc uses the style of the first descendant
		arcStyle := tp.line
		if b := tp.styles[n.Children()[0]].Branch; b != nil {
			arcStyle.Color = b
		}
		c.SetLineStyle(arcStyle)
		c.Stroke(arc(point, p.r, p.from, p.to))
	}

	// faces
	for _, n := range tp.nodes {
		p := tp.pos[n]
		center := point(p.r, p.theta)
		for _, f := range tp.styles[n].Faces {
			if f.Radius <= 0 || f.Color == nil {
				continue
			}
			rad := trX(f.Radius*tp.maxFace()) - trX(0)
			var path vg.Path
			path.Move(vg.Point{X: center.X + rad, Y: center.Y})
			path.Arc(center, rad, 0, 2*math.Pi)
			path.Close()
			c.SetColor(f.Color)
			c.Fill(path)
		}
	}
}

// arc returns a path along a circle of radius r
// between two angles.
func arc(point func(r, theta float64) vg.Point, r, from, to float64) vg.Path {
	// a point for each degree
	steps := int(math.Ceil((to-from)*180/math.Pi)) + 1

	var p vg.Path
	p.Move(point(r, from))
	for i := 1; i <= steps; i++ {
		theta := from + (to-from)*float64(i)/float64(steps)
		p.Line(point(r, theta))
	}
	return p
}

// A LegendEntry is an entry
// in the legend of a tree.
type LegendEntry struct {
	Label string

	// Color of the marker.
	// If nil,
	// the entry does not have a marker.
	Color color.Color
}

// Legend returns the entries of a tree legend:
// the predicted marker,
// the true marker
// (only if there is a ground truth),
// and the name of the tool.
func Legend(lay Layout, tool string) []LegendEntry {
	pred, truth := lay.Colors()
	entries := []LegendEntry{
		{Label: "Predicted", Color: pred},
	}
	if len(lay.GroundTruth()) > 0 {
		entries = append(entries, LegendEntry{Label: "True", Color: truth})
	}
	entries = append(entries, LegendEntry{Label: "Tool: " + tool})
	return entries
}

// A marker is a legend thumbnail
// with a filled circle.
type marker struct {
	color color.Color
}

// Thumbnail implements the plot.Thumbnailer interface.
func (m marker) Thumbnail(c *draw.Canvas) {
	sty := draw.GlyphStyle{
		Color:  m.color,
		Radius: legendMarker,
		Shape:  draw.CircleGlyph{},
	}
	c.DrawGlyph(sty, c.Center())
}

// TreePlot returns a plot of a taxonomic tree
// in a circular layout,
// using the layout to style the nodes.
// Leaf names are not drawn.
func TreePlot(t *taxonomy.Tree, lay Layout, tool string) *plot.Plot {
	p := plot.New()
	p.HideAxes()
	p.Add(newTreePlotter(t, lay))

	p.Legend.Top = false
	p.Legend.Left = true
	p.Legend.ThumbnailWidth = legendThumbSize
	p.Legend.TextStyle.Font.Size = legendFontSize
	for _, e := range Legend(lay, tool) {
		if e.Color == nil {
			p.Legend.Add(e.Label)
			continue
		}
		p.Legend.Add(e.Label, marker{color: e.Color})
	}
	return p
}
