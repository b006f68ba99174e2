// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package figure draws taxonomic profiles
// as circular taxonomic trees,
// and compares predicted
// and true relative abundances
// at a given rank.
package figure

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/js-arias/profplot/profile"
	"github.com/js-arias/profplot/taxonomy"
)

// DefaultFormat is the default file format
// of the figures.
const DefaultFormat = "png"

// A Layout provides the data
// and the node styles
// of the figures of a sample.
type Layout interface {
	// TaxIDs returns the taxonomic IDs
	// present in the sample.
	TaxIDs() []string

	// Style returns the visual attributes
	// of a node.
	Style(n *taxonomy.Node) NodeStyle

	// GroundTruth returns the true abundances
	// of the sample.
	GroundTruth() profile.Abundance

	// Predicted returns the predicted abundances
	// of the sample.
	Predicted() profile.Abundance

	// Colors returns the colors used for
	// the predicted and true abundances.
	Colors() (predicted, truth color.Color)
}

// NodeStyle are the visual attributes of a node.
type NodeStyle struct {
	// Color of the branch
	// that ends in the node.
	// If nil,
	// black will be used.
	Branch color.Color

	// Faces drawn on the node,
	// in order.
	Faces []Face
}

// A Face is a filled circle
// drawn on a node.
type Face struct {
	Color color.Color

	// Radius of the circle
	// as a fraction of the maximum face radius.
	Radius float64
}

// A Figure draws the figures of a profile
// for the samples of a layout.
type Figure struct {
	// Resolver used to build the taxonomic trees.
	Resolver taxonomy.Resolver

	// Layout with the data of the current sample.
	Layout Layout

	// Rank limit of the tree.
	Rank taxonomy.Rank

	// Name of the profiling tool.
	Tool string

	// Base name of the output files.
	Base string

	// File format of the output files.
	Format string

	// If true,
	// the L1 comparison plot will be drawn.
	L1 bool

	// If true,
	// the name of the L1 comparison plot
	// will include the sample.
	L1PerSample bool
}

// Artifacts are the results of the figures of a sample.
type Artifacts struct {
	// File names of the figures.
	// L1 is empty if the L1 comparison was not requested.
	Tree string
	L1   string

	// L1 distance between true and predicted abundances
	// and number of compared taxa.
	Distance float64
	Taxa     int
}

// Generate draws the figures of a sample
// using the current data of the layout.
func (f *Figure) Generate(sample string) (Artifacts, error) {
	format := f.Format
	if format == "" {
		format = DefaultFormat
	}

	t, err := f.Resolver.Topology(f.Layout.TaxIDs(), f.Rank)
	if err != nil {
		return Artifacts{}, fmt.Errorf("sample %q: %v", sample, err)
	}

	a := Artifacts{
		Tree: TreeFile(f.Base, f.Rank, sample, format),
	}
	p := TreePlot(t, f.Layout, f.Tool)
	if err := Save(p, a.Tree, format); err != nil {
		return a, err
	}

	if !f.L1 {
		return a, nil
	}

	c := Compare(t, f.Rank, f.Layout.GroundTruth(), f.Layout.Predicted())
	lp, err := L1Plot(c, f.Tool)
	if err != nil {
		return a, fmt.Errorf("sample %q: %v", sample, err)
	}
	a.L1 = L1File(f.Base, f.Rank, format)
	if f.L1PerSample {
		a.L1 = L1SampleFile(f.Base, f.Rank, sample, format)
	}
	if err := Save(SquarePlot{lp}, a.L1, format); err != nil {
		return a, err
	}
	a.Distance = c.L1()
	a.Taxa = len(c.IDs)
	return a, nil
}

// TreeFile returns the name of the tree figure.
func TreeFile(base string, rank taxonomy.Rank, sample, ext string) string {
	return fmt.Sprintf("%s_tree_%s_%s.%s", base, rank, sample, ext)
}

// L1File returns the name of the L1 comparison figure.
// The name does not include the sample,
// so in a multi-sample run
// the file is overwritten by each sample.
func L1File(base string, rank taxonomy.Rank, ext string) string {
	return fmt.Sprintf("%s_L1_%s.%s", base, rank, ext)
}

// L1SampleFile returns the name
// of the L1 comparison figure
// of a given sample.
func L1SampleFile(base string, rank taxonomy.Rank, sample, ext string) string {
	return fmt.Sprintf("%s_L1_%s_%s.%s", base, rank, sample, ext)
}

// ToolName returns the name of a profiling tool
// from the name of its profile file,
// i.e., the base name of the file
// up to the first period.
func ToolName(file string) string {
	name, _, _ := strings.Cut(filepath.Base(file), ".")
	return name
}
