// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package figure_test

import (
	"image"
	"image/color"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/js-arias/profplot/figure"
	"github.com/js-arias/profplot/profile"
	"github.com/js-arias/profplot/taxonomy"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var lineages = [][]taxonomy.Node{
	{
		{TaxID: "2", Rank: taxonomy.Superkingdom, Name: "Bacteria"},
		{TaxID: "1224", Rank: taxonomy.Phylum, Name: "Proteobacteria"},
		{TaxID: "1236", Rank: taxonomy.Class, Name: "Gammaproteobacteria"},
		{TaxID: "91347", Rank: taxonomy.Order, Name: "Enterobacterales"},
		{TaxID: "543", Rank: taxonomy.Family, Name: "Enterobacteriaceae"},
		{TaxID: "561", Rank: taxonomy.Genus, Name: "Escherichia"},
	},
	{
		{TaxID: "2", Rank: taxonomy.Superkingdom, Name: "Bacteria"},
		{TaxID: "1224", Rank: taxonomy.Phylum, Name: "Proteobacteria"},
		{TaxID: "1236", Rank: taxonomy.Class, Name: "Gammaproteobacteria"},
		{TaxID: "91347", Rank: taxonomy.Order, Name: "Enterobacterales"},
		{TaxID: "543", Rank: taxonomy.Family, Name: "Enterobacteriaceae"},
		{TaxID: "590", Rank: taxonomy.Genus, Name: "Salmonella"},
	},
	{
		{TaxID: "2157", Rank: taxonomy.Superkingdom, Name: "Archaea"},
		{TaxID: "28890", Rank: taxonomy.Phylum, Name: "Euryarchaeota"},
		{TaxID: "183925", Rank: taxonomy.Class, Name: "Methanobacteria"},
	},
}

func newResolver() *taxonomy.Lineages {
	l := taxonomy.NewLineages()
	for _, ln := range lineages {
		for i := range ln {
			l.Add(ln[:i+1])
		}
	}
	return l
}

// testLayout is a simple layout
// with fixed abundances.
type testLayout struct {
	pred  profile.Abundance
	truth profile.Abundance
}

func (l testLayout) TaxIDs() []string {
	var ids []string
	for id := range l.pred {
		ids = append(ids, id)
	}
	for id := range l.truth {
		if _, ok := l.pred[id]; ok {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (l testLayout) Style(n *taxonomy.Node) figure.NodeStyle {
	pred, truth := l.Colors()
	return figure.NodeStyle{
		Faces: []figure.Face{
			{Color: pred, Radius: l.pred.Fraction(n.TaxID)},
			{Color: truth, Radius: l.truth.Fraction(n.TaxID)},
		},
	}
}

func (l testLayout) GroundTruth() profile.Abundance { return l.truth }
func (l testLayout) Predicted() profile.Abundance   { return l.pred }

func (l testLayout) Colors() (predicted, truth color.Color) {
	return color.RGBA{27, 158, 119, 255}, color.RGBA{217, 95, 2, 255}
}

func newLayout() testLayout {
	return testLayout{
		pred: profile.Abundance{
			"2":      70,
			"1224":   60,
			"561":    30,
			"590":    30,
			"2157":   30,
			"183925": 30,
		},
		truth: profile.Abundance{
			"2":    100,
			"1224": 60,
			"561":  50,
			"590":  10,
		},
	}
}

func TestCompare(t *testing.T) {
	lay := newLayout()
	tr, err := newResolver().Topology(lay.TaxIDs(), taxonomy.Genus)
	if err != nil {
		t.Fatalf("topology: unexpected error: %v", err)
	}

	c := figure.Compare(tr, taxonomy.Genus, lay.GroundTruth(), lay.Predicted())
	want := figure.Comparison{
		IDs:       []string{"561", "590"},
		True:      []float64{0.5, 0.1},
		Predicted: []float64{0.3, 0.3},
	}
	if diff := cmp.Diff(want, c, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("comparison mismatch (-want +got):\n%s", diff)
	}

	if d := c.L1(); d < 0.4-1e-9 || d > 0.4+1e-9 {
		t.Errorf("L1: got %.6f, want %.6f", d, 0.4)
	}
	if m := c.Max(); m != 0.5 {
		t.Errorf("max: got %.6f, want %.6f", m, 0.5)
	}

	segs := []figure.Segment{
		{X: 0.5, Low: 0.3, High: 0.5},
		{X: 0.1, Low: 0.1, High: 0.3},
	}
	if diff := cmp.Diff(segs, c.Segments(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}

	// without ground truth
	c = figure.Compare(tr, taxonomy.Genus, nil, lay.Predicted())
	if diff := cmp.Diff([]float64{0, 0}, c.True); diff != "" {
		t.Errorf("empty truth mismatch (-want +got):\n%s", diff)
	}

	// no leaves at the rank
	c = figure.Compare(tr, taxonomy.Species, lay.GroundTruth(), lay.Predicted())
	if c.L1() != 0 || c.Max() != 0 || len(c.Segments()) != 0 {
		t.Errorf("empty comparison: got %v", c)
	}
}

func TestLegend(t *testing.T) {
	lay := newLayout()
	pred, truth := lay.Colors()

	got := figure.Legend(lay, "metaphlan")
	want := []figure.LegendEntry{
		{Label: "Predicted", Color: pred},
		{Label: "True", Color: truth},
		{Label: "Tool: metaphlan"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("legend mismatch (-want +got):\n%s", diff)
	}

	lay.truth = nil
	got = figure.Legend(lay, "metaphlan")
	want = []figure.LegendEntry{
		{Label: "Predicted", Color: pred},
		{Label: "Tool: metaphlan"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("legend without truth mismatch (-want +got):\n%s", diff)
	}
}

func TestFileNames(t *testing.T) {
	tests := map[string]struct {
		got  string
		want string
	}{
		"tree": {
			got:  figure.TreeFile("out", taxonomy.Genus, "sample_0", "png"),
			want: "out_tree_genus_sample_0.png",
		},
		"L1": {
			got:  figure.L1File("out", taxonomy.Genus, "png"),
			want: "out_L1_genus.png",
		},
		"L1 sample": {
			got:  figure.L1SampleFile("out", taxonomy.Genus, "sample_0", "svg"),
			want: "out_L1_genus_sample_0.svg",
		},
		"tool": {
			got:  figure.ToolName("data/metaphlan.v3.profile"),
			want: "metaphlan",
		},
	}

	for name, test := range tests {
		if test.got != test.want {
			t.Errorf("%s: got %q, want %q", name, test.got, test.want)
		}
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "out")

	f := &figure.Figure{
		Resolver:    newResolver(),
		Layout:      newLayout(),
		Rank:        taxonomy.Genus,
		Tool:        "metaphlan",
		Base:        base,
		Format:      "svg",
		L1:          true,
		L1PerSample: true,
	}
	a, err := f.Generate("sample_0")
	if err != nil {
		t.Fatalf("generate: unexpected error: %v", err)
	}

	if want := base + "_tree_genus_sample_0.svg"; a.Tree != want {
		t.Errorf("tree file: got %q, want %q", a.Tree, want)
	}
	if want := base + "_L1_genus_sample_0.svg"; a.L1 != want {
		t.Errorf("L1 file: got %q, want %q", a.L1, want)
	}
	if a.Taxa != 2 {
		t.Errorf("compared taxa: got %d, want %d", a.Taxa, 2)
	}
	for _, name := range []string{a.Tree, a.L1} {
		st, err := os.Stat(name)
		if err != nil {
			t.Errorf("file %q: %v", name, err)
			continue
		}
		if st.Size() == 0 {
			t.Errorf("file %q: empty file", name)
		}
	}

	// tree only, default format
	f.Format = ""
	f.L1 = false
	a, err = f.Generate("sample_1")
	if err != nil {
		t.Fatalf("generate: unexpected error: %v", err)
	}
	if a.L1 != "" {
		t.Errorf("L1 file: got %q, want empty", a.L1)
	}
	if _, err := os.Stat(base + "_tree_genus_sample_1.png"); err != nil {
		t.Errorf("png tree: %v", err)
	}

	// unknown taxa
	f.Layout = testLayout{pred: profile.Abundance{"9606": 100}}
	if _, err := f.Generate("sample_2"); err == nil {
		t.Errorf("unknown taxon: expecting error")
	}
}

func TestSaveFormat(t *testing.T) {
	lay := newLayout()
	tr, err := newResolver().Topology(lay.TaxIDs(), taxonomy.Class)
	if err != nil {
		t.Fatalf("topology: unexpected error: %v", err)
	}
	p := figure.TreePlot(tr, lay, "metaphlan")

	name := filepath.Join(t.TempDir(), "tree.bmp")
	if err := figure.Save(p, name, "bmp"); err == nil {
		t.Errorf("format %q: expecting error", "bmp")
	}
	if _, err := os.Stat(name); err == nil {
		t.Errorf("format %q: file should not be created", "bmp")
	}

	if !figure.IsFormat("PDF") {
		t.Errorf("format %q: should be supported", "PDF")
	}
	if figure.IsFormat("bmp") {
		t.Errorf("format %q: should not be supported", "bmp")
	}
}

func TestSegments(t *testing.T) {
	c := figure.Comparison{
		IDs:       []string{"a", "b", "c"},
		True:      []float64{0.4, 0.6, 0.2},
		Predicted: []float64{0.4, 0.2, 0.6},
	}
	want := []figure.Segment{
		{X: 0.6, Low: 0.2, High: 0.6},
		{X: 0.2, Low: 0.2, High: 0.6},
	}
	if diff := cmp.Diff(want, c.Segments()); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAllFormats(t *testing.T) {
	lay := newLayout()
	tr, err := newResolver().Topology(lay.TaxIDs(), taxonomy.Genus)
	if err != nil {
		t.Fatalf("topology: unexpected error: %v", err)
	}
	p := figure.TreePlot(tr, lay, "metaphlan")

	dir := t.TempDir()
	for _, format := range figure.Formats() {
		name := filepath.Join(dir, "tree."+format)
		if err := figure.Save(p, name, format); err != nil {
			t.Errorf("format %q: unexpected error: %v", format, err)
			continue
		}
		st, err := os.Stat(name)
		if err != nil {
			t.Errorf("format %q: %v", format, err)
			continue
		}
		if st.Size() == 0 {
			t.Errorf("format %q: empty file", format)
		}
	}

	// 5 inches at 800 DPI
	f, err := os.Open(filepath.Join(dir, "tree.png"))
	if err != nil {
		t.Fatalf("unable to open png: %v", err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("unable to decode png: %v", err)
	}
	if cfg.Width != 4000 || cfg.Height != 4000 {
		t.Errorf("png size: got %dx%d, want 4000x4000", cfg.Width, cfg.Height)
	}
}

func TestSquarePlot(t *testing.T) {
	c := figure.Comparison{
		IDs:       []string{"561", "590"},
		True:      []float64{0.5, 0.1},
		Predicted: []float64{0.3, 0.3},
	}
	p, err := figure.L1Plot(c, "metaphlan")
	if err != nil {
		t.Fatalf("L1 plot: unexpected error: %v", err)
	}
	if p.X.Min != p.Y.Min || p.X.Max != p.Y.Max {
		t.Errorf("axis ranges: x [%.3f, %.3f], y [%.3f, %.3f]", p.X.Min, p.X.Max, p.Y.Min, p.Y.Max)
	}

	cv := draw.New(vgimg.New(figure.Width, figure.Height))
	sp := figure.SquarePlot{Plot: p}
	dc := p.DataCanvas(sp.Canvas(cv))
	w := float64(dc.Max.X - dc.Min.X)
	h := float64(dc.Max.Y - dc.Min.Y)
	if math.Abs(w-h) > 1e-6 {
		t.Errorf("data area: got %.3fx%.3f, want a square", w, h)
	}
}
