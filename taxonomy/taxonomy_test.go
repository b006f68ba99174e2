// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/js-arias/profplot/taxonomy"
)

var lineages = [][]taxonomy.Node{
	{
		{TaxID: "2", Rank: taxonomy.Superkingdom, Name: "Bacteria"},
		{TaxID: "1224", Rank: taxonomy.Phylum, Name: "Proteobacteria"},
		{TaxID: "1236", Rank: taxonomy.Class, Name: "Gammaproteobacteria"},
		{TaxID: "91347", Rank: taxonomy.Order, Name: "Enterobacterales"},
		{TaxID: "543", Rank: taxonomy.Family, Name: "Enterobacteriaceae"},
		{TaxID: "561", Rank: taxonomy.Genus, Name: "Escherichia"},
		{TaxID: "562", Rank: taxonomy.Species, Name: "Escherichia coli"},
	},
	{
		{TaxID: "2", Rank: taxonomy.Superkingdom, Name: "Bacteria"},
		{TaxID: "1224", Rank: taxonomy.Phylum, Name: "Proteobacteria"},
		{TaxID: "1236", Rank: taxonomy.Class, Name: "Gammaproteobacteria"},
		{TaxID: "91347", Rank: taxonomy.Order, Name: "Enterobacterales"},
		{TaxID: "543", Rank: taxonomy.Family, Name: "Enterobacteriaceae"},
		{TaxID: "590", Rank: taxonomy.Genus, Name: "Salmonella"},
		{TaxID: "28901", Rank: taxonomy.Species, Name: "Salmonella enterica"},
	},
	{
		{TaxID: "2157", Rank: taxonomy.Superkingdom, Name: "Archaea"},
		{TaxID: "28890", Rank: taxonomy.Phylum, Name: "Euryarchaeota"},
		{TaxID: "183925", Rank: taxonomy.Class, Name: "Methanobacteria"},
	},
}

func newLineages() *taxonomy.Lineages {
	l := taxonomy.NewLineages()
	for _, ln := range lineages {
		for i := range ln {
			l.Add(ln[:i+1])
		}
	}
	return l
}

func allIDs() []string {
	var ids []string
	seen := make(map[string]bool)
	for _, ln := range lineages {
		for _, n := range ln {
			if seen[n.TaxID] {
				continue
			}
			seen[n.TaxID] = true
			ids = append(ids, n.TaxID)
		}
	}
	return ids
}

func taxIDs(ns []*taxonomy.Node) []string {
	ids := make([]string, 0, len(ns))
	for _, n := range ns {
		ids = append(ids, n.TaxID)
	}
	return ids
}

func TestParseRank(t *testing.T) {
	tests := map[string]struct {
		want taxonomy.Rank
		err  bool
	}{
		"genus":   {want: taxonomy.Genus},
		" Genus ": {want: taxonomy.Genus},
		"domain":  {want: taxonomy.Superkingdom},
		"clade":   {err: true},
		"":        {err: true},
	}

	for name, test := range tests {
		r, err := taxonomy.ParseRank(name)
		if test.err {
			if err == nil {
				t.Errorf("rank %q: expecting error", name)
			}
			continue
		}
		if err != nil {
			t.Errorf("rank %q: unexpected error: %v", name, err)
			continue
		}
		if r != test.want {
			t.Errorf("rank %q: got %q, want %q", name, r, test.want)
		}
	}

	if !taxonomy.Species.Finer(taxonomy.Genus) {
		t.Errorf("species should be finer than genus")
	}
	if taxonomy.Family.Finer(taxonomy.Genus) {
		t.Errorf("family should not be finer than genus")
	}
	if taxonomy.Unranked.Finer(taxonomy.Genus) {
		t.Errorf("unranked should not be finer than genus")
	}
}

func TestLineagesTopology(t *testing.T) {
	l := newLineages()

	tr, err := l.Topology(allIDs(), taxonomy.Genus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id := tr.Root().TaxID; id != taxonomy.RootID {
		t.Errorf("root: got %q, want %q", id, taxonomy.RootID)
	}
	want := []string{"561", "590", "183925"}
	if diff := cmp.Diff(want, taxIDs(tr.Leaves())); diff != "" {
		t.Errorf("leaves mismatch (-want +got):\n%s", diff)
	}
	for _, n := range tr.Nodes() {
		if n.Rank.Finer(taxonomy.Genus) {
			t.Errorf("node %q: rank %q finer than genus", n.TaxID, n.Rank)
		}
	}
	if tr.Node("562") != nil {
		t.Errorf("species %q should not be in the tree", "562")
	}
	if d := tr.Depth(); d != 6 {
		t.Errorf("depth: got %d, want %d", d, 6)
	}
	if d := tr.DepthOf(tr.Node("561")); d != 6 {
		t.Errorf("depth of %q: got %d, want %d", "561", d, 6)
	}
	if p := tr.Node("561").Parent().TaxID; p != "543" {
		t.Errorf("parent of %q: got %q, want %q", "561", p, "543")
	}
}

func TestLineagesCollapse(t *testing.T) {
	l := newLineages()

	tr, err := l.Topology([]string{"562", "28901"}, taxonomy.Species)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// all intermediate nodes have a single descendant
	// and are not requested
	if id := tr.Root().TaxID; id != "543" {
		t.Errorf("root: got %q, want %q", id, "543")
	}
	want := []string{"543", "562", "28901"}
	if diff := cmp.Diff(want, taxIDs(tr.Nodes())); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
	if tr.Len() != len(want) {
		t.Errorf("len: got %d, want %d", tr.Len(), len(want))
	}
}

func TestLineagesSingleRoot(t *testing.T) {
	l := newLineages()

	tr, err := l.Topology([]string{"2", "561", "590"}, taxonomy.Genus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id := tr.Root().TaxID; id != "2" {
		t.Errorf("root: got %q, want %q", id, "2")
	}
	want := []string{"2", "543", "561", "590"}
	if diff := cmp.Diff(want, taxIDs(tr.Nodes())); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestTruncateMissingRank(t *testing.T) {
	l := taxonomy.NewLineages()
	l.Add([]taxonomy.Node{
		{TaxID: "2", Rank: taxonomy.Superkingdom, Name: "Bacteria"},
		{TaxID: "1224", Rank: taxonomy.Phylum, Name: "Proteobacteria"},
		{TaxID: "100", Rank: "clade", Name: "some clade"},
		{TaxID: "200", Rank: taxonomy.Species, Name: "some species"},
	})
	l.Add([]taxonomy.Node{
		{TaxID: "2", Rank: taxonomy.Superkingdom, Name: "Bacteria"},
		{TaxID: "1239", Rank: taxonomy.Phylum, Name: "Firmicutes"},
	})

	tr, err := l.Topology([]string{"200", "1239"}, taxonomy.Genus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"1224", "1239"}
	if diff := cmp.Diff(want, taxIDs(tr.Leaves())); diff != "" {
		t.Errorf("leaves mismatch (-want +got):\n%s", diff)
	}
}

func TestLineagesErrors(t *testing.T) {
	l := newLineages()

	if _, err := l.Topology(nil, taxonomy.Genus); !errors.Is(err, taxonomy.ErrNoTaxa) {
		t.Errorf("empty ids: got error %v, want %v", err, taxonomy.ErrNoTaxa)
	}
	if _, err := l.Topology([]string{"999"}, taxonomy.Genus); err == nil {
		t.Errorf("unknown taxon: expecting error")
	}
	if _, err := l.Topology([]string{"2"}, "clade"); err == nil {
		t.Errorf("unknown rank: expecting error")
	}
}

const nodesDump = `1	|	1	|	no rank	|
2	|	131567	|	superkingdom	|
131567	|	1	|	no rank	|
1224	|	2	|	phylum	|
1236	|	1224	|	class	|
91347	|	1236	|	order	|
543	|	91347	|	family	|
561	|	543	|	genus	|
562	|	561	|	species	|
590	|	543	|	genus	|
28901	|	590	|	species	|
`

const namesDump = `1	|	root	|		|	scientific name	|
1	|	all	|		|	synonym	|
2	|	Bacteria	|	Bacteria <bacteria>	|	scientific name	|
131567	|	cellular organisms	|		|	scientific name	|
1224	|	Pseudomonadota	|		|	scientific name	|
1236	|	Gammaproteobacteria	|		|	scientific name	|
91347	|	Enterobacterales	|		|	scientific name	|
543	|	Enterobacteriaceae	|		|	scientific name	|
561	|	Escherichia	|		|	scientific name	|
562	|	Escherichia coli	|		|	scientific name	|
590	|	Salmonella	|		|	scientific name	|
28901	|	Salmonella enterica	|		|	scientific name	|
`

const mergedDump = `29474	|	28901	|
`

func TestDB(t *testing.T) {
	db, err := taxonomy.ReadDB(strings.NewReader(nodesDump), strings.NewReader(namesDump), strings.NewReader(mergedDump))
	if err != nil {
		t.Fatalf("unable to read taxonomy: %v", err)
	}
	testDB(t, db)
}

func TestOpenDB(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		taxonomy.NodesFile:  nodesDump,
		taxonomy.NamesFile:  namesDump,
		taxonomy.MergedFile: mergedDump,
	}
	for name, data := range files {
		if err := writeFile(dir, name, data); err != nil {
			t.Fatalf("unable to write %q: %v", name, err)
		}
	}

	testDB(t, taxonomy.Open(dir))

	if _, err := taxonomy.Open(t.TempDir()).Lineage("2"); err == nil {
		t.Errorf("empty directory: expecting error")
	}
}

func testDB(t testing.TB, db *taxonomy.DB) {
	t.Helper()

	ln, err := db.Lineage("562")
	if err != nil {
		t.Fatalf("lineage: unexpected error: %v", err)
	}
	want := []string{"1", "131567", "2", "1224", "1236", "91347", "543", "561", "562"}
	if diff := cmp.Diff(want, taxIDs(nodePtrs(ln))); diff != "" {
		t.Errorf("lineage mismatch (-want +got):\n%s", diff)
	}
	if ln[2].Name != "Bacteria" {
		t.Errorf("name of %q: got %q, want %q", "2", ln[2].Name, "Bacteria")
	}

	// 29474 is merged into 28901
	tr, err := db.Topology([]string{"562", "29474"}, taxonomy.Genus)
	if err != nil {
		t.Fatalf("topology: unexpected error: %v", err)
	}
	if id := tr.Root().TaxID; id != "543" {
		t.Errorf("root: got %q, want %q", id, "543")
	}
	leaves := []string{"561", "590"}
	if diff := cmp.Diff(leaves, taxIDs(tr.Leaves())); diff != "" {
		t.Errorf("leaves mismatch (-want +got):\n%s", diff)
	}

	if _, err := db.Topology([]string{"999"}, taxonomy.Genus); err == nil {
		t.Errorf("unknown taxon: expecting error")
	}
}

func nodePtrs(ns []taxonomy.Node) []*taxonomy.Node {
	ps := make([]*taxonomy.Node, 0, len(ns))
	for i := range ns {
		ps = append(ps, &ns[i])
	}
	return ps
}

func writeFile(dir, name, data string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644)
}
