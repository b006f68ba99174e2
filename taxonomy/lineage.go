// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy

import (
	"fmt"
	"slices"
)

// A Resolver builds a taxonomic tree
// from a set of taxonomic IDs.
// No node in the tree is finer than the rank limit.
type Resolver interface {
	Topology(ids []string, limit Rank) (*Tree, error)
}

// A Translator translates deprecated taxonomic IDs
// to the IDs used in the trees of a resolver.
type Translator interface {
	Translate(id string) string
}

// Lineages is a resolver
// that stores the lineage of each taxon
// in memory.
type Lineages struct {
	lineage map[string][]Node
}

// NewLineages creates a new empty lineage table.
func NewLineages() *Lineages {
	return &Lineages{
		lineage: make(map[string][]Node),
	}
}

// Add adds the lineage of a taxon.
// The lineage is the list of taxa
// from the coarsest ancestor
// to the taxon itself.
// If the taxon is already defined,
// the previous lineage is kept.
func (l *Lineages) Add(lineage []Node) {
	if len(lineage) == 0 {
		return
	}
	id := lineage[len(lineage)-1].TaxID
	if _, ok := l.lineage[id]; ok {
		return
	}

	ln := make([]Node, 0, len(lineage))
	for _, n := range lineage {
		if n.TaxID == "" {
			continue
		}
		n.Rank = NewRank(string(n.Rank))
		n.parent = nil
		n.children = nil
		ln = append(ln, n)
	}
	l.lineage[id] = ln
}

// Lineage returns the lineage of a taxon.
func (l *Lineages) Lineage(id string) []Node {
	return slices.Clone(l.lineage[id])
}

// Len returns the number of taxa with a lineage.
func (l *Lineages) Len() int {
	return len(l.lineage)
}

// Topology returns a tree of the given taxa,
// truncated at the rank limit.
func (l *Lineages) Topology(ids []string, limit Rank) (*Tree, error) {
	if len(ids) == 0 {
		return nil, ErrNoTaxa
	}
	if !limit.IsRanked() {
		return nil, fmt.Errorf("unknown taxonomic rank %q", limit)
	}

	req := make(map[string]bool, len(ids))
	lineages := make([][]Node, 0, len(ids))
	for _, id := range ids {
		ln, ok := l.lineage[id]
		if !ok {
			return nil, fmt.Errorf("taxon %q: lineage not found", id)
		}
		if req[id] {
			continue
		}
		req[id] = true
		lineages = append(lineages, ln)
	}
	return build(lineages, req, limit)
}
