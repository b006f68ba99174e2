// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy

import (
	"fmt"
	"strings"
)

// Rank is a taxonomic rank.
type Rank string

// Ranks in the vocabulary,
// from the coarsest to the finest.
const (
	Superkingdom Rank = "superkingdom"
	Kingdom      Rank = "kingdom"
	Phylum       Rank = "phylum"
	Class        Rank = "class"
	Order        Rank = "order"
	Family       Rank = "family"
	Genus        Rank = "genus"
	Species      Rank = "species"
	Subspecies   Rank = "subspecies"
	Strain       Rank = "strain"
)

// Unranked is the rank used for nodes
// without a rank in the vocabulary.
const Unranked Rank = "no rank"

var ranks = []Rank{
	Superkingdom,
	Kingdom,
	Phylum,
	Class,
	Order,
	Family,
	Genus,
	Species,
	Subspecies,
	Strain,
}

// aliases of ranks in the vocabulary
// found in NCBI taxonomy dumps.
var aliases = map[string]Rank{
	"domain": Superkingdom,
	"realm":  Superkingdom,
}

// ParseRank returns the rank of the vocabulary
// with the given name.
func ParseRank(s string) (Rank, error) {
	r := NewRank(s)
	if r.Level() < 0 {
		return "", fmt.Errorf("unknown taxonomic rank %q", s)
	}
	return r, nil
}

// Level returns the position of the rank
// in the rank vocabulary,
// with 0 for the coarsest rank.
// Ranks outside the vocabulary
// return -1.
func (r Rank) Level() int {
	for i, v := range ranks {
		if v == r {
			return i
		}
	}
	return -1
}

// IsRanked returns true if the rank
// is part of the rank vocabulary.
func (r Rank) IsRanked() bool {
	return r.Level() >= 0
}

// Finer returns true if r is a rank finer
// (i.e., closer to the terminals)
// than o.
// If any rank is unranked,
// it returns false.
func (r Rank) Finer(o Rank) bool {
	lr, lo := r.Level(), o.Level()
	if lr < 0 || lo < 0 {
		return false
	}
	return lr > lo
}

// NewRank returns a rank from a name
// in its canonical form.
// Unlike ParseRank,
// it accepts ranks outside the vocabulary.
func NewRank(s string) Rank {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	if s == "" {
		return Unranked
	}
	if r, ok := aliases[s]; ok {
		return r
	}
	return Rank(s)
}
