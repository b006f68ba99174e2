// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package profile implements reading
// of taxonomic profiles
// in the CAMI profiling format
// (<https://github.com/CAMI-challenge/contest_information/blob/master/file_formats/CAMI_TP_specification.mkd>).
//
// A profile file contains one or more samples,
// each one with the relative abundance
// (as a percentage)
// of the taxa found in the sample.
package profile

import (
	"slices"

	"github.com/js-arias/profplot/taxonomy"
)

// MergedID is the sample ID
// of the pseudo-sample
// that merges all samples of a profile.
const MergedID = "merged"

// DefaultRanks are the ranks used in a sample
// when the @Ranks header is not defined.
var DefaultRanks = []taxonomy.Rank{
	taxonomy.Superkingdom,
	taxonomy.Phylum,
	taxonomy.Class,
	taxonomy.Order,
	taxonomy.Family,
	taxonomy.Genus,
	taxonomy.Species,
	taxonomy.Strain,
}

// An Entry is a taxon in a sample.
type Entry struct {
	TaxID string
	Rank  taxonomy.Rank

	// TaxPath is the list of taxonomic IDs
	// from the coarsest rank to the taxon.
	// Missing ranks are empty strings.
	TaxPath []string

	// TaxPathSN is the list of names
	// of the taxa in TaxPath.
	TaxPathSN []string

	Percentage float64
}

// A Sample is a set of taxa
// with its relative abundances.
type Sample struct {
	ID    string
	Ranks []taxonomy.Rank

	// Header values
	// other than the sample ID and the ranks.
	Meta map[string]string

	entries []Entry
	index   map[string]int
}

func newSample(id string) *Sample {
	return &Sample{
		ID:    id,
		Ranks: slices.Clone(DefaultRanks),
		Meta:  make(map[string]string),
		index: make(map[string]int),
	}
}

// Add adds an entry to the sample.
// If the taxon is already in the sample,
// the percentages are added.
func (s *Sample) Add(e Entry) {
	if i, ok := s.index[e.TaxID]; ok {
		s.entries[i].Percentage += e.Percentage
		return
	}
	s.index[e.TaxID] = len(s.entries)
	s.entries = append(s.entries, e)
}

// Entries returns the entries of the sample
// in the order they were added.
func (s *Sample) Entries() []Entry {
	return slices.Clone(s.entries)
}

// Entry returns the entry of a taxon.
func (s *Sample) Entry(id string) (Entry, bool) {
	i, ok := s.index[id]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// TaxIDs returns the taxonomic IDs of the sample
// in the order they were added.
func (s *Sample) TaxIDs() []string {
	ids := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		ids = append(ids, e.TaxID)
	}
	return ids
}

// Abundance returns the abundance mapping
// of the sample.
// If normalize is true,
// the percentages of the taxa at each rank
// are scaled to sum 100.
func (s *Sample) Abundance(normalize bool) Abundance {
	a := make(Abundance, len(s.entries))
	for _, e := range s.entries {
		a[e.TaxID] = e.Percentage
	}
	if !normalize {
		return a
	}

	sum := make(map[taxonomy.Rank]float64)
	for _, e := range s.entries {
		sum[e.Rank] += e.Percentage
	}
	for _, e := range s.entries {
		if sum[e.Rank] == 0 {
			continue
		}
		a[e.TaxID] = e.Percentage * 100 / sum[e.Rank]
	}
	return a
}

// Lineage returns the lineage of an entry
// using the ranks of the sample.
func (s *Sample) Lineage(e Entry) []taxonomy.Node {
	ln := make([]taxonomy.Node, 0, len(e.TaxPath))
	for i, id := range e.TaxPath {
		if id == "" {
			continue
		}
		n := taxonomy.Node{
			TaxID: id,
			Rank:  taxonomy.Unranked,
		}
		if i < len(s.Ranks) {
			n.Rank = s.Ranks[i]
		}
		if i < len(e.TaxPathSN) {
			n.Name = e.TaxPathSN[i]
		}
		ln = append(ln, n)
	}

	if len(ln) == 0 || ln[len(ln)-1].TaxID != e.TaxID {
		ln = append(ln, taxonomy.Node{
			TaxID: e.TaxID,
			Rank:  e.Rank,
		})
	}
	ln[len(ln)-1].Rank = e.Rank
	return ln
}

// A Profile is a collection of samples.
type Profile struct {
	samples []*Sample
	ids     map[string]*Sample
}

// New creates a new empty profile.
func New() *Profile {
	return &Profile{
		ids: make(map[string]*Sample),
	}
}

// Add adds a sample to the profile.
// If a sample with the same ID exists,
// it will be replaced.
func (p *Profile) Add(s *Sample) {
	if _, ok := p.ids[s.ID]; ok {
		i := slices.IndexFunc(p.samples, func(o *Sample) bool {
			return o.ID == s.ID
		})
		p.samples[i] = s
		p.ids[s.ID] = s
		return
	}
	p.samples = append(p.samples, s)
	p.ids[s.ID] = s
}

// Sample returns a sample with the given ID.
// It returns nil if the sample is not in the profile.
func (p *Profile) Sample(id string) *Sample {
	return p.ids[id]
}

// Samples returns the IDs of the samples
// in the order they were added.
func (p *Profile) Samples() []string {
	ids := make([]string, 0, len(p.samples))
	for _, s := range p.samples {
		ids = append(ids, s.ID)
	}
	return ids
}

// Len returns the number of samples in the profile.
func (p *Profile) Len() int {
	return len(p.samples)
}

// Merge returns a pseudo-sample
// in which the percentage of each taxon
// is the average of its percentage
// over all samples in the profile.
func (p *Profile) Merge() *Sample {
	m := newSample(MergedID)
	if len(p.samples) == 0 {
		return m
	}
	m.Ranks = slices.Clone(p.samples[0].Ranks)

	n := float64(len(p.samples))
	for _, s := range p.samples {
		for _, e := range s.entries {
			e.Percentage /= n
			m.Add(e)
		}
	}
	return m
}

// AddLineages adds the lineages
// of all the taxa in the profile
// to a lineage table.
func (p *Profile) AddLineages(l *taxonomy.Lineages) {
	for _, s := range p.samples {
		for _, e := range s.entries {
			l.Add(s.Lineage(e))
		}
	}
}

// Lineages returns a lineage table
// with the taxa of the given profiles.
// Nil profiles are ignored.
func Lineages(ps ...*Profile) *taxonomy.Lineages {
	l := taxonomy.NewLineages()
	for _, p := range ps {
		if p == nil {
			continue
		}
		p.AddLineages(l)
	}
	return l
}
