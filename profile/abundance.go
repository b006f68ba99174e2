// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package profile

// Abundance is a mapping from a taxonomic ID
// to its relative abundance,
// as a percentage.
type Abundance map[string]float64

// Percentage returns the percentage of a taxon.
// Taxa absent from the mapping
// have a percentage of 0.
func (a Abundance) Percentage(id string) float64 {
	return a[id]
}

// Fraction returns the relative abundance of a taxon
// as a fraction in [0, 1].
func (a Abundance) Fraction(id string) float64 {
	return a[id] / 100
}
