// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package layout implements the data provider
// of the profile figures:
// it computes the abundances of a sample
// and the style of each node of the tree.
package layout

import (
	"fmt"
	"image/color"
	"math"

	"github.com/js-arias/profplot/figure"
	"github.com/js-arias/profplot/profile"
	"github.com/js-arias/profplot/taxonomy"
)

// Profiles is a layout
// for a predicted profile
// and an optional ground truth profile.
type Profiles struct {
	pred      *profile.Profile
	truth     *profile.Profile
	normalize bool
	style     style
	tr        taxonomy.Translator

	// current sample
	predAb  profile.Abundance
	trueAb  profile.Abundance
	ids     []string
	current string
}

// New returns a layout for a predicted profile.
// Truth can be nil.
// If normalize is true,
// the abundances of each rank are scaled
// to sum 100.
func New(pred, truth *profile.Profile, normalize bool, cfg Config) (*Profiles, error) {
	if pred == nil {
		return nil, fmt.Errorf("undefined predicted profile")
	}
	st, err := cfg.style()
	if err != nil {
		return nil, err
	}
	return &Profiles{
		pred:      pred,
		truth:     truth,
		normalize: normalize,
		style:     st,
	}, nil
}

// Select returns the samples to be drawn.
// A named sample takes precedence over merge,
// and merge over all samples.
// In merge mode,
// the only sample is profile.MergedID.
func (p *Profiles) Select(sample string, merge bool) ([]string, error) {
	if sample != "" {
		if p.pred.Sample(sample) == nil {
			return nil, fmt.Errorf("sample %q not found in profile", sample)
		}
		return []string{sample}, nil
	}
	if merge {
		return []string{profile.MergedID}, nil
	}
	return p.pred.Samples(), nil
}

// Compute sets the abundances of a sample.
// If merge is true,
// the average of all samples is used.
func (p *Profiles) Compute(sample string, merge bool) error {
	var s *profile.Sample
	if merge {
		s = p.pred.Merge()
	} else {
		s = p.pred.Sample(sample)
		if s == nil {
			return fmt.Errorf("sample %q not found in profile", sample)
		}
	}

	p.current = s.ID
	p.predAb = p.translate(s.Abundance(p.normalize))
	p.ids = p.translateIDs(nil, s.TaxIDs())
	p.trueAb = nil

	ts := p.truthSample(sample, merge)
	if ts == nil {
		return nil
	}
	p.trueAb = p.translate(ts.Abundance(p.normalize))
	p.ids = p.translateIDs(p.ids, ts.TaxIDs())
	return nil
}

// SetTranslator sets the translator
// used to update the taxonomic IDs of the profiles
// to the IDs used by a taxonomy.
func (p *Profiles) SetTranslator(tr taxonomy.Translator) {
	p.tr = tr
}

// translate returns an abundance
// keyed by the translated IDs.
// The abundances of IDs merged into the same taxon
// are added.
func (p *Profiles) translate(a profile.Abundance) profile.Abundance {
	if p.tr == nil {
		return a
	}
	ta := make(profile.Abundance, len(a))
	for id, v := range a {
		ta[p.tr.Translate(id)] += v
	}
	return ta
}

// translateIDs appends the translated IDs
// that are not already in the list.
func (p *Profiles) translateIDs(ids, add []string) []string {
	seen := make(map[string]bool, len(ids)+len(add))
	for _, id := range ids {
		seen[id] = true
	}
	for _, id := range add {
		if p.tr != nil {
			id = p.tr.Translate(id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// truthSample returns the ground truth of a sample.
// If the ground truth has a single sample,
// it is used for any sample.
func (p *Profiles) truthSample(sample string, merge bool) *profile.Sample {
	if p.truth == nil || p.truth.Len() == 0 {
		return nil
	}
	if merge {
		return p.truth.Merge()
	}
	if s := p.truth.Sample(sample); s != nil {
		return s
	}
	if p.truth.Len() == 1 {
		return p.truth.Sample(p.truth.Samples()[0])
	}
	return nil
}

// Sample returns the ID of the current sample.
func (p *Profiles) Sample() string {
	return p.current
}

// TaxIDs returns the taxa of the current sample,
// both predicted and true.
func (p *Profiles) TaxIDs() []string {
	return p.ids
}

// Predicted returns the predicted abundances
// of the current sample.
func (p *Profiles) Predicted() profile.Abundance {
	return p.predAb
}

// GroundTruth returns the true abundances
// of the current sample.
// It is empty if there is no ground truth.
func (p *Profiles) GroundTruth() profile.Abundance {
	return p.trueAb
}

// Colors returns the colors of the predicted
// and true abundances.
func (p *Profiles) Colors() (predicted, truth color.Color) {
	return p.style.pred, p.style.truth
}

// Style returns the style of a node.
// Face areas are proportional to the abundance.
func (p *Profiles) Style(n *taxonomy.Node) figure.NodeStyle {
	pred := p.predAb.Percentage(n.TaxID)
	truth := p.trueAb.Percentage(n.TaxID)

	var ns figure.NodeStyle
	if p.style.grad != nil {
		ns.Branch = p.style.grad.Gradient(math.Abs(pred-truth) / 100)
	}
	if pred > 0 {
		ns.Faces = append(ns.Faces, figure.Face{
			Color:  p.style.pred,
			Radius: p.style.face * math.Sqrt(pred/100),
		})
	}
	if truth > 0 {
		ns.Faces = append(ns.Faces, figure.Face{
			Color:  p.style.truth,
			Radius: p.style.face * math.Sqrt(truth/100),
		})
	}
	return ns
}
