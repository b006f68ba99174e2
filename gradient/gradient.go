// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package gradient implements color gradients
// used to color the branches of a taxonomic tree.
package gradient

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/js-arias/blind"
)

// Gradienter is an interface for types
// that return a color gradient
// for values between 0 and 1.
type Gradienter interface {
	Gradient(v float64) color.Color
}

var schemes = map[string]Gradienter{
	"gray":         GrayScale{},
	"incandescent": Incandescent{},
	"iridescent":   Iridescent{},
	"rainbow":      RainbowPurpleToRed{},
	"blind":        Blind{},
}

// Scheme returns a gradient from its name.
func Scheme(name string) (Gradienter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	g, ok := schemes[name]
	if !ok {
		return nil, fmt.Errorf("unknown gradient %q", name)
	}
	return g, nil
}

// Names returns the names
// of the available gradients.
func Names() []string {
	names := make([]string, 0, len(schemes))
	for n := range schemes {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Blind is the default color-blind safe gradient.
type Blind struct{}

func (b Blind) Gradient(v float64) color.Color {
	return blind.Gradient(clamp(v))
}

// Incandescent is the incandescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_incandescent>.
type Incandescent struct{}

func (i Incandescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Incandescent, clamp(v))
}

// Iridescent is the iridescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_iridescent>.
type Iridescent struct{}

func (i Iridescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Iridescent, clamp(v))
}

// RainbowPurpleToRed is the rainbow color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_rainbow_smooth>
// starting at purple and ending at red.
type RainbowPurpleToRed struct{}

func (r RainbowPurpleToRed) Gradient(v float64) color.Color {
	return blind.Sequential(blind.RainbowPurpleToRed, clamp(v))
}

// GrayScale returns a gray scale
// between light gray (0)
// and black (1).
type GrayScale struct{}

func (g GrayScale) Gradient(v float64) color.Color {
	c := 200 - uint8(clamp(v)*200)
	return color.RGBA{c, c, c, 255}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
