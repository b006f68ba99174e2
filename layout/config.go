// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package layout

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/js-arias/profplot/gradient"
	"github.com/lucasb-eyer/go-colorful"
)

// Config is the style of a tree figure.
type Config struct {
	// Colors of the predicted and true abundances,
	// as hex RGB strings (e.g., "#1b9e77").
	Predicted string `toml:"predicted"`
	True      string `toml:"true"`

	// Opacity of the node faces,
	// between 0 and 1.
	Opacity float64 `toml:"opacity"`

	// Name of the gradient used to color the branches
	// by the difference between predicted
	// and true abundances.
	// If empty,
	// branches are black.
	Gradient string `toml:"gradient"`

	// Scale of the node faces,
	// between 0 and 1.
	Face float64 `toml:"face"`
}

// DefaultConfig returns the default style.
func DefaultConfig() Config {
	return Config{
		Predicted: "#1b9e77",
		True:      "#d95f02",
		Opacity:   0.6,
		Face:      1,
	}
}

// ReadConfig reads a style from a TOML file.
// Undefined fields take the default values.
func ReadConfig(name string) (Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg := DefaultConfig()
	md, err := toml.NewDecoder(f).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("while reading file %q: %v", name, err)
	}
	if u := md.Undecoded(); len(u) > 0 {
		return Config{}, fmt.Errorf("while reading file %q: unknown field %q", name, u[0].String())
	}
	if _, err := cfg.style(); err != nil {
		return Config{}, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return cfg, nil
}

// style is a validated style.
type style struct {
	pred  color.NRGBA
	truth color.NRGBA
	grad  gradient.Gradienter
	face  float64
}

func (cfg Config) style() (style, error) {
	if cfg.Opacity <= 0 || cfg.Opacity > 1 {
		return style{}, fmt.Errorf("invalid opacity %.3f", cfg.Opacity)
	}
	if cfg.Face <= 0 || cfg.Face > 1 {
		return style{}, fmt.Errorf("invalid face scale %.3f", cfg.Face)
	}

	alpha := uint8(cfg.Opacity * 255)
	pred, err := parseColor(cfg.Predicted, alpha)
	if err != nil {
		return style{}, fmt.Errorf("field %q: %v", "predicted", err)
	}
	truth, err := parseColor(cfg.True, alpha)
	if err != nil {
		return style{}, fmt.Errorf("field %q: %v", "true", err)
	}

	s := style{
		pred:  pred,
		truth: truth,
		face:  cfg.Face,
	}
	if cfg.Gradient != "" {
		g, err := gradient.Scheme(cfg.Gradient)
		if err != nil {
			return style{}, err
		}
		s.grad = g
	}
	return s, nil
}

// parseColor parses a hex RGB color
// in the "#rrggbb" or "#rgb" form.
func parseColor(s string, alpha uint8) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 3 && len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if strings.Trim(h, "0123456789abcdefABCDEF") != "" {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	c, err := colorful.Hex("#" + strings.ToLower(h))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %v", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}
