// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package figure

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Size and resolution of the figures.
const (
	Width  = 5 * vg.Inch
	Height = 5 * vg.Inch
	DPI    = 800
)

// Formats returns the supported file formats.
func Formats() []string {
	return []string{"eps", "jpeg", "jpg", "pdf", "png", "svg", "tif", "tiff"}
}

// IsFormat returns true if a format is supported.
func IsFormat(format string) bool {
	return slices.Contains(Formats(), strings.ToLower(format))
}

func newCanvas(format string) (vg.CanvasWriterTo, error) {
	switch strings.ToLower(format) {
	case "png":
		return vgimg.PngCanvas{Canvas: newImage()}, nil
	case "jpg", "jpeg":
		return vgimg.JpegCanvas{Canvas: newImage()}, nil
	case "tif", "tiff":
		return vgimg.TiffCanvas{Canvas: newImage()}, nil
	case "svg":
		return vgsvg.New(Width, Height), nil
	case "pdf":
		return vgpdf.New(Width, Height), nil
	case "eps":
		return vgeps.New(Width, Height), nil
	}
	return nil, fmt.Errorf("unsupported file format %q", format)
}

func newImage() *vgimg.Canvas {
	return vgimg.NewWith(
		vgimg.UseWH(Width, Height),
		vgimg.UseDPI(DPI),
	)
}

// A Drawer draws a figure into a canvas.
// A *plot.Plot is a Drawer.
type Drawer interface {
	Draw(c draw.Canvas)
}

// SquarePlot is a plot
// drawn with a square data area.
type SquarePlot struct {
	*plot.Plot
}

// Canvas returns the part of a canvas
// in which the data area of the plot is square.
func (sp SquarePlot) Canvas(c draw.Canvas) draw.Canvas {
	dc := sp.Plot.DataCanvas(c)
	w := dc.Max.X - dc.Min.X
	h := dc.Max.Y - dc.Min.Y
	if w > h {
		d := (w - h) / 2
		return draw.Crop(c, d, -d, 0, 0)
	}
	if h > w {
		d := (h - w) / 2
		return draw.Crop(c, 0, 0, d, -d)
	}
	return c
}

// Draw implements the Drawer interface.
func (sp SquarePlot) Draw(c draw.Canvas) {
	sp.Plot.Draw(sp.Canvas(c))
}

// Save draws a figure into a file
// with the given format.
func Save(d Drawer, name, format string) (err error) {
	c, err := newCanvas(format)
	if err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	d.Draw(draw.New(c))

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	return nil
}
