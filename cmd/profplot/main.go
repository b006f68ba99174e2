// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// ProfPlot is a tool to draw taxonomic profiles
// of metagenomic samples.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/profplot/cmd/profplot/draw"
	"github.com/js-arias/profplot/cmd/profplot/samples"
	"github.com/js-arias/profplot/cmd/profplot/topology"
)

var app = &command.Command{
	Usage: "profplot <command> [<argument>...]",
	Short: "a tool to draw taxonomic profiles",
}

func init() {
	app.Add(draw.Command)
	app.Add(samples.Command)
	app.Add(topology.Command)
}

func main() {
	app.Main()
}
