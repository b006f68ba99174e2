// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package draw implements a command to draw
// the taxonomic tree of a profile.
package draw

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/js-arias/command"
	"github.com/js-arias/profplot/figure"
	"github.com/js-arias/profplot/layout"
	"github.com/js-arias/profplot/profile"
	"github.com/js-arias/profplot/taxonomy"
)

var Command = &command.Command{
	Usage: `draw [-s|--sample <sample-id>] [-m|--merge]
	[-g|--truth <file>] [-n|--normalize]
	[-b|--output <file-prefix>] [-t|--type <format>]
	[-l|--l1] [--l1-per-sample]
	[--taxonomy <directory>] [--style <file>]
	[-v|--verbose]
	-i|--input <file> <rank>`,
	Short: "draw the taxonomic tree of a profile",
	Long: `
Command draw reads a taxonomic profile in CAMI format and draws, for each
sample, a circular taxonomic tree with the relative abundance of each taxon
shown as a circle in the node. The area of the circle is proportional to the
abundance.

The argument of the command is the rank used to limit the tree. Valid ranks
are: superkingdom (or domain), kingdom, phylum, class, order, family, genus,
species, subspecies, and strain.

The flag --input, or -i, is required and indicates the profile file.

The flag --truth, or -g, indicates a ground truth profile, in CAMI format. If
defined, true abundances will be drawn in the tree, next to the predicted
abundances. The ground truth sample is the sample with the same ID. If the
ground truth file has a single sample, it will be used for any sample.

By default, all samples of the profile will be drawn, in file order. Use the
flag --sample, or -s, to draw a single sample. Use the flag --merge, or -m, to
draw the average of all samples. If both flags are defined, the sample flag
will be used.

If the flag --normalize, or -n, is defined, the abundances at each rank will
be scaled to sum 100.

By default, the lineages of the taxa will be read from the TAXPATH column of
the profiles. Use the flag --taxonomy to define a directory with an NCBI
taxonomy dump (files nodes.dmp, names.dmp, and optionally merged.dmp).

The output files will be named using the base name of the input file, use the
flag --output, or -b, to define a different prefix. The tree figure will be
named as:

	<prefix>_tree_<rank>_<sample>.<format>

In merge mode, the sample name will be "merged". By default, the files will be
in PNG format, use the flag --type, or -t, to define a different format. Valid
formats are: png, jpg, jpeg, tif, tiff, svg, pdf, and eps. Raster figures
have a resolution of 800 DPI.

If the flag --l1, or -l, is defined, a scatter plot of the true and predicted
abundances of the taxa at the given rank, will be drawn, with the name:

	<prefix>_L1_<rank>.<format>

Note that this file is shared between samples. Use the flag --l1-per-sample to
add the sample name to the file.

The style of the tree can be defined with a TOML file with the flag --style.
See 'profplot help style-files' for the fields of the style file.

The flag --verbose, or -v, prints debug messages.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var mergeFlag bool
var normFlag bool
var l1Flag bool
var l1Sample bool
var verbose bool
var inputFile string
var truthFile string
var outPrefix string
var formatFlag string
var sampleFlag string
var taxDir string
var styleFile string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&mergeFlag, "merge", false, "")
	c.Flags().BoolVar(&mergeFlag, "m", false, "")
	c.Flags().BoolVar(&normFlag, "normalize", false, "")
	c.Flags().BoolVar(&normFlag, "n", false, "")
	c.Flags().BoolVar(&l1Flag, "l1", false, "")
	c.Flags().BoolVar(&l1Flag, "l", false, "")
	c.Flags().BoolVar(&l1Sample, "l1-per-sample", false, "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
	c.Flags().BoolVar(&verbose, "v", false, "")
	c.Flags().StringVar(&inputFile, "input", "", "")
	c.Flags().StringVar(&inputFile, "i", "", "")
	c.Flags().StringVar(&truthFile, "truth", "", "")
	c.Flags().StringVar(&truthFile, "g", "", "")
	c.Flags().StringVar(&outPrefix, "output", "", "")
	c.Flags().StringVar(&outPrefix, "b", "", "")
	c.Flags().StringVar(&formatFlag, "type", figure.DefaultFormat, "")
	c.Flags().StringVar(&formatFlag, "t", figure.DefaultFormat, "")
	c.Flags().StringVar(&sampleFlag, "sample", "", "")
	c.Flags().StringVar(&sampleFlag, "s", "", "")
	c.Flags().StringVar(&taxDir, "taxonomy", "", "")
	c.Flags().StringVar(&styleFile, "style", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting rank")
	}
	rank, err := taxonomy.ParseRank(args[0])
	if err != nil {
		return c.UsageError(err.Error())
	}
	if inputFile == "" {
		return c.UsageError("expecting input file, flag --input")
	}
	format := strings.ToLower(formatFlag)
	if !figure.IsFormat(format) {
		return c.UsageError(fmt.Sprintf("unsupported file format %q", formatFlag))
	}

	logger := newLogger(c.Stderr(), verbose)

	pred, err := profile.ReadFile(inputFile)
	if err != nil {
		return err
	}
	logger.Debug("read profile", "file", inputFile, "samples", pred.Len())

	var truth *profile.Profile
	if truthFile != "" {
		truth, err = profile.ReadFile(truthFile)
		if err != nil {
			return err
		}
		logger.Debug("read ground truth", "file", truthFile, "samples", truth.Len())
	}

	cfg := layout.DefaultConfig()
	if styleFile != "" {
		cfg, err = layout.ReadConfig(styleFile)
		if err != nil {
			return err
		}
	}

	lay, err := layout.New(pred, truth, normFlag, cfg)
	if err != nil {
		return err
	}

	ss, err := lay.Select(sampleFlag, mergeFlag)
	if err != nil {
		return err
	}
	merge := mergeFlag && sampleFlag == ""

	tool := figure.ToolName(inputFile)
	base := outPrefix
	if base == "" {
		base = tool
	}

	res := resolver(pred, truth)
	if tr, ok := res.(taxonomy.Translator); ok {
		lay.SetTranslator(tr)
	}

	f := &figure.Figure{
		Resolver:    res,
		Layout:      lay,
		Rank:        rank,
		Tool:        tool,
		Base:        base,
		Format:      format,
		L1:          l1Flag,
		L1PerSample: l1Sample,
	}
	if l1Flag && !l1Sample && len(ss) > 1 {
		logger.Warn("L1 plot is shared by all samples; use --l1-per-sample to keep each plot", "file", figure.L1File(base, rank, format))
	}
	if l1Flag && truth == nil {
		logger.Warn("no ground truth; true abundances in the L1 plot will be zero")
	}

	for _, s := range ss {
		start := time.Now()
		if err := lay.Compute(s, merge); err != nil {
			return err
		}
		if truth != nil && len(lay.GroundTruth()) == 0 {
			logger.Warn("sample without ground truth", "sample", s)
		}

		a, err := f.Generate(s)
		if err != nil {
			return err
		}
		logger.Info("tree", "sample", s, "file", a.Tree)
		if a.L1 != "" {
			logger.Info("L1", "sample", s, "file", a.L1, "taxa", a.Taxa, "distance", fmt.Sprintf("%.6f", a.Distance))
		}
		logger.Debugf("sample %s done (%s)", s, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// resolver returns the taxonomy used to build the trees.
func resolver(ps ...*profile.Profile) taxonomy.Resolver {
	if taxDir != "" {
		return taxonomy.Open(taxDir)
	}
	return profile.Lineages(ps...)
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
