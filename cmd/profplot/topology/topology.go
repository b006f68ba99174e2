// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package topology implements a command to print
// the taxonomic tree of a profile.
package topology

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/profplot/layout"
	"github.com/js-arias/profplot/profile"
	"github.com/js-arias/profplot/taxonomy"
)

var Command = &command.Command{
	Usage: `topology [-s|--sample <sample-id>] [-m|--merge]
	[-g|--truth <file>] [-n|--normalize]
	[--taxonomy <directory>]
	-i|--input <file> <rank>`,
	Short: "print the taxonomic tree of a profile",
	Long: `
Command topology reads a taxonomic profile in CAMI format and prints the
taxonomic tree of each sample, limited at the given rank, as used by the
command 'profplot draw'.

The argument of the command is the rank used to limit the tree.

The flag --input, or -i, is required and indicates the profile file. The
flags --truth (-g), --sample (-s), --merge (-m), --normalize (-n), and
--taxonomy have the same meaning as in 'profplot draw'.

The output is a tab-delimited table with the following columns:

	sample     the ID of the sample
	taxid      the taxonomic ID of the node
	parent     the taxonomic ID of the parent node
	rank       the rank of the node
	name       the name of the node
	predicted  the predicted abundance of the node
	true       the true abundance of the node

Nodes are printed in pre-order.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var mergeFlag bool
var normFlag bool
var inputFile string
var truthFile string
var sampleFlag string
var taxDir string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&mergeFlag, "merge", false, "")
	c.Flags().BoolVar(&mergeFlag, "m", false, "")
	c.Flags().BoolVar(&normFlag, "normalize", false, "")
	c.Flags().BoolVar(&normFlag, "n", false, "")
	c.Flags().StringVar(&inputFile, "input", "", "")
	c.Flags().StringVar(&inputFile, "i", "", "")
	c.Flags().StringVar(&truthFile, "truth", "", "")
	c.Flags().StringVar(&truthFile, "g", "", "")
	c.Flags().StringVar(&sampleFlag, "sample", "", "")
	c.Flags().StringVar(&sampleFlag, "s", "", "")
	c.Flags().StringVar(&taxDir, "taxonomy", "", "")
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

	pred, err := profile.ReadFile(inputFile)
	if err != nil {
		return err
	}
	var truth *profile.Profile
	if truthFile != "" {
		truth, err = profile.ReadFile(truthFile)
		if err != nil {
			return err
		}
	}

	lay, err := layout.New(pred, truth, normFlag, layout.DefaultConfig())
	if err != nil {
		return err
	}
	ss, err := lay.Select(sampleFlag, mergeFlag)
	if err != nil {
		return err
	}
	merge := mergeFlag && sampleFlag == ""

	var res taxonomy.Resolver = profile.Lineages(pred, truth)
	if taxDir != "" {
		db := taxonomy.Open(taxDir)
		lay.SetTranslator(db)
		res = db
	}

	tsv := csv.NewWriter(c.Stdout())
	tsv.Comma = '\t'
	tsv.UseCRLF = true
	if err := tsv.Write([]string{"sample", "taxid", "parent", "rank", "name", "predicted", "true"}); err != nil {
		return err
	}
	for _, s := range ss {
		if err := lay.Compute(s, merge); err != nil {
			return err
		}
		t, err := res.Topology(lay.TaxIDs(), rank)
		if err != nil {
			return fmt.Errorf("sample %q: %v", s, err)
		}
		if err := writeTree(tsv, s, t, lay); err != nil {
			return err
		}
	}
	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

func writeTree(tsv *csv.Writer, sample string, t *taxonomy.Tree, lay *layout.Profiles) error {
	pred := lay.Predicted()
	truth := lay.GroundTruth()
	for _, n := range t.Nodes() {
		var parent string
		if p := n.Parent(); p != nil {
			parent = p.TaxID
		}
		row := []string{
			sample,
			n.TaxID,
			parent,
			string(n.Rank),
			n.Name,
			strconv.FormatFloat(pred.Percentage(n.TaxID), 'f', 6, 64),
			strconv.FormatFloat(truth.Percentage(n.TaxID), 'f', 6, 64),
		}
		if err := tsv.Write(row); err != nil {
			return err
		}
	}
	return nil
}
