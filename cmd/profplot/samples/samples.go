// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package samples implements a command to print
// the samples of a profile.
package samples

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/profplot/profile"
)

var Command = &command.Command{
	Usage: "samples [--count] <profile-file>",
	Short: "print the samples of a profile",
	Long: `
Command samples reads a taxonomic profile in CAMI format and prints the IDs of
its samples, one per line, in file order.

The argument of the command is the name of the profile file.

If the flag --count is defined, the number of taxa in each sample will be
printed next to the sample ID.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var countFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&countFlag, "count", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting profile file")
	}

	p, err := profile.ReadFile(args[0])
	if err != nil {
		return err
	}

	for _, id := range p.Samples() {
		if !countFlag {
			fmt.Fprintf(c.Stdout(), "%s\n", id)
			continue
		}
		fmt.Fprintf(c.Stdout(), "%s\t%d\n", id, len(p.Sample(id).TaxIDs()))
	}
	return nil
}
