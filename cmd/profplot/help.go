// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(profileFilesGuide)
	app.Add(styleFilesGuide)
}

var profileFilesGuide = &command.Command{
	Usage: "profile-files",
	Short: "about taxonomic profile files",
	Long: `
ProfPlot reads taxonomic profiles in the CAMI profiling format. A profile file
is a tab-delimited file with one or more samples.

Each sample starts with a header. Header lines start with the '@' character,
and contain a key and a value separated by a colon:

	@SampleID    the identifier of the sample (required)
	@Version     the version of the format
	@Ranks       the ranks of the taxonomic paths, separated by '|'
	@TaxonomyID  the version of the taxonomy

Any other key (for example @__program__) is kept as metadata. If @Ranks is
not defined, the CAMI ranks will be used:

	superkingdom|phylum|class|order|family|genus|species|strain

A line starting with '@@' defines the columns of the data rows. The required
columns are:

	TAXID       the NCBI taxonomic ID of the taxon
	RANK        the rank of the taxon
	TAXPATH     the IDs of the lineage of the taxon, separated by '|'
	PERCENTAGE  the relative abundance of the taxon, between 0 and 100

The column TAXPATHSN, with the names of the lineage, is optional. An empty
element in TAXPATH indicates that the lineage does not have a taxon at that
rank. Lines starting with '#' are ignored.

Here is an example file:

	# Taxonomic Profiling Output
	@SampleID:sample_0
	@Version:0.9.1
	@Ranks:superkingdom|phylum|class|order|family|genus|species
	@@TAXID	RANK	TAXPATH	TAXPATHSN	PERCENTAGE
	2	superkingdom	2	Bacteria	100.0
	1224	phylum	2|1224	Bacteria|Proteobacteria	60.0
	561	genus	2|1224|1236|91347|543|561	Bacteria|Proteobacteria|Gammaproteobacteria|Enterobacterales|Enterobacteriaceae|Escherichia	30.0

A new @SampleID line starts a new sample. Ground truth profiles use the same
format.
	`,
}

var styleFilesGuide = &command.Command{
	Usage: "style-files",
	Short: "about tree style files",
	Long: `
The style of the tree figures can be changed with a TOML file. All fields are
optional. The fields are:

	predicted  the color of the predicted abundances, as a hex RGB string
	           (default "#1b9e77")
	true       the color of the true abundances, as a hex RGB string
	           (default "#d95f02")
	opacity    the opacity of the node circles, between 0 and 1
	           (default 0.6)
	gradient   a color gradient used to color the branches by the
	           difference between the predicted and the true abundance
	           (default, no gradient, the branches are black)
	face       the scale of the node circles, between 0 and 1
	           (default 1)

The area of the node circles is proportional to the abundance of the taxon.
Valid gradients are:

	blind         the color-blind safe gradient of the blind package
	gray          a gray scale from light gray to black
	incandescent  <https://personal.sron.nl/~pault/#fig:scheme_incandescent>
	iridescent    <https://personal.sron.nl/~pault/#fig:scheme_iridescent>
	rainbow       from purple to red
	              <https://personal.sron.nl/~pault/#fig:scheme_rainbow_smooth>

Here is an example file:

	# profplot style
	predicted = "#1b9e77"
	true = "#d95f02"
	opacity = 0.5
	gradient = "incandescent"
	`,
}
