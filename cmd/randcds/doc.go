// 31 July 2020

/*
Randcds writes random gene families for testing convdetect. Each family
has two paralogs in species 1 and their orthologs in species 2. The
paralogs split before the species, so normally orthologs are closest.
Some families get a late conversion in species 1, marked "converted"
in the fasta comment, and there the paralogs are closest.

Usage:

	randcds [flags] prefix nfamily ncodon

It writes prefix_sp1.fa, prefix_sp2.fa and prefix.quartet.

The flags are:

	-c fraction
		Fraction of families with a conversion.
	-m rate
		Chance of a codon mutating on each branch.
	-r seed
		Random number seed.
	-w
		Scatter white space through the sequences to test readers.
*/
package main
