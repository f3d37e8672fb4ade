// 16 Oct 2026

/*
Orthofilter reads collinearity block files and keeps the gene pairs
whose chromosomes are on a list. Gene lines start with L and have the
species 1 gene in the first field and the species 2 gene in the third.
The chromosome is the number after the leading letters of an id, so
Lso01g12345 is on chromosome 1. Ids that do not look like that are on
chromosome 0.

Each input file gets an output file with the suffix added, holding
tab separated gene pairs. A file that cannot be read is reported and
the others are still done.

Usage:

	orthofilter -i 'pattern' [-s suffix] [-c pairs]

The flags are:

	-c pairs
		Chromosome pairs to keep, like "1,1;11,11" (the default).
	-i pattern
		Glob pattern for input files. Quote it so the shell leaves it alone.
	-s suffix
		Added to each input name to make the output name, default .pseu.ortologs
*/
package main
