// 16 Oct 2026

/*
Mkquartet builds the quartet file for convdetect. It reads ortholog
pairs, "gene1 gene2", with gene1 in species 1, and a paralog list with
lines "id paralog1 paralog2". A paralog pair becomes a quartet if both
paralogs have orthologs, the orthologs look like gene ids and they are
not the same gene.

Usage:

	mkquartet [-o orthologs] [-p paralogs] [outfile]

Output lines are "paralog1 ortholog1 paralog2 ortholog2", tab separated.
An outfile of - means standard output.
*/
package main
