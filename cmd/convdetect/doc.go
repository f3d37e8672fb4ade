// 17 Oct 2026

/*
Convdetect looks for gene conversion between paralogs. It takes quartets
of genes, two paralogs in species 1 and their orthologs in species 2.
For each quartet it aligns the four coding sequences, by translating,
aligning the proteins and putting the codons back. It then works out
synonymous (Ks) and nonsynonymous (Ka) distances for the paralog pair in
each species and for the two ortholog pairs.

If the paralogs in a species are closer to each other, by Ks, than each
is to its ortholog, we call conversion in that species. Ties are not
conversion. The call is then checked by resampling codon columns with
replacement and counting how often it comes out the same way.

Sites are counted after Nei and Gojobori. Differences are counted with a
single step rule, so a codon differing at several places counts once,
synonymous if the amino acids agree. Distances get the Jukes-Cantor
correction and anything saturated is given 5.0.

Usage:

	convdetect [flags] quartetfile cds1.fa cds2.fa outfile

The quartet file has whitespace separated lines

	paralog1 ortholog1 paralog2 ortholog2

Blank lines and lines starting with # are ignored. The sequence files
are fasta, gzipped or not. The first word of the comment is the gene id.
If an id is in both files, the species 2 version is used.

The output has a header and then one tab separated line per quartet:

	QuartetID Ka_P1 Ks_P1 Ka_P2 Ks_P2 Ka_O1 Ks_O1 Ka_O2 Ks_O2 Conv_Sp1 Conv_Sp2 Boot_Prob_Sp1 Boot_Prob_Sp2

P1 is the species 1 paralogs, P2 the species 2 genes, O1 and O2 the two
ortholog pairs. Quartets with a missing sequence, fewer than five amino
acids, or an alignment that fails are left out and counted.

The flags are:

	-a aligner
		clustal (default) runs clustalw2. star aligns in the program with
		a substitution matrix. none means the sequences are already codon
		aligned.
	-b n
		Number of bootstrap repetitions, default 100.
	-go, -gw penalty
		Gap opening and widening penalties for the star aligner.
	-j n
		Work on n quartets at once. The output does not depend on n.
	-m matrixfile
		Substitution matrix for the star aligner instead of BLOSUM62.
	-p plotfile
		Write a png of paralog Ks against the smaller ortholog Ks.
	-r seed
		Random number seed, default 1637.
	-t
		Print timing information.
	-v n
		Verbosity. 0 is quiet, 1 gives a summary, 2 lists skipped
		quartets, 3 prints the Ks values of each quartet as a matrix.
	-x executable
		Name of the clustal program, default clustalw2.
*/
package main
