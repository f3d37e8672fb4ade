// 17 Oct 2026
// Read gene quartets and coding sequences, call gene conversion
// between paralogs with bootstrap support.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/geneconv/pkg/convdetect"
	. "github.com/andrew-torda/geneconv/pkg/seq/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] quartetfile cds1.fa cds2.fa outfile")
	long := `quartetfile has lines "paralog1 ortholog1 paralog2 ortholog2".
cds1.fa has species 1 coding sequences, cds2.fa species 2.
Use - as outfile for standard output.`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	flags := convdetect.DefaultFlags()
	flag.IntVar(&flags.Boot, "b", flags.Boot, "bootstrap repetitions")
	flag.Int64Var(&flags.Seed, "r", flags.Seed, "random number seed")
	flag.StringVar(&flags.Aligner, "a", flags.Aligner, "aligner: clustal, star or none")
	flag.StringVar(&flags.Exe, "x", flags.Exe, "clustal executable")
	flag.StringVar(&flags.MatFile, "m", "", "substitution matrix file for star aligner, default BLOSUM62")
	flag.Float64Var(&flags.Open, "go", flags.Open, "gap open penalty for star aligner")
	flag.Float64Var(&flags.Wdn, "gw", flags.Wdn, "gap widening penalty for star aligner")
	flag.IntVar(&flags.Jobs, "j", flags.Jobs, "quartets to work on at once")
	flag.StringVar(&flags.Plot, "p", "", "write a png plot of Ks to this file")
	flag.BoolVar(&flags.Time, "t", false, "print out timing information")
	flag.IntVar(&flags.Vbsty, "v", flags.Vbsty, "verbosity, 0 quiet, 2 shows skipped quartets")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 4 {
		usage()
		os.Exit(ExitUsageError)
	}
	args := flag.Args()
	if err := convdetect.Mymain(&flags, args[0], args[1], args[2], args[3]); err != nil {
		Fatal(err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
