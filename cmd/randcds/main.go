// 31 July 2020

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/andrew-torda/geneconv/pkg/randseq"
	. "github.com/andrew-torda/geneconv/pkg/seq/common"
)

// create makes a file or gives up.
func create(fname string) *os.File {
	WarnExists(fname)
	fp, err := os.Create(fname)
	if err != nil {
		Fatal(err)
		os.Exit(ExitFailure)
	}
	return fp
}

func main() {
	f := flag.NewFlagSet("randcds", flag.ExitOnError)
	const iseed int64 = 1637
	var args randseq.RandSeqArgs

	f.Int64Var(&args.Iseed, "r", iseed, "random number seed")
	f.Float64Var(&args.MutRate, "m", 0.1, "chance of a codon mutating on a branch")
	f.Float64Var(&args.ConvFrac, "c", 0.3, "fraction of families with a conversion")
	f.BoolVar(&args.Space, "w", false, "scatter white space through the sequences")
	if err := f.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(f.Output(), err)
		os.Exit(ExitUsageError)
	}
	if f.NArg() != 3 {
		fmt.Fprintln(f.Output(), "Wrong number of args\nrandcds [..] prefix nfamily ncodon")
		f.Usage()
		os.Exit(ExitUsageError)
	}

	const emsg = "Failed converting %s to positive integer\n"
	if n, err := strconv.ParseUint(f.Arg(1), 10, 32); err != nil {
		fmt.Fprintf(os.Stderr, emsg, f.Arg(1))
		os.Exit(ExitFailure)
	} else {
		args.Nfam = int(n)
	}
	if n, err := strconv.ParseUint(f.Arg(2), 10, 32); err != nil {
		fmt.Fprintf(os.Stderr, emsg, f.Arg(2))
		os.Exit(ExitFailure)
	} else {
		args.Ncodon = int(n)
	}

	prefix := f.Arg(0)
	fps := []*os.File{create(prefix + "_sp1.fa"), create(prefix + "_sp2.fa"), create(prefix + ".quartet")}
	args.Sp1, args.Sp2, args.Quartets = fps[0], fps[1], fps[2]
	err := randseq.RandSeqMain(&args)
	for _, fp := range fps {
		if e := fp.Close(); err == nil {
			err = e
		}
	}
	if err != nil {
		Fatal(err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
