// 16 Oct 2026
// Pull ortholog pairs on chosen chromosomes out of collinearity block
// files.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/andrew-torda/geneconv/pkg/ortho"
	. "github.com/andrew-torda/geneconv/pkg/seq/common"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "-i 'pattern' [-s suffix] [-c pairs]")
	flag.PrintDefaults()
}

func main() {
	var pattern, suffix, chroms string
	flag.StringVar(&pattern, "i", "", "input files, a quoted glob pattern like '*.block.rr.txt'")
	flag.StringVar(&suffix, "s", ortho.DefaultSuffix, "suffix added to input name for output")
	flag.StringVar(&chroms, "c", ortho.DefaultPairs, "chromosome pairs to keep, like \"1,1;2,2;3,5\"")
	flag.Usage = usage
	flag.Parse()
	if pattern == "" || flag.NArg() != 0 {
		usage()
		os.Exit(ExitUsageError)
	}
	pairs, err := ortho.ParsePairs(chroms)
	if err != nil {
		Fatal(err)
		os.Exit(ExitUsageError)
	}
	files, err := filepath.Glob(pattern)
	if err != nil {
		Fatal(err)
		os.Exit(ExitUsageError)
	}
	if len(files) == 0 {
		Warn("no files match %s", pattern)
		os.Exit(ExitSuccess)
	}
	p := message.NewPrinter(language.English)
	p.Fprintf(Stderr, "chromosome pairs %s, %d files\n", pairs, len(files))
	nfail := 0
	for _, f := range files {
		scanned, kept, err := ortho.FilterFile(f, suffix, pairs)
		if err != nil {
			Warn("%v", err)
			nfail++
			continue
		}
		p.Fprintf(Stderr, "%s: %d gene lines, %d pairs kept\n", f, scanned, kept)
	}
	if nfail > 0 {
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
