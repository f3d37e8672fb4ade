// 16 Oct 2026
// Join an ortholog list and a paralog list to make gene quartets.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/andrew-torda/geneconv/pkg/ortho"
	. "github.com/andrew-torda/geneconv/pkg/seq/common"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[-o orthologs] [-p paralogs] [outfile]")
	flag.PrintDefaults()
}

func mymain(orthoFile, paraFile, outfile string) (err error) {
	omap, err := ortho.ReadOrthoFile(orthoFile)
	if err != nil {
		return fmt.Errorf("orthologs: %w", err)
	}
	var w io.Writer = os.Stdout
	if outfile != "-" {
		WarnExists(outfile)
		fp, e := os.Create(outfile)
		if e != nil {
			return e
		}
		defer func() {
			if e := fp.Close(); err == nil {
				err = e
			}
		}()
		w = fp
	}
	scanned, written, err := ortho.BuildQuartetFile(paraFile, omap, w)
	if err != nil {
		return err
	}
	p := message.NewPrinter(language.English)
	p.Fprintf(Stderr, "%d orthologs, %d paralog lines, %d quartets\n", len(omap), scanned, written)
	return nil
}

func main() {
	orthoFile := flag.String("o", "Lso_Lma.block.rr.txt"+ortho.DefaultSuffix, "ortholog pairs file")
	paraFile := flag.String("p", "Lso.v.Lso.paralog", "paralog file")
	flag.Usage = usage
	flag.Parse()
	outfile := "Lso_Lma.quartet"
	switch flag.NArg() {
	case 0:
	case 1:
		outfile = flag.Arg(0)
	default:
		usage()
		os.Exit(ExitUsageError)
	}
	if err := mymain(*orthoFile, *paraFile, outfile); err != nil {
		Fatal(err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
