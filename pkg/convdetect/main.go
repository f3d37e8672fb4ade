// 17 Oct 2026

// Package convdetect is the driver behind the convdetect command. It
// reads quartets and coding sequences, aligns each quartet, applies the
// conversion rule with a bootstrap and writes one line per quartet.
package convdetect

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/andrew-torda/geneconv/pkg/align"
	"github.com/andrew-torda/geneconv/pkg/codon"
	"github.com/andrew-torda/geneconv/pkg/gotoh"
	"github.com/andrew-torda/geneconv/pkg/ksplot"
	"github.com/andrew-torda/geneconv/pkg/quartet"
	"github.com/andrew-torda/geneconv/pkg/seq"
	. "github.com/andrew-torda/geneconv/pkg/seq/common"
	"github.com/andrew-torda/geneconv/pkg/submat"
)

// CmdFlag has the command line flags.
type CmdFlag struct {
	Boot    int     // bootstrap repetitions
	Seed    int64   // random number seed
	Aligner string  // clustal, star or none
	Exe     string  // clustal executable
	MatFile string  // substitution matrix for star, empty for BLOSUM62
	Open    float64 // gap opening penalty for star
	Wdn     float64 // gap widening penalty for star
	Jobs    int     // quartets at once
	Plot    string  // png file name, empty for no plot
	Time    bool    // print timing
	Vbsty   int     // 0 quiet, 1 summary, 2 skips, 3 Ks matrices
}

// Aligner names.
const (
	AlnClustal = "clustal"
	AlnStar    = "star"
	AlnNone    = "none"
)

// DefaultFlags are what the command line gives if nothing is set.
func DefaultFlags() CmdFlag {
	return CmdFlag{
		Boot:    100,
		Seed:    quartet.DefaultSeed,
		Aligner: AlnClustal,
		Exe:     align.DefaultClustal,
		Open:    float64(align.DefaultPnlty.Open),
		Wdn:     float64(align.DefaultPnlty.Wdn),
		Jobs:    1,
		Vbsty:   1,
	}
}

// newProvider gives us the aligner the flags ask for. For clustal,
// we check the program is there before anything is read.
func newProvider(flags *CmdFlag, tbl *codon.Table) (align.Provider, error) {
	switch flags.Aligner {
	case AlnClustal:
		if err := align.CheckExe(flags.Exe); err != nil {
			return nil, err
		}
		return align.Clustal{Exe: flags.Exe, Tbl: tbl}, nil
	case AlnStar:
		mat := submat.Blosum62()
		if flags.MatFile != "" {
			var err error
			if mat, err = submat.Read(flags.MatFile); err != nil {
				return nil, err
			}
		}
		pnlty := gotoh.Pnlty{Open: float32(flags.Open), Wdn: float32(flags.Wdn)}
		return align.Star{Mat: mat, Pnlty: pnlty, Tbl: tbl}, nil
	case AlnNone:
		return align.None{Tbl: tbl}, nil
	}
	return nil, fmt.Errorf("unknown aligner %q, want %s, %s or %s", flags.Aligner, AlnClustal, AlnStar, AlnNone)
}

func checkFlags(flags *CmdFlag) error {
	if flags.Boot < 0 {
		return fmt.Errorf("bootstrap repetitions must not be negative, got %d", flags.Boot)
	}
	if flags.Jobs < 1 {
		return fmt.Errorf("need at least one job, got %d", flags.Jobs)
	}
	if flags.Open < 0 || flags.Wdn < 0 {
		return errors.New("gap penalties must not be negative")
	}
	return nil
}

// loadCDS reads both species. If an id is in both files, species 2
// wins.
func loadCDS(cds1, cds2 string, vbsty int) (map[string][]byte, error) {
	seqs1, ndup1, err := seq.ReadCDS(cds1)
	if err != nil {
		return nil, fmt.Errorf("species 1 sequences: %w", err)
	}
	seqs2, ndup2, err := seq.ReadCDS(cds2)
	if err != nil {
		return nil, fmt.Errorf("species 2 sequences: %w", err)
	}
	nboth := 0
	for id, s := range seqs2 {
		if _, ok := seqs1[id]; ok {
			nboth++
		}
		seqs1[id] = s
	}
	nempty := 0
	for _, s := range seqs1 {
		if len(s) == 0 {
			nempty++
		}
	}
	if vbsty > 0 {
		if nempty > 0 {
			Warn("%d ids have no sequence, quartets using them are skipped", nempty)
		}
		if ndup1+ndup2 > 0 {
			Warn("%d repeated ids within files, the last one is used", ndup1+ndup2)
		}
		if nboth > 0 {
			Warn("%d ids in both species, using species 2", nboth)
		}
	}
	return seqs1, nil
}

// outWriter opens the output. "-" is standard output.
func outWriter(outfile string) (io.WriteCloser, error) {
	if outfile == "-" || outfile == "" {
		return nopCloser{os.Stdout}, nil
	}
	WarnExists(outfile)
	return os.Create(outfile)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Mymain does the work for the command. Nothing is written until all
// the input has been read and checked.
func Mymain(flags *CmdFlag, qfile, cds1, cds2, outfile string) (err error) {
	if flags.Time {
		startTime := time.Now()
		end := func() { // closure so we get the time at return
			fmt.Fprintln(Stderr, "finished after", time.Since(startTime).Milliseconds(), "ms")
		}
		defer end()
	}
	if err := checkFlags(flags); err != nil {
		return err
	}
	tbl := codon.Standard()
	prov, err := newProvider(flags, tbl)
	if err != nil {
		return err
	}
	qq, err := quartet.ReadFile(qfile)
	if err != nil {
		return fmt.Errorf("quartet file: %w", err)
	}
	seqs, err := loadCDS(cds1, cds2, flags.Vbsty)
	if err != nil {
		return err
	}
	Say(flags.Vbsty, 1, len(qq), "quartets,", len(seqs), "sequences")

	fp, err := outWriter(outfile)
	if err != nil {
		return fmt.Errorf("output file: %w", err)
	}
	defer func() {
		if e := fp.Close(); err == nil && e != nil {
			err = fmt.Errorf("closing %s: %w", outfile, e)
		}
	}()
	wrtr := bufio.NewWriter(fp)

	job := &runner{
		tbl: tbl, prov: prov, seqs: seqs,
		boot: flags.Boot, seed: flags.Seed, jobs: flags.Jobs, vbsty: flags.Vbsty,
	}
	var pts []ksplot.Point
	if flags.Plot != "" {
		job.onRow = func(r quartet.Row) {
			pts = append(pts, plotPoint(r))
		}
	}
	smry, err := job.run(qq, wrtr)
	if err != nil {
		return err
	}
	if err = wrtr.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", outfile, err)
	}
	if flags.Vbsty > 0 {
		smry.print(Stderr)
	}
	if flags.Plot != "" {
		if err = writePlot(flags.Plot, pts); err != nil {
			return err
		}
	}
	return nil
}

// plotPoint puts the species 1 paralogs against the closer ortholog.
func plotPoint(r quartet.Row) ksplot.Point {
	return ksplot.Point{X: r.Det.P1.Ks, Y: min(r.Det.O1.Ks, r.Det.O2.Ks), Conv: r.Det.Conv1}
}

func writePlot(fname string, pts []ksplot.Point) error {
	WarnExists(fname)
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("plot file: %w", err)
	}
	err = ksplot.Write(fp, pts, ksplot.Options{Title: "Ks paralogs v orthologs"})
	if e := fp.Close(); err == nil {
		err = e
	}
	if err != nil {
		return fmt.Errorf("plot file %s: %w", fname, err)
	}
	return nil
}
