package convdetect_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/andrew-torda/geneconv/pkg/convdetect"
	"github.com/andrew-torda/geneconv/pkg/quartet"
	"github.com/andrew-torda/geneconv/pkg/randseq"
	"github.com/andrew-torda/geneconv/pkg/seq/common"
)

const (
	base = "ATGCTGGGGAAAGCTCCTACTGTTTCTCGT"
	syn3 = "ATGCTAGGGAAAGCCCCTACTGTTTCCCGT"
)

func init() { common.Stderr = io.Discard }

// wrt puts s in a file in dir.
func wrt(t *testing.T, dir, name, s string) string {
	t.Helper()
	fname := filepath.Join(dir, name)
	if err := os.WriteFile(fname, []byte(s), 0o644); err != nil {
		t.Fatal(err)
	}
	return fname
}

func noneFlags() *CmdFlag {
	flags := DefaultFlags()
	flags.Aligner = AlnNone
	flags.Vbsty = 0
	return &flags
}

func run(t *testing.T, flags *CmdFlag, qfile, cds1, cds2 string) []string {
	t.Helper()
	out := filepath.Join(t.TempDir(), "out.tsv")
	if err := Mymain(flags, qfile, cds1, cds2, out); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
}

func TestOneQuartet(t *testing.T) {
	dir := t.TempDir()
	q := wrt(t, dir, "q", "G1 O1 G2 O2\n")
	c1 := wrt(t, dir, "c1.fa", ">G1\n"+base+"\n>G2 second paralog\n"+base+"\n")
	c2 := wrt(t, dir, "c2.fa", ">O1\n"+syn3+"\n>O2\n"+syn3+"\n")
	lines := run(t, noneFlags(), q, c1, c2)
	if len(lines) != 2 {
		t.Fatalf("want header and one row, got %d lines\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if lines[0] != quartet.Header {
		t.Fatal("bad header", lines[0])
	}
	f := strings.Split(lines[1], "\t")
	if len(f) != 13 || f[0] != "G1-G2" {
		t.Fatal("bad row", lines[1])
	}
	if f[9] != "Y" || f[10] != "Y" {
		t.Fatal("expected conversion in both", lines[1])
	}
}

func TestSkipUnknown(t *testing.T) {
	dir := t.TempDir()
	q := wrt(t, dir, "q", "# a comment\nG1 O1 G2 O2\nG1 O1 NOPE O2\n\nG2 O2 G1 O1\n")
	c1 := wrt(t, dir, "c1.fa", ">G1\n"+base+"\n>G2\n"+base+"\n")
	c2 := wrt(t, dir, "c2.fa", ">O1\n"+syn3+"\n>O2\n"+syn3+"\n")
	lines := run(t, noneFlags(), q, c1, c2)
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got\n%s", strings.Join(lines, "\n"))
	}
	if !strings.HasPrefix(lines[1], "G1-G2\t") || !strings.HasPrefix(lines[2], "G2-G1\t") {
		t.Fatal("wrong rows or order\n", strings.Join(lines, "\n"))
	}
}

// If an id is in both files, the species 2 version is used.
func TestSpecies2Wins(t *testing.T) {
	dir := t.TempDir()
	q := wrt(t, dir, "q", "G1 O1 G2 O2\n")
	c1 := wrt(t, dir, "c1.fa", ">G1\n"+base+"\n>G2\n"+base+"\n>O1\nATG\n")
	c2 := wrt(t, dir, "c2.fa", ">O1\n"+syn3+"\n>O2\n"+syn3+"\n")
	if lines := run(t, noneFlags(), q, c1, c2); len(lines) != 2 {
		t.Fatal("species 1 version of O1 was used")
	}
}

// An empty record only costs the quartets that use it.
func TestEmptyRecord(t *testing.T) {
	dir := t.TempDir()
	q := wrt(t, dir, "q", "G1 O1 G2 O2\nG1 EMPTY G2 O2\n")
	c1 := wrt(t, dir, "c1.fa", ">G1\n"+base+"\n>G2\n"+base+"\n")
	c2 := wrt(t, dir, "c2.fa", ">O1\n"+syn3+"\n>EMPTY nothing here\n>O2\n"+syn3+"\n")
	lines := run(t, noneFlags(), q, c1, c2)
	if len(lines) != 2 {
		t.Fatalf("want header and one row, got\n%s", strings.Join(lines, "\n"))
	}
	if !strings.HasPrefix(lines[1], "G1-G2\t") {
		t.Fatal("valid quartet missing from output\n", strings.Join(lines, "\n"))
	}
}

// families writes a random data set and returns the file names.
func families(t *testing.T, dir string) (string, string, string) {
	t.Helper()
	var sp1, sp2, qrt bytes.Buffer
	args := randseq.RandSeqArgs{
		Iseed: 42, Sp1: &sp1, Sp2: &sp2, Quartets: &qrt,
		Nfam: 25, Ncodon: 60, MutRate: 0.15, ConvFrac: 0.5,
	}
	if err := randseq.RandSeqMain(&args); err != nil {
		t.Fatal(err)
	}
	return wrt(t, dir, "q", qrt.String()), wrt(t, dir, "s1.fa", sp1.String()), wrt(t, dir, "s2.fa", sp2.String())
}

func TestJobsSameAnswer(t *testing.T) {
	dir := t.TempDir()
	q, c1, c2 := families(t, dir)
	flags := noneFlags()
	flags.Boot = 20
	one := run(t, flags, q, c1, c2)
	flags.Jobs = 4
	four := run(t, flags, q, c1, c2)
	if len(one) != 26 {
		t.Fatal("want 26 lines, got", len(one))
	}
	if strings.Join(one, "\n") != strings.Join(four, "\n") {
		t.Fatal("output depends on number of jobs")
	}
	flags.Aligner = AlnStar
	star := run(t, flags, q, c1, c2)
	if len(star) != 26 {
		t.Fatal("star aligner, want 26 lines, got", len(star))
	}
}

func TestPlot(t *testing.T) {
	dir := t.TempDir()
	q, c1, c2 := families(t, dir)
	flags := noneFlags()
	flags.Boot = 0
	flags.Plot = filepath.Join(dir, "ks.png")
	run(t, flags, q, c1, c2)
	b, err := os.ReadFile(flags.Plot)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Fatal("plot is not a png")
	}
}

func TestBadInput(t *testing.T) {
	dir := t.TempDir()
	q := wrt(t, dir, "q", "G1 O1 G2 O2\n")
	c1 := wrt(t, dir, "c1.fa", ">G1\n"+base+"\n")
	out := filepath.Join(dir, "out.tsv")
	tests := []struct {
		name  string
		flags func(*CmdFlag)
		cds2  string
	}{
		{"aligner", func(f *CmdFlag) { f.Aligner = "muscle" }, c1},
		{"jobs", func(f *CmdFlag) { f.Jobs = 0 }, c1},
		{"boot", func(f *CmdFlag) { f.Boot = -1 }, c1},
		{"missing file", func(f *CmdFlag) {}, filepath.Join(dir, "not_there.fa")},
		{"clustal exe", func(f *CmdFlag) { f.Aligner, f.Exe = AlnClustal, "no_such_clustal_xyz" }, c1},
		{"matrix", func(f *CmdFlag) { f.Aligner, f.MatFile = AlnStar, filepath.Join(dir, "no_mat") }, c1},
	}
	for _, tt := range tests {
		flags := noneFlags()
		tt.flags(flags)
		if err := Mymain(flags, q, c1, tt.cds2, out); err == nil {
			t.Fatal(tt.name, "expected an error")
		}
		if _, err := os.Stat(out); err == nil {
			t.Fatal(tt.name, "output file created on bad input")
		}
	}
}

func TestQuartetSeed(t *testing.T) {
	if QuartetSeed(1637, 0) == QuartetSeed(1637, 1) {
		t.Fatal("neighbouring quartets share a seed")
	}
	if QuartetSeed(1637, 5) != QuartetSeed(1637, 5) {
		t.Fatal("seed not repeatable")
	}
}
