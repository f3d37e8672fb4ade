// 31 July 2020

package randseq_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/andrew-torda/geneconv/pkg/codon"
	. "github.com/andrew-torda/geneconv/pkg/randseq"
	"github.com/andrew-torda/geneconv/pkg/seq"
)

func TestRandCDS(t *testing.T) {
	tbl := codon.Standard()
	rnd := rand.New(rand.NewSource(1637))
	s := RandCDS(tbl, 50, rnd)
	if len(s) != 150 || string(s[:3]) != "ATG" {
		t.Fatal("bad start or length", len(s))
	}
	for i := 0; i < len(s); i += 3 {
		if _, ok := tbl.Sense(s[i : i+3]); !ok {
			t.Fatal("not a sense codon", string(s[i:i+3]))
		}
	}
	m := Mutate(tbl, s, 1, rnd)
	if len(m) != len(s) {
		t.Fatal("mutate changed length")
	}
	for i := 0; i < len(m); i += 3 {
		if _, ok := tbl.Sense(m[i : i+3]); !ok {
			t.Fatal("mutation made", string(m[i:i+3]))
		}
	}
	if string(Mutate(tbl, s, 0, rnd)) != string(s) {
		t.Fatal("rate 0 changed the sequence")
	}
}

func run(t *testing.T, space bool) (string, string, string) {
	var sp1, sp2, qrt strings.Builder
	args := RandSeqArgs{
		Iseed: 1637, Sp1: &sp1, Sp2: &sp2, Quartets: &qrt,
		Nfam: 20, Ncodon: 100, MutRate: 0.1, ConvFrac: 0.5, Space: space,
	}
	if err := RandSeqMain(&args); err != nil {
		t.Fatal(err)
	}
	return sp1.String(), sp2.String(), qrt.String()
}

func TestSimple(t *testing.T) {
	sp1, sp2, qrt := run(t, false)
	if n := strings.Count(sp1, ">"); n != 40 {
		t.Fatal("count > in species 1, got", n)
	}
	if n := strings.Count(qrt, "\n"); n != 20 {
		t.Fatal("quartet lines, got", n)
	}
	a, b, c := run(t, false)
	if a != sp1 || b != sp2 || c != qrt {
		t.Fatal("same seed, different output")
	}
}

// With white space sprinkled in, the reader must give back the same
// sequences.
func TestSpace(t *testing.T) {
	plain, _, _ := run(t, false)
	spaced, _, _ := run(t, true)
	if plain == spaced {
		t.Fatal("no white space added")
	}
	var opts seq.Options
	grpA, grpB := &seq.SeqGrp{}, &seq.SeqGrp{}
	if err := seq.ReadFasta(strings.NewReader(plain), grpA, &opts); err != nil {
		t.Fatal(err)
	}
	if err := seq.ReadFasta(strings.NewReader(spaced), grpB, &opts); err != nil {
		t.Fatal(err)
	}
	a, b := grpA.SeqSlc(), grpB.SeqSlc()
	if len(a) != len(b) {
		t.Fatal("number of sequences differ")
	}
	for i := range a {
		if string(a[i].GetSeq()) != string(b[i].GetSeq()) {
			t.Fatal("sequence", i, "differs after removing space")
		}
	}
}

func TestBadArgs(t *testing.T) {
	var sb strings.Builder
	args := RandSeqArgs{Sp1: &sb, Sp2: &sb, Quartets: &sb, Nfam: 1, Ncodon: 0}
	if err := RandSeqMain(&args); err == nil {
		t.Fatal("expected error for zero codons")
	}
	args.Ncodon, args.MutRate = 10, 2
	if err := RandSeqMain(&args); err == nil {
		t.Fatal("expected error for rate > 1")
	}
}
