package ortho_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/andrew-torda/geneconv/pkg/brokenio"
	. "github.com/andrew-torda/geneconv/pkg/ortho"
	"github.com/andrew-torda/geneconv/pkg/seq/common"
	"github.com/google/go-cmp/cmp"
)

func TestChromOf(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{"Lso01g12345", 1},
		{"Lma11g00010.1", 11},
		{"AT3g01010", 3},
		{"Lso01G12345", 0},
		{"01g12345", 0},
		{"scaffold_12", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ChromOf(tt.id); got != tt.want {
			t.Fatalf("%s got %d want %d", tt.id, got, tt.want)
		}
	}
}

func TestParsePairs(t *testing.T) {
	p, err := ParsePairs(DefaultPairs)
	if err != nil {
		t.Fatal(err)
	}
	want := Pairs{{1, 1}: true, {11, 11}: true}
	if !cmp.Equal(p, want) {
		t.Fatal(cmp.Diff(want, p))
	}
	if p.String() != DefaultPairs {
		t.Fatal("String got", p.String())
	}
	if p, err = ParsePairs(" 2 , 3 ;; "); err != nil || !p[ChromPair{2, 3}] || len(p) != 1 {
		t.Fatal("spaces and empty groups", p, err)
	}
	for _, bad := range []string{"1", "1,2,3", "a,1", "1,1;2"} {
		if _, err := ParsePairs(bad); err == nil {
			t.Fatal("expected error on", bad)
		}
	}
}

const blocks = `## Alignment 0: score=1000 e_value=0 N=3 Lso1&Lma1 plus
L1-0: Lso01g00010 x Lma01g00010 0
Lso01g00020 Lma01g00020 0
Lso01g00030	1	Lma01g00030	0
Lso02g00040	1	Lma02g00040	0
Lso01g00050	1	Lma11g00050	0
Lso11g00060 1 Lma11g00060
Lso11g00070 1
`

func TestFilterBlocks(t *testing.T) {
	pairs, _ := ParsePairs(DefaultPairs)
	var b bytes.Buffer
	scanned, kept, err := FilterBlocks(strings.NewReader(blocks), &b, pairs)
	if err != nil {
		t.Fatal(err)
	}
	if scanned != 6 || kept != 2 {
		t.Fatalf("scanned %d kept %d want 6, 2", scanned, kept)
	}
	want := "Lso01g00030\tLma01g00030\nLso11g00060\tLma11g00060\n"
	if b.String() != want {
		t.Fatalf("got\n%s\nwant\n%s", b.String(), want)
	}
}

func TestFilterFile(t *testing.T) {
	fname, err := common.WrtTemp(blocks)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(fname)
	defer os.Remove(fname + DefaultSuffix)
	pairs, _ := ParsePairs("2,2")
	if _, kept, err := FilterFile(fname, DefaultSuffix, pairs); err != nil || kept != 1 {
		t.Fatal("kept", kept, err)
	}
	got, err := os.ReadFile(fname + DefaultSuffix)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Lso02g00040\tLma02g00040\n" {
		t.Fatalf("got %q", got)
	}
}

func TestBuildQuartets(t *testing.T) {
	omap, err := ReadOrthoMap(strings.NewReader(
		"Lso01g1\tLma01g9\nLso01g1\tLma01g1\nLso01g2 Lma01g2\nLso01g3 Lma01g2\nLso01g4 none\nshort\n"))
	if err != nil {
		t.Fatal(err)
	}
	if omap["Lso01g1"] != "Lma01g1" {
		t.Fatal("later line should win", omap["Lso01g1"])
	}
	const paralogs = `1 Lso01g1 Lso01g2

2 Lso01g2 Lso01g3
3 Lso01g1 Lso01g4
4 Lso01g1 Lso01g99
5 Lso01g1
`
	var b bytes.Buffer
	scanned, written, err := BuildQuartets(strings.NewReader(paralogs), omap, &b)
	if err != nil {
		t.Fatal(err)
	}
	if scanned != 5 || written != 1 {
		t.Fatalf("scanned %d written %d want 5, 1", scanned, written)
	}
	if want := "Lso01g1\tLma01g1\tLso01g2\tLma01g2\n"; b.String() != want {
		t.Fatalf("got %q want %q", b.String(), want)
	}
}

func TestFilterWriteFail(t *testing.T) {
	pairs, _ := ParsePairs(DefaultPairs)
	var b bytes.Buffer
	_, _, err := FilterBlocks(strings.NewReader(blocks), brokenio.NewWriter(&b, 10), pairs)
	if !errors.Is(err, brokenio.ErrBroken) {
		t.Fatal("expected write error, got", err)
	}
}
