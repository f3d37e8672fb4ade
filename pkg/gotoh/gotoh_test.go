package gotoh_test

import (
	"testing"

	. "github.com/andrew-torda/geneconv/pkg/gotoh"
	"github.com/andrew-torda/matrix"
)

var ident = &MatchScr{Match: 1, Mismatch: -1}

func identFn(s, t []byte) *matrix.FMatrix2d { return IdentScore(s, t, ident) }

func TestIdentScore(t *testing.T) {
	m := IdentScore([]byte("AB"), []byte("BAB"), ident)
	if nr, nc := m.Size(); nr != 2 || nc != 3 {
		t.Fatalf("size got %d %d want 2 3", nr, nc)
	}
	if m.Mat[0][1] != 1 || m.Mat[0][0] != -1 || m.Mat[1][2] != 1 {
		t.Fatal("wrong scores\n", m.String())
	}
}

func TestAlign(t *testing.T) {
	pnlty := Pnlty{Open: 3, Wdn: 1}
	tests := []struct {
		s, t  string
		a, b  string
		score float32
	}{
		{"ACDEF", "ACDEF", "ACDEF", "ACDEF", 5},
		{"ACDEFGHIK", "ACDGHIK", "ACDEFGHIK", "ACD--GHIK", 7 - 5},
		{"ACD", "ACDWWW", "ACD---", "ACDWWW", 3 - 6},
		{"WWWACD", "ACD", "WWWACD", "---ACD", 3 - 6},
		{"", "ACD", "---", "ACD", -6},
		{"ACD", "", "ACD", "---", -6},
	}
	for i, tt := range tests {
		s, u := []byte(tt.s), []byte(tt.t)
		pairs, scr := AlignSeqs(s, u, identFn, pnlty)
		a, b := Strings(pairs, s, u)
		if a != tt.a || b != tt.b {
			t.Fatalf("test %d got\n%s\n%s\nwant\n%s\n%s", i, a, b, tt.a, tt.b)
		}
		if scr != tt.score {
			t.Fatalf("test %d score got %v want %v", i, scr, tt.score)
		}
	}
}

// One long gap must beat two short ones when opening is expensive.
func TestAffine(t *testing.T) {
	s, u := []byte("AAAKKLLAAA"), []byte("AAAAAA")
	pairs, _ := AlignSeqs(s, u, identFn, Pnlty{Open: 10, Wdn: 0.1})
	a, b := Strings(pairs, s, u)
	if a != "AAAKKLLAAA" || b != "AAA----AAA" {
		t.Fatalf("got\n%s\n%s", a, b)
	}
}

func TestPairsCover(t *testing.T) {
	s, u := []byte("MKTAYIAKQR"), []byte("MKAYIAQRW")
	pairs, _ := AlignSeqs(s, u, identFn, Pnlty{Open: 2, Wdn: 0.5})
	ni, nj := 0, 0
	for _, p := range pairs {
		if p.I == -1 && p.J == -1 {
			t.Fatal("gap aligned with gap")
		}
		if p.I != -1 {
			if p.I != ni {
				t.Fatalf("i out of order got %d want %d", p.I, ni)
			}
			ni++
		}
		if p.J != -1 {
			if p.J != nj {
				t.Fatalf("j out of order got %d want %d", p.J, nj)
			}
			nj++
		}
	}
	if ni != len(s) || nj != len(u) {
		t.Fatalf("not all residues used: %d %d", ni, nj)
	}
}
