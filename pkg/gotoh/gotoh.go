// Feb 2018

// Package gotoh implements the Gotoh version of pair-wise alignments
// with affine gap penalties. The caller supplies the full M x N score
// matrix, so identity, a substitution matrix or anything else can be
// used. Only global alignments are done. End gaps cost the same as
// any others.
package gotoh

import (
	"strings"

	"github.com/andrew-torda/matrix"
)

// Pnlty has the gap opening and widening values. Opening costs you
// -(Open+Wdn). Each extension costs -Wdn.
type Pnlty struct {
	Open float32
	Wdn  float32
}

// MatchScr is for the identity scoring used in tests and for DNA.
type MatchScr struct {
	Match    float32 // matched characters
	Mismatch float32 // mismatched
}

// Pair is one column of an alignment. I or J is -1 for a gap.
type Pair struct {
	I, J int
}

// Direction bits for the traceback. The low two bits say where the
// best score in a cell came from. The next two say whether a gap in
// that cell was opened or extended.
const (
	diag byte = iota // diagonal movement
	qway             // along a row, gap in the first sequence
	pway             // down a column, gap in the second sequence
)

const (
	hMask  byte = 3
	qExtnd byte = 4
	pExtnd byte = 8
)

const bigf float32 = -1e+30

// IdentScore fills out a score matrix using identity. Values for match/mismatch
// come from the scr structure.
func IdentScore(s []byte, t []byte, scr *MatchScr) *matrix.FMatrix2d {
	smat := matrix.NewFMatrix2d(len(s), len(t))
	for i, cs := range s {
		for j, ct := range t {
			if cs == ct {
				smat.Mat[i][j] = scr.Match
			} else {
				smat.Mat[i][j] = scr.Mismatch
			}
		}
	}
	return smat
}

// Align implements Gotoh, O. J. Mol. Biol. (1982) 162, 705-708.
// scrMat is M x N for sequences of length M and N. It returns the
// aligned pairs, in order, and the score. Either sequence may be
// empty, in which case everything is aligned against gaps.
func Align(scrMat *matrix.FMatrix2d, nr, nc int, pnlty Pnlty) ([]Pair, float32) {
	w1 := -(pnlty.Open + pnlty.Wdn) // first residue of a gap
	wdn := -pnlty.Wdn
	h := matrix.NewFMatrix2d(nr+1, nc+1).Mat // best score ending at i, j
	p := matrix.NewFMatrix2d(nr+1, nc+1).Mat // ... ending in a gap in t
	q := matrix.NewFMatrix2d(nr+1, nc+1).Mat // ... ending in a gap in s
	dir := matrix.NewBMatrix2d(nr+1, nc+1).Mat

	p[0][0], q[0][0] = bigf, bigf
	for i := 1; i <= nr; i++ {
		h[i][0] = w1 + float32(i-1)*wdn
		p[i][0], q[i][0] = h[i][0], bigf
		dir[i][0] = pway
		if i > 1 {
			dir[i][0] |= pExtnd
		}
	}
	for j := 1; j <= nc; j++ {
		h[0][j] = w1 + float32(j-1)*wdn
		q[0][j], p[0][j] = h[0][j], bigf
		dir[0][j] = qway
		if j > 1 {
			dir[0][j] |= qExtnd
		}
	}

	for i := 1; i <= nr; i++ {
		scr := scrMat.Mat[i-1]
		for j := 1; j <= nc; j++ {
			var d byte
			if open, ext := h[i-1][j]+w1, p[i-1][j]+wdn; ext > open {
				p[i][j] = ext
				d |= pExtnd
			} else {
				p[i][j] = open
			}
			if open, ext := h[i][j-1]+w1, q[i][j-1]+wdn; ext > open {
				q[i][j] = ext
				d |= qExtnd
			} else {
				q[i][j] = open
			}
			best, from := h[i-1][j-1]+scr[j-1], diag
			if p[i][j] > best {
				best, from = p[i][j], pway
			}
			if q[i][j] > best {
				best, from = q[i][j], qway
			}
			h[i][j] = best
			dir[i][j] = d | from
		}
	}
	return traceback(dir, nr, nc), h[nr][nc]
}

// traceback walks back from the bottom right corner. state says which
// of the three matrices we are in.
func traceback(dir [][]byte, nr, nc int) []Pair {
	pairlist := make([]Pair, 0, nr+nc)
	state := diag // diag here means the h matrix
	for i, j := nr, nc; i > 0 || j > 0; {
		d := dir[i][j]
		switch state {
		case diag:
			switch d & hMask {
			case diag:
				pairlist = append(pairlist, Pair{i - 1, j - 1})
				i, j = i-1, j-1
			case pway:
				state = pway
			case qway:
				state = qway
			}
		case pway:
			pairlist = append(pairlist, Pair{i - 1, -1})
			if d&pExtnd == 0 {
				state = diag
			}
			i--
		case qway:
			pairlist = append(pairlist, Pair{-1, j - 1})
			if d&qExtnd == 0 {
				state = diag
			}
			j--
		}
	}
	for i, j := 0, len(pairlist)-1; i < j; i, j = i+1, j-1 {
		pairlist[i], pairlist[j] = pairlist[j], pairlist[i]
	}
	return pairlist
}

// AlignSeqs is the common case: score two sequences with f and align
// them.
func AlignSeqs(s, t []byte, f func(s, t []byte) *matrix.FMatrix2d, pnlty Pnlty) ([]Pair, float32) {
	return Align(f(s, t), len(s), len(t), pnlty)
}

// Strings renders an alignment, mainly for debugging and tests.
func Strings(pairlist []Pair, s, t []byte) (string, string) {
	var outs1, outs2 strings.Builder
	for _, p := range pairlist {
		if p.I == -1 {
			outs1.WriteByte('-')
		} else {
			outs1.WriteByte(s[p.I])
		}
		if p.J == -1 {
			outs2.WriteByte('-')
		} else {
			outs2.WriteByte(t[p.J])
		}
	}
	return outs1.String(), outs2.String()
}
