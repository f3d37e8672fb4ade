package quartet

import (
	"errors"
	"fmt"

	"github.com/andrew-torda/geneconv/pkg/codon"
	"github.com/andrew-torda/geneconv/pkg/kaks"
	"github.com/andrew-torda/matrix"
)

// ErrMissing is wrapped when an id of the quartet is not in the alignment.
var ErrMissing = errors.New("not in alignment")

// Aligned is a codon aligned quartet, indexed by Role. All four have
// the same length, a multiple of three.
type Aligned [NRole][]byte

// NewAligned picks the quartet's sequences out of an alignment.
func NewAligned(q Quartet, seqs map[string][]byte) (Aligned, error) {
	var aq Aligned
	for r, id := range q.IDs() {
		s, ok := seqs[id]
		if !ok {
			return aq, fmt.Errorf("%s %w", id, ErrMissing)
		}
		aq[r] = s
	}
	n := len(aq[A1])
	for r, s := range aq {
		if len(s) != n || len(s)%3 != 0 {
			return aq, fmt.Errorf("%s is %d long, %s is %d", Role(r), len(s), A1, n)
		}
	}
	return aq, nil
}

// Codons is the alignment length in codons.
func (aq *Aligned) Codons() int { return len(aq[A1]) / 3 }

// Detection has the four comparisons and the two calls.
type Detection struct {
	P1    kaks.Divergence // A1 v A2
	P2    kaks.Divergence // B1 v B2
	O1    kaks.Divergence // A1 v B1
	O2    kaks.Divergence // A2 v B2
	Conv1 bool            // conversion in species 1
	Conv2 bool            // conversion in species 2
}

// Rule says if the paralog distance in each species is strictly below
// both ortholog distances. Ties are not conversion.
func Rule(ksP1, ksP2, ksO1, ksO2 float64) (conv1, conv2 bool) {
	conv1 = ksP1 < ksO1 && ksP1 < ksO2
	conv2 = ksP2 < ksO1 && ksP2 < ksO2
	return
}

// compare does the four pairwise calculations.
func compare(tbl *codon.Table, aq *Aligned) (p1, p2, o1, o2 kaks.Divergence) {
	p1 = kaks.Calc(tbl, aq[A1], aq[A2])
	p2 = kaks.Calc(tbl, aq[B1], aq[B2])
	o1 = kaks.Calc(tbl, aq[A1], aq[B1])
	o2 = kaks.Calc(tbl, aq[A2], aq[B2])
	return
}

// Detect compares the four pairs and applies the rule.
func Detect(tbl *codon.Table, aq *Aligned) Detection {
	var d Detection
	d.P1, d.P2, d.O1, d.O2 = compare(tbl, aq)
	d.Conv1, d.Conv2 = Rule(d.P1.Ks, d.P2.Ks, d.O1.Ks, d.O2.Ks)
	return d
}

// notCmp marks pairs we do not compare (A1-B2 and A2-B1).
const notCmp float32 = -1

// KsMatrix puts the Ks values in a symmetric 4 x 4 matrix indexed by
// Role. The diagonal is zero.
func (d *Detection) KsMatrix() *matrix.FMatrix2d {
	m := matrix.NewFMatrix2d(int(NRole), int(NRole))
	set := func(i, j Role, v float32) { m.Mat[i][j], m.Mat[j][i] = v, v }
	set(A1, B2, notCmp)
	set(A2, B1, notCmp)
	set(A1, A2, float32(d.P1.Ks))
	set(B1, B2, float32(d.P2.Ks))
	set(A1, B1, float32(d.O1.Ks))
	set(A2, B2, float32(d.O2.Ks))
	return m
}
