package quartet

import (
	"math/rand"

	"github.com/andrew-torda/geneconv/pkg/codon"
)

// DefaultSeed is used when nobody gives us a seed.
const DefaultSeed = 1637

// resampleInto fills dst with codon columns drawn with replacement
// from aq. The same columns are used for all four genes.
func resampleInto(dst *Aligned, aq *Aligned, rnd *rand.Rand) {
	nc := aq.Codons()
	for r := range aq {
		dst[r] = dst[r][:0]
	}
	for i := 0; i < nc; i++ {
		k := 3 * rnd.Intn(nc)
		for r := range aq {
			dst[r] = append(dst[r], aq[r][k:k+3]...)
		}
	}
}

// Resample returns a bootstrap replicate of aq. It has the same length.
func Resample(aq *Aligned, rnd *rand.Rand) Aligned {
	var dst Aligned
	for r := range dst {
		dst[r] = make([]byte, 0, len(aq[r]))
	}
	resampleInto(&dst, aq, rnd)
	return dst
}

// Bootstrap resamples codon columns n times and returns the fraction
// of replicates in which each call made in det is made again. A call
// that was not made gets zero. If no call was made, we do not draw any
// random numbers.
func Bootstrap(tbl *codon.Table, aq *Aligned, det Detection, n int, rnd *rand.Rand) (prob1, prob2 float64) {
	if n <= 0 || (!det.Conv1 && !det.Conv2) {
		return 0, 0
	}
	var sup1, sup2 int
	var buf Aligned
	for i := 0; i < n; i++ {
		resampleInto(&buf, aq, rnd)
		sup1, sup2 = tally(tbl, &buf, det, sup1, sup2)
	}
	if det.Conv1 {
		prob1 = float64(sup1) / float64(n)
	}
	if det.Conv2 {
		prob2 = float64(sup2) / float64(n)
	}
	return prob1, prob2
}

// tally recomputes the rule on one replicate.
func tally(tbl *codon.Table, rep *Aligned, det Detection, sup1, sup2 int) (int, int) {
	p1, p2, o1, o2 := compare(tbl, rep)
	c1, c2 := Rule(p1.Ks, p2.Ks, o1.Ks, o2.Ks)
	if det.Conv1 && c1 {
		sup1++
	}
	if det.Conv2 && c2 {
		sup2++
	}
	return sup1, sup2
}
