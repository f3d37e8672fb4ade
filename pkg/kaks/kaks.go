// 14 Oct 2026

// Package kaks estimates synonymous and nonsynonymous divergence
// between two codon aligned coding sequences.
//
// Sites are counted per sequence in the manner of Nei and Gojobori
// (1986): each codon has nine single base neighbours, the ones giving a
// stop are thrown away and the rest are synonymous or not. Observed
// differences use a single step rule. A codon pair that differs at all
// is a synonymous difference if the amino acids agree, otherwise
// nonsynonymous. Codons differing at two or three positions are not
// split over the possible paths. Proportions are corrected with
// Jukes-Cantor.
package kaks

import (
	"math"

	"github.com/andrew-torda/geneconv/pkg/codon"
)

// Saturated is the distance we give when the Jukes-Cantor correction
// is not defined.
const Saturated = 5.0

// jcLimit is the proportion at which Jukes-Cantor blows up.
const jcLimit = 0.75

// Sites are the potential synonymous and nonsynonymous sites
// in a sequence.
type Sites struct {
	S float64
	N float64
}

// Divergence is the result of comparing two sequences.
type Divergence struct {
	Ka float64 // corrected nonsynonymous distance
	Ks float64 // corrected synonymous distance
	Pn float64 // proportion of nonsynonymous differences
	Ps float64 // proportion of synonymous differences
}

// Neighbour counts for one codon. Stop + Syn + Nonsyn is always 9.
type Neighbour struct {
	Stop   int
	Syn    int
	Nonsyn int
}

// Neighbours mutates each of the three positions of a codon to each of
// the three other bases and sorts the results. aa is the translation of
// the codon.
func Neighbours(tbl *codon.Table, cdn []byte, aa byte) (nb Neighbour) {
	var tmp [3]byte
	for pos := 0; pos < 3; pos++ {
		for _, b := range codon.Bases {
			if b == cdn[pos] {
				continue
			}
			copy(tmp[:], cdn[:3])
			tmp[pos] = b
			mutAA, ok := tbl.Sense(tmp[:])
			switch {
			case !ok:
				nb.Stop++
			case mutAA == aa:
				nb.Syn++
			default:
				nb.Nonsyn++
			}
		}
	}
	return nb
}

// CountSites walks a sequence codon by codon and adds up synonymous
// and nonsynonymous sites. Codons with gaps, N, stops or anything we
// cannot translate contribute nothing.
func CountSites(tbl *codon.Table, s []byte) (sites Sites) {
	for i := 0; i+3 <= len(s); i += 3 {
		cdn := s[i : i+3]
		aa, ok := tbl.Sense(cdn)
		if !ok {
			continue
		}
		nb := Neighbours(tbl, cdn, aa)
		sites.S += float64(nb.Syn) / 3
		sites.N += float64(nb.Nonsyn) / 3
	}
	return sites
}

// Diffs counts synonymous (sd) and nonsynonymous (nd) differences
// between two sequences of the same length.
func Diffs(tbl *codon.Table, s1, s2 []byte) (sd, nd int) {
	n := min(len(s1), len(s2))
	for i := 0; i+3 <= n; i += 3 {
		c1, c2 := s1[i:i+3], s2[i:i+3]
		aa1, ok1 := tbl.Sense(c1)
		aa2, ok2 := tbl.Sense(c2)
		if !ok1 || !ok2 {
			continue
		}
		if c1[0] == c2[0] && c1[1] == c2[1] && c1[2] == c2[2] {
			continue
		}
		if aa1 == aa2 {
			sd++
		} else {
			nd++
		}
	}
	return sd, nd
}

// JC is the Jukes-Cantor correction of a proportion p. Anything the
// model cannot handle is Saturated.
func JC(p float64) float64 {
	if p >= jcLimit {
		return Saturated
	}
	arg := 1 - (4.0/3.0)*p
	if arg <= 0 {
		return Saturated
	}
	d := -0.75 * math.Log(arg)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return Saturated
	}
	return d
}

// Calc compares two codon aligned sequences. If they are different
// lengths, or there are no synonymous or no nonsynonymous sites, the
// result is all zeroes.
func Calc(tbl *codon.Table, s1, s2 []byte) Divergence {
	if len(s1) != len(s2) {
		return Divergence{}
	}
	st1, st2 := CountSites(tbl, s1), CountSites(tbl, s2)
	sTot := (st1.S + st2.S) / 2
	nTot := (st1.N + st2.N) / 2
	if sTot == 0 || nTot == 0 {
		return Divergence{}
	}
	sd, nd := Diffs(tbl, s1, s2)
	ps := float64(sd) / sTot
	pn := float64(nd) / nTot
	return Divergence{Ka: JC(pn), Ks: JC(ps), Pn: pn, Ps: ps}
}
