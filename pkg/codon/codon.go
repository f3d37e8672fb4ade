// 14 Oct 2026

// Package codon holds the genetic code. A Table is built once and
// never changed, so it can be handed to as many goroutines as you like.
package codon

import (
	"fmt"

	. "github.com/andrew-torda/geneconv/pkg/seq/common"
)

// Bases in the order the neighbour enumeration walks them.
var Bases = [4]byte{'T', 'C', 'A', 'G'}

// baseNdx maps a base to 0..3, or -1 for anything else.
var baseNdx = func() (r [256]int8) {
	for i := range r {
		r[i] = -1
	}
	for i, b := range Bases {
		r[b] = int8(i)
	}
	return
}()

// Table maps each of the 64 codons to a one letter amino acid.
// Stop codons map to StopChar.
type Table struct {
	aa   [64]byte
	name string
}

// codonNdx turns three bases into an index 0..63. ok is false if
// one of them is not T, C, A or G (upper case).
func codonNdx(c []byte) (int, bool) {
	if len(c) < 3 {
		return 0, false
	}
	i, j, k := baseNdx[c[0]], baseNdx[c[1]], baseNdx[c[2]]
	if i < 0 || j < 0 || k < 0 {
		return 0, false
	}
	return int(i)*16 + int(j)*4 + int(k), true
}

// New builds a table from a map of codon to amino acid. All 64
// codons must be there.
func New(name string, m map[string]byte) (*Table, error) {
	t := &Table{name: name}
	seen := 0
	for cdn, aa := range m {
		ndx, ok := codonNdx([]byte(cdn))
		if !ok || len(cdn) != 3 {
			return nil, fmt.Errorf("codon table %s: bad codon \"%s\"", name, cdn)
		}
		if t.aa[ndx] == 0 {
			seen++
		}
		t.aa[ndx] = aa
	}
	if seen != 64 {
		return nil, fmt.Errorf("codon table %s: %d codons, need 64", name, seen)
	}
	return t, nil
}

// Name
func (t *Table) Name() string { return t.name }

// Translate gives the amino acid for the first three bytes of c.
// ok is false if the codon is short or has anything other than
// T, C, A, G in it. Stop codons translate to StopChar with ok true.
func (t *Table) Translate(c []byte) (aa byte, ok bool) {
	ndx, ok := codonNdx(c)
	if !ok {
		return UnkAA, false
	}
	return t.aa[ndx], true
}

// IsStop
func (t *Table) IsStop(c []byte) bool {
	aa, ok := t.Translate(c)
	return ok && aa == StopChar
}

// Sense returns the amino acid of a codon we can use for counting:
// not short, no gap or N, not a stop, translatable.
func (t *Table) Sense(c []byte) (byte, bool) {
	aa, ok := t.Translate(c)
	if !ok || aa == StopChar {
		return 0, false
	}
	return aa, true
}

// TranslateToStop translates a coding sequence up to, but not
// including, the first stop codon. Codons we cannot read become UnkAA.
// A trailing partial codon is ignored.
func (t *Table) TranslateToStop(dna []byte) []byte {
	prot := make([]byte, 0, len(dna)/3)
	for i := 0; i+3 <= len(dna); i += 3 {
		aa, _ := t.Translate(dna[i : i+3])
		if aa == StopChar {
			break
		}
		prot = append(prot, aa)
	}
	return prot
}

// standard is NCBI table 1.
var standard = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// Standard returns a fresh copy of the standard genetic code.
func Standard() *Table {
	t, err := New("standard", standard)
	if err != nil {
		panic("program bug: " + err.Error())
	}
	return t
}
