// 15 Oct 2026

// Package align turns the coding sequences of a quartet into a codon
// alignment. The work is always the same. Translate, align the
// proteins, put the codons back. The providers differ only in who
// aligns the proteins.
package align

import (
	"fmt"

	"github.com/andrew-torda/geneconv/pkg/codon"
	. "github.com/andrew-torda/geneconv/pkg/seq/common"
)

// MinResolved is the fewest amino acids, other than X, a translated
// sequence must have before we try to align it.
const MinResolved = 5

// Reason says why an alignment was not made.
type Reason uint8

const (
	OK Reason = iota
	MissingSeq
	TooShort
	ToolFailure
	LengthMismatch
)

var reasonNames = [...]string{"ok", "missing sequence", "too short", "alignment tool failure", "length mismatch"}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("reason(%d)", r)
}

// Result is what a provider hands back. If Reason is OK, Seqs has one
// codon aligned sequence per id. They all have the same length, a
// multiple of three, and gaps come as whole codons.
type Result struct {
	Seqs   map[string][]byte
	Reason Reason
	Detail string
}

// Error is a failed Result seen as an error.
type Error struct {
	Reason Reason
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Reason.String()
	}
	return e.Reason.String() + ": " + e.Detail
}

// Err is nil on success, otherwise an *Error.
func (r Result) Err() error {
	if r.Reason == OK {
		return nil
	}
	return &Error{Reason: r.Reason, Detail: r.Detail}
}

func fail(r Reason, format string, a ...any) Result {
	return Result{Reason: r, Detail: fmt.Sprintf(format, a...)}
}

// Provider is anything that can codon align a set of sequences. ids
// says which entries of seqs to use.
type Provider interface {
	Align(ids []string, seqs map[string][]byte) Result
}

// prepped is one sequence ready to be aligned.
type prepped struct {
	id   string
	dna  []byte // no gaps
	prot []byte // translation up to the first stop
}

// uniq drops repeated ids, keeping the order.
func uniq(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	r := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			r = append(r, id)
		}
	}
	return r
}

// ungap returns s without gap characters. s is not touched.
func ungap(s []byte) []byte {
	r := make([]byte, 0, len(s))
	for _, c := range s {
		if c != GapChar {
			r = append(r, c)
		}
	}
	return r
}

// resolved counts the amino acids we could read.
func resolved(prot []byte) (n int) {
	for _, c := range prot {
		if c != UnkAA {
			n++
		}
	}
	return n
}

// prep looks up and translates each sequence. A failure is returned as
// a Result with the reason set.
func prep(tbl *codon.Table, ids []string, seqs map[string][]byte) ([]prepped, Result) {
	ids = uniq(ids)
	pp := make([]prepped, 0, len(ids))
	for _, id := range ids {
		s, ok := seqs[id]
		if !ok {
			return nil, fail(MissingSeq, "%s", id)
		}
		dna := ungap(s)
		prot := tbl.TranslateToStop(dna)
		if n := resolved(prot); n < MinResolved {
			return nil, fail(TooShort, "%s has %d residues", id, n)
		}
		pp = append(pp, prepped{id: id, dna: dna, prot: prot})
	}
	return pp, Result{}
}

// backTranslate puts codons from dna under an aligned protein. A gap
// becomes a gap codon. The number of residues in aln must match what
// we translated.
func backTranslate(aln []byte, p prepped) ([]byte, error) {
	r := make([]byte, 0, 3*len(aln))
	k := 0
	for _, c := range aln {
		if c == GapChar {
			r = append(r, GapChar, GapChar, GapChar)
			continue
		}
		if k >= len(p.prot) {
			return nil, fmt.Errorf("%s: aligned protein longer than translation", p.id)
		}
		r = append(r, p.dna[3*k:3*k+3]...)
		k++
	}
	if k != len(p.prot) {
		return nil, fmt.Errorf("%s: aligned protein has %d residues, translation %d", p.id, k, len(p.prot))
	}
	return r, nil
}

// finish back translates a protein alignment and checks the lengths.
func finish(pp []prepped, protAln map[string][]byte) Result {
	out := make(map[string][]byte, len(pp))
	alnLen := -1
	for _, p := range pp {
		a, ok := protAln[p.id]
		if !ok {
			return fail(ToolFailure, "%s missing from alignment", p.id)
		}
		dna, err := backTranslate(a, p)
		if err != nil {
			return fail(ToolFailure, "%v", err)
		}
		if alnLen == -1 {
			alnLen = len(dna)
		} else if len(dna) != alnLen {
			return fail(LengthMismatch, "%s is %d long, not %d", p.id, len(dna), alnLen)
		}
		out[p.id] = dna
	}
	return Result{Seqs: out}
}

// tblOrStd gives the standard table if none was set.
func tblOrStd(tbl *codon.Table) *codon.Table {
	if tbl == nil {
		return codon.Standard()
	}
	return tbl
}
