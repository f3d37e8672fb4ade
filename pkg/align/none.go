package align

import (
	"github.com/andrew-torda/geneconv/pkg/codon"
)

// None is for sequences that are already codon aligned. It only
// checks them.
type None struct {
	Tbl *codon.Table // nil means the standard code
}

// Align returns the sequences as they are, or says what is wrong
// with them.
func (n None) Align(ids []string, seqs map[string][]byte) Result {
	tbl := tblOrStd(n.Tbl)
	ids = uniq(ids)
	out := make(map[string][]byte, len(ids))
	alnLen := -1
	for _, id := range ids {
		s, ok := seqs[id]
		if !ok {
			return fail(MissingSeq, "%s", id)
		}
		if r := resolved(tbl.TranslateToStop(ungap(s))); r < MinResolved {
			return fail(TooShort, "%s has %d residues", id, r)
		}
		if alnLen == -1 {
			alnLen = len(s)
		}
		if len(s) != alnLen || len(s)%3 != 0 {
			return fail(LengthMismatch, "%s is %d long", id, len(s))
		}
		out[id] = s
	}
	return Result{Seqs: out}
}
