package quartet

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/andrew-torda/geneconv/pkg/align"
	"github.com/andrew-torda/geneconv/pkg/codon"
)

// Header is the first line of the output table.
const Header = "QuartetID\tKa_P1\tKs_P1\tKa_P2\tKs_P2\tKa_O1\tKs_O1\tKa_O2\tKs_O2\tConv_Sp1\tConv_Sp2\tBoot_Prob_Sp1\tBoot_Prob_Sp2"

// Row is one processed quartet.
type Row struct {
	ID    string
	Det   Detection
	Prob1 float64 // bootstrap support, species 1
	Prob2 float64
}

func yn(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

// String gives the row as a tab separated line without the newline.
func (r Row) String() string {
	var b strings.Builder
	d := &r.Det
	b.WriteString(r.ID)
	for _, v := range [...]float64{d.P1.Ka, d.P1.Ks, d.P2.Ka, d.P2.Ks, d.O1.Ka, d.O1.Ks, d.O2.Ka, d.O2.Ks} {
		fmt.Fprintf(&b, "\t%.4f", v)
	}
	fmt.Fprintf(&b, "\t%s\t%s\t%.2f\t%.2f", yn(d.Conv1), yn(d.Conv2), r.Prob1, r.Prob2)
	return b.String()
}

// SkipError says a quartet produced no row, and why.
type SkipError struct {
	Quartet string
	Reason  align.Reason
	Detail  string
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("quartet %s skipped, %s: %s", e.Quartet, e.Reason, e.Detail)
}

// Process turns the alignment of one quartet into a row. If the
// alignment failed, or does not fit the quartet, the error is a
// *SkipError. boot is the number of bootstrap replicates.
func Process(tbl *codon.Table, q Quartet, aligned align.Result, boot int, rnd *rand.Rand) (Row, error) {
	if aligned.Reason != align.OK {
		return Row{}, &SkipError{Quartet: q.ID(), Reason: aligned.Reason, Detail: aligned.Detail}
	}
	aq, err := NewAligned(q, aligned.Seqs)
	if err != nil {
		reason := align.LengthMismatch
		if errors.Is(err, ErrMissing) {
			reason = align.MissingSeq
		}
		return Row{}, &SkipError{Quartet: q.ID(), Reason: reason, Detail: err.Error()}
	}
	det := Detect(tbl, &aq)
	p1, p2 := Bootstrap(tbl, &aq, det, boot, rnd)
	return Row{ID: q.ID(), Det: det, Prob1: p1, Prob2: p2}, nil
}
