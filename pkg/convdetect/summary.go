package convdetect

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/andrew-torda/geneconv/pkg/align"
	"github.com/andrew-torda/geneconv/pkg/quartet"
)

// summary counts what happened to the quartets.
type summary struct {
	nRead   int
	written int
	conv1   int
	conv2   int
	skipped map[align.Reason]int
}

func newSummary(n int) *summary {
	return &summary{nRead: n, skipped: make(map[align.Reason]int)}
}

func (s *summary) skip(r align.Reason) { s.skipped[r]++ }

func (s *summary) add(r quartet.Row) {
	s.written++
	if r.Det.Conv1 {
		s.conv1++
	}
	if r.Det.Conv2 {
		s.conv2++
	}
}

// nSkip is the total number skipped.
func (s *summary) nSkip() (n int) {
	for _, v := range s.skipped {
		n += v
	}
	return n
}

// print writes the counts with thousands separators.
func (s *summary) print(w io.Writer) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "%d quartets read, %d written, %d skipped\n", s.nRead, s.written, s.nSkip())
	p.Fprintf(w, "conversion called in species 1: %d, species 2: %d\n", s.conv1, s.conv2)
	for r := align.MissingSeq; r <= align.LengthMismatch; r++ {
		if n := s.skipped[r]; n > 0 {
			p.Fprintf(w, "  skipped, %v: %d\n", r, n)
		}
	}
}
