// 20 Dec 2017

// Package seq provides functions for sequences,
// which usually begin their lives in fasta format. It can
// read and write them.
// Coding sequences for a species are usually wanted as a map from
// gene identifier to bases. ReadCDS does that.
package seq

import (
	"fmt"
	"io"
	"os"
	"strings"

	. "github.com/andrew-torda/geneconv/pkg/seq/common"
)

// Seq is one sequence and the comment line that introduced it.
type Seq struct {
	cmmt string
	seq  []byte
}

// We only read ascii characters, so anything bigger than this is not
// valid.
const (
	MaxSym uint8 = 127
)

// Options contains all the choices passed in from the caller.
type Options struct {
	DiffLenSeq bool // false, unless we expect sequences to be different lengths
	KeepEmpty  bool // a ">" line with no sequence is not an error
	RmvGapsRd  bool // Remove gaps upon reading
	RmvGapsWrt bool // Remove gaps on output
}

// Constants
const cmmtChar byte = '>' // and this introduces comments in fasta format

// SeqGrp is a group of sequences, in the order they were read.
type SeqGrp struct {
	seqs []Seq
}

// NewSeq makes a sequence from a comment (without the ">") and bases.
func NewSeq(cmmt string, s []byte) Seq { return Seq{cmmt: cmmt, seq: s} }

// GetSeq returns the sequence as the original byte slice
func (s Seq) GetSeq() []byte { return s.seq }

// Cmmt returns the comment, without the leading ">"
func (s Seq) Cmmt() string { return s.cmmt }

// Len
func (s Seq) Len() int { return len(s.seq) }

// Empty returns true if a sequence has been cleared.
func (s Seq) Empty() bool { return len(s.seq) == 0 }

// GeneID returns the gene identifier for a sequence.
// Of course it does not really do that. It just returns the first
// word in the comment which is likely to be the gene identifier.
func (s Seq) GeneID() string {
	tmp := strings.Fields(s.cmmt)
	if len(tmp) == 0 {
		return ""
	}
	return tmp[0]
}

// trimStr trims a string to n bytes if it is longer
func trimStr(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Upper changes a sequence to upper case, in place.
// It only works with bytes, not runes.
// It can return an error if it encounters a symbol it does
// not like (value higher than 127).
func (s *Seq) Upper() error {
	const diff = 'a' - 'A'
	const symerr = "bad sym \"%c\" at position %d starting \"%s\""
	b := s.seq
	for i, c := range b {
		if c >= MaxSym {
			return fmt.Errorf(symerr, c, i, trimStr(s.cmmt, 40))
		}
		if 'a' <= c && c <= 'z' {
			b[i] -= diff
		}
	}
	return nil
}

// String returns a sequence, with its comment at the start as
// a single string
func (s Seq) String() string {
	return fmt.Sprintf("%c%s\n%s", cmmtChar, s.cmmt, s.seq)
}

// NSeq returns the number of sequences
func (seqgrp *SeqGrp) NSeq() int { return len(seqgrp.seqs) }

// SeqSlc returns the slice of sequences
func (seqgrp *SeqGrp) SeqSlc() []Seq { return seqgrp.seqs }

// Add appends a sequence to the group.
func (seqgrp *SeqGrp) Add(s Seq) { seqgrp.seqs = append(seqgrp.seqs, s) }

// GetLen returns the length of the first sequence.
// If we are reading a multiple sequence alignment, this should be the length
// of all sequences.
func (seqgrp *SeqGrp) GetLen() int {
	if len(seqgrp.seqs) == 0 {
		return 0
	}
	return len(seqgrp.seqs[0].seq)
}

// Upper uppercases all the members of a group of sequences.
func (seqgrp *SeqGrp) Upper() error {
	for i := range seqgrp.seqs {
		if err := seqgrp.seqs[i].Upper(); err != nil {
			return err
		}
	}
	return nil
}

// checkLengths is called if we are reading an alignment.
// Then all the sequences must be the same length.
func (seqgrp *SeqGrp) checkLengths() error {
	const msg = "sequence lengths are not the same. First sequence length %d, but sequence %d length %d. Sequence starts \"%s\""
	iwant := seqgrp.GetLen()
	for i, s := range seqgrp.seqs {
		if s.Len() != iwant {
			return fmt.Errorf(msg, iwant, i+1, s.Len(), trimStr(s.cmmt, 40))
		}
	}
	return nil
}

// IDMap returns the sequences keyed by gene identifier. The second
// return value is the number of identifiers seen more than once. The
// last one read wins.
func (seqgrp *SeqGrp) IDMap() (map[string][]byte, int) {
	m := make(map[string][]byte, len(seqgrp.seqs))
	ndup := 0
	for _, s := range seqgrp.seqs {
		id := s.GeneID()
		if _, ok := m[id]; ok {
			ndup++
		}
		m[id] = s.seq
	}
	return m, ndup
}

// Str2SeqGrp takes some strings and returns them as a seqgrp.
// sIn is a slice of strings which are the sequences.
// prefix is an optional argument. Sequences need names/comments. If
// prefix is not given, sequences will be called "s0", "s1", ...
func Str2SeqGrp(sIn []string, prefix ...string) *SeqGrp {
	base := "s"
	if prefix != nil {
		base = prefix[0]
	}
	seqgrp := new(SeqGrp)
	for i, s := range sIn {
		seqgrp.Add(Seq{cmmt: fmt.Sprint(base, i), seq: []byte(s)})
	}
	return seqgrp
}

// WriteFasta writes the sequences to an io.Writer.
// Cleared sequences are skipped.
func WriteFasta(wrtr io.Writer, seqSet []Seq, s_opts *Options) error {
	const cPerLine = 60
	var t []byte
	for _, seq := range seqSet {
		if seq.Empty() {
			continue
		}
		if _, err := fmt.Fprintf(wrtr, "%c%s\n", cmmtChar, seq.cmmt); err != nil {
			return err
		}
		s := seq.seq
		if s_opts.RmvGapsWrt { // we have to remove gap characters on output
			t = t[:0]
			for _, c := range s {
				if c != GapChar {
					t = append(t, c)
				}
			}
			s = t
		}
		for ; len(s) > cPerLine; s = s[cPerLine:] {
			if _, err := fmt.Fprintf(wrtr, "%s\n", s[:cPerLine]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(wrtr, "%s\n", s); err != nil {
			return err
		}
	}
	return nil
}

// WriteToF takes a filename and a slice of sequences.
// It writes the sequences to the file. An empty filename or "-" means
// standard output.
func WriteToF(outseqFname string, seqSet []Seq, s_opts *Options) (err error) {
	var wrtr io.Writer
	switch {
	case outseqFname == "" || outseqFname == "-":
		wrtr = os.Stdout
	default:
		fp, e := os.Create(outseqFname)
		if e != nil {
			return fmt.Errorf("creating output sequence file: %w", e)
		}
		defer func() {
			if e := fp.Close(); err == nil {
				err = e
			}
		}()
		wrtr = fp
	}
	return WriteFasta(wrtr, seqSet, s_opts)
}
