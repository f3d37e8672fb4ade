// Reader for fasta format files.

package seq

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"

	. "github.com/andrew-torda/geneconv/pkg/seq/common"
	"github.com/andrew-torda/geneconv/pkg/white"
	"github.com/andrew-torda/geneconv/pkg/zwrap"
)

const (
	NL = '\n'
)

type lexer struct {
	rdr    *bufio.Reader
	seqgrp *SeqGrp
	s_opts *Options
	cmmt   string // partial comment
	seq    []byte // partial sequence
	line   int
	err    error
}

const defaultReadSize = 64 * 1024

var rdsize = defaultReadSize

// setFastaRdSize is only used during testing
func setFastaRdSize(i int) {
	if i < 16 {
		panic("setFastaRdSize given buffer length less than 16")
	}
	rdsize = i
}

// readLine returns the next line without its newline. Lines longer
// than the buffer are stitched together. At the end of input, it
// returns nil and io.EOF.
func (l *lexer) readLine() ([]byte, error) {
	var full []byte
	for {
		b, err := l.rdr.ReadSlice(NL)
		switch err {
		case nil:
			l.line++
			if full != nil {
				return append(full, b[:len(b)-1]...), nil
			}
			return b[:len(b)-1], nil
		case bufio.ErrBufferFull:
			full = append(full, b...)
			continue
		case io.EOF:
			if len(b) == 0 && full == nil {
				return nil, io.EOF
			}
			l.line++
			return append(full, b...), nil
		default:
			return nil, err
		}
	}
}

type stateFn func(*lexer) stateFn

// gstart jumps over blank lines until the first comment.
func gstart(l *lexer) stateFn {
	for {
		b, err := l.readLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			l.err = err
			return nil
		}
		b = bytes.TrimSpace(b)
		if len(b) == 0 {
			continue
		}
		if b[0] != cmmtChar {
			l.err = fmt.Errorf("line %d: expected \"%c\" at start of fasta, got \"%s\"", l.line, cmmtChar, trimStr(string(b), 20))
			return nil
		}
		l.cmmt = string(bytes.TrimSpace(b[1:]))
		return gseq
	}
}

// We are reading a sequence. It ends at the next comment or
// at the end of input.
func gseq(l *lexer) stateFn {
	for {
		b, err := l.readLine()
		if err != nil && err != io.EOF {
			l.err = err
			return nil
		}
		if err == io.EOF || (len(b) > 0 && b[0] == cmmtChar) {
			if len(l.seq) == 0 && !l.s_opts.KeepEmpty {
				l.err = errors.New("zero length sequence after >" + l.cmmt)
				return nil
			}
			l.seqgrp.Add(Seq{cmmt: l.cmmt, seq: l.seq})
			l.seq = nil
			if err == io.EOF {
				return nil
			}
			l.cmmt = string(bytes.TrimSpace(b[1:]))
			return gseq
		}
		start := len(l.seq) // copy first, then clean up the copy,
		l.seq = append(l.seq, b...)
		tail := l.seq[start:] // so the reader's buffer is never touched
		white.Remove(&tail)
		if l.s_opts.RmvGapsRd {
			n := 0
			for _, c := range tail {
				if c != GapChar {
					tail[n] = c
					n++
				}
			}
			tail = tail[:n]
		}
		l.seq = l.seq[:start+len(tail)]
	}
}

// ReadFasta reads fasta formatted sequences and appends them to seqgrp.
func ReadFasta(rdr io.Reader, seqgrp *SeqGrp, s_opts *Options) error {
	l := lexer{rdr: bufio.NewReaderSize(rdr, rdsize), seqgrp: seqgrp, s_opts: s_opts}
	for state := gstart; state != nil; {
		state = state(&l)
	}
	if l.err != nil {
		return l.err
	}
	if seqgrp.NSeq() == 0 {
		return errors.New("no sequences found")
	}
	if !s_opts.DiffLenSeq {
		return seqgrp.checkLengths()
	}
	return nil
}

// byMmap maps a plain file into memory and reads sequences from there.
// Everything we keep is copied out before the mapping goes away.
func byMmap(fp *os.File, seqgrp *SeqGrp, s_opts *Options) error {
	fi, err := fp.Stat()
	if err != nil {
		return err
	}
	if fi.Size() == 0 || !fi.Mode().IsRegular() {
		return ReadFasta(fp, seqgrp, s_opts)
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return err
	}
	defer mm.Unmap()
	return ReadFasta(bytes.NewReader(mm), seqgrp, s_opts)
}

// Readfile takes a filename and reads sequences from it.
// An empty name or "-" means standard input. Gzipped files are
// recognised by their magic number, not their name. Uncompressed
// files are memory mapped.
func Readfile(fname string, s_opts *Options) (*SeqGrp, error) {
	seqgrp := new(SeqGrp)
	if fname == "" || fname == "-" {
		if err := ReadFasta(os.Stdin, seqgrp, s_opts); err != nil {
			return nil, fmt.Errorf("reading standard input: %w", err)
		}
		return seqgrp, nil
	}
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	gz, err := zwrap.IsGzip(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	if gz {
		zr, err := zwrap.Wrap(fp)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fname, err)
		}
		defer zr.Close()
		err = ReadFasta(zr, seqgrp, s_opts)
	} else {
		err = byMmap(fp, seqgrp, s_opts)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return seqgrp, nil
}

// ReadCDS reads a file of coding sequences and returns them keyed
// by gene identifier, upper case. Sequences are allowed to differ in
// length. ndup is the number of repeated identifiers. A record with no
// bases is kept with an empty sequence, so whoever asks for it can
// decide what to do.
func ReadCDS(fname string) (cds map[string][]byte, ndup int, err error) {
	s_opts := &Options{DiffLenSeq: true, KeepEmpty: true}
	seqgrp, err := Readfile(fname, s_opts)
	if err != nil {
		return nil, 0, err
	}
	if err = seqgrp.Upper(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", fname, err)
	}
	cds, ndup = seqgrp.IDMap()
	return cds, ndup, nil
}
