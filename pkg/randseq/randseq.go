// 31 July 2020

// Package randseq makes families of random coding sequences. Each
// family is a quartet: two paralogs in species 1 and their orthologs in
// species 2. Some families get a recent conversion between the
// paralogs of species 1. It is for testing the detector on something
// where we know the answer.
package randseq

import (
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/andrew-torda/geneconv/pkg/codon"
)

const (
	nPadWhite = 9 // For padding for adding whitespace to sequences
)

// RandSeqArgs is the set of arguments passed to the main function
type RandSeqArgs struct {
	Iseed    int64     // random number seed
	Sp1      io.Writer // species 1 sequences
	Sp2      io.Writer // species 2
	Quartets io.Writer // the quartet file
	Nfam     int       // number of families
	Ncodon   int       // length of sequences in codons
	MutRate  float64   // chance a codon mutates on a branch
	ConvFrac float64   // fraction of families with a conversion
	Space    bool      // sprinkle white space in the sequences
}

// family is one quartet of sequences with names.
type family struct {
	ids  [4]string // a1, a2, b1, b2
	seqs [4][]byte
	conv bool
}

// RandCDS returns ATG followed by n-1 random sense codons.
func RandCDS(tbl *codon.Table, n int, rnd *rand.Rand) []byte {
	if n < 1 {
		return nil
	}
	s := make([]byte, 0, 3*n)
	s = append(s, "ATG"...)
	var c [3]byte
	for len(s) < 3*n {
		for i := range c {
			c[i] = codon.Bases[rnd.Intn(len(codon.Bases))]
		}
		if _, ok := tbl.Sense(c[:]); ok {
			s = append(s, c[:]...)
		}
	}
	return s
}

// Mutate returns a copy of s where each codon has a chance rate of a
// single base change. Changes that would make a stop are not made.
func Mutate(tbl *codon.Table, s []byte, rate float64, rnd *rand.Rand) []byte {
	r := make([]byte, len(s))
	copy(r, s)
	var c [3]byte
	for i := 0; i+3 <= len(r); i += 3 {
		if rnd.Float64() >= rate {
			continue
		}
		copy(c[:], r[i:i+3])
		pos := rnd.Intn(3)
		b := codon.Bases[rnd.Intn(len(codon.Bases))]
		for b == c[pos] {
			b = codon.Bases[rnd.Intn(len(codon.Bases))]
		}
		c[pos] = b
		if _, ok := tbl.Sense(c[:]); ok {
			copy(r[i:i+3], c[:])
		}
	}
	return r
}

// mkFamily builds the tree. The paralogs split before the species, so
// orthologs are closer than paralogs. A conversion copies A1 over A2
// late, so the species 1 paralogs end up closer than anything else.
func mkFamily(tbl *codon.Table, n int, args *RandSeqArgs, rnd *rand.Rand) family {
	var f family
	rate := args.MutRate
	anc := RandCDS(tbl, args.Ncodon, rnd)
	pA := Mutate(tbl, anc, 2*rate, rnd)
	pB := Mutate(tbl, anc, 2*rate, rnd)
	f.seqs[0] = Mutate(tbl, pA, rate, rnd)
	f.seqs[1] = Mutate(tbl, pB, rate, rnd)
	f.seqs[2] = Mutate(tbl, pA, rate, rnd)
	f.seqs[3] = Mutate(tbl, pB, rate, rnd)
	if rnd.Float64() < args.ConvFrac {
		f.conv = true
		f.seqs[1] = Mutate(tbl, f.seqs[0], rate/4, rnd)
	}
	f.ids = [4]string{
		fmt.Sprintf("Rsa01g%05d", 2*n+1), fmt.Sprintf("Rsa01g%05d", 2*n+2),
		fmt.Sprintf("Rsb01g%05d", 2*n+1), fmt.Sprintf("Rsb01g%05d", 2*n+2),
	}
	return f
}

// addinner is used by addspace to add a space or newline
func addInner(s []byte, n int, c byte, spacernd *rand.Rand) []byte {
	for i := 0; i < n; i++ {
		s = append(s, 0)
		pos := spacernd.Int31n(int32(len(s)))
		copy(s[pos+1:], s[pos:])
		s[pos] = c
	}
	return s
}

// addspace is given a byte array and adds white characters at random
// positions. We flip a coin. Heads we don't add a newline. Tails we
// make about 1/10 (integer 1/9) of the spaces to be newlines.
func addspace(s []byte, spacernd *rand.Rand) []byte {
	toAdd := len(s) / nPadWhite
	nNL := 0 // Number of new lines to add
	if spacernd.Int31n(2) == 0 {
		nNL = toAdd / 9
	}
	s = addInner(s, toAdd-nNL, ' ', spacernd)
	s = addInner(s, nNL, '\n', spacernd)
	return s
}

// writeFam gets families off the channel and writes them. It has its
// own random numbers so the white space does not change the sequences.
func writeFam(fChan <-chan family, args *RandSeqArgs, wg *sync.WaitGroup, errp *error) {
	defer wg.Done()
	spacernd := rand.New(rand.NewSource(args.Iseed + 1))
	wrt := func(w io.Writer, id string, s []byte, conv bool) {
		if *errp != nil {
			return
		}
		if args.Space {
			s = addspace(s, spacernd)
		}
		cmmt := ""
		if conv {
			cmmt = " converted"
		}
		_, *errp = fmt.Fprintf(w, ">%s%s\n%s\n", id, cmmt, s)
	}
	for f := range fChan {
		wrt(args.Sp1, f.ids[0], f.seqs[0], f.conv)
		wrt(args.Sp1, f.ids[1], f.seqs[1], f.conv)
		wrt(args.Sp2, f.ids[2], f.seqs[2], false)
		wrt(args.Sp2, f.ids[3], f.seqs[3], false)
		if *errp == nil {
			_, *errp = fmt.Fprintf(args.Quartets, "%s\t%s\t%s\t%s\n", f.ids[0], f.ids[2], f.ids[1], f.ids[3])
		}
	}
}

// RandSeqMain writes the families.
func RandSeqMain(args *RandSeqArgs) error {
	if args.Ncodon < 1 {
		return fmt.Errorf("need at least one codon, got %d", args.Ncodon)
	}
	if args.MutRate < 0 || args.MutRate > 1 || args.ConvFrac < 0 || args.ConvFrac > 1 {
		return fmt.Errorf("rates must be between 0 and 1, got %g and %g", args.MutRate, args.ConvFrac)
	}
	tbl := codon.Standard()
	var wg sync.WaitGroup
	var err error
	rnd := rand.New(rand.NewSource(args.Iseed))
	fChan := make(chan family)
	wg.Add(1)
	go writeFam(fChan, args, &wg, &err)
	for i := 0; i < args.Nfam; i++ {
		fChan <- mkFamily(tbl, i, args, rnd)
	}
	close(fChan)
	wg.Wait()
	return err
}
