// Package brokenio wraps readers and writers so they fail. It is for
// testing the error paths of code that reads sequences and writes
// tables.
// Typical use: you have a reader from a file or a compressed source.
// You write rdr = brokenio.NewReader(rdr, rnd) and set the failure
// rates. Everything then works as before, but with artificial errors.
// When we introduce a failure on the first read, we return io.EOF and
// no data. This is what one often sees on a zero length file.
package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrBroken is wrapped by every error we make up.
var ErrBroken = errors.New("brokenio")

// A Reader is modelled on the various Readers in the standard library,
// but with variables controlling the frequency of errors.
// These values are the fraction of time an error will take place,
// so a value of 0.05 means failure in 5% of the cases.
type Reader struct {
	rdrOrig      io.Reader // Wrapped reader
	rnd          *rand.Rand
	probZeroFile float32 // Probability of returning a zero length file
	probFail     float32 // Probability a read call fails
	fracFail     float32 // Fraction of the buffer wiped out on failure
	nCalled      int
	nByte        int
}

// NewReader returns a new Reader, a wrapper around the old one.
// Random numbers come from rnd, so failures can be repeated.
func NewReader(rIn io.Reader, rnd *rand.Rand) *Reader {
	return &Reader{rdrOrig: rIn, rnd: rnd, fracFail: 0.5}
}

// SetFracFail sets the amount of the bytes which will be trashed
func (r *Reader) SetFracFail(frac float32) { r.fracFail = frac }

// SetProbZeroFile sets the rate at which we simply return 0 bytes on the
// first read. It must be a value from 0 to 1. We do not check if the
// argument is valid.
func (r *Reader) SetProbZeroFile(prob float32) { r.probZeroFile = prob }

// SetProbFail set the probability of a file reading failure.
// It must be between zero and 1.
func (r *Reader) SetProbFail(prob float32) { r.probFail = prob }

// Counts says how many calls and bytes went through.
func (r *Reader) Counts() (nCalled, nByte int) { return r.nCalled, r.nByte }

// trashSlice wipes out the second part of a slice.
// The amount to wipe out is given by a fraction, so 0.3
// will wipe out the second 30 % of a slice
func trashSlice(p []byte, frac float32) (int, error) {
	nkeep := int(float32(len(p)) * (1. - frac))
	if nkeep == len(p) {
		return nkeep, nil
	}
	clear(p[nkeep:])
	return nkeep, fmt.Errorf("%w: wiped out last %d of %d", ErrBroken, len(p)-nkeep, len(p))
}

// Read wraps the original reader and sums up the amount of data that
// has gone through. It generates an error with a probability given by probFail.
// On the first call, we might return zero data to simulate a zero length file.
func (r *Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probZeroFile > 0 && r.rnd.Float32() < r.probZeroFile {
		r.nCalled++
		return 0, io.EOF
	}
	n, err = r.rdrOrig.Read(p)
	r.nCalled++
	r.nByte += n
	if n > 0 && r.fracFail > 0 && r.rnd.Float32() < r.probFail {
		return trashSlice(p[:n], r.fracFail)
	}
	return n, err
}

// Writer fails once a given number of bytes has gone through.
type Writer struct {
	w     io.Writer
	limit int
	nByte int
}

// NewWriter lets limit bytes through to w and then fails.
func NewWriter(w io.Writer, limit int) *Writer { return &Writer{w: w, limit: limit} }

func (w *Writer) Write(p []byte) (int, error) {
	room := w.limit - w.nByte
	if room >= len(p) {
		n, err := w.w.Write(p)
		w.nByte += n
		return n, err
	}
	n, _ := w.w.Write(p[:max(room, 0)])
	w.nByte += n
	return n, fmt.Errorf("%w: write limit %d reached", ErrBroken, w.limit)
}
