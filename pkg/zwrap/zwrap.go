// Package zwrap takes a file pointer and optionally wraps it so upon
// calling Close, the decompressor will be closed, followed by the
// underlying file.
// Decompression is done by pgzip, which reads ahead in the background.
// For the size of a CDS collection it makes little difference, but
// whole-genome files are a different story.

package zwrap

import (
	"errors"
	"io"

	"github.com/klauspost/pgzip"
)

var gzMagic = [2]byte{0x1f, 0x8b}

type FpGzip struct { // This is what we return.
	fp   io.ReadCloser
	zrdr *pgzip.Reader
}

// Close closes the decompressor, then the underlying backing readCloser.
func (fc *FpGzip) Close() error {
	if fc.zrdr == nil {
		return fc.fp.Close()
	}
	e1 := fc.zrdr.Close()
	e2 := fc.fp.Close()
	return errors.Join(e1, e2)
}

// Read makes sure we read from the compressed stream and
// not the underlying file stream.
func (fc *FpGzip) Read(p []byte) (int, error) {
	if fc.zrdr != nil {
		return fc.zrdr.Read(p)
	}
	return fc.fp.Read(p)
}

// Compressed says whether we are decompressing.
func (fc *FpGzip) Compressed() bool { return fc.zrdr != nil }

// Wrap takes a source like a file pointer and wraps it in a
// decompressor. It fails if the stream is not gzipped.
func Wrap(fp io.ReadCloser) (*FpGzip, error) {
	var fpz FpGzip
	var err error
	fpz.fp = fp
	fpz.zrdr, err = pgzip.NewReader(fpz.fp)
	return &fpz, err
}

// ReadSeekCloser is what we need to look at the start of a file and
// go back again.
type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// IsGzip looks at the first two bytes and puts the stream back where
// it was found.
func IsGzip(fpIn ReadSeekCloser) (bool, error) {
	var b [2]byte
	n, err := io.ReadFull(fpIn, b[:])
	if _, e := fpIn.Seek(0, io.SeekStart); e != nil {
		return false, e
	}
	if err != nil {
		if n < 2 && (err == io.EOF || err == io.ErrUnexpectedEOF) {
			return false, nil // too short to be compressed
		}
		return false, err
	}
	return b == gzMagic, nil
}

// WrapMaybe will decide if the underlying stream is compressed
// and wrap the file pointer if necessary.
// You do lose something. If you pass in something which can seek,
// you get back a ReadCloser which cannot seek.
func WrapMaybe(fpIn ReadSeekCloser) (*FpGzip, error) {
	gz, err := IsGzip(fpIn)
	if err != nil {
		return nil, err
	}
	if gz {
		return Wrap(fpIn)
	}
	return &FpGzip{fp: fpIn}, nil // Leave the zrdr implicitly nil
}
