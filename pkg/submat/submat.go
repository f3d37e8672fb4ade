// 23 Feb 2018
// Read a substitution matrix. BLOSUM62 is built in, since that is
// what we use for aligning translated coding sequences.

package submat

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/andrew-torda/matrix"
)

//go:embed blosum62.txt
var blosum62 []byte

// Submat is the export type. Its internals do not have to be exported.
type Submat struct {
	mat  *matrix.FMatrix2d
	cmap [128]int8
	dflt int8 // row used for symbols that are not in the matrix
}

const notset int8 = -1

// CmmtScanner is a wrapper around bufio.Scanner that will ignore anything
// after a comment character and remove leading and trailing white space.
type CmmtScanner struct {
	*bufio.Scanner
	cmmt byte // Comment character
}

// NewCmmtScanner is a wrapper around scanner, but
//   - jumps over blank lines
//   - removes leading spaces
//   - removes anything after a comment character
func NewCmmtScanner(r io.Reader, cmmt byte) *CmmtScanner {
	return &CmmtScanner{bufio.NewScanner(r), cmmt}
}

// Next moves to the next line with something on it and returns it,
// cleaned. It returns nil at the end of input. Like the Bytes function,
// this works directly in the i/o buffer.
func (s *CmmtScanner) Next() []byte {
	for s.Scan() {
		b := s.Bytes()
		if i := bytes.IndexByte(b, s.cmmt); i >= 0 {
			b = b[:i]
		}
		if b = bytes.TrimSpace(b); len(b) > 0 {
			return b
		}
	}
	return nil
}

// The first non-comment line of the substitution matrix file
// contains a list of the allowed characters. Each field has to be
// one character long
func alfbtLine(inline []byte, submat *Submat) (int, error) {
	for i := range submat.cmap {
		submat.cmap[i] = notset
	}
	f := bytes.Fields(inline)
	for _, c := range f {
		if len(c) != 1 {
			return 0, errors.New("alphabet line: expected a single character, got " + string(c))
		}
		if c[0] >= 128 {
			return 0, errors.New("alphabet line: saw a non-ascii character in " + string(inline))
		}
	}
	for i, c := range f {
		submat.cmap[c[0]] = int8(i)
	}
	for i, c := range f { // If not set, set both upper and lower case
		l := bytes.ToLower(c)[0] // This is safe, since we have checked
		u := bytes.ToUpper(c)[0] // that c is one-byte long
		if submat.cmap[l] == notset {
			submat.cmap[l] = int8(i)
		}
		if submat.cmap[u] == notset {
			submat.cmap[u] = int8(i)
		}
	}
	return len(f), nil
}

// Parse reads a substitution matrix in the ncbi / matblas format.
func Parse(rdr io.Reader) (*Submat, error) {
	submat := new(Submat)
	scnr := NewCmmtScanner(rdr, '#')
	n, err := alfbtLine(scnr.Next(), submat)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.New("no alphabet line in substitution matrix")
	}
	submat.mat = matrix.NewFMatrix2d(n, n)
	nr := 0
	for line := scnr.Next(); line != nil; line = scnr.Next() {
		fields := bytes.Fields(line)
		if len(fields) != n+1 {
			return nil, fmt.Errorf("wrong number of items on line: %s", line)
		}
		if len(fields[0]) != 1 || fields[0][0] >= 128 || submat.cmap[fields[0][0]] == notset {
			return nil, fmt.Errorf("invalid row label on line %s", line)
		}
		i := submat.cmap[fields[0][0]]
		for j := 0; j < n; j++ {
			f, err := strconv.ParseFloat(string(fields[j+1]), 32)
			if err != nil {
				return nil, err
			}
			submat.mat.Mat[i][j] = float32(f)
		}
		nr++
	}
	if err := scnr.Err(); err != nil {
		return nil, err
	}
	if nr != n {
		return nil, fmt.Errorf("substitution matrix has %d rows, expected %d", nr, n)
	}
	submat.dflt = submat.cmap['X']
	if submat.dflt == notset {
		submat.dflt = 0
	}
	return submat, nil
}

// Read will read a substitution matrix from a filename.
func Read(fname string) (*Submat, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	submat, err := Parse(fp)
	if err != nil {
		return nil, fmt.Errorf("reading from %s: %w", fname, err)
	}
	return submat, nil
}

// Blosum62 returns the built in matrix.
func Blosum62() *Submat {
	submat, err := Parse(bytes.NewReader(blosum62))
	if err != nil {
		panic("program bug: " + err.Error())
	}
	return submat
}

// ndx
func (submat *Submat) ndx(c byte) int8 {
	if c >= 128 || submat.cmap[c] == notset {
		return submat.dflt
	}
	return submat.cmap[c]
}

// Score returns the similarity score of bytes a and b. Symbols
// the matrix does not know are scored as X.
func (submat *Submat) Score(a, b byte) float32 {
	return submat.mat.Mat[submat.ndx(a)][submat.ndx(b)]
}

// ScoreSeqs will take two sequences and calculate a similarity matrix
// based on the substitution matrix.
// We return an M x N matrix, where M and N are the lengths of first
// and second sequences respectively.
func (submat *Submat) ScoreSeqs(s, t []byte) *matrix.FMatrix2d {
	scrMat := matrix.NewFMatrix2d(len(s), len(t))
	for i, cs := range s {
		row := scrMat.Mat[i]
		for j, ct := range t {
			row[j] = submat.Score(cs, ct)
		}
	}
	return scrMat
}
