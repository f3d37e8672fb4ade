// 16 Oct 2026

// Package ortho prepares the input for the conversion detector. It
// pulls ortholog pairs on chosen chromosomes out of collinearity block
// files and joins them with a paralog list to make quartets.
package ortho

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/andrew-torda/geneconv/pkg/zwrap"
)

// DefaultSuffix is added to a block file name to get the output name.
const DefaultSuffix = ".pseu.ortologs"

// DefaultPairs are the chromosome pairs kept if nothing is said.
const DefaultPairs = "1,1;11,11"

var geneIDPattern = regexp.MustCompile(`^[a-zA-Z]+(\d+)g`)

// ChromOf gets the chromosome number out of an id like Lso01g12345.
// If the id does not look like that, we return 0.
func ChromOf(geneID string) int {
	m := geneIDPattern.FindStringSubmatch(geneID)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// ChromPair is a chromosome in species 1 and one in species 2.
type ChromPair struct {
	C1, C2 int
}

// Pairs is a set of chromosome pairs.
type Pairs map[ChromPair]bool

// String lists the pairs in the same form ParsePairs takes.
func (p Pairs) String() string {
	cp := make([]ChromPair, 0, len(p))
	for k := range p {
		cp = append(cp, k)
	}
	sort.Slice(cp, func(i, j int) bool {
		if cp[i].C1 != cp[j].C1 {
			return cp[i].C1 < cp[j].C1
		}
		return cp[i].C2 < cp[j].C2
	})
	s := make([]string, len(cp))
	for i, c := range cp {
		s[i] = fmt.Sprintf("%d,%d", c.C1, c.C2)
	}
	return strings.Join(s, ";")
}

// ParsePairs reads something like "1,1;11,11". Empty groups are
// allowed. Anything else that is not two integers is an error.
func ParsePairs(s string) (Pairs, error) {
	p := make(Pairs)
	for _, grp := range strings.Split(s, ";") {
		if strings.TrimSpace(grp) == "" {
			continue
		}
		f := strings.Split(grp, ",")
		if len(f) != 2 {
			return nil, fmt.Errorf("chromosome pairs %q: want two numbers in %q", s, grp)
		}
		c1, err1 := strconv.Atoi(strings.TrimSpace(f[0]))
		c2, err2 := strconv.Atoi(strings.TrimSpace(f[1]))
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("chromosome pairs %q: bad number in %q", s, grp)
		}
		p[ChromPair{c1, c2}] = true
	}
	return p, nil
}

// FilterBlocks reads a collinearity block file. Gene lines start with
// L and have at least three fields. The first and third fields are
// the two genes. If their chromosomes are one of pairs, we write the
// two genes. scanned counts gene lines, kept the ones written.
func FilterBlocks(rdr io.Reader, wrtr io.Writer, pairs Pairs) (scanned, kept int, err error) {
	scanner := bufio.NewScanner(rdr)
	scanner.Buffer(nil, 1024*1024)
	bw := bufio.NewWriter(wrtr)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "L") {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 3 {
			continue
		}
		scanned++
		if pairs[ChromPair{ChromOf(f[0]), ChromOf(f[2])}] {
			if _, err = fmt.Fprintf(bw, "%s\t%s\n", f[0], f[2]); err != nil {
				return scanned, kept, err
			}
			kept++
		}
	}
	if err = scanner.Err(); err != nil {
		return scanned, kept, err
	}
	return scanned, kept, bw.Flush()
}

// FilterFile runs FilterBlocks on infile and writes infile+suffix.
func FilterFile(infile, suffix string, pairs Pairs) (scanned, kept int, err error) {
	zr, err := openMaybeGz(infile)
	if err != nil {
		return 0, 0, err
	}
	defer zr.Close()
	outfile := infile + suffix
	fp, err := os.Create(outfile)
	if err != nil {
		return 0, 0, err
	}
	scanned, kept, err = FilterBlocks(zr, fp, pairs)
	if e := fp.Close(); err == nil {
		err = e
	}
	if err != nil {
		return scanned, kept, fmt.Errorf("%s to %s: %w", infile, outfile, err)
	}
	return scanned, kept, nil
}

// openMaybeGz opens a file that may or may not be gzipped.
func openMaybeGz(fname string) (*zwrap.FpGzip, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	zr, err := zwrap.WrapMaybe(fp)
	if err != nil {
		fp.Close()
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return zr, nil
}
