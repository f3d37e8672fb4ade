// 15 Oct 2026

// Package quartet decides whether a pair of paralogs in one species
// looks like it has been through gene conversion. A quartet is two
// paralogs, A1 and A2, in species 1 and their orthologs, B1 and B2, in
// species 2. If the paralogs are closer to each other, by synonymous
// distance, than each is to its ortholog, we call conversion.
package quartet

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andrew-torda/geneconv/pkg/zwrap"
)

// Role is the position of a gene in a quartet.
type Role int

const (
	A1 Role = iota // paralog 1, species 1
	A2             // paralog 2, species 1
	B1             // ortholog of A1, species 2
	B2             // ortholog of A2, species 2
	NRole
)

var roleNames = [NRole]string{"A1", "A2", "B1", "B2"}

func (r Role) String() string { return roleNames[r] }

// Quartet is one line of the quartet file.
type Quartet struct {
	P1, O1, P2, O2 string
}

// ID is how the quartet is named in the output.
func (q Quartet) ID() string { return q.P1 + "-" + q.P2 }

// IDs are the gene ids indexed by Role.
func (q Quartet) IDs() []string {
	return []string{A1: q.P1, A2: q.P2, B1: q.O1, B2: q.O2}
}

const cmmtChar = '#'

// Read gets quartets, one per line, "p1 o1 p2 o2". Blank lines and
// lines starting with # are ignored. So are lines with fewer than four
// fields. Extra fields are ignored.
func Read(rdr io.Reader) ([]Quartet, error) {
	var qq []Quartet
	scanner := bufio.NewScanner(rdr)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == cmmtChar {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 4 {
			continue
		}
		qq = append(qq, Quartet{P1: f[0], O1: f[1], P2: f[2], O2: f[3]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return qq, nil
}

// ReadFile is Read on a file, which may be gzipped.
func ReadFile(fname string) ([]Quartet, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	zr, err := zwrap.WrapMaybe(fp)
	if err != nil {
		fp.Close()
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	defer zr.Close()
	qq, err := Read(zr)
	if err != nil {
		return nil, fmt.Errorf("reading quartets from %s: %w", fname, err)
	}
	return qq, nil
}
