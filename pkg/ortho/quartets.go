package ortho

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadOrthoMap reads "gene1 gene2" lines, gene1 in species 1 and gene2
// its ortholog in species 2. If gene1 comes up again, the later line
// wins. Short lines are ignored.
func ReadOrthoMap(rdr io.Reader) (map[string]string, error) {
	omap := make(map[string]string)
	scanner := bufio.NewScanner(rdr)
	for scanner.Scan() {
		f := strings.Fields(scanner.Text())
		if len(f) < 2 {
			continue
		}
		omap[f[0]] = f[1]
	}
	return omap, scanner.Err()
}

// ReadOrthoFile is ReadOrthoMap on a file, gzipped or not.
func ReadOrthoFile(fname string) (map[string]string, error) {
	zr, err := openMaybeGz(fname)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	omap, err := ReadOrthoMap(zr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return omap, nil
}

// BuildQuartets reads paralog lines, "id gene1 gene2 ...". A pair
// makes a quartet if both genes have orthologs, both orthologs look
// like gene ids (have a g in them) and the orthologs are different.
// Quartets go out as "p1 o1 p2 o2", tab separated. scanned is the
// number of non-blank lines.
func BuildQuartets(paralogs io.Reader, omap map[string]string, wrtr io.Writer) (scanned, written int, err error) {
	scanner := bufio.NewScanner(paralogs)
	bw := bufio.NewWriter(wrtr)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		scanned++
		f := strings.Fields(line)
		if len(f) < 3 {
			continue
		}
		p1, p2 := f[1], f[2]
		o1, ok1 := omap[p1]
		o2, ok2 := omap[p2]
		if !ok1 || !ok2 {
			continue
		}
		if !strings.Contains(o1, "g") || !strings.Contains(o2, "g") || o1 == o2 {
			continue
		}
		if _, err = fmt.Fprintf(bw, "%s\t%s\t%s\t%s\n", p1, o1, p2, o2); err != nil {
			return scanned, written, err
		}
		written++
	}
	if err = scanner.Err(); err != nil {
		return scanned, written, err
	}
	return scanned, written, bw.Flush()
}

// BuildQuartetFile does BuildQuartets on a paralog file.
func BuildQuartetFile(paraFile string, omap map[string]string, wrtr io.Writer) (scanned, written int, err error) {
	zr, err := openMaybeGz(paraFile)
	if err != nil {
		return 0, 0, err
	}
	defer zr.Close()
	scanned, written, err = BuildQuartets(zr, omap, wrtr)
	if err != nil {
		return scanned, written, fmt.Errorf("%s: %w", paraFile, err)
	}
	return scanned, written, nil
}
