package align

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/andrew-torda/geneconv/pkg/codon"
	"github.com/andrew-torda/geneconv/pkg/seq"
)

// DefaultClustal is the name of the executable we look for.
const DefaultClustal = "clustalw2"

// Clustal runs clustalw2 (or something that takes the same arguments)
// on the translated sequences. Each call gets its own temporary
// directory so calls can run at the same time.
type Clustal struct {
	Exe     string        // empty means DefaultClustal
	TmpDir  string        // where the scratch directories go, empty means os.TempDir()
	Timeout time.Duration // zero means no limit
	Tbl     *codon.Table  // nil means the standard code
}

// CheckExe says if we can find the executable. We want to know this
// before reading any input.
func CheckExe(name string) error {
	if name == "" {
		name = DefaultClustal
	}
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("alignment program %s not found in path: %w", name, err)
	}
	return nil
}

// Align translates, writes the proteins, runs the program, reads the
// result and back translates.
func (c Clustal) Align(ids []string, seqs map[string][]byte) Result {
	pp, res := prep(tblOrStd(c.Tbl), ids, seqs)
	if res.Reason != OK {
		return res
	}
	dir, err := os.MkdirTemp(c.TmpDir, "convdetect")
	if err != nil {
		return fail(ToolFailure, "scratch directory: %v", err)
	}
	defer os.RemoveAll(dir)

	inFile := filepath.Join(dir, "prot.fasta")
	outFile := filepath.Join(dir, "prot.aln")
	seqSet := make([]seq.Seq, len(pp))
	for i, p := range pp {
		seqSet[i] = seq.NewSeq(p.id, p.prot)
	}
	if err := seq.WriteToF(inFile, seqSet, &seq.Options{}); err != nil {
		return fail(ToolFailure, "writing proteins: %v", err)
	}

	ctx := context.Background()
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	exe := c.Exe
	if exe == "" {
		exe = DefaultClustal
	}
	cmd := exec.CommandContext(ctx, exe, "-infile="+inFile, "-outfile="+outFile, "-output=FASTA", "-quiet")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fail(ToolFailure, "%s: %v %s", exe, err, trimOut(out))
	}

	seqgrp, err := seq.Readfile(outFile, &seq.Options{DiffLenSeq: true})
	if err != nil {
		return fail(ToolFailure, "reading alignment: %v", err)
	}
	if err := seqgrp.Upper(); err != nil {
		return fail(ToolFailure, "reading alignment: %v", err)
	}
	protAln, _ := seqgrp.IDMap()
	return finish(pp, protAln)
}

// trimOut keeps error messages from the tool to a sane length.
func trimOut(b []byte) string {
	const maxOut = 200
	if len(b) > maxOut {
		b = b[:maxOut]
	}
	return string(b)
}
