package align

import (
	"github.com/andrew-torda/geneconv/pkg/codon"
	"github.com/andrew-torda/geneconv/pkg/gotoh"
	. "github.com/andrew-torda/geneconv/pkg/seq/common"
	"github.com/andrew-torda/geneconv/pkg/submat"
)

// DefaultPnlty is used with BLOSUM62 if nothing else is set.
var DefaultPnlty = gotoh.Pnlty{Open: 10, Wdn: 1}

// Star aligns proteins in process. The first sequence is the centre.
// Every other one is aligned to it and the gaps are merged.
type Star struct {
	Mat   *submat.Submat // nil means BLOSUM62
	Pnlty gotoh.Pnlty    // zero means DefaultPnlty
	Tbl   *codon.Table   // nil means the standard code
}

// Align does the translation, the star alignment and the back
// translation.
func (st Star) Align(ids []string, seqs map[string][]byte) Result {
	pp, res := prep(tblOrStd(st.Tbl), ids, seqs)
	if res.Reason != OK {
		return res
	}
	mat := st.Mat
	if mat == nil {
		mat = submat.Blosum62()
	}
	pnlty := st.Pnlty
	if pnlty == (gotoh.Pnlty{}) {
		pnlty = DefaultPnlty
	}
	prots := make([][]byte, len(pp))
	for i, p := range pp {
		prots[i] = p.prot
	}
	rows := StarMSA(prots, mat, pnlty)
	protAln := make(map[string][]byte, len(pp))
	for i, p := range pp {
		protAln[p.id] = rows[i]
	}
	return finish(pp, protAln)
}

// pairSlots says where the residues of one sequence go relative to the
// centre. ins[p] are the residues put in before centre residue p, with
// ins[len(centre)] for the ones after the end. at[p] is the residue
// aligned to centre position p, or -1.
type pairSlots struct {
	ins [][]int
	at  []int
}

func slots(pairs []gotoh.Pair, nc int) pairSlots {
	ps := pairSlots{ins: make([][]int, nc+1), at: make([]int, nc)}
	p := 0
	for _, pr := range pairs {
		if pr.I == -1 {
			ps.ins[p] = append(ps.ins[p], pr.J)
			continue
		}
		ps.at[pr.I] = pr.J
		p = pr.I + 1
	}
	return ps
}

// StarMSA builds a centre star alignment of protein sequences. The
// first one is the centre. Rows come back in the order given.
func StarMSA(prots [][]byte, mat *submat.Submat, pnlty gotoh.Pnlty) [][]byte {
	if len(prots) == 0 {
		return nil
	}
	centre := prots[0]
	nc := len(centre)
	all := make([]pairSlots, len(prots))
	width := make([]int, nc+1)
	for k := 1; k < len(prots); k++ {
		pairs, _ := gotoh.AlignSeqs(centre, prots[k], mat.ScoreSeqs, pnlty)
		all[k] = slots(pairs, nc)
		for p, ins := range all[k].ins {
			width[p] = max(width[p], len(ins))
		}
	}

	rows := make([][]byte, len(prots))
	for k, s := range prots {
		var row []byte
		for p := 0; p <= nc; p++ {
			n := 0
			if k > 0 {
				for _, j := range all[k].ins[p] {
					row = append(row, s[j])
				}
				n = len(all[k].ins[p])
			}
			for ; n < width[p]; n++ {
				row = append(row, GapChar)
			}
			if p == nc {
				break
			}
			switch {
			case k == 0:
				row = append(row, centre[p])
			case all[k].at[p] == -1:
				row = append(row, GapChar)
			default:
				row = append(row, s[all[k].at[p]])
			}
		}
		rows[k] = row
	}
	return rows
}
