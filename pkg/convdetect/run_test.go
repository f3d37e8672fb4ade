package convdetect

import (
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andrew-torda/geneconv/pkg/align"
	"github.com/andrew-torda/geneconv/pkg/brokenio"
	"github.com/andrew-torda/geneconv/pkg/codon"
	"github.com/andrew-torda/geneconv/pkg/quartet"
)

// slowNone is align.None, but slow, and it counts who is busy.
type slowNone struct {
	busy, started atomic.Int32
}

func (p *slowNone) Align(ids []string, seqs map[string][]byte) align.Result {
	p.started.Add(1)
	p.busy.Add(1)
	defer p.busy.Add(-1)
	time.Sleep(2 * time.Millisecond)
	return align.None{}.Align(ids, seqs)
}

// After a write error, run must not return while workers are still
// going, and it should not start all the rest.
func TestRunWriteFail(t *testing.T) {
	const n = 40
	seqs := map[string][]byte{
		"G1": []byte("ATGCTGGGGAAAGCTCCTACTGTTTCTCGT"),
		"G2": []byte("ATGCTGGGGAAAGCTCCTACTGTTTCTCGT"),
		"O1": []byte("ATGCTAGGGAAAGCCCCTACTGTTTCCCGT"),
		"O2": []byte("ATGCTAGGGAAAGCCCCTACTGTTTCCCGT"),
	}
	qq, err := quartet.Read(strings.NewReader(strings.Repeat("G1 O1 G2 O2\n", n)))
	if err != nil {
		t.Fatal(err)
	}
	for _, jobs := range []int{1, 4} {
		prov := &slowNone{}
		rn := runner{tbl: codon.Standard(), prov: prov, seqs: seqs, boot: 5, jobs: jobs}
		wrtr := brokenio.NewWriter(io.Discard, len(quartet.Header)+1)
		if _, err := rn.run(qq, wrtr); !errors.Is(err, brokenio.ErrBroken) {
			t.Fatal("jobs", jobs, "want broken writer error, got", err)
		}
		if b := prov.busy.Load(); b != 0 {
			t.Fatal("jobs", jobs, "run returned with", b, "workers busy")
		}
		if s := prov.started.Load(); s == n {
			t.Fatal("jobs", jobs, "all quartets were started after the write failed")
		}
	}
}
