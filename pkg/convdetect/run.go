package convdetect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/andrew-torda/geneconv/pkg/align"
	"github.com/andrew-torda/geneconv/pkg/codon"
	"github.com/andrew-torda/geneconv/pkg/quartet"
	. "github.com/andrew-torda/geneconv/pkg/seq/common"
)

// runner processes quartets, perhaps several at once, and writes the
// rows in input order.
type runner struct {
	tbl   *codon.Table
	prov  align.Provider
	seqs  map[string][]byte
	boot  int
	seed  int64
	jobs  int
	vbsty int
	onRow func(quartet.Row) // called in input order, may be nil
}

// slot is where a worker leaves its answer.
type slot struct {
	row  quartet.Row
	err  error
	done chan struct{}
}

// QuartetSeed is the seed for quartet number i. Each quartet has its
// own random numbers, so the answers do not depend on how many run at
// once.
func QuartetSeed(seed int64, i int) int64 {
	const golden = 0x9E3779B97F4A7C15
	return int64(uint64(seed) + uint64(i+1)*golden)
}

// one does a single quartet. A panic is turned into a skip.
func (rn *runner) one(i int, q quartet.Quartet) (row quartet.Row, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &quartet.SkipError{Quartet: q.ID(), Reason: align.ToolFailure, Detail: fmt.Sprint("panic: ", r)}
		}
	}()
	rnd := rand.New(rand.NewSource(QuartetSeed(rn.seed, i)))
	res := rn.prov.Align(q.IDs(), rn.seqs)
	return quartet.Process(rn.tbl, q, res, rn.boot, rnd)
}

// run sends the quartets off to the workers and writes rows as they
// come in, in order. Only a write error stops it, and then it returns
// once the workers already started have finished.
func (rn *runner) run(qq []quartet.Quartet, wrtr io.Writer) (*summary, error) {
	smry := newSummary(len(qq))
	slots := make([]slot, len(qq))
	for i := range slots {
		slots[i].done = make(chan struct{})
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var g errgroup.Group
	g.SetLimit(rn.jobs)
	launched := make(chan struct{})
	go func() {
		defer close(launched)
		for i, q := range qq {
			if ctx.Err() != nil {
				return
			}
			i, q := i, q
			g.Go(func() error {
				defer close(slots[i].done)
				if ctx.Err() != nil {
					return nil
				}
				slots[i].row, slots[i].err = rn.one(i, q)
				return nil
			})
		}
	}()
	// stop launches no more work and waits for what is running.
	stop := func() {
		cancel()
		<-launched
		g.Wait()
	}

	if _, err := fmt.Fprintln(wrtr, quartet.Header); err != nil {
		stop()
		return nil, fmt.Errorf("writing header: %w", err)
	}
	for i := range slots {
		<-slots[i].done
		if err := slots[i].err; err != nil {
			var skip *quartet.SkipError
			if !errors.As(err, &skip) {
				stop()
				return nil, err
			}
			smry.skip(skip.Reason)
			Say(rn.vbsty, 2, skip)
			continue
		}
		row := slots[i].row
		if _, err := fmt.Fprintln(wrtr, row.String()); err != nil {
			stop()
			return nil, fmt.Errorf("writing %s: %w", row.ID, err)
		}
		smry.add(row)
		if rn.vbsty >= 3 {
			fmt.Fprintf(Stderr, "%s Ks, order A1 A2 B1 B2\n%s", row.ID, row.Det.KsMatrix().String())
		}
		if rn.onRow != nil {
			rn.onRow(row)
		}
	}
	stop()
	return smry, nil
}
