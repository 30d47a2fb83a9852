// Package search aligns sets of query peptides against sets of reference peptides
package search

import (
	"sort"
	"sync"

	"github.com/ChrisMcGann/MassAlign/pkg/align"
	"github.com/ChrisMcGann/MassAlign/pkg/reader/fasta"
)

// Hit is the alignment of one query against one reference. The query is
// sequence A and the reference is sequence B.
type Hit struct {
	QueryIndex     int
	ReferenceIndex int
	Query          string
	Reference      string
	Alignment      align.Alignment
}

// Options configures a search
type Options struct {
	Mode    align.Mode
	Threads int // number of concurrent alignments, at least 1
	// Progress, if set, is called once per finished alignment. It may be
	// called from several goroutines at once.
	Progress func()
}

type job struct {
	q, r int
}

// Run aligns every query against every reference. Each alignment runs
// independently; table is only read and may be shared with other callers.
// Hits are returned ordered by query, then reference.
func Run(queries, references []*fasta.Record, table *align.Table, opts Options) []Hit {
	total := len(queries) * len(references)
	hits := make([]Hit, total)
	if total == 0 {
		return hits
	}

	threads := opts.Threads
	if threads < 1 {
		threads = 1
	}
	if threads > total {
		threads = total
	}

	jobs := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for jb := range jobs {
				q, r := queries[jb.q], references[jb.r]
				hits[jb.q*len(references)+jb.r] = Hit{
					QueryIndex:     jb.q,
					ReferenceIndex: jb.r,
					Query:          q.Name,
					Reference:      r.Name,
					Alignment:      align.Align(q.Sequence, r.Sequence, table, opts.Mode),
				}
				if opts.Progress != nil {
					opts.Progress()
				}
			}
		}()
	}

	for q := range queries {
		for r := range references {
			jobs <- job{q: q, r: r}
		}
	}
	close(jobs)
	wg.Wait()

	return hits
}

// SortByScore orders hits by descending score. Equal scores keep query and
// reference order.
func SortByScore(hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Alignment.Score > hits[j].Alignment.Score
	})
}
