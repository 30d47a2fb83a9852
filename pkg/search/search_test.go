package search

import (
	"sync/atomic"
	"testing"

	"github.com/ChrisMcGann/MassAlign/pkg/align"
	"github.com/ChrisMcGann/MassAlign/pkg/core"
	"github.com/ChrisMcGann/MassAlign/pkg/reader/fasta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(seqs ...string) []*fasta.Record {
	out := make([]*fasta.Record, len(seqs))
	for i, s := range seqs {
		out[i] = &fasta.Record{Name: s, Sequence: core.ParseSequence(s)}
	}
	return out
}

func TestRunMatchesSingleAlignments(t *testing.T) {
	table := align.DefaultTable()
	queries := records("ACGW", "AFGGW", "AFGGEW")
	refs := records("ACFGW", "AFNW", "FGGD")

	for _, threads := range []int{0, 1, 4, 64} {
		var calls atomic.Int64
		hits := Run(queries, refs, table, Options{
			Mode:     align.Local,
			Threads:  threads,
			Progress: func() { calls.Add(1) },
		})

		require.Len(t, hits, 9)
		assert.EqualValues(t, 9, calls.Load())
		for n, h := range hits {
			assert.Equal(t, n/3, h.QueryIndex)
			assert.Equal(t, n%3, h.ReferenceIndex)
			assert.Equal(t, queries[h.QueryIndex].Name, h.Query)
			assert.Equal(t, refs[h.ReferenceIndex].Name, h.Reference)

			want := align.Align(queries[h.QueryIndex].Sequence, refs[h.ReferenceIndex].Sequence, table, align.Local)
			assert.Equal(t, want.Score, h.Alignment.Score)
			assert.Equal(t, want.Short(), h.Alignment.Short())
		}
	}
}

func TestRunEmpty(t *testing.T) {
	hits := Run(nil, records("A"), align.BuildTable(align.Rules{}), Options{})
	assert.Empty(t, hits)
}

func TestSortByScore(t *testing.T) {
	table := align.DefaultTable()
	hits := Run(records("ACGW", "AFGGW"), records("ACFGW", "AFNW"), table, Options{Mode: align.Local, Threads: 2})
	SortByScore(hits)

	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Alignment.Score, hits[i].Alignment.Score)
	}
	assert.Equal(t, "AFGGW", hits[0].Query)
	assert.Equal(t, "AFNW", hits[0].Reference)
	assert.Equal(t, 29, hits[0].Alignment.Score)
}
