package filter

import (
	"testing"

	"github.com/ChrisMcGann/MassAlign/pkg/align"
	"github.com/ChrisMcGann/MassAlign/pkg/core"
	"github.com/ChrisMcGann/MassAlign/pkg/search"
	"github.com/stretchr/testify/assert"
)

func hit(q, r, score, lenA, seqLen int) search.Hit {
	path := make([]align.Piece, lenA)
	for i := range path {
		path[i] = align.Piece{StepA: 1, StepB: 1}
	}
	return search.Hit{
		QueryIndex:     q,
		ReferenceIndex: r,
		Alignment: align.Alignment{
			Score: score,
			Path:  path,
			SeqA:  make([]core.AminoAcid, seqLen),
		},
	}
}

func TestApply(t *testing.T) {
	hits := []search.Hit{
		hit(0, 0, 10, 4, 4),
		hit(0, 1, 30, 4, 4),
		hit(0, 2, 20, 2, 4),
		hit(1, 0, 5, 4, 4),
		hit(1, 1, 25, 4, 4),
	}

	tests := []struct {
		name   string
		config Config
		want   [][2]int // query, reference
	}{
		{
			name:   "no filters sorts by query then score",
			config: Config{MinScore: -1 << 31},
			want:   [][2]int{{0, 1}, {0, 2}, {0, 0}, {1, 1}, {1, 0}},
		},
		{
			name:   "min score",
			config: Config{MinScore: 20},
			want:   [][2]int{{0, 1}, {0, 2}, {1, 1}},
		},
		{
			name:   "min coverage",
			config: Config{MinScore: -1 << 31, MinCoverage: 0.75},
			want:   [][2]int{{0, 1}, {0, 0}, {1, 1}, {1, 0}},
		},
		{
			name:   "top n per query",
			config: Config{MinScore: -1 << 31, TopN: 1},
			want:   [][2]int{{0, 1}, {1, 1}},
		},
		{
			name:   "combined",
			config: Config{MinScore: 8, MinCoverage: 1, TopN: 2},
			want:   [][2]int{{0, 1}, {0, 0}, {1, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.config.Apply(hits)
			var pairs [][2]int
			for _, h := range got {
				pairs = append(pairs, [2]int{h.QueryIndex, h.ReferenceIndex})
			}
			assert.Equal(t, tt.want, pairs)
		})
	}
}

func TestApplyDoesNotReorderInput(t *testing.T) {
	hits := []search.Hit{hit(0, 0, 1, 1, 1), hit(0, 1, 2, 1, 1)}
	cfg := Config{}
	cfg.Apply(hits)
	assert.Equal(t, 0, hits[0].ReferenceIndex)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Config{MinCoverage: 0.5, TopN: 3}).Validate())
	assert.Error(t, (&Config{MinCoverage: 1.5}).Validate())
	assert.Error(t, (&Config{TopN: -1}).Validate())
}
