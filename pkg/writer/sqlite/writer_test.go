package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/ChrisMcGann/MassAlign/pkg/align"
	"github.com/ChrisMcGann/MassAlign/pkg/core"
	"github.com/ChrisMcGann/MassAlign/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterRoundTrip(t *testing.T) {
	table := align.DefaultTable()
	path := filepath.Join(t.TempDir(), "hits.db")

	hits := []search.Hit{
		{
			Query:     "q1",
			Reference: "r1",
			Alignment: align.Align(core.ParseSequence("AFGGW"), core.ParseSequence("AFNW"), table, align.Local),
		},
		{
			Query:     "q2",
			Reference: "r1",
			Alignment: align.Align(core.ParseSequence("AFGGEW"), core.ParseSequence("FGGD"), table, align.Local),
		},
	}

	w, err := NewWriter(path, align.Local)
	require.NoError(t, err)
	assert.Equal(t, path, w.Path())
	for i := range hits {
		require.NoError(t, w.WriteHit(&hits[i]))
	}
	require.NoError(t, w.Finalize())
	// a second close is a no-op
	require.NoError(t, w.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM AlignmentTable`).Scan(&count))
	assert.Equal(t, 2, count)

	var (
		query, mode, short, alignedA, alignedB string
		score, startA, lenA                    int
		steps, scores                          []byte
	)
	err = db.QueryRow(`
		SELECT Query, Mode, Path, AlignedA, AlignedB, Score, StartA, LenA, blobSteps, blobScores
		FROM AlignmentTable WHERE AlignmentId = 1
	`).Scan(&query, &mode, &short, &alignedA, &alignedB, &score, &startA, &lenA, &steps, &scores)
	require.NoError(t, err)

	assert.Equal(t, "q1", query)
	assert.Equal(t, "local", mode)
	assert.Equal(t, "MMS[2,1]M", short)
	assert.Equal(t, "AFGGW", alignedA)
	assert.Equal(t, "AFNW", alignedB)
	assert.Equal(t, 29, score)
	assert.Equal(t, 0, startA)
	assert.Equal(t, 5, lenA)

	gotSteps, err := DecodeSteps(steps)
	require.NoError(t, err)
	assert.Equal(t, [][2]uint8{{1, 1}, {1, 1}, {2, 1}, {1, 1}}, gotSteps)

	gotScores, err := DecodeScores(scores)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 16, 21, 29}, gotScores)

	var queryMass, refMass sql.NullFloat64
	require.NoError(t, db.QueryRow(`SELECT QueryMass, ReferenceMass FROM AlignmentTable WHERE AlignmentId = 1`).Scan(&queryMass, &refMass))
	wantMass, _ := core.NeutralMass(core.ParseSequence("AFGGW"))
	assert.True(t, queryMass.Valid)
	assert.InDelta(t, wantMass, queryMass.Float64, 1e-6)
	assert.True(t, refMass.Valid)

	var version, alignments int
	var headerMode string
	require.NoError(t, db.QueryRow(`SELECT version, Mode, AlignmentCount FROM HeaderTable`).Scan(&version, &headerMode, &alignments))
	assert.Equal(t, schemaVersion, version)
	assert.Equal(t, "local", headerMode)
	assert.Equal(t, 2, alignments)
}

func TestWriterNullMassForAmbiguousResidues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hits.db")
	hit := search.Hit{
		Query:     "q",
		Reference: "r",
		Alignment: align.Align(core.ParseSequence("AXW"), core.ParseSequence("AW"), align.DefaultTable(), align.Global),
	}

	w, err := NewWriter(path, align.Global)
	require.NoError(t, err)
	require.NoError(t, w.WriteHit(&hit))
	require.NoError(t, w.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var queryMass, refMass sql.NullFloat64
	require.NoError(t, db.QueryRow(`SELECT QueryMass, ReferenceMass FROM AlignmentTable`).Scan(&queryMass, &refMass))
	assert.False(t, queryMass.Valid)
	assert.True(t, refMass.Valid)
}

func TestEncodeScoresNegative(t *testing.T) {
	path := []align.Piece{{Score: -5}, {Score: -10}, {Score: 3}}
	got, err := DecodeScores(encodeScores(path))
	require.NoError(t, err)
	assert.Equal(t, []int{-5, -10, 3}, got)
}

func TestDecodeRejectsTruncatedBlobs(t *testing.T) {
	_, err := DecodeSteps([]byte{1})
	assert.Error(t, err)
	_, err = DecodeScores(make([]byte, 7))
	assert.Error(t, err)
}
