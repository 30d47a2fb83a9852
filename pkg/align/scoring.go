// Package align provides a mass-aware alignment of peptide sequences.
//
// An alignment step may consume a window of one to three residues on either
// side. Windows are scored with a Table that rewards isobaric windows,
// reordered windows and known one-directional modifications on top of the
// usual identity and mismatch scores.
package align

import "github.com/ChrisMcGann/MassAlign/pkg/core"

// Scores used to build the default table and to charge gaps.
const (
	MatchScore        int8 = 8
	MismatchScore     int8 = -1
	IsoMassScore      int8 = 5
	ModificationScore int8 = 3
	SwapScore         int8 = 3

	// GapStartScore is reserved for an affine gap model. Gaps are currently
	// charged GapExtendScore per residue regardless of gap length.
	GapStartScore  int8 = -8
	GapExtendScore int8 = -5
)

// MaxWindow is the largest number of residues consumed on one side in a single step.
const MaxWindow = 3

// tableSide is the address space of one table axis: all encodings of
// windows of up to MaxWindow residues are below it.
const tableSide = (core.MaxAminoAcid + 1) * (core.MaxAminoAcid + 1) * (core.MaxAminoAcid + 1)

// encode folds a window into a single integer, acc = acc*MaxAminoAcid + index.
// Indices start at 1, so windows of different lengths never collide.
// It returns -1 for an empty or oversized window or one holding a
// non-residue symbol.
func encode(window []core.AminoAcid) int {
	if len(window) == 0 || len(window) > MaxWindow {
		return -1
	}
	acc := 0
	for _, a := range window {
		if !a.IsResidue() {
			return -1
		}
		acc = acc*core.MaxAminoAcid + a.Index()
	}
	return acc
}

// Table holds the score of every pair of windows. It is immutable once built
// and safe for concurrent use.
type Table struct {
	single [core.MaxAminoAcid + 1][core.MaxAminoAcid + 1]int8
	// multi holds pairs where at least one window is longer than one residue,
	// keyed by encA*tableSide + encB.
	multi map[uint32]int8
	stats TableStats
}

// TableStats counts the entries written by each rule set while building a Table.
type TableStats struct {
	Default      int
	IsoMass      int
	Modification int
	Swap         int
	// Defined is the number of distinct multi-residue pairs with a score.
	Defined int
}

func newTable() *Table {
	t := &Table{multi: make(map[uint32]int8)}
	for a := 1; a <= core.MaxAminoAcid; a++ {
		for b := 1; b <= core.MaxAminoAcid; b++ {
			if a == b {
				t.single[a][b] = MatchScore
			} else {
				t.single[a][b] = MismatchScore
			}
			t.stats.Default++
		}
	}
	return t
}

// Score returns the score for aligning window a against window b. Zero means
// no relationship is defined and the step must not be taken. Empty windows
// and windows holding gap markers score zero; gaps are not part of the table.
func (t *Table) Score(a, b []core.AminoAcid) int8 {
	ea, eb := encode(a), encode(b)
	if ea < 0 || eb < 0 {
		return 0
	}
	if len(a) == 1 && len(b) == 1 {
		return t.single[ea][eb]
	}
	return t.multi[key(ea, eb)]
}

// Stats reports how the table was populated.
func (t *Table) Stats() TableStats {
	s := t.stats
	s.Defined = len(t.multi)
	return s
}

func key(ea, eb int) uint32 {
	return uint32(ea)*tableSide + uint32(eb)
}

// set stores score for (a, b) and reports whether the pair is addressable.
func (t *Table) set(a, b []core.AminoAcid, score int8) bool {
	ea, eb := encode(a), encode(b)
	if ea < 0 || eb < 0 {
		return false
	}
	if len(a) == 1 && len(b) == 1 {
		t.single[ea][eb] = score
	} else {
		t.multi[key(ea, eb)] = score
	}
	return true
}
