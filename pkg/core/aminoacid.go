// Package core provides the amino acid alphabet and chemistry shared by the aligner
package core

import "strings"

// AminoAcid is a single symbol of a peptide sequence. The zero value is not a
// valid symbol; indices start at 1.
type AminoAcid uint8

const (
	Alanine AminoAcid = iota + 1
	Arginine
	Asparagine
	AsparticAcid
	Cysteine
	Glutamine
	GlutamicAcid
	Glycine
	Histidine
	Isoleucine
	Leucine
	Lysine
	Methionine
	Phenylalanine
	Proline
	Serine
	Threonine
	Tryptophan
	Tyrosine
	Valine
	AmbiguousAsparagine // B: D or N
	AmbiguousGlutamine  // Z: E or Q
	Unknown             // X: any single residue

	// Gap marks an explicit gap position in a rendered sequence.
	Gap
	// GapRun marks a gap spanning several positions. The aligner never emits it.
	GapRun
)

// MaxAminoAcid is the number of symbols that may appear in an aligned
// sequence. Gap markers are excluded.
const MaxAminoAcid = 23

const symbolChars = "ARNDCQEGHILKMFPSTWYVBZX-*"

var charToAminoAcid [256]AminoAcid

func init() {
	for i := 0; i < len(symbolChars); i++ {
		c := symbolChars[i]
		charToAminoAcid[c] = AminoAcid(i + 1)
		if c >= 'A' && c <= 'Z' {
			charToAminoAcid[c+'a'-'A'] = AminoAcid(i + 1)
		}
	}
}

// Char returns the one-letter code of a, or '?' for an invalid value.
func (a AminoAcid) Char() byte {
	if a == 0 || int(a) > len(symbolChars) {
		return '?'
	}
	return symbolChars[a-1]
}

// String returns the one-letter code as a string.
func (a AminoAcid) String() string {
	return string(a.Char())
}

// Index returns the dense integer index of a (1-based).
func (a AminoAcid) Index() int {
	return int(a)
}

// IsResidue reports whether a can appear in an aligned sequence.
func (a AminoAcid) IsResidue() bool {
	return a >= Alanine && a <= MaxAminoAcid
}

// FromChar returns the symbol for a one-letter code. Lower case is accepted.
func FromChar(c byte) (AminoAcid, bool) {
	a := charToAminoAcid[c]
	return a, a != 0
}

// FromIndex returns the symbol with the given dense index.
func FromIndex(i int) (AminoAcid, bool) {
	if i < 1 || i > len(symbolChars) {
		return 0, false
	}
	return AminoAcid(i), true
}

// ParseSequence decodes a peptide sequence from text. Characters that do not
// map to a symbol are dropped without error.
func ParseSequence(s string) []AminoAcid {
	seq := make([]AminoAcid, 0, len(s))
	for i := 0; i < len(s); i++ {
		if a, ok := FromChar(s[i]); ok {
			seq = append(seq, a)
		}
	}
	return seq
}

// SequenceString encodes a sequence as concatenated one-letter codes.
func SequenceString(seq []AminoAcid) string {
	var b strings.Builder
	b.Grow(len(seq))
	for _, a := range seq {
		b.WriteByte(a.Char())
	}
	return b.String()
}
