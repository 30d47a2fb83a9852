package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAminoAcidRoundTrip(t *testing.T) {
	for i := 1; i <= int(GapRun); i++ {
		aa, ok := FromIndex(i)
		if !assert.True(t, ok, "index %d", i) {
			continue
		}
		assert.Equal(t, i, aa.Index())

		back, ok := FromChar(aa.Char())
		assert.True(t, ok, "char %q", aa.Char())
		assert.Equal(t, aa, back)
		assert.Equal(t, string(aa.Char()), aa.String())
	}
}

func TestFromIndexOutOfRange(t *testing.T) {
	for _, i := range []int{-1, 0, int(GapRun) + 1, 255} {
		_, ok := FromIndex(i)
		assert.False(t, ok, "index %d", i)
	}
}

func TestFromCharLowerCase(t *testing.T) {
	aa, ok := FromChar('w')
	assert.True(t, ok)
	assert.Equal(t, Tryptophan, aa)

	_, ok = FromChar('1')
	assert.False(t, ok)
}

func TestIsResidue(t *testing.T) {
	assert.True(t, Alanine.IsResidue())
	assert.True(t, Unknown.IsResidue())
	assert.False(t, Gap.IsResidue())
	assert.False(t, GapRun.IsResidue())
	assert.False(t, AminoAcid(0).IsResidue())
	assert.Equal(t, MaxAminoAcid, Unknown.Index())
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "PEPTIDE", "PEPTIDE"},
		{"lower case", "peptide", "PEPTIDE"},
		{"drops unknown characters", "PEP 1TI.DE\n", "PEPTIDE"},
		{"keeps gap markers", "AC-G*", "AC-G*"},
		{"ambiguity codes", "BZX", "BZX"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SequenceString(ParseSequence(tt.in)))
		})
	}
}

func TestInvalidCharIsPlaceholder(t *testing.T) {
	assert.Equal(t, byte('?'), AminoAcid(0).Char())
	assert.Equal(t, byte('?'), AminoAcid(200).Char())
}
