package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeptideMZ(t *testing.T) {
	tests := []struct {
		name      string
		sequence  string
		charge    int
		wantMZ    float64
		tolerance float64
	}{
		{
			name:      "simple peptide charge 1",
			sequence:  "AAA",
			charge:    1,
			wantMZ:    232.129, // Approximate
			tolerance: 0.1,
		},
		{
			name:      "simple peptide charge 2",
			sequence:  "AAA",
			charge:    2,
			wantMZ:    116.569, // Approximate
			tolerance: 0.1,
		},
		{
			name:      "PEPTIDE charge 2",
			sequence:  "PEPTIDE",
			charge:    2,
			wantMZ:    400.687,
			tolerance: 0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PeptideMZ(ParseSequence(tt.sequence), tt.charge)
			require.True(t, ok)
			assert.InDelta(t, tt.wantMZ, got, tt.tolerance)
		})
	}
}

func TestPeptideMZRejectsBadCharge(t *testing.T) {
	_, ok := PeptideMZ(ParseSequence("AAA"), 0)
	assert.False(t, ok)
}

func TestNeutralMass(t *testing.T) {
	got, ok := NeutralMass(ParseSequence("AAA"))
	require.True(t, ok)
	assert.InDelta(t, 231.121, got, 0.01)

	_, ok = NeutralMass(ParseSequence("AXA"))
	assert.False(t, ok, "wildcard has no mass")
}

func TestResidueMass(t *testing.T) {
	tests := []struct {
		aa   AminoAcid
		want float64
	}{
		{Glycine, 57.02146},
		{Alanine, 71.03711},
		{Asparagine, 114.04293},
		{Tryptophan, 186.07931},
	}

	for _, tt := range tests {
		t.Run(tt.aa.String(), func(t *testing.T) {
			got, ok := ResidueMass(tt.aa)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 1e-4)
		})
	}

	for _, aa := range []AminoAcid{AmbiguousAsparagine, AmbiguousGlutamine, Unknown, Gap, GapRun} {
		_, ok := ResidueMass(aa)
		assert.False(t, ok, "%s should have no mass", aa)
	}
}

func TestWindowMassIsobaric(t *testing.T) {
	n, ok := WindowMass(ParseSequence("N"))
	require.True(t, ok)
	gg, ok := WindowMass(ParseSequence("GG"))
	require.True(t, ok)
	assert.InDelta(t, n, gg, 1e-9)

	_, ok = WindowMass(ParseSequence("GB"))
	assert.False(t, ok)
}

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		name      string
		val       float64
		precision int
		want      float64
	}{
		{"round to 2 decimals", 3.14159, 2, 3.14},
		{"round to 4 decimals", 3.14159, 4, 3.1416},
		{"round to 0 decimals", 3.6, 0, 4.0},
		{"round negative", -3.14159, 2, -3.14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundFloat(tt.val, tt.precision)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("RoundFloat() = %v, want %v", got, tt.want)
			}
		})
	}
}
