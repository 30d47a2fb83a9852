package core

import "math"

// Atomic masses (monoisotopic)
const (
	MassH = 1.0078250321
	MassC = 12.0000000000
	MassN = 14.0030740052
	MassO = 15.9949146221
	MassS = 31.9720706900

	// Proton mass for charge calculations
	ProtonMass = 1.00727646688
)

// Composition stores the elemental composition of a residue or peptide
type Composition struct {
	C, H, N, O, S int
}

// Add returns the element-wise sum of c and o.
func (c Composition) Add(o Composition) Composition {
	return Composition{
		C: c.C + o.C,
		H: c.H + o.H,
		N: c.N + o.N,
		O: c.O + o.O,
		S: c.S + o.S,
	}
}

// Mass returns the monoisotopic mass of the composition.
func (c Composition) Mass() float64 {
	return float64(c.C)*MassC +
		float64(c.H)*MassH +
		float64(c.N)*MassN +
		float64(c.O)*MassO +
		float64(c.S)*MassS
}

// water is added once per peptide for the termini
var water = Composition{H: 2, O: 1}

// residueCompositions maps the standard residues to their elemental composition.
// Ambiguity codes, the wildcard and gap markers have no composition.
var residueCompositions = map[AminoAcid]Composition{
	Alanine:       {C: 3, H: 5, N: 1, O: 1},
	Arginine:      {C: 6, H: 12, N: 4, O: 1},
	Asparagine:    {C: 4, H: 6, N: 2, O: 2},
	AsparticAcid:  {C: 4, H: 5, N: 1, O: 3},
	Cysteine:      {C: 3, H: 5, N: 1, O: 1, S: 1},
	GlutamicAcid:  {C: 5, H: 7, N: 1, O: 3},
	Glutamine:     {C: 5, H: 8, N: 2, O: 2},
	Glycine:       {C: 2, H: 3, N: 1, O: 1},
	Histidine:     {C: 6, H: 7, N: 3, O: 1},
	Isoleucine:    {C: 6, H: 11, N: 1, O: 1},
	Leucine:       {C: 6, H: 11, N: 1, O: 1},
	Lysine:        {C: 6, H: 12, N: 2, O: 1},
	Methionine:    {C: 5, H: 9, N: 1, O: 1, S: 1},
	Phenylalanine: {C: 9, H: 9, N: 1, O: 1},
	Proline:       {C: 5, H: 7, N: 1, O: 1},
	Serine:        {C: 3, H: 5, N: 1, O: 2},
	Threonine:     {C: 4, H: 7, N: 1, O: 2},
	Tryptophan:    {C: 11, H: 10, N: 2, O: 1},
	Tyrosine:      {C: 9, H: 9, N: 1, O: 2},
	Valine:        {C: 5, H: 9, N: 1, O: 1},
}

// Composition returns the elemental composition of a residue.
func (a AminoAcid) Composition() (Composition, bool) {
	c, ok := residueCompositions[a]
	return c, ok
}

// ResidueMass returns the monoisotopic residue mass of a.
func ResidueMass(a AminoAcid) (float64, bool) {
	c, ok := residueCompositions[a]
	if !ok {
		return 0, false
	}
	return c.Mass(), true
}

// WindowMass returns the summed residue mass of a run of residues, without
// water. It fails if any residue has no defined mass.
func WindowMass(window []AminoAcid) (float64, bool) {
	comp, ok := windowComposition(window)
	if !ok {
		return 0, false
	}
	return comp.Mass(), true
}

func windowComposition(window []AminoAcid) (Composition, bool) {
	var comp Composition
	for _, a := range window {
		c, ok := residueCompositions[a]
		if !ok {
			return Composition{}, false
		}
		comp = comp.Add(c)
	}
	return comp, true
}

// NeutralMass computes the neutral monoisotopic mass of a peptide
func NeutralMass(sequence []AminoAcid) (float64, bool) {
	comp, ok := windowComposition(sequence)
	if !ok {
		return 0, false
	}
	return comp.Add(water).Mass(), true
}

// PeptideMZ computes the monoisotopic mass of a peptide and returns the m/z
// for a given charge state.
func PeptideMZ(sequence []AminoAcid, charge int) (float64, bool) {
	if charge <= 0 {
		return 0, false
	}
	mass, ok := NeutralMass(sequence)
	if !ok {
		return 0, false
	}
	// (mass + charge * proton) / charge
	return (mass + float64(charge)*ProtonMass) / float64(charge), true
}

// RoundFloat rounds a float to n decimal places
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
