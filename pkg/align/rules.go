package align

import "github.com/ChrisMcGann/MassAlign/pkg/core"

// isoMassClasses lists groups of windows with identical elemental composition.
// Every window of a class is interchangeable with every other window of the
// same class, in any residue order.
var isoMassClasses = [][]string{
	{"I", "L"},
	{"N", "GG"},
	{"Q", "AG"},
	{"AS", "GT"},
	{"AV", "GL", "GI"},
	{"GN", "GGG"},
	{"AN", "QG", "AGG"},
	{"AD", "GE"},
	{"AQ", "AAG"},
	{"LS", "IS", "TV"},
	{"AM", "CV"},
	{"NV", "AAA", "GGV"},
	{"NT", "QS", "GGT", "AGS"},
	{"DT", "ES"},
	{"LN", "IN", "QV", "AGV", "GGL", "GGI"},
	{"DL", "DI", "EV"},
	{"NN", "GGN"},
}

// Rules describes how to populate a Table beyond identity and mismatch.
type Rules struct {
	// IsoMass holds classes of mutually isobaric windows.
	IsoMass [][][]core.AminoAcid
	// Modifications are scored in the From -> To direction only.
	Modifications []core.Substitution
	// Swaps enables scoring of reordered windows of two and three residues.
	Swaps bool
}

// DefaultRules returns the built-in iso-mass classes, deamidation and swaps.
func DefaultRules() Rules {
	rules := Rules{
		Modifications: core.DefaultSubstitutions(),
		Swaps:         true,
	}
	for _, class := range isoMassClasses {
		windows := make([][]core.AminoAcid, len(class))
		for i, w := range class {
			windows[i] = core.ParseSequence(w)
		}
		rules.IsoMass = append(rules.IsoMass, windows)
	}
	return rules
}

// DefaultTable builds the table for DefaultRules. Building enumerates every
// reordering of up to three residues, so callers should build it once and
// share it.
func DefaultTable() *Table {
	return BuildTable(DefaultRules())
}

// BuildTable builds a scoring table. Rule sets are applied in order, iso-mass
// then modifications then swaps; a later rule overwrites an earlier one for
// the same pair.
func BuildTable(rules Rules) *Table {
	t := newTable()

	for _, class := range rules.IsoMass {
		for i := 0; i < len(class); i++ {
			for j := i + 1; j < len(class); j++ {
				for _, a := range permutations(class[i]) {
					for _, b := range permutations(class[j]) {
						if equalWindows(a, b) {
							continue
						}
						if t.set(a, b, IsoMassScore) {
							t.stats.IsoMass++
						}
						if t.set(b, a, IsoMassScore) {
							t.stats.IsoMass++
						}
					}
				}
			}
		}
	}

	for _, sub := range rules.Modifications {
		if t.set(sub.From, sub.To, ModificationScore) {
			t.stats.Modification++
		}
	}

	if rules.Swaps {
		for size := 2; size <= MaxWindow; size++ {
			score := SwapScore * int8(size)
			forEachMultiset(size, func(window []core.AminoAcid) {
				perms := permutations(window)
				// all residues identical
				if len(perms) < 2 {
					return
				}
				for _, a := range perms {
					for _, b := range perms {
						if equalWindows(a, b) {
							continue
						}
						if t.set(a, b, score) {
							t.stats.Swap++
						}
					}
				}
			})
		}
	}

	return t
}

// permutations returns the distinct orderings of window.
func permutations(window []core.AminoAcid) [][]core.AminoAcid {
	var out [][]core.AminoAcid
	seen := make(map[string]bool)
	var walk func(prefix []core.AminoAcid, rest []core.AminoAcid)
	walk = func(prefix []core.AminoAcid, rest []core.AminoAcid) {
		if len(rest) == 0 {
			k := core.SequenceString(prefix)
			if !seen[k] {
				seen[k] = true
				out = append(out, append([]core.AminoAcid(nil), prefix...))
			}
			return
		}
		for i := range rest {
			next := make([]core.AminoAcid, 0, len(rest)-1)
			next = append(next, rest[:i]...)
			next = append(next, rest[i+1:]...)
			walk(append(prefix, rest[i]), next)
		}
	}
	walk(make([]core.AminoAcid, 0, len(window)), window)
	return out
}

// forEachMultiset calls fn for every non-decreasing run of size residues,
// that is every combination with repetition. fn must not retain window.
func forEachMultiset(size int, fn func(window []core.AminoAcid)) {
	window := make([]core.AminoAcid, size)
	var fill func(pos int, from core.AminoAcid)
	fill = func(pos int, from core.AminoAcid) {
		if pos == size {
			fn(window)
			return
		}
		for a := from; a <= core.MaxAminoAcid; a++ {
			window[pos] = a
			fill(pos+1, a)
		}
	}
	fill(0, core.Alanine)
}

func equalWindows(a, b []core.AminoAcid) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
