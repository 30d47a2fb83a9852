package align

import (
	"fmt"
	"strings"

	"github.com/ChrisMcGann/MassAlign/pkg/core"
)

// Piece is one step of an alignment path.
type Piece struct {
	Score      int  // cumulative score up to and including this step
	LocalScore int8 // contribution of this step
	StepA      uint8
	StepB      uint8
}

// Alignment is the result of Align.
type Alignment struct {
	Score  int
	Path   []Piece // start to end
	StartA int     // 0-based offset of the first aligned residue in SeqA
	StartB int
	SeqA   []core.AminoAcid
	SeqB   []core.AminoAcid
	Mode   Mode
}

// ValidationError represents a broken path invariant.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// LenA returns the number of residues of SeqA covered by the path.
func (a *Alignment) LenA() int {
	n := 0
	for _, p := range a.Path {
		n += int(p.StepA)
	}
	return n
}

// LenB returns the number of residues of SeqB covered by the path.
func (a *Alignment) LenB() int {
	n := 0
	for _, p := range a.Path {
		n += int(p.StepB)
	}
	return n
}

// ConsumedA returns the part of SeqA covered by the path.
func (a *Alignment) ConsumedA() []core.AminoAcid {
	return a.SeqA[a.StartA : a.StartA+a.LenA()]
}

// ConsumedB returns the part of SeqB covered by the path.
func (a *Alignment) ConsumedB() []core.AminoAcid {
	return a.SeqB[a.StartB : a.StartB+a.LenB()]
}

// CoverageA returns the fraction of SeqA covered by the path.
func (a *Alignment) CoverageA() float64 {
	if len(a.SeqA) == 0 {
		return 0
	}
	return float64(a.LenA()) / float64(len(a.SeqA))
}

// CoverageB returns the fraction of SeqB covered by the path.
func (a *Alignment) CoverageB() float64 {
	if len(a.SeqB) == 0 {
		return 0
	}
	return float64(a.LenB()) / float64(len(a.SeqB))
}

// Short returns the path as one token per step: M for a one to one step,
// I for a residue of B against a gap, D for a residue of A against a gap and
// S[a,b] for any multi-residue step.
func (a *Alignment) Short() string {
	var b strings.Builder
	for _, p := range a.Path {
		switch {
		case p.StepA == 1 && p.StepB == 1:
			b.WriteByte('M')
		case p.StepA == 0 && p.StepB == 1:
			b.WriteByte('I')
		case p.StepA == 1 && p.StepB == 0:
			b.WriteByte('D')
		default:
			fmt.Fprintf(&b, "S[%d,%d]", p.StepA, p.StepB)
		}
	}
	return b.String()
}

// Render returns a three line text view of the aligned region. Each step is
// padded to its wider window; the middle line marks identities with '|',
// other rewarded steps with ':', mismatches with '.' and gaps with ' '.
func (a *Alignment) Render() string {
	var top, mid, bot strings.Builder
	i, j := a.StartA, a.StartB
	for _, p := range a.Path {
		width := int(max(p.StepA, p.StepB))
		winA := a.SeqA[i : i+int(p.StepA)]
		winB := a.SeqB[j : j+int(p.StepB)]
		i += int(p.StepA)
		j += int(p.StepB)

		writePadded(&top, winA, width)
		writePadded(&bot, winB, width)

		var mark byte
		switch {
		case p.StepA == 0 || p.StepB == 0:
			mark = ' '
		case p.StepA == 1 && p.StepB == 1 && winA[0] == winB[0]:
			mark = '|'
		case p.LocalScore > 0:
			mark = ':'
		default:
			mark = '.'
		}
		mid.WriteString(strings.Repeat(string(mark), width))
	}
	return top.String() + "\n" + mid.String() + "\n" + bot.String()
}

func writePadded(b *strings.Builder, window []core.AminoAcid, width int) {
	b.WriteString(core.SequenceString(window))
	b.WriteString(strings.Repeat(string(core.Gap.Char()), width-len(window)))
}

// Validate checks the path invariants: every step consumes something, gaps
// consume exactly one residue, windows stay within MaxWindow, scores
// accumulate and the path stays inside both sequences.
func (a *Alignment) Validate() error {
	var errs []string

	prev := 0
	if len(a.Path) > 0 {
		first := a.Path[0]
		prev = first.Score - int(first.LocalScore)
	}
	for n, p := range a.Path {
		switch {
		case p.StepA == 0 && p.StepB == 0:
			errs = append(errs, fmt.Sprintf("step %d consumes nothing", n))
		case p.StepA == 0 && p.StepB != 1, p.StepB == 0 && p.StepA != 1:
			errs = append(errs, fmt.Sprintf("step %d is a double gap", n))
		case p.StepA > MaxWindow || p.StepB > MaxWindow:
			errs = append(errs, fmt.Sprintf("step %d exceeds window size %d", n, MaxWindow))
		}
		if p.LocalScore == 0 {
			errs = append(errs, fmt.Sprintf("step %d has an undefined score", n))
		}
		if p.Score != prev+int(p.LocalScore) {
			errs = append(errs, fmt.Sprintf("step %d score %d does not follow %d%+d", n, p.Score, prev, p.LocalScore))
		}
		prev = p.Score
	}

	if len(a.Path) > 0 && a.Path[len(a.Path)-1].Score != a.Score {
		errs = append(errs, "last step score differs from alignment score")
	}
	if a.StartA < 0 || a.StartA+a.LenA() > len(a.SeqA) {
		errs = append(errs, "path runs outside sequence a")
	}
	if a.StartB < 0 || a.StartB+a.LenB() > len(a.SeqB) {
		errs = append(errs, "path runs outside sequence b")
	}
	if a.Mode == Global && (a.StartA != 0 || a.StartB != 0 || a.LenA() != len(a.SeqA) || a.LenB() != len(a.SeqB)) {
		errs = append(errs, "global alignment does not cover both sequences")
	}
	if a.Mode == GlobalForB && (a.StartB != 0 || a.LenB() != len(a.SeqB)) {
		errs = append(errs, "alignment does not cover sequence b")
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "Alignment",
			Message: strings.Join(errs, "; "),
		}
	}
	return nil
}
