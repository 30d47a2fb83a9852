package align

import (
	"fmt"
	"math"
	"strings"

	"github.com/ChrisMcGann/MassAlign/pkg/core"
)

// Mode selects which parts of the sequences must take part in an alignment.
type Mode int

const (
	// Local finds the best scoring region; unaligned ends on both sides are free.
	Local Mode = iota
	// Global consumes both sequences completely.
	Global
	// GlobalForB consumes sequence B completely while A may have unaligned ends.
	GlobalForB
)

// String returns the name used on the command line
func (m Mode) String() string {
	switch m {
	case Local:
		return "local"
	case Global:
		return "global"
	case GlobalForB:
		return "globalforb"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name as returned by Mode.String. Matching is case
// insensitive and "hybrid" is accepted for GlobalForB.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local":
		return Local, nil
	case "global":
		return Global, nil
	case "globalforb", "hybrid":
		return GlobalForB, nil
	}
	return 0, fmt.Errorf("invalid alignment mode '%s', must be local, global or globalforb", s)
}

// MaxSequenceLength is the longest sequence Align accepts.
const MaxSequenceLength = math.MaxInt32

// Align aligns a and b using the scores in table.
//
// Every step consumes a window of zero to three residues from each side. A
// step consuming nothing on one side is a gap and must consume exactly one
// residue on the other. Among the candidate steps for a cell the highest
// cumulative score wins; on equal scores the step with the larger window on
// a wins, then the larger window on b.
//
// Align panics if table is nil or a sequence is longer than MaxSequenceLength.
func Align(a, b []core.AminoAcid, table *Table, mode Mode) Alignment {
	if table == nil {
		panic("align: nil scoring table")
	}
	checkLength("a", len(a))
	checkLength("b", len(b))

	gap := int(GapExtendScore)
	matrix := make([][]Piece, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]Piece, len(b)+1)
	}

	if mode == Global || mode == GlobalForB {
		for j := 1; j <= len(b); j++ {
			matrix[0][j] = Piece{Score: j * gap, LocalScore: GapExtendScore, StepA: 0, StepB: 1}
		}
	}
	if mode == Global {
		for i := 1; i <= len(a); i++ {
			matrix[i][0] = Piece{Score: i * gap, LocalScore: GapExtendScore, StepA: 1, StepB: 0}
		}
	}

	high := cell{score: 0, i: 0, j: 0}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			best, found := Piece{}, false
			for stepA := 0; stepA <= MaxWindow; stepA++ {
				for stepB := 0; stepB <= MaxWindow; stepB++ {
					if (stepA == 0 && stepB != 1) || (stepA != 1 && stepB == 0) {
						continue
					}
					if stepA > i || stepB > j {
						continue
					}
					var local int8
					if stepA == 0 || stepB == 0 {
						local = GapExtendScore
					} else {
						local = table.Score(a[i-stepA:i], b[j-stepB:j])
					}
					if local == 0 {
						continue
					}
					total := matrix[i-stepA][j-stepB].Score + int(local)
					// >= lets the later, larger step win a tie.
					if !found || total >= best.Score {
						best = Piece{Score: total, LocalScore: local, StepA: uint8(stepA), StepB: uint8(stepB)}
						found = true
					}
				}
			}
			matrix[i][j] = best
			if best.Score >= high.score {
				high = cell{score: best.Score, i: i, j: j}
			}
		}
	}

	switch mode {
	case Global:
		high = cell{score: matrix[len(a)][len(b)].Score, i: len(a), j: len(b)}
	case GlobalForB:
		high = cell{score: matrix[0][len(b)].Score, i: 0, j: len(b)}
		for i := 1; i <= len(a); i++ {
			if s := matrix[i][len(b)].Score; s > high.score {
				high = cell{score: s, i: i, j: len(b)}
			}
		}
	}

	path, startA, startB := traceback(matrix, high.i, high.j)
	return Alignment{
		Score:  high.score,
		Path:   path,
		StartA: startA,
		StartB: startB,
		SeqA:   append([]core.AminoAcid(nil), a...),
		SeqB:   append([]core.AminoAcid(nil), b...),
		Mode:   mode,
	}
}

type cell struct {
	score int
	i, j  int
}

// traceback walks the recorded steps back from (i, j) and returns the path
// in start-to-end order with the coordinates where it begins.
func traceback(matrix [][]Piece, i, j int) ([]Piece, int, int) {
	var path []Piece
	for i != 0 || j != 0 {
		p := matrix[i][j]
		if p.StepA == 0 && p.StepB == 0 {
			break
		}
		path = append(path, p)
		i -= int(p.StepA)
		j -= int(p.StepB)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path, i, j
}

func checkLength(name string, n int) {
	if n > MaxSequenceLength {
		panic(fmt.Sprintf("align: sequence %s has length %d, longer than %d", name, n, MaxSequenceLength))
	}
}
