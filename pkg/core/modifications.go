package core

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Substitution is a one-directional chemical change that turns the residues
// in From into the residues in To, such as the deamidation of asparagine to
// aspartic acid.
type Substitution struct {
	Name string
	From []AminoAcid
	To   []AminoAcid
}

// MassShift returns mass(To) - mass(From).
func (s Substitution) MassShift() (float64, bool) {
	from, ok := WindowMass(s.From)
	if !ok {
		return 0, false
	}
	to, ok := WindowMass(s.To)
	if !ok {
		return 0, false
	}
	return to - from, true
}

// String returns the substitution in "Name:FROM>TO" form
func (s Substitution) String() string {
	return fmt.Sprintf("%s:%s>%s", s.Name, SequenceString(s.From), SequenceString(s.To))
}

// DefaultSubstitutions returns the built-in modification rules.
func DefaultSubstitutions() []Substitution {
	return []Substitution{
		{Name: "Deamidated", From: []AminoAcid{Asparagine}, To: []AminoAcid{AsparticAcid}},
		{Name: "Deamidated", From: []AminoAcid{Glutamine}, To: []AminoAcid{GlutamicAcid}},
	}
}

// ParseSubstitutions reads substitutions from a CSV file (format: name,from,to)
// with a header line. Windows hold one to three residues.
func ParseSubstitutions(r io.Reader) ([]Substitution, error) {
	scanner := bufio.NewScanner(r)

	// Skip header line
	scanner.Scan()

	var subs []Substitution
	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 3 {
			return nil, fmt.Errorf("line %d: invalid format, expected 3 comma-separated fields (name,from,to)", lineNum)
		}

		name := strings.TrimSpace(parts[0])
		from, err := parseWindow(parts[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid source window: %w", lineNum, err)
		}
		to, err := parseWindow(parts[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid target window: %w", lineNum, err)
		}

		subs = append(subs, Substitution{Name: name, From: from, To: to})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}

	return subs, nil
}

// parseWindow is strict, unlike ParseSequence: rule files must not silently
// lose residues.
func parseWindow(field string) ([]AminoAcid, error) {
	field = strings.TrimSpace(field)
	if len(field) == 0 || len(field) > 3 {
		return nil, fmt.Errorf("window '%s' must hold 1 to 3 residues", field)
	}
	window := make([]AminoAcid, 0, len(field))
	for i := 0; i < len(field); i++ {
		a, ok := FromChar(field[i])
		if !ok || !a.IsResidue() {
			return nil, fmt.Errorf("window '%s': '%c' is not a residue", field, field[i])
		}
		window = append(window, a)
	}
	return window, nil
}
