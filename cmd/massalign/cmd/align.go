package cmd

import (
	"fmt"
	"io"

	"github.com/ChrisMcGann/MassAlign/pkg/align"
	"github.com/ChrisMcGann/MassAlign/pkg/core"
	"github.com/spf13/cobra"
)

var alignCmd = &cobra.Command{
	Use:   "align <sequence-a> <sequence-b>",
	Short: "Align two peptide sequences",
	Long: `Align two peptide sequences and print the score, the path and a text view
of the aligned region. Characters that are not amino acid codes are dropped
with a warning.

Path tokens: M one residue against one, I residue of B against a gap,
D residue of A against a gap, S[a,b] a window of a residues against b.

Examples:
  # Local alignment
  massalign align AFGGW AFNW

  # Force both sequences to be aligned end to end
  massalign align AFGGEW FGGD --mode global

  # Include precursor m/z at charge 2
  massalign align PEPTIDE PEPTLDE -z 2`,
	Args: cobra.ExactArgs(2),
	RunE: runAlign,
}

func runAlign(cmd *cobra.Command, args []string) error {
	mode, err := align.ParseMode(modeName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	table, err := loadTable(out)
	if err != nil {
		return err
	}

	a := decodeSequence(cmd.ErrOrStderr(), "a", args[0])
	b := decodeSequence(cmd.ErrOrStderr(), "b", args[1])

	aln := align.Align(a, b, table, mode)

	fmt.Fprintf(out, "Mode: %s\n", mode)
	fmt.Fprintf(out, "Score: %d\n", aln.Score)
	fmt.Fprintf(out, "Path: %s\n", aln.Short())
	fmt.Fprintf(out, "Start: A=%d B=%d\n", aln.StartA, aln.StartB)
	printMass(out, "A", aln.ConsumedA())
	printMass(out, "B", aln.ConsumedB())
	if charge > 0 {
		printMZ(out, "A", a, charge)
		printMZ(out, "B", b, charge)
	}
	if len(aln.Path) > 0 {
		fmt.Fprintf(out, "\n%s\n", aln.Render())
	}

	return nil
}

func printMass(w io.Writer, label string, window []core.AminoAcid) {
	mass, ok := core.WindowMass(window)
	if !ok {
		fmt.Fprintf(w, "Aligned mass %s: n/a\n", label)
		return
	}
	fmt.Fprintf(w, "Aligned mass %s: %.4f\n", label, core.RoundFloat(mass, 4))
}

func printMZ(w io.Writer, label string, seq []core.AminoAcid, z int) {
	mz, ok := core.PeptideMZ(seq, z)
	if !ok {
		fmt.Fprintf(w, "m/z %s (%d+): n/a\n", label, z)
		return
	}
	fmt.Fprintf(w, "m/z %s (%d+): %.4f\n", label, z, core.RoundFloat(mz, 4))
}
