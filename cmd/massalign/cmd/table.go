package cmd

import (
	"fmt"

	"github.com/ChrisMcGann/MassAlign/pkg/align"
	"github.com/ChrisMcGann/MassAlign/pkg/core"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table [window-a window-b]",
	Short: "Inspect the scoring table",
	Long: `Without arguments, print how many entries each rule set contributes to the
scoring table and list the modification rules. With two windows of one to
three residues, print the score of aligning window A against window B.

Examples:
  massalign table
  massalign table GG N
  massalign table N D --substitutions extra.csv`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("accepts 0 or 2 args, received %d", len(args))
		}
		return nil
	},
	RunE: runTable,
}

func runTable(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	rules, err := loadRules(out)
	if err != nil {
		return err
	}
	table := align.BuildTable(rules)

	if len(args) == 2 {
		a := decodeSequence(cmd.ErrOrStderr(), "a", args[0])
		b := decodeSequence(cmd.ErrOrStderr(), "b", args[1])
		for _, w := range [][]core.AminoAcid{a, b} {
			if len(w) == 0 || len(w) > align.MaxWindow {
				return fmt.Errorf("window '%s' must hold 1 to %d residues", core.SequenceString(w), align.MaxWindow)
			}
		}

		score := table.Score(a, b)
		if score == 0 {
			fmt.Fprintf(out, "%s -> %s: undefined\n", core.SequenceString(a), core.SequenceString(b))
		} else {
			fmt.Fprintf(out, "%s -> %s: %d\n", core.SequenceString(a), core.SequenceString(b), score)
		}
		return nil
	}

	stats := table.Stats()
	fmt.Fprintf(out, "Single-residue pairs: %s\n", humanize.Comma(int64(stats.Default)))
	fmt.Fprintf(out, "Iso-mass entries: %s\n", humanize.Comma(int64(stats.IsoMass)))
	fmt.Fprintf(out, "Modification entries: %s\n", humanize.Comma(int64(stats.Modification)))
	fmt.Fprintf(out, "Swap entries: %s\n", humanize.Comma(int64(stats.Swap)))
	fmt.Fprintf(out, "Multi-residue pairs defined: %s\n", humanize.Comma(int64(stats.Defined)))
	fmt.Fprintf(out, "Gap score: %d per residue\n", align.GapExtendScore)

	fmt.Fprintf(out, "\nModifications:\n")
	for _, sub := range rules.Modifications {
		if shift, ok := sub.MassShift(); ok {
			fmt.Fprintf(out, "  %s (%+.6f)\n", sub, shift)
		} else {
			fmt.Fprintf(out, "  %s\n", sub)
		}
	}

	return nil
}
