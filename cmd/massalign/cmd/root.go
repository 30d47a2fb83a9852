// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ChrisMcGann/MassAlign/pkg/align"
	"github.com/ChrisMcGann/MassAlign/pkg/core"
	"github.com/spf13/cobra"
)

var (
	// Flags shared by all commands
	modeName         string
	substitutionsCSV string

	// Flags for align command
	charge int

	// Flags for search command
	queryFile    string
	refFile      string
	outputFile   string
	threads      int
	minScore     int
	minCoverage  float64
	topN         int
	showProgress bool
)

var rootCmd = &cobra.Command{
	Use:   "massalign",
	Short: "MassAlign - mass-aware peptide sequence alignment",
	Long: `MassAlign aligns peptide sequences with steps of one to three residues on
either side, so that isobaric stretches (N against GG, Q against AG, ...)
line up with each other.

Scores reward:
- identical residues
- isobaric windows of equal or different length
- reordered windows of two or three residues
- one-directional modifications such as deamidation (N>D, Q>E)`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(alignCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(tableCmd)

	rootCmd.PersistentFlags().StringVarP(&modeName, "mode", "m", "local", "Alignment mode: local, global or globalforb")
	rootCmd.PersistentFlags().StringVar(&substitutionsCSV, "substitutions", "", "Path to a CSV of extra modification rules (name,from,to)")

	alignCmd.Flags().IntVarP(&charge, "charge", "z", 0, "Also print the m/z of both sequences at this charge")

	// Search command flags
	searchCmd.Flags().StringVarP(&queryFile, "query", "q", "", "Query sequences, FASTA or one per line (required)")
	searchCmd.Flags().StringVarP(&refFile, "ref", "r", "", "Reference sequences, FASTA or one per line (required)")
	searchCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output SQLite database (default: TSV on stdout)")
	searchCmd.Flags().IntVarP(&threads, "threads", "t", 1, "Number of concurrent alignments")
	searchCmd.Flags().IntVar(&minScore, "min-score", 0, "Keep only hits scoring at least this much (default: keep all)")
	searchCmd.Flags().Float64Var(&minCoverage, "min-coverage", 0, "Keep only hits covering at least this fraction of the query")
	searchCmd.Flags().IntVar(&topN, "top-n", 0, "Keep only the N best hits per query (0 = no limit)")
	searchCmd.Flags().BoolVar(&showProgress, "progress", false, "Show a progress bar on stderr")

	searchCmd.MarkFlagRequired("query")
	searchCmd.MarkFlagRequired("ref")
}

// loadRules returns the default rules plus any rules in the --substitutions file.
func loadRules(w io.Writer) (align.Rules, error) {
	rules := align.DefaultRules()

	if substitutionsCSV != "" {
		f, err := os.Open(substitutionsCSV)
		if err != nil {
			return rules, fmt.Errorf("failed to open substitutions file: %w", err)
		}
		defer f.Close()

		subs, err := core.ParseSubstitutions(f)
		if err != nil {
			return rules, fmt.Errorf("failed to load substitutions from %s: %w", substitutionsCSV, err)
		}
		fmt.Fprintf(w, "Loaded %d substitution rules\n", len(subs))
		rules.Modifications = append(rules.Modifications, subs...)
	}

	return rules, nil
}

// loadTable builds the scoring table for loadRules
func loadTable(w io.Writer) (*align.Table, error) {
	rules, err := loadRules(w)
	if err != nil {
		return nil, err
	}
	return align.BuildTable(rules), nil
}

// decodeSequence decodes a sequence argument and warns about dropped characters
func decodeSequence(w io.Writer, label, text string) []core.AminoAcid {
	seq := core.ParseSequence(text)
	if dropped := len(text) - len(seq); dropped > 0 {
		fmt.Fprintf(w, "Warning: sequence %s: dropped %d unrecognized characters\n", label, dropped)
	}
	return seq
}
