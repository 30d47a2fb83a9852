package cmd

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/ChrisMcGann/MassAlign/pkg/align"
	"github.com/ChrisMcGann/MassAlign/pkg/core"
	"github.com/ChrisMcGann/MassAlign/pkg/filter"
	"github.com/ChrisMcGann/MassAlign/pkg/reader/fasta"
	"github.com/ChrisMcGann/MassAlign/pkg/search"
	"github.com/ChrisMcGann/MassAlign/pkg/writer/sqlite"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Align query peptides against reference peptides",
	Long: `Align every query sequence against every reference sequence. The query is
sequence A and the reference is sequence B of each alignment.

Hits are written as TSV to stdout, or to a SQLite database with --out.

Examples:
  # Best reference per query, TSV on stdout
  massalign search --query reads.fasta --ref proteins.fasta --top-n 1

  # Require full use of every reference, 8 workers, store in SQLite
  massalign search -q reads.fasta -r peptides.fasta --mode globalforb -t 8 --out hits.db`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	mode, err := align.ParseMode(modeName)
	if err != nil {
		return err
	}

	filterConfig := &filter.Config{
		MinScore:    math.MinInt,
		MinCoverage: minCoverage,
		TopN:        topN,
	}
	if cmd.Flags().Changed("min-score") {
		filterConfig.MinScore = minScore
	}
	if err := filterConfig.Validate(); err != nil {
		return err
	}

	// Messages go to stderr when hits are printed to stdout
	info := cmd.OutOrStdout()
	if outputFile == "" {
		info = cmd.ErrOrStderr()
	}
	warn := cmd.ErrOrStderr()

	queries, err := loadRecords(warn, "query", queryFile)
	if err != nil {
		return err
	}
	refs, err := loadRecords(warn, "reference", refFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(info, "Loaded %s queries and %s references\n",
		humanize.Comma(int64(len(queries))), humanize.Comma(int64(len(refs))))

	table, err := loadTable(info)
	if err != nil {
		return err
	}

	total := len(queries) * len(refs)
	opts := search.Options{Mode: mode, Threads: threads}

	var pbs *mpb.Progress
	if showProgress && total > 0 {
		pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(cmd.ErrOrStderr()))
		bar := pbs.AddBar(int64(total),
			mpb.PrependDecorators(
				decor.Name("aligned: ", decor.WC{W: len("aligned: "), C: decor.DindentRight}),
				decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.OnComplete(decor.Percentage(decor.WC{W: 5}), " done"),
			),
		)
		opts.Progress = func() { bar.Increment() }
	}

	hits := search.Run(queries, refs, table, opts)
	if pbs != nil {
		pbs.Wait()
	}

	kept := filterConfig.Apply(hits)

	if outputFile == "" {
		writeTSV(cmd.OutOrStdout(), kept)
	} else if err := writeDatabase(outputFile, mode, kept); err != nil {
		return err
	}

	fmt.Fprintf(info, "\nSearch complete!\n")
	fmt.Fprintf(info, "Aligned: %s pairs\n", humanize.Comma(int64(total)))
	fmt.Fprintf(info, "Kept: %s hits\n", humanize.Comma(int64(len(kept))))
	if outputFile != "" {
		fmt.Fprintf(info, "Output: %s\n", outputFile)
	}

	return nil
}

func loadRecords(warn io.Writer, label, path string) ([]*fasta.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", label, err)
	}
	defer f.Close()

	records, err := fasta.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading %s file %s: %w", label, path, err)
	}

	for _, rec := range records {
		if rec.Dropped > 0 {
			fmt.Fprintf(warn, "Warning: %s %s: dropped %d unrecognized characters\n", label, rec.Name, rec.Dropped)
		}
	}
	return records, nil
}

func writeTSV(w io.Writer, hits []search.Hit) {
	fmt.Fprintln(w, "query\treference\tscore\tpath\tstart_a\tstart_b\taligned_a\taligned_b")
	for i := range hits {
		aln := &hits[i].Alignment
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%d\t%s\t%s\n",
			hits[i].Query, hits[i].Reference, aln.Score, aln.Short(), aln.StartA, aln.StartB,
			core.SequenceString(aln.ConsumedA()), core.SequenceString(aln.ConsumedB()))
	}
}

func writeDatabase(path string, mode align.Mode, hits []search.Hit) error {
	writer, err := sqlite.NewWriter(path, mode)
	if err != nil {
		return fmt.Errorf("failed to create output database: %w", err)
	}
	defer writer.Close()

	for i := range hits {
		if err := writer.WriteHit(&hits[i]); err != nil {
			return fmt.Errorf("failed to write hit %s/%s: %w", hits[i].Query, hits[i].Reference, err)
		}
	}

	if err := writer.Finalize(); err != nil {
		return fmt.Errorf("failed to finalize database: %w", err)
	}
	return nil
}
