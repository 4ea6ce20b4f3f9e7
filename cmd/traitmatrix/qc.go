package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/c360studio/traitmatrix/accum"
	"github.com/c360studio/traitmatrix/trait"
	"github.com/c360studio/traitmatrix/wordcov"
)

func qcCmd(flags *rootFlags) *cobra.Command {
	var (
		threshold float64
		showWords bool
	)

	cmd := &cobra.Command{
		Use:   "qc <run.json>",
		Short: "Check word recovery of a run output",
		Long: `Qc scores each sample of a finished run by word recovery: the share of
source description words that reappear in the digitized records. Samples
under the threshold are listed, with their omitted words on request.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQC(args[0], threshold, showWords)
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0.9, "Recovery below this flags a sample")
	cmd.Flags().BoolVar(&showWords, "words", false, "List omitted words for flagged samples")

	return cmd
}

type qcRow struct {
	sampleID string
	status   string
	recovery float64
	missing  []string
}

func runQC(path string, threshold float64, showWords bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read run output: %w", err)
	}

	var run accum.Summary
	if err := json.Unmarshal(data, &run); err != nil {
		return fmt.Errorf("parse run output: %w", err)
	}

	detector := wordcov.NewDetector()

	rows := make([]qcRow, 0, len(run.Samples))
	var flagged, failed int
	for _, s := range run.Samples {
		row := qcRow{sampleID: s.SampleID, status: s.Status}

		if s.Status != trait.StatusSuccess {
			failed++
			rows = append(rows, row)
			continue
		}

		row.recovery = detector.Recovery(s.OriginalText, s.Records)
		row.missing = detector.Omissions(s.OriginalText, s.Records)
		if row.recovery < threshold {
			flagged++
		}
		rows = append(rows, row)
	}

	// Worst first.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].recovery < rows[j].recovery
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SAMPLE\tSTATUS\tRECOVERY\tOMITTED")
	for _, row := range rows {
		if row.status != trait.StatusSuccess {
			fmt.Fprintf(w, "%s\t%s\t-\t-\n", row.sampleID, row.status)
			continue
		}

		omitted := fmt.Sprintf("%d", len(row.missing))
		if showWords && len(row.missing) > 0 {
			omitted = strings.Join(row.missing, ", ")
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n", row.sampleID, row.status, row.recovery, omitted)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d samples, %d failed, %d below %.2f recovery\n",
		len(rows), failed, flagged, threshold)
	return nil
}
