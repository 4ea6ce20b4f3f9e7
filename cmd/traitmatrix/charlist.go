package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/traitmatrix/accum"
	"github.com/c360studio/traitmatrix/output"
	"github.com/c360studio/traitmatrix/source"
)

func charlistCmd(flags *rootFlags) *cobra.Command {
	var (
		outputPath  string
		start       int
		limit       int
		descType    string
		seedSamples int
	)

	cmd := &cobra.Command{
		Use:   "charlist <descfile | run.json>",
		Short: "Derive a characteristic list",
		Long: `Charlist writes a characteristic list, one name per line, ready for
later extract runs.

Given a finished run's output JSON, it takes the last entry of the run's
charlist history. Given a description file, it runs only the seeding
stage over the first samples.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.HasSuffix(strings.ToLower(args[0]), ".json") {
				return charlistFromRun(args[0], outputPath)
			}

			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("start") {
				cfg.Run.Start = start
			}
			if cmd.Flags().Changed("limit") {
				cfg.Run.Limit = limit
			}
			if cmd.Flags().Changed("desctype") {
				cfg.Run.DescType = descType
			}
			if cmd.Flags().Changed("seed-samples") {
				cfg.Run.SeedSamples = seedSamples
				cfg.Run.Tabulate = seedSamples > 1
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			samples, err := loadDescSamples(args[0], cfg)
			if err != nil {
				return err
			}
			seedCount := cfg.Run.SeedSamples
			if seedCount > len(samples) {
				seedCount = len(samples)
			}
			if seedCount == 0 {
				return fmt.Errorf("no %q descriptions in range", cfg.Run.DescType)
			}

			prompts, err := cfg.LoadPrompts()
			if err != nil {
				return err
			}

			var seeding accum.SeedingStrategy = accum.SingleSeeding{}
			if cfg.Run.Tabulate || seedCount > 1 {
				seeding = accum.TabulationSeeding{}
			}

			res, err := seeding.Seed(ctx, newBackend(cfg), prompts, samples[:seedCount])
			if err != nil {
				return fmt.Errorf("seed charlist: %w", err)
			}
			if len(res.Charlist) == 0 {
				return fmt.Errorf("seeding produced no characteristics (status %s)", res.Status)
			}

			if err := output.WriteCharlist(outputPath, res.Charlist); err != nil {
				return err
			}

			slog.Info("Charlist written",
				"characteristics", len(res.Charlist),
				"samples", seedCount,
				"output", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "charlist.txt", "Charlist output file")
	cmd.Flags().IntVar(&start, "start", 0, "Index of the first sample to read")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max samples to read (0 = all)")
	cmd.Flags().StringVar(&descType, "desctype", source.DefaultDescriptionType, "Description row type to read")
	cmd.Flags().IntVar(&seedSamples, "seed-samples", 1, "Samples used to derive the list (>1 enables tabulation)")

	return cmd
}

// charlistFromRun extracts the final characteristic list from a finished
// run's output.
func charlistFromRun(runPath, outputPath string) error {
	data, err := os.ReadFile(runPath)
	if err != nil {
		return fmt.Errorf("read run output: %w", err)
	}

	var run accum.Summary
	if err := json.Unmarshal(data, &run); err != nil {
		return fmt.Errorf("parse run output: %w", err)
	}
	if len(run.CharlistHistory) == 0 {
		return fmt.Errorf("run %s has no charlist history", runPath)
	}

	charlist := run.CharlistHistory[len(run.CharlistHistory)-1]
	if len(charlist) == 0 {
		return fmt.Errorf("run %s ended with an empty charlist", runPath)
	}

	if err := output.WriteCharlist(outputPath, charlist); err != nil {
		return err
	}

	slog.Info("Charlist written",
		"characteristics", len(charlist),
		"run", runPath,
		"output", outputPath)
	return nil
}
