package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/traitmatrix/accum"
	"github.com/c360studio/traitmatrix/config"
	"github.com/c360studio/traitmatrix/llm"
	"github.com/c360studio/traitmatrix/output"
	"github.com/c360studio/traitmatrix/source"
	"github.com/c360studio/traitmatrix/trait"
)

func accumulateCmd(flags *rootFlags) *cobra.Command {
	var (
		outputPath  string
		start       int
		limit       int
		descType    string
		seedSamples int
		followup    bool
	)

	cmd := &cobra.Command{
		Use:   "accumulate <descfile>",
		Short: "Grow a characteristic schema across a description corpus",
		Long: `Accumulate digitizes every description in a tab-separated description
file, growing the characteristic list as new traits appear. The first
sample seeds the list; --seed-samples above one switches to tabulation
seeding over that many samples. Output is rewritten after every sample.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("output") {
				cfg.Output.Path = outputPath
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
			if cmd.Flags().Changed("followup") {
				cfg.Run.Followup = followup
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			return runAccumulate(cmd.Context(), cfg, args[0])
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "output.json", "Run output JSON file")
	cmd.Flags().IntVar(&start, "start", 0, "Index of the first sample to process")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max samples to process (0 = all)")
	cmd.Flags().StringVar(&descType, "desctype", source.DefaultDescriptionType, "Description row type to digitize")
	cmd.Flags().IntVar(&seedSamples, "seed-samples", 1, "Samples used to seed the charlist (>1 enables tabulation)")
	cmd.Flags().BoolVar(&followup, "followup", false, "Issue a corrective second call per sample")

	return cmd
}

func runAccumulate(ctx context.Context, cfg *config.Config, descPath string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	samples, err := loadDescSamples(descPath, cfg)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no %q descriptions in range", cfg.Run.DescType)
	}

	prompts, err := cfg.LoadPrompts()
	if err != nil {
		return err
	}

	backend := newBackend(cfg)

	opts := []accum.Option{accum.WithLogger(slog.Default())}
	if cfg.Run.Tabulate || cfg.Run.SeedSamples > 1 {
		opts = append(opts, accum.WithSeeding(accum.TabulationSeeding{}))
	}
	if cfg.Run.Followup {
		opts = append(opts, accum.WithCorrection(accum.NewFollowupCorrection()))
	}
	a := accum.New(backend, prompts, cfg.Model.Params, opts...)

	writer, err := output.NewWriter(cfg.Output.Path, slog.Default())
	if err != nil {
		return err
	}

	seedCount := cfg.Run.SeedSamples
	if seedCount > len(samples) {
		seedCount = len(samples)
	}
	if _, err := a.Seed(ctx, samples[:seedCount]); err != nil {
		return fmt.Errorf("seed charlist: %w", err)
	}

	// The seed samples only derive the initial schema; every sample is
	// then digitized, so each one gets exactly one result.
	for i, sample := range samples {
		if _, err := a.Step(ctx, sample); err != nil {
			// Persist what we have before giving up.
			if werr := writer.Write(a.Summary()); werr != nil {
				slog.Error("Failed to persist partial run", "error", werr)
			}
			return fmt.Errorf("sample %s (%d/%d): %w", sample.ID, i+1, len(samples), err)
		}

		if err := writer.Write(a.Summary()); err != nil {
			return fmt.Errorf("persist run: %w", err)
		}
	}

	slog.Info("Accumulation complete",
		"samples", len(samples),
		"characteristics", len(a.Charlist()),
		"output", writer.Path())
	return nil
}

// loadDescSamples reads the description file and selects the run's samples.
func loadDescSamples(path string, cfg *config.Config) ([]trait.Sample, error) {
	descs, err := source.LoadDescFile(path)
	if err != nil {
		return nil, err
	}
	samples := source.FilterSamples(descs, cfg.Run.DescType)
	return source.Window(samples, cfg.Run.Start, cfg.Run.Limit), nil
}

// newBackend builds the inference client from the model configuration.
func newBackend(cfg *config.Config) llm.Backend {
	return llm.NewClient(cfg.Endpoint(), cfg.Model.Params,
		llm.WithTimeout(cfg.Model.Timeout),
		llm.WithLogger(slog.Default()))
}
