package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/traitmatrix/accum"
	"github.com/c360studio/traitmatrix/config"
	"github.com/c360studio/traitmatrix/output"
	"github.com/c360studio/traitmatrix/source"
	"github.com/c360studio/traitmatrix/trait"
)

func extractCmd(flags *rootFlags) *cobra.Command {
	var (
		outputPath string
		start      int
		limit      int
		descType   string
		followup   bool
		workers    int
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "extract <charlist> <input>",
		Short: "Digitize descriptions against a fixed characteristic list",
		Long: `Extract digitizes descriptions without growing the schema: every sample
is matched against the characteristic list given in <charlist>, one name
per line.

<input> is either a tab-separated description file or a glob pattern
(** supported) over .txt, .md, and .html description files. With --watch
the glob's directory is watched and new or changed files are digitized
as they appear.`,
		Args: cobra.ExactArgs(2),
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
			if cmd.Flags().Changed("followup") {
				cfg.Run.Followup = followup
			}
			if cmd.Flags().Changed("workers") {
				cfg.Run.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			return runExtract(cmd.Context(), cfg, args[0], args[1], watch)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "output.json", "Run output JSON file")
	cmd.Flags().IntVar(&start, "start", 0, "Index of the first sample to process")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max samples to process (0 = all)")
	cmd.Flags().StringVar(&descType, "desctype", source.DefaultDescriptionType, "Description row type to digitize")
	cmd.Flags().BoolVar(&followup, "followup", false, "Issue a corrective second call per sample")
	cmd.Flags().IntVar(&workers, "workers", 1, "Concurrent extraction workers")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and digitize new or changed files")

	return cmd
}

func runExtract(ctx context.Context, cfg *config.Config, charlistPath, input string, watch bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	charlist, err := source.LoadCharlist(charlistPath)
	if err != nil {
		return err
	}
	if len(charlist) == 0 {
		return fmt.Errorf("charlist %s is empty", charlistPath)
	}

	prompts, err := cfg.LoadPrompts()
	if err != nil {
		return err
	}

	opts := []accum.ExtractorOption{
		accum.WithWorkers(cfg.Run.Workers),
		accum.WithExtractorLogger(slog.Default()),
	}
	if cfg.Run.Followup {
		opts = append(opts, accum.WithExtractorCorrection(accum.NewFollowupCorrection()))
	}
	e := accum.NewExtractor(newBackend(cfg), prompts, charlist, cfg.Model.Params, opts...)

	writer, err := output.NewWriter(cfg.Output.Path, slog.Default())
	if err != nil {
		return err
	}

	samples, err := loadExtractSamples(input, cfg)
	if err != nil {
		return err
	}

	results, err := e.Run(ctx, samples, func(partial []*trait.SampleResult) error {
		done := make([]trait.SampleResult, 0, len(partial))
		for _, r := range partial {
			if r != nil {
				done = append(done, *r)
			}
		}
		return writer.Write(e.Summary(done))
	})
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	if err := writer.Write(e.Summary(results)); err != nil {
		return fmt.Errorf("persist run: %w", err)
	}

	slog.Info("Extraction complete",
		"samples", len(results),
		"output", writer.Path())

	if !watch {
		return nil
	}
	return watchExtract(ctx, e, writer, input, results)
}

// watchExtract keeps digitizing files as they appear or change under the
// glob's base directory, appending to the existing results.
func watchExtract(ctx context.Context, e *accum.Extractor, writer *output.Writer, pattern string, results []trait.SampleResult) error {
	w, err := source.NewWatcher(globBase(pattern))
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()

	conv := source.NewHTMLConverter()
	index := make(map[string]int, len(results))
	for i, r := range results {
		index[r.SampleID] = i
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events():
			if !ok {
				return nil
			}

			sample, err := source.LoadSampleFile(event.AbsPath, conv)
			if err != nil {
				slog.Warn("Skipping unreadable file", "path", event.Path, "error", err)
				continue
			}

			res, err := e.Process(ctx, sample)
			if err != nil {
				return fmt.Errorf("extract %s: %w", sample.ID, err)
			}

			// Re-digitized files replace their previous result.
			if i, ok := index[res.SampleID]; ok {
				results[i] = res
			} else {
				index[res.SampleID] = len(results)
				results = append(results, res)
			}

			if err := writer.Write(e.Summary(results)); err != nil {
				return fmt.Errorf("persist run: %w", err)
			}
		}
	}
}

// loadExtractSamples loads <input> as a description file when it is one, and
// as a glob over description files otherwise.
func loadExtractSamples(input string, cfg *config.Config) ([]trait.Sample, error) {
	if info, err := os.Stat(input); err == nil && !info.IsDir() && !isSampleFile(input) {
		return loadDescSamples(input, cfg)
	}

	paths, err := source.GlobDescriptions(input)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 && isSampleFile(input) {
		paths = []string{input}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no description files match %q", input)
	}

	samples, err := source.LoadSampleFiles(paths)
	if err != nil {
		return nil, err
	}
	return source.Window(samples, cfg.Run.Start, cfg.Run.Limit), nil
}

// isSampleFile reports whether path is a standalone description file rather
// than a tab-separated corpus. Plain .txt is ambiguous and treated as a
// corpus.
func isSampleFile(path string) bool {
	p := strings.ToLower(path)
	return strings.HasSuffix(p, ".md") || strings.HasSuffix(p, ".html") || strings.HasSuffix(p, ".htm")
}

// globBase returns the pattern's longest literal directory prefix, the root
// to watch.
func globBase(pattern string) string {
	base := pattern
	if i := strings.IndexAny(base, "*?["); i >= 0 {
		base = base[:i]
	}
	if i := strings.LastIndex(base, string(os.PathSeparator)); i >= 0 {
		base = base[:i]
	}
	if base == "" {
		base = "."
	}
	return base
}
