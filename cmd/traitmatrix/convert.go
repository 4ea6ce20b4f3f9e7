package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/traitmatrix/source"
)

func convertCmd() *cobra.Command {
	var (
		outputPath string
		lang       string
	)

	cmd := &cobra.Command{
		Use:   "convert <description.txt>",
		Short: "Flatten a Darwin Core Archive description extension",
		Long: `Convert turns a Darwin Core Archive description extension (the
description.txt file with its header row) into the canonical three-column
description file: core ID, type token, and HTML-free description text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			descs, err := source.ConvertArchive(args[0], lang)
			if err != nil {
				return err
			}
			if len(descs) == 0 {
				return fmt.Errorf("no description rows in %s", args[0])
			}

			out := os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}

			if err := source.WriteDescFile(out, descs); err != nil {
				return fmt.Errorf("write description file: %w", err)
			}

			if outputPath != "" {
				slog.Info("Description file written",
					"rows", len(descs),
					"output", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&lang, "lang", "en", "Keep only rows in this language (empty = all)")

	return cmd
}
