// Package main provides the traitmatrix binary entry point.
// Traitmatrix digitizes free-text species descriptions into structured
// characteristic/value records using an LLM backend.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	// Register LLM providers via init()
	_ "github.com/c360studio/traitmatrix/llm/providers"

	"github.com/c360studio/traitmatrix/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "traitmatrix"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "traitmatrix",
		Short: "Digitize species descriptions into trait matrices",
		Long: `Traitmatrix turns free-text taxonomic species descriptions into
structured characteristic/value records using an LLM backend.

It provides:
- Schema accumulation across a description corpus
- Extraction against a fixed characteristic list
- Darwin Core Archive description conversion
- Word-recovery quality checks on run outputs`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(flags.logLevel)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		accumulateCmd(flags),
		extractCmd(flags),
		charlistCmd(flags),
		qcCmd(flags),
		convertCmd(),
		versionCmd(),
	)

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadConfig resolves layered configuration, then the explicit --config file
// on top of it.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.NewLoader(slog.Default()).Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if flags.configPath != "" {
		override, err := config.LoadFromFile(flags.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", flags.configPath, err)
		}
		cfg.Merge(override)
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	return cfg, nil
}
