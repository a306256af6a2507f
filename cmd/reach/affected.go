package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/reach/app"
	"github.com/ludo-technologies/reach/domain"
	"github.com/ludo-technologies/reach/internal/config"
	"github.com/ludo-technologies/reach/service"
	"github.com/spf13/cobra"
)

var (
	affectedTests        []string
	affectedChanged      []string
	affectedConfig       string
	affectedOutputFormat string
	affectedOutputPath   string
	affectedNoProgress   bool
)

func affectedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "affected",
		Short: "Select the tests affected by a set of changed files",
		Long: `Determine which candidate test files are affected by a set of changed
source files by performing a breadth-first traversal of the static import
graph from the test roots, resolving each specifier through the configured
module resolver.

Examples:
  # Select affected tests from a glob of test files
  reach affected --tests 'src/**/*.test.ts' --changed src/foo.ts

  # Multiple changed files, JSON output
  reach affected --tests 'test/**/*.js' --changed src/a.js --changed src/b.js --format json

  # Use a project config for resolver options
  reach affected --tests 'test/**/*.ts' --changed src/a.ts --config reach.yaml`,
		RunE: runAffected,
	}

	cmd.Flags().StringSliceVarP(&affectedTests, "tests", "t", nil,
		"Candidate test files, directories, or glob patterns (repeatable)")
	cmd.Flags().StringSliceVarP(&affectedChanged, "changed", "c", nil,
		"Changed source files, directories, or glob patterns (repeatable)")
	cmd.Flags().StringVar(&affectedConfig, "config", "",
		"Path to a reach config file (see 'reach init')")
	cmd.Flags().StringVarP(&affectedOutputFormat, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().StringVarP(&affectedOutputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().BoolVar(&affectedNoProgress, "no-progress", false,
		"Disable the progress bar")

	cmd.MarkFlagRequired("tests")
	cmd.MarkFlagRequired("changed")

	return cmd
}

func runAffected(cmd *cobra.Command, args []string) (err error) {
	format, err := parseOutputFormat(affectedOutputFormat)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(affectedConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	req := domain.ReachRequest{
		TestFiles:      affectedTests,
		ChangedFiles:   affectedChanged,
		ResolveOptions: cfg.ResolveOptions,
		OutputFormat:   format,
		OutputPath:     affectedOutputPath,
	}

	progress := service.NewProgressManager(!affectedNoProgress && format == domain.OutputFormatText)
	reachSvc := service.NewReachService(progress)
	usecase := app.NewReachUseCase(reachSvc)

	ctx := context.Background()
	response, err := usecase.Execute(ctx, req)
	progress.Close()
	if err != nil {
		return err
	}

	var writer *os.File
	if affectedOutputPath != "" {
		f, createErr := os.Create(affectedOutputPath)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", closeErr)
			}
		}()
		writer = f
	} else {
		writer = os.Stdout
	}

	formatter := service.NewOutputFormatter()
	if err := formatter.WriteReach(response, format, writer); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if affectedOutputPath != "" {
		absPath, _ := filepath.Abs(affectedOutputPath)
		fmt.Printf("Output saved to: %s\n", absPath)
	}

	return nil
}

func parseOutputFormat(s string) (domain.OutputFormat, error) {
	switch s {
	case "text":
		return domain.OutputFormatText, nil
	case "json":
		return domain.OutputFormatJSON, nil
	case "yaml":
		return domain.OutputFormatYAML, nil
	default:
		return "", domain.NewUnsupportedFormatError(s)
	}
}
