package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/reach/app"
	"github.com/ludo-technologies/reach/domain"
	"github.com/ludo-technologies/reach/service"
	"github.com/spf13/cobra"
)

var (
	graphOutputFormat    string
	graphOutputPath      string
	graphDotFormat       bool
	graphIncludeExternal bool
	graphIncludeTypes    bool
	graphNoCycles        bool
	graphMaxDepth        int
	graphNoLegend        bool
	graphRankDir         string
)

func graphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [path...]",
		Short: "Analyze and visualize module dependencies",
		Long: `Analyze JavaScript/TypeScript module dependencies and generate visualizations.

Supports multiple output formats:
  - text: Human-readable text summary
  - json: JSON format for programmatic consumption
  - dot:  Graphviz DOT format for visualization

Examples:
  # Generate DOT and render with Graphviz
  reach graph --dot src/ > deps.dot
  dot -Tpng deps.dot -o deps.png

  # Pipe directly to Graphviz
  reach graph --dot src/ | dot -Tsvg -o deps.svg

  # JSON for programmatic use
  reach graph --format json src/

  # Save to file
  reach graph --dot -o deps.dot src/`,
		RunE: runGraph,
	}

	cmd.Flags().StringVarP(&graphOutputFormat, "format", "f", "text",
		"Output format: text, json, dot")
	cmd.Flags().StringVarP(&graphOutputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().BoolVar(&graphDotFormat, "dot", false,
		"Shorthand for --format dot")
	cmd.Flags().BoolVar(&graphIncludeExternal, "include-external", false,
		"Include node_modules dependencies")
	cmd.Flags().BoolVar(&graphIncludeTypes, "include-types", true,
		"Include TypeScript type imports")
	cmd.Flags().BoolVar(&graphNoCycles, "no-cycles", false,
		"Disable cycle detection")
	cmd.Flags().IntVar(&graphMaxDepth, "max-depth", 0,
		"Limit dependency depth shown (0 = unlimited)")
	cmd.Flags().BoolVar(&graphNoLegend, "no-legend", false,
		"Disable legend in DOT output")
	cmd.Flags().StringVar(&graphRankDir, "rank-dir", "TB",
		"Layout direction for DOT: TB, LR, BT, RL")

	return cmd
}

func runGraph(cmd *cobra.Command, args []string) (err error) {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	format := domain.OutputFormatText
	switch {
	case graphDotFormat || graphOutputFormat == "dot":
		format = domain.OutputFormatDOT
	case graphOutputFormat == "json":
		format = domain.OutputFormatJSON
	case graphOutputFormat == "text":
		format = domain.OutputFormatText
	}

	var files []string
	for _, path := range args {
		pathFiles, err := collectJSFiles(path)
		if err != nil {
			return fmt.Errorf("failed to collect files from %s: %w", path, err)
		}
		files = append(files, pathFiles...)
	}

	if len(files) == 0 {
		return fmt.Errorf("no JavaScript/TypeScript files found")
	}

	if format != domain.OutputFormatJSON && format != domain.OutputFormatDOT {
		fmt.Printf("Analyzing %d files...\n", len(files))
	}

	svc := service.NewDependencyGraphService(graphIncludeExternal, graphIncludeTypes)

	req := domain.DependencyGraphRequest{
		Paths:              files,
		OutputFormat:       format,
		IncludeExternal:    domain.BoolPtr(graphIncludeExternal),
		IncludeTypeImports: domain.BoolPtr(graphIncludeTypes),
		DetectCycles:       domain.BoolPtr(!graphNoCycles),
	}

	ctx := context.Background()
	startTime := time.Now()
	response, err := svc.Analyze(ctx, req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	duration := time.Since(startTime)

	if format == domain.OutputFormatText {
		for _, w := range response.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}
		for _, e := range response.Errors {
			fmt.Fprintf(os.Stderr, "Error: %s\n", e)
		}
	}

	var writer *os.File
	if graphOutputPath != "" {
		f, createErr := os.Create(graphOutputPath)
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
	switch format {
	case domain.OutputFormatDOT:
		dotConfig := service.DefaultDOTFormatterConfig()
		dotConfig.MaxDepth = graphMaxDepth
		dotConfig.ShowLegend = !graphNoLegend
		dotConfig.ClusterCycles = !graphNoCycles
		dotConfig.RankDir = graphRankDir

		dotFormatter := service.NewDOTFormatter(dotConfig)
		if err := dotFormatter.WriteDependencyGraph(response, writer); err != nil {
			return fmt.Errorf("failed to write DOT output: %w", err)
		}

	case domain.OutputFormatJSON:
		if err := formatter.WriteDependencyGraph(response, format, writer); err != nil {
			return fmt.Errorf("failed to write JSON output: %w", err)
		}

	default:
		if err := formatter.WriteDependencyGraph(response, format, writer); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(writer, "\nAnalysis completed in %dms\n", duration.Milliseconds())
	}

	if graphOutputPath != "" && format != domain.OutputFormatJSON && format != domain.OutputFormatDOT {
		absPath, _ := filepath.Abs(graphOutputPath)
		fmt.Printf("Output saved to: %s\n", absPath)
	}

	return nil
}

// collectJSFiles resolves a single CLI path argument (file or directory)
// into its constituent JavaScript/TypeScript files.
func collectJSFiles(path string) ([]string, error) {
	return app.NewFileHelper().CollectJSFiles([]string{path}, true, nil, nil)
}
