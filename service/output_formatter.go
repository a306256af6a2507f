package service

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ludo-technologies/reach/domain"
	"gopkg.in/yaml.v3"
)

// OutputFormatterImpl renders ReachResponse and DependencyGraphResponse
// values in the formats the CLI exposes.
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteReach writes an affected-set response in the specified format
func (f *OutputFormatterImpl) WriteReach(response *domain.ReachResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return f.writeReachYAML(response, writer)
	case domain.OutputFormatText:
		return f.writeReachText(response, writer)
	default:
		return fmt.Errorf("unsupported output format for affected tests: %s", format)
	}
}

func (f *OutputFormatterImpl) writeReachYAML(response *domain.ReachResponse, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(response)
}

func (f *OutputFormatterImpl) writeReachText(response *domain.ReachResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Affected Tests ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n\n", response.Version)

	if len(response.Paths) == 0 {
		fmt.Fprintln(writer, "No affected tests.")
	} else {
		fmt.Fprintf(writer, "Affected tests (%d):\n", len(response.Paths))
		for _, p := range response.Paths {
			fmt.Fprintf(writer, "  - %s\n", p)
		}
	}

	if len(response.Errors) > 0 {
		fmt.Fprintln(writer)
		fmt.Fprintln(writer, "Diagnostics:")
		for _, e := range response.Errors {
			fmt.Fprintf(writer, "  - %s\n", e)
		}
	}

	return nil
}

// WriteDependencyGraph writes the dependency graph response in the specified format
func (f *OutputFormatterImpl) WriteDependencyGraph(response *domain.DependencyGraphResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return f.writeDependencyGraphJSON(response, writer)
	case domain.OutputFormatText:
		return f.writeDependencyGraphText(response, writer)
	case domain.OutputFormatDOT:
		dotFormatter := NewDOTFormatter(nil)
		return dotFormatter.WriteDependencyGraph(response, writer)
	default:
		return fmt.Errorf("unsupported output format for dependency graph: %s", format)
	}
}

// writeDependencyGraphJSON writes dependency graph as JSON
func (f *OutputFormatterImpl) writeDependencyGraphJSON(response *domain.DependencyGraphResponse, writer io.Writer) error {
	return WriteJSON(writer, response)
}

// writeDependencyGraphText writes dependency graph as plain text
func (f *OutputFormatterImpl) writeDependencyGraphText(response *domain.DependencyGraphResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Dependency Graph Analysis ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n\n", response.Version)

	if response.Graph == nil {
		fmt.Fprintln(writer, "No graph data available.")
		return nil
	}

	graph := response.Graph
	analysis := response.Analysis

	fmt.Fprintln(writer, "Summary:")
	fmt.Fprintf(writer, "  Total modules: %d\n", graph.NodeCount())
	fmt.Fprintf(writer, "  Total dependencies: %d\n", graph.EdgeCount())

	if analysis != nil {
		fmt.Fprintf(writer, "  Root modules (entry points): %d\n", len(analysis.RootModules))
		fmt.Fprintf(writer, "  Leaf modules (no dependencies): %d\n", len(analysis.LeafModules))
		fmt.Fprintf(writer, "  Max depth: %d\n", analysis.MaxDepth)
	}
	fmt.Fprintln(writer)

	if analysis != nil && analysis.Circular != nil && analysis.Circular.HasCircularDependencies {
		cd := analysis.Circular
		fmt.Fprintln(writer, "Circular Dependencies:")
		fmt.Fprintf(writer, "  Total cycles: %d\n", cd.TotalCycles)
		fmt.Fprintf(writer, "  Modules in cycles: %d\n", cd.TotalModulesInCycles)
		fmt.Fprintln(writer)

		for i, cycle := range cd.CircularDependencies {
			fmt.Fprintf(writer, "  Cycle %d [%s]:\n", i+1, cycle.Severity)
			for _, mod := range cycle.Modules {
				fmt.Fprintf(writer, "    - %s\n", mod)
			}
		}
		fmt.Fprintln(writer)
	}

	if analysis != nil && len(analysis.LongestChains) > 0 {
		fmt.Fprintln(writer, "Longest Chains:")
		for _, chain := range analysis.LongestChains {
			fmt.Fprintf(writer, "  %s -> %s (length %d)\n", chain.From, chain.To, chain.Length)
		}
		fmt.Fprintln(writer)
	}

	if analysis != nil && len(analysis.RootModules) > 0 {
		fmt.Fprintln(writer, "Entry Points:")
		for _, mod := range analysis.RootModules {
			fmt.Fprintf(writer, "  - %s\n", mod)
		}
		fmt.Fprintln(writer)
	}

	if len(response.Warnings) > 0 {
		fmt.Fprintln(writer, "Warnings:")
		for _, w := range response.Warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
		fmt.Fprintln(writer)
	}

	if len(response.Errors) > 0 {
		fmt.Fprintln(writer, "Errors:")
		for _, e := range response.Errors {
			fmt.Fprintf(writer, "  - %s\n", e)
		}
		fmt.Fprintln(writer)
	}

	return nil
}
