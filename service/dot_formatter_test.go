package service

import (
	"strings"
	"testing"

	"github.com/ludo-technologies/reach/domain"
)

func buildSimpleDOTGraph() *domain.DependencyGraph {
	graph := domain.NewDependencyGraph()
	graph.AddNode(&domain.ModuleNode{ID: "a.js", Name: "a", ModuleType: domain.ModuleTypeRelative})
	graph.AddNode(&domain.ModuleNode{ID: "b.js", Name: "b", ModuleType: domain.ModuleTypeRelative})
	graph.AddEdge(&domain.DependencyEdge{From: "a.js", To: "b.js", EdgeType: domain.EdgeTypeImport, Weight: 1})
	graph.UpdateNodeFlags()
	return graph
}

func TestDefaultDOTFormatterConfig(t *testing.T) {
	config := DefaultDOTFormatterConfig()
	if !config.ClusterCycles {
		t.Error("expected ClusterCycles to default true")
	}
	if !config.ShowLegend {
		t.Error("expected ShowLegend to default true")
	}
	if config.RankDir != "TB" {
		t.Errorf("expected default RankDir TB, got %s", config.RankDir)
	}
}

func TestDOTFormatter_FormatDependencyGraph(t *testing.T) {
	graph := buildSimpleDOTGraph()
	response := &domain.DependencyGraphResponse{
		Graph:       graph,
		Analysis:    &domain.DependencyAnalysisResult{},
		GeneratedAt: "2026-07-31T00:00:00Z",
		Version:     "dev",
	}

	formatter := NewDOTFormatter(nil)
	out, err := formatter.FormatDependencyGraph(response)
	if err != nil {
		t.Fatalf("FormatDependencyGraph returned error: %v", err)
	}
	if !strings.Contains(out, "digraph") {
		t.Errorf("expected digraph header, got: %s", out)
	}
	if !strings.Contains(out, "a_js") || !strings.Contains(out, "b_js") {
		t.Errorf("expected both nodes rendered, got: %s", out)
	}
}

func TestDOTFormatter_NilGraph(t *testing.T) {
	response := &domain.DependencyGraphResponse{
		GeneratedAt: "2026-07-31T00:00:00Z",
		Version:     "dev",
	}
	formatter := NewDOTFormatter(nil)
	_, err := formatter.FormatDependencyGraph(response)
	if err == nil {
		t.Fatal("expected error for nil graph")
	}
}

func TestDOTFormatter_LegendDisabled(t *testing.T) {
	graph := buildSimpleDOTGraph()
	response := &domain.DependencyGraphResponse{
		Graph:       graph,
		Analysis:    &domain.DependencyAnalysisResult{},
		GeneratedAt: "2026-07-31T00:00:00Z",
		Version:     "dev",
	}

	config := DefaultDOTFormatterConfig()
	config.ShowLegend = false
	formatter := NewDOTFormatter(config)
	out, err := formatter.FormatDependencyGraph(response)
	if err != nil {
		t.Fatalf("FormatDependencyGraph returned error: %v", err)
	}
	if strings.Contains(out, "Legend") {
		t.Errorf("expected no legend section when disabled, got: %s", out)
	}
}

func TestDOTFormatter_CycleClustering(t *testing.T) {
	graph := domain.NewDependencyGraph()
	graph.AddNode(&domain.ModuleNode{ID: "a.js", Name: "a"})
	graph.AddNode(&domain.ModuleNode{ID: "b.js", Name: "b"})
	graph.AddEdge(&domain.DependencyEdge{From: "a.js", To: "b.js", EdgeType: domain.EdgeTypeImport, Weight: 1})
	graph.AddEdge(&domain.DependencyEdge{From: "b.js", To: "a.js", EdgeType: domain.EdgeTypeImport, Weight: 1})
	graph.UpdateNodeFlags()

	response := &domain.DependencyGraphResponse{
		Graph: graph,
		Analysis: &domain.DependencyAnalysisResult{
			Circular: &domain.CircularDependencyAnalysis{
				HasCircularDependencies: true,
				TotalCycles:             1,
				CircularDependencies: []domain.CircularDependency{
					{Modules: []string{"a.js", "b.js"}, Severity: domain.CycleSeverityHigh},
				},
			},
		},
		GeneratedAt: "2026-07-31T00:00:00Z",
		Version:     "dev",
	}

	formatter := NewDOTFormatter(nil)
	out, err := formatter.FormatDependencyGraph(response)
	if err != nil {
		t.Fatalf("FormatDependencyGraph returned error: %v", err)
	}
	if !strings.Contains(out, "cluster") {
		t.Errorf("expected a cycle cluster subgraph, got: %s", out)
	}
}
