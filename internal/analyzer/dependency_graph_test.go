package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/reach/domain"
)

func TestDefaultDependencyGraphBuilderConfig(t *testing.T) {
	config := DefaultDependencyGraphBuilderConfig()

	if config.IncludeExternal != false {
		t.Errorf("Expected IncludeExternal to be false, got %v", config.IncludeExternal)
	}
	if config.IncludeTypeImports != true {
		t.Errorf("Expected IncludeTypeImports to be true, got %v", config.IncludeTypeImports)
	}
}

func TestNewDependencyGraphBuilder(t *testing.T) {
	builder := NewDependencyGraphBuilder(nil, nil)
	if builder == nil {
		t.Fatal("Expected builder to not be nil")
	}
	if builder.config == nil {
		t.Fatal("Expected config to not be nil")
	}
	if builder.resolver == nil {
		t.Fatal("Expected resolver to not be nil")
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBuildGraphFromSimpleImports(t *testing.T) {
	dir := t.TempDir()
	appPath := filepath.Join(dir, "app.js")
	helpersPath := filepath.Join(dir, "helpers.js")

	writeTestFile(t, appPath, `
import React from 'react';
import { helper } from './helpers';
`)
	writeTestFile(t, helpersPath, `export function helper() {}`)

	config := DefaultDependencyGraphBuilderConfig()
	config.IncludeExternal = true
	builder := NewDependencyGraphBuilder(config, nil)

	graph, warnings := builder.BuildGraphFromFiles([]string{appPath, helpersPath})
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if graph == nil {
		t.Fatal("Expected graph to not be nil")
	}

	appID := filepath.ToSlash(appPath)
	if graph.GetNode(appID) == nil {
		t.Error("Expected source file node to exist")
	}

	edges := graph.GetOutgoingEdges(appID)
	if len(edges) == 0 {
		t.Error("Expected at least one edge")
	}
}

func TestBuildGraphWithDynamicImports(t *testing.T) {
	dir := t.TempDir()
	appPath := filepath.Join(dir, "app.js")
	dynPath := filepath.Join(dir, "dynamic-module.js")

	writeTestFile(t, appPath, `
const module = await import('./dynamic-module');
`)
	writeTestFile(t, dynPath, `export const x = 1;`)

	builder := NewDependencyGraphBuilder(nil, nil)
	graph, _ := builder.BuildGraphFromFiles([]string{appPath, dynPath})

	appID := filepath.ToSlash(appPath)
	edges := graph.GetOutgoingEdges(appID)
	if len(edges) == 0 {
		t.Skip("Dynamic imports not detected by extractor - this is parser-dependent")
	}
}

func TestBuildGraphWithTypeOnlyImports(t *testing.T) {
	dir := t.TempDir()
	appPath := filepath.Join(dir, "app.ts")
	typesPath := filepath.Join(dir, "types.ts")
	utilsPath := filepath.Join(dir, "utils.ts")

	writeTestFile(t, appPath, `
import type { User } from './types';
import { normalImport } from './utils';
`)
	writeTestFile(t, typesPath, `export interface User { id: string }`)
	writeTestFile(t, utilsPath, `export function normalImport() {}`)

	config := DefaultDependencyGraphBuilderConfig()
	builder := NewDependencyGraphBuilder(config, nil)
	graph, _ := builder.BuildGraphFromFiles([]string{appPath, typesPath, utilsPath})

	appID := filepath.ToSlash(appPath)
	edges := graph.GetOutgoingEdges(appID)
	if len(edges) == 0 {
		t.Error("Expected at least one edge")
	}
}

func TestBuildGraphExcludesExternalModules(t *testing.T) {
	dir := t.TempDir()
	appPath := filepath.Join(dir, "app.js")
	helpersPath := filepath.Join(dir, "helpers.js")

	writeTestFile(t, appPath, `
import React from 'react';
import { helper } from './helpers';
`)
	writeTestFile(t, helpersPath, `export function helper() {}`)
	writeTestFile(t, filepath.Join(dir, "node_modules", "react", "package.json"), `{"name":"react","main":"index.js"}`)
	writeTestFile(t, filepath.Join(dir, "node_modules", "react", "index.js"), ``)
	reactID := filepath.ToSlash(filepath.Join(dir, "node_modules", "react", "index.js"))

	config := DefaultDependencyGraphBuilderConfig()
	config.IncludeExternal = false
	builder := NewDependencyGraphBuilder(config, nil)
	graph, _ := builder.BuildGraphFromFiles([]string{appPath, helpersPath})

	if graph.GetNode(reactID) != nil {
		t.Error("Expected react node to not exist when external modules excluded")
	}

	config.IncludeExternal = true
	builder = NewDependencyGraphBuilder(config, nil)
	graph, _ = builder.BuildGraphFromFiles([]string{appPath, helpersPath})

	if graph.GetNode(reactID) == nil {
		t.Error("Expected react node to exist when external modules included")
	}
}

func TestBuildGraphUpdatesNodeFlags(t *testing.T) {
	graph := domain.NewDependencyGraph()

	graph.AddNode(&domain.ModuleNode{ID: "a", Name: "a"})
	graph.AddNode(&domain.ModuleNode{ID: "b", Name: "b"})
	graph.AddNode(&domain.ModuleNode{ID: "c", Name: "c"})

	graph.AddEdge(&domain.DependencyEdge{From: "a", To: "b", Weight: 1})
	graph.AddEdge(&domain.DependencyEdge{From: "b", To: "c", Weight: 1})

	graph.UpdateNodeFlags()

	nodeA := graph.GetNode("a")
	if nodeA == nil {
		t.Fatal("Expected node A to exist")
	}
	if !nodeA.IsEntryPoint {
		t.Error("Expected A to be an entry point")
	}
	if nodeA.IsLeaf {
		t.Error("Expected A to not be a leaf")
	}

	nodeB := graph.GetNode("b")
	if nodeB == nil {
		t.Fatal("Expected node B to exist")
	}
	if nodeB.IsEntryPoint {
		t.Error("Expected B to not be an entry point")
	}
	if nodeB.IsLeaf {
		t.Error("Expected B to not be a leaf")
	}

	nodeC := graph.GetNode("c")
	if nodeC == nil {
		t.Fatal("Expected node C to exist")
	}
	if nodeC.IsEntryPoint {
		t.Error("Expected C to not be an entry point")
	}
	if !nodeC.IsLeaf {
		t.Error("Expected C to be a leaf")
	}
}

func TestNormalizeModuleID(t *testing.T) {
	builder := NewDependencyGraphBuilder(nil, nil)

	abs := filepath.Join(string(filepath.Separator)+"project", "src", "app.js")
	result := builder.normalizeModuleID(abs)
	expected := filepath.ToSlash(abs)
	if result != expected {
		t.Errorf("normalizeModuleID(%s) = %s, expected %s", abs, result, expected)
	}
}

func TestDependencyGraphNodeCount(t *testing.T) {
	graph := domain.NewDependencyGraph()

	if graph.NodeCount() != 0 {
		t.Error("Expected empty graph to have 0 nodes")
	}

	graph.AddNode(&domain.ModuleNode{ID: "a"})
	graph.AddNode(&domain.ModuleNode{ID: "b"})

	if graph.NodeCount() != 2 {
		t.Errorf("Expected 2 nodes, got %d", graph.NodeCount())
	}
}

func TestDependencyGraphEdgeCount(t *testing.T) {
	graph := domain.NewDependencyGraph()

	if graph.EdgeCount() != 0 {
		t.Error("Expected empty graph to have 0 edges")
	}

	graph.AddEdge(&domain.DependencyEdge{From: "a", To: "b"})
	graph.AddEdge(&domain.DependencyEdge{From: "b", To: "c"})

	if graph.EdgeCount() != 2 {
		t.Errorf("Expected 2 edges, got %d", graph.EdgeCount())
	}
}

func TestDependencyGraphReverseEdges(t *testing.T) {
	graph := domain.NewDependencyGraph()

	graph.AddNode(&domain.ModuleNode{ID: "a"})
	graph.AddNode(&domain.ModuleNode{ID: "b"})
	graph.AddEdge(&domain.DependencyEdge{From: "a", To: "b"})

	outgoing := graph.GetOutgoingEdges("a")
	if len(outgoing) != 1 || outgoing[0].To != "b" {
		t.Error("Expected outgoing edge from a to b")
	}

	incoming := graph.GetIncomingEdges("b")
	if len(incoming) != 1 || incoming[0].From != "a" {
		t.Error("Expected incoming edge to b from a")
	}
}

func TestBuildGraphFromEmptyFileList(t *testing.T) {
	builder := NewDependencyGraphBuilder(nil, nil)
	graph, warnings := builder.BuildGraphFromFiles(nil)

	if graph == nil {
		t.Fatal("Expected graph to not be nil even with no input files")
	}
	if graph.NodeCount() != 0 {
		t.Error("Expected empty graph")
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestBuildGraphFromFiles(t *testing.T) {
	dir := t.TempDir()
	appPath := filepath.Join(dir, "app.js")
	helperPath := filepath.Join(dir, "helper.js")

	writeTestFile(t, appPath, `
import { helper } from './helper';
export const app = 1;
`)
	writeTestFile(t, helperPath, `export function helper() {}`)

	builder := NewDependencyGraphBuilder(nil, nil)
	graph, warnings := builder.BuildGraphFromFiles([]string{appPath, helperPath})

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if graph == nil {
		t.Fatal("Expected graph to not be nil")
	}
	if graph.NodeCount() == 0 {
		t.Error("Expected at least one node")
	}
}
