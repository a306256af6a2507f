package service

import (
	"context"
	"sort"
	"time"

	"github.com/ludo-technologies/reach/domain"
	"github.com/ludo-technologies/reach/internal/analyzer"
	"github.com/ludo-technologies/reach/internal/resolver"
	"github.com/ludo-technologies/reach/internal/version"
)

// DependencyGraphServiceImpl implements dependency graph analysis
type DependencyGraphServiceImpl struct {
	graphBuilderConfig *analyzer.DependencyGraphBuilderConfig
	resolveOptions     domain.ResolveOptions
}

// NewDependencyGraphService creates a new dependency graph service
func NewDependencyGraphService(includeExternal, includeTypeImports bool) *DependencyGraphServiceImpl {
	return &DependencyGraphServiceImpl{
		graphBuilderConfig: &analyzer.DependencyGraphBuilderConfig{
			IncludeExternal:    includeExternal,
			IncludeTypeImports: includeTypeImports,
		},
		resolveOptions: domain.DefaultResolveOptions(),
	}
}

// NewDependencyGraphServiceWithDefaults creates a new service with default configuration
func NewDependencyGraphServiceWithDefaults() *DependencyGraphServiceImpl {
	return &DependencyGraphServiceImpl{
		graphBuilderConfig: analyzer.DefaultDependencyGraphBuilderConfig(),
		resolveOptions:     domain.DefaultResolveOptions(),
	}
}

// WithResolveOptions overrides the resolver configuration used to resolve
// import specifiers while building the graph.
func (s *DependencyGraphServiceImpl) WithResolveOptions(opts domain.ResolveOptions) *DependencyGraphServiceImpl {
	s.resolveOptions = opts
	return s
}

// Analyze performs complete dependency graph analysis
func (s *DependencyGraphServiceImpl) Analyze(ctx context.Context, req domain.DependencyGraphRequest) (*domain.DependencyGraphResponse, error) {
	var warnings []string
	var errors []string

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// Apply request options to config
	config := *s.graphBuilderConfig
	if req.IncludeExternal != nil {
		config.IncludeExternal = *req.IncludeExternal
	}
	if req.IncludeTypeImports != nil {
		config.IncludeTypeImports = *req.IncludeTypeImports
	}

	if len(req.Paths) == 0 {
		return &domain.DependencyGraphResponse{
			Graph:       domain.NewDependencyGraph(),
			Analysis:    &domain.DependencyAnalysisResult{},
			Warnings:    warnings,
			Errors:      errors,
			GeneratedAt: time.Now().Format(time.RFC3339),
			Version:     version.GetVersion(),
		}, nil
	}

	res := resolver.New(s.resolveOptions)
	graphBuilder := analyzer.NewDependencyGraphBuilder(&config, res)
	graph, buildWarnings := graphBuilder.BuildGraphFromFiles(req.Paths)
	warnings = append(warnings, buildWarnings...)

	// Detect cycles
	var circularDeps *domain.CircularDependencyAnalysis
	if req.DetectCycles == nil || *req.DetectCycles {
		cycleDetector := analyzer.NewCircularDependencyDetector()
		circularDeps = cycleDetector.DetectCycles(graph)
	}

	maxDepth := s.calculateMaxDepth(graph)
	analysis := s.buildAnalysisResult(graph, circularDeps, maxDepth)

	return &domain.DependencyGraphResponse{
		Graph:       graph,
		Analysis:    analysis,
		Warnings:    warnings,
		Errors:      errors,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}, nil
}

// calculateMaxDepth returns the longest chain length starting from any entry
// point in the graph, via a DFS bounded by cycle-safe visited tracking.
func (s *DependencyGraphServiceImpl) calculateMaxDepth(graph *domain.DependencyGraph) int {
	maxDepth := 0
	for nodeID, node := range graph.Nodes {
		if !node.IsEntryPoint {
			continue
		}
		chain := s.findLongestChainFrom(nodeID, graph)
		if len(chain)-1 > maxDepth {
			maxDepth = len(chain) - 1
		}
	}
	return maxDepth
}

// buildAnalysisResult builds a DependencyAnalysisResult from the analysis components
func (s *DependencyGraphServiceImpl) buildAnalysisResult(
	graph *domain.DependencyGraph,
	circularDeps *domain.CircularDependencyAnalysis,
	maxDepth int,
) *domain.DependencyAnalysisResult {
	var rootModules []string
	var leafModules []string

	for nodeID, node := range graph.Nodes {
		if node.IsEntryPoint {
			rootModules = append(rootModules, nodeID)
		}
		if node.IsLeaf {
			leafModules = append(leafModules, nodeID)
		}
	}

	sort.Strings(rootModules)
	sort.Strings(leafModules)

	dependencyMatrix := make(map[string][]string)
	for nodeID := range graph.Nodes {
		edges := graph.GetOutgoingEdges(nodeID)
		if len(edges) == 0 {
			continue
		}
		targets := make([]string, 0, len(edges))
		for _, edge := range edges {
			targets = append(targets, edge.To)
		}
		sort.Strings(targets)
		dependencyMatrix[nodeID] = targets
	}

	longestChains := s.findLongestChains(graph)

	return &domain.DependencyAnalysisResult{
		RootModules:      rootModules,
		LeafModules:      leafModules,
		MaxDepth:         maxDepth,
		LongestChains:    longestChains,
		DependencyMatrix: dependencyMatrix,
		Circular:         circularDeps,
	}
}

// findLongestChains finds the longest dependency chains in the graph
func (s *DependencyGraphServiceImpl) findLongestChains(graph *domain.DependencyGraph) []domain.DependencyPath {
	var chains []domain.DependencyPath

	for nodeID, node := range graph.Nodes {
		if !node.IsEntryPoint {
			continue
		}
		chain := s.findLongestChainFrom(nodeID, graph)
		if len(chain) > 1 {
			chains = append(chains, domain.DependencyPath{
				From:   chain[0],
				To:     chain[len(chain)-1],
				Path:   chain,
				Length: len(chain) - 1,
			})
		}
	}

	sort.Slice(chains, func(i, j int) bool {
		return chains[i].Length > chains[j].Length
	})

	if len(chains) > 5 {
		chains = chains[:5]
	}

	return chains
}

// findLongestChainFrom finds the longest chain starting from a node
func (s *DependencyGraphServiceImpl) findLongestChainFrom(nodeID string, graph *domain.DependencyGraph) []string {
	visited := make(map[string]bool)
	var longestPath []string

	var dfs func(current string, path []string)
	dfs = func(current string, path []string) {
		if visited[current] {
			return
		}
		visited[current] = true
		path = append(path, current)

		if len(path) > len(longestPath) {
			longestPath = make([]string, len(path))
			copy(longestPath, path)
		}

		edges := graph.GetOutgoingEdges(current)
		for _, edge := range edges {
			if graph.GetNode(edge.To) != nil && !visited[edge.To] {
				dfs(edge.To, path)
			}
		}

		visited[current] = false
	}

	dfs(nodeID, nil)
	return longestPath
}
