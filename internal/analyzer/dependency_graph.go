// Package analyzer builds a visualizable dependency graph over a file set,
// grounded on the teacher's DependencyGraphBuilder node/edge construction
// pattern but sourced from internal/extractor and internal/resolver instead
// of the teacher's retired module analyzer.
package analyzer

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/reach/domain"
	"github.com/ludo-technologies/reach/internal/extractor"
	"github.com/ludo-technologies/reach/internal/resolver"
)

// DependencyGraphBuilderConfig configures the DependencyGraphBuilder.
type DependencyGraphBuilderConfig struct {
	// IncludeExternal includes external modules (node_modules, builtins) in the graph.
	IncludeExternal bool

	// IncludeTypeImports is carried for parity with the resolve-options surface;
	// this graph does not distinguish type-only edges (see SPEC_FULL.md §4.1).
	IncludeTypeImports bool
}

// DefaultDependencyGraphBuilderConfig returns a config with sensible defaults.
func DefaultDependencyGraphBuilderConfig() *DependencyGraphBuilderConfig {
	return &DependencyGraphBuilderConfig{
		IncludeExternal:    false,
		IncludeTypeImports: true,
	}
}

// DependencyGraphBuilder builds a visualizable DependencyGraph directly from
// a set of source files, using the same extractor/resolver pipeline the
// affected-set engine uses.
type DependencyGraphBuilder struct {
	config   *DependencyGraphBuilderConfig
	resolver *resolver.Resolver
}

// NewDependencyGraphBuilder creates a new DependencyGraphBuilder.
func NewDependencyGraphBuilder(config *DependencyGraphBuilderConfig, res *resolver.Resolver) *DependencyGraphBuilder {
	if config == nil {
		config = DefaultDependencyGraphBuilderConfig()
	}
	if res == nil {
		res = resolver.New(domain.ResolveOptions{})
	}
	return &DependencyGraphBuilder{config: config, resolver: res}
}

// BuildGraphFromFiles reads and parses every file in paths and constructs
// the dependency graph among them, plus external nodes for any resolved
// target outside the input set.
func (b *DependencyGraphBuilder) BuildGraphFromFiles(paths []string) (*domain.DependencyGraph, []string) {
	graph := domain.NewDependencyGraph()
	var warnings []string

	knownNodeIDs := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			warnings = append(warnings, "Cannot resolve path: "+p)
			continue
		}
		knownNodeIDs[b.normalizeModuleID(abs)] = true
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		graph.AddNode(b.createModuleNode(abs))
	}

	parsed := b.parseFiles(paths)
	for _, pf := range parsed {
		warnings = append(warnings, pf.warnings...)

		for _, specifier := range pf.specifiers {
			edge, targetNode := b.buildEdge(pf.fromID, pf.dir, specifier, knownNodeIDs)
			if edge == nil {
				continue
			}
			if targetNode.IsExternal && !b.config.IncludeExternal {
				continue
			}
			if graph.GetNode(edge.To) == nil {
				graph.AddNode(targetNode)
			}
			graph.AddEdge(edge)
		}
	}

	graph.UpdateNodeFlags()
	return graph, warnings
}

// parsedFile holds the extraction result for one source file: the
// specifiers it imports plus any diagnostics/warnings collecting them
// produced. fromID/dir are precomputed so the sequential edge-building
// pass below never needs to re-derive them.
type parsedFile struct {
	fromID     string
	dir        string
	specifiers []string
	warnings   []string
}

// parseFiles reads and extracts import specifiers from every file in paths
// concurrently (parsing is independent per file; see spec.md §5's
// allowance for parallelizing this step), bounded by GOMAXPROCS. Results
// are returned in input order so that graph construction stays
// deterministic regardless of which goroutine finishes first.
func (b *DependencyGraphBuilder) parseFiles(paths []string) []parsedFile {
	results := make([]parsedFile, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, p := range paths {
		g.Go(func() error {
			abs, err := filepath.Abs(p)
			if err != nil {
				return nil
			}

			pf := parsedFile{
				fromID: b.normalizeModuleID(abs),
				dir:    filepath.Dir(abs),
			}

			kind, ok := extractor.SourceKindFor(abs)
			if !ok {
				results[i] = pf
				return nil
			}

			data, err := os.ReadFile(abs)
			if err != nil {
				pf.warnings = append(pf.warnings, "Cannot read file: "+abs)
				results[i] = pf
				return nil
			}

			result := extractor.Extract(abs, data, kind)
			pf.warnings = append(pf.warnings, result.Diagnostics...)
			pf.specifiers = result.Specifiers
			results[i] = pf
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func (b *DependencyGraphBuilder) buildEdge(fromID, dir, specifier string, knownNodeIDs map[string]bool) (*domain.DependencyEdge, *domain.ModuleNode) {
	moduleType := classifySpecifier(specifier)

	resolved, resErr := b.resolver.Resolve(dir, specifier)
	if resErr != nil {
		if resErr.Kind != resolver.ResolveErrorBuiltin {
			return nil, nil
		}
		toID := specifier
		return &domain.DependencyEdge{From: fromID, To: toID, EdgeType: domain.EdgeTypeImport, Weight: 1},
			&domain.ModuleNode{ID: toID, Name: specifier, ModuleType: domain.ModuleTypeBuiltin, IsExternal: true}
	}

	toID := b.normalizeModuleID(resolved)
	vendored := !knownNodeIDs[toID] && strings.Contains(filepath.ToSlash(resolved), "/node_modules/")
	if vendored {
		moduleType = domain.ModuleTypePackage
	}

	name := strings.TrimSuffix(filepath.Base(resolved), filepath.Ext(resolved))
	node := &domain.ModuleNode{ID: toID, Name: name, FilePath: resolved, ModuleType: moduleType, IsExternal: !knownNodeIDs[toID]}
	return &domain.DependencyEdge{From: fromID, To: toID, EdgeType: domain.EdgeTypeImport, Weight: 1}, node
}

func classifySpecifier(specifier string) domain.ModuleType {
	switch {
	case strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../"):
		return domain.ModuleTypeRelative
	case strings.HasPrefix(specifier, "/"):
		return domain.ModuleTypeAbsolute
	case extractor.IsBuiltin(specifier):
		return domain.ModuleTypeBuiltin
	case strings.HasPrefix(specifier, "@") && !strings.Contains(specifier, "/"):
		return domain.ModuleTypePackage
	default:
		return domain.ModuleTypePackage
	}
}

func (b *DependencyGraphBuilder) normalizeModuleID(absPath string) string {
	return filepath.ToSlash(absPath)
}

func (b *DependencyGraphBuilder) createModuleNode(absPath string) *domain.ModuleNode {
	name := filepath.Base(absPath)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	return &domain.ModuleNode{
		ID:         b.normalizeModuleID(absPath),
		Name:       name,
		FilePath:   absPath,
		ModuleType: domain.ModuleTypeRelative,
		IsExternal: false,
	}
}
