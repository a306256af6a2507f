// Package affected implements the BFS-with-dependents-map traversal that
// decides, for a set of candidate test files and a set of changed files,
// which tests are affected by the change — grounded on the dependents-map
// algorithm this repository chose over original_source/src/affected.rs's
// whole-path-tracking traversal (see DESIGN.md for the redesign rationale).
package affected

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/reach/domain"
	"github.com/ludo-technologies/reach/internal/extractor"
	"github.com/ludo-technologies/reach/internal/resolver"
)

// RawDiagnostic is one unformatted diagnostic collected during traversal:
// a message plus the source file it concerns, if any. FormatDiagnostics
// turns these into the caller-facing string list.
type RawDiagnostic struct {
	Message string
	File    string
}

// CollectAffected runs the traversal described by the dependents-map
// algorithm: starting from testRoots, it walks the static import graph,
// marking a file affected when it is in changedRoots or imports a file
// already known to be affected, then reports which test-root labels ended
// up affected.
//
// cwd is the directory every relative path in testRoots/changedRoots is
// joined against; callers pass it explicitly (rather than this package
// calling os.Getwd itself) so the traversal is deterministic under test.
//
// progress, if non-nil, receives one increment per dequeued path — purely
// observational, never consulted for correctness.
func CollectAffected(cwd string, testRoots []string, changedRoots []string, res *resolver.Resolver, progress domain.ProgressManager) (paths []string, diagnostics []RawDiagnostic, err error) {
	affectedSet := make(map[string]bool, len(changedRoots))
	for _, c := range changedRoots {
		affectedSet[canonicalize(cwd, c)] = true
	}

	dependents := make(map[string][]string)
	enqueued := make(map[string]bool)

	labelsByPath := make(map[string][]string, len(testRoots))
	var queue []string
	for _, label := range testRoots {
		abs := canonicalize(cwd, label)
		labelsByPath[abs] = append(labelsByPath[abs], label)
		if affectedSet[abs] {
			continue
		}
		if !enqueued[abs] {
			queue = append(queue, abs)
			enqueued[abs] = true
		}
	}

	var task domain.TaskProgress
	if progress != nil {
		task = progress.StartTask("Scanning import graph", 0)
		defer task.Complete()
	}

	moduleComponents := res.ModulePathComponents()

	propagate := func(x string) {
		var stack []string
		if !affectedSet[x] {
			affectedSet[x] = true
		}
		stack = append(stack, x)
		for len(stack) > 0 {
			n := len(stack) - 1
			cur := stack[n]
			stack = stack[:n]
			for _, y := range dependents[cur] {
				if !affectedSet[y] {
					affectedSet[y] = true
					stack = append(stack, y)
				}
			}
		}
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if task != nil {
			task.Increment(1)
		}

		if affectedSet[p] {
			propagate(p)
			continue
		}

		kind, ok := extractor.SourceKindFor(p)
		if !ok {
			continue
		}

		data, readErr := os.ReadFile(p)
		if readErr != nil {
			diagnostics = append(diagnostics, RawDiagnostic{Message: fmt.Sprintf("Cannot read file: %s", p)})
			continue
		}

		result := extractor.Extract(p, data, kind)
		for _, d := range result.Diagnostics {
			diagnostics = append(diagnostics, RawDiagnostic{Message: d, File: p})
		}

		dir := filepath.Dir(p)
		for _, specifier := range result.Specifiers {
			q, resErr := res.Resolve(dir, specifier)
			if resErr != nil {
				if resErr.Kind == resolver.ResolveErrorBuiltin {
					continue
				}
				diagnostics = append(diagnostics, RawDiagnostic{
					Message: fmt.Sprintf("Cannot resolve %q", specifier),
					File:    p,
				})
				continue
			}

			if affectedSet[q] {
				propagate(p)
				continue
			}
			if _, discovered := dependents[q]; discovered {
				dependents[q] = append(dependents[q], p)
				continue
			}

			dependents[q] = []string{p}
			if hasVendoredComponent(q, moduleComponents) {
				continue
			}
			if !enqueued[q] {
				queue = append(queue, q)
				enqueued[q] = true
			}
		}
	}

	for _, label := range testRoots {
		abs := canonicalize(cwd, label)
		if affectedSet[abs] {
			paths = append(paths, label)
		}
	}

	return paths, diagnostics, nil
}

func canonicalize(cwd, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(cwd, p))
}

func hasVendoredComponent(path string, components []string) bool {
	if len(components) == 0 {
		return false
	}
	set := make(map[string]bool, len(components))
	for _, c := range components {
		set[c] = true
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if set[part] {
			return true
		}
	}
	return false
}
