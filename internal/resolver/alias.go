package resolver

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/ludo-technologies/reach/domain"
)

// aliasIgnoreMarker is the literal alias-target value meaning "resolve to
// nothing, silently" (spec.md §6's "Ignore" marker).
const aliasIgnoreMarker = "Ignore"

// resolveAlias finds the longest-prefix alias match for specifier, using
// the caller-supplied Alias map merged with any tsconfig-derived paths for
// the nearest project file to baseDir, per TSConfigRefs mode.
func (r *Resolver) resolveAlias(baseDir, specifier string) (string, bool) {
	aliases := r.aliasesForDir(baseDir)
	if len(aliases) == 0 {
		return "", false
	}

	prefix, targets, ok := longestMatchingAlias(specifier, aliases)
	if !ok || len(targets) == 0 {
		return "", false
	}

	target := targets[0]
	if target == aliasIgnoreMarker {
		return aliasIgnoreMarker, true
	}

	rest := strings.TrimPrefix(specifier, prefix)
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		return filepath.Clean(target), true
	}
	return filepath.Clean(filepath.Join(target, rest)), true
}

// aliasesForDir returns the effective alias map (prefix -> ordered target
// list) for a file living in dir: the caller-supplied Alias map, plus
// tsconfig compilerOptions.paths/baseUrl when TSConfigRefs requests it,
// cached per directory.
func (r *Resolver) aliasesForDir(dir string) map[string][]string {
	r.mu.Lock()
	if cached, ok := r.aliasCache[dir]; ok {
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	merged := make(map[string][]string, len(r.opts.Alias))
	for k, v := range r.opts.Alias {
		merged[k] = append([]string(nil), v...)
	}

	if r.opts.TSConfigRefs != domain.TSConfigRefsDisabled {
		if tsAliases := r.tsconfigAliasesForDir(dir); tsAliases != nil {
			for prefix, targets := range tsAliases {
				if r.opts.TSConfigRefs == domain.TSConfigRefsManual {
					// Manual: caller's Alias map wins on conflicts.
					if _, exists := merged[prefix]; exists {
						continue
					}
				}
				merged[prefix] = targets
			}
		}
	}

	r.mu.Lock()
	r.aliasCache[dir] = merged
	r.mu.Unlock()

	return merged
}

// longestMatchingAlias returns the alias entry whose prefix is the longest
// match for specifier (exact match or "prefix/" boundary), mirroring
// FindLongestMatchingAlias in the react-analyzer resolver this package is
// grounded on.
func longestMatchingAlias(specifier string, aliases map[string][]string) (string, []string, bool) {
	prefixes := make([]string, 0, len(aliases))
	for prefix := range aliases {
		prefixes = append(prefixes, prefix)
	}
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })

	for _, prefix := range prefixes {
		trimmed := strings.TrimSuffix(prefix, "/*")
		if specifier == trimmed || strings.HasPrefix(specifier, trimmed+"/") {
			return trimmed, aliases[prefix], true
		}
	}
	return "", nil, false
}
