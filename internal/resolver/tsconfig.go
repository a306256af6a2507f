package resolver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// tsconfigFile is the subset of a tsconfig.json this resolver consults:
// compilerOptions.paths/baseUrl for alias derivation, and "extends" for
// following a project-reference chain (original_source's
// TsconfigReferences field generalizes to "extends" here since this
// repository doesn't model full TypeScript project references).
type tsconfigFile struct {
	Extends         string `json:"extends"`
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

// tsconfigAliasesForDir walks up from dir to find the nearest tsconfig.json
// (or the caller-configured ResolveOptions.TSConfig path, if set), follows
// its "extends" chain, and returns a merged prefix -> targets alias map
// derived from compilerOptions.paths resolved against baseUrl.
func (r *Resolver) tsconfigAliasesForDir(dir string) map[string][]string {
	configPath := r.opts.TSConfig
	if configPath == "" {
		configPath = findNearestTSConfig(dir)
	}
	if configPath == "" {
		return nil
	}
	configPath = absPath(configPath)

	cfg, baseURL := r.loadTSConfigChain(configPath)
	if cfg == nil || len(cfg.CompilerOptions.Paths) == 0 {
		return nil
	}

	aliases := make(map[string][]string, len(cfg.CompilerOptions.Paths))
	for pattern, targets := range cfg.CompilerOptions.Paths {
		resolved := make([]string, 0, len(targets))
		for _, target := range targets {
			cleanTarget := strings.TrimSuffix(target, "/*")
			resolved = append(resolved, filepath.Join(baseURL, cleanTarget))
		}
		aliases[pattern] = resolved
	}
	return aliases
}

// loadTSConfigChain parses configPath and follows "extends" until it finds
// a file declaring compilerOptions.paths (the nearest declaration wins, as
// TypeScript itself does not merge "paths" across a project-reference
// chain). Returns the resolved baseUrl directory alongside the config.
func (r *Resolver) loadTSConfigChain(configPath string) (*tsconfigFile, string) {
	seen := make(map[string]bool)
	current := configPath

	for current != "" && !seen[current] {
		seen[current] = true

		cfg := r.loadTSConfigFile(current)
		if cfg == nil {
			return nil, ""
		}

		dir := filepath.Dir(current)
		if len(cfg.CompilerOptions.Paths) > 0 {
			baseURL := dir
			if cfg.CompilerOptions.BaseURL != "" {
				baseURL = filepath.Join(dir, cfg.CompilerOptions.BaseURL)
			}
			return cfg, baseURL
		}

		if cfg.Extends == "" {
			return nil, ""
		}
		current = absPath(filepath.Join(dir, cfg.Extends))
		if !strings.HasSuffix(current, ".json") {
			current += ".json"
		}
	}

	return nil, ""
}

func (r *Resolver) loadTSConfigFile(path string) *tsconfigFile {
	r.tsconfigMu.Lock()
	if cached, ok := r.tsconfigCache[path]; ok {
		r.tsconfigMu.Unlock()
		return cached
	}
	r.tsconfigMu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var cfg tsconfigFile
	if err := json.Unmarshal(stripJSONComments(data), &cfg); err != nil {
		return nil
	}

	r.tsconfigMu.Lock()
	r.tsconfigCache[path] = &cfg
	r.tsconfigMu.Unlock()

	return &cfg
}

// findNearestTSConfig walks up from dir looking for tsconfig.json.
func findNearestTSConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, "tsconfig.json")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// stripJSONComments does a minimal pass to tolerate tsconfig.json's
// line-comment convention, which encoding/json otherwise rejects.
func stripJSONComments(data []byte) []byte {
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return []byte(strings.Join(lines, "\n"))
}
