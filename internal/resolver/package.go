package resolver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// packageJSON is the subset of package.json this resolver reads: the
// "main" and "module" entry-point fields. Name and Exports are decoded but
// not consulted during resolution.
type packageJSON struct {
	Name   string            `json:"name"`
	Main   string            `json:"main"`
	Module string            `json:"module"`
	Exports json.RawMessage  `json:"exports"`
	fields map[string]string `json:"-"`
}

// resolvePackage looks up specifier as a package import: it walks up from
// baseDir through each configured vendored-directory name (default
// node_modules), picking the package's main-field entry or an index file.
// A node_modules entry that is a symlink is followed transparently,
// resolving workspace packages (spec §8 scenario 9) the same way any other
// package is resolved.
func (r *Resolver) resolvePackage(baseDir, specifier string) (string, bool) {
	packageName, subpath := splitPackageSpecifier(specifier)

	for _, dir := range ancestorDirs(baseDir) {
		for _, modulesDir := range r.ModulePathComponents() {
			pkgDir := filepath.Join(dir, modulesDir, packageName)
			if !dirExists(pkgDir) {
				continue
			}

			if r.symlinksEnabled() {
				if real, err := filepath.EvalSymlinks(pkgDir); err == nil {
					pkgDir = real
				}
			}

			if subpath != "" {
				target := filepath.Join(pkgDir, subpath)
				if resolved, ok := r.probeFile(target); ok {
					return resolved, true
				}
				continue
			}

			if resolved, ok := r.resolvePackageEntry(pkgDir); ok {
				return resolved, true
			}
		}
	}

	return "", false
}

// resolvePackageEntry reads pkgDir/package.json and resolves its
// declared entry point, trying ResolveOptions.MainFields in order (only
// "main" and "module" are recognized; other names are skipped), falling
// back to an index file.
func (r *Resolver) resolvePackageEntry(pkgDir string) (string, bool) {
	if pkg := readPackageJSON(filepath.Join(pkgDir, "package.json")); pkg != nil {
		for _, field := range r.mainFieldsOrder() {
			if entry := pkg.fields[field]; entry != "" {
				target := filepath.Join(pkgDir, entry)
				if resolved, ok := r.probeFile(target); ok {
					return resolved, true
				}
			}
		}
	}

	return r.probeFile(filepath.Join(pkgDir, "index"))
}

func (r *Resolver) mainFieldsOrder() []string {
	if len(r.opts.MainFields) == 0 {
		return []string{"module", "main"}
	}
	return r.opts.MainFields
}

func readPackageJSON(path string) *packageJSON {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil
	}
	pkg.fields = map[string]string{"main": pkg.Main, "module": pkg.Module}
	return &pkg
}

// splitPackageSpecifier separates a package specifier into its package
// name (respecting @scope/name) and the remaining subpath, if any.
func splitPackageSpecifier(specifier string) (name, subpath string) {
	parts := strings.SplitN(specifier, "/", 2)
	if strings.HasPrefix(specifier, "@") && len(parts) == 2 {
		scopedParts := strings.SplitN(parts[1], "/", 2)
		name = parts[0] + "/" + scopedParts[0]
		if len(scopedParts) == 2 {
			subpath = scopedParts[1]
		}
		return name, subpath
	}
	name = parts[0]
	if len(parts) == 2 {
		subpath = parts[1]
	}
	return name, subpath
}

// ancestorDirs returns dir and each of its ancestors up to the filesystem
// root, innermost first, matching the conventional node_modules walk.
func ancestorDirs(dir string) []string {
	var dirs []string
	for {
		dirs = append(dirs, dir)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return dirs
}

func dirExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
