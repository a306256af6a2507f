package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/reach/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolver_RelativeImport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "module.js"), "")
	writeFile(t, filepath.Join(root, "suite.spec.js"), "")

	r := New(domain.ResolveOptions{})
	got, resErr := r.Resolve(root, "./module")
	if resErr != nil {
		t.Fatalf("unexpected error: %v", resErr)
	}
	want, _ := filepath.Abs(filepath.Join(root, "module.js"))
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolver_UnresolvableSpecifier(t *testing.T) {
	root := t.TempDir()
	r := New(domain.ResolveOptions{})
	_, resErr := r.Resolve(root, "bad-import")
	if resErr == nil {
		t.Fatal("expected an error")
	}
	if resErr.Kind != ResolveErrorOther {
		t.Errorf("expected ResolveErrorOther, got %v", resErr.Kind)
	}
}

func TestResolver_BuiltinImport(t *testing.T) {
	root := t.TempDir()
	enabled := true
	r := New(domain.ResolveOptions{BuiltinModules: &enabled})
	_, resErr := r.Resolve(root, "fs")
	if resErr == nil || resErr.Kind != ResolveErrorBuiltin {
		t.Fatalf("expected ResolveErrorBuiltin, got %v", resErr)
	}

	_, resErr = r.Resolve(root, "node:path")
	if resErr == nil || resErr.Kind != ResolveErrorBuiltin {
		t.Fatalf("expected ResolveErrorBuiltin for node: prefix, got %v", resErr)
	}
}

func TestResolver_AliasViaOptions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "aliased.ts"), "")

	r := New(domain.ResolveOptions{
		Alias: map[string][]string{"@aliased": {root}},
	})
	got, resErr := r.Resolve(filepath.Join(root, "src"), "@aliased/aliased")
	if resErr != nil {
		t.Fatalf("unexpected error: %v", resErr)
	}
	want, _ := filepath.Abs(filepath.Join(root, "aliased.ts"))
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolver_AliasIgnoreMarker(t *testing.T) {
	root := t.TempDir()
	r := New(domain.ResolveOptions{
		Alias: map[string][]string{"@ignored": {"Ignore"}},
	})
	_, resErr := r.Resolve(root, "@ignored/anything")
	if resErr == nil {
		t.Fatal("expected ignored alias to fail to resolve")
	}
}

func TestResolver_TSConfigPathAlias(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tsconfig.json"), `{
		"compilerOptions": {
			"baseUrl": ".",
			"paths": { "@app/*": ["src/*"] }
		}
	}`)
	writeFile(t, filepath.Join(root, "src", "widget.ts"), "")

	r := New(domain.ResolveOptions{TSConfigRefs: domain.TSConfigRefsAuto})
	got, resErr := r.Resolve(filepath.Join(root, "test"), "@app/widget")
	if resErr != nil {
		t.Fatalf("unexpected error: %v", resErr)
	}
	want, _ := filepath.Abs(filepath.Join(root, "src", "widget.ts"))
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolver_VendoredPackage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "node_modules", "left-pad", "package.json"), `{"name":"left-pad","main":"index.js"}`)
	writeFile(t, filepath.Join(root, "node_modules", "left-pad", "index.js"), "")

	r := New(domain.ResolveOptions{})
	got, resErr := r.Resolve(root, "left-pad")
	if resErr != nil {
		t.Fatalf("unexpected error: %v", resErr)
	}
	want, _ := filepath.Abs(filepath.Join(root, "node_modules", "left-pad", "index.js"))
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolver_WorkspaceSymlinkedPackage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "packages", "core", "package.json"), `{"name":"@app/core","main":"index.js"}`)
	writeFile(t, filepath.Join(root, "packages", "core", "index.js"), "")

	nodeModules := filepath.Join(root, "node_modules")
	if err := os.MkdirAll(nodeModules, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(nodeModules, "@app", "core")
	if err := os.MkdirAll(filepath.Dir(link), 0o755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(root, "packages", "core")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported in this environment: %v", err)
	}

	r := New(domain.ResolveOptions{})
	got, resErr := r.Resolve(root, "@app/core")
	if resErr != nil {
		t.Fatalf("unexpected error: %v", resErr)
	}
	want, _ := filepath.Abs(filepath.Join(root, "packages", "core", "index.js"))
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolver_ModulePathComponentsDefault(t *testing.T) {
	r := New(domain.ResolveOptions{})
	components := r.ModulePathComponents()
	if len(components) != 1 || components[0] != "node_modules" {
		t.Errorf("unexpected default module path components: %v", components)
	}
}
