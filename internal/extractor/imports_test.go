package extractor

import (
	"sort"
	"testing"
)

func extract(t *testing.T, source string) Result {
	t.Helper()
	return Extract("test.js", []byte(source), SourceKindScript)
}

func TestExtract_StaticImport(t *testing.T) {
	res := extract(t, `import './module';`)
	assertSpecifiers(t, res, []string{"./module"})
	if len(res.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Diagnostics)
	}
}

func TestExtract_NamedAndDefaultImport(t *testing.T) {
	res := extract(t, `import React, { useState } from 'react';`)
	assertSpecifiers(t, res, []string{"react"})
}

func TestExtract_NamespaceImport(t *testing.T) {
	res := extract(t, `import * as utils from './utils';`)
	assertSpecifiers(t, res, []string{"./utils"})
}

func TestExtract_NamedReExport(t *testing.T) {
	res := extract(t, `export { foo, bar } from './mod';`)
	assertSpecifiers(t, res, []string{"./mod"})
}

func TestExtract_NamespaceReExport(t *testing.T) {
	res := extract(t, `export * from './mod';`)
	assertSpecifiers(t, res, []string{"./mod"})
}

func TestExtract_NamespaceReExportAs(t *testing.T) {
	res := extract(t, `export * as ns from './mod';`)
	assertSpecifiers(t, res, []string{"./mod"})
}

func TestExtract_RequireStringLiteral(t *testing.T) {
	res := extract(t, `const x = require('./thing');`)
	assertSpecifiers(t, res, []string{"./thing"})
}

func TestExtract_RequireNonLiteralArgument(t *testing.T) {
	res := extract(t, `const name = 'dyn'; const x = require(name);`)
	if len(res.Specifiers) != 0 {
		t.Errorf("expected no specifiers, got %v", res.Specifiers)
	}
	assertContainsDiagnostic(t, res, "Require call must have a string literal argument")
}

func TestExtract_RequireWrongArity(t *testing.T) {
	res := extract(t, `const x = require('./a', './b');`)
	assertContainsDiagnostic(t, res, "Require call must have a string literal argument")
}

func TestExtract_DynamicImportStringLiteral(t *testing.T) {
	res := extract(t, `import('./lazy');`)
	assertSpecifiers(t, res, []string{"./lazy"})
}

func TestExtract_DynamicImportSingleQuasiTemplateLiteral(t *testing.T) {
	res := extract(t, "import(`./lazy`);")
	assertSpecifiers(t, res, []string{"./lazy"})
	if len(res.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Diagnostics)
	}
}

func TestExtract_DynamicImportInterpolatedTemplateLiteral(t *testing.T) {
	res := extract(t, "import(`./lazy/${name}`);")
	if len(res.Specifiers) != 0 {
		t.Errorf("expected no specifiers, got %v", res.Specifiers)
	}
	assertContainsDiagnostic(t, res, "Import call must not have dynamic template literals")
}

func TestExtract_DynamicImportNonLiteralArgument(t *testing.T) {
	res := extract(t, `import(somethingComputed());`)
	if len(res.Specifiers) != 0 {
		t.Errorf("expected no specifiers, got %v", res.Specifiers)
	}
	assertContainsDiagnostic(t, res, "Import call must not have dynamic template literals")
}

func TestExtract_SpecifierDeduplication(t *testing.T) {
	res := extract(t, `
		import './module';
		const a = require('./module');
	`)
	assertSpecifiers(t, res, []string{"./module"})
}

func TestExtract_MixedValidAndInvalidInSameFile(t *testing.T) {
	res := extract(t, `
		import './ok';
		import(somethingComputed());
	`)
	assertSpecifiers(t, res, []string{"./ok"})
	assertContainsDiagnostic(t, res, "Import call must not have dynamic template literals")
}

func assertSpecifiers(t *testing.T, res Result, want []string) {
	t.Helper()
	got := append([]string(nil), res.Specifiers...)
	sort.Strings(got)
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("specifiers = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("specifiers = %v, want %v", got, want)
		}
	}
}

func assertContainsDiagnostic(t *testing.T, res Result, substr string) {
	t.Helper()
	for _, d := range res.Diagnostics {
		if d == substr {
			return
		}
	}
	t.Errorf("diagnostics %v do not contain %q", res.Diagnostics, substr)
}
