package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAffectedCmdTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAffectedCommand_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.js")
	testPath := filepath.Join(dir, "src.test.js")
	writeAffectedCmdTestFile(t, srcPath, `export const x = 1;`)
	writeAffectedCmdTestFile(t, testPath, `import './src';`)

	outPath := filepath.Join(dir, "out.json")

	cmd := affectedCmd()
	cmd.SetArgs([]string{
		"--tests", testPath,
		"--changed", srcPath,
		"--format", "json",
		"--output", outPath,
		"--no-progress",
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("affected command failed: %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if len(content) == 0 {
		t.Fatal("expected non-empty output file")
	}
}

func TestAffectedCommand_RequiresTestsAndChanged(t *testing.T) {
	cmd := affectedCmd()
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when --tests/--changed are not provided")
	}
}

func TestParseOutputFormat(t *testing.T) {
	cases := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
		"xml":  false,
	}
	for format, wantOK := range cases {
		_, err := parseOutputFormat(format)
		if wantOK && err != nil {
			t.Errorf("parseOutputFormat(%q) returned unexpected error: %v", format, err)
		}
		if !wantOK && err == nil {
			t.Errorf("parseOutputFormat(%q) expected error, got nil", format)
		}
	}
}
