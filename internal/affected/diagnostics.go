package affected

import (
	"fmt"
	"path/filepath"
)

// FormatDiagnostics renders the engine's raw diagnostics into the flat
// string list the external interface exposes, wrapping each with a
// best-effort file label relative to cwd (the path as given when it cannot
// be made relative). Parser and extractor diagnostics carry their file and
// are labelled; diagnostics without a file (such as "Cannot read file: <p>",
// which names its path itself) are passed through unwrapped.
func FormatDiagnostics(cwd string, diags []RawDiagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		if d.File == "" {
			out = append(out, d.Message)
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", relativeLabel(cwd, d.File), d.Message))
	}
	return out
}

func relativeLabel(cwd, path string) string {
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}
