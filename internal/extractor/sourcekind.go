package extractor

import (
	"path/filepath"
	"strings"
)

// SourceKind classifies a file extension into the dialect the parser
// should be configured for.
type SourceKind string

const (
	SourceKindScript     SourceKind = "script"
	SourceKindModule     SourceKind = "module"
	SourceKindTypeScript SourceKind = "typescript"
	SourceKindTSX        SourceKind = "tsx"
)

// SourceKindFor classifies a path by extension, mirroring the teacher's
// parser.ParseForLanguage dispatch. ok is false when the extension is not
// a recognized source kind — such paths are not parsed, per the engine's
// "non-source file" rule.
func SourceKindFor(path string) (kind SourceKind, ok bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mjs":
		return SourceKindModule, true
	case ".js", ".jsx", ".cjs":
		return SourceKindScript, true
	case ".ts", ".mts", ".cts":
		return SourceKindTypeScript, true
	case ".tsx":
		return SourceKindTSX, true
	default:
		return "", false
	}
}
