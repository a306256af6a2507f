// Package extractor parses a single source buffer and yields the set of
// module specifiers it references, adapted from the teacher's
// internal/analyzer/module_analyzer.go extractImports/processDynamicImport/
// processRequireCall, generalized to emit diagnostics for the cases the
// teacher's version silently dropped.
package extractor

import (
	"bytes"
	"fmt"

	"github.com/ludo-technologies/reach/internal/parser"
)

// Result is the extractor's output for one source buffer: the deduplicated
// specifier set (order of first sighting, for deterministic output) and any
// diagnostics raised while parsing or extracting.
type Result struct {
	Specifiers  []string
	Diagnostics []string
}

// Extract parses source with the parser selected for kind and walks the
// resulting AST for the import/export/require constructs named in the
// extraction rules. A parse error is recorded as a diagnostic but does not
// abort extraction: the (possibly partial) AST is still walked.
func Extract(path string, source []byte, kind SourceKind) Result {
	root, err := parseForKind(path, source, kind)

	var res Result
	if err != nil {
		res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("Parse error in %s: %v", path, err))
	}
	if root == nil {
		return res
	}

	seen := make(map[string]struct{})
	add := func(specifier string) {
		if specifier == "" {
			return
		}
		if _, ok := seen[specifier]; ok {
			return
		}
		seen[specifier] = struct{}{}
		res.Specifiers = append(res.Specifiers, specifier)
	}

	root.Walk(func(n *parser.Node) bool {
		switch n.Type {
		case parser.NodeImportDeclaration:
			if n.Source != nil {
				add(stringLiteralValue(n.Source))
			}

		case parser.NodeExportNamedDeclaration, parser.NodeExportAllDeclaration:
			if n.Source != nil {
				add(stringLiteralValue(n.Source))
			}

		case parser.NodeCallExpression:
			res.Diagnostics = append(res.Diagnostics, extractCallExpression(n, source, add)...)

		case parser.NodeType("ERROR"):
			res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("Parse error in %s: syntax error at line %d", path, n.Location.StartLine))
		}
		return true
	})

	return res
}

func parseForKind(path string, source []byte, kind SourceKind) (*parser.Node, error) {
	switch kind {
	case SourceKindTypeScript, SourceKindTSX:
		p := parser.NewTypeScriptParser()
		defer p.Close()
		return p.ParseFile(path, source)
	default:
		p := parser.NewParser()
		defer p.Close()
		return p.ParseFile(path, source)
	}
}

// extractCallExpression inspects one call expression for the require()
// and dynamic import() shapes and returns any diagnostics it raised.
func extractCallExpression(n *parser.Node, source []byte, add func(string)) []string {
	if n.Callee == nil {
		return nil
	}

	switch {
	case n.Callee.Type == parser.NodeIdentifier && n.Callee.Name == "require":
		if len(n.Arguments) == 1 && isStringLiteral(n.Arguments[0]) {
			add(stringLiteralValue(n.Arguments[0]))
			return nil
		}
		return []string{"Require call must have a string literal argument"}

	case string(n.Callee.Type) == "import":
		if len(n.Arguments) != 1 {
			return []string{"Import call must not have dynamic template literals"}
		}
		arg := n.Arguments[0]
		switch {
		case isStringLiteral(arg):
			add(stringLiteralValue(arg))
			return nil
		case string(arg.Type) == "template_string":
			if literal, ok := singleQuasiTemplateLiteral(arg, source); ok {
				add(literal)
				return nil
			}
			return []string{"Import call must not have dynamic template literals"}
		default:
			return []string{"Import call must not have dynamic template literals"}
		}
	}

	return nil
}

func isStringLiteral(n *parser.Node) bool {
	return n != nil && n.Type == parser.NodeStringLiteral
}

// stringLiteralValue strips the surrounding quote characters from a string
// literal's raw text.
func stringLiteralValue(n *parser.Node) string {
	raw := n.Raw
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// singleQuasiTemplateLiteral implements the Open Question's stricter rule:
// a template literal is accepted as a dynamic import specifier only when it
// has exactly one quasi (string_fragment) piece and zero interpolated
// expressions (template_substitution children).
func singleQuasiTemplateLiteral(templateNode *parser.Node, source []byte) (string, bool) {
	var fragment *parser.Node
	fragments := 0
	substitutions := 0

	for _, child := range templateNode.Children {
		switch string(child.Type) {
		case "string_fragment":
			fragments++
			fragment = child
		case "template_substitution":
			substitutions++
		}
	}

	if fragments != 1 || substitutions != 0 {
		return "", false
	}
	return sliceSource(source, fragment), true
}

// sliceSource recovers the literal source text spanned by a node's
// location. Generic (non-literal) AST nodes do not carry their own text,
// only a line/column span, so the extractor reads it back out of the
// original buffer.
func sliceSource(source []byte, n *parser.Node) string {
	if n == nil {
		return ""
	}
	lines := bytes.Split(source, []byte("\n"))
	loc := n.Location

	if loc.StartLine < 1 || loc.StartLine > len(lines) || loc.EndLine < 1 || loc.EndLine > len(lines) {
		return ""
	}

	if loc.StartLine == loc.EndLine {
		line := lines[loc.StartLine-1]
		start, end := clamp(loc.StartCol, len(line)), clamp(loc.EndCol, len(line))
		if start > end {
			return ""
		}
		return string(line[start:end])
	}

	var buf bytes.Buffer
	first := lines[loc.StartLine-1]
	start := clamp(loc.StartCol, len(first))
	buf.Write(first[start:])
	for i := loc.StartLine; i < loc.EndLine-1; i++ {
		buf.WriteByte('\n')
		buf.Write(lines[i])
	}
	buf.WriteByte('\n')
	last := lines[loc.EndLine-1]
	end := clamp(loc.EndCol, len(last))
	buf.Write(last[:end])
	return buf.String()
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
