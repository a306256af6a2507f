package config

// ProjectType represents a common JavaScript/TypeScript project layout the
// init wizard can pre-fill alias and path-scoping conventions for.
type ProjectType string

const (
	ProjectTypeGeneric ProjectType = "generic"
	ProjectTypeReact   ProjectType = "react"
	ProjectTypeVue     ProjectType = "vue"
	ProjectTypeNode    ProjectType = "node"
)

// ProjectPreset holds the include/exclude globs and alias conventions for
// one project type, grounded on the teacher's GetProjectPresets layout.
type ProjectPreset struct {
	IncludePatterns []string
	ExcludePatterns []string
	Alias           map[string][]string
}

// GetProjectPresets returns presets for different project types.
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx"},
			ExcludePatterns: []string{"**/node_modules/**", "**/dist/**", "**/build/**"},
			Alias:           map[string][]string{},
		},
		ProjectTypeReact: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx"},
			ExcludePatterns: []string{
				"**/node_modules/**", "**/dist/**", "**/build/**",
				"**/.next/**", "**/coverage/**",
			},
			Alias: map[string][]string{"@/*": {"src/*"}},
		},
		ProjectTypeVue: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.vue"},
			ExcludePatterns: []string{
				"**/node_modules/**", "**/dist/**", "**/build/**",
				"**/.nuxt/**", "**/coverage/**",
			},
			Alias: map[string][]string{"@/*": {"src/*"}, "~/*": {"src/*"}},
		},
		ProjectTypeNode: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.mjs", "**/*.cjs"},
			ExcludePatterns: []string{
				"**/node_modules/**", "**/dist/**", "**/build/**",
				"**/test/**", "**/__tests__/**",
			},
			Alias: map[string][]string{},
		},
	}
}

// GetFullConfigTemplate renders a documented YAML config template for the
// given project type, pre-filled with its include/exclude globs and alias
// conventions.
func GetFullConfigTemplate(projectType ProjectType) string {
	preset := GetProjectPresets()[projectType]

	return "# reach configuration\n" +
		"# Documentation: https://github.com/ludo-technologies/reach\n\n" +
		"resolve_options:\n" +
		"  tsconfig_refs: auto\n" +
		"  alias:\n" + formatYAMLAliasMap(preset.Alias) +
		"  extensions: [\".ts\", \".tsx\", \".js\", \".jsx\", \".mts\", \".cts\", \".mjs\", \".cjs\"]\n" +
		"  modules: [\"node_modules\"]\n" +
		"  symlinks: true\n" +
		"  builtin_modules: true\n\n" +
		"output:\n" +
		"  format: text\n\n" +
		"analysis:\n" +
		"  include_patterns:\n" + formatYAMLList(preset.IncludePatterns) +
		"  exclude_patterns:\n" + formatYAMLList(preset.ExcludePatterns)
}

// GetMinimalConfigTemplate returns a minimal config template.
func GetMinimalConfigTemplate() string {
	return "resolve_options:\n" +
		"  tsconfig_refs: auto\n\n" +
		"analysis:\n" +
		"  include_patterns: [\"**/*.js\", \"**/*.ts\", \"**/*.jsx\", \"**/*.tsx\"]\n" +
		"  exclude_patterns: [\"**/node_modules/**\", \"**/dist/**\"]\n"
}

func formatYAMLList(items []string) string {
	if len(items) == 0 {
		return "    []\n"
	}
	out := ""
	for _, item := range items {
		out += "    - \"" + item + "\"\n"
	}
	return out
}

func formatYAMLAliasMap(alias map[string][]string) string {
	if len(alias) == 0 {
		return "    {}\n"
	}
	out := ""
	for prefix, targets := range alias {
		out += "    \"" + prefix + "\": " + formatYAMLInlineList(targets) + "\n"
	}
	return out
}

func formatYAMLInlineList(items []string) string {
	out := "["
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += "\"" + item + "\""
	}
	return out + "]"
}
