package domain

// TSConfigRefsMode controls how a tsconfig project file's references are
// resolved when building path-alias information for the resolver.
type TSConfigRefsMode string

const (
	// TSConfigRefsAuto reads compilerOptions.paths/baseUrl from the nearest
	// tsconfig.json (following "extends" chains) and uses them as aliases.
	TSConfigRefsAuto TSConfigRefsMode = "auto"

	// TSConfigRefsDisabled ignores tsconfig entirely; only the caller-supplied
	// Alias map is consulted.
	TSConfigRefsDisabled TSConfigRefsMode = "disabled"

	// TSConfigRefsManual reads "extends" chains (for completeness) but treats
	// the caller-supplied Alias map as authoritative over compilerOptions.paths.
	TSConfigRefsManual TSConfigRefsMode = "manual"
)

// ResolveOptions is the configuration record threading spec section 6's
// field list through internal/config into internal/resolver.Resolver.
type ResolveOptions struct {
	TSConfig     string           `json:"tsconfig,omitempty" yaml:"tsconfig,omitempty" mapstructure:"tsconfig"`
	TSConfigRefs TSConfigRefsMode `json:"tsconfig_refs,omitempty" yaml:"tsconfig_refs,omitempty" mapstructure:"tsconfig_refs"`

	Alias map[string][]string `json:"alias,omitempty" yaml:"alias,omitempty" mapstructure:"alias"`

	AliasFields      []string `json:"alias_fields,omitempty" yaml:"alias_fields,omitempty" mapstructure:"alias_fields"`
	ConditionNames   []string `json:"condition_names,omitempty" yaml:"condition_names,omitempty" mapstructure:"condition_names"`
	DescriptionFiles []string `json:"description_files,omitempty" yaml:"description_files,omitempty" mapstructure:"description_files"`
	ExportsFields    []string `json:"exports_fields,omitempty" yaml:"exports_fields,omitempty" mapstructure:"exports_fields"`
	ImportsFields    []string `json:"imports_fields,omitempty" yaml:"imports_fields,omitempty" mapstructure:"imports_fields"`

	ExtensionAlias map[string][]string `json:"extension_alias,omitempty" yaml:"extension_alias,omitempty" mapstructure:"extension_alias"`
	Extensions     []string            `json:"extensions,omitempty" yaml:"extensions,omitempty" mapstructure:"extensions"`
	Fallback       map[string][]string `json:"fallback,omitempty" yaml:"fallback,omitempty" mapstructure:"fallback"`

	FullySpecified bool     `json:"fully_specified,omitempty" yaml:"fully_specified,omitempty" mapstructure:"fully_specified"`
	MainFields     []string `json:"main_fields,omitempty" yaml:"main_fields,omitempty" mapstructure:"main_fields"`
	MainFiles      []string `json:"main_files,omitempty" yaml:"main_files,omitempty" mapstructure:"main_files"`
	Modules        []string `json:"modules,omitempty" yaml:"modules,omitempty" mapstructure:"modules"`

	ResolveToContext bool     `json:"resolve_to_context,omitempty" yaml:"resolve_to_context,omitempty" mapstructure:"resolve_to_context"`
	PreferRelative   bool     `json:"prefer_relative,omitempty" yaml:"prefer_relative,omitempty" mapstructure:"prefer_relative"`
	PreferAbsolute   bool     `json:"prefer_absolute,omitempty" yaml:"prefer_absolute,omitempty" mapstructure:"prefer_absolute"`
	Restrictions     []string `json:"restrictions,omitempty" yaml:"restrictions,omitempty" mapstructure:"restrictions"`
	Roots            []string `json:"roots,omitempty" yaml:"roots,omitempty" mapstructure:"roots"`

	Symlinks       *bool `json:"symlinks,omitempty" yaml:"symlinks,omitempty" mapstructure:"symlinks"`
	BuiltinModules *bool `json:"builtin_modules,omitempty" yaml:"builtin_modules,omitempty" mapstructure:"builtin_modules"`
}

// DefaultResolveOptions returns the defaults resolver.New fills in for
// unset fields: a generous extension list, node_modules as the single
// vendored-directory name, symlinks and builtins on.
func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{
		TSConfigRefs:   TSConfigRefsAuto,
		Extensions:     []string{".ts", ".tsx", ".js", ".jsx", ".mts", ".cts", ".mjs", ".cjs"},
		MainFields:     []string{"module", "main"},
		MainFiles:      []string{"index"},
		Modules:        []string{"node_modules"},
		Symlinks:       BoolPtr(true),
		BuiltinModules: BoolPtr(true),
	}
}

// ReachRequest is the engine entry point's input record: candidate test
// files, changed source files, and the resolver configuration governing
// how specifiers become absolute paths.
type ReachRequest struct {
	TestFiles      []string       `json:"test_files"`
	ChangedFiles   []string       `json:"changed_files"`
	ResolveOptions ResolveOptions `json:"resolve_options"`

	// OutputFormat and OutputPath are CLI-facing concerns, not part of the
	// engine contract itself, but travel with the request for convenience
	// of the driver layer.
	OutputFormat OutputFormat `json:"output_format,omitempty"`
	OutputPath   string       `json:"output_path,omitempty"`
}

// ReachResponse is the engine entry point's output record.
type ReachResponse struct {
	// Paths holds the subset of ReachRequest.TestFiles (verbatim strings)
	// that are affected by the changed set.
	Paths []string `json:"paths"`

	// Errors holds diagnostics accumulated during traversal; never fatal.
	Errors []string `json:"errors,omitempty"`

	GeneratedAt string `json:"generated_at"`
	Version     string `json:"version"`
}
