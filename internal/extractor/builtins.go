package extractor

import "strings"

// nodeBuiltins lists the Node.js builtin module names, carried over from
// the teacher's module_analyzer.go builtin detection.
var nodeBuiltins = map[string]bool{
	"assert": true, "async_hooks": true, "buffer": true, "child_process": true,
	"cluster": true, "console": true, "constants": true, "crypto": true,
	"dgram": true, "diagnostics_channel": true, "dns": true, "domain": true,
	"events": true, "fs": true, "http": true, "http2": true, "https": true,
	"inspector": true, "module": true, "net": true, "os": true, "path": true,
	"perf_hooks": true, "process": true, "punycode": true, "querystring": true,
	"readline": true, "repl": true, "stream": true, "string_decoder": true,
	"sys": true, "timers": true, "tls": true, "trace_events": true, "tty": true,
	"url": true, "util": true, "v8": true, "vm": true, "wasi": true,
	"worker_threads": true, "zlib": true,
}

// IsBuiltin reports whether specifier names a Node.js builtin module,
// either bare ("fs") or "node:"-prefixed ("node:fs"). A "node:"-prefixed
// specifier is always a builtin, regardless of whether the bare name is
// also recognized.
func IsBuiltin(specifier string) bool {
	if strings.HasPrefix(specifier, "node:") {
		return true
	}
	return nodeBuiltins[specifier]
}
