// Package bundler resolves a closed, path-addressed file set plus a small
// fixed allow-list of external module names into one self-contained script.
// Its universe is exactly the in-memory file set it is handed: no filesystem
// or network access, so generated code cannot pull in arbitrary dependencies.
package bundler

import (
	"fmt"
	"sort"
	"strings"

	"uigen-backend/internal/project"
)

// AllowedModules is the fixed allow-list of bare imports: the UI runtime and
// its DOM-mounting entry point. Everything else must be a relative path into
// the file set.
var AllowedModules = []string{"react", "react-dom/client"}

// BuildError is the structured bundle diagnostic. It names the offending
// import and the importing file so it can be echoed verbatim into a repair
// instruction.
type BuildError struct {
	File      string
	Specifier string
	Message   string
}

func (e *BuildError) Error() string {
	return e.Message
}

func missingEntryError(entryPath string) *BuildError {
	return &BuildError{
		File:    entryPath,
		Message: fmt.Sprintf("entry file %q not found in the generated project", entryPath),
	}
}

func disallowedImportError(importer, specifier string) *BuildError {
	return &BuildError{
		File:      importer,
		Specifier: specifier,
		Message: fmt.Sprintf("%s: module %q is not allowed; only %s may be imported bare, everything else must be a relative path",
			importer, specifier, strings.Join(AllowedModules, " and ")),
	}
}

func unresolvedImportError(importer, specifier string) *BuildError {
	return &BuildError{
		File:      importer,
		Specifier: specifier,
		Message:   fmt.Sprintf("%s: cannot resolve import %q, no such file in the generated project", importer, specifier),
	}
}

// module is one transformed file in the graph.
type module struct {
	id   string
	code string
	deps []string
}

// Bundle links the file set into a single browser-executable script rooted at
// entryPath. Modules are registered as CommonJS factories and evaluated
// lazily through a cached require, which yields standard ES module ordering:
// dependencies before dependents, diamonds evaluated once.
func Bundle(files []project.File, entryPath string) (string, error) {
	idx := project.Index(files)

	entryID, ok := resolveRelative(idx, "", project.CleanPath(entryPath))
	if !ok {
		return "", missingEntryError(entryPath)
	}

	modules := make(map[string]*module)
	if err := load(idx, modules, entryID); err != nil {
		return "", err
	}

	return link(modules, entryID), nil
}

// load transforms one module, resolves its imports under the policy, and
// recurses into unvisited relative dependencies.
func load(idx map[string]project.File, modules map[string]*module, id string) error {
	if _, seen := modules[id]; seen {
		return nil
	}
	file := idx[id]

	code, err := transform(id, file.Content)
	if err != nil {
		return err
	}

	mod := &module{id: id, code: code}
	modules[id] = mod

	for _, spec := range scanRequires(code) {
		if isBare(spec) {
			if !isAllowed(spec) {
				return disallowedImportError(id, spec)
			}
			continue
		}
		depID, ok := resolveRelative(idx, id, spec)
		if !ok {
			return unresolvedImportError(id, spec)
		}
		mod.code = rewriteRequire(mod.code, spec, depID)
		mod.deps = append(mod.deps, depID)
		if err := load(idx, modules, depID); err != nil {
			return err
		}
	}
	return nil
}

const runtimePrelude = `(function () {
  "use strict";
  var externals = {
    "react": function () { return window.React; },
    "react-dom/client": function () {
      return { createRoot: window.ReactDOM.createRoot, hydrateRoot: window.ReactDOM.hydrateRoot };
    }
  };
  var registry = {};
  var cache = {};
  function load(id) {
    if (externals[id]) return externals[id]();
    if (cache[id]) return cache[id].exports;
    var mod = { exports: {} };
    cache[id] = mod;
    registry[id](mod, mod.exports, load);
    return mod.exports;
  }
`

// link emits the runtime, registers every module factory, and requires the
// entry. Registration order is stable (entry last, dependencies sorted) but
// carries no semantics: evaluation order comes from the lazy require chain.
func link(modules map[string]*module, entryID string) string {
	ids := make([]string, 0, len(modules))
	for id := range modules {
		if id != entryID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	ids = append(ids, entryID)

	var b strings.Builder
	b.WriteString(runtimePrelude)
	for _, id := range ids {
		fmt.Fprintf(&b, "  registry[%q] = function (module, exports, require) {\n", id)
		b.WriteString(modules[id].code)
		b.WriteString("\n  };\n")
	}
	fmt.Fprintf(&b, "  load(%q);\n})();\n", entryID)
	return b.String()
}
