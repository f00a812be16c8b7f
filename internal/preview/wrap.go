// Package preview turns an arbitrary generated file set into something a
// fixed harness can mount: a normalized entry module and a sandboxed HTML
// document around the bundled script.
package preview

import (
	"path"

	"uigen-backend/internal/project"
)

const (
	// BootstrapExport is the single well-known symbol the wrapped entry
	// exposes, whatever shape the provider gave its default export.
	BootstrapExport = "PreviewRoot"

	// MountElementID is the container the bootstrap renders into.
	MountElementID = "root"

	shadowBasename = "__preview_source__"
)

// WrapEntry returns a new file set in which the file at entryPath is replaced
// by a bootstrap module: the original entry source moves to a shadow path,
// and the bootstrap re-exports its default export as PreviewRoot and mounts
// it. The input is never mutated. When no file exists at entryPath the set is
// returned unchanged; a missing entry is the bundler's failure to report, not
// the normalizer's.
func WrapEntry(files []project.File, entryPath string) []project.File {
	out := make([]project.File, len(files))
	copy(out, files)

	want := project.CleanPath(entryPath)
	for i, f := range out {
		if project.CleanPath(f.Path) != want {
			continue
		}
		out[i] = project.File{Path: f.Path, Content: bootstrapSource()}
		return append(out, project.File{Path: shadowPath(f.Path), Content: f.Content})
	}
	return out
}

func shadowPath(entryPath string) string {
	cleaned := project.CleanPath(entryPath)
	ext := path.Ext(cleaned)
	if ext == "" {
		ext = ".tsx"
	}
	dir := path.Dir(cleaned)
	if dir == "." {
		return shadowBasename + ext
	}
	return dir + "/" + shadowBasename + ext
}

// bootstrapSource imports the relocated entry through the module system, so
// every default-export shape (declaration, expression, re-export) resolves
// the same way.
func bootstrapSource() string {
	return `import React from "react";
import { createRoot } from "react-dom/client";
import Source from "./` + shadowBasename + `";

export const ` + BootstrapExport + ` = Source;

const container = document.getElementById("` + MountElementID + `");
if (container) {
  createRoot(container).render(React.createElement(` + BootstrapExport + `));
}
`
}
