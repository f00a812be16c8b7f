package preview

import (
	"strings"
	"testing"

	"uigen-backend/internal/bundler"
	"uigen-backend/internal/project"
)

func TestWrapEntryRewritesAndShadows(t *testing.T) {
	files := []project.File{
		{Path: "src/App.tsx", Content: `export default function App() { return null; }`},
		{Path: "src/theme.ts", Content: `export const palette = {};`},
	}

	wrapped := WrapEntry(files, "src/App.tsx")

	entry, ok := project.Find(wrapped, "src/App.tsx")
	if !ok {
		t.Fatalf("entry missing after wrap")
	}
	if !strings.Contains(entry.Content, "export const "+BootstrapExport) {
		t.Fatalf("wrapped entry should export %s", BootstrapExport)
	}
	if !strings.Contains(entry.Content, MountElementID) {
		t.Fatalf("wrapped entry should mount into #%s", MountElementID)
	}

	shadow, ok := project.Find(wrapped, "src/__preview_source__.tsx")
	if !ok {
		t.Fatalf("original entry source not preserved at shadow path")
	}
	if shadow.Content != files[0].Content {
		t.Fatalf("shadow content should be the original entry source")
	}
}

func TestWrapEntryDoesNotMutateInput(t *testing.T) {
	files := []project.File{
		{Path: "src/App.tsx", Content: "original"},
	}

	_ = WrapEntry(files, "src/App.tsx")

	if files[0].Content != "original" {
		t.Fatalf("input file set was mutated")
	}
	if len(files) != 1 {
		t.Fatalf("input file set length changed")
	}
}

func TestWrapEntryMissingEntryLeavesSetUnchanged(t *testing.T) {
	files := []project.File{
		{Path: "src/Other.tsx", Content: "x"},
	}

	wrapped := WrapEntry(files, "src/App.tsx")
	if len(wrapped) != 1 || wrapped[0] != files[0] {
		t.Fatalf("missing entry should leave the set unchanged for the bundler to report")
	}
}

// Two semantically equivalent entries with different default-export syntax
// must both wrap into a bundleable project exposing the bootstrap export.
func TestWrapEntryNormalizesExportShapes(t *testing.T) {
	variants := []string{
		`import React from "react";
export default function Button() { return <button>go</button>; }`,
		`import React from "react";
function Button() { return <button>go</button>; }
export default Button;`,
		`import React from "react";
const Button = () => <button>go</button>;
export { Button as default };`,
	}

	for i, source := range variants {
		files := []project.File{{Path: "src/App.tsx", Content: source}}
		wrapped := WrapEntry(files, "src/App.tsx")

		script, err := bundler.Bundle(wrapped, "src/App.tsx")
		if err != nil {
			t.Fatalf("variant %d failed to bundle: %v", i, err)
		}
		if !strings.Contains(script, BootstrapExport) {
			t.Fatalf("variant %d bundle missing bootstrap export", i)
		}
	}
}

func TestWrapEntryRootLevelEntry(t *testing.T) {
	files := []project.File{
		{Path: "App.jsx", Content: `export default () => null;`},
	}

	wrapped := WrapEntry(files, "App.jsx")
	if _, ok := project.Find(wrapped, "__preview_source__.jsx"); !ok {
		t.Fatalf("expected root-level shadow with the entry's extension")
	}
}
