// Package mock is the deterministic offline generator used when no provider
// credential is configured. Same instruction in, same project out, no
// network.
package mock

import (
	"context"
	"fmt"
	"strings"

	"uigen-backend/internal/llm"
	"uigen-backend/internal/project"
)

// Client generates a fixed two-file React project themed off the
// instruction.
type Client struct{}

// New constructs the offline generator.
func New() *Client {
	return &Client{}
}

// Live reports false: the mock is deterministic, so the pipeline skips
// repair for its output.
func (*Client) Live() bool { return false }

// GenerateProject returns the offline project. It never fails; context is
// accepted for interface symmetry.
func (*Client) GenerateProject(ctx context.Context, input llm.Input) ([]project.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	accent := accentFor(input.Instruction)
	app := fmt.Sprintf(`import React from "react";
import { palette } from "./theme";

export default function App() {
  return (
    <div style={{ fontFamily: "system-ui, sans-serif", padding: 24, color: palette.text }}>
      <h2 style={{ marginTop: 0 }}>Generated preview</h2>
      <p>%s</p>
      <button
        style={{
          background: palette.accent,
          color: "#ffffff",
          border: "none",
          borderRadius: 6,
          padding: "10px 18px",
          fontSize: 16,
          cursor: "pointer",
        }}
      >
        Click me
      </button>
    </div>
  );
}
`, escapeJSX(input.Instruction))

	theme := fmt.Sprintf(`export const palette = {
  accent: %q,
  text: "#1f2937",
};
`, accent)

	return []project.File{
		{Path: "src/App.tsx", Content: app},
		{Path: "src/theme.ts", Content: theme},
	}, nil
}

// accentFor picks a deterministic accent color from color words in the
// instruction.
func accentFor(instruction string) string {
	lower := strings.ToLower(instruction)
	for _, c := range []struct{ word, hex string }{
		{"red", "#dc2626"},
		{"green", "#16a34a"},
		{"blue", "#2563eb"},
		{"yellow", "#ca8a04"},
		{"purple", "#7c3aed"},
		{"orange", "#ea580c"},
	} {
		if strings.Contains(lower, c.word) {
			return c.hex
		}
	}
	return "#475569"
}

func escapeJSX(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"{", "&#123;",
		"}", "&#125;",
	)
	return replacer.Replace(s)
}
