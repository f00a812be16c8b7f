package llm

import (
	"strings"

	"uigen-backend/internal/bundler"
)

// EntryPathContract is the entry file the provider is instructed to produce.
const EntryPathContract = "src/App.tsx"

// SystemPrompt is the fixed instruction set sent to live providers. It pins
// the response schema and restates the bundler's import policy so the model
// fails less often at bundle time.
func SystemPrompt() string {
	var b strings.Builder
	b.WriteString("You generate small React component projects.\n")
	b.WriteString("Respond with a single JSON object, no prose, of the shape:\n")
	b.WriteString(`{"files": [{"path": "src/App.tsx", "content": "..."}, ...]}` + "\n")
	b.WriteString("Requirements:\n")
	b.WriteString("- The project entry must be " + EntryPathContract + " and it must have a default export that is a React component.\n")
	b.WriteString("- Always write `import React from \"react\"` in files that use JSX.\n")
	b.WriteString("- Use TypeScript (.ts/.tsx) files only; style with inline style objects, not CSS files.\n")
	b.WriteString("- " + bundler.PolicyText() + "\n")
	return b.String()
}

// UserPrompt renders the caller's instruction plus the optional prior code
// hint into the user message.
func UserPrompt(input Input) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(input.Instruction))
	if strings.TrimSpace(input.PreviousCode) != "" {
		b.WriteString("\n\nPrevious entry file source, for context:\n")
		b.WriteString(input.PreviousCode)
	}
	return b.String()
}
