package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"uigen-backend/internal/project"
)

// Client abstracts generation providers for UI component projects.
type Client interface {
	// GenerateProject asks the provider for a multi-file component project.
	// A returned error is terminal for the request: provider failures are
	// never retried by the repair loop, which targets bundle failures only.
	GenerateProject(ctx context.Context, input Input) ([]project.File, error)
	// Live reports whether this provider is backed by a real model. Repair
	// is only worth attempting against a live provider; the mock is
	// deterministic, so a retry would reproduce the identical failure.
	Live() bool
}

// Input captures one generation request.
type Input struct {
	Instruction  string
	PreviousCode string
}

// ErrEmptyProject is returned when a provider response parses but carries no
// files.
var ErrEmptyProject = errors.New("llm: provider returned no files")

type projectPayload struct {
	Files []project.File `json:"files"`
}

// ParseProjectJSON decodes the provider's JSON payload into a file set. It
// tolerates markdown code fences around the JSON, which models add even when
// told not to.
func ParseProjectJSON(raw []byte) ([]project.File, error) {
	text := strings.TrimSpace(string(raw))
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var payload projectPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &payload); err != nil {
		return nil, fmt.Errorf("llm: decode project payload: %w", err)
	}
	if len(payload.Files) == 0 {
		return nil, ErrEmptyProject
	}
	for _, f := range payload.Files {
		if strings.TrimSpace(f.Path) == "" {
			return nil, errors.New("llm: project payload contains a file without a path")
		}
	}
	return payload.Files, nil
}
