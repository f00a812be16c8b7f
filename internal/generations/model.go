package generations

import (
	"time"

	"uigen-backend/internal/project"
)

// GenerateRequest is one validated generation call. Immutable, consumed once
// by the provider, never persisted.
type GenerateRequest struct {
	Instruction  string
	PreviousCode string
}

// GeneratedOutput is the successful wire response: the (wrapped) file set and
// the preview document. PreviewHTML is set only after a successful bundle;
// there is no partial-success shape.
type GeneratedOutput struct {
	Files       []project.File `json:"files"`
	PreviewHTML string         `json:"previewHtml,omitempty"`
}

// Record statuses.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Record is the persisted trace of one pipeline run.
type Record struct {
	ID          string    `json:"id"`
	Instruction string    `json:"instruction"`
	Status      string    `json:"status"`
	Repaired    bool      `json:"repaired"`
	Error       string    `json:"error,omitempty"`
	DurationMs  int64     `json:"durationMs"`
	CreatedAt   time.Time `json:"createdAt"`
}
