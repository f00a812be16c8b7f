package generations

import (
	"encoding/json"
	"errors"
	"strings"
)

var (
	// ErrBodyNotObject rejects payloads that are not a JSON object.
	ErrBodyNotObject = errors.New("request body must be a JSON object")
	// ErrInstructionRequired rejects a missing, non-string, or blank
	// instruction.
	ErrInstructionRequired = errors.New("instruction is required and must be a non-empty string")
)

type rawGenerateRequest struct {
	Instruction  json.RawMessage `json:"instruction"`
	PreviousCode json.RawMessage `json:"previousCode"`
}

// ParseRequest validates the inbound payload before any expensive work. The
// instruction is strict: it must be a string with non-whitespace content.
// previousCode is a best-effort hint: when present but not a string it is
// dropped, not rejected.
func ParseRequest(body []byte) (GenerateRequest, error) {
	var raw rawGenerateRequest
	if err := json.Unmarshal(body, &raw); err != nil {
		return GenerateRequest{}, ErrBodyNotObject
	}

	var instruction string
	if raw.Instruction == nil {
		return GenerateRequest{}, ErrInstructionRequired
	}
	if err := json.Unmarshal(raw.Instruction, &instruction); err != nil {
		return GenerateRequest{}, ErrInstructionRequired
	}
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return GenerateRequest{}, ErrInstructionRequired
	}

	req := GenerateRequest{Instruction: instruction}
	if raw.PreviousCode != nil {
		var previous string
		if err := json.Unmarshal(raw.PreviousCode, &previous); err == nil {
			req.PreviousCode = previous
		}
	}
	return req, nil
}
