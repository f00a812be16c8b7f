package generations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"uigen-backend/internal/bundler"
	"uigen-backend/internal/llm"
	"uigen-backend/internal/preview"
	"uigen-backend/internal/project"
	"uigen-backend/internal/shared/metrics"
	"uigen-backend/internal/shared/telemetry"
)

// entryCandidates is probed, in order, when the provider ignored the entry
// contract. A nearby match beats an immediate repair round-trip.
var entryCandidates = []string{
	"src/App.tsx",
	"src/App.jsx",
	"App.tsx",
	"App.jsx",
	"src/index.tsx",
	"index.tsx",
}

// Service runs the generation-to-preview pipeline: generate -> wrap ->
// bundle -> compose, with at most one repair regeneration on bundle failure.
type Service struct {
	Provider   llm.Client
	Repo       Repo
	EntryPath  string
	LLMTimeout time.Duration
}

// NewService constructs the pipeline service.
func NewService(provider llm.Client, repo Repo, entryPath string, llmTimeout time.Duration) *Service {
	if strings.TrimSpace(entryPath) == "" {
		entryPath = llm.EntryPathContract
	}
	return &Service{
		Provider:   provider,
		Repo:       repo,
		EntryPath:  entryPath,
		LLMTimeout: llmTimeout,
	}
}

// Generate executes one full pipeline run and records its outcome. The
// returned Record is populated on success and failure alike; the error, when
// non-nil, carries the user-visible message.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (GeneratedOutput, Record, error) {
	start := time.Now()
	metrics.IncGenerationStarted()

	rec := Record{
		ID:          uuid.NewString(),
		Instruction: req.Instruction,
		CreatedAt:   start.UTC(),
	}

	out, repaired, err := s.run(ctx, req)
	rec.Repaired = repaired
	rec.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		rec.Status = StatusFailed
		rec.Error = err.Error()
		metrics.IncGenerationFailed()
	} else {
		rec.Status = StatusSucceeded
		metrics.IncGenerationCompleted()
	}
	metrics.ObservePipelineDurationMs(float64(rec.DurationMs))
	s.record(ctx, rec)

	return out, rec, err
}

func (s *Service) run(ctx context.Context, req GenerateRequest) (GeneratedOutput, bool, error) {
	files, err := s.generateOnce(ctx, llm.Input{
		Instruction:  req.Instruction,
		PreviousCode: req.PreviousCode,
	})
	if err != nil {
		return GeneratedOutput{}, false, fmt.Errorf("generation failed: %w", err)
	}

	wrapped, script, buildErr := s.attempt(files)
	if buildErr == nil {
		return GeneratedOutput{Files: wrapped, PreviewHTML: preview.BuildHTML(script)}, false, nil
	}

	// Only a live provider can produce a different answer; the mock is
	// deterministic and would reproduce the identical failure.
	if !s.Provider.Live() {
		return GeneratedOutput{}, false, buildErr
	}

	metrics.IncRepairAttempted()
	telemetry.Info("generation.repair", map[string]any{
		"diagnostic": buildErr.Error(),
	})

	repairReq := llm.Input{
		Instruction:  repairInstruction(req.Instruction, buildErr.Error()),
		PreviousCode: priorEntrySource(files, s.resolveEntry(files), req.PreviousCode),
	}
	// The failed output is discarded wholesale; only the freshly regenerated
	// output is wrapped and bundled again.
	files, err = s.generateOnce(ctx, repairReq)
	if err != nil {
		return GeneratedOutput{}, true, fmt.Errorf("generation failed: %w", err)
	}

	wrapped, script, buildErr = s.attempt(files)
	if buildErr != nil {
		// Bounded retry, not a loop: the second bundle failure is terminal.
		return GeneratedOutput{}, true, buildErr
	}
	return GeneratedOutput{Files: wrapped, PreviewHTML: preview.BuildHTML(script)}, true, nil
}

// attempt wraps the file set's entry and bundles it, reporting the wrapped
// set so a success response carries what was actually bundled.
func (s *Service) attempt(files []project.File) ([]project.File, string, error) {
	entry := s.resolveEntry(files)
	wrapped := preview.WrapEntry(files, entry)

	start := time.Now()
	script, err := bundler.Bundle(wrapped, entry)
	metrics.ObserveBundleDurationMs(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, "", err
	}
	return wrapped, script, nil
}

func (s *Service) generateOnce(ctx context.Context, input llm.Input) ([]project.File, error) {
	if s.LLMTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.LLMTimeout)
		defer cancel()
	}
	return s.Provider.GenerateProject(ctx, input)
}

func (s *Service) resolveEntry(files []project.File) string {
	if _, ok := project.Find(files, s.EntryPath); ok {
		return s.EntryPath
	}
	for _, candidate := range entryCandidates {
		if _, ok := project.Find(files, candidate); ok {
			return candidate
		}
	}
	return s.EntryPath
}

// record persists the run trace best-effort: a repo failure is logged and
// never changes the pipeline outcome.
func (s *Service) record(ctx context.Context, rec Record) {
	if s.Repo == nil {
		return
	}
	if err := s.Repo.Insert(ctx, rec); err != nil {
		telemetry.Error("generation.record_failed", map[string]any{
			"generation_id": rec.ID,
			"error":         err.Error(),
		})
	}
}

// repairInstruction restates the original ask, the import policy, and the
// literal diagnostic for the second generation attempt.
func repairInstruction(original, diagnostic string) string {
	var b strings.Builder
	if strings.TrimSpace(original) != "" {
		b.WriteString(strings.TrimSpace(original))
		b.WriteString("\n\n")
	}
	b.WriteString("The previous attempt failed to build. ")
	b.WriteString(bundler.PolicyText())
	b.WriteString("\n\nBuild error:\n")
	b.WriteString(diagnostic)
	b.WriteString("\n\nRegenerate the complete project with this error fixed.")
	return b.String()
}

// priorEntrySource extracts the failed output's entry source for repair
// context, falling back to the caller-supplied previousCode.
func priorEntrySource(files []project.File, entryPath, fallback string) string {
	if f, ok := project.Find(files, entryPath); ok {
		return f.Content
	}
	return fallback
}
