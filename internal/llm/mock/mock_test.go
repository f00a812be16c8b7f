package mock

import (
	"context"
	"strings"
	"testing"

	"uigen-backend/internal/bundler"
	"uigen-backend/internal/llm"
	"uigen-backend/internal/project"
)

func TestGenerateProjectIsDeterministic(t *testing.T) {
	client := New()
	input := llm.Input{Instruction: "a blue signup form"}

	a, err := client.GenerateProject(context.Background(), input)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := client.GenerateProject(context.Background(), input)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("file counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("file %d differs between identical runs", i)
		}
	}
}

func TestGenerateProjectOutputBundles(t *testing.T) {
	client := New()

	files, err := client.GenerateProject(context.Background(), llm.Input{Instruction: "a red dashboard"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, ok := project.Find(files, llm.EntryPathContract); !ok {
		t.Fatalf("mock output must honor the entry contract %q", llm.EntryPathContract)
	}
	if _, err := bundler.Bundle(files, llm.EntryPathContract); err != nil {
		t.Fatalf("mock output must always bundle: %v", err)
	}
}

func TestAccentFollowsColorWords(t *testing.T) {
	client := New()

	files, err := client.GenerateProject(context.Background(), llm.Input{Instruction: "a purple gallery"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	theme, ok := project.Find(files, "src/theme.ts")
	if !ok {
		t.Fatalf("theme file missing")
	}
	if !strings.Contains(theme.Content, "#7c3aed") {
		t.Fatalf("expected the purple accent in the theme, got:\n%s", theme.Content)
	}
}

func TestInstructionIsEscapedInMarkup(t *testing.T) {
	client := New()

	files, err := client.GenerateProject(context.Background(), llm.Input{
		Instruction: `show <b>bold</b> & {braces}`,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	app, ok := project.Find(files, "src/App.tsx")
	if !ok {
		t.Fatalf("app file missing")
	}
	if strings.Contains(app.Content, "<b>") || strings.Contains(app.Content, "{braces}") {
		t.Fatalf("instruction text must not inject JSX:\n%s", app.Content)
	}
}

func TestLiveReportsOffline(t *testing.T) {
	if New().Live() {
		t.Fatalf("the deterministic generator must report Live() == false")
	}
}
