package project

import "testing"

func TestCleanPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"src/App.tsx", "src/App.tsx"},
		{"./src/App.tsx", "src/App.tsx"},
		{"/src/App.tsx", "src/App.tsx"},
		{"src\\App.tsx", "src/App.tsx"},
		{"src/./App.tsx", "src/App.tsx"},
		{"src/components/../App.tsx", "src/App.tsx"},
		{".", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CleanPath(tc.in); got != tc.want {
			t.Errorf("CleanPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFindMatchesAcrossSpellings(t *testing.T) {
	files := []File{{Path: "./src/App.tsx", Content: "a"}}

	if _, ok := Find(files, "src/App.tsx"); !ok {
		t.Fatalf("equivalent spellings should match")
	}
	if _, ok := Find(files, "src/Other.tsx"); ok {
		t.Fatalf("absent path matched")
	}
}

func TestIndexFirstDuplicateWins(t *testing.T) {
	files := []File{
		{Path: "src/App.tsx", Content: "first"},
		{Path: "./src/App.tsx", Content: "second"},
	}

	idx := Index(files)
	if len(idx) != 1 {
		t.Fatalf("duplicates should collapse to one entry, got %d", len(idx))
	}
	if idx["src/App.tsx"].Content != "first" {
		t.Fatalf("later duplicate displaced the first entry")
	}
}
