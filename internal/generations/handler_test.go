package generations

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"uigen-backend/internal/project"
)

func newTestRouter(provider *scriptedProvider, repo Repo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(provider, repo, "src/App.tsx", 0))
	r := gin.New()
	h.RegisterRoutes(r)
	h.RegisterHistoryRoutes(r.Group("/api/v1"))
	return r
}

func postGenerate(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateEndpointSuccess(t *testing.T) {
	provider := &scriptedProvider{projects: [][]project.File{goodProject()}, live: true}
	r := newTestRouter(provider, NewMemoryRepo())

	w := postGenerate(t, r, `{"instruction": "a counter"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var out GeneratedOutput
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not GeneratedOutput: %v", err)
	}
	if len(out.Files) == 0 {
		t.Fatalf("response missing files")
	}
	if !strings.Contains(out.PreviewHTML, "<script") {
		t.Fatalf("previewHtml should embed the bundle")
	}
}

func TestGenerateEndpointRejectsBlankInstruction(t *testing.T) {
	provider := &scriptedProvider{live: true}
	r := newTestRouter(provider, NewMemoryRepo())

	for _, body := range []string{
		`{"instruction": ""}`,
		`{"instruction": "   "}`,
		`{}`,
		`not json`,
	} {
		w := postGenerate(t, r, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
			continue
		}
		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Errorf("body %q: error payload not a flat object: %v", body, err)
			continue
		}
		if resp["error"] == "" {
			t.Errorf("body %q: missing error message", body)
		}
		if len(provider.inputs) != 0 {
			t.Fatalf("body %q: invalid input must never reach the provider", body)
		}
	}
}

func TestGenerateEndpointSurfacesBundleDiagnostic(t *testing.T) {
	provider := &scriptedProvider{projects: [][]project.File{brokenProject()}, live: false}
	r := newTestRouter(provider, NewMemoryRepo())

	w := postGenerate(t, r, `{"instruction": "a chart"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error payload not a flat object: %v", err)
	}
	if !strings.Contains(resp["error"], "recharts") {
		t.Fatalf("error should name the offending import, got %q", resp["error"])
	}
}

func TestHistoryEndpoints(t *testing.T) {
	provider := &scriptedProvider{projects: [][]project.File{goodProject()}, live: true}
	repo := NewMemoryRepo()
	r := newTestRouter(provider, repo)

	if w := postGenerate(t, r, `{"instruction": "a counter"}`); w.Code != http.StatusOK {
		t.Fatalf("seed run failed: %d %s", w.Code, w.Body.String())
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/generations", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var listResp struct {
		Generations []Record `json:"generations"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("list payload: %v", err)
	}
	if len(listResp.Generations) != 1 {
		t.Fatalf("expected one recorded run, got %d", len(listResp.Generations))
	}

	id := listResp.Generations[0].ID
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/generations/"+id, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/generations/absent", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing id status = %d, want 404", w.Code)
	}
}
