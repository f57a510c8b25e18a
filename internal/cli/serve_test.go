package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/apcamargo/phylodraw/pkg/cache"
	pderrors "github.com/apcamargo/phylodraw/pkg/errors"
	"github.com/apcamargo/phylodraw/pkg/pipeline"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	c := New(io.Discard, LogInfo)
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
	srv := httptest.NewServer(c.serveRouter(runner))
	t.Cleanup(srv.Close)
	return srv
}

func TestServeHealthz(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want %q", body["status"], "ok")
	}
}

func TestServeRender(t *testing.T) {
	srv := testServer(t)

	reqBody := `{
		"tree": {
			"rooted": true,
			"name": "root",
			"children": [
				{"name": "A", "length": 0.1},
				{"name": "B", "length": 0.2}
			]
		},
		"options": {"formats": ["svg"]}
	}`

	resp, err := http.Post(srv.URL+"/render", "application/json", strings.NewReader(reqBody))
	if err != nil {
		t.Fatalf("POST /render: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want 200, body: %s", resp.StatusCode, raw)
	}
	if got := resp.Header.Get("X-Request-ID"); got == "" {
		t.Error("expected X-Request-ID header")
	}

	var body renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.TreeHash == "" {
		t.Error("expected a tree hash")
	}
	if body.Stats.TipCount != 2 {
		t.Errorf("TipCount = %d, want 2", body.Stats.TipCount)
	}
	svg, ok := body.Artifacts["svg"]
	if !ok {
		t.Fatal("expected an svg artifact")
	}
	if !strings.Contains(svg, "<svg") {
		t.Errorf("artifact does not look like SVG: %.60s", svg)
	}
}

func TestServeRenderMissingTree(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/render", "application/json", strings.NewReader(`{"options": {}}`))
	if err != nil {
		t.Fatalf("POST /render: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != "INVALID_TREE" {
		t.Errorf("Code = %q, want INVALID_TREE", body.Code)
	}
}

func TestServeRenderInvalidFormat(t *testing.T) {
	srv := testServer(t)

	reqBody := `{
		"tree": {"name": "A", "length": 1},
		"options": {"formats": ["pdf"]}
	}`

	resp, err := http.Post(srv.URL+"/render", "application/json", strings.NewReader(reqBody))
	if err != nil {
		t.Fatalf("POST /render: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestStatusForErrorMapping(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"INVALID_TREE", http.StatusBadRequest},
		{"INVALID_CONFIG", http.StatusBadRequest},
		{"LAYOUT_INFEASIBLE", http.StatusUnprocessableEntity},
		{"INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		err := pderrors.New(pderrors.Code(tt.code), "boom")
		if got := statusForError(err); got != tt.want {
			t.Errorf("statusForError(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
