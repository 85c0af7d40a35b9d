package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/truchet/pkg/cache"
	"github.com/matzehuels/truchet/pkg/pipeline"
)

const smallPattern = "seed=7&max_depth=3&width=300&height=300&border=20"

func newTestServer(t *testing.T, base pipeline.Options) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(fc, nil, logger)
	srv := httptest.NewServer(newRouter(runner, base, logger))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string, header http.Header) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, pipeline.Options{})

	resp, body := get(t, srv, "/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"ok"`) {
		t.Errorf("body = %s", body)
	}
	if _, err := uuid.Parse(resp.Header.Get(headerRequestID)); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID", resp.Header.Get(headerRequestID))
	}
}

func TestPatternSVG(t *testing.T) {
	srv := newTestServer(t, pipeline.Options{})

	resp, body := get(t, srv, "/pattern.svg?"+smallPattern, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := resp.Header.Get(headerCache); got != "miss" {
		t.Errorf("first request X-Cache = %q, want miss", got)
	}
	if got := resp.Header.Get(headerSeed); got != "7" {
		t.Errorf("X-Truchet-Seed = %q, want 7", got)
	}
	if !strings.Contains(string(body), "<svg") {
		t.Error("body is not an SVG document")
	}

	resp2, body2 := get(t, srv, "/pattern.svg?"+smallPattern, nil)
	if got := resp2.Header.Get(headerCache); got != "hit" {
		t.Errorf("second request X-Cache = %q, want hit", got)
	}
	if string(body) != string(body2) {
		t.Error("cached artifact differs from the generated one")
	}
}

func TestPatternJSON(t *testing.T) {
	srv := newTestServer(t, pipeline.Options{})

	resp, body := get(t, srv, "/pattern.json?"+smallPattern+"&split_chance=0&min_depth=0", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	var out struct {
		Seed   uint64 `json:"seed"`
		Params struct {
			MaxDepth    int `json:"max_depth"`
			SplitChance int `json:"split_chance"`
		} `json:"params"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Seed != 7 || out.Params.MaxDepth != 3 || out.Params.SplitChance != 0 {
		t.Errorf("decoded = %+v", out)
	}
}

func TestPatternUsesBaseOptions(t *testing.T) {
	srv := newTestServer(t, pipeline.Options{Seed: 11, MaxDepth: 2, Width: 200, Height: 200, Border: pipeline.Float(10)})

	resp, _ := get(t, srv, "/pattern.svg", nil)
	if got := resp.Header.Get(headerSeed); got != "11" {
		t.Errorf("X-Truchet-Seed = %q, want base seed 11", got)
	}

	resp, _ = get(t, srv, "/pattern.svg?seed=12", nil)
	if got := resp.Header.Get(headerSeed); got != "12" {
		t.Errorf("X-Truchet-Seed = %q, want query seed 12", got)
	}
}

func TestPatternErrors(t *testing.T) {
	srv := newTestServer(t, pipeline.Options{})

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"unknown format", "/pattern.gif", http.StatusBadRequest, "INVALID_FORMAT"},
		{"malformed number", "/pattern.svg?seed=abc", http.StatusBadRequest, "INVALID_INPUT"},
		{"bad colour", "/pattern.svg?fg=" + url.QueryEscape("#12345"), http.StatusBadRequest, "INVALID_COLOR"},
		{"depth out of range", "/pattern.svg?max_depth=20", http.StatusBadRequest, "INVALID_CONFIG"},
		{"canvas too large", "/pattern.png?width=1048576&height=1048576&scale=1000", http.StatusBadRequest, "INVALID_CONFIG"},
		{"scale too large", "/pattern.png?" + smallPattern + "&scale=100", http.StatusBadRequest, "INVALID_CONFIG"},
		{"border too wide", "/pattern.svg?width=300&border=150&max_depth=2", http.StatusBadRequest, "INVALID_CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, srv, tt.path, nil)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", resp.StatusCode, tt.status, body)
			}
			var e errorResponse
			if err := json.Unmarshal(body, &e); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if e.Code != tt.code {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
			if e.RequestID == "" {
				t.Error("error body should carry the request id")
			}
		})
	}
}

func TestRequestIDPropagated(t *testing.T) {
	srv := newTestServer(t, pipeline.Options{})
	id := uuid.NewString()

	resp, _ := get(t, srv, "/healthz", http.Header{headerRequestID: {id}})
	if got := resp.Header.Get(headerRequestID); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}

	resp, _ = get(t, srv, "/healthz", http.Header{headerRequestID: {"not-a-uuid"}})
	if got := resp.Header.Get(headerRequestID); got == "not-a-uuid" {
		t.Error("invalid request ids must be replaced")
	}
}

func TestOptionsFromQuery(t *testing.T) {
	q := url.Values{
		"seed":         {"9"},
		"rotation":     {"0"},
		"border":       {"0"},
		"min_depth":    {"0"},
		"split_chance": {"25"},
		"parallel":     {"true"},
		"bg":           {"#000"},
		"scale":        {"2"},
	}
	opts, err := optionsFromQuery(pipeline.Options{Width: 640}, q)
	if err != nil {
		t.Fatalf("optionsFromQuery() error: %v", err)
	}
	if opts.Seed != 9 || opts.Width != 640 || !opts.Parallel || opts.Background != "#000" || opts.Scale != 2 {
		t.Errorf("opts = %+v", opts)
	}
	if opts.Rotation == nil || *opts.Rotation != 0 {
		t.Error("rotation=0 should be explicit")
	}
	if opts.Border == nil || *opts.Border != 0 {
		t.Error("border=0 should be explicit")
	}
	if opts.MinDepth == nil || *opts.MinDepth != 0 || opts.SplitChance == nil || *opts.SplitChance != 25 {
		t.Error("pointer options not set")
	}

	if _, err := optionsFromQuery(pipeline.Options{}, url.Values{"parallel": {"maybe"}}); err == nil {
		t.Error("invalid bool should fail")
	}
}

func TestListenURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":8080", "http://localhost:8080"},
		{"0.0.0.0:9000", "http://localhost:9000"},
		{"127.0.0.1:80", "http://127.0.0.1:80"},
		{"[::]:8080", "http://localhost:8080"},
		{"example", "http://example"},
	}
	for _, tt := range tests {
		if got := listenURL(tt.addr); got != tt.want {
			t.Errorf("listenURL(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}
