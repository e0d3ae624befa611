package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/frosting/pkg/core/render"
	"github.com/matzehuels/frosting/pkg/core/scene"
	ferrors "github.com/matzehuels/frosting/pkg/errors"
	"github.com/matzehuels/frosting/pkg/observability"
	"github.com/matzehuels/frosting/pkg/pipeline"
	"github.com/matzehuels/frosting/pkg/presets"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	opts = append([]Option{WithLogger(logger)}, opts...)
	ts := httptest.NewServer(New(runner, opts...).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/healthz")
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("GET /healthz = %d %q", resp.StatusCode, body)
	}
}

func TestVersion(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/version")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var info map[string]string
	if err := json.Unmarshal(body, &info); err != nil {
		t.Fatal(err)
	}
	if info["version"] == "" {
		t.Errorf("version missing: %s", body)
	}
}

func TestPresets(t *testing.T) {
	ctx := context.Background()
	store := presets.NewFileStore(filepath.Join(t.TempDir(), "presets.toml"))
	err := store.Put(ctx, presets.Preset{
		Name:           "Lemon",
		Background:     "#CCA995",
		FrostingTop:    "#FFF59D",
		FrostingBottom: "#FBC02D",
		Sprinkles:      []string{"#FFFFFF"},
	})
	if err != nil {
		t.Fatal(err)
	}
	ts := newTestServer(t, WithPresetStore(store))

	resp, body := get(t, ts, "/presets")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /presets = %d", resp.StatusCode)
	}
	var all []presets.Preset
	if err := json.Unmarshal(body, &all); err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 || all[4].Name != "Lemon" {
		t.Errorf("presets = %+v", all)
	}

	resp, body = get(t, ts, "/presets/"+url.PathEscape("Mint Frosted Chocolate Donut"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET preset = %d %s", resp.StatusCode, body)
	}
	var p presets.Preset
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatal(err)
	}
	if p.Background != "#3E2723" {
		t.Errorf("preset = %+v", p)
	}

	resp, body = get(t, ts, "/presets/Nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown preset status = %d", resp.StatusCode)
	}
	var e errorBody
	if err := json.Unmarshal(body, &e); err != nil {
		t.Fatal(err)
	}
	if e.Code != string(ferrors.ErrCodePresetNotFound) {
		t.Errorf("error code = %q", e.Code)
	}
}

func TestSceneSeeded(t *testing.T) {
	ts := newTestServer(t)
	path := "/scene.svg?width=240&height=160&seed=7"

	resp, first := get(t, ts, path)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, first)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := resp.Header.Get("X-Seed"); got != "7" {
		t.Errorf("X-Seed = %q, want 7", got)
	}
	if resp.Header.Get("X-Scene-ID") == "" || resp.Header.Get("X-Sprinkles") == "" {
		t.Error("scene headers missing")
	}
	if !strings.Contains(resp.Header.Get("Cache-Control"), "immutable") {
		t.Errorf("Cache-Control = %q", resp.Header.Get("Cache-Control"))
	}
	if !bytes.Contains(first, []byte(`width="240"`)) {
		t.Errorf("svg does not use the requested width")
	}

	_, second := get(t, ts, path)
	if !bytes.Equal(first, second) {
		t.Error("same seed produced different scenes")
	}
}

func TestSceneSprinkleSeed(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/scene.svg?width=240&height=160&seed=7&sprinkle_seed=3")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if got := resp.Header.Get("X-Sprinkle-Seed"); got != "3" {
		t.Errorf("X-Sprinkle-Seed = %q, want 3", got)
	}
	_, plain := get(t, ts, "/scene.svg?width=240&height=160&seed=7")
	if bytes.Equal(body, plain) {
		t.Error("sprinkle seed did not change the sprinkles")
	}
}

func TestSceneUnseededReportsSeed(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/scene.json?width=200&height=120")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if resp.Header.Get("Cache-Control") != "no-store" {
		t.Errorf("Cache-Control = %q", resp.Header.Get("Cache-Control"))
	}
	seed := resp.Header.Get("X-Seed")
	if seed == "" {
		t.Fatal("X-Seed missing")
	}

	_, replay := get(t, ts, "/scene.json?width=200&height=120&seed="+seed)
	var a, b struct {
		Sprinkles []json.RawMessage `json:"sprinkles"`
		Layers    []json.RawMessage `json:"layers"`
	}
	if err := json.Unmarshal(body, &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(replay, &b); err != nil {
		t.Fatal(err)
	}
	if len(a.Sprinkles) != len(b.Sprinkles) || string(a.Layers[0]) != string(b.Layers[0]) {
		t.Error("replaying X-Seed did not reproduce the scene")
	}
}

func TestSceneQueryOverrides(t *testing.T) {
	ts := newTestServer(t)
	q := url.Values{
		"preset":    {"Chocolate Frosted Donut"},
		"width":     {"300"},
		"height":    {"200"},
		"top":       {"abcdef"},
		"sprinkles": {"000000,#ffffff"},
		"seed":      {"1"},
	}
	resp, body := get(t, ts, "/scene.json?"+q.Encode())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var out struct {
		Config struct {
			Width          int      `json:"width"`
			FrostingTop    string   `json:"frosting_top"`
			FrostingBottom string   `json:"frosting_bottom"`
			Sprinkles      []string `json:"sprinkles"`
		} `json:"config"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatal(err)
	}
	c := out.Config
	if c.Width != 300 || c.FrostingTop != "#ABCDEF" || c.FrostingBottom != "#4E342E" {
		t.Errorf("config = %+v", c)
	}
	if strings.Join(c.Sprinkles, " ") != "#000000 #FFFFFF" {
		t.Errorf("sprinkles = %v", c.Sprinkles)
	}
}

func TestSceneErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		status int
		code   ferrors.Code
	}{
		{"unknown format", "/scene.gif", http.StatusBadRequest, ferrors.ErrCodeInvalidFormat},
		{"bad integer", "/scene.svg?width=wide", http.StatusBadRequest, ferrors.ErrCodeInvalidConfig},
		{"zero width", "/scene.svg?width=0", http.StatusBadRequest, ferrors.ErrCodeInvalidConfig},
		{"bad color", "/scene.svg?bg=zzzzzz", http.StatusBadRequest, ferrors.ErrCodeInvalidColor},
		{"bad seed", "/scene.svg?seed=-1", http.StatusBadRequest, ferrors.ErrCodeInvalidConfig},
		{"scale too big", "/scene.png?scale=100", http.StatusBadRequest, ferrors.ErrCodeInvalidConfig},
		{"raster too large", "/scene.png?width=8192&height=8192&density=0&scale=8", http.StatusBadRequest, ferrors.ErrCodeInvalidConfig},
		{"too many sprinkles", "/scene.svg?width=8192&height=8192&density=1000", http.StatusBadRequest, ferrors.ErrCodeInvalidConfig},
		{"sprinkle seed without seed", "/scene.svg?sprinkle_seed=2", http.StatusBadRequest, ferrors.ErrCodeInvalidConfig},
		{"unknown preset", "/scene.svg?preset=Nope", http.StatusNotFound, ferrors.ErrCodePresetNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts, tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.status, body)
			}
			var e errorBody
			if err := json.Unmarshal(body, &e); err != nil {
				t.Fatalf("error body: %v (%s)", err, body)
			}
			if e.Code != string(tt.code) {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
		})
	}
}

func TestScenePDFWithoutConverter(t *testing.T) {
	if render.Available() {
		t.Skip("rsvg-convert is installed")
	}
	ts := newTestServer(t)
	resp, _ := get(t, ts, "/scene.pdf?width=100&height=100&seed=1")
	if resp.StatusCode != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", resp.StatusCode)
	}
}

func TestBaseConfig(t *testing.T) {
	base := scene.Default()
	base.Width, base.Height = 128, 64
	ts := newTestServer(t, WithBaseConfig(base))
	_, body := get(t, ts, "/scene.svg?seed=2")
	if !bytes.Contains(body, []byte(`width="128"`)) || !bytes.Contains(body, []byte(`height="64"`)) {
		t.Error("base config not applied")
	}
}

type recordingHTTPHooks struct {
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route)
	h.status = append(h.status, status)
}

func TestRequestHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t)
	get(t, ts, "/scene.svg?width=50&height=50&seed=1")
	get(t, ts, "/presets/Nope")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	want := []string{"GET /scene.{format}", "GET /presets/{name}"}
	if strings.Join(hooks.routes, "|") != strings.Join(want, "|") {
		t.Errorf("routes = %v, want %v", hooks.routes, want)
	}
	if len(hooks.status) == 2 && (hooks.status[0] != 200 || hooks.status[1] != 404) {
		t.Errorf("status = %v", hooks.status)
	}
}

func TestParseSceneQuery(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		query string
		check func(t *testing.T, o pipeline.Options)
	}{
		{"empty keeps base", "", func(t *testing.T, o pipeline.Options) {
			if o.Config.Width != 800 || o.Seeded() {
				t.Errorf("got %+v", o)
			}
		}},
		{"flag without value", "allow_overlap", func(t *testing.T, o pipeline.Options) {
			if !o.Config.AllowOverlap {
				t.Error("allow_overlap not set")
			}
		}},
		{"floats", "drip=40.5&overlap=0.2&density=75", func(t *testing.T, o pipeline.Options) {
			if o.Config.DripHeight != 40.5 || o.Config.Overlap != 0.2 || o.Config.Density != 75 {
				t.Errorf("got %+v", o.Config)
			}
		}},
		{"render options", "seed=99&scale=2&title=hi&refresh=1", func(t *testing.T, o pipeline.Options) {
			if o.Seed == nil || *o.Seed != 99 || o.Scale != 2 || o.Title != "hi" || !o.Refresh {
				t.Errorf("got %+v", o)
			}
		}},
		{"sprinkle seed", "seed=1&sprinkle_seed=2", func(t *testing.T, o pipeline.Options) {
			if o.SprinkleSeed == nil || *o.SprinkleSeed != 2 {
				t.Errorf("SprinkleSeed = %v, want 2", o.SprinkleSeed)
			}
		}},
		{"drawing options", "bare&outline=ff0000", func(t *testing.T, o pipeline.Options) {
			if !o.NoSprinkles || o.SurfaceLine != "#FF0000" {
				t.Errorf("got NoSprinkles=%v SurfaceLine=%q", o.NoSprinkles, o.SurfaceLine)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			o, err := parseSceneQuery(ctx, q, scene.Default(), nil)
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, o)
		})
	}
}
