package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnGenerate(ctx, GenerateEvent{Layers: 5, Sprinkles: 270, Target: 274})
	p.OnRender(ctx, "svg", 1024, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/scene.{format}", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	p := &testPipelineHooks{}
	c := &testCacheHooks{}
	h := &testHTTPHooks{}
	SetPipelineHooks(p)
	SetCacheHooks(c)
	SetHTTPHooks(h)

	ctx := context.Background()
	Pipeline().OnGenerate(ctx, GenerateEvent{Sprinkles: 3})
	Cache().OnCacheHit(ctx, "artifact")
	HTTP().OnRequest(ctx, "GET", "/healthz", 200, 0)

	if p.generated != 1 || p.lastSprinkles != 3 {
		t.Errorf("pipeline hooks = %+v", p)
	}
	if c.hits != 1 {
		t.Errorf("cache hits = %d, want 1", c.hits)
	}
	if h.requests != 1 {
		t.Errorf("http requests = %d, want 1", h.requests)
	}

	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(p) {
		t.Error("SetPipelineHooks(nil) should keep the registered hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

type testPipelineHooks struct {
	NoopPipelineHooks
	generated     int
	lastSprinkles int
}

func (h *testPipelineHooks) OnGenerate(_ context.Context, ev GenerateEvent) {
	h.generated++
	h.lastSprinkles = ev.Sprinkles
}

type testCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *testCacheHooks) OnCacheHit(context.Context, string) { h.hits++ }

type testHTTPHooks struct {
	requests int
}

func (h *testHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {
	h.requests++
}
