package observability

import (
	"context"
	"testing"
	"time"
)

type countingCacheHooks struct {
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	ctx := context.Background()
	Pipeline().OnDecodeStart(ctx, 100)
	Pipeline().OnLayoutComplete(ctx, 5, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "layout")
	Serve().OnRequest(ctx, "POST", "/render")
}

func TestSetCacheHooksReceivesEvents(t *testing.T) {
	t.Cleanup(Reset)

	h := &countingCacheHooks{}
	SetCacheHooks(h)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheSet(ctx, "artifact", 1024)

	if h.hits != 1 || h.misses != 2 || h.sets != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/2/1", h.hits, h.misses, h.sets)
	}
}

func TestSetHooksIgnoresNil(t *testing.T) {
	t.Cleanup(Reset)

	SetCacheHooks(nil)
	if Cache() == nil {
		t.Fatal("Cache() returned nil after SetCacheHooks(nil)")
	}
}
