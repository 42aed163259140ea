package renderer

import "testing"

func TestUniformCacheReturnsCachedLocation(t *testing.T) {
	cache := NewUniformCache(7)
	cache.locations["viewProjection"] = 3

	// A cached name must not reach the GL driver, so this runs without a context.
	if loc := cache.GetLocation("viewProjection"); loc != 3 {
		t.Errorf("Expected cached location 3, got %d", loc)
	}
	if cache.program != 7 {
		t.Errorf("Program not stored, got %d", cache.program)
	}
}

func TestUniformCacheClear(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["viewProjection"] = 5

	cache.Clear()

	if len(cache.locations) != 0 {
		t.Error("Clear should empty the cache")
	}
}
