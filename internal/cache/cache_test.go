package cache

import (
	"sync"
	"testing"
	"time"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	c := NewMemory(time.Minute)
	defer c.Stop()

	c.Set("k", "v")

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Get() returned false for existing key")
	}
	if got != "v" {
		t.Errorf("Get() = %v, want v", got)
	}
}

func TestMemoryCache_Get_Missing(t *testing.T) {
	c := NewMemory(time.Minute)
	defer c.Stop()

	if _, ok := c.Get("nope"); ok {
		t.Error("Get() returned true for missing key")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemory(time.Minute)
	defer c.Stop()

	c.SetWithTTL("k", "v", -time.Second)

	if _, ok := c.Get("k"); ok {
		t.Error("Get() returned expired entry")
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemory(time.Minute)
	defer c.Stop()

	c.Set("k", "v")
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Error("Get() returned deleted entry")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemory(time.Minute)
	defer c.Stop()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Error("Clear() left entry a")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("Clear() left entry b")
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemory(time.Minute)
	defer c.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set("shared", n)
			c.Get("shared")
		}(i)
	}
	wg.Wait()

	if _, ok := c.Get("shared"); !ok {
		t.Error("entry missing after concurrent writes")
	}
}
