package engagement

import (
	"context"
	"errors"
	"testing"

	"github.com/campushot/server/internal/hotkey"
	"github.com/campushot/server/internal/models"
	"github.com/campushot/server/internal/testutil"
)

// fakeCounterStore mimics the counter collection with canonical-id keys.
type fakeCounterStore struct {
	counters map[string]int
	failWith error
}

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{counters: make(map[string]int)}
}

func (f *fakeCounterStore) GetOne(_ context.Context, rawID string) int {
	return f.counters[hotkey.Normalize(rawID)]
}

func (f *fakeCounterStore) GetMany(_ context.Context, rawIDs []string) map[string]int {
	out := make(map[string]int)
	for _, raw := range rawIDs {
		if n, ok := f.counters[hotkey.Normalize(raw)]; ok {
			out[raw] = n
		}
	}
	return out
}

func (f *fakeCounterStore) IncrementOrCreate(_ context.Context, rawID string, _ models.ClickMeta) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.counters[hotkey.Normalize(rawID)]++
	return nil
}

func TestIncrementClick_CreatesThenAccumulates(t *testing.T) {
	store := newFakeCounterStore()
	svc := NewService(store, testutil.NullLogger())
	ctx := context.Background()

	if err := svc.IncrementClick(ctx, "X", models.ClickMeta{}); err != nil {
		t.Fatalf("first increment: %v", err)
	}
	if got := svc.GetCount(ctx, "X"); got != 1 {
		t.Errorf("after first click count = %d, want 1", got)
	}

	if err := svc.IncrementClick(ctx, "X", models.ClickMeta{}); err != nil {
		t.Fatalf("second increment: %v", err)
	}
	if got := svc.GetCount(ctx, "X"); got != 2 {
		t.Errorf("after second click count = %d, want 2", got)
	}
}

func TestIncrementClick_AliasedIDsShareOneCounter(t *testing.T) {
	store := newFakeCounterStore()
	svc := NewService(store, testutil.NullLogger())
	ctx := context.Background()

	if err := svc.IncrementClick(ctx, "42", models.ClickMeta{}); err != nil {
		t.Fatal(err)
	}
	if err := svc.IncrementClick(ctx, "hot-notice-42", models.ClickMeta{}); err != nil {
		t.Fatal(err)
	}

	if got := svc.GetCount(ctx, "notice-42"); got != 2 {
		t.Errorf("count = %d, want 2 (both raw ids hit one counter)", got)
	}
}

func TestIncrementClick_BlankIDIsNoOp(t *testing.T) {
	store := newFakeCounterStore()
	svc := NewService(store, testutil.NullLogger())

	if err := svc.IncrementClick(context.Background(), "   ", models.ClickMeta{}); err != nil {
		t.Errorf("blank id returned error: %v", err)
	}
	if len(store.counters) != 0 {
		t.Errorf("blank id created a counter: %v", store.counters)
	}
}

func TestIncrementClick_PropagatesWriteError(t *testing.T) {
	store := newFakeCounterStore()
	store.failWith = errors.New("write refused")
	svc := NewService(store, testutil.NullLogger())

	if err := svc.IncrementClick(context.Background(), "X", models.ClickMeta{}); err == nil {
		t.Error("expected write error to propagate, got nil")
	}
}

func TestGetCounts_OmitsUnknownIDs(t *testing.T) {
	store := newFakeCounterStore()
	store.counters[hotkey.Normalize("a")] = 3
	svc := NewService(store, testutil.NullLogger())

	counts := svc.GetCounts(context.Background(), []string{"a", "b"})
	if len(counts) != 1 {
		t.Fatalf("counts = %v, want only id a", counts)
	}
	if counts["a"] != 3 {
		t.Errorf("counts[a] = %d, want 3", counts["a"])
	}
}
