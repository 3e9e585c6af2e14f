package database

import (
	"fmt"
	"testing"
)

func TestChunkIDs(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		size      int
		wantLens  []int
	}{
		{"empty", 0, 10, []int{}},
		{"under one batch", 7, 10, []int{7}},
		{"exact batch", 10, 10, []int{10}},
		{"uneven tail", 37, 10, []int{10, 10, 10, 7}},
		{"one over", 11, 10, []int{10, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, tt.count)
			for i := range ids {
				ids[i] = fmt.Sprintf("notice-%d", i)
			}

			chunks := chunkIDs(ids, tt.size)
			if len(chunks) != len(tt.wantLens) {
				t.Fatalf("got %d chunks, want %d", len(chunks), len(tt.wantLens))
			}
			total := 0
			for i, chunk := range chunks {
				if len(chunk) != tt.wantLens[i] {
					t.Errorf("chunk %d has %d ids, want %d", i, len(chunk), tt.wantLens[i])
				}
				total += len(chunk)
			}
			if total != tt.count {
				t.Errorf("chunks hold %d ids, want %d", total, tt.count)
			}
		})
	}
}

func TestChunkIDs_BatchCountBound(t *testing.T) {
	// 37 distinct ids at the store's batch size must produce exactly 4 queries.
	ids := make([]string, 37)
	for i := range ids {
		ids[i] = fmt.Sprintf("notice-%d", i)
	}
	if got := len(chunkIDs(ids, counterBatchSize)); got != 4 {
		t.Errorf("37 ids produced %d batches, want 4", got)
	}
}

func TestChunkIDs_NonPositiveSize(t *testing.T) {
	ids := []string{"a", "b"}
	chunks := chunkIDs(ids, 0)
	if len(chunks) != 1 || len(chunks[0]) != 2 {
		t.Errorf("expected single chunk holding all ids, got %v", chunks)
	}
}
