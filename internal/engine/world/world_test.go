package world

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

// countingGenerator fills one marker block per chunk and counts runs.
type countingGenerator struct {
	runs atomic.Int32
}

func (g *countingGenerator) Generate(c *Chunk, cx, cz int32) {
	g.runs.Add(1)
	c.SetBlock(0, 64, 0, 1)
}

// opaqueStoneRegistry treats only block 1 as opaque.
type opaqueStoneRegistry struct{}

func (opaqueStoneRegistry) IsOpaque(id BlockID) bool { return id == 1 }

func TestGetChunkGeneratesOnce(t *testing.T) {
	g := &countingGenerator{}
	w := NewWorld(g, opaqueStoneRegistry{})

	c1 := w.GetChunk(3, -2)
	c2 := w.GetChunk(3, -2)
	if c1 != c2 {
		t.Fatal("GetChunk returned different instances for the same coordinate")
	}
	if !c1.Generated() {
		t.Error("chunk not marked generated")
	}
	if got := g.runs.Load(); got != 1 {
		t.Errorf("generator ran %d times, want 1", got)
	}
}

func TestGetChunkConcurrentSingleGeneration(t *testing.T) {
	g := &countingGenerator{}
	w := NewWorld(g, opaqueStoneRegistry{})

	const callers = 32
	results := make([]*Chunk, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = w.GetChunk(7, 7)
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if results[i] != results[0] {
			t.Fatalf("caller %d observed a different chunk instance", i)
		}
	}
	if got := g.runs.Load(); got != 1 {
		t.Errorf("generator ran %d times under contention, want 1", got)
	}
}

func TestGetChunkParallelCoordinates(t *testing.T) {
	g := &countingGenerator{}
	w := NewWorld(g, opaqueStoneRegistry{})

	var wg sync.WaitGroup
	for x := int32(0); x < 8; x++ {
		for z := int32(0); z < 8; z++ {
			wg.Add(1)
			go func(x, z int32) {
				defer wg.Done()
				w.GetChunk(x, z)
			}(x, z)
		}
	}
	wg.Wait()

	if got := g.runs.Load(); got != 64 {
		t.Errorf("generator ran %d times, want 64", got)
	}
	if w.ChunkCount() != 64 {
		t.Errorf("ChunkCount = %d, want 64", w.ChunkCount())
	}
}

func TestBlockRoundTrip(t *testing.T) {
	w := NewWorld(&countingGenerator{}, opaqueStoneRegistry{})

	if err := w.SetBlockAt(-5, 80, 33, 42); err != nil {
		t.Fatalf("SetBlockAt: %v", err)
	}
	got, err := w.GetBlockAt(-5, 80, 33)
	if err != nil {
		t.Fatalf("GetBlockAt: %v", err)
	}
	if got != 42 {
		t.Errorf("GetBlockAt = %d, want 42", got)
	}
}

func TestBlockAccessYOutOfRange(t *testing.T) {
	w := NewWorld(&countingGenerator{}, opaqueStoneRegistry{})

	for _, y := range []int{-1, WorldHeight, 10000} {
		if _, err := w.GetBlockAt(0, y, 0); !errors.Is(err, ErrYOutOfRange) {
			t.Errorf("GetBlockAt(y=%d) error = %v, want ErrYOutOfRange", y, err)
		}
		if err := w.SetBlockAt(0, y, 0, 1); !errors.Is(err, ErrYOutOfRange) {
			t.Errorf("SetBlockAt(y=%d) error = %v, want ErrYOutOfRange", y, err)
		}
	}
	// Out-of-range access must not create chunks.
	if w.ChunkCount() != 0 {
		t.Errorf("out-of-range access created %d chunks", w.ChunkCount())
	}
}

func TestRemoveChunk(t *testing.T) {
	w := NewWorld(&countingGenerator{}, opaqueStoneRegistry{})

	w.GetChunk(1, 1)
	if !w.HasChunk(1, 1) {
		t.Fatal("HasChunk(1,1) = false after GetChunk")
	}

	c, ok := w.RemoveChunk(1, 1)
	if !ok || c == nil {
		t.Fatal("RemoveChunk did not return the chunk")
	}
	if w.HasChunk(1, 1) {
		t.Error("chunk still present after removal")
	}

	if _, ok := w.RemoveChunk(1, 1); ok {
		t.Error("second RemoveChunk reported presence")
	}
}

func TestIsBlockOccluding(t *testing.T) {
	g := &countingGenerator{}
	w := NewWorld(g, opaqueStoneRegistry{})

	// Marker block 1 at (0,64,0) once chunk (0,0) is loaded.
	w.GetChunk(0, 0)

	tests := []struct {
		name    string
		x, y, z int
		want    bool
	}{
		{"opaque block", 0, 64, 0, true},
		{"air above", 0, 65, 0, false},
		{"y below range", 0, -1, 0, false},
		{"y above range", 0, WorldHeight, 0, false},
		{"unloaded chunk", 1000, 64, 1000, false},
	}
	for _, tt := range tests {
		if got := w.IsBlockOccluding(tt.x, tt.y, tt.z); got != tt.want {
			t.Errorf("%s: IsBlockOccluding(%d,%d,%d) = %v, want %v",
				tt.name, tt.x, tt.y, tt.z, got, tt.want)
		}
	}

	// The unloaded-chunk query must not have materialized the chunk.
	if w.HasChunk(62, 62) {
		t.Error("occlusion query created a chunk")
	}

	// Unknown ID: write a block the registry has no entry for.
	w.SetBlockAt(0, 70, 0, 999)
	if w.IsBlockOccluding(0, 70, 0) {
		t.Error("unknown block ID should fail open (non-occluding)")
	}
}

func TestLoadedChunksSnapshot(t *testing.T) {
	w := NewWorld(&countingGenerator{}, opaqueStoneRegistry{})
	for i := int32(0); i < 5; i++ {
		w.GetChunk(i, 0)
	}

	snap := w.LoadedChunks()
	if len(snap) != 5 {
		t.Fatalf("snapshot has %d chunks, want 5", len(snap))
	}

	// Mutating the store must not disturb the snapshot.
	w.RemoveChunk(0, 0)
	if len(snap) != 5 {
		t.Error("snapshot changed after RemoveChunk")
	}
}
