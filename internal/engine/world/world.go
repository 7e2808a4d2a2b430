package world

import (
	"errors"
	"fmt"
	"sync"
)

// ErrYOutOfRange is returned by block access with a vertical coordinate
// outside [0, WorldHeight). This is a precondition violation; the world
// never clamps, since clamping would silently corrupt edits.
var ErrYOutOfRange = errors.New("world: block y coordinate out of range")

// TerrainGenerator fills a chunk's voxel array in place. Implementations
// must be deterministic for a given seed and safe to call concurrently
// for different chunks.
type TerrainGenerator interface {
	Generate(c *Chunk, chunkX, chunkZ int32)
}

// BlockRegistry answers opacity queries for block IDs. Unknown IDs must
// read as non-opaque.
type BlockRegistry interface {
	IsOpaque(id BlockID) bool
}

// chunkEntry pairs a chunk with its one-shot generation guard.
type chunkEntry struct {
	once  sync.Once
	chunk *Chunk
}

// World owns the concurrent chunk store. Chunks are created and generated
// lazily on first touch; eviction policy lives in the loader, not here.
type World struct {
	mu     sync.RWMutex
	chunks map[ChunkCoord]*chunkEntry

	generator TerrainGenerator
	registry  BlockRegistry
}

// NewWorld creates an empty world backed by the given generator and
// block registry.
func NewWorld(generator TerrainGenerator, registry BlockRegistry) *World {
	return &World{
		chunks:    make(map[ChunkCoord]*chunkEntry),
		generator: generator,
		registry:  registry,
	}
}

// GetChunk returns the chunk at the given coordinates, creating and
// generating it if needed. The generator runs exactly once per
// coordinate: concurrent first-touch callers for the same chunk block on
// the entry's once-guard and all receive the same instance, while calls
// for different coordinates generate in parallel.
func (w *World) GetChunk(cx, cz int32) *Chunk {
	coord := ChunkCoord{X: cx, Z: cz}

	w.mu.RLock()
	e, ok := w.chunks[coord]
	w.mu.RUnlock()

	if !ok {
		w.mu.Lock()
		if e, ok = w.chunks[coord]; !ok {
			e = &chunkEntry{chunk: NewChunk(cx, cz)}
			w.chunks[coord] = e
		}
		w.mu.Unlock()
	}

	// Generation happens outside the map lock so other coordinates
	// are not serialized behind it.
	e.once.Do(func() {
		w.generator.Generate(e.chunk, cx, cz)
		e.chunk.markGenerated()
	})
	return e.chunk
}

// HasChunk reports whether the chunk is currently loaded. No side effects.
func (w *World) HasChunk(cx, cz int32) bool {
	w.mu.RLock()
	_, ok := w.chunks[ChunkCoord{X: cx, Z: cz}]
	w.mu.RUnlock()
	return ok
}

// RemoveChunk detaches and returns the chunk, or reports absence. GPU
// resources tied to the chunk are the renderer's to release when it
// observes the removal.
func (w *World) RemoveChunk(cx, cz int32) (*Chunk, bool) {
	coord := ChunkCoord{X: cx, Z: cz}
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.chunks[coord]
	if !ok {
		return nil, false
	}
	delete(w.chunks, coord)
	return e.chunk, true
}

// GetBlockAt returns the block at world coordinates, lazily generating
// the owning chunk. Y outside [0, WorldHeight) is an error.
func (w *World) GetBlockAt(x, y, z int) (BlockID, error) {
	if y < 0 || y >= WorldHeight {
		return BlockAir, fmt.Errorf("%w: %d", ErrYOutOfRange, y)
	}
	c := w.GetChunk(int32(x>>4), int32(z>>4))
	return c.Block(x&0xF, y, z&0xF), nil
}

// SetBlockAt writes a block at world coordinates, lazily generating the
// owning chunk. The ID's validity against a registry is the caller's
// concern.
func (w *World) SetBlockAt(x, y, z int, id BlockID) error {
	if y < 0 || y >= WorldHeight {
		return fmt.Errorf("%w: %d", ErrYOutOfRange, y)
	}
	c := w.GetChunk(int32(x>>4), int32(z>>4))
	c.SetBlock(x&0xF, y, z&0xF, id)
	return nil
}

// IsBlockOccluding reports whether the block at world coordinates hides
// faces behind it. The policy fails open: out-of-range Y, an unloaded
// chunk, air, and IDs unknown to the registry all read as non-occluding,
// so a missing answer costs a redundant face rather than a hole.
func (w *World) IsBlockOccluding(x, y, z int) bool {
	if y < 0 || y >= WorldHeight {
		return false
	}

	w.mu.RLock()
	e, ok := w.chunks[CoordAt(x, z)]
	w.mu.RUnlock()
	if !ok || !e.chunk.Generated() {
		// Unloaded or still generating: draw the edge face rather
		// than risk popping when the neighbor arrives.
		return false
	}

	id := e.chunk.Block(x&0xF, y, z&0xF)
	if id == BlockAir || w.registry == nil {
		return false
	}
	return w.registry.IsOpaque(id)
}

// LoadedChunks returns a snapshot of all currently loaded chunks. The
// slice is safe to iterate while other coordinates are inserted or
// removed concurrently.
func (w *World) LoadedChunks() []*Chunk {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*Chunk, 0, len(w.chunks))
	for _, e := range w.chunks {
		out = append(out, e.chunk)
	}
	return out
}

// ChunkCount returns the number of loaded chunks.
func (w *World) ChunkCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}
