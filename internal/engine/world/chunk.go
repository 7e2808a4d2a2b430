package world

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockID identifies the material occupying one voxel. 0 is reserved for air.
type BlockID uint16

// BlockAir is the reserved empty voxel.
const BlockAir BlockID = 0

const chunkVolume = ChunkSizeX * WorldHeight * ChunkSizeZ

// Chunk is a 16×256×16 column of voxels. Block storage is dense; the
// solid-block counter answers "is this chunk empty" in O(1) without a
// scan. The generated and hasMesh flags cross threads (generation workers
// and the renderer on one side, the frame thread on the other), so they
// are atomics.
type Chunk struct {
	coord ChunkCoord

	blocks [chunkVolume]BlockID
	solid  atomic.Int32

	generated atomic.Bool
	hasMesh   atomic.Bool

	aabbMin, aabbMax mgl32.Vec3
}

// NewChunk creates an all-air chunk at the given column coordinates.
func NewChunk(cx, cz int32) *Chunk {
	minX := float32(cx) * ChunkSizeX
	minZ := float32(cz) * ChunkSizeZ
	return &Chunk{
		coord:   ChunkCoord{X: cx, Z: cz},
		aabbMin: mgl32.Vec3{minX, 0, minZ},
		aabbMax: mgl32.Vec3{minX + ChunkSizeX, WorldHeight, minZ + ChunkSizeZ},
	}
}

// Coord returns the chunk's column coordinate.
func (c *Chunk) Coord() ChunkCoord { return c.coord }

// X returns the chunk-grid X coordinate.
func (c *Chunk) X() int32 { return c.coord.X }

// Z returns the chunk-grid Z coordinate.
func (c *Chunk) Z() int32 { return c.coord.Z }

func blockIndex(x, y, z int) int {
	return (y*ChunkSizeZ+z)*ChunkSizeX + x
}

// Block returns the block at local coordinates. Out-of-range coordinates
// read as air.
func (c *Chunk) Block(x, y, z int) BlockID {
	if x < 0 || x >= ChunkSizeX || y < 0 || y >= WorldHeight || z < 0 || z >= ChunkSizeZ {
		return BlockAir
	}
	return c.blocks[blockIndex(x, y, z)]
}

// SetBlock writes a block at local coordinates, maintaining the solid
// counter. Out-of-range coordinates are ignored.
func (c *Chunk) SetBlock(x, y, z int, id BlockID) {
	if x < 0 || x >= ChunkSizeX || y < 0 || y >= WorldHeight || z < 0 || z >= ChunkSizeZ {
		return
	}
	i := blockIndex(x, y, z)
	old := c.blocks[i]
	if old == id {
		return
	}
	c.blocks[i] = id
	if old == BlockAir {
		c.solid.Add(1)
	} else if id == BlockAir {
		c.solid.Add(-1)
	}
}

// SolidBlocks returns the number of non-air voxels.
func (c *Chunk) SolidBlocks() int { return int(c.solid.Load()) }

// IsEmpty reports whether the chunk holds no non-air voxels.
func (c *Chunk) IsEmpty() bool { return c.solid.Load() == 0 }

// Generated reports whether a terrain generator has filled this chunk.
func (c *Chunk) Generated() bool { return c.generated.Load() }

func (c *Chunk) markGenerated() { c.generated.Store(true) }

// HasMesh reports whether the external mesher has produced geometry for
// this chunk. The culling core never sets it.
func (c *Chunk) HasMesh() bool { return c.hasMesh.Load() }

// SetHasMesh is called by the renderer once geometry is ready (or torn down).
func (c *Chunk) SetHasMesh(ready bool) { c.hasMesh.Store(ready) }

// Renderable reports whether the chunk is eligible for drawing: terrain
// generated and mesh uploaded.
func (c *Chunk) Renderable() bool { return c.generated.Load() && c.hasMesh.Load() }

// AABB returns the chunk's world-space axis-aligned bounding box.
func (c *Chunk) AABB() (min, max mgl32.Vec3) { return c.aabbMin, c.aabbMax }
