package world

import "math"

const (
	// ChunkSizeX and ChunkSizeZ are the horizontal footprint of a chunk
	// column in blocks.
	ChunkSizeX = 16
	ChunkSizeZ = 16

	// WorldHeight is the full vertical extent of every chunk column.
	WorldHeight = 256
)

// ChunkCoord identifies a chunk column by its position on the chunk grid.
// It is a plain value: two coords with equal fields are interchangeable,
// including as map keys.
type ChunkCoord struct {
	X, Z int32
}

// CoordAt returns the coordinate of the chunk containing the given world
// block position. Arithmetic right shift floors correctly for negatives.
func CoordAt(worldX, worldZ int) ChunkCoord {
	return ChunkCoord{X: int32(worldX >> 4), Z: int32(worldZ >> 4)}
}

// CoordAtPos returns the coordinate of the chunk containing a continuous
// world-space position.
func CoordAtPos(x, z float32) ChunkCoord {
	return ChunkCoord{
		X: int32(math.Floor(float64(x) / ChunkSizeX)),
		Z: int32(math.Floor(float64(z) / ChunkSizeZ)),
	}
}

// DistanceSquared returns the squared chunk-grid distance to other. The
// vertical axis does not exist on the chunk grid; columns span the full
// world height.
func (c ChunkCoord) DistanceSquared(other ChunkCoord) int64 {
	dx := int64(c.X) - int64(other.X)
	dz := int64(c.Z) - int64(other.Z)
	return dx*dx + dz*dz
}
