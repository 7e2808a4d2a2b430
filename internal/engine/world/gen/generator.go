package gen

import "github.com/veldt-engine/veldt/internal/engine/world"

// Generator is the contract shared by all terrain strategies: chunk
// population plus a surface-height probe used for spawn placement and
// streaming prioritization. New strategies are new implementations of
// this interface.
type Generator interface {
	world.TerrainGenerator
	HeightAt(worldX, worldZ int) int
}

var (
	_ Generator = (*FlatGenerator)(nil)
	_ Generator = (*NoiseGenerator)(nil)
)
