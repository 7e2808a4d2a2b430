package gen

import (
	"fmt"

	"github.com/veldt-engine/veldt/internal/engine/block"
	"github.com/veldt-engine/veldt/internal/engine/config"
	"github.com/veldt-engine/veldt/internal/engine/world"
)

// FlatGenerator produces the same layered column everywhere: stone below
// a fixed dirt band, grass at the surface, air above. No randomness.
type FlatGenerator struct {
	surfaceHeight int
	dirtDepth     int
}

// NewFlatGenerator creates a flat generator with the grass surface at
// surfaceHeight and dirtDepth dirt layers beneath it.
func NewFlatGenerator(surfaceHeight, dirtDepth int) (*FlatGenerator, error) {
	if surfaceHeight < 0 || surfaceHeight >= world.WorldHeight {
		return nil, fmt.Errorf("%w: surface height %d outside [0,%d)",
			config.ErrInvalid, surfaceHeight, world.WorldHeight)
	}
	if dirtDepth < 1 {
		return nil, fmt.Errorf("%w: dirt depth %d must be at least 1", config.ErrInvalid, dirtDepth)
	}
	return &FlatGenerator{surfaceHeight: surfaceHeight, dirtDepth: dirtDepth}, nil
}

// DefaultFlatGenerator returns the classic layering: grass at y=64 over
// three dirt layers.
func DefaultFlatGenerator() *FlatGenerator {
	g, _ := NewFlatGenerator(64, 3)
	return g
}

func (g *FlatGenerator) Generate(c *world.Chunk, _, _ int32) {
	for x := 0; x < world.ChunkSizeX; x++ {
		for z := 0; z < world.ChunkSizeZ; z++ {
			fillColumn(c, x, z, g.surfaceHeight, g.dirtDepth)
		}
	}
}

func (g *FlatGenerator) HeightAt(_, _ int) int {
	return g.surfaceHeight
}

// fillColumn writes one terrain column: stone up to the dirt band, dirt
// up to just below the surface, grass at the surface.
func fillColumn(c *world.Chunk, x, z, surface, dirtDepth int) {
	dirtBottom := surface - dirtDepth
	if dirtBottom < 0 {
		dirtBottom = 0
	}
	for y := 0; y < dirtBottom; y++ {
		c.SetBlock(x, y, z, block.Stone)
	}
	for y := dirtBottom; y < surface; y++ {
		c.SetBlock(x, y, z, block.Dirt)
	}
	c.SetBlock(x, surface, z, block.Grass)
}
