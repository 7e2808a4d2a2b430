package gen

import (
	"fmt"
	"time"

	"github.com/veldt-engine/veldt/internal/engine/config"
	"github.com/veldt-engine/veldt/internal/engine/world"
)

// NoiseGenerator shapes terrain from a 2D coherent-noise field sampled at
// world coordinates. Sampling the same continuous field on both sides of
// a chunk border keeps surface heights seam-consistent without any
// stitching step.
type NoiseGenerator struct {
	field     *noiseField
	seed      int64
	frequency float64
	minHeight int
	maxHeight int
	dirtDepth int
}

// NewNoiseGenerator creates a noise-terrain generator. The same seed
// always yields bit-identical chunks, across instances and process runs.
func NewNoiseGenerator(seed int64, frequency float64, minHeight, maxHeight, dirtDepth int) (*NoiseGenerator, error) {
	if frequency <= 0 {
		return nil, fmt.Errorf("%w: noise frequency %g must be positive", config.ErrInvalid, frequency)
	}
	if minHeight > maxHeight {
		return nil, fmt.Errorf("%w: min height %d > max height %d", config.ErrInvalid, minHeight, maxHeight)
	}
	if minHeight < 0 || maxHeight >= world.WorldHeight {
		return nil, fmt.Errorf("%w: height bounds [%d,%d] outside [0,%d)",
			config.ErrInvalid, minHeight, maxHeight, world.WorldHeight)
	}
	if dirtDepth < 1 {
		return nil, fmt.Errorf("%w: dirt depth %d must be at least 1", config.ErrInvalid, dirtDepth)
	}
	return &NoiseGenerator{
		field:     newNoiseField(seed),
		seed:      seed,
		frequency: frequency,
		minHeight: minHeight,
		maxHeight: maxHeight,
		dirtDepth: dirtDepth,
	}, nil
}

// DefaultNoiseGenerator returns a generator with a process-chosen seed
// and gentle rolling terrain.
func DefaultNoiseGenerator() *NoiseGenerator {
	g, _ := NewNoiseGenerator(time.Now().UnixNano(), 0.01, 48, 100, 3)
	return g
}

// Seed returns the seed the generator was built with.
func (g *NoiseGenerator) Seed() int64 { return g.seed }

func (g *NoiseGenerator) Generate(c *world.Chunk, chunkX, chunkZ int32) {
	baseX := int(chunkX) * world.ChunkSizeX
	baseZ := int(chunkZ) * world.ChunkSizeZ
	for x := 0; x < world.ChunkSizeX; x++ {
		for z := 0; z < world.ChunkSizeZ; z++ {
			h := g.HeightAt(baseX+x, baseZ+z)
			fillColumn(c, x, z, h, g.dirtDepth)
		}
	}
}

// HeightAt returns the surface height for a world column, remapping the
// noise value from [-1,1] into [minHeight, maxHeight].
func (g *NoiseGenerator) HeightAt(worldX, worldZ int) int {
	n := g.field.sample(float64(worldX)*g.frequency, float64(worldZ)*g.frequency)
	t := (n + 1) / 2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return g.minHeight + int(t*float64(g.maxHeight-g.minHeight))
}
