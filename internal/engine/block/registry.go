package block

import (
	"encoding/json"
	"fmt"

	"github.com/veldt-engine/veldt/internal/engine/world"
)

// Canonical IDs for the built-in block set. The engine core only cares
// about opacity; everything else about a material is renderer territory.
const (
	Air       world.BlockID = 0
	Stone     world.BlockID = 1
	Grass     world.BlockID = 2
	Dirt      world.BlockID = 3
	Bedrock   world.BlockID = 7
	Water     world.BlockID = 9
	Sand      world.BlockID = 12
	Gravel    world.BlockID = 13
	Log       world.BlockID = 17
	Leaves    world.BlockID = 18
	Glass     world.BlockID = 20
	Sandstone world.BlockID = 24
)

// Block describes one material.
type Block struct {
	ID          world.BlockID `json:"id"`
	Name        string        `json:"name"`
	DisplayName string        `json:"displayName,omitempty"`
	Transparent bool          `json:"transparent"`
}

// Registry maps block IDs to their definitions and answers the occlusion
// query the world core needs.
type Registry struct {
	byID map[world.BlockID]Block
}

// NewRegistry builds a registry from a block list. Later duplicates win.
func NewRegistry(blocks []Block) *Registry {
	r := &Registry{byID: make(map[world.BlockID]Block, len(blocks))}
	for _, b := range blocks {
		r.byID[b.ID] = b
	}
	return r
}

// DefaultRegistry returns the built-in block set.
func DefaultRegistry() *Registry {
	return NewRegistry([]Block{
		{ID: Air, Name: "air", Transparent: true},
		{ID: Stone, Name: "stone"},
		{ID: Grass, Name: "grass"},
		{ID: Dirt, Name: "dirt"},
		{ID: Bedrock, Name: "bedrock"},
		{ID: Water, Name: "water", Transparent: true},
		{ID: Sand, Name: "sand"},
		{ID: Gravel, Name: "gravel"},
		{ID: Log, Name: "log"},
		{ID: Leaves, Name: "leaves", Transparent: true},
		{ID: Glass, Name: "glass", Transparent: true},
		{ID: Sandstone, Name: "sandstone"},
	})
}

// LoadRegistry parses a block definition JSON document, validating it
// against the embedded schema first so malformed data fails with a
// pointer to the offending entry instead of a half-filled registry.
func LoadRegistry(data []byte) (*Registry, error) {
	if err := validateBlockData(data); err != nil {
		return nil, fmt.Errorf("block data: %w", err)
	}
	var blocks []Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("block data: %w", err)
	}
	return NewRegistry(blocks), nil
}

// Lookup returns the definition for a block ID.
func (r *Registry) Lookup(id world.BlockID) (Block, bool) {
	b, ok := r.byID[id]
	return b, ok
}

// IsOpaque reports whether the block fully hides faces behind it. Unknown
// IDs read as non-opaque, so a missing definition can only cause an extra
// drawn face, never a hole.
func (r *Registry) IsOpaque(id world.BlockID) bool {
	b, ok := r.byID[id]
	if !ok {
		return false
	}
	return b.ID != Air && !b.Transparent
}

var _ world.BlockRegistry = (*Registry)(nil)
