package world

import "testing"

func TestChunkSetGetBlock(t *testing.T) {
	c := NewChunk(0, 0)

	c.SetBlock(5, 100, 7, 3)
	if got := c.Block(5, 100, 7); got != 3 {
		t.Errorf("Block(5,100,7) = %d, want 3", got)
	}
	if got := c.Block(5, 101, 7); got != BlockAir {
		t.Errorf("Block(5,101,7) = %d, want air", got)
	}

	// Out-of-range reads are air, writes are ignored.
	if got := c.Block(-1, 0, 0); got != BlockAir {
		t.Errorf("out-of-range read = %d, want air", got)
	}
	c.SetBlock(0, WorldHeight, 0, 1)
	if c.SolidBlocks() != 1 {
		t.Errorf("out-of-range write changed solid count to %d", c.SolidBlocks())
	}
}

func TestChunkSolidCount(t *testing.T) {
	c := NewChunk(0, 0)
	if !c.IsEmpty() {
		t.Fatal("new chunk should be empty")
	}

	c.SetBlock(0, 0, 0, 1)
	c.SetBlock(1, 0, 0, 2)
	if c.SolidBlocks() != 2 {
		t.Errorf("SolidBlocks = %d, want 2", c.SolidBlocks())
	}

	// Overwriting solid with solid keeps the count.
	c.SetBlock(0, 0, 0, 3)
	if c.SolidBlocks() != 2 {
		t.Errorf("SolidBlocks after overwrite = %d, want 2", c.SolidBlocks())
	}

	// Writing air decrements.
	c.SetBlock(0, 0, 0, BlockAir)
	c.SetBlock(1, 0, 0, BlockAir)
	if !c.IsEmpty() {
		t.Errorf("SolidBlocks after clearing = %d, want 0", c.SolidBlocks())
	}
}

func TestChunkAABB(t *testing.T) {
	c := NewChunk(-2, 3)
	min, max := c.AABB()

	if min.X() != -32 || min.Y() != 0 || min.Z() != 48 {
		t.Errorf("AABB min = %v", min)
	}
	if max.X() != -16 || max.Y() != WorldHeight || max.Z() != 64 {
		t.Errorf("AABB max = %v", max)
	}
}

func TestChunkRenderable(t *testing.T) {
	c := NewChunk(0, 0)
	if c.Renderable() {
		t.Error("fresh chunk should not be renderable")
	}

	c.markGenerated()
	if c.Renderable() {
		t.Error("generated chunk without mesh should not be renderable")
	}

	c.SetHasMesh(true)
	if !c.Renderable() {
		t.Error("generated+meshed chunk should be renderable")
	}

	c.SetHasMesh(false)
	if c.Renderable() {
		t.Error("chunk with torn-down mesh should not be renderable")
	}
}
