package cull

import (
	"log/slog"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/veldt-engine/veldt/internal/engine/world"
)

// Camera supplies the per-frame view state consumed by the Manager.
type Camera interface {
	Position() mgl32.Vec3
	ViewProjection() mgl32.Mat4
}

const defaultRenderDistance = 8

type cullResult int

const (
	resultEmpty cullResult = iota
	resultMeshPending
	resultDistanceCulled
	resultFrustumCulled
	resultRendered
)

// Manager performs per-frame chunk visibility classification: distance
// test against the player's chunk, mesh readiness, then frustum test.
// Update must be called once per frame before any cull query so the
// whole pass classifies against one consistent camera snapshot.
type Manager struct {
	log *slog.Logger

	renderDistance int

	cameraPos   mgl32.Vec3
	playerChunk world.ChunkCoord
	frustum     Frustum
	stats       Stats
}

// NewManager creates a culling manager. A non-positive render distance is
// replaced by the default and logged, mirroring SetRenderDistance.
func NewManager(renderDistance int, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	if renderDistance <= 0 {
		log.Warn("invalid render distance, using default",
			"value", renderDistance, "default", defaultRenderDistance)
		renderDistance = defaultRenderDistance
	}
	return &Manager{log: log, renderDistance: renderDistance}
}

// Update snapshots the camera position, recomputes the player's chunk
// coordinate, rebuilds the frustum planes, and resets the frame stats.
func (m *Manager) Update(cam Camera, playerPos mgl32.Vec3) {
	m.cameraPos = cam.Position()
	m.playerChunk = world.CoordAtPos(playerPos.X(), playerPos.Z())
	m.frustum.Update(cam.ViewProjection())
	m.stats.reset()
}

// CullChunks classifies each candidate into exactly one bucket and
// returns the rendered ones in their original relative order. Tests
// short-circuit: a chunk rejected by distance never reaches the frustum
// math.
func (m *Manager) CullChunks(chunks []*world.Chunk) []*world.Chunk {
	start := time.Now()
	visible := make([]*world.Chunk, 0, len(chunks))
	for _, c := range chunks {
		m.stats.Total++
		switch m.classify(c) {
		case resultEmpty:
			m.stats.EmptySkipped++
		case resultMeshPending:
			m.stats.MeshPending++
		case resultDistanceCulled:
			m.stats.DistanceCulled++
		case resultFrustumCulled:
			m.stats.FrustumCulled++
		case resultRendered:
			m.stats.Rendered++
			visible = append(visible, c)
		}
	}
	m.stats.Duration += time.Since(start)
	return visible
}

func (m *Manager) classify(c *world.Chunk) cullResult {
	if c.IsEmpty() {
		return resultEmpty
	}
	if !c.Renderable() {
		return resultMeshPending
	}
	r := int64(m.renderDistance)
	if m.playerChunk.DistanceSquared(c.Coord()) > r*r {
		return resultDistanceCulled
	}
	min, max := c.AABB()
	if !m.frustum.ContainsAABB(min, max) {
		return resultFrustumCulled
	}
	return resultRendered
}

// ShouldRenderChunk is the single-chunk equivalent of CullChunks without
// touching the aggregate stats, for on-demand checks.
func (m *Manager) ShouldRenderChunk(c *world.Chunk) bool {
	return m.classify(c) == resultRendered
}

// ChunkDistanceSquared returns the squared chunk-grid distance between
// the chunk and the player's chunk from the last Update.
func (m *Manager) ChunkDistanceSquared(c *world.Chunk) float32 {
	return float32(m.playerChunk.DistanceSquared(c.Coord()))
}

// SortChunksByDistance sorts chunks in place, nearest first, by the same
// metric the distance cull uses, so mesh scheduling and culling agree on
// priority.
func (m *Manager) SortChunksByDistance(chunks []*world.Chunk) {
	sort.Slice(chunks, func(i, j int) bool {
		return m.ChunkDistanceSquared(chunks[i]) < m.ChunkDistanceSquared(chunks[j])
	})
}

// ChunksInRange returns the chunks whose distance (in chunks, linear)
// from the player's chunk lies within [minDist, maxDist] inclusive.
func (m *Manager) ChunksInRange(chunks []*world.Chunk, minDist, maxDist float32) []*world.Chunk {
	lo := minDist * minDist
	hi := maxDist * maxDist
	out := make([]*world.Chunk, 0, len(chunks))
	for _, c := range chunks {
		d := m.ChunkDistanceSquared(c)
		if d >= lo && d <= hi {
			out = append(out, c)
		}
	}
	return out
}

// RenderDistance returns the current render distance in chunks.
func (m *Manager) RenderDistance() int { return m.renderDistance }

// SetRenderDistance applies a runtime render-distance change. Invalid
// values are logged and ignored; prior state stays untouched.
func (m *Manager) SetRenderDistance(n int) {
	if n <= 0 {
		m.log.Warn("ignoring invalid render distance", "value", n)
		return
	}
	m.renderDistance = n
}

// Stats returns a copy of the current frame's counters.
func (m *Manager) Stats() Stats { return m.stats }

// CameraPosition returns the camera position snapshotted by Update.
func (m *Manager) CameraPosition() mgl32.Vec3 { return m.cameraPos }
