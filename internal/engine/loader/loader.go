package loader

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/veldt-engine/veldt/internal/engine/config"
	"github.com/veldt-engine/veldt/internal/engine/world"
)

// ChunkLoader is the streaming policy: it materializes chunk columns
// around a moving reference point and evicts columns that fall out of
// range. The world itself never evicts; all policy lives here.
type ChunkLoader struct {
	world *world.World
	log   *slog.Logger

	mu             sync.Mutex
	renderDistance int
	lastCenter     world.ChunkCoord
	hasCenter      bool

	stream *streamer
}

// New creates a loader with the given render distance (chunks, [1,32]).
func New(w *world.World, renderDistance int, log *slog.Logger) (*ChunkLoader, error) {
	if err := validateDistance(renderDistance); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	l := &ChunkLoader{
		world:          w,
		log:            log,
		renderDistance: renderDistance,
	}
	l.stream = newStreamer(w)
	return l, nil
}

func validateDistance(n int) error {
	if n < config.MinRenderDistance || n > config.MaxRenderDistance {
		return fmt.Errorf("%w: render distance %d outside [%d,%d]",
			config.ErrInvalid, n, config.MinRenderDistance, config.MaxRenderDistance)
	}
	return nil
}

// RenderDistance returns the configured render distance in chunks.
func (l *ChunkLoader) RenderDistance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.renderDistance
}

// SetRenderDistance reconfigures the loader at runtime. Invalid values
// fail the same way as construction and leave the prior distance
// unchanged. A successful change forces a full rescan on the next Update.
func (l *ChunkLoader) SetRenderDistance(n int) error {
	if err := validateDistance(n); err != nil {
		return err
	}
	l.mu.Lock()
	l.renderDistance = n
	l.hasCenter = false
	l.mu.Unlock()
	return nil
}

// LoadInitialChunks synchronously materializes the full (2R+1)² square
// window around the reference position, establishing the initial loaded
// set.
func (l *ChunkLoader) LoadInitialChunks(pos mgl32.Vec3) {
	center := world.CoordAtPos(pos.X(), pos.Z())

	l.mu.Lock()
	r := l.renderDistance
	l.lastCenter = center
	l.hasCenter = true
	l.mu.Unlock()

	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			l.world.GetChunk(center.X+int32(dx), center.Z+int32(dz))
		}
	}
	l.log.Info("initial chunks loaded",
		"center_x", center.X, "center_z", center.Z,
		"render_distance", r, "loaded", l.world.ChunkCount())
}

// Update recomputes the reference chunk, loads columns newly within
// range, and evicts columns whose squared chunk distance exceeds R² —
// the same metric the culling pass uses. While the reference stays
// inside one chunk the call is a no-op, so a stationary viewer causes no
// load/unload churn. There is no hysteresis band at the boundary; a
// viewer oscillating exactly on it will thrash, which is the documented
// cost of the policy.
func (l *ChunkLoader) Update(pos mgl32.Vec3) {
	center := world.CoordAtPos(pos.X(), pos.Z())

	l.mu.Lock()
	if l.hasCenter && center == l.lastCenter {
		l.mu.Unlock()
		return
	}
	r := l.renderDistance
	l.lastCenter = center
	l.hasCenter = true
	l.mu.Unlock()

	rsq := int64(r) * int64(r)

	// Load pass: every in-range column inside the square window.
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			if int64(dx)*int64(dx)+int64(dz)*int64(dz) > rsq {
				continue
			}
			cx := center.X + int32(dx)
			cz := center.Z + int32(dz)
			if !l.world.HasChunk(cx, cz) {
				l.world.GetChunk(cx, cz)
			}
		}
	}

	// Evict pass: anything strictly outside range.
	evicted := 0
	for _, c := range l.world.LoadedChunks() {
		if center.DistanceSquared(c.Coord()) > rsq {
			if _, ok := l.world.RemoveChunk(c.X(), c.Z()); ok {
				evicted++
			}
		}
	}

	if evicted > 0 {
		l.log.Debug("chunk window moved",
			"center_x", center.X, "center_z", center.Z,
			"evicted", evicted, "loaded", l.world.ChunkCount())
	}
}

// StreamAsync queues generation of missing in-range columns on the
// background workers instead of blocking the caller. The world's
// exactly-once store absorbs any race with synchronous loads.
func (l *ChunkLoader) StreamAsync(pos mgl32.Vec3) {
	center := world.CoordAtPos(pos.X(), pos.Z())

	l.mu.Lock()
	r := l.renderDistance
	l.mu.Unlock()

	rsq := int64(r) * int64(r)
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			if int64(dx)*int64(dx)+int64(dz)*int64(dz) > rsq {
				continue
			}
			l.stream.request(world.ChunkCoord{X: center.X + int32(dx), Z: center.Z + int32(dz)})
		}
	}
}

// Close stops the background generation workers, draining queued jobs.
func (l *ChunkLoader) Close() {
	l.stream.close()
}
