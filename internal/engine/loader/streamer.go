package loader

import (
	"runtime"
	"sync"

	"github.com/veldt-engine/veldt/internal/engine/world"
)

// streamer runs chunk generation on a background worker pool. The
// pending set deduplicates requests; the bounded queue sheds load when
// the viewer outruns generation rather than growing without limit.
type streamer struct {
	world *world.World

	jobs      chan world.ChunkCoord
	pending   map[world.ChunkCoord]struct{}
	pendingMu sync.Mutex

	wg        sync.WaitGroup
	closeOnce sync.Once
}

func newStreamer(w *world.World) *streamer {
	s := &streamer{
		world:   w,
		jobs:    make(chan world.ChunkCoord, 4096),
		pending: make(map[world.ChunkCoord]struct{}),
	}

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	s.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go s.worker()
	}
	return s
}

func (s *streamer) worker() {
	defer s.wg.Done()
	for coord := range s.jobs {
		// GetChunk is get-or-create-and-generate; a coordinate already
		// loaded synchronously in the meantime is a cheap lookup.
		s.world.GetChunk(coord.X, coord.Z)

		s.pendingMu.Lock()
		delete(s.pending, coord)
		s.pendingMu.Unlock()
	}
}

// request enqueues a coordinate unless it is loaded, already queued, or
// the queue is full. Returns whether the job was accepted.
func (s *streamer) request(coord world.ChunkCoord) bool {
	if s.world.HasChunk(coord.X, coord.Z) {
		return false
	}

	s.pendingMu.Lock()
	if _, ok := s.pending[coord]; ok {
		s.pendingMu.Unlock()
		return false
	}
	s.pending[coord] = struct{}{}
	s.pendingMu.Unlock()

	select {
	case s.jobs <- coord:
		return true
	default:
		// Queue full: roll back so a later request can retry.
		s.pendingMu.Lock()
		delete(s.pending, coord)
		s.pendingMu.Unlock()
		return false
	}
}

// close stops the workers after the queued jobs drain.
func (s *streamer) close() {
	s.closeOnce.Do(func() {
		close(s.jobs)
	})
	s.wg.Wait()
}
