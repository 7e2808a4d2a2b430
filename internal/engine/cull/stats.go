package cull

import (
	"fmt"
	"time"
)

// Stats holds per-frame culling counters. They are reset at the start of
// every Manager.Update and overwritten each frame; nothing here persists.
type Stats struct {
	Total          int
	EmptySkipped   int
	MeshPending    int
	DistanceCulled int
	FrustumCulled  int
	Rendered       int
	Duration       time.Duration
}

func (s *Stats) reset() { *s = Stats{} }

// CullRatio returns the fraction of candidates rejected this frame.
func (s Stats) CullRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Total-s.Rendered) / float64(s.Total)
}

func (s Stats) String() string {
	return fmt.Sprintf("total=%d empty=%d pending=%d distance=%d frustum=%d rendered=%d culled=%.1f%% in %s",
		s.Total, s.EmptySkipped, s.MeshPending, s.DistanceCulled, s.FrustumCulled,
		s.Rendered, s.CullRatio()*100, s.Duration)
}
