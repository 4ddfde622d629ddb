package windowing

import "time"

// Statistics passively records counts and timings for diagnostics.
// Not required for correctness; nothing reads it on a hot path.
type Statistics struct {
	created       uint64
	destroyed     uint64
	poolHits      uint64
	poolMisses    uint64
	poolReturns   uint64
	poolEvictions uint64
	routed        uint64
	handled       uint64
	createTime    time.Duration
}

// Stats is a point-in-time snapshot of the recorded counters.
type Stats struct {
	WindowCount    int
	PooledWindows  int
	TotalCreated   uint64
	TotalDestroyed uint64
	PoolHits       uint64
	PoolMisses     uint64
	PoolReturns    uint64
	PoolEvictions  uint64
	PoolHitRate    float64
	EventsRouted   uint64
	EventsHandled  uint64
	AvgCreateTime  time.Duration
}

func (s *Statistics) recordCreate(d time.Duration) {
	s.created++
	s.createTime += d
}

func (s *Statistics) recordDestroy() { s.destroyed++ }

func (s *Statistics) recordPoolHit()  { s.poolHits++ }
func (s *Statistics) recordPoolMiss() { s.poolMisses++ }

func (s *Statistics) recordPoolReturn(evicted bool) {
	s.poolReturns++
	if evicted {
		s.poolEvictions++
	}
}

func (s *Statistics) recordRoute(handled bool) {
	s.routed++
	if handled {
		s.handled++
	}
}

// snapshot folds the counters into a Stats value.
func (s *Statistics) snapshot(windowCount, pooled int) Stats {
	out := Stats{
		WindowCount:    windowCount,
		PooledWindows:  pooled,
		TotalCreated:   s.created,
		TotalDestroyed: s.destroyed,
		PoolHits:       s.poolHits,
		PoolMisses:     s.poolMisses,
		PoolReturns:    s.poolReturns,
		PoolEvictions:  s.poolEvictions,
		EventsRouted:   s.routed,
		EventsHandled:  s.handled,
	}
	if lookups := s.poolHits + s.poolMisses; lookups > 0 {
		out.PoolHitRate = float64(s.poolHits) / float64(lookups)
	}
	if s.created > 0 {
		out.AvgCreateTime = s.createTime / time.Duration(s.created)
	}
	return out
}
