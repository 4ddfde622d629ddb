package windowing

import "time"

// DefaultPoolCapacity bounds each (kind, pool key) free list unless
// the Manager is configured otherwise.
const DefaultPoolCapacity = 10

type poolKey struct {
	kind Kind
	sub  string
}

type pooledEntry struct {
	win     Window
	retired time.Time
}

// Pool keeps retired poolable windows for reuse. Windows are expensive
// to create (content construction) but cheap to reset, so facility
// screens opened and closed repeatedly amortize to a rebind.
//
// Each free list is bounded; putting into a full list evicts the
// oldest-retired instance so the length never exceeds the cap.
type Pool struct {
	capacity int
	free     map[poolKey][]pooledEntry
	now      func() time.Time
}

// NewPool creates a pool with the given per-key capacity
func NewPool(capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool{
		capacity: capacity,
		free:     make(map[poolKey][]pooledEntry),
		now:      time.Now,
	}
}

// Capacity returns the per-key free list bound.
func (p *Pool) Capacity() int { return p.capacity }

// Get pops the most recently retired instance for (kind, sub), or nil
// when none is available.
func (p *Pool) Get(kind Kind, sub string) Window {
	key := poolKey{kind: kind, sub: sub}
	list := p.free[key]
	if len(list) == 0 {
		return nil
	}
	entry := list[len(list)-1]
	list[len(list)-1] = pooledEntry{}
	p.free[key] = list[:len(list)-1]
	return entry.win
}

// Put retires w into its free list. When the list is full the
// oldest-retired instance is evicted and returned so the caller can
// release it for good; accepted is false only when pooling is disabled
// (capacity 0).
func (p *Pool) Put(w Window) (accepted bool, evicted Window) {
	if p.capacity == 0 {
		return false, nil
	}
	key := poolKey{kind: w.Kind(), sub: w.base().poolKey}
	list := p.free[key]
	if len(list) >= p.capacity {
		evicted = list[0].win
		copy(list, list[1:])
		list = list[:len(list)-1]
	}
	p.free[key] = append(list, pooledEntry{win: w, retired: p.now()})
	return true, evicted
}

// Len returns the free list length for (kind, sub).
func (p *Pool) Len(kind Kind, sub string) int {
	return len(p.free[poolKey{kind: kind, sub: sub}])
}

// Total returns the number of pooled instances across all keys.
func (p *Pool) Total() int {
	n := 0
	for _, list := range p.free {
		n += len(list)
	}
	return n
}

// Optimize trims entries retired longer than maxAge ago and returns
// the trimmed windows for release. Callable periodically by the host;
// not required for correctness.
func (p *Pool) Optimize(maxAge time.Duration) []Window {
	cutoff := p.now().Add(-maxAge)
	var trimmed []Window
	for key, list := range p.free {
		kept := list[:0]
		for _, entry := range list {
			if entry.retired.Before(cutoff) {
				trimmed = append(trimmed, entry.win)
			} else {
				kept = append(kept, entry)
			}
		}
		if len(kept) == 0 {
			delete(p.free, key)
		} else {
			p.free[key] = kept
		}
	}
	return trimmed
}

// Drain empties the pool and returns everything that was in it.
func (p *Pool) Drain() []Window {
	var all []Window
	for key, list := range p.free {
		for _, entry := range list {
			all = append(all, entry.win)
		}
		delete(p.free, key)
	}
	return all
}
