package commands

import "sync"

const stripeCount = 64

// stripes serializes work per key with a fixed set of mutexes. Keys that share a
// stripe are serialized too, which only costs throughput.
type stripes struct {
	mu [stripeCount]sync.Mutex
}

func (s *stripes) lock(key int64) func() {
	m := &s.mu[uint64(key)%stripeCount]
	m.Lock()
	return m.Unlock
}
