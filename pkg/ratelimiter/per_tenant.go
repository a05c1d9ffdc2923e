package ratelimiter

import "sync"

// PerTenant maintains an independent token bucket per tenant so one noisy
// tenant cannot exhaust the budget of the others. Buckets are created lazily
// on first use and never expire; the tenant population this service targets is
// small enough that the map does not need eviction.
type PerTenant struct {
	rate     float64
	capacity int

	mu      sync.Mutex
	buckets map[string]*TokenBucket
}

// NewPerTenant creates a PerTenant limiter whose buckets refill at the given
// rate per second with the given burst capacity.
func NewPerTenant(rate float64, capacity int) *PerTenant {
	return &PerTenant{
		rate:     rate,
		capacity: capacity,
		buckets:  make(map[string]*TokenBucket),
	}
}

// Allow reports whether the tenant's bucket has a token available.
func (p *PerTenant) Allow(tenantID string) bool {
	p.mu.Lock()
	bucket, ok := p.buckets[tenantID]
	if !ok {
		bucket = NewTokenBucket(p.rate, p.capacity)
		p.buckets[tenantID] = bucket
	}
	p.mu.Unlock()

	return bucket.Allow()
}
