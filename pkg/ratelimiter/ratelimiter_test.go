package ratelimiter

import "testing"

func TestTokenBucket_BurstThenDeny(t *testing.T) {
	// 1 token per hour effectively disables refill during the test.
	tb := NewTokenBucket(1.0/3600, 3)

	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("request %d should be allowed within burst", i)
		}
	}
	if tb.Allow() {
		t.Error("request beyond burst should be denied")
	}
}

func TestPerTenant_IndependentBuckets(t *testing.T) {
	limiter := NewPerTenant(1.0/3600, 1)

	if !limiter.Allow("t1") {
		t.Fatal("first request for t1 should be allowed")
	}
	if limiter.Allow("t1") {
		t.Error("second request for t1 should be denied")
	}
	// t2 has its own bucket and is unaffected by t1's exhaustion.
	if !limiter.Allow("t2") {
		t.Error("first request for t2 should be allowed")
	}
}
