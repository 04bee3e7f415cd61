package middleware

import (
	"testing"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter()

	// The burst allowance admits the first 20 requests.
	for i := 0; i < 20; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d denied within burst", i)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request beyond burst allowed")
	}

	// A different client has its own budget.
	if !rl.Allow("10.0.0.2") {
		t.Error("fresh client denied")
	}
}
