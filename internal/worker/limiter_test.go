package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	l := NewLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow("newsapi.org") {
			t.Fatalf("request %d should be within burst", i)
		}
	}
	if l.Allow("newsapi.org") {
		t.Error("request beyond burst should be denied")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("host-a") {
		t.Fatal("first request on host-a should pass")
	}
	if !l.Allow("host-b") {
		t.Error("host-b has its own bucket and should pass")
	}
	if l.Allow("host-a") {
		t.Error("host-a bucket should be drained")
	}
}

func TestLimiter_SetKeyRate(t *testing.T) {
	l := NewLimiter(1, 1)
	l.SetKeyRate("generous", 100, 10)

	for i := 0; i < 10; i++ {
		if !l.Allow("generous") {
			t.Fatalf("request %d should be within the custom burst", i)
		}
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	l.Allow("slow") // drain the bucket

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "slow"); err == nil {
		t.Error("Wait should fail once the context deadline passes")
	}
}
