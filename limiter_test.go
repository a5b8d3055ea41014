package mealpress

import (
	"testing"
	"time"
)

func TestLimiterAllowsUnderMax(t *testing.T) {
	l := NewLoginLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Check("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
		l.Record("10.0.0.1")
	}
	if l.Check("10.0.0.1") {
		t.Error("fourth attempt should be blocked")
	}
}

func TestLimiterCheckDoesNotRecord(t *testing.T) {
	l := NewLoginLimiter(2, time.Minute)

	// Checking repeatedly must not consume the budget by itself.
	for i := 0; i < 10; i++ {
		if !l.Check("10.0.0.1") {
			t.Fatal("Check alone must never block")
		}
	}
}

func TestLimiterIsolatesIPs(t *testing.T) {
	l := NewLoginLimiter(1, time.Minute)

	l.Record("10.0.0.1")
	if l.Check("10.0.0.1") {
		t.Error("exhausted IP should be blocked")
	}
	if !l.Check("10.0.0.2") {
		t.Error("other IPs must not be affected")
	}
}

func TestLimiterWindowExpires(t *testing.T) {
	l := NewLoginLimiter(1, 20*time.Millisecond)

	l.Record("10.0.0.1")
	if l.Check("10.0.0.1") {
		t.Fatal("should be blocked inside the window")
	}
	time.Sleep(40 * time.Millisecond)
	if !l.Check("10.0.0.1") {
		t.Error("should be allowed again after the window passes")
	}
}
