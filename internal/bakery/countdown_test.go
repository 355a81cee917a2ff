package bakery

import (
	"testing"
	"time"
)

func TestCountdownReachesZeroOnce(t *testing.T) {
	tests := []struct {
		name  string
		steps []time.Duration
	}{
		{"single tick", []time.Duration{90 * time.Second}},
		{"two halves", []time.Duration{45 * time.Second, 45 * time.Second}},
		{"overshoot", []time.Duration{80 * time.Second, 30 * time.Second}},
		{"uneven", []time.Duration{time.Millisecond, 89999 * time.Millisecond, time.Second}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCountdown(90 * time.Second)
			c.Start()
			edges := 0
			for _, d := range tc.steps {
				if c.Tick(d) {
					edges++
				}
			}
			if edges != 1 {
				t.Errorf("zero edge observed %d times, expected 1", edges)
			}
			if c.Remaining() != 0 {
				t.Errorf("Remaining() = %v, expected 0", c.Remaining())
			}
			if c.Running() {
				t.Error("countdown should stop at zero")
			}
		})
	}
}

func TestCountdownTicksIn20msSteps(t *testing.T) {
	c := NewCountdown(90 * time.Second)
	c.Start()
	ticks := 0
	for !c.Tick(20 * time.Millisecond) {
		ticks++
		if ticks > 10000 {
			t.Fatal("countdown never expired")
		}
	}
	if ticks != 4499 {
		t.Errorf("expired after %d non-final ticks, expected 4499", ticks)
	}
}

func TestCountdownIgnoresTicksWhenStopped(t *testing.T) {
	c := NewCountdown(10 * time.Second)
	if c.Tick(time.Second) {
		t.Error("Tick() before Start should not fire")
	}
	if c.Remaining() != 10*time.Second {
		t.Errorf("Remaining() = %v, unstarted countdown should not move", c.Remaining())
	}

	c.Start()
	if c.Tick(0) || c.Tick(-time.Second) {
		t.Error("non-positive deltas should be ignored")
	}
	if c.Remaining() != 10*time.Second {
		t.Errorf("Remaining() = %v", c.Remaining())
	}
}

func TestCountdownForceEnd(t *testing.T) {
	c := NewCountdown(90 * time.Second)
	c.Start()
	c.Tick(time.Second)

	if !c.ForceEnd() {
		t.Error("ForceEnd() on a running countdown should return true")
	}
	if c.Remaining() != 0 || c.Running() {
		t.Errorf("after ForceEnd: remaining %v, running %v", c.Remaining(), c.Running())
	}
	if c.ForceEnd() {
		t.Error("second ForceEnd() should return false")
	}
	if c.Tick(time.Second) {
		t.Error("Tick() after ForceEnd should not fire")
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{90 * time.Second, "01:30:00"},
		{61230 * time.Millisecond, "01:01:23"},
		{999 * time.Millisecond, "00:00:99"},
		{0, "00:00:00"},
		{-time.Second, "00:00:00"},
	}

	for _, tc := range tests {
		if got := FormatClock(tc.d); got != tc.expected {
			t.Errorf("FormatClock(%v) = %q, expected %q", tc.d, got, tc.expected)
		}
	}
}
