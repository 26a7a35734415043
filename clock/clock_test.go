package clock_test

import (
	"testing"
	"time"

	"github.com/queuectl/queuectl/clock"
)

func TestFakeAdvance(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := clock.NewFake(start)

	if got := c.Now(); !got.Equal(start) {
		t.Fatalf("expected %v, got %v", start, got)
	}

	got := c.Advance(time.Hour)
	want := start.Add(time.Hour)
	if !got.Equal(want) {
		t.Fatalf("Advance return value: expected %v, got %v", want, got)
	}
	if now := c.Now(); !now.Equal(want) {
		t.Fatalf("Now after Advance: expected %v, got %v", want, now)
	}
}

func TestFakeSet(t *testing.T) {
	c := clock.NewFake(time.Now())
	target := time.Date(2030, 5, 5, 5, 5, 5, 0, time.UTC)
	c.Set(target)
	if got := c.Now(); !got.Equal(target) {
		t.Fatalf("expected %v, got %v", target, got)
	}
}

func TestSystemReturnsUTC(t *testing.T) {
	got := clock.System{}.Now()
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", got.Location())
	}
}
