package timex

import (
	"testing"
	"time"
)

func TestManualClock(t *testing.T) {
	start := time.Unix(1000, 0)
	m := NewManual(start)
	m.Advance(1500 * time.Millisecond)
	if got := m.Now().Sub(start); got != 1500*time.Millisecond {
		t.Fatalf("advance: got %v", got)
	}
	m.Advance(-3 * time.Second)
	if !m.Now().Before(start) {
		t.Fatal("expected clock to move backwards")
	}
	m.Set(start)
	if !m.Now().Equal(start) {
		t.Fatal("set mismatch")
	}
}

var _ Clock = System{}
var _ Clock = (*Manual)(nil)
