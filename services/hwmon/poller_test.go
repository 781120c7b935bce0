package hwmon

import (
	"context"
	"errors"
	"testing"
	"time"

	"lm77-go/drivers/lm77"
)

func scanned(t *testing.T) *rig {
	t.Helper()
	r := newRig(t, DefaultConfig())
	if _, err := r.svc.Scan(context.Background()); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestPollOnceDeliversEveryClient(t *testing.T) {
	r := scanned(t)
	r.chips[0x4a].SetTemp(-7500, uint8(lm77.AlarmLow))

	sink := make(chan Result, 4)
	p := NewPoller(r.svc, time.Second, sink)
	if n := p.PollOnce(); n != 2 {
		t.Fatalf("delivered %d", n)
	}
	got := map[uint16]Result{}
	for i := 0; i < 2; i++ {
		res := <-sink
		got[res.Addr] = res
	}
	if got[0x48].Err != nil || got[0x48].Snapshot.Temp_mC != 25000 {
		t.Fatalf("0x48: %+v", got[0x48])
	}
	s := got[0x4a].Snapshot
	if s.Temp_mC != -7500 || !s.Alarms.Has(lm77.AlarmLow) {
		t.Fatalf("0x4a: %+v", s)
	}
}

func TestPollerUsesCacheWithinWindow(t *testing.T) {
	r := scanned(t)
	sink := make(chan Result, 8)
	p := NewPoller(r.svc, time.Second, sink)
	p.PollOnce()
	r.clk.Advance(time.Second)
	p.PollOnce()
	if n := r.chips[0x48].Reads(0); n != 1+3+1 { // probe baseline, shadow rounds, one refresh
		t.Fatalf("live reads=%d", n)
	}
	r.clk.Advance(time.Second)
	p.PollOnce()
	if n := r.chips[0x48].Reads(0); n != 1+3+2 {
		t.Fatalf("live reads=%d", n)
	}
}

func TestPollReportsRefreshErrors(t *testing.T) {
	r := scanned(t)
	boom := errors.New("stuck")
	r.chips[0x48].FailNext(0, 1, boom)
	sink := make(chan Result, 4)
	NewPoller(r.svc, time.Second, sink).PollOnce()
	res := <-sink
	if res.Addr != 0x48 || !errors.Is(res.Err, lm77.ErrTransport) {
		t.Fatalf("got %+v", res)
	}
}

func TestPollDropsWhenSinkFull(t *testing.T) {
	r := scanned(t)
	sink := make(chan Result, 1)
	if n := NewPoller(r.svc, time.Second, sink).PollOnce(); n != 1 {
		t.Fatalf("delivered %d", n)
	}
}

func TestPollerStart(t *testing.T) {
	r := scanned(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sink := make(chan Result, 4)
	NewPoller(r.svc, 5*time.Millisecond, sink).Start(ctx)
	select {
	case res := <-sink:
		if res.Err != nil {
			t.Fatal(res.Err)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for result")
	}
}
