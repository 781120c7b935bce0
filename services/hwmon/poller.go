package hwmon

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"lm77-go/drivers/lm77"
	"lm77-go/x/timex"
)

// Result is one poll of one client.
type Result struct {
	Addr     uint16
	Snapshot lm77.Snapshot
	Err      error
	TsMs     int64
}

// Poller reads every attached client once per tick and fans the results in
// to a sink owned by the caller. A full sink drops results rather than
// stalling the bus.
type Poller struct {
	svc   *Service
	every time.Duration
	sink  chan<- Result
	log   *logrus.Entry
}

func NewPoller(svc *Service, every time.Duration, sink chan<- Result) *Poller {
	if every <= 0 {
		every = lm77.DefaultTick
	}
	return &Poller{svc: svc, every: every, sink: sink, log: svc.log.WithField("prefix", "poller")}
}

// PollOnce snapshots every attached client and returns how many results
// were delivered.
func (p *Poller) PollOnce() int {
	n := 0
	for _, addr := range p.svc.Addresses() {
		c, ok := p.svc.Client(addr)
		if !ok {
			continue
		}
		s, err := c.Snapshot()
		if err != nil {
			p.log.WithFields(addrField(addr)).WithError(err).Warn("refresh failed")
		}
		if p.emit(Result{Addr: addr, Snapshot: s, Err: err, TsMs: timex.NowMs()}) {
			n++
		}
	}
	return n
}

// Start runs the poll loop until ctx is done.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		t := time.NewTicker(p.every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				p.PollOnce()
			}
		}
	}()
}

func (p *Poller) emit(r Result) bool {
	select {
	case p.sink <- r:
		return true
	default:
		p.log.WithFields(addrField(r.Addr)).Debug("sink full, result dropped")
		return false
	}
}
