package lm77

import (
	"testing"
	"time"

	"lm77-go/drivers/lm77/lm77sim"
	"lm77-go/x/timex"
)

type rig struct {
	bus  *lm77sim.Bus
	chip *lm77sim.Chip
	clk  *timex.Manual
	dev  *Device
}

func newRig(t *testing.T) *rig {
	t.Helper()
	bus := lm77sim.NewBus()
	chip := bus.Attach(AddressDefault, lm77sim.New())
	clk := timex.NewManual(time.Unix(1_700_000_000, 0))
	cfg := DefaultConfig()
	cfg.Clock = clk
	return &rig{bus: bus, chip: chip, clk: clk, dev: New(bus, cfg)}
}

// liveReads counts reads of the live temperature register.
func (r *rig) liveReads() int { return r.chip.Reads(regTemp) }
