package lm77

import (
	"errors"
	"testing"

	"lm77-go/drivers/lm77/lm77sim"
)

func probeRig() (*lm77sim.Bus, *lm77sim.Chip) {
	bus := lm77sim.NewBus()
	return bus, bus.Attach(0x49, lm77sim.New())
}

func probeCfg(addr uint16) Config {
	cfg := DefaultConfig()
	cfg.Address = addr
	return cfg
}

func TestProbeConfirmsChip(t *testing.T) {
	bus, chip := probeRig()
	chip.SetTemp(-3000, 0)
	d, err := Probe(bus, probeCfg(0x49))
	if err != nil {
		t.Fatal(err)
	}
	if d.Address() != 0x49 || d.Valid() {
		t.Fatalf("expected fresh device at 0x49, valid=%v", d.Valid())
	}
	// One baseline pass, 31 alias passes and the shadow rounds.
	if n := chip.Reads(regShadowA); n != shadowRounds {
		t.Fatalf("shadow reads=%d", n)
	}
	if n := chip.Reads(regConf); n != 32 {
		t.Fatalf("conf reads=%d", n)
	}
	if chip.TotalWrites() != 0 {
		t.Fatal("probe must not write")
	}
}

func TestProbeEmptyAddressIsTransportError(t *testing.T) {
	bus, _ := probeRig()
	_, err := Probe(bus, probeCfg(0x4A))
	if !errors.Is(err, ErrTransport) || !errors.Is(err, lm77sim.ErrNACK) {
		t.Fatalf("got %v", err)
	}
	if !IsAbsent(err) {
		t.Fatal("NACK should read as absent")
	}
}

func TestProbeRejections(t *testing.T) {
	cases := []struct {
		name  string
		setup func(c *lm77sim.Chip)
		stage string
	}{
		{"alias", func(c *lm77sim.Chip) { c.Override(0x80+regTCrit, 0x1234) }, "alias"},
		{"alias last block", func(c *lm77sim.Chip) { c.Override(0xF8+regConf, 0x01) }, "alias"},
		{"alias last block word", func(c *lm77sim.Chip) { c.Override(0xF8+regTHigh, 0x1234) }, "alias"},
		{"sign temp", func(c *lm77sim.Chip) { c.SetReg(regTemp, 0x7000) }, "sign"},
		{"sign high", func(c *lm77sim.Chip) { c.SetReg(regTHigh, 0x8400) }, "sign"},
		{"config unused", func(c *lm77sim.Chip) { c.SetReg(regConf, 0x20) }, "config"},
		{"shadow", func(c *lm77sim.Chip) { c.Override(regShadowB, 0xBEEF) }, "shadow"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bus, chip := probeRig()
			tc.setup(chip)
			d, err := Probe(bus, probeCfg(0x49))
			if d != nil {
				t.Fatal("no device expected")
			}
			var re *RejectError
			if !errors.As(err, &re) || !errors.Is(err, ErrIdentificationRejected) {
				t.Fatalf("expected rejection, got %v", err)
			}
			if re.Stage != tc.stage {
				t.Fatalf("stage=%q want %q", re.Stage, tc.stage)
			}
		})
	}
}

func TestProbeRejectsBadConfig(t *testing.T) {
	bus, _ := probeRig()
	if _, err := Probe(bus, probeCfg(0x20)); err == nil || IsAbsent(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestIdentifyStateNames(t *testing.T) {
	for s, want := range map[ProbeState]string{
		ProbeScanning: "scanning", ProbeCandidate: "candidate",
		ProbeConfirmed: "confirmed", ProbeRejected: "rejected", 99: "unknown",
	} {
		if s.String() != want {
			t.Fatalf("%d: %q", s, s.String())
		}
	}
}
