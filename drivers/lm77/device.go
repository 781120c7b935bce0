package lm77

import (
	"errors"
	"sync"
	"time"

	"tinygo.org/x/drivers"

	"lm77-go/x/timex"
)

// DefaultTick is the host's nominal polling period; the cache window is 1.5×.
const DefaultTick = time.Second

// Driver configuration. Integer-only apart from durations.
type Config struct {
	Address uint16
	// RefreshWindow is the maximum age of a cached snapshot. Default 1.5×DefaultTick.
	RefreshWindow time.Duration
	// FaultQueue enables the comparator fault queue on Init.
	FaultQueue bool
	// Clock defaults to the system clock.
	Clock timex.Clock
}

// DefaultConfig provides minimal defaults.
func DefaultConfig() Config {
	return Config{
		Address:       AddressDefault,
		RefreshWindow: DefaultTick + DefaultTick/2,
	}
}

// Validate basic required fields.
func (c Config) Validate() error {
	if c.Address < AddressMin || c.Address > AddressMax {
		return errors.New("Address must be within 0x48..0x4b")
	}
	if c.RefreshWindow < 0 {
		return errors.New("RefreshWindow must not be negative")
	}
	return nil
}

// Device represents one LM77 on an I²C bus. It owns the last converted
// readings; a single mutex serialises cache access and every bus transaction.
type Device struct {
	mu  sync.Mutex
	io  regIO
	clk timex.Clock

	window     time.Duration
	faultQueue bool

	valid       bool
	lastRefresh time.Time

	temp_mC int32
	hyst_mC int32
	crit_mC int32
	low_mC  int32
	high_mC int32
	alarms  Alarms
}

// New constructs a Device with supplied config. It does not touch the bus;
// use Probe to identify the chip first.
func New(i2c drivers.I2C, cfg Config) *Device {
	addr := cfg.Address
	if addr == 0 {
		addr = AddressDefault
	}
	window := cfg.RefreshWindow
	if window == 0 {
		window = DefaultConfig().RefreshWindow
	}
	clk := cfg.Clock
	if clk == nil {
		clk = timex.System{}
	}
	return &Device{
		io:         regIO{i2c: i2c, addr: addr},
		clk:        clk,
		window:     window,
		faultQueue: cfg.FaultQueue,
	}
}

// Introspection.
func (d *Device) Address() uint16              { return d.io.addr }
func (d *Device) RefreshWindow() time.Duration { return d.window }

// Valid reports whether the cache has been populated.
func (d *Device) Valid() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.valid
}

// Invalidate forces the next read to go to the bus.
func (d *Device) Invalidate() {
	d.mu.Lock()
	d.valid = false
	d.mu.Unlock()
}
