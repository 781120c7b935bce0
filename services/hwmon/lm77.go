package hwmon

import (
	"tinygo.org/x/drivers"

	"lm77-go/drivers/lm77"
)

// Register this chip family with the service.
func init() {
	RegisterDriver("lm77", lm77Driver{})
}

type lm77Driver struct{}

func (lm77Driver) Probe(bus drivers.I2C, addr uint16, opts Options) (Client, error) {
	cfg := lm77.DefaultConfig()
	cfg.Address = addr
	cfg.FaultQueue = opts.FaultQueue
	cfg.Clock = opts.Clock
	if opts.RefreshWindow > 0 {
		cfg.RefreshWindow = opts.RefreshWindow
	}
	d, err := lm77.Probe(bus, cfg)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Attach brings the chip out of shutdown.
func (lm77Driver) Attach(c Client) error {
	d, ok := c.(*lm77.Device)
	if !ok {
		return errForeignClient
	}
	_, err := d.Init()
	return err
}

// Detach drops the cached readings; the chip itself is left running.
func (lm77Driver) Detach(c Client) error {
	d, ok := c.(*lm77.Device)
	if !ok {
		return errForeignClient
	}
	d.Invalidate()
	return nil
}
