package lm77

// ReadConfig reads the configuration register.
func (d *Device) ReadConfig() (ConfigBits, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.io.readByte(regConf)
	return ConfigBits(v), err
}

// WriteConfig writes the configuration register.
func (d *Device) WriteConfig(v ConfigBits) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.io.writeByte(regConf, uint8(v))
}

// UpdateConfig is a read-modify-write of the configuration register.
func (d *Device) UpdateConfig(set, clear ConfigBits) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	cur, err := d.io.readByte(regConf)
	if err != nil {
		return err
	}
	return d.io.writeByte(regConf, (cur|uint8(set))&^uint8(clear))
}

// Init brings the chip out of shutdown, enabling the fault queue if
// configured. It reports whether the chip was in shutdown.
func (d *Device) Init() (wasShutdown bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cur, err := d.io.readByte(regConf)
	if err != nil {
		return false, err
	}
	var conf ConfigBits
	if d.faultQueue {
		conf |= ConfFaultQueue
	}
	if err := d.io.writeByte(regConf, uint8(conf)); err != nil {
		return false, err
	}
	return ConfigBits(cur).Has(ConfShutdown), nil
}

// Reset restores the power-on configuration and setpoints and invalidates
// the cache. Raw values are written directly, bypassing the codec.
func (d *Device) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.valid = false
	if err := d.io.writeByte(regConf, defaultConf); err != nil {
		return err
	}
	regs := [...]struct {
		reg byte
		raw uint16
	}{
		{regTLow, defaultTLow},
		{regTHigh, defaultTHigh},
		{regTCrit, defaultTCrit},
		{regTHyst, defaultTHyst},
	}
	for _, r := range regs {
		if err := d.io.writeWord(r.reg, r.raw); err != nil {
			return err
		}
	}
	return nil
}
