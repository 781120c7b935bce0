package lm77

// Endpoint names the logical read/write surfaces of the chip.
type Endpoint string

const (
	EndpointTemp   Endpoint = "temp"      // low, high, current
	EndpointCrit   Endpoint = "temp_crit" // critical setpoint
	EndpointHyst   Endpoint = "temp_hyst" // hysteresis
	EndpointAlarms Endpoint = "alarms"    // read-only alarm field
)

// Temperature returns (low, high, current) in milli-degrees.
func (d *Device) Temperature() (low, high, cur int32, err error) {
	s, err := d.Snapshot()
	if err != nil {
		return 0, 0, 0, err
	}
	return s.Low_mC, s.High_mC, s.Temp_mC, nil
}

// Critical returns the T_CRIT setpoint.
func (d *Device) Critical() (int32, error) {
	s, err := d.Snapshot()
	return s.Crit_mC, err
}

// Hysteresis returns the hysteresis offset.
func (d *Device) Hysteresis() (int32, error) {
	s, err := d.Snapshot()
	return s.Hyst_mC, err
}

// Alarms returns the alarm bits of the last refresh.
func (d *Device) Alarms() (Alarms, error) {
	s, err := d.Snapshot()
	return s.Alarms, err
}

// SetLimits sets T_LOW and T_HIGH together.
func (d *Device) SetLimits(low_mC, high_mC int32) error {
	var c Changes
	c.SetLow(low_mC)
	c.SetHigh(high_mC)
	return d.ApplySetpoints(c)
}

// SetCritical sets T_CRIT.
func (d *Device) SetCritical(t_mC int32) error {
	var c Changes
	c.SetCrit(t_mC)
	return d.ApplySetpoints(c)
}

// SetHysteresis sets T_HYST.
func (d *Device) SetHysteresis(t_mC int32) error {
	var c Changes
	c.SetHyst(t_mC)
	return d.ApplySetpoints(c)
}

// Read returns the values of an endpoint.
func (d *Device) Read(ep Endpoint) ([]int32, error) {
	switch ep {
	case EndpointTemp:
		lo, hi, cur, err := d.Temperature()
		if err != nil {
			return nil, err
		}
		return []int32{lo, hi, cur}, nil
	case EndpointCrit:
		v, err := d.Critical()
		if err != nil {
			return nil, err
		}
		return []int32{v}, nil
	case EndpointHyst:
		v, err := d.Hysteresis()
		if err != nil {
			return nil, err
		}
		return []int32{v}, nil
	case EndpointAlarms:
		a, err := d.Alarms()
		if err != nil {
			return nil, err
		}
		return []int32{int32(a)}, nil
	}
	return nil, ErrUnknownEndpoint
}

// Write routes endpoint values through the setpoint validator. The
// temperature endpoint takes up to two values (low, then high); with none it
// only re-checks the stored setpoints. Critical and hysteresis take exactly
// one value. Alarms are read-only and never touch the bus.
func (d *Device) Write(ep Endpoint, vals ...int32) error {
	var c Changes
	switch ep {
	case EndpointTemp:
		if len(vals) > 2 {
			return ErrBadArgs
		}
		if len(vals) > 0 {
			c.SetLow(vals[0])
		}
		if len(vals) == 2 {
			c.SetHigh(vals[1])
		}
	case EndpointCrit:
		if len(vals) != 1 {
			return ErrBadArgs
		}
		c.SetCrit(vals[0])
	case EndpointHyst:
		if len(vals) != 1 {
			return ErrBadArgs
		}
		c.SetHyst(vals[0])
	case EndpointAlarms:
		return ErrUnsupported
	default:
		return ErrUnknownEndpoint
	}
	return d.ApplySetpoints(c)
}
