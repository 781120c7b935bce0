package lm77

import "lm77-go/x/mathx"

// Changes is a batch of proposed setpoint updates. The zero value changes
// nothing; only fields set through the setters are written.
type Changes struct {
	low, high, crit, hyst int32
	set                   uint8
}

const (
	chLow uint8 = 1 << iota
	chHigh
	chCrit
	chHyst
)

func (c *Changes) SetLow(t_mC int32)  { c.low = t_mC; c.set |= chLow }
func (c *Changes) SetHigh(t_mC int32) { c.high = t_mC; c.set |= chHigh }
func (c *Changes) SetCrit(t_mC int32) { c.crit = t_mC; c.set |= chCrit }
func (c *Changes) SetHyst(t_mC int32) { c.hyst = t_mC; c.set |= chHyst }

func (c Changes) Low() (int32, bool)  { return c.low, c.set&chLow != 0 }
func (c Changes) High() (int32, bool) { return c.high, c.set&chHigh != 0 }
func (c Changes) Crit() (int32, bool) { return c.crit, c.set&chCrit != 0 }
func (c Changes) Hyst() (int32, bool) { return c.hyst, c.set&chHyst != 0 }

// Setpoints is a complete candidate set.
type Setpoints struct {
	Low_mC, High_mC, Crit_mC, Hyst_mC int32
}

// Merge fills fields not provided in c from cur.
func (c Changes) Merge(cur Setpoints) Setpoints {
	out := cur
	if v, ok := c.Low(); ok {
		out.Low_mC = v
	}
	if v, ok := c.High(); ok {
		out.High_mC = v
	}
	if v, ok := c.Crit(); ok {
		out.Crit_mC = v
	}
	if v, ok := c.Hyst(); ok {
		out.Hyst_mC = v
	}
	return out
}

// Check evaluates every comparator-window constraint and returns the full
// set of violations (zero when the candidate is acceptable).
func (s Setpoints) Check() Violation {
	var v Violation
	if !mathx.Between(s.Low_mC, TempMin_mC, TempMax_mC) {
		v |= ViolLowRange
	}
	if !mathx.Between(s.High_mC, TempMin_mC, TempMax_mC) {
		v |= ViolHighRange
	}
	if s.Low_mC >= s.High_mC {
		v |= ViolOrder
	}
	// The hysteresis bands around T_LOW and T_HIGH must not overlap.
	if int64(s.Low_mC)+int64(s.Hyst_mC) >= int64(s.High_mC)-int64(s.Hyst_mC) {
		v |= ViolMargin
	}
	return v
}

// Setpoints returns the cached setpoints, refreshing first if needed.
func (d *Device) Setpoints() (Setpoints, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.refreshLocked(false); err != nil {
		return Setpoints{}, err
	}
	return d.setpointsLocked(), nil
}

func (d *Device) setpointsLocked() Setpoints {
	return Setpoints{Low_mC: d.low_mC, High_mC: d.high_mC, Crit_mC: d.crit_mC, Hyst_mC: d.hyst_mC}
}

// ApplySetpoints validates c merged over the current state and, if every
// check passes, writes the provided fields in the order low, high, crit,
// hyst. A *ValidationError means nothing was written. A bus error partway
// through leaves earlier writes committed.
//
// An empty batch re-validates the stored state, so an already inconsistent
// device is reported rather than silently confirmed.
func (d *Device) ApplySetpoints(c Changes) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Merge against real values, not the zeroed cache of a fresh device.
	if !d.valid {
		if err := d.refreshLocked(true); err != nil {
			return err
		}
	}
	cand := c.Merge(d.setpointsLocked())
	if v := cand.Check(); v != 0 {
		return &ValidationError{Violations: v}
	}

	if v, ok := c.Low(); ok {
		if err := d.io.writeTemp(regTLow, v); err != nil {
			return err
		}
		d.low_mC = Decode(Encode(v))
	}
	if v, ok := c.High(); ok {
		if err := d.io.writeTemp(regTHigh, v); err != nil {
			return err
		}
		d.high_mC = Decode(Encode(v))
	}
	if v, ok := c.Crit(); ok {
		if err := d.io.writeTemp(regTCrit, v); err != nil {
			return err
		}
		d.crit_mC = Decode(Encode(v))
	}
	if v, ok := c.Hyst(); ok {
		if err := d.io.writeTemp(regTHyst, v); err != nil {
			return err
		}
		d.hyst_mC = Decode(Encode(v))
	}
	return nil
}
