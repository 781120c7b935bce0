package lm77

import "time"

// Snapshot is one coherent set of converted readings.
type Snapshot struct {
	Temp_mC int32
	Hyst_mC int32
	Crit_mC int32
	Low_mC  int32
	High_mC int32
	Alarms  Alarms
	// Taken is the clock time of the bus read that produced the values.
	Taken time.Time
}

// Snapshot returns cached readings, re-reading all registers when the cache
// is invalid, older than the refresh window, or the clock went backwards.
// On a bus error the previous cache is left untouched.
func (d *Device) Snapshot() (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.refreshLocked(false); err != nil {
		return Snapshot{}, err
	}
	return d.snapshotLocked(), nil
}

// Refresh re-reads all registers regardless of cache age.
func (d *Device) Refresh() (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.refreshLocked(true); err != nil {
		return Snapshot{}, err
	}
	return d.snapshotLocked(), nil
}

// stale reports whether the cache must be refreshed at now.
func (d *Device) stale(now time.Time) bool {
	if !d.valid {
		return true
	}
	if now.Before(d.lastRefresh) {
		return true
	}
	return now.Sub(d.lastRefresh) > d.window
}

func (d *Device) refreshLocked(force bool) error {
	now := d.clk.Now()
	if !force && !d.stale(now) {
		return nil
	}

	var s Snapshot
	var rawTemp uint16
	var err error
	if s.Temp_mC, rawTemp, err = d.io.readTemp(regTemp); err != nil {
		return err
	}
	if s.Hyst_mC, _, err = d.io.readTemp(regTHyst); err != nil {
		return err
	}
	if s.Crit_mC, _, err = d.io.readTemp(regTCrit); err != nil {
		return err
	}
	if s.Low_mC, _, err = d.io.readTemp(regTLow); err != nil {
		return err
	}
	if s.High_mC, _, err = d.io.readTemp(regTHigh); err != nil {
		return err
	}
	s.Alarms = AlarmsFromRaw(rawTemp)

	d.temp_mC = s.Temp_mC
	d.hyst_mC = s.Hyst_mC
	d.crit_mC = s.Crit_mC
	d.low_mC = s.Low_mC
	d.high_mC = s.High_mC
	d.alarms = s.Alarms
	d.lastRefresh = now
	d.valid = true
	return nil
}

func (d *Device) snapshotLocked() Snapshot {
	return Snapshot{
		Temp_mC: d.temp_mC,
		Hyst_mC: d.hyst_mC,
		Crit_mC: d.crit_mC,
		Low_mC:  d.low_mC,
		High_mC: d.high_mC,
		Alarms:  d.alarms,
		Taken:   d.lastRefresh,
	}
}
