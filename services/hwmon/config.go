package hwmon

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"lm77-go/drivers/lm77"
)

// Config is the service configuration file.
type Config struct {
	// Bus is the host I²C bus name, e.g. "/dev/i2c-1" or "1". "sim" selects
	// the built-in simulator.
	Bus       string        `yaml:"bus"`
	Driver    string        `yaml:"driver"`
	Addresses []uint16      `yaml:"addresses"`
	Tick      time.Duration `yaml:"tick"`
	// FaultQueue enables the comparator fault queue when a chip is attached.
	FaultQueue bool       `yaml:"fault_queue"`
	LogLevel   string     `yaml:"log_level"`
	Setpoints  []Setpoint `yaml:"setpoints"`
}

// Setpoint holds initial limits for one address. Absent fields are left as
// the chip has them.
type Setpoint struct {
	Addr    uint16 `yaml:"addr"`
	Low_mC  *int32 `yaml:"low_mc"`
	High_mC *int32 `yaml:"high_mc"`
	Crit_mC *int32 `yaml:"crit_mc"`
	Hyst_mC *int32 `yaml:"hyst_mc"`
}

// Changes converts the configured fields to a setpoint batch.
func (s Setpoint) Changes() lm77.Changes {
	var c lm77.Changes
	if s.Low_mC != nil {
		c.SetLow(*s.Low_mC)
	}
	if s.High_mC != nil {
		c.SetHigh(*s.High_mC)
	}
	if s.Crit_mC != nil {
		c.SetCrit(*s.Crit_mC)
	}
	if s.Hyst_mC != nil {
		c.SetHyst(*s.Hyst_mC)
	}
	return c
}

// DefaultConfig scans the full LM77 address range once a second.
func DefaultConfig() Config {
	return Config{
		Bus:       "/dev/i2c-1",
		Driver:    "lm77",
		Addresses: DefaultAddresses(),
		Tick:      lm77.DefaultTick,
		LogLevel:  "info",
	}
}

// DefaultAddresses returns 0x48..0x4b.
func DefaultAddresses() []uint16 {
	var out []uint16
	for a := uint16(lm77.AddressMin); a <= lm77.AddressMax; a++ {
		out = append(out, a)
	}
	return out
}

// RefreshWindow is the cache window derived from the tick.
func (c Config) RefreshWindow() time.Duration { return c.Tick + c.Tick/2 }

// Validate checks required fields and address ranges.
func (c Config) Validate() error {
	if c.Bus == "" {
		return errors.New("bus must be set")
	}
	if c.Driver == "" {
		return errors.New("driver must be set")
	}
	if len(c.Addresses) == 0 {
		return errors.New("addresses must not be empty")
	}
	for _, a := range c.Addresses {
		if a < lm77.AddressMin || a > lm77.AddressMax {
			return fmt.Errorf("address 0x%02x outside 0x%02x..0x%02x", a, lm77.AddressMin, lm77.AddressMax)
		}
	}
	if c.Tick <= 0 {
		return errors.New("tick must be positive")
	}
	for _, s := range c.Setpoints {
		if !c.scans(s.Addr) {
			return fmt.Errorf("setpoints for 0x%02x which is not scanned", s.Addr)
		}
	}
	return nil
}

func (c Config) scans(addr uint16) bool {
	for _, a := range c.Addresses {
		if a == addr {
			return true
		}
	}
	return false
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(b []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load reads and parses a config file.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}
