// Package lm77sim is a register-level LM77 simulator implementing the
// tinygo drivers.I2C interface. It models the 8-address register aliasing,
// the 0x06/0x07 last-value echo and big-endian word framing of the chip, and
// records per-register access counts for tests.
package lm77sim

import (
	"errors"
	"sync"

	"tinygo.org/x/drivers"
)

// ErrNACK is returned for transactions to an address with no chip.
var ErrNACK = errors.New("lm77sim: address not acknowledged")

const (
	regTemp = 0
	regConf = 1
	regShA  = 6
	regShB  = 7
)

// Chip is one simulated LM77.
type Chip struct {
	regs [6]uint16
	last uint16

	// override answers reads at absolute addresses, breaking the aliasing.
	override map[byte]uint16

	reads  [8]int
	writes [8]int

	// Fault injection: fail the next N transactions touching reg, or all.
	failReg   int
	failCount int
	failErr   error
}

// New returns a chip with power-on defaults: 10/64/80 °C limits, 2 °C
// hysteresis, 25 °C live temperature.
func New() *Chip {
	c := &Chip{failReg: -1}
	c.regs[2] = 0x0020
	c.regs[3] = 0x0500
	c.regs[4] = 0x00A0
	c.regs[5] = 0x0400
	c.SetTemp(25000, 0)
	return c
}

func encode(mC int32) uint16 {
	return uint16(int16(mC/500) << 3)
}

func decode(raw uint16) int32 {
	return int32(int16(raw)>>3) * 500
}

// SetTemp sets the live temperature register and its alarm bits.
func (c *Chip) SetTemp(mC int32, alarms uint8) {
	c.regs[regTemp] = encode(mC) | uint16(alarms&0x7)
}

// SetReg stores a raw register value (conf uses the low byte).
func (c *Chip) SetReg(reg int, raw uint16) { c.regs[reg&7] = raw }

// SetRegTemp stores mC in word register reg through the chip encoding.
func (c *Chip) SetRegTemp(reg int, mC int32) { c.regs[reg&7] = encode(mC) }

// Override makes reads at the absolute address addr return raw instead of
// the aliased register. Used to model devices that are not an LM77.
func (c *Chip) Override(addr byte, raw uint16) {
	if c.override == nil {
		c.override = map[byte]uint16{}
	}
	c.override[addr] = raw
}

// Reg returns the raw value of register reg.
func (c *Chip) Reg(reg int) uint16 { return c.regs[reg&7] }

// RegTemp decodes a word register to milli-degrees.
func (c *Chip) RegTemp(reg int) int32 { return decode(c.regs[reg&7]) }

// Reads/Writes return the access counts for reg (aliases fold onto 0..7).
func (c *Chip) Reads(reg int) int  { return c.reads[reg&7] }
func (c *Chip) Writes(reg int) int { return c.writes[reg&7] }

// TotalWrites returns the number of register writes of any kind.
func (c *Chip) TotalWrites() int {
	n := 0
	for _, w := range c.writes {
		n += w
	}
	return n
}

// ResetCounts clears the access counters.
func (c *Chip) ResetCounts() {
	c.reads = [8]int{}
	c.writes = [8]int{}
}

// FailNext makes the next n transactions touching reg fail with err.
// reg < 0 matches any register.
func (c *Chip) FailNext(reg, n int, err error) {
	c.failReg, c.failCount, c.failErr = reg, n, err
}

func (c *Chip) fault(reg int) error {
	if c.failCount == 0 || (c.failReg >= 0 && c.failReg != reg) {
		return nil
	}
	c.failCount--
	return c.failErr
}

func (c *Chip) tx(w, r []byte) error {
	if len(w) == 0 {
		return errors.New("lm77sim: missing register pointer")
	}
	reg := int(w[0]) & 7
	if err := c.fault(reg); err != nil {
		return err
	}
	if len(w) > 1 {
		c.writes[reg]++
		switch {
		case reg == regConf:
			c.regs[regConf] = uint16(w[1])
		case reg >= 2 && reg <= 5 && len(w) == 3:
			c.regs[reg] = uint16(w[1])<<8 | uint16(w[2])
		}
		return nil
	}
	c.reads[reg]++
	var v uint16
	ov, overridden := c.override[w[0]]
	switch {
	case overridden:
		v = ov
	case reg == regShA || reg == regShB:
		v = c.last
	case reg == regConf:
		v = c.regs[regConf] & 0xFF
		c.last = v
	default:
		v = c.regs[reg]
		c.last = v
	}
	// The configuration register is a single byte, repeated on long reads.
	if reg == regConf {
		for i := range r {
			r[i] = byte(v)
		}
		return nil
	}
	switch len(r) {
	case 1:
		r[0] = byte(v >> 8)
	case 2:
		r[0] = byte(v >> 8)
		r[1] = byte(v)
	}
	return nil
}

// Bus is a simulated I²C bus hosting chips by 7-bit address.
type Bus struct {
	mu    sync.Mutex
	chips map[uint16]*Chip
	txs   int
}

var _ drivers.I2C = (*Bus)(nil)

func NewBus() *Bus { return &Bus{chips: map[uint16]*Chip{}} }

// Attach places c at addr and returns it.
func (b *Bus) Attach(addr uint16, c *Chip) *Chip {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chips[addr] = c
	return c
}

// Transactions returns the total number of Tx calls seen.
func (b *Bus) Transactions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.txs
}

func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.txs++
	c, ok := b.chips[addr]
	if !ok {
		return ErrNACK
	}
	return c.tx(w, r)
}
