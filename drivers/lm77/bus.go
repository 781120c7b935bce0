package lm77

import (
	"fmt"

	"tinygo.org/x/drivers"
)

// regIO frames SMBus-style register transactions for one address.
// Word registers are big-endian on the wire (HIGH then LOW), the opposite of
// the SMBus word convention, so they are assembled here rather than by the bus.
// Not safe for concurrent use; Device serialises access.
type regIO struct {
	i2c  drivers.I2C
	addr uint16

	// Fixed buffers to avoid per-call heap allocations.
	w [3]byte
	r [2]byte
}

func transportErr(op string, addr uint16, reg byte, err error) error {
	return fmt.Errorf("%w: %s 0x%02x reg 0x%02x: %w", ErrTransport, op, addr, reg, err)
}

func (b *regIO) readByte(reg byte) (uint8, error) {
	b.w[0] = reg
	if err := b.i2c.Tx(b.addr, b.w[:1], b.r[:1]); err != nil {
		return 0, transportErr("read byte", b.addr, reg, err)
	}
	return b.r[0], nil
}

func (b *regIO) readWord(reg byte) (uint16, error) {
	b.w[0] = reg
	if err := b.i2c.Tx(b.addr, b.w[:1], b.r[:2]); err != nil {
		return 0, transportErr("read word", b.addr, reg, err)
	}
	return uint16(b.r[0])<<8 | uint16(b.r[1]), nil
}

func (b *regIO) writeByte(reg, val byte) error {
	b.w[0] = reg
	b.w[1] = val
	if err := b.i2c.Tx(b.addr, b.w[:2], nil); err != nil {
		return transportErr("write byte", b.addr, reg, err)
	}
	return nil
}

func (b *regIO) writeWord(reg byte, val uint16) error {
	b.w[0] = reg
	b.w[1] = byte(val >> 8) // high
	b.w[2] = byte(val)      // low
	if err := b.i2c.Tx(b.addr, b.w[:3], nil); err != nil {
		return transportErr("write word", b.addr, reg, err)
	}
	return nil
}

// readTemp reads a word register through the codec.
func (b *regIO) readTemp(reg byte) (int32, uint16, error) {
	raw, err := b.readWord(reg)
	if err != nil {
		return 0, 0, err
	}
	return Decode(raw), raw, nil
}

func (b *regIO) writeTemp(reg byte, t_mC int32) error {
	return b.writeWord(reg, Encode(t_mC))
}
