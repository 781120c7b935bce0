package lm77sim

import "testing"

func TestConfigReadIsOneByte(t *testing.T) {
	bus := NewBus()
	c := bus.Attach(0x48, New())
	c.SetReg(regConf, 0x18)

	var r [1]byte
	if err := bus.Tx(0x48, []byte{0x09}, r[:]); err != nil {
		t.Fatal(err)
	}
	if r[0] != 0x18 {
		t.Fatalf("aliased conf=0x%02x", r[0])
	}

	c.Override(0xF9, 0x01)
	if err := bus.Tx(0x48, []byte{0xF9}, r[:]); err != nil {
		t.Fatal(err)
	}
	if r[0] != 0x01 {
		t.Fatalf("overridden conf=0x%02x want 0x01", r[0])
	}
	if err := bus.Tx(0x48, []byte{0x01}, r[:]); err != nil || r[0] != 0x18 {
		t.Fatalf("override leaked to 0x01: 0x%02x %v", r[0], err)
	}
}

func TestWordFramingAndShadowEcho(t *testing.T) {
	bus := NewBus()
	c := bus.Attach(0x48, New())
	c.SetTemp(-3000, 0x5)

	var r [2]byte
	if err := bus.Tx(0x48, []byte{0x00}, r[:]); err != nil {
		t.Fatal(err)
	}
	want := c.Reg(regTemp)
	if got := uint16(r[0])<<8 | uint16(r[1]); got != want {
		t.Fatalf("temp 0x%04x want 0x%04x", got, want)
	}
	var e [2]byte
	if err := bus.Tx(0x48, []byte{regShA}, e[:]); err != nil || e != r {
		t.Fatalf("shadow %v err=%v", e, err)
	}
	if err := bus.Tx(0x49, []byte{0x00}, r[:]); err != ErrNACK {
		t.Fatalf("got %v", err)
	}
}
