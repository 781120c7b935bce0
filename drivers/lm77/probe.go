package lm77

import (
	"errors"

	"tinygo.org/x/drivers"
)

// The LM77 has no identification register. Detection relies on:
//
//  1. the register map repeating every 8 addresses,
//  2. the top nibble of word registers being a sign extension,
//  3. the top three bits of the configuration register reading zero,
//  4. addresses 0x06 and 0x07 echoing the last value read.

// ProbeState is a stage of the identification state machine.
type ProbeState uint8

const (
	ProbeScanning ProbeState = iota
	ProbeCandidate
	ProbeConfirmed
	ProbeRejected
)

func (s ProbeState) String() string {
	switch s {
	case ProbeScanning:
		return "scanning"
	case ProbeCandidate:
		return "candidate"
	case ProbeConfirmed:
		return "confirmed"
	case ProbeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// shadowRounds is how many independent reads of register 0 must be echoed.
const shadowRounds = 3

// baseline holds the first read of registers 0..5.
type baseline struct {
	temp uint16
	conf uint8
	word [4]uint16 // hyst, crit, low, high
}

var wordRegs = [4]byte{regTHyst, regTCrit, regTLow, regTHigh}

type prober struct {
	io     regIO
	state  ProbeState
	base   baseline
	reason string
}

func (p *prober) reject(stage string) {
	p.state = ProbeRejected
	p.reason = stage
}

// scan reads registers 0..5 once.
func (p *prober) scan() error {
	var err error
	if p.base.temp, err = p.io.readWord(regTemp); err != nil {
		return err
	}
	if p.base.conf, err = p.io.readByte(regConf); err != nil {
		return err
	}
	for i, reg := range wordRegs {
		if p.base.word[i], err = p.io.readWord(reg); err != nil {
			return err
		}
	}
	p.state = ProbeCandidate
	return nil
}

// candidate runs the signature checks in order, stopping at the first miss.
func (p *prober) candidate() error {
	for off := regAliasStep; off <= 0xFF; off += regAliasStep {
		ok, err := p.aliases(byte(off))
		if err != nil {
			return err
		}
		if !ok {
			p.reject("alias")
			return nil
		}
	}

	if !signExtended(p.base.temp) {
		p.reject("sign")
		return nil
	}
	for _, w := range p.base.word {
		if !signExtended(w) {
			p.reject("sign")
			return nil
		}
	}

	if p.base.conf&confUnused != 0 {
		p.reject("config")
		return nil
	}

	for i := 0; i < shadowRounds; i++ {
		ok, err := p.shadows()
		if err != nil {
			return err
		}
		if !ok {
			p.reject("shadow")
			return nil
		}
	}
	p.state = ProbeConfirmed
	return nil
}

// aliases compares registers 1..5 at off with the baseline.
func (p *prober) aliases(off byte) (bool, error) {
	conf, err := p.io.readByte(off + regConf)
	if err != nil || conf != p.base.conf {
		return false, err
	}
	for i, reg := range wordRegs {
		w, err := p.io.readWord(off + reg)
		if err != nil || w != p.base.word[i] {
			return false, err
		}
	}
	return true, nil
}

// shadows re-reads register 0 and expects 0x06 and 0x07 to echo it.
func (p *prober) shadows() (bool, error) {
	cur, err := p.io.readWord(regTemp)
	if err != nil {
		return false, err
	}
	for _, reg := range [...]byte{regShadowA, regShadowB} {
		w, err := p.io.readWord(reg)
		if err != nil || w != cur {
			return false, err
		}
	}
	return true, nil
}

func (p *prober) run() error {
	for {
		var err error
		switch p.state {
		case ProbeScanning:
			err = p.scan()
		case ProbeCandidate:
			err = p.candidate()
		case ProbeConfirmed:
			return nil
		case ProbeRejected:
			return &RejectError{Stage: p.reason}
		}
		if err != nil {
			return err
		}
	}
}

// Identify runs the detection heuristic at addr without creating a Device.
// It returns nil when an LM77 is confirmed, a *RejectError (matching
// ErrIdentificationRejected) when the signature does not match, or a
// transport error when the address does not respond.
func Identify(i2c drivers.I2C, addr uint16) error {
	p := prober{io: regIO{i2c: i2c, addr: addr}}
	return p.run()
}

// Probe identifies an LM77 at cfg.Address and, if confirmed, returns a
// Device with an empty cache.
func Probe(i2c drivers.I2C, cfg Config) (*Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := Identify(i2c, cfg.Address); err != nil {
		return nil, err
	}
	return New(i2c, cfg), nil
}

// IsAbsent reports whether err from Probe means "no LM77 here" rather than
// a configuration problem.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrIdentificationRejected) || errors.Is(err, ErrTransport)
}
