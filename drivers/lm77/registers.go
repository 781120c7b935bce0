// Package lm77 provides constants for register addresses and bitfields used
// in the operation of the LM77 temperature sensor and thermal window comparator.
package lm77

const (
	// 7-bit I2C address range (1001_0xxb, A0/A1 strapped).
	AddressMin     = 0x48
	AddressMax     = 0x4B
	AddressDefault = AddressMin

	// --- Register sub-addresses ---
	regTemp  = 0x00 // R,   word; bits 0..2 carry the alarm flags
	regConf  = 0x01 // R/W, byte
	regTHyst = 0x02 // R/W, word
	regTCrit = 0x03 // R/W, word
	regTLow  = 0x04 // R/W, word
	regTHigh = 0x05 // R/W, word

	// 0x06/0x07 echo the last value read; the map repeats every 8 addresses.
	regShadowA   = 0x06
	regShadowB   = 0x07
	regAliasStep = 0x08

	// --- Temperature register layout ---
	tempShift    = 3      // bits 0..2 are not part of the magnitude
	tempMask     = 0x03FF // 10 significant bits after the shift
	tempSignBit  = 0x0200
	tempSignSpan = 0x0400
	alarmMask    = 0x0007
	signNibble   = 0xF000
	confUnused   = 0xE0

	// Temperature limits in milli-degrees Celsius and the hardware step.
	TempMin_mC  = -55000
	TempMax_mC  = 125000
	TempStep_mC = 500

	// Raw power-on defaults used by Reset (bypass the codec).
	defaultConf  = 0x00
	defaultTLow  = 0x00A0 // 10 °C
	defaultTHigh = 0x0400 // 64 °C
	defaultTCrit = 0x0500 // 80 °C
	defaultTHyst = 0x0020 // 2 °C
)

// ConfigBits is the byte-wide configuration register.
type ConfigBits uint8

const (
	ConfShutdown   ConfigBits = 0x01
	ConfIntMode    ConfigBits = 0x02 // interrupt (vs comparator) mode
	ConfTCritPol   ConfigBits = 0x04 // T_CRIT_A active high
	ConfIntPol     ConfigBits = 0x08 // INT active high
	ConfFaultQueue ConfigBits = 0x10
)

func (b ConfigBits) Has(flag ConfigBits) bool { return b&flag != 0 }

// Alarms is the 3-bit alarm field of the live temperature register.
type Alarms uint8

const (
	AlarmLow  Alarms = 0x01 // T < T_LOW
	AlarmHigh Alarms = 0x02 // T > T_HIGH
	AlarmCrit Alarms = 0x04 // T > T_CRIT
)

func (a Alarms) Has(flag Alarms) bool { return a&flag != 0 }
