package lm77

import "lm77-go/x/mathx"

// Temperature register codec. Values are milli-degrees Celsius; the register
// holds a 10-bit two's-complement count of 0.5 °C steps in bits 3..12, with
// bits 13..15 replicating the sign.

// ClampTemp limits t to the range the chip can represent.
func ClampTemp(t int32) int32 {
	return mathx.Clamp(t, TempMin_mC, TempMax_mC)
}

// Encode converts milli-degrees to a raw register value. Out-of-range input
// is clamped, never wrapped; fractions of a step truncate toward zero.
func Encode(t_mC int32) uint16 {
	code := ClampTemp(t_mC) / TempStep_mC
	raw := uint16(code<<tempShift) & 0x1FFF
	if raw&(tempSignBit<<tempShift) != 0 {
		raw |= 0xE000
	}
	return raw
}

// Decode converts a raw register value to milli-degrees. The low three bits
// (alarm flags in the live register) are discarded.
func Decode(raw uint16) int32 {
	code := int32(raw>>tempShift) & tempMask
	return mathx.SignExtend(code, 10) * TempStep_mC
}

// AlarmsFromRaw extracts the alarm field of the live temperature register.
func AlarmsFromRaw(raw uint16) Alarms {
	return Alarms(raw & alarmMask)
}

// signExtended reports whether the top nibble of a word register is a valid
// sign extension (all ones or all zeros).
func signExtended(raw uint16) bool {
	top := raw & signNibble
	return top == 0 || top == signNibble
}
