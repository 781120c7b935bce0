package lm77

import (
	"errors"
	"strings"
)

var (
	// ErrTransport wraps every failed bus transaction.
	ErrTransport = errors.New("lm77: transport error")
	// ErrValidation is matched by *ValidationError.
	ErrValidation = errors.New("lm77: setpoint validation failed")
	// ErrIdentificationRejected means no LM77 answered at the probed address.
	ErrIdentificationRejected = errors.New("lm77: identification rejected")
	// ErrUnsupported is returned for writes to read-only endpoints.
	ErrUnsupported = errors.New("lm77: unsupported operation")
	// ErrBadArgs is returned when an endpoint receives the wrong number of values.
	ErrBadArgs = errors.New("lm77: bad argument count")
	// ErrUnknownEndpoint is returned for endpoint names this driver does not expose.
	ErrUnknownEndpoint = errors.New("lm77: unknown endpoint")
)

// Violation is a set of failed setpoint checks.
type Violation uint8

const (
	ViolLowRange  Violation = 1 << iota // low outside [TempMin_mC, TempMax_mC]
	ViolHighRange                       // high outside [TempMin_mC, TempMax_mC]
	ViolOrder                           // low >= high
	ViolMargin                          // low+hyst >= high-hyst
)

func (v Violation) Has(flag Violation) bool { return v&flag != 0 }

var violationNames = [...]struct {
	v    Violation
	name string
}{
	{ViolLowRange, "low_out_of_range"},
	{ViolHighRange, "high_out_of_range"},
	{ViolOrder, "low_not_below_high"},
	{ViolMargin, "overlapping_hysteresis"},
}

// Names lists the identifiers of every violated check, in check order.
func (v Violation) Names() []string {
	var out []string
	for _, n := range violationNames {
		if v.Has(n.v) {
			out = append(out, n.name)
		}
	}
	return out
}

func (v Violation) String() string { return strings.Join(v.Names(), ",") }

// ValidationError reports all violated checks of a rejected setpoint batch.
type ValidationError struct {
	Violations Violation
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Violations.String()
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// RejectError names the probe stage that failed.
type RejectError struct {
	Stage string
}

func (e *RejectError) Error() string {
	return ErrIdentificationRejected.Error() + ": " + e.Stage
}

func (e *RejectError) Is(target error) bool { return target == ErrIdentificationRejected }
