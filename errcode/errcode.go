package errcode

import (
	"errors"

	"lm77-go/drivers/lm77"
)

// Code is a stable, caller-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	Unsupported   Code = "unsupported"
	InvalidParams Code = "invalid_params"
	Transport     Code = "transport"
	Validation    Code = "validation"
	NotFound      Code = "not_found"
	UnknownBus    Code = "unknown_bus"
	Busy          Code = "busy"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap attaches a code and operation to err, keeping it as the cause.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: MapDriverErr(err), Op: op, Msg: err.Error(), Err: err}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	type coder interface{ Code() Code }
	var x coder
	if errors.As(err, &x) {
		return x.Code()
	}
	return MapDriverErr(err)
}

// MapDriverErr maps lm77 driver errors to a Code.
func MapDriverErr(err error) Code {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, lm77.ErrValidation):
		return Validation
	case errors.Is(err, lm77.ErrTransport):
		return Transport
	case errors.Is(err, lm77.ErrIdentificationRejected):
		return NotFound
	case errors.Is(err, lm77.ErrUnsupported):
		return Unsupported
	case errors.Is(err, lm77.ErrBadArgs), errors.Is(err, lm77.ErrUnknownEndpoint):
		return InvalidParams
	}
	return Error
}
