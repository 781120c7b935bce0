package errcode

import (
	"errors"
	"fmt"
	"testing"

	"lm77-go/drivers/lm77"
)

func TestMapDriverErr(t *testing.T) {
	cases := []struct {
		err  error
		want Code
	}{
		{nil, OK},
		{&lm77.ValidationError{Violations: lm77.ViolOrder}, Validation},
		{fmt.Errorf("%w: read: boom", lm77.ErrTransport), Transport},
		{&lm77.RejectError{Stage: "alias"}, NotFound},
		{lm77.ErrUnsupported, Unsupported},
		{lm77.ErrBadArgs, InvalidParams},
		{errors.New("other"), Error},
	}
	for _, c := range cases {
		if got := MapDriverErr(c.err); got != c.want {
			t.Fatalf("%v: got %q want %q", c.err, got, c.want)
		}
	}
}

func TestOfAndWrap(t *testing.T) {
	if Of(Busy) != Busy {
		t.Fatal("plain code")
	}
	w := Wrap("set_limits", lm77.ErrUnsupported)
	if Of(w) != Unsupported || !errors.Is(w, lm77.ErrUnsupported) {
		t.Fatalf("wrapped: %v", w)
	}
	if Of(fmt.Errorf("ctx: %w", w)) != Unsupported {
		t.Fatal("nested wrap")
	}
	if Wrap("x", nil) != nil {
		t.Fatal("nil passthrough")
	}
}
