package errcode_test

import (
	"testing"

	"ember/internal/errcode"
)

func TestExceptionNames(t *testing.T) {
	tests := []struct {
		code errcode.Code
		want string
	}{
		{errcode.OK, ""},
		{errcode.Type, "TypeError"},
		{errcode.ZeroDivision, "ZeroDivisionError"},
		{errcode.StopIteration, "StopIteration"},
		{errcode.Timeout, "TimeoutError"},
		{errcode.HardwareInit, "HardwareInitializationError"},
		{errcode.Code(99), ""},
		{errcode.Code(-1), ""},
	}
	for _, tt := range tests {
		if got := tt.code.Exception(); got != tt.want {
			t.Errorf("Exception(%d) = %q, want %q", int(tt.code), got, tt.want)
		}
	}
}

func TestStringFormat(t *testing.T) {
	if got := errcode.OK.String(); got != "OK" {
		t.Errorf("OK.String() = %q", got)
	}
	if got := errcode.Type.String(); got != "E1" {
		t.Errorf("Type.String() = %q", got)
	}
	if got := errcode.HardwareInit.String(); got != "E21" {
		t.Errorf("HardwareInit.String() = %q", got)
	}
}

func TestHALRoundtrip(t *testing.T) {
	for c := errcode.OK; c <= errcode.HardwareInit; c++ {
		n := c.HAL()
		if c != errcode.OK && n >= 0 {
			t.Errorf("HAL(%v) = %d, want negative", c, n)
		}
		if got := errcode.FromHAL(n); got != c {
			t.Errorf("FromHAL(HAL(%v)) = %v", c, got)
		}
	}
}

func TestFromHALOutOfRange(t *testing.T) {
	if got := errcode.FromHAL(-99); got != errcode.Runtime {
		t.Errorf("FromHAL(-99) = %v, want Runtime", got)
	}
	if got := errcode.FromHAL(500); got != errcode.Runtime {
		t.Errorf("FromHAL(500) = %v, want Runtime", got)
	}
	if got := errcode.FromHAL(0); got != errcode.OK {
		t.Errorf("FromHAL(0) = %v, want OK", got)
	}
}

func TestPeripheralBand(t *testing.T) {
	for c := errcode.OK; c <= errcode.HardwareInit; c++ {
		want := c >= errcode.Peripheral
		if got := c.IsPeripheral(); got != want {
			t.Errorf("IsPeripheral(%v) = %v, want %v", c, got, want)
		}
	}
}
